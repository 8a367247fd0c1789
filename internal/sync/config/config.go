package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"

	apperrors "opsbridge/internal/shared/errors"
)

// Config holds the sync engine configuration: workspace API access and the
// collection identifiers every operation is addressed with. The engine itself
// never reads the environment; everything is injected from here.
type Config struct {
	WorkspaceToken      string        `env:"WORKSPACE_TOKEN"`
	WorkspaceBaseURL    string        `env:"WORKSPACE_BASE_URL" envDefault:"https://api.notion.com/v1"`
	WorkspaceAPIVersion string        `env:"WORKSPACE_API_VERSION" envDefault:"2022-06-28"`
	RequestTimeout      time.Duration `env:"WORKSPACE_REQUEST_TIMEOUT" envDefault:"30s"`

	// Target collections. Requisitions are mirrored into primary + mirror.
	RequisitionsPrimaryID string `env:"REQUISITIONS_DB_ID"`
	RequisitionsMirrorID  string `env:"REQUISITIONS_MIRROR_DB_ID"`
	WorkItemsID           string `env:"WORK_ITEMS_DB_ID"`
	ProjectsID            string `env:"PROJECTS_DB_ID"`
	ScheduleID            string `env:"SCHEDULE_DB_ID"`

	// DateAttribute is the date-valued attribute shifted by schedule updates.
	DateAttribute string `env:"SCHEDULE_DATE_ATTRIBUTE" envDefault:"Date"`

	// RedisAddr enables the outcome event publisher when set.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
}

// Load reads configuration from environment variables and applies defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to load sync configuration from environment: %w", err)
	}
	return cfg, nil
}

// Validate checks that every identifier the engine needs is present. A missing
// token or collection ID is a ConfigurationError, surfaced as
// service-unavailable and never retried.
func (c *Config) Validate() error {
	var missing []string
	if c.WorkspaceToken == "" {
		missing = append(missing, "WORKSPACE_TOKEN")
	}
	if c.RequisitionsPrimaryID == "" {
		missing = append(missing, "REQUISITIONS_DB_ID")
	}
	if c.RequisitionsMirrorID == "" {
		missing = append(missing, "REQUISITIONS_MIRROR_DB_ID")
	}
	if c.WorkItemsID == "" {
		missing = append(missing, "WORK_ITEMS_DB_ID")
	}
	if c.ProjectsID == "" {
		missing = append(missing, "PROJECTS_DB_ID")
	}
	if c.ScheduleID == "" {
		missing = append(missing, "SCHEDULE_DB_ID")
	}
	if len(missing) > 0 {
		return apperrors.NewConfigurationError(
			"missing required configuration: " + strings.Join(missing, ", "))
	}
	return nil
}
