package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "opsbridge/internal/shared/errors"
	"opsbridge/internal/sync/config"
)

func validConfig() *config.Config {
	return &config.Config{
		WorkspaceToken:        "secret",
		WorkspaceBaseURL:      "https://api.notion.com/v1",
		WorkspaceAPIVersion:   "2022-06-28",
		RequestTimeout:        30 * time.Second,
		RequisitionsPrimaryID: "a",
		RequisitionsMirrorID:  "b",
		WorkItemsID:           "c",
		ProjectsID:            "d",
		ScheduleID:            "e",
		DateAttribute:         "Date",
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv("WORKSPACE_TOKEN", "secret")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, "https://api.notion.com/v1", cfg.WorkspaceBaseURL)
	assert.Equal(t, "2022-06-28", cfg.WorkspaceAPIVersion)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "Date", cfg.DateAttribute)
}

func TestValidate_Complete(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_ListsEveryMissingVariable(t *testing.T) {
	cfg := validConfig()
	cfg.WorkspaceToken = ""
	cfg.ScheduleID = ""

	err := cfg.Validate()

	require.Error(t, err)
	assert.True(t, apperrors.IsConfiguration(err))
	assert.Contains(t, err.Error(), "WORKSPACE_TOKEN")
	assert.Contains(t, err.Error(), "SCHEDULE_DB_ID")
}
