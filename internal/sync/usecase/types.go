package usecase

import (
	"context"

	"opsbridge/internal/sync/domain/model"
)

// Request/Response DTOs - Centralized type definitions

// ShiftDatesRequest asks for a time shift of a date attribute across every
// record in a collection matching the filters.
type ShiftDatesRequest struct {
	CollectionID string `json:"collectionId" validate:"required"`
	// Hours to add to each eligible date; may be negative. A zero-hour shift
	// still writes and counts as updated.
	Hours int `json:"hours"`
	// ThresholdDate (YYYY-MM-DD): records dated strictly earlier are skipped.
	ThresholdDate string `json:"thresholdDate" validate:"required"`
	// Filters is a generic attribute name to desired value map; empty targets
	// the whole collection.
	Filters map[string]string `json:"filters,omitempty"`
	// DateAttribute is the date-valued attribute to shift.
	DateAttribute string `json:"dateAttribute" validate:"required"`
}

// ShiftReport is the aggregated result of one time-shift run.
// Invariant: Updated + Failed + Skipped == TotalFound.
type ShiftReport struct {
	TotalFound int    `json:"total_found"`
	Updated    int    `json:"updated"`
	Failed     int    `json:"failed"`
	Skipped    int    `json:"skipped"`
	Complete   bool   `json:"complete"`
	Summary    string `json:"summary"`
}

// ResolverSpec is one entry of the reference-resolution pipeline: take the
// value of SourceField from the submission references, optionally truncate it
// to PrefixLength, and look it up by LookupAttribute in LookupCollectionID.
// The resolved identifier populates RelationAttribute on every created record.
type ResolverSpec struct {
	RelationAttribute  string `json:"relationAttribute"`
	SourceField        string `json:"sourceField"`
	PrefixLength       int    `json:"prefixLength,omitempty"`
	LookupCollectionID string `json:"lookupCollectionId"`
	LookupAttribute    string `json:"lookupAttribute"`
}

// LineItem is one logical unit of work inside a submission.
type LineItem struct {
	Quantity    any    `json:"quantity"`
	ProductID   string `json:"product_id,omitempty"`
	Description string `json:"description,omitempty"`
	Name        string `json:"name,omitempty"`
	Kind        string `json:"kind,omitempty"`
	Unit        string `json:"unit,omitempty"`
	// Extra holds additional free-text attributes keyed by attribute name.
	Extra map[string]string `json:"extra,omitempty"`
}

// SubmitRequest is a validated submission to be fanned out into every target
// collection. When Items is empty the top-level item fields are treated as a
// single implicit item.
type SubmitRequest struct {
	CorrelationID       string         `json:"correlation_id"`
	TargetCollectionIDs []string       `json:"-"`
	ResolverSpecs       []ResolverSpec `json:"-"`
	// References holds raw lookup values keyed by resolver source field.
	References map[string]string `json:"references,omitempty"`

	RequestedBy string `json:"requested_by"`
	RequestDate string `json:"request_date"`
	Supplier    string `json:"supplier"`
	Department  string `json:"department"`
	Urgent      any    `json:"urgent"`
	Recovered   any    `json:"recovered"`
	Notes       string `json:"notes"`

	Items []LineItem `json:"items,omitempty"`

	// Implicit single-item fields, used when Items is empty.
	Quantity     any               `json:"quantity,omitempty"`
	MaterialName string            `json:"material_name,omitempty"`
	MaterialKind string            `json:"material_kind,omitempty"`
	Unit         string            `json:"unit,omitempty"`
	Extra        map[string]string `json:"extra,omitempty"`
}

// SubmitReport is the aggregated result of one fan-out submission.
// Invariant: Succeeded + Failed == TotalItems.
type SubmitReport struct {
	CorrelationID   string            `json:"correlation_id"`
	TotalItems      int               `json:"total_items"`
	Succeeded       int               `json:"succeeded"`
	Failed          int               `json:"failed"`
	FirstRecordURLs map[string]string `json:"first_record_urls,omitempty"`
	ItemErrors      []model.ItemError `json:"item_errors,omitempty"`
	Message         string            `json:"message"`
}

// AttributeInfo describes one attribute of a collection for callers that need
// the available fields for filtering or display.
type AttributeInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// SyncUsecase is the engine contract the route layer depends on.
type SyncUsecase interface {
	ShiftDates(ctx context.Context, req ShiftDatesRequest) (*ShiftReport, model.OutcomeClass, error)
	Submit(ctx context.Context, req SubmitRequest) (*SubmitReport, model.OutcomeClass, error)
	ListAttributes(ctx context.Context, collectionID string) ([]AttributeInfo, error)
}
