package model

// OutcomeClass is the aggregate classification the engine returns to its
// caller. The route layer maps it to a transport-level status.
type OutcomeClass int

const (
	OutcomeOK OutcomeClass = iota
	OutcomePartial
	OutcomeValidationError
	OutcomeServiceUnavailable
	OutcomeInternalError
)

// HTTPStatus maps the outcome class to the HTTP status used at the boundary.
func (o OutcomeClass) HTTPStatus() int {
	switch o {
	case OutcomeOK:
		return 200
	case OutcomePartial:
		return 207
	case OutcomeValidationError:
		return 400
	case OutcomeServiceUnavailable:
		return 503
	default:
		return 500
	}
}

// String returns the wire name of the outcome class.
func (o OutcomeClass) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomePartial:
		return "partial"
	case OutcomeValidationError:
		return "validation_error"
	case OutcomeServiceUnavailable:
		return "service_unavailable"
	default:
		return "internal_error"
	}
}

// ItemError records one failed (item, target) pair with enough context to
// reproduce the failure.
type ItemError struct {
	ItemIndex int    `json:"item_index"`
	TargetID  string `json:"target_id"`
	Kind      string `json:"kind"`
	Message   string `json:"message"`
}

// BatchOutcome accumulates per-item results during fan-out processing and is
// finalized exactly once into the response. Invariant:
// Succeeded + Failed + Skipped == total items considered.
type BatchOutcome struct {
	Succeeded       int
	Failed          int
	Skipped         int
	FirstSuccessRef map[string]string
	ItemErrors      []ItemError
}

// NewBatchOutcome creates an empty outcome accumulator.
func NewBatchOutcome() *BatchOutcome {
	return &BatchOutcome{FirstSuccessRef: make(map[string]string)}
}

// RecordFirstSuccess captures the locator of the first successful record per
// target, in input order. Later successes for the same target are ignored.
func (b *BatchOutcome) RecordFirstSuccess(targetID, locator string) {
	if locator == "" {
		return
	}
	if _, ok := b.FirstSuccessRef[targetID]; !ok {
		b.FirstSuccessRef[targetID] = locator
	}
}

// AddItemError appends one failed (item, target) pair.
func (b *BatchOutcome) AddItemError(itemIndex int, targetID, kind, message string) {
	b.ItemErrors = append(b.ItemErrors, ItemError{
		ItemIndex: itemIndex,
		TargetID:  targetID,
		Kind:      kind,
		Message:   message,
	})
}
