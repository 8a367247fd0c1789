package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	apperrors "opsbridge/internal/shared/errors"
	"opsbridge/internal/sync/domain/client"
	"opsbridge/internal/sync/domain/model"
)

// Submit fans a validated submission out into every configured target
// collection. One record is created per (item, target) pair; an item counts as
// succeeded only when every target accepted it. Writes are not atomic across
// targets: a failure on the second target does not roll back the record
// already created on the first.
func (e *Engine) Submit(ctx context.Context, req SubmitRequest) (*SubmitReport, model.OutcomeClass, error) {
	if req.CorrelationID == "" {
		req.CorrelationID = "REQ-" + strings.ToUpper(uuid.NewString()[:8])
		e.logger.WithFields(map[string]interface{}{
			"correlationID": req.CorrelationID,
		}).Warn("submission carried no correlation identifier, generated one")
	}
	if len(req.TargetCollectionIDs) == 0 {
		return nil, model.OutcomeServiceUnavailable,
			apperrors.NewConfigurationError("no target collections configured for submission")
	}

	// Item validation runs before any remote call so a submission with nothing
	// to register is rejected without touching the backend.
	items := e.collectItems(req)
	if len(items) == 0 {
		return nil, model.OutcomeValidationError,
			apperrors.NewValidationError("submission contains no valid items").
				WithDetail("correlation_id", req.CorrelationID)
	}

	registry := e.newSchemaRegistry()
	links := e.resolveReferences(ctx, registry, req.ResolverSpecs, req.References)
	common := e.buildCommonAttributes(req, links)

	e.logger.WithFields(map[string]interface{}{
		"correlationID": req.CorrelationID,
		"items":         len(items),
		"targets":       len(req.TargetCollectionIDs),
	}).Info("starting submission fan-out")

	outcome := e.fanOutCreate(ctx, req.TargetCollectionIDs, items, req, common)

	report := &SubmitReport{
		CorrelationID:   req.CorrelationID,
		TotalItems:      len(items),
		Succeeded:       outcome.Succeeded,
		Failed:          outcome.Failed,
		FirstRecordURLs: outcome.FirstSuccessRef,
		ItemErrors:      outcome.ItemErrors,
	}
	class := classifySubmit(report)
	report.Message = buildSubmitMessage(report, class)

	e.logger.WithFields(map[string]interface{}{
		"correlationID": req.CorrelationID,
		"succeeded":     report.Succeeded,
		"failed":        report.Failed,
		"outcome":       class.String(),
	}).Info("submission fan-out completed")
	return report, class, nil
}

// collectItems normalizes the submission into a non-empty item list. Explicit
// items are filtered individually; when none are given, the top-level fields
// form a single implicit item.
func (e *Engine) collectItems(req SubmitRequest) []LineItem {
	if len(req.Items) > 0 {
		valid := make([]LineItem, 0, len(req.Items))
		for i, item := range req.Items {
			if itemIsValid(item) {
				valid = append(valid, item)
				continue
			}
			e.logger.WithFields(map[string]interface{}{
				"correlationID": req.CorrelationID,
				"itemIndex":     i,
			}).Warn("item carries no usable content, dropping")
		}
		return valid
	}

	implicit := LineItem{
		Quantity: req.Quantity,
		Name:     req.MaterialName,
		Kind:     req.MaterialKind,
		Unit:     req.Unit,
		Extra:    req.Extra,
	}
	if !itemIsValid(implicit) {
		return nil
	}
	return []LineItem{implicit}
}

// itemIsValid keeps an item when it names something or carries a parsable
// quantity. A bare quantity is enough: some requisitions only restock a known
// line.
func itemIsValid(item LineItem) bool {
	if item.ProductID != "" || item.Name != "" || item.Kind != "" {
		return true
	}
	_, ok := model.CoerceNumber(item.Quantity)
	return ok
}

// buildCommonAttributes assembles the attribute payload shared by every record
// of the submission: correlation, requester metadata and resolved relations.
// Optional text fields are omitted when empty rather than written blank.
func (e *Engine) buildCommonAttributes(req SubmitRequest, links map[string]map[string]any) map[string]any {
	attrs := map[string]any{
		PropCorrelation: model.TextProperty(req.CorrelationID),
		PropUrgent:      model.CheckboxProperty(model.CoerceBool(req.Urgent)),
		PropRecovered:   model.CheckboxProperty(model.CoerceBool(req.Recovered)),
		PropStatus:      model.SelectProperty(defaultStatus),
	}
	if req.RequestedBy != "" {
		attrs[PropRequestedBy] = model.SelectProperty(req.RequestedBy)
	}
	if req.RequestDate != "" {
		if _, err := model.ParseWorkspaceTime(req.RequestDate); err != nil {
			e.logger.WithFields(map[string]interface{}{
				"correlationID": req.CorrelationID,
				"value":         req.RequestDate,
			}).Warn("request date is unparsable, omitting")
		} else {
			attrs[PropRequestDate] = model.DateProperty(req.RequestDate, "")
		}
	}
	if req.Supplier != "" {
		attrs[PropSupplier] = model.SelectProperty(req.Supplier)
	}
	if req.Department != "" {
		attrs[PropDepartment] = model.SelectProperty(req.Department)
	}
	if req.Notes != "" {
		attrs[PropNotes] = model.TextProperty(req.Notes)
	}
	for attribute, link := range links {
		attrs[attribute] = link
	}
	return attrs
}

// buildItemAttributes extends the common payload with the per-item fields. An
// unparsable quantity is written as zero with a warning instead of failing the
// item.
func (e *Engine) buildItemAttributes(req SubmitRequest, common map[string]any, item LineItem) map[string]any {
	attrs := make(map[string]any, len(common)+8)
	for name, value := range common {
		attrs[name] = value
	}

	quantity, ok := model.CoerceNumber(item.Quantity)
	if !ok && item.Quantity != nil {
		e.logger.WithFields(map[string]interface{}{
			"correlationID": req.CorrelationID,
			"value":         item.Quantity,
		}).Warn("item quantity is not numeric, writing zero")
	}
	attrs[PropQuantity] = model.NumberProperty(quantity)

	if item.ProductID != "" {
		attrs[PropProductID] = model.TextProperty(item.ProductID)
	}
	if item.Description != "" {
		attrs[PropProductDescription] = model.TextProperty(item.Description)
	}
	if item.Name != "" {
		attrs[PropMaterialName] = model.SelectProperty(item.Name)
	}
	if item.Kind != "" {
		attrs[PropMaterialKind] = model.SelectProperty(item.Kind)
	}
	if item.Unit != "" {
		attrs[PropUnit] = model.SelectProperty(item.Unit)
	}
	for name, value := range item.Extra {
		if value != "" {
			attrs[name] = model.TextProperty(value)
		}
	}
	return attrs
}

// fanOutCreate writes every item into every target sequentially, in input
// order, tallying per-item results. Processing always continues past failures
// so each item gets an independent verdict.
func (e *Engine) fanOutCreate(ctx context.Context, targetIDs []string, items []LineItem, req SubmitRequest, common map[string]any) *model.BatchOutcome {
	outcome := model.NewBatchOutcome()
	for i, item := range items {
		attrs := e.buildItemAttributes(req, common, item)
		itemOK := true
		for _, targetID := range targetIDs {
			record, err := e.client.CreateRecord(ctx, targetID, attrs)
			if err != nil {
				itemOK = false
				outcome.AddItemError(i, targetID, client.ErrorKind(err), err.Error())
				e.logger.WithFields(map[string]interface{}{
					"correlationID": req.CorrelationID,
					"itemIndex":     i,
					"targetID":      targetID,
					"error":         err,
				}).Error("record creation failed")
				continue
			}
			outcome.RecordFirstSuccess(targetID, record.URL)
		}
		if itemOK {
			outcome.Succeeded++
		} else {
			outcome.Failed++
		}
	}
	return outcome
}

func classifySubmit(report *SubmitReport) model.OutcomeClass {
	switch {
	case report.Failed == 0:
		return model.OutcomeOK
	case report.Succeeded > 0:
		return model.OutcomePartial
	default:
		return model.OutcomeInternalError
	}
}

func buildSubmitMessage(report *SubmitReport, class model.OutcomeClass) string {
	switch class {
	case model.OutcomeOK:
		return fmt.Sprintf("%d item(s) registered under %s.", report.Succeeded, report.CorrelationID)
	case model.OutcomePartial:
		return fmt.Sprintf("%d/%d item(s) registered under %s; the rest failed on at least one target.",
			report.Succeeded, report.TotalItems, report.CorrelationID)
	default:
		return fmt.Sprintf("no items could be registered under %s.", report.CorrelationID)
	}
}
