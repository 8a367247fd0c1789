package usecase

import (
	"context"
	"fmt"
	"time"

	apperrors "opsbridge/internal/shared/errors"
	"opsbridge/internal/sync/domain/model"
)

// ShiftDates queries the filtered records of a collection and shifts the date
// attribute of every eligible record by the requested number of hours. Records
// dated strictly before the threshold are skipped: the cutoff is a guardrail
// against shifting historical records. Per-record update failures are tallied,
// never raised, so one failing record does not abort the rest of the batch.
func (e *Engine) ShiftDates(ctx context.Context, req ShiftDatesRequest) (*ShiftReport, model.OutcomeClass, error) {
	if req.CollectionID == "" {
		return nil, model.OutcomeServiceUnavailable,
			apperrors.NewConfigurationError("collection identifier missing for date shift")
	}
	if req.DateAttribute == "" {
		return nil, model.OutcomeServiceUnavailable,
			apperrors.NewConfigurationError("date attribute name missing for date shift")
	}
	threshold, err := time.Parse("2006-01-02", req.ThresholdDate)
	if err != nil {
		return nil, model.OutcomeValidationError,
			apperrors.NewValidationError(
				fmt.Sprintf("invalid threshold date %q, expected YYYY-MM-DD", req.ThresholdDate)).WithCause(err)
	}

	registry := e.newSchemaRegistry()
	var conditions []model.FilterCondition
	if len(req.Filters) > 0 {
		schema, err := registry.GetSchema(ctx, req.CollectionID)
		if err != nil {
			return nil, model.OutcomeServiceUnavailable, err
		}
		conditions = e.BuildConditions(schema, req.Filters)
	}

	records, complete := e.QueryAll(ctx, req.CollectionID, conditions, defaultPageSize)
	report := &ShiftReport{TotalFound: len(records), Complete: complete}

	e.logger.WithFields(map[string]interface{}{
		"collectionID": req.CollectionID,
		"hours":        req.Hours,
		"threshold":    req.ThresholdDate,
		"totalFound":   report.TotalFound,
	}).Info("starting date shift")

	for _, record := range records {
		e.shiftRecord(ctx, record, req, threshold, report)
	}

	report.Summary = e.buildShiftSummary(req, report)
	outcome := classifyShift(report)

	e.logger.WithFields(map[string]interface{}{
		"updated": report.Updated,
		"failed":  report.Failed,
		"skipped": report.Skipped,
		"outcome": outcome.String(),
	}).Info("date shift completed")
	return report, outcome, nil
}

func (e *Engine) shiftRecord(ctx context.Context, record model.ExternalRecord, req ShiftDatesRequest, threshold time.Time, report *ShiftReport) {
	date, ok := record.DateAttribute(req.DateAttribute)
	if !ok {
		e.logger.WithFields(map[string]interface{}{
			"recordID":  record.ID,
			"attribute": req.DateAttribute,
		}).Info("record has no valid date attribute, skipping")
		report.Skipped++
		return
	}

	start, err := model.ParseWorkspaceTime(date.Start)
	if err != nil {
		e.logger.WithFields(map[string]interface{}{
			"recordID": record.ID,
			"value":    date.Start,
			"error":    err,
		}).Warn("record date is unparsable, skipping")
		report.Skipped++
		return
	}

	// Only records on or after the threshold day are eligible.
	if start.Truncate(24 * time.Hour).Before(threshold) {
		e.logger.WithFields(map[string]interface{}{
			"recordID": record.ID,
			"start":    date.Start,
		}).Info("record dated before threshold, skipping")
		report.Skipped++
		return
	}

	shift := time.Duration(req.Hours) * time.Hour
	newStart := start.Add(shift)
	newEnd := ""
	if date.End != "" {
		end, err := model.ParseWorkspaceTime(date.End)
		if err != nil {
			e.logger.WithFields(map[string]interface{}{
				"recordID": record.ID,
				"value":    date.End,
			}).Warn("record end date is unparsable, dropping end on update")
		} else {
			newEnd = model.FormatWorkspaceTime(end.Add(shift))
		}
	}

	attrs := map[string]any{
		req.DateAttribute: model.DateProperty(model.FormatWorkspaceTime(newStart), newEnd),
	}
	if _, err := e.client.UpdateRecord(ctx, record.ID, attrs); err != nil {
		e.logger.WithFields(map[string]interface{}{
			"recordID": record.ID,
			"error":    err,
		}).Error("failed to update record date")
		report.Failed++
		return
	}
	report.Updated++
}

func (e *Engine) buildShiftSummary(req ShiftDatesRequest, report *ShiftReport) string {
	if report.TotalFound == 0 {
		return fmt.Sprintf("No records matched the filters; nothing to shift (threshold %s).", req.ThresholdDate)
	}
	sign := ""
	if req.Hours >= 0 {
		sign = "+"
	}
	summary := fmt.Sprintf(
		"Date shift of %s%d hours from %s (inclusive): %d records reviewed, %d updated, %d skipped, %d failed.",
		sign, req.Hours, req.ThresholdDate,
		report.TotalFound, report.Updated, report.Skipped, report.Failed)
	if !report.Complete {
		summary += " Warning: retrieval was incomplete, some matching records were not reviewed."
	}
	if report.Failed > 0 {
		summary += " Warning: some updates failed, check server logs for per-record details."
	}
	return summary
}

func classifyShift(report *ShiftReport) model.OutcomeClass {
	switch {
	case report.TotalFound == 0:
		return model.OutcomeOK
	case report.Failed == 0:
		return model.OutcomeOK
	case report.Updated > 0:
		return model.OutcomePartial
	default:
		return model.OutcomeInternalError
	}
}
