package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"opsbridge/internal/shared/eventbus"
	apperrors "opsbridge/internal/shared/errors"
	"opsbridge/internal/shared/logger"
	"opsbridge/internal/sync/adapter/events"
	"opsbridge/internal/sync/config"
	"opsbridge/internal/sync/domain/model"
	"opsbridge/internal/sync/usecase"
)

// Handler exposes the sync engine over HTTP. It owns the mapping from engine
// outcome classes to HTTP statuses; the engine itself knows nothing about the
// transport.
type Handler struct {
	engine usecase.SyncUsecase
	cfg    *config.Config
	logger logger.Logger
	bus    *eventbus.EventBus
}

// NewHandler creates the HTTP handler for the sync routes.
func NewHandler(engine usecase.SyncUsecase, cfg *config.Config, log logger.Logger, bus *eventbus.EventBus) *Handler {
	return &Handler{
		engine: engine,
		cfg:    cfg,
		logger: log.WithComponent("sync_http"),
		bus:    bus,
	}
}

// RegisterRoutes mounts the sync routes on the given router.
func (h *Handler) RegisterRoutes(router fiber.Router) {
	router.Post("/requisitions", h.SubmitRequisition)
	router.Post("/schedule/shift", h.ShiftSchedule)
	router.Get("/collections/:collectionID/attributes", h.ListCollectionAttributes)
}

// submitBody is the wire shape of a requisition submission. Dimension fields
// are top-level in the body and folded into per-item extras before reaching
// the engine.
type submitBody struct {
	usecase.SubmitRequest
	WorkItem string `json:"work_item"`
	Length   string `json:"length"`
	Width    string `json:"width"`
	Height   string `json:"height"`
	Diameter string `json:"diameter"`
}

// SubmitRequisition handles POST /requisitions.
func (h *Handler) SubmitRequisition(c *fiber.Ctx) error {
	var body submitBody
	if err := c.BodyParser(&body); err != nil {
		h.logger.Error("Failed to parse requisition body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request_body",
			"message": "Failed to parse request body",
		})
	}
	if err := h.cfg.Validate(); err != nil {
		return h.configUnavailable(c, err)
	}

	req := body.SubmitRequest
	if req.RequestedBy == "" {
		req.RequestedBy = RequesterFromCtx(c)
	}
	if req.References == nil {
		req.References = make(map[string]string)
	}
	if body.WorkItem != "" {
		req.References["work_item"] = body.WorkItem
	}
	req.Extra = mergeDimensions(req.Extra, body)
	req.TargetCollectionIDs = []string{h.cfg.RequisitionsPrimaryID, h.cfg.RequisitionsMirrorID}
	req.ResolverSpecs = []usecase.ResolverSpec{
		{
			RelationAttribute:  usecase.PropWorkItemRelation,
			SourceField:        "work_item",
			LookupCollectionID: h.cfg.WorkItemsID,
			LookupAttribute:    usecase.PropWorkItemCode,
		},
		{
			RelationAttribute:  usecase.PropProjectRelation,
			SourceField:        "work_item",
			PrefixLength:       7,
			LookupCollectionID: h.cfg.ProjectsID,
			LookupAttribute:    usecase.PropProjectCode,
		},
	}

	report, outcome, err := h.engine.Submit(c.UserContext(), req)
	if err != nil {
		h.logger.Error("Requisition submission rejected", "error", err,
			"correlationID", req.CorrelationID)
		return h.rejected(c, outcome, err, req.CorrelationID)
	}

	h.publishOutcome(c, events.OutcomeEvent{
		CorrelationID: report.CorrelationID,
		Operation:     "submit_requisition",
		Outcome:       outcome,
		Succeeded:     report.Succeeded,
		Failed:        report.Failed,
		At:            time.Now().UTC(),
	})
	return c.Status(outcome.HTTPStatus()).JSON(report)
}

// mergeDimensions folds the dimension fields into the extra attribute map so
// they reach the created records as plain text attributes.
func mergeDimensions(extra map[string]string, body submitBody) map[string]string {
	dims := map[string]string{
		usecase.PropLength:   body.Length,
		usecase.PropWidth:    body.Width,
		usecase.PropHeight:   body.Height,
		usecase.PropDiameter: body.Diameter,
	}
	for name, value := range dims {
		if value == "" {
			continue
		}
		if extra == nil {
			extra = make(map[string]string)
		}
		extra[name] = value
	}
	return extra
}

// shiftBody is the wire shape of a schedule shift. The target collection and
// date attribute come from configuration, never from the caller.
type shiftBody struct {
	Hours         int               `json:"hours"`
	ThresholdDate string            `json:"thresholdDate"`
	Filters       map[string]string `json:"filters"`
}

// ShiftSchedule handles POST /schedule/shift.
func (h *Handler) ShiftSchedule(c *fiber.Ctx) error {
	var body shiftBody
	if err := c.BodyParser(&body); err != nil {
		h.logger.Error("Failed to parse schedule shift body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request_body",
			"message": "Failed to parse request body",
		})
	}
	if err := h.cfg.Validate(); err != nil {
		return h.configUnavailable(c, err)
	}

	report, outcome, err := h.engine.ShiftDates(c.UserContext(), usecase.ShiftDatesRequest{
		CollectionID:  h.cfg.ScheduleID,
		Hours:         body.Hours,
		ThresholdDate: body.ThresholdDate,
		Filters:       body.Filters,
		DateAttribute: h.cfg.DateAttribute,
	})
	if err != nil {
		h.logger.Error("Schedule shift rejected", "error", err)
		return h.rejected(c, outcome, err, "")
	}

	h.publishOutcome(c, events.OutcomeEvent{
		Operation: "shift_schedule",
		Outcome:   outcome,
		Succeeded: report.Updated,
		Failed:    report.Failed,
		Skipped:   report.Skipped,
		At:        time.Now().UTC(),
	})
	return c.Status(outcome.HTTPStatus()).JSON(report)
}

// ListCollectionAttributes handles GET /collections/:collectionID/attributes.
func (h *Handler) ListCollectionAttributes(c *fiber.Ctx) error {
	collectionID := c.Params("collectionID")
	attrs, err := h.engine.ListAttributes(c.UserContext(), collectionID)
	if err != nil {
		h.logger.Error("Failed to list collection attributes", "error", err,
			"collectionID", collectionID)
		if apperrors.IsConfiguration(err) || apperrors.IsSchemaFetch(err) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error":   "schema_unavailable",
				"message": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "list_attributes_failed",
			"message": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"collection_id": collectionID,
		"attributes":    attrs,
	})
}

func (h *Handler) rejected(c *fiber.Ctx, outcome model.OutcomeClass, err error, correlationID string) error {
	payload := fiber.Map{
		"error":   outcome.String(),
		"message": err.Error(),
	}
	if correlationID != "" {
		payload["correlation_id"] = correlationID
	}
	if appErr, ok := err.(*apperrors.AppError); ok && len(appErr.Details) > 0 {
		payload["details"] = appErr.Details
	}
	return c.Status(outcome.HTTPStatus()).JSON(payload)
}

func (h *Handler) configUnavailable(c *fiber.Ctx, err error) error {
	h.logger.Error("Configuration incomplete, refusing request", "error", err)
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error":   "configuration_incomplete",
		"message": err.Error(),
	})
}

func (h *Handler) publishOutcome(c *fiber.Ctx, event events.OutcomeEvent) {
	if h.bus == nil {
		return
	}
	h.bus.PublishAndForget(c.UserContext(), event)
}
