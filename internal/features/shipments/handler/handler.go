package handler

import (
	"errors"
	"net/http"
	"net/url"

	"cargo-tracker/internal/core/logger"
	"cargo-tracker/internal/features/shipments/domain"
	"cargo-tracker/internal/features/shipments/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ShipmentHandler handles HTTP requests for shipments and their stages.
type ShipmentHandler struct {
	service ports.ShipmentService
}

// NewShipmentHandler creates a new ShipmentHandler.
func NewShipmentHandler(service ports.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{
		service: service,
	}
}

// Register mounts the shipment routes on router.
func (h *ShipmentHandler) Register(router fiber.Router) {
	api := router.Group("/api")
	api.Get("/stages", h.ListStages)

	tracking := api.Group("/tracking")
	tracking.Get("/", h.ListShipments)
	tracking.Post("/", h.CreateShipment)
	tracking.Put("/bulk-update", h.BulkUpdateStatus)
	tracking.Get("/:number", h.TrackShipment)
	tracking.Put("/:id/status", h.UpdateStatus)
	tracking.Delete("/:id", h.DeleteShipment)
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}

// StageResponse is one entry of the stage catalog.
type StageResponse struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Glyph string `json:"glyph"`
}

// CreateShipmentRequest represents the request body for creating a shipment.
type CreateShipmentRequest struct {
	TrackingNumber string `json:"tracking_number"`
	CustomerName   string `json:"customer_name"`
	// TransportMode is Air or Sea. Defaults to Air.
	TransportMode string `json:"transport_mode"`
	// Status is the initial stage. Defaults to the first stage.
	Status string `json:"status"`
}

// UpdateStatusRequest represents the request body for a single status update.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// BulkUpdateRequest represents the request body for a bulk status update.
type BulkUpdateRequest struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status"`
}

// TrackingResponse is the customer view of a shipment.
type TrackingResponse struct {
	*domain.Shipment
	// CurrentStageIndex is the index of the last completed stage, -1 if none.
	CurrentStageIndex int `json:"current_stage_index"`
	// CurrentStage is the name of the last completed stage, empty if none.
	CurrentStage string `json:"current_stage"`
}

func newTrackingResponse(s *domain.Shipment) TrackingResponse {
	resp := TrackingResponse{
		Shipment:          s,
		CurrentStageIndex: s.CurrentStageIndex(),
	}
	if stage, ok := s.CurrentStage(); ok {
		resp.CurrentStage = stage.Name
	}
	return resp
}

// ListStages handles GET /api/stages.
// @Summary List stages
// @Description Returns the ordered stage catalog every shipment is built from.
// @Tags Stages
// @Produce json
// @Success 200 {array} StageResponse
// @Router /api/stages [get]
func (h *ShipmentHandler) ListStages(c *fiber.Ctx) error {
	defs := h.service.Stages()

	stages := make([]StageResponse, len(defs))
	for i, def := range defs {
		stages[i] = StageResponse{Index: i, Name: def.Name, Glyph: def.Glyph}
	}

	return c.Status(http.StatusOK).JSON(stages)
}

// ListShipments handles GET /api/tracking.
// @Summary List shipments
// @Description Returns every shipment for the operator dashboard.
// @Tags Tracking
// @Produce json
// @Success 200 {array} TrackingResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/tracking [get]
func (h *ShipmentHandler) ListShipments(c *fiber.Ctx) error {
	shipments, err := h.service.ListShipments(c.Context())
	if err != nil {
		return h.fail(c, err)
	}

	resp := make([]TrackingResponse, len(shipments))
	for i := range shipments {
		resp[i] = newTrackingResponse(&shipments[i])
	}

	return c.Status(http.StatusOK).JSON(resp)
}

// CreateShipment handles POST /api/tracking.
// @Summary Create a shipment
// @Description Creates a shipment with its stages completed up to the initial status.
// @Tags Tracking
// @Accept json
// @Produce json
// @Param shipment body CreateShipmentRequest true "Shipment details"
// @Success 201 {object} TrackingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/tracking [post]
func (h *ShipmentHandler) CreateShipment(c *fiber.Ctx) error {
	var req CreateShipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, http.StatusBadRequest, "Invalid request body")
	}

	shipment, err := h.service.CreateShipment(c.Context(), domain.NewShipmentParams{
		TrackingNumber: req.TrackingNumber,
		CustomerName:   req.CustomerName,
		TransportMode:  req.TransportMode,
		Status:         req.Status,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(http.StatusCreated).JSON(newTrackingResponse(shipment))
}

// TrackShipment handles GET /api/tracking/:number.
// @Summary Track a shipment
// @Description Customer lookup by tracking number, including the current stage.
// @Tags Tracking
// @Produce json
// @Param number path string true "Tracking Number"
// @Success 200 {object} TrackingResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/tracking/{number} [get]
func (h *ShipmentHandler) TrackShipment(c *fiber.Ctx) error {
	// Route params arrive percent-encoded.
	number, err := url.PathUnescape(c.Params("number"))
	if err != nil {
		return respond(c, http.StatusBadRequest, "Invalid tracking number")
	}

	shipment, err := h.service.TrackShipment(c.Context(), number)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(http.StatusOK).JSON(newTrackingResponse(shipment))
}

// UpdateStatus handles PUT /api/tracking/:id/status.
// @Summary Update a shipment status
// @Description Moves one shipment to the given stage, forwards or backwards.
// @Tags Tracking
// @Accept json
// @Produce json
// @Param id path string true "Shipment ID"
// @Param status body UpdateStatusRequest true "Target status"
// @Success 200 {object} TrackingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/tracking/{id}/status [put]
func (h *ShipmentHandler) UpdateStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, http.StatusBadRequest, "Invalid request body")
	}

	shipment, err := h.service.UpdateStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(http.StatusOK).JSON(newTrackingResponse(shipment))
}

// BulkUpdateStatus handles PUT /api/tracking/bulk-update.
// @Summary Bulk update shipment status
// @Description Moves every selected shipment to the same stage.
// @Tags Tracking
// @Accept json
// @Produce json
// @Param update body BulkUpdateRequest true "Selected shipment IDs and target status"
// @Success 200 {object} domain.BulkUpdateResult
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/tracking/bulk-update [put]
func (h *ShipmentHandler) BulkUpdateStatus(c *fiber.Ctx) error {
	var req BulkUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, http.StatusBadRequest, "Invalid request body")
	}

	result, err := h.service.BulkUpdateStatus(c.Context(), req.IDs, req.Status)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(http.StatusOK).JSON(result)
}

// DeleteShipment handles DELETE /api/tracking/:id.
// @Summary Delete a shipment
// @Tags Tracking
// @Produce json
// @Param id path string true "Shipment ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /api/tracking/{id} [delete]
func (h *ShipmentHandler) DeleteShipment(c *fiber.Ctx) error {
	if err := h.service.DeleteShipment(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Shipment deleted successfully",
	})
}

// fail maps a service error onto an HTTP status.
func (h *ShipmentHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrEmptySelection):
		return respond(c, http.StatusBadRequest, "Please select at least one shipment")
	case errors.Is(err, domain.ErrUnknownStage):
		return respond(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrTrackingNumberRequired),
		errors.Is(err, domain.ErrInvalidTrackingNumber),
		errors.Is(err, domain.ErrCustomerNameRequired),
		errors.Is(err, domain.ErrInvalidTransportMode):
		return respond(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrDuplicateTrackingNumber):
		return respond(c, http.StatusConflict, "Tracking number already exists")
	case errors.Is(err, domain.ErrShipmentNotFound):
		return respond(c, http.StatusNotFound, "Tracking number not found")
	}

	logger.Get().Error("Shipment request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.String("ray_id", rayID(c)),
		zap.Error(err),
	)
	return respond(c, http.StatusInternalServerError, "Internal server error")
}

func respond(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{
		Message: msg,
		RayID:   rayID(c),
	})
}

func rayID(c *fiber.Ctx) string {
	id, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return id
}
