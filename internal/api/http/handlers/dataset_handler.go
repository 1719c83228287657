package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-analytics/internal/api/dto"
	"github.com/spec-kit/ticket-analytics/internal/service"
)

// DatasetHandler exposes the explicit snapshot reload.
type DatasetHandler struct {
	service *service.AnalyticsService
}

// NewDatasetHandler constructs handler.
func NewDatasetHandler(analyticsService *service.AnalyticsService) *DatasetHandler {
	return &DatasetHandler{service: analyticsService}
}

// Reload POST /api/v1/dataset/reload. On failure the previous snapshot keeps
// serving and the source error is returned as-is.
func (h *DatasetHandler) Reload(c *fiber.Ctx) error {
	snap, err := h.service.Reload(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ReloadResponse{
		Version:  snap.Version,
		RowCount: len(snap.Tickets),
		LoadedAt: snap.LoadedAt,
	}})
}
