package handlers

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-analytics/internal/api/dto"
	"github.com/spec-kit/ticket-analytics/internal/domain"
	"github.com/spec-kit/ticket-analytics/internal/service"
)

// TicketsHandler serves the filtered table view and its CSV export.
type TicketsHandler struct {
	service *service.AnalyticsService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(analyticsService *service.AnalyticsService) *TicketsHandler {
	return &TicketsHandler{service: analyticsService}
}

// List GET /api/v1/tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	snap, rows, err := h.service.Filtered(parseFilterSpec(c))
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(rows))
	for i := range rows {
		items = append(items, ticketSummary(&rows[i]))
	}
	return c.JSON(fiber.Map{"data": dto.TicketListResponse{
		Items:        items,
		MatchedCount: len(rows),
		TotalCount:   len(snap.Tickets),
	}})
}

// Export GET /api/v1/tickets/export.
func (h *TicketsHandler) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	result, err := h.service.ExportCSV(c.UserContext(), parseFilterSpec(c), &buf)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", result.FileName))
	return c.Send(buf.Bytes())
}

func ticketSummary(t *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		TicketID:        t.ID,
		CustomerName:    t.CustomerName,
		Product:         t.Product,
		Type:            t.Type,
		Priority:        t.Priority,
		Status:          t.Status,
		Channel:         t.Channel,
		Satisfaction:    t.Satisfaction,
		ResolutionHours: t.ResolutionHours,
	}
}
