package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-analytics/internal/analytics"
	"github.com/spec-kit/ticket-analytics/internal/domain"
	"github.com/spec-kit/ticket-analytics/internal/service"
)

// AnalyticsHandler serves KPI and group-by endpoints.
type AnalyticsHandler struct {
	service *service.AnalyticsService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: analyticsService}
}

// KPIs GET /api/v1/analytics/kpis.
func (h *AnalyticsHandler) KPIs(c *fiber.Ctx) error {
	kpis, err := h.service.KPIs(c.UserContext(), parseFilterSpec(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": kpis})
}

// Satisfaction GET /api/v1/analytics/satisfaction.
func (h *AnalyticsHandler) Satisfaction(c *fiber.Ctx) error {
	stats, err := h.service.SatisfactionByGroup(c.UserContext(), parseFilterSpec(c), queryDimension(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

// Resolution GET /api/v1/analytics/resolution.
func (h *AnalyticsHandler) Resolution(c *fiber.Ctx) error {
	stats, err := h.service.ResolutionByGroup(c.UserContext(), parseFilterSpec(c), queryDimension(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

// Volume GET /api/v1/analytics/volume.
func (h *AnalyticsHandler) Volume(c *fiber.Ctx) error {
	counts, err := h.service.VolumeByGroup(c.UserContext(), parseFilterSpec(c), queryDimension(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": counts})
}

// FilterOptions GET /api/v1/filters/options.
func (h *AnalyticsHandler) FilterOptions(c *fiber.Ctx) error {
	opts, err := h.service.FilterOptions()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": opts})
}

func queryDimension(c *fiber.Ctx) domain.Dimension {
	return domain.Dimension(strings.TrimSpace(c.Query("group_by")))
}

// parseFilterSpec reads the common filter query parameters. Unparsable dates
// behave like an unset bound, mirroring the dashboard's lenient date picker.
func parseFilterSpec(c *fiber.Ctx) analytics.FilterSpec {
	return analytics.FilterSpec{
		StartDate:  parseDay(c.Query("start_date")),
		EndDate:    parseDay(c.Query("end_date")),
		Priorities: splitList(c.Query("priority")),
		Channels:   splitList(c.Query("channel")),
		Statuses:   splitList(c.Query("status")),
		Products:   splitList(c.Query("product")),
	}
}

func parseDay(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", val)
	if err != nil {
		return nil
	}
	return &t
}

func splitList(val string) []string {
	if val == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
