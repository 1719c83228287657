package dataset

import (
	"strconv"
	"time"

	"github.com/spec-kit/ticket-analytics/internal/domain"
)

// Timestamp layouts the source data has been observed to use. A bare number
// matches none of them, so a numeric "Time to Resolution" cell degrades to
// nil rather than being read as a duration (see DESIGN.md).
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// Clean coerces raw rows into typed tickets and derives the resolution
// duration. Pure: the input is not modified and every call over the same
// input yields the same output.
//
// Per row:
//   - satisfaction parses to float, unparsable to nil
//   - purchase date and first response parse to time, unparsable to nil
//   - resolution parses as a timestamp; the derived duration is
//     resolution minus first response in fractional hours, nil when the
//     first response is missing, nil when the difference is zero or negative
func Clean(raws []domain.RawTicket) []domain.Ticket {
	out := make([]domain.Ticket, 0, len(raws))
	for i := range raws {
		out = append(out, cleanRow(&raws[i]))
	}
	return out
}

func cleanRow(raw *domain.RawTicket) domain.Ticket {
	t := domain.Ticket{
		ID:           raw.ID,
		CustomerName: raw.CustomerName,
		Product:      raw.Product,
		Type:         raw.Type,
		Priority:     raw.Priority,
		Status:       raw.Status,
		Channel:      raw.Channel,
	}

	t.Satisfaction = parseFloat(raw.Satisfaction)
	t.PurchaseDate = parseDate(raw.PurchaseDate)
	t.FirstResponseAt = parseTimestamp(raw.FirstResponseAt)
	t.ResolutionAt = parseTimestamp(raw.Resolution)

	if t.FirstResponseAt != nil && t.ResolutionAt != nil {
		hours := t.ResolutionAt.Sub(*t.FirstResponseAt).Hours()
		if hours > 0 {
			t.ResolutionHours = &hours
		}
	}
	return t
}

func parseFloat(val string) *float64 {
	if val == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

func parseTimestamp(val string) *time.Time {
	if val == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, val); err == nil {
			return &parsed
		}
	}
	return nil
}

func parseDate(val string) *time.Time {
	if val == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, val); err == nil {
			day := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			return &day
		}
	}
	return nil
}
