package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/spec-kit/ticket-analytics/internal/domain"
)

// FilterSpec describes one request's filter selections. An empty allow-list
// leaves that dimension unconstrained; the dashboard defaults every
// multi-select to all values, so an empty list never means "match nothing".
// The date range applies only when both bounds are set.
type FilterSpec struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Priorities []string
	Channels   []string
	Statuses   []string
	Products   []string
}

// DateRangeActive reports whether the purchase-date constraint applies.
func (s FilterSpec) DateRangeActive() bool {
	return s.StartDate != nil && s.EndDate != nil
}

// Canonical returns a deterministic string form of the spec: allow-lists are
// sorted copies, dates are day-precision. Equal selections produce equal
// strings regardless of the order values were picked in, which makes it
// usable as cache key material.
func (s FilterSpec) Canonical() string {
	var b strings.Builder
	b.WriteString("range=")
	if s.DateRangeActive() {
		b.WriteString(s.StartDate.Format("2006-01-02"))
		b.WriteString("..")
		b.WriteString(s.EndDate.Format("2006-01-02"))
	}
	writeList := func(name string, vals []string) {
		b.WriteString(";")
		b.WriteString(name)
		b.WriteString("=")
		sorted := append([]string(nil), vals...)
		sort.Strings(sorted)
		b.WriteString(strings.Join(sorted, ","))
	}
	writeList("priority", s.Priorities)
	writeList("channel", s.Channels)
	writeList("status", s.Statuses)
	writeList("product", s.Products)
	return b.String()
}

// Apply returns the rows matching the spec, ANDed across dimensions, in
// input order. The result is always a fresh slice; the input is never
// mutated.
func Apply(rows []domain.Ticket, spec FilterSpec) []domain.Ticket {
	out := make([]domain.Ticket, 0, len(rows))
	for i := range rows {
		if matches(&rows[i], &spec) {
			out = append(out, rows[i])
		}
	}
	return out
}

func matches(t *domain.Ticket, spec *FilterSpec) bool {
	if spec.DateRangeActive() {
		// Rows without a purchase date drop out while the range is active.
		if t.PurchaseDate == nil {
			return false
		}
		day := dateOnly(*t.PurchaseDate)
		if day.Before(dateOnly(*spec.StartDate)) || day.After(dateOnly(*spec.EndDate)) {
			return false
		}
	}
	return allowed(t.Priority, spec.Priorities) &&
		allowed(t.Channel, spec.Channels) &&
		allowed(t.Status, spec.Statuses) &&
		allowed(t.Product, spec.Products)
}

func allowed(val string, allowList []string) bool {
	if len(allowList) == 0 {
		return true
	}
	for _, candidate := range allowList {
		if candidate == val {
			return true
		}
	}
	return false
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
