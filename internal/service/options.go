package service

import (
	"time"

	"github.com/spec-kit/ticket-analytics/internal/domain"
)

// FilterOptions lists the selectable values per filter dimension plus the
// purchase-date bounds for the dashboard's date picker. Values appear in
// first-seen dataset order; missing values are never offered as options even
// though the rows carrying them stay in the table.
type FilterOptions struct {
	Priorities      []string   `json:"priorities"`
	Channels        []string   `json:"channels"`
	Statuses        []string   `json:"statuses"`
	Products        []string   `json:"products"`
	MinPurchaseDate *time.Time `json:"min_purchase_date"`
	MaxPurchaseDate *time.Time `json:"max_purchase_date"`
}

// FilterOptions derives the option lists from the active snapshot.
func (s *AnalyticsService) FilterOptions() (FilterOptions, error) {
	snap, err := s.CurrentSnapshot()
	if err != nil {
		return FilterOptions{}, err
	}

	opts := FilterOptions{
		Priorities: distinct(snap.Tickets, domain.DimensionPriority),
		Channels:   distinct(snap.Tickets, domain.DimensionChannel),
		Statuses:   distinct(snap.Tickets, domain.DimensionStatus),
		Products:   distinct(snap.Tickets, domain.DimensionProduct),
	}
	for i := range snap.Tickets {
		d := snap.Tickets[i].PurchaseDate
		if d == nil {
			continue
		}
		if opts.MinPurchaseDate == nil || d.Before(*opts.MinPurchaseDate) {
			opts.MinPurchaseDate = d
		}
		if opts.MaxPurchaseDate == nil || d.After(*opts.MaxPurchaseDate) {
			opts.MaxPurchaseDate = d
		}
	}
	return opts, nil
}

func distinct(rows []domain.Ticket, dim domain.Dimension) []string {
	seen := make(map[string]bool)
	out := []string{}
	for i := range rows {
		val, ok := rows[i].DimensionValue(dim)
		if !ok || seen[val] {
			continue
		}
		seen[val] = true
		out = append(out, val)
	}
	return out
}
