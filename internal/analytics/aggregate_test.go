package analytics_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/spec-kit/ticket-analytics/internal/analytics"
	"github.com/spec-kit/ticket-analytics/internal/domain"
)

func f(v float64) *float64 { return &v }

func TestComputeKPIsEmptyTable(t *testing.T) {
	kpis := analytics.ComputeKPIs(nil)

	gt.Equal(t, kpis.TotalTickets, 0)
	gt.Nil(t, kpis.AvgSatisfaction)
	gt.Nil(t, kpis.AvgResolutionHours)
	gt.Equal(t, kpis.OpenTickets, 0)
	gt.Equal(t, kpis.ClosedTickets, 0)
}

func TestComputeKPIs(t *testing.T) {
	rows := []domain.Ticket{
		{Status: "Open", Satisfaction: f(5), ResolutionHours: f(2)},
		{Status: "Closed", Satisfaction: f(3), ResolutionHours: f(4)},
		{Status: "Closed", Satisfaction: nil, ResolutionHours: nil},
		{Status: "open"}, // case-sensitive: not an Open ticket
		{Status: "Pending"},
	}
	kpis := analytics.ComputeKPIs(rows)

	gt.Equal(t, kpis.TotalTickets, 5)
	gt.V(t, kpis.AvgSatisfaction).NotNil()
	gt.Equal(t, *kpis.AvgSatisfaction, 4.0)
	gt.V(t, kpis.AvgResolutionHours).NotNil()
	gt.Equal(t, *kpis.AvgResolutionHours, 3.0)
	gt.Equal(t, kpis.OpenTickets, 1)
	gt.Equal(t, kpis.ClosedTickets, 2)
}

func TestSatisfactionByGroup(t *testing.T) {
	rows := []domain.Ticket{
		{Priority: "High", Satisfaction: f(5)},
		{Priority: "High", Satisfaction: f(3)},
		{Priority: "Low", Satisfaction: f(4)},
		{Priority: "Critical"}, // no rating: excluded entirely
	}
	stats := analytics.SatisfactionByGroup(rows, domain.DimensionPriority)

	gt.Equal(t, len(stats), 2)
	// High and Low tie at 4.0; first-seen order breaks the tie.
	gt.Equal(t, *stats[0].Group, "High")
	gt.Equal(t, stats[0].Mean, 4.0)
	gt.Equal(t, stats[0].Count, 2)
	gt.Equal(t, *stats[1].Group, "Low")
	gt.Equal(t, stats[1].Mean, 4.0)
	gt.Equal(t, stats[1].Count, 1)

	// Per-group counts cover exactly the rated rows.
	total := 0
	for _, s := range stats {
		total += s.Count
	}
	gt.Equal(t, total, 3)
}

func TestSatisfactionByGroupSortsDescending(t *testing.T) {
	rows := []domain.Ticket{
		{Channel: "Email", Satisfaction: f(2)},
		{Channel: "Chat", Satisfaction: f(5)},
		{Channel: "Phone", Satisfaction: f(3)},
	}
	stats := analytics.SatisfactionByGroup(rows, domain.DimensionChannel)

	gt.Equal(t, *stats[0].Group, "Chat")
	gt.Equal(t, *stats[1].Group, "Phone")
	gt.Equal(t, *stats[2].Group, "Email")
}

func TestSatisfactionByGroupEmptyInput(t *testing.T) {
	gt.Equal(t, len(analytics.SatisfactionByGroup(nil, domain.DimensionPriority)), 0)
	// Rows exist but none carry a rating.
	rows := []domain.Ticket{{Priority: "High"}, {Priority: "Low"}}
	gt.Equal(t, len(analytics.SatisfactionByGroup(rows, domain.DimensionPriority)), 0)
}

func TestSatisfactionByGroupNullGroup(t *testing.T) {
	rows := []domain.Ticket{
		{Priority: "High", Satisfaction: f(4)},
		{Priority: "", Satisfaction: f(2)},
	}
	stats := analytics.SatisfactionByGroup(rows, domain.DimensionPriority)

	gt.Equal(t, len(stats), 2)
	gt.Nil(t, stats[1].Group)
	gt.Equal(t, stats[1].Mean, 2.0)
}

func TestResolutionByGroupSortsAscending(t *testing.T) {
	rows := []domain.Ticket{
		{Priority: "Low", ResolutionHours: f(48)},
		{Priority: "Critical", ResolutionHours: f(4)},
		{Priority: "High", ResolutionHours: f(12)},
		{Priority: "High", ResolutionHours: nil},
	}
	stats := analytics.ResolutionByGroup(rows, domain.DimensionPriority)

	gt.Equal(t, len(stats), 3)
	gt.Equal(t, *stats[0].Group, "Critical")
	gt.Equal(t, *stats[1].Group, "High")
	gt.Equal(t, stats[1].Count, 1)
	gt.Equal(t, *stats[2].Group, "Low")
}

func TestVolumeByGroup(t *testing.T) {
	rows := []domain.Ticket{
		{Channel: "Email"},
		{Channel: "Email"},
		{Channel: "Chat"},
		{Channel: ""},
	}
	counts := analytics.VolumeByGroup(rows, domain.DimensionChannel)

	gt.Equal(t, len(counts), 3)
	gt.Equal(t, *counts[0].Group, "Email")
	gt.Equal(t, counts[0].Count, 2)

	// Every row is counted, the missing-channel row under a nil group.
	total := 0
	sawNil := false
	for _, c := range counts {
		total += c.Count
		if c.Group == nil {
			sawNil = true
		}
	}
	gt.Equal(t, total, len(rows))
	gt.True(t, sawNil)
}
