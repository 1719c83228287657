package analytics_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/spec-kit/ticket-analytics/internal/analytics"
	"github.com/spec-kit/ticket-analytics/internal/domain"
)

func day(value string) *time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return &t
}

func sampleTable() []domain.Ticket {
	return []domain.Ticket{
		{ID: "1", Priority: "High", Channel: "Email", Status: "Open", Product: "GoPro Hero", PurchaseDate: day("2021-01-10")},
		{ID: "2", Priority: "Low", Channel: "Chat", Status: "Closed", Product: "SoundWave 300", PurchaseDate: day("2021-02-20")},
		{ID: "3", Priority: "High", Channel: "Phone", Status: "Closed", Product: "GoPro Hero", PurchaseDate: nil},
		{ID: "4", Priority: "Critical", Channel: "Email", Status: "Pending", Product: "Dell XPS", PurchaseDate: day("2021-03-05")},
	}
}

func ids(rows []domain.Ticket) []string {
	out := make([]string, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ID)
	}
	return out
}

func TestApplyWithoutConstraintsReturnsEverything(t *testing.T) {
	table := sampleTable()
	got := analytics.Apply(table, analytics.FilterSpec{})

	gt.True(t, reflect.DeepEqual(got, table))
	// The result is an independent view, not the input slice.
	got[0].ID = "mutated"
	gt.Equal(t, table[0].ID, "1")
}

func TestApplyAllowList(t *testing.T) {
	got := analytics.Apply(sampleTable(), analytics.FilterSpec{Priorities: []string{"High"}})
	gt.Equal(t, ids(got), []string{"1", "3"})

	// An empty allow-list is "unfiltered", never "exclude all".
	got = analytics.Apply(sampleTable(), analytics.FilterSpec{Priorities: []string{}})
	gt.Equal(t, len(got), 4)
}

func TestApplyDateRange(t *testing.T) {
	spec := analytics.FilterSpec{StartDate: day("2021-01-10"), EndDate: day("2021-02-20")}
	got := analytics.Apply(sampleTable(), spec)

	// Bounds are inclusive on both ends; the nil purchase date drops out
	// while the range is active.
	gt.Equal(t, ids(got), []string{"1", "2"})

	// With only one bound set the range is inactive and nil dates stay in.
	partial := analytics.FilterSpec{StartDate: day("2021-01-10")}
	gt.Equal(t, len(analytics.Apply(sampleTable(), partial)), 4)
}

func TestApplyCombinesDimensionsWithAnd(t *testing.T) {
	spec := analytics.FilterSpec{
		Priorities: []string{"High", "Critical"},
		Channels:   []string{"Email"},
		Statuses:   []string{"Open", "Pending"},
	}
	got := analytics.Apply(sampleTable(), spec)
	gt.Equal(t, ids(got), []string{"1", "4"})
}

func TestApplyPreservesRowOrder(t *testing.T) {
	spec := analytics.FilterSpec{Statuses: []string{"Closed", "Open"}}
	got := analytics.Apply(sampleTable(), spec)
	gt.Equal(t, ids(got), []string{"1", "2", "3"})
}

func TestCanonicalIsOrderInsensitive(t *testing.T) {
	a := analytics.FilterSpec{
		StartDate:  day("2021-01-01"),
		EndDate:    day("2021-12-31"),
		Priorities: []string{"High", "Low"},
		Channels:   []string{"Email", "Chat"},
	}
	b := analytics.FilterSpec{
		StartDate:  day("2021-01-01"),
		EndDate:    day("2021-12-31"),
		Priorities: []string{"Low", "High"},
		Channels:   []string{"Chat", "Email"},
	}
	gt.Equal(t, a.Canonical(), b.Canonical())

	c := analytics.FilterSpec{Priorities: []string{"Low"}}
	gt.NotEqual(t, a.Canonical(), c.Canonical())
}
