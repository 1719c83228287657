package dataset_test

import (
	"reflect"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/spec-kit/ticket-analytics/internal/dataset"
	"github.com/spec-kit/ticket-analytics/internal/domain"
)

func rawRow(overrides func(*domain.RawTicket)) domain.RawTicket {
	raw := domain.RawTicket{
		ID:              "1001",
		CustomerName:    "Marisol Gray",
		Product:         "GoPro Hero",
		Type:            "Technical issue",
		Priority:        "High",
		Status:          "Closed",
		Channel:         "Email",
		PurchaseDate:    "2021-03-22",
		FirstResponseAt: "2023-06-01 10:00:00",
		Resolution:      "2023-06-01 12:30:00",
		Satisfaction:    "4",
	}
	if overrides != nil {
		overrides(&raw)
	}
	return raw
}

func TestCleanDerivesResolutionHours(t *testing.T) {
	rows := dataset.Clean([]domain.RawTicket{rawRow(nil)})
	gt.Equal(t, len(rows), 1)

	ticket := rows[0]
	gt.V(t, ticket.FirstResponseAt).NotNil()
	gt.V(t, ticket.ResolutionAt).NotNil()
	gt.V(t, ticket.ResolutionHours).NotNil()
	gt.Equal(t, *ticket.ResolutionHours, 2.5)
	gt.V(t, ticket.Satisfaction).NotNil()
	gt.Equal(t, *ticket.Satisfaction, 4.0)
	gt.V(t, ticket.PurchaseDate).NotNil()
	gt.Equal(t, ticket.PurchaseDate.Format("2006-01-02"), "2021-03-22")
}

func TestCleanGuardsNonPositiveDurations(t *testing.T) {
	// Resolution before first response is a data quality issue, not a
	// negative duration.
	reversed := rawRow(func(r *domain.RawTicket) {
		r.Resolution = "2023-06-01 09:00:00"
	})
	same := rawRow(func(r *domain.RawTicket) {
		r.Resolution = "2023-06-01 10:00:00"
	})

	rows := dataset.Clean([]domain.RawTicket{reversed, same})
	gt.Nil(t, rows[0].ResolutionHours)
	gt.Nil(t, rows[1].ResolutionHours)
	// The parsed timestamp itself survives; only the derived duration is
	// invalidated.
	gt.V(t, rows[0].ResolutionAt).NotNil()
}

func TestCleanWithoutFirstResponse(t *testing.T) {
	raw := rawRow(func(r *domain.RawTicket) {
		r.FirstResponseAt = ""
	})
	rows := dataset.Clean([]domain.RawTicket{raw})

	gt.Nil(t, rows[0].FirstResponseAt)
	gt.V(t, rows[0].ResolutionAt).NotNil()
	// The duration cannot be computed from the resolution timestamp alone.
	gt.Nil(t, rows[0].ResolutionHours)
}

func TestCleanDiscardsNumericResolution(t *testing.T) {
	// The resolution column carries a completion timestamp by contract. A
	// plain numeric value is not read as a duration in hours; it degrades to
	// nil like any other unparsable scalar.
	raw := rawRow(func(r *domain.RawTicket) {
		r.Resolution = "36.5"
	})
	rows := dataset.Clean([]domain.RawTicket{raw})

	gt.Nil(t, rows[0].ResolutionAt)
	gt.Nil(t, rows[0].ResolutionHours)
}

func TestCleanCoercesBadScalarsToNil(t *testing.T) {
	raw := rawRow(func(r *domain.RawTicket) {
		r.Satisfaction = "not-a-number"
		r.PurchaseDate = "sometime last year"
		r.FirstResponseAt = "???"
	})
	rows := dataset.Clean([]domain.RawTicket{raw})

	gt.Nil(t, rows[0].Satisfaction)
	gt.Nil(t, rows[0].PurchaseDate)
	gt.Nil(t, rows[0].FirstResponseAt)
	gt.Nil(t, rows[0].ResolutionHours)
	// Categorical values always pass through untouched.
	gt.Equal(t, rows[0].Priority, "High")
	gt.Equal(t, rows[0].Status, "Closed")
}

func TestCleanInvariants(t *testing.T) {
	raws := []domain.RawTicket{
		rawRow(nil),
		rawRow(func(r *domain.RawTicket) { r.Resolution = "2023-05-31 10:00:00" }),
		rawRow(func(r *domain.RawTicket) { r.FirstResponseAt = "" }),
		rawRow(func(r *domain.RawTicket) { r.Resolution = "" }),
		rawRow(func(r *domain.RawTicket) { r.Resolution = "120" }),
	}
	rows := dataset.Clean(raws)

	for i := range rows {
		if rows[i].ResolutionHours != nil {
			gt.True(t, *rows[i].ResolutionHours > 0)
		}
		if rows[i].FirstResponseAt == nil {
			gt.Nil(t, rows[i].ResolutionHours)
		}
	}
}

func TestCleanIsPure(t *testing.T) {
	raws := []domain.RawTicket{rawRow(nil), rawRow(func(r *domain.RawTicket) { r.Satisfaction = "x" })}
	before := append([]domain.RawTicket(nil), raws...)

	first := dataset.Clean(raws)
	second := dataset.Clean(raws)

	gt.True(t, reflect.DeepEqual(raws, before))
	gt.True(t, reflect.DeepEqual(first, second))
}
