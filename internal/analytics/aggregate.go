package analytics

import (
	"sort"

	"github.com/spec-kit/ticket-analytics/internal/domain"
)

// KPISet is the scalar summary over one filtered table. The averages are nil
// when no row carried a value to average.
type KPISet struct {
	TotalTickets       int      `json:"total_tickets"`
	AvgSatisfaction    *float64 `json:"avg_satisfaction"`
	AvgResolutionHours *float64 `json:"avg_resolution_hours"`
	OpenTickets        int      `json:"open_tickets"`
	ClosedTickets      int      `json:"closed_tickets"`
}

// GroupedStat is one group-by result row. Group is nil when the source value
// was missing.
type GroupedStat struct {
	Group *string `json:"group"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// GroupCount is one volume result row.
type GroupCount struct {
	Group *string `json:"group"`
	Count int     `json:"count"`
}

// ComputeKPIs summarizes the table. An empty table yields zero counts and
// nil averages, never an error.
func ComputeKPIs(rows []domain.Ticket) KPISet {
	kpis := KPISet{TotalTickets: len(rows)}

	var satSum, resSum float64
	var satCount, resCount int
	for i := range rows {
		t := &rows[i]
		if t.Satisfaction != nil {
			satSum += *t.Satisfaction
			satCount++
		}
		if t.ResolutionHours != nil {
			resSum += *t.ResolutionHours
			resCount++
		}
		switch t.Status {
		case domain.StatusOpen:
			kpis.OpenTickets++
		case domain.StatusClosed:
			kpis.ClosedTickets++
		}
	}
	if satCount > 0 {
		avg := satSum / float64(satCount)
		kpis.AvgSatisfaction = &avg
	}
	if resCount > 0 {
		avg := resSum / float64(resCount)
		kpis.AvgResolutionHours = &avg
	}
	return kpis
}

// SatisfactionByGroup averages the satisfaction rating per group over rows
// with a rating, best first. Ties keep first-seen order.
func SatisfactionByGroup(rows []domain.Ticket, dim domain.Dimension) []GroupedStat {
	stats := groupMeans(rows, dim, func(t *domain.Ticket) (float64, bool) {
		if t.Satisfaction == nil {
			return 0, false
		}
		return *t.Satisfaction, true
	})
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Mean > stats[j].Mean
	})
	return stats
}

// ResolutionByGroup averages the derived resolution hours per group over
// rows with a positive duration, fastest first. Ties keep first-seen order.
func ResolutionByGroup(rows []domain.Ticket, dim domain.Dimension) []GroupedStat {
	stats := groupMeans(rows, dim, func(t *domain.Ticket) (float64, bool) {
		if t.ResolutionHours == nil || *t.ResolutionHours <= 0 {
			return 0, false
		}
		return *t.ResolutionHours, true
	})
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Mean < stats[j].Mean
	})
	return stats
}

// VolumeByGroup counts every row per group, missing values included as their
// own nil-keyed group, largest first. Counts always sum to len(rows).
func VolumeByGroup(rows []domain.Ticket, dim domain.Dimension) []GroupCount {
	counts := make(map[groupKey]int)
	var order []groupKey
	for i := range rows {
		key := keyFor(&rows[i], dim)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	out := make([]GroupCount, 0, len(order))
	for _, key := range order {
		out = append(out, GroupCount{Group: key.groupValue(), Count: counts[key]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// groupKey distinguishes a missing value from any real string value.
type groupKey struct {
	valid bool
	value string
}

func keyFor(t *domain.Ticket, dim domain.Dimension) groupKey {
	val, ok := t.DimensionValue(dim)
	return groupKey{valid: ok, value: val}
}

func (k groupKey) groupValue() *string {
	if !k.valid {
		return nil
	}
	val := k.value
	return &val
}

type meanAcc struct {
	sum   float64
	count int
}

func groupMeans(rows []domain.Ticket, dim domain.Dimension, value func(*domain.Ticket) (float64, bool)) []GroupedStat {
	accs := make(map[groupKey]*meanAcc)
	var order []groupKey
	for i := range rows {
		val, ok := value(&rows[i])
		if !ok {
			continue
		}
		key := keyFor(&rows[i], dim)
		acc, seen := accs[key]
		if !seen {
			acc = &meanAcc{}
			accs[key] = acc
			order = append(order, key)
		}
		acc.sum += val
		acc.count++
	}

	out := make([]GroupedStat, 0, len(order))
	for _, key := range order {
		acc := accs[key]
		out = append(out, GroupedStat{
			Group: key.groupValue(),
			Mean:  acc.sum / float64(acc.count),
			Count: acc.count,
		})
	}
	return out
}
