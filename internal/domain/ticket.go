package domain

import "time"

// Ticket statuses the KPI counters match. Comparisons are exact and
// case-sensitive; the source data uses these capitalizations.
const (
	StatusOpen   = "Open"
	StatusClosed = "Closed"
)

// Ticket is one cleaned customer-support interaction record. Pointer fields
// are nil when the source value was missing or unparsable.
type Ticket struct {
	ID              string
	CustomerName    string
	Product         string
	Type            string
	Priority        string
	Status          string
	Channel         string
	PurchaseDate    *time.Time
	FirstResponseAt *time.Time
	ResolutionAt    *time.Time
	Satisfaction    *float64
	ResolutionHours *float64
}

// RawTicket mirrors one source row before cleaning. Every field carries the
// raw string value; empty string means the cell was absent.
type RawTicket struct {
	ID              string
	CustomerName    string
	Product         string
	Type            string
	Priority        string
	Status          string
	Channel         string
	PurchaseDate    string
	FirstResponseAt string
	Resolution      string
	Satisfaction    string
}
