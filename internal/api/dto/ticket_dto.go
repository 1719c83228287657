package dto

import "time"

// TicketSummary is one filtered row in the display-column subset. The
// resolution field is the derived duration in hours.
type TicketSummary struct {
	TicketID        string   `json:"ticket_id"`
	CustomerName    string   `json:"customer_name"`
	Product         string   `json:"product_purchased"`
	Type            string   `json:"ticket_type"`
	Priority        string   `json:"ticket_priority"`
	Status          string   `json:"ticket_status"`
	Channel         string   `json:"ticket_channel"`
	Satisfaction    *float64 `json:"customer_satisfaction_rating"`
	ResolutionHours *float64 `json:"time_to_resolution_hours"`
}

// TicketListResponse carries the filtered rows plus the matched-of-total
// counts the dashboard header shows.
type TicketListResponse struct {
	Items        []TicketSummary `json:"items"`
	MatchedCount int             `json:"matched_count"`
	TotalCount   int             `json:"total_count"`
}

// ReloadResponse reports the snapshot a reload produced.
type ReloadResponse struct {
	Version  string    `json:"version"`
	RowCount int       `json:"row_count"`
	LoadedAt time.Time `json:"loaded_at"`
}
