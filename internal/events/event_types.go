package events

import "time"

// EventType enumerates dataset lifecycle events.
type EventType string

const (
	EventDatasetLoaded   EventType = "dataset_loaded"
	EventDatasetReloaded EventType = "dataset_reloaded"
	EventDatasetExported EventType = "dataset_exported"
)

// Event represents a dataset lifecycle notification emitted by the service.
type Event struct {
	ID              string      `json:"id"`
	Type            EventType   `json:"type"`
	SnapshotVersion string      `json:"snapshot_version"`
	Timestamp       time.Time   `json:"timestamp"`
	Payload         interface{} `json:"payload"`
}

// DatasetLoadedPayload describes a fresh snapshot.
type DatasetLoadedPayload struct {
	Source   string `json:"source"`
	RowCount int    `json:"row_count"`
}

// DatasetReloadedPayload describes a snapshot swap; the previous version is
// what cache invalidation keys off.
type DatasetReloadedPayload struct {
	Source          string `json:"source"`
	RowCount        int    `json:"row_count"`
	PreviousVersion string `json:"previous_version"`
}

// DatasetExportedPayload describes a CSV export of the filtered table.
type DatasetExportedPayload struct {
	FileName string `json:"file_name"`
	RowCount int    `json:"row_count"`
}
