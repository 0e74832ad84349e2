package models

// ColumnRole describes how a dataset column is used.
type ColumnRole string

const (
	ColumnIdentifier ColumnRole = "identifier"
	ColumnFeature    ColumnRole = "feature"
	ColumnTarget     ColumnRole = "target"
	ColumnMetadata   ColumnRole = "metadata"
)

// DatasetStatus is the lifecycle state of a dataset.
type DatasetStatus string

const (
	DatasetActive   DatasetStatus = "active"
	DatasetArchived DatasetStatus = "archived"
	DatasetPending  DatasetStatus = "pending"
)

// ColumnSchema describes one dataset column.
type ColumnSchema struct {
	Name        string     `json:"name"`
	Type        ColumnRole `json:"type"`
	DataType    string     `json:"dataType,omitempty"`
	Description string     `json:"description,omitempty"`
}

// Dataset is the catalog entry for a labeled dataset.
type Dataset struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Entries     int            `json:"entries"`
	Columns     int            `json:"columns"`
	LastUpdated string         `json:"lastUpdated"`
	Status      DatasetStatus  `json:"status"`
	CreatedAt   string         `json:"createdAt,omitempty"`
	Schema      []ColumnSchema `json:"schema,omitempty"`
}

// DatasetEntry is one labeled patient message.
type DatasetEntry struct {
	MessageID        string `json:"message_id"`
	MessageContent   string `json:"message_content"`
	IntentCategory   string `json:"intent_category"`
	UrgencyLevel     string `json:"urgency_level"`
	PatientType      string `json:"patient_type"`
	ResponsePriority int    `json:"response_priority"`
}

// Intents returns the intent label of every entry, in order.
func Intents(entries []DatasetEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.IntentCategory
	}
	return out
}
