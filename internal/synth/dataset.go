package synth

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/promptlens/promptlens/internal/models"
)

// DefaultEntries is the number of messages GenerateDataset produces by default.
const DefaultEntries = 1000

const datasetName = "Patient Communication Intent"

var datasetSchema = []models.ColumnSchema{
	{Name: "message_id", Type: models.ColumnIdentifier, DataType: "string"},
	{Name: "message_content", Type: models.ColumnFeature, DataType: "string"},
	{Name: "intent_category", Type: models.ColumnTarget, DataType: "string"},
	{Name: "urgency_level", Type: models.ColumnTarget, DataType: "string"},
	{Name: "patient_type", Type: models.ColumnMetadata, DataType: "string"},
	{Name: "response_priority", Type: models.ColumnTarget, DataType: "integer"},
}

// GenerateDataset draws n labeled patient messages from rng and returns them
// with their catalog entry.
func GenerateDataset(rng *rand.Rand, n int) (models.Dataset, []models.DatasetEntry) {
	labels := Intents.Labels()
	entries := make([]models.DatasetEntry, n)
	for i := range entries {
		intent := labels[rng.Intn(len(labels))]
		patterns := messagePatterns[intent]
		message := vary(rng, patterns[rng.Intn(len(patterns))])
		urgency := urgencyLevels[rng.Intn(len(urgencyLevels))]

		entries[i] = models.DatasetEntry{
			MessageID:        fmt.Sprintf("msg_%06d", i+1),
			MessageContent:   message,
			IntentCategory:   intent,
			UrgencyLevel:     urgency,
			PatientType:      patientTypes[rng.Intn(len(patientTypes))],
			ResponsePriority: responsePriority(intent, urgency),
		}
	}

	schema := make([]models.ColumnSchema, len(datasetSchema))
	copy(schema, datasetSchema)
	ds := models.Dataset{
		ID:          "1",
		Name:        datasetName,
		Description: "Patient messages and inquiries classified by intent and communication type",
		Entries:     n,
		Columns:     len(schema),
		LastUpdated: "2025-07-10",
		Status:      models.DatasetActive,
		CreatedAt:   "2025-07-02",
		Schema:      schema,
	}
	return ds, entries
}

// vary dresses a template message in one of six greetings or sign-offs.
func vary(rng *rand.Rand, msg string) string {
	switch rng.Intn(6) {
	case 1:
		return msg + " Thank you."
	case 2:
		return "Hi, " + strings.ToLower(msg)
	case 3:
		return msg + " Please let me know."
	case 4:
		return "Hello, " + strings.ToLower(msg)
	case 5:
		return msg + " I appreciate your help."
	default:
		return msg
	}
}
