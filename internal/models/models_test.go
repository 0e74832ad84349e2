package models

import (
	"encoding/json"
	"testing"

	"github.com/promptlens/promptlens/internal/classification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func proxy(_ int, predicted, class string) float64 {
	if predicted == class {
		return 0.9
	}
	return 0.1
}

func TestNewClassificationMetrics(t *testing.T) {
	cs := classification.MustClassSet("a", "b", "c")
	r, err := classification.Assemble(
		[]string{"a", "a", "a", "b", "b", "c"},
		[]string{"a", "a", "b", "b", "a", "c"},
		cs, proxy)
	require.NoError(t, err)

	m := NewClassificationMetrics(r)
	assert.Equal(t, r.Accuracy, m.Accuracy)
	assert.Equal(t, r.MacroPrecision, m.Precision)
	assert.Equal(t, r.MacroRecall, m.Recall)
	assert.Equal(t, m.Recall, m.Sensitivity)
	assert.Equal(t, r.MacroF1, m.F1Score)
	assert.Equal(t, r.MacroSpecificity, m.Specificity)
	assert.Equal(t, r.AUC, m.AUC)
	assert.Equal(t, 2, m.ConfusionMatrix["a"]["a"])
	assert.Equal(t, 1, m.ConfusionMatrix["b"]["a"])
	assert.Equal(t, r.Legacy, m.LegacyBinaryConfusion)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"accuracy", "precision", "recall", "f1Score", "specificity",
		"sensitivity", "auc", "confusionMatrix", "legacyBinaryConfusion"} {
		assert.Contains(t, raw, key)
	}
	assert.NotContains(t, raw, "notes", "no degenerate classes")
}

func TestIntents(t *testing.T) {
	entries := []DatasetEntry{
		{MessageID: "msg_000001", IntentCategory: "complaint"},
		{MessageID: "msg_000002", IntentCategory: "billing inquiry"},
	}
	assert.Equal(t, []string{"complaint", "billing inquiry"}, Intents(entries))
	assert.Empty(t, Intents(nil))
}

func TestDatasetEntry_SnakeCaseJSON(t *testing.T) {
	data, err := json.Marshal(DatasetEntry{MessageID: "msg_000001", ResponsePriority: 3})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message_id":"msg_000001"`)
	assert.Contains(t, string(data), `"response_priority":3`)
}

func TestExperiment_NilMetricsEncodeAsNull(t *testing.T) {
	data, err := json.Marshal(Experiment{ID: "exp-001", Status: ExperimentPending})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"metrics":null`)
}
