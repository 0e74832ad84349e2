package models

import (
	"time"

	"github.com/promptlens/promptlens/internal/classification"
)

// ExperimentStatus is the lifecycle state of an experiment.
type ExperimentStatus string

const (
	ExperimentRunning   ExperimentStatus = "running"
	ExperimentCompleted ExperimentStatus = "completed"
	ExperimentFailed    ExperimentStatus = "failed"
	ExperimentPending   ExperimentStatus = "pending"
)

// IterationStatus is the state of one prompt iteration.
type IterationStatus string

const (
	IterationSuccess IterationStatus = "success"
	IterationFailed  IterationStatus = "failed"
	IterationRunning IterationStatus = "running"
)

// ClassificationMetrics is the dashboard's view of a classification report.
// Sensitivity duplicates Recall for displays that label it that way.
type ClassificationMetrics struct {
	Accuracy              float64                              `json:"accuracy"`
	Precision             float64                              `json:"precision"`
	Recall                float64                              `json:"recall"`
	F1Score               float64                              `json:"f1Score"`
	Specificity           float64                              `json:"specificity"`
	Sensitivity           float64                              `json:"sensitivity"`
	AUC                   float64                              `json:"auc"`
	ConfusionMatrix       map[string]map[string]int            `json:"confusionMatrix"`
	LegacyBinaryConfusion classification.LegacyBinaryConfusion `json:"legacyBinaryConfusion"`
	PerClass              []classification.PerClassMetrics     `json:"perClass,omitempty"`
	PerClassAUC           []classification.ClassAUC            `json:"perClassAuc,omitempty"`
	Notes                 []string                             `json:"notes,omitempty"`
}

// NewClassificationMetrics converts an engine report into the dashboard shape.
func NewClassificationMetrics(r *classification.Report) ClassificationMetrics {
	return ClassificationMetrics{
		Accuracy:              r.Accuracy,
		Precision:             r.MacroPrecision,
		Recall:                r.MacroRecall,
		F1Score:               r.MacroF1,
		Specificity:           r.MacroSpecificity,
		Sensitivity:           r.MacroRecall,
		AUC:                   r.AUC,
		ConfusionMatrix:       r.ConfusionMatrix.Map(),
		LegacyBinaryConfusion: r.Legacy,
		PerClass:              r.PerClass,
		PerClassAUC:           r.PerClassAUC,
		Notes:                 r.Notes,
	}
}

// MetricsOverTime is one point of an experiment's metric history.
type MetricsOverTime struct {
	Timestamp time.Time             `json:"timestamp"`
	Metrics   ClassificationMetrics `json:"metrics"`
	Iteration int                   `json:"iteration"`
}

// PromptIteration records one system prompt tried in an experiment.
type PromptIteration struct {
	ID         string                `json:"id"`
	Iteration  int                   `json:"iteration"`
	Prompt     string                `json:"prompt"`
	Timestamp  time.Time             `json:"timestamp"`
	Metrics    ClassificationMetrics `json:"metrics"`
	Status     IterationStatus       `json:"status"`
	TokensUsed int                   `json:"tokensUsed,omitempty"`
	LatencyMs  int                   `json:"latency,omitempty"`
}

// ExperimentMetrics summarises an experiment's final state and history.
type ExperimentMetrics struct {
	Accuracy              float64                `json:"accuracy"`
	Loss                  float64                `json:"loss"`
	Iterations            int                    `json:"iterations"`
	ClassificationMetrics *ClassificationMetrics `json:"classificationMetrics,omitempty"`
	MetricsOverTime       []MetricsOverTime      `json:"metricsOverTime,omitempty"`
	PromptIterations      []PromptIteration      `json:"promptIterations,omitempty"`
}

// Experiment is a series of prompt iterations evaluated against a dataset.
type Experiment struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Status      ExperimentStatus   `json:"status"`
	CreatedAt   string             `json:"createdAt"`
	UpdatedAt   string             `json:"updatedAt"`
	Metrics     *ExperimentMetrics `json:"metrics"`
	Owner       string             `json:"owner,omitempty"`
	Dataset     string             `json:"dataset"`
	Model       string             `json:"model"`
}

// MetricsProgression is one row of the per-iteration summary.
type MetricsProgression struct {
	Iteration int     `json:"iteration"`
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1Score   float64 `json:"f1Score"`
}

// GenerationSummary describes one run of the synthetic data generator.
type GenerationSummary struct {
	RunID              string               `json:"runId"`
	Seed               int64                `json:"seed"`
	GeneratedAt        time.Time            `json:"generatedAt"`
	Dataset            DatasetSummary       `json:"dataset"`
	Experiment         ExperimentSummary    `json:"experiment"`
	MetricsProgression []MetricsProgression `json:"metricsProgression"`
}

type DatasetSummary struct {
	Name       string `json:"name"`
	Entries    int    `json:"entries"`
	Columns    int    `json:"columns"`
	SampleSize int    `json:"sampleSize"`
}

type ExperimentSummary struct {
	Name          string  `json:"name"`
	Iterations    int     `json:"iterations"`
	FinalAccuracy float64 `json:"finalAccuracy"`
	// Improvement is the final-minus-first accuracy in percentage points, e.g. "4.2%".
	Improvement    string     `json:"improvement"`
	NormalizedGain float64    `json:"normalizedGain"`
	AccuracyCI     AccuracyCI `json:"accuracyCi"`
}

// AccuracyCI is a bootstrap confidence interval of per-iteration accuracy.
type AccuracyCI struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Level float64 `json:"level"`
}
