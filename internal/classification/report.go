package classification

// LegacyBinaryConfusion collapses a multi-class result into correct/incorrect
// totals for binary-style displays. It is an approximation, not a true binary
// confusion matrix: TP is the number of correct predictions, FP and FN are
// both the number of incorrect ones, and TN is
// numClasses*numSamples - (TP+FP+FN).
type LegacyBinaryConfusion struct {
	TruePositives  int `json:"truePositives"`
	TrueNegatives  int `json:"trueNegatives"`
	FalsePositives int `json:"falsePositives"`
	FalseNegatives int `json:"falseNegatives"`
}

// NewLegacyBinaryConfusion derives the legacy block from m.
func NewLegacyBinaryConfusion(m *ConfusionMatrix) LegacyBinaryConfusion {
	correct := m.Correct()
	incorrect := m.Total() - correct
	return LegacyBinaryConfusion{
		TruePositives:  correct,
		FalsePositives: incorrect,
		FalseNegatives: incorrect,
		TrueNegatives:  m.classes.Len()*m.Total() - (correct + 2*incorrect),
	}
}

// Report is the complete statistical summary of one (actual, predicted) run.
type Report struct {
	Samples          int                   `json:"samples"`
	Accuracy         float64               `json:"accuracy"`
	MacroPrecision   float64               `json:"macroPrecision"`
	MacroRecall      float64               `json:"macroRecall"`
	MacroF1          float64               `json:"macroF1"`
	MacroSpecificity float64               `json:"macroSpecificity"`
	AUC              float64               `json:"auc"`
	PerClass         []PerClassMetrics     `json:"perClass"`
	PerClassAUC      []ClassAUC            `json:"perClassAuc"`
	ConfusionMatrix  *ConfusionMatrix      `json:"confusionMatrix"`
	Legacy           LegacyBinaryConfusion `json:"legacyBinaryConfusion"`
	Notes            []string              `json:"notes,omitempty"`
}

// Assemble runs every stage over the label pairs and merges the results. The
// confusion matrix is built once and shared by all matrix-derived stages.
// Errors from any stage are returned unchanged.
func Assemble(actual, predicted []string, classes ClassSet, confidence ConfidenceFunc) (*Report, error) {
	m, err := BuildConfusionMatrix(actual, predicted, classes)
	if err != nil {
		return nil, err
	}
	if m.Total() == 0 {
		return nil, ErrNoSamples
	}

	auc, err := OneVsRestAUC(actual, predicted, classes, confidence)
	if err != nil {
		return nil, err
	}

	perClass := ComputeAll(m)
	macro := Aggregate(perClass)

	return &Report{
		Samples:          m.Total(),
		Accuracy:         Accuracy(m),
		MacroPrecision:   macro.Precision,
		MacroRecall:      macro.Recall,
		MacroF1:          macro.F1,
		MacroSpecificity: MacroSpecificity(m),
		AUC:              auc.Macro,
		PerClass:         perClass,
		PerClassAUC:      auc.PerClass,
		ConfusionMatrix:  m,
		Legacy:           NewLegacyBinaryConfusion(m),
		Notes:            auc.Notes,
	}, nil
}

// CorrectMask returns, per sample, whether the prediction matched. Useful
// for resampling accuracy.
func CorrectMask(actual, predicted []string) ([]bool, error) {
	if len(actual) != len(predicted) {
		return nil, &LengthMismatchError{Actual: len(actual), Predicted: len(predicted)}
	}
	out := make([]bool, len(actual))
	for i := range actual {
		out[i] = actual[i] == predicted[i]
	}
	return out, nil
}
