package classification

import "fmt"

// PerClassMetrics holds one-vs-rest counts and scores for a single class.
type PerClassMetrics struct {
	Class          string  `json:"class"`
	TruePositives  int     `json:"truePositives"`
	FalsePositives int     `json:"falsePositives"`
	FalseNegatives int     `json:"falseNegatives"`
	Support        int     `json:"support"`   // tp + fn
	Predicted      int     `json:"predicted"` // tp + fp
	Precision      float64 `json:"precision"`
	Recall         float64 `json:"recall"`
	F1             float64 `json:"f1"`
	ErrorRate      float64 `json:"errorRate"` // (fp + fn) / support
}

// ComputeForClass derives precision, recall and F1 for class from m.
//
// A zero denominator yields 0, never NaN: precision is 0 for a class that was
// never predicted, recall is 0 for a class that never occurs, and F1 is 0
// when precision and recall are both 0.
func ComputeForClass(m *ConfusionMatrix, class string) (PerClassMetrics, error) {
	if !m.classes.Contains(class) {
		return PerClassMetrics{}, fmt.Errorf("class %q is not in the matrix class set", class)
	}

	tp := m.Count(class, class)
	fp := m.ColSum(class) - tp
	fn := m.RowSum(class) - tp

	precision := safeDivide(float64(tp), float64(tp+fp))
	recall := safeDivide(float64(tp), float64(tp+fn))

	var f1 float64
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}

	return PerClassMetrics{
		Class:          class,
		TruePositives:  tp,
		FalsePositives: fp,
		FalseNegatives: fn,
		Support:        tp + fn,
		Predicted:      tp + fp,
		Precision:      precision,
		Recall:         recall,
		F1:             f1,
		ErrorRate:      safeDivide(float64(fp+fn), float64(tp+fn)),
	}, nil
}

// ComputeAll returns per-class metrics for every class in m, in axis order.
func ComputeAll(m *ConfusionMatrix) []PerClassMetrics {
	out := make([]PerClassMetrics, 0, m.classes.Len())
	for _, class := range m.classes.labels {
		pc, _ := ComputeForClass(m, class) // class is always a member here
		out = append(out, pc)
	}
	return out
}

func safeDivide(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
