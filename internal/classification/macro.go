package classification

import "gonum.org/v1/gonum/stat"

// MacroAverages are unweighted means of per-class scores.
type MacroAverages struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// Aggregate averages per-class precision, recall and F1, counting each class
// once regardless of its support. An empty list yields zeros.
func Aggregate(perClass []PerClassMetrics) MacroAverages {
	if len(perClass) == 0 {
		return MacroAverages{}
	}
	p := make([]float64, len(perClass))
	r := make([]float64, len(perClass))
	f := make([]float64, len(perClass))
	for i, pc := range perClass {
		p[i], r[i], f[i] = pc.Precision, pc.Recall, pc.F1
	}
	return MacroAverages{
		Precision: stat.Mean(p, nil),
		Recall:    stat.Mean(r, nil),
		F1:        stat.Mean(f, nil),
	}
}

// Specificity is the one-vs-rest TN/(TN+FP) for class. Rows other than class
// contribute their class column to FP and every other cell to TN. Returns 0
// when there are no negative samples.
func Specificity(m *ConfusionMatrix, class string) float64 {
	target, ok := m.classes.Index(class)
	if !ok {
		return 0
	}
	n := m.classes.Len()
	var tn, fp int
	for a := 0; a < n; a++ {
		if a == target {
			continue
		}
		for p := 0; p < n; p++ {
			if p == target {
				fp += m.at(a, p)
			} else {
				tn += m.at(a, p)
			}
		}
	}
	return safeDivide(float64(tn), float64(tn+fp))
}

// MacroSpecificity is the unweighted mean of Specificity across all classes.
func MacroSpecificity(m *ConfusionMatrix) float64 {
	if m.classes.Len() == 0 {
		return 0
	}
	values := make([]float64, 0, m.classes.Len())
	for _, class := range m.classes.labels {
		values = append(values, Specificity(m, class))
	}
	return stat.Mean(values, nil)
}

// Accuracy is the diagonal sum over the total sample count (0 for no samples).
func Accuracy(m *ConfusionMatrix) float64 {
	return safeDivide(float64(m.Correct()), float64(m.Total()))
}
