package classification

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// ConfidenceFunc scores how strongly sample (whose predicted label is
// predicted) belongs to class, in [0, 1]. It is supplied by the caller; the
// engine never invents scores.
type ConfidenceFunc func(sample int, predicted, class string) float64

// ClassAUC is the one-vs-rest AUC for a single class. Degenerate classes have
// no positives or no negatives; their AUC is reported as 0 and excluded from
// the macro mean.
type ClassAUC struct {
	Class      string  `json:"class"`
	AUC        float64 `json:"auc"`
	Degenerate bool    `json:"degenerate,omitempty"`
}

// AUCSummary is the result of a one-vs-rest AUC run.
type AUCSummary struct {
	Macro    float64    `json:"macro"`
	PerClass []ClassAUC `json:"perClass"`
	Notes    []string   `json:"notes,omitempty"`
}

// OneVsRestAUC computes a binary AUC per class, treating that class as
// positive and every other class as negative, and averages them unweighted.
//
// Classes whose AUC is undefined are excluded from the mean (the denominator
// shrinks accordingly) and named in Notes. If no class has a defined AUC the
// first *DegenerateLabelSetError is returned.
func OneVsRestAUC(actual, predicted []string, classes ClassSet, confidence ConfidenceFunc) (*AUCSummary, error) {
	if confidence == nil {
		return nil, ErrNilConfidence
	}
	if len(actual) != len(predicted) {
		return nil, &LengthMismatchError{Actual: len(actual), Predicted: len(predicted)}
	}
	if classes.Len() == 0 {
		return nil, fmt.Errorf("%w: no labels", ErrInvalidClassSet)
	}

	summary := &AUCSummary{PerClass: make([]ClassAUC, 0, classes.Len())}
	positive := make([]bool, len(actual))
	scores := make([]float64, len(actual))

	var (
		defined  []float64
		firstErr error
	)
	for _, class := range classes.labels {
		for i := range actual {
			positive[i] = actual[i] == class
			scores[i] = confidence(i, predicted[i], class)
		}

		auc, err := BinaryAUC(positive, scores)
		var degenerate *DegenerateLabelSetError
		switch {
		case errors.As(err, &degenerate):
			degenerate.Class = class
			if firstErr == nil {
				firstErr = degenerate
			}
			summary.PerClass = append(summary.PerClass, ClassAUC{Class: class, Degenerate: true})
			summary.Notes = append(summary.Notes, fmt.Sprintf(
				"AUC undefined for %q (%d positives, %d negatives); excluded from macro AUC",
				class, degenerate.Positives, degenerate.Negatives))
		case err != nil:
			return nil, fmt.Errorf("AUC for class %q: %w", class, err)
		default:
			summary.PerClass = append(summary.PerClass, ClassAUC{Class: class, AUC: auc})
			defined = append(defined, auc)
		}
	}

	if len(defined) == 0 {
		return nil, firstErr
	}
	summary.Macro = stat.Mean(defined, nil)
	return summary, nil
}
