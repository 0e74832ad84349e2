package classification

import (
	"math"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// ROCPoint is one vertex of a ROC curve. Threshold is the score at or above
// which samples are classified positive; the origin has Threshold +Inf.
type ROCPoint struct {
	Threshold float64 `json:"threshold"`
	FPR       float64 `json:"fpr"`
	TPR       float64 `json:"tpr"`
}

// ROCCurve builds the ROC curve of scores against binary ground truth.
// Samples sharing a score form a single step, so ties produce a diagonal
// segment rather than a staircase that depends on input order. The curve
// starts at (0,0) with Threshold +Inf and ends at (1,1).
func ROCCurve(positive []bool, scores []float64) ([]ROCPoint, error) {
	if err := checkBinaryInput(positive, scores); err != nil {
		return nil, err
	}

	y := append([]float64(nil), scores...)
	classes := append([]bool(nil), positive...)
	stat.SortWeightedLabeled(y, classes, nil)

	tpr, fpr, thresh := stat.ROC(nil, y, classes, nil)
	curve := make([]ROCPoint, len(thresh))
	for i := range thresh {
		curve[i] = ROCPoint{Threshold: thresh[i], FPR: fpr[i], TPR: tpr[i]}
	}
	return curve, nil
}

// BinaryAUC returns the area under the ROC curve of scores against binary
// ground truth, integrated with the trapezoidal rule over tie-grouped
// thresholds. It fails with *DegenerateLabelSetError when positive has no
// true or no false entries.
func BinaryAUC(positive []bool, scores []float64) (float64, error) {
	curve, err := ROCCurve(positive, scores)
	if err != nil {
		return 0, err
	}
	fpr := make([]float64, len(curve))
	tpr := make([]float64, len(curve))
	for i, pt := range curve {
		fpr[i], tpr[i] = pt.FPR, pt.TPR
	}
	return integrate.Trapezoidal(fpr, tpr), nil
}

// checkBinaryInput rejects inputs the ROC computation cannot handle: unequal
// lengths, non-finite scores and a ground truth without both classes.
func checkBinaryInput(positive []bool, scores []float64) error {
	if len(positive) != len(scores) {
		return &LengthMismatchError{Actual: len(positive), Predicted: len(scores)}
	}
	for i, s := range scores {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return &InvalidScoreError{Index: i, Score: s}
		}
	}

	var totalPos, totalNeg int
	for _, p := range positive {
		if p {
			totalPos++
		} else {
			totalNeg++
		}
	}
	if totalPos == 0 || totalNeg == 0 {
		return &DegenerateLabelSetError{Positives: totalPos, Negatives: totalNeg}
	}
	return nil
}
