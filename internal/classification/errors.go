package classification

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidClassSet is returned when a class set is empty or has blank or duplicate labels.
	ErrInvalidClassSet = errors.New("invalid class set")

	// ErrNoSamples is returned when a report is requested for zero samples.
	ErrNoSamples = errors.New("no samples to evaluate")

	// ErrNilConfidence is returned when no confidence function is supplied for AUC.
	ErrNilConfidence = errors.New("confidence function is required")
)

// UnknownLabelError reports a label that is not a member of the declared class set.
type UnknownLabelError struct {
	Label  string
	Index  int
	Source string // "actual" or "predicted"
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("unknown %s label %q at index %d", e.Source, e.Label, e.Index)
}

// LengthMismatchError reports two sequences that must be the same length but are not.
type LengthMismatchError struct {
	Actual    int
	Predicted int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("length mismatch: %d actual labels, %d predictions", e.Actual, e.Predicted)
}

// DegenerateLabelSetError reports a binary label stream with no positives or no
// negatives, for which AUC is undefined.
type DegenerateLabelSetError struct {
	Class     string
	Positives int
	Negatives int
}

func (e *DegenerateLabelSetError) Error() string {
	if e.Class == "" {
		return fmt.Sprintf("AUC undefined: %d positives, %d negatives", e.Positives, e.Negatives)
	}
	return fmt.Sprintf("AUC undefined for class %q: %d positives, %d negatives", e.Class, e.Positives, e.Negatives)
}

// InvalidScoreError reports a NaN or infinite confidence score.
type InvalidScoreError struct {
	Index int
	Score float64
}

func (e *InvalidScoreError) Error() string {
	return fmt.Sprintf("invalid score %v at index %d", e.Score, e.Index)
}
