// Package reporting renders classification reports for people: aligned
// tables, plain-language interpretation and JUnit output for CI.
package reporting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/promptlens/promptlens/internal/classification"
)

// InterpretScore returns a plain-language label for a 0-1 score.
func InterpretScore(score float64) string {
	pct := score * 100
	switch {
	case pct > 90:
		return "Excellent (>90%)"
	case pct >= 70:
		return "Good (70-90%)"
	case pct >= 50:
		return "Needs Work (50-70%)"
	default:
		return "Poor (<50%)"
	}
}

// InterpretAUC describes how well a ranking separates classes.
func InterpretAUC(auc float64) string {
	switch {
	case auc >= 0.9:
		return fmt.Sprintf("Outstanding separation (%.2f)", auc)
	case auc >= 0.8:
		return fmt.Sprintf("Good separation (%.2f)", auc)
	case auc >= 0.7:
		return fmt.Sprintf("Fair separation (%.2f)", auc)
	case auc > 0.5:
		return fmt.Sprintf("Weak separation (%.2f)", auc)
	default:
		return fmt.Sprintf("No better than chance (%.2f)", auc)
	}
}

// ClassError is one row of the error analysis.
type ClassError struct {
	Class          string  `json:"class"`
	FalsePositives int     `json:"falsePositives"`
	FalseNegatives int     `json:"falseNegatives"`
	ErrorRate      float64 `json:"errorRate"`
}

// MostConfused returns the n classes with the most false positives, the
// ones a reviewer should look at first. Ties keep class order.
func MostConfused(r *classification.Report, n int) []ClassError {
	rows := make([]ClassError, 0, len(r.PerClass))
	for _, pc := range r.PerClass {
		rows = append(rows, ClassError{
			Class:          pc.Class,
			FalsePositives: pc.FalsePositives,
			FalseNegatives: pc.FalseNegatives,
			ErrorRate:      pc.ErrorRate,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].FalsePositives > rows[j].FalsePositives
	})
	if n >= 0 && n < len(rows) {
		rows = rows[:n]
	}
	return rows
}

// FormatSummary produces a plain-language digest of r.
func FormatSummary(r *classification.Report) string {
	var b strings.Builder

	b.WriteString("=== Interpretation ===\n\n")
	fmt.Fprintf(&b, "Accuracy:    %.3f: %s\n", r.Accuracy, InterpretScore(r.Accuracy))
	fmt.Fprintf(&b, "Macro F1:    %.3f: %s\n", r.MacroF1, InterpretScore(r.MacroF1))
	fmt.Fprintf(&b, "Macro AUC:   %s\n", InterpretAUC(r.AUC))
	fmt.Fprintf(&b, "Samples:     %d across %d classes\n", r.Samples, len(r.PerClass))

	if top := MostConfused(r, 3); len(top) > 0 && top[0].FalsePositives > 0 {
		b.WriteString("\nMost often predicted wrongly:\n")
		for _, ce := range top {
			if ce.FalsePositives == 0 {
				break
			}
			fmt.Fprintf(&b, "  %s: %d false positives, %.1f%% error rate\n",
				ce.Class, ce.FalsePositives, ce.ErrorRate*100)
		}
	}

	if pairs := r.ConfusionMatrix.TopConfusions(3); len(pairs) > 0 {
		b.WriteString("\nTop confusions (actual -> predicted):\n")
		for _, c := range pairs {
			fmt.Fprintf(&b, "  %s -> %s: %d\n", c.Actual, c.Predicted, c.Count)
		}
	}

	if len(r.Notes) > 0 {
		b.WriteString("\nNotes:\n")
		for _, n := range r.Notes {
			fmt.Fprintf(&b, "  - %s\n", n)
		}
	}

	return b.String()
}
