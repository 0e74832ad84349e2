package reporting

import (
	"fmt"

	"github.com/promptlens/promptlens/internal/classification"
)

// Thresholds are minimum scores a report must reach. Zero disables a check.
type Thresholds struct {
	MinAccuracy float64 `yaml:"min_accuracy,omitempty" json:"minAccuracy,omitempty"`
	MinMacroF1  float64 `yaml:"min_macro_f1,omitempty" json:"minMacroF1,omitempty"`
	MinAUC      float64 `yaml:"min_auc,omitempty" json:"minAuc,omitempty"`
	MinClassF1  float64 `yaml:"min_class_f1,omitempty" json:"minClassF1,omitempty"`
}

// IsZero reports whether no threshold is set.
func (t Thresholds) IsZero() bool {
	return t == Thresholds{}
}

// GateFailure is one threshold a report missed.
type GateFailure struct {
	Check string  `json:"check"`
	Class string  `json:"class,omitempty"`
	Got   float64 `json:"got"`
	Want  float64 `json:"want"`
}

func (f GateFailure) String() string {
	if f.Class != "" {
		return fmt.Sprintf("%s for %q is %.3f, want >= %.3f", f.Check, f.Class, f.Got, f.Want)
	}
	return fmt.Sprintf("%s is %.3f, want >= %.3f", f.Check, f.Got, f.Want)
}

// Check names for GateFailure.
const (
	CheckAccuracy = "accuracy"
	CheckMacroF1  = "macro f1"
	CheckAUC      = "macro auc"
	CheckClassF1  = "class f1"
)

// Check returns every threshold r misses, overall checks first and then
// classes in report order. Classes with no support are not gated.
func (t Thresholds) Check(r *classification.Report) []GateFailure {
	var out []GateFailure
	overall := []struct {
		check     string
		got, want float64
	}{
		{CheckAccuracy, r.Accuracy, t.MinAccuracy},
		{CheckMacroF1, r.MacroF1, t.MinMacroF1},
		{CheckAUC, r.AUC, t.MinAUC},
	}
	for _, c := range overall {
		if c.want > 0 && c.got < c.want {
			out = append(out, GateFailure{Check: c.check, Got: c.got, Want: c.want})
		}
	}
	if t.MinClassF1 > 0 {
		for _, pc := range r.PerClass {
			if pc.Support > 0 && pc.F1 < t.MinClassF1 {
				out = append(out, GateFailure{Check: CheckClassF1, Class: pc.Class, Got: pc.F1, Want: t.MinClassF1})
			}
		}
	}
	return out
}
