// Package classification computes multi-class classification reports from
// (actual, predicted) label pairs: confusion matrix, per-class and macro
// precision/recall/F1/specificity, one-vs-rest ROC-AUC and accuracy.
//
// Every function is a pure function of its inputs. Randomness, when a caller
// wants it, lives in the ConfidenceFunc the caller supplies.
package classification

import (
	"fmt"
	"strings"
)

// ClassSet is an ordered, duplicate-free set of class labels. The order
// defines the axes of every ConfusionMatrix built from it.
type ClassSet struct {
	labels []string
	index  map[string]int
}

// NewClassSet builds a ClassSet in the given order.
func NewClassSet(labels ...string) (ClassSet, error) {
	if len(labels) == 0 {
		return ClassSet{}, fmt.Errorf("%w: no labels", ErrInvalidClassSet)
	}
	cs := ClassSet{
		labels: make([]string, 0, len(labels)),
		index:  make(map[string]int, len(labels)),
	}
	for _, l := range labels {
		if strings.TrimSpace(l) == "" {
			return ClassSet{}, fmt.Errorf("%w: blank label", ErrInvalidClassSet)
		}
		if _, dup := cs.index[l]; dup {
			return ClassSet{}, fmt.Errorf("%w: duplicate label %q", ErrInvalidClassSet, l)
		}
		cs.index[l] = len(cs.labels)
		cs.labels = append(cs.labels, l)
	}
	return cs, nil
}

// MustClassSet is like NewClassSet but panics on error. Intended for
// package-level defaults.
func MustClassSet(labels ...string) ClassSet {
	cs, err := NewClassSet(labels...)
	if err != nil {
		panic(err)
	}
	return cs
}

// With returns a new ClassSet holding cs followed by any labels not already
// present, in first-seen order. Blank labels are skipped. cs is unchanged.
func (cs ClassSet) With(labels ...string) ClassSet {
	out := ClassSet{
		labels: make([]string, len(cs.labels), len(cs.labels)+len(labels)),
		index:  make(map[string]int, len(cs.labels)+len(labels)),
	}
	copy(out.labels, cs.labels)
	for i, l := range cs.labels {
		out.index[l] = i
	}
	for _, l := range labels {
		if strings.TrimSpace(l) == "" {
			continue
		}
		if _, ok := out.index[l]; ok {
			continue
		}
		out.index[l] = len(out.labels)
		out.labels = append(out.labels, l)
	}
	return out
}

// Len returns the number of classes.
func (cs ClassSet) Len() int { return len(cs.labels) }

// Labels returns a copy of the labels in axis order.
func (cs ClassSet) Labels() []string {
	out := make([]string, len(cs.labels))
	copy(out, cs.labels)
	return out
}

// Index returns the axis position of label.
func (cs ClassSet) Index(label string) (int, bool) {
	i, ok := cs.index[label]
	return i, ok
}

// Contains reports whether label is a member of the set.
func (cs ClassSet) Contains(label string) bool {
	_, ok := cs.index[label]
	return ok
}

// ResolveClassSet returns the declared classes when any are given, and
// otherwise the labels observed in actual then predicted, in first-seen
// order. Observed sets never fail on unknown labels; declared ones do, later,
// in BuildConfusionMatrix.
func ResolveClassSet(declared, actual, predicted []string) (ClassSet, error) {
	if len(declared) > 0 {
		return NewClassSet(declared...)
	}
	cs := ClassSet{}.With(actual...).With(predicted...)
	if cs.Len() == 0 {
		return ClassSet{}, ErrNoSamples
	}
	return cs, nil
}
