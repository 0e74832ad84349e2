package classification

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ConfusionMatrix counts samples by (actual, predicted) class. It is square,
// indexed on both axes by the same ClassSet, and read-only once built.
type ConfusionMatrix struct {
	classes ClassSet
	cells   []int // row-major: cells[actual*n+predicted]
	total   int
}

// Confusion is a single off-diagonal cell of a ConfusionMatrix.
type Confusion struct {
	Actual    string `json:"actual"`
	Predicted string `json:"predicted"`
	Count     int    `json:"count"`
}

// BuildConfusionMatrix counts each (actual[i], predicted[i]) pair. Every label
// must belong to classes.
func BuildConfusionMatrix(actual, predicted []string, classes ClassSet) (*ConfusionMatrix, error) {
	if len(actual) != len(predicted) {
		return nil, &LengthMismatchError{Actual: len(actual), Predicted: len(predicted)}
	}

	n := classes.Len()
	if n == 0 {
		return nil, fmt.Errorf("%w: no labels", ErrInvalidClassSet)
	}
	scratch := make([]int, n*n)
	for i := range actual {
		a, ok := classes.Index(actual[i])
		if !ok {
			return nil, &UnknownLabelError{Label: actual[i], Index: i, Source: "actual"}
		}
		p, ok := classes.Index(predicted[i])
		if !ok {
			return nil, &UnknownLabelError{Label: predicted[i], Index: i, Source: "predicted"}
		}
		scratch[a*n+p]++
	}

	return &ConfusionMatrix{classes: classes, cells: scratch, total: len(actual)}, nil
}

// Classes returns the class set defining both axes.
func (m *ConfusionMatrix) Classes() ClassSet { return m.classes }

// Total returns the number of samples, which equals the sum of all cells.
func (m *ConfusionMatrix) Total() int { return m.total }

// Count returns the number of samples of class actual predicted as predicted.
// Unknown labels count as zero.
func (m *ConfusionMatrix) Count(actual, predicted string) int {
	a, ok := m.classes.Index(actual)
	if !ok {
		return 0
	}
	p, ok := m.classes.Index(predicted)
	if !ok {
		return 0
	}
	return m.at(a, p)
}

// RowSum returns how many samples actually belong to class.
func (m *ConfusionMatrix) RowSum(class string) int {
	a, ok := m.classes.Index(class)
	if !ok {
		return 0
	}
	sum := 0
	for p := 0; p < m.classes.Len(); p++ {
		sum += m.at(a, p)
	}
	return sum
}

// ColSum returns how many samples were predicted as class.
func (m *ConfusionMatrix) ColSum(class string) int {
	p, ok := m.classes.Index(class)
	if !ok {
		return 0
	}
	sum := 0
	for a := 0; a < m.classes.Len(); a++ {
		sum += m.at(a, p)
	}
	return sum
}

// Correct returns the sum of the diagonal.
func (m *ConfusionMatrix) Correct() int {
	sum := 0
	for i := 0; i < m.classes.Len(); i++ {
		sum += m.at(i, i)
	}
	return sum
}

// Rows returns a copy of the counts as a dense grid in class-set order.
func (m *ConfusionMatrix) Rows() [][]int {
	n := m.classes.Len()
	rows := make([][]int, n)
	for a := 0; a < n; a++ {
		rows[a] = make([]int, n)
		copy(rows[a], m.cells[a*n:(a+1)*n])
	}
	return rows
}

// Map returns a copy of the counts as actual → predicted → count, including
// zero cells.
func (m *ConfusionMatrix) Map() map[string]map[string]int {
	labels := m.classes.labels
	out := make(map[string]map[string]int, len(labels))
	for a, actual := range labels {
		row := make(map[string]int, len(labels))
		for p, predicted := range labels {
			row[predicted] = m.at(a, p)
		}
		out[actual] = row
	}
	return out
}

// TopConfusions returns up to n non-zero off-diagonal cells, largest first.
// Ties keep class-set order (row, then column). n <= 0 returns all of them.
func (m *ConfusionMatrix) TopConfusions(n int) []Confusion {
	labels := m.classes.labels
	var out []Confusion
	for a := range labels {
		for p := range labels {
			if a == p || m.at(a, p) == 0 {
				continue
			}
			out = append(out, Confusion{Actual: labels[a], Predicted: labels[p], Count: m.at(a, p)})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// MarshalJSON encodes the matrix as a nested actual → predicted → count object.
func (m *ConfusionMatrix) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Map())
}

func (m *ConfusionMatrix) at(a, p int) int {
	return m.cells[a*m.classes.Len()+p]
}
