package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/promptlens/promptlens/internal/classification"
)

// maxLabelWidth caps class label columns; longer labels are truncated.
const maxLabelWidth = 24

// WriteReportTable writes r as an aligned per-class table followed by the
// macro averages, the legacy binary block and any notes.
func WriteReportTable(w io.Writer, r *classification.Report) error {
	aucByClass := make(map[string]classification.ClassAUC, len(r.PerClassAUC))
	for _, a := range r.PerClassAUC {
		aucByClass[a.Class] = a
	}

	header := []string{"Class", "Precision", "Recall", "F1", "Support", "AUC"}
	rows := make([][]string, 0, len(r.PerClass)+1)
	for _, pc := range r.PerClass {
		auc := "n/a"
		if a, ok := aucByClass[pc.Class]; ok && !a.Degenerate {
			auc = fmt.Sprintf("%.3f", a.AUC)
		}
		rows = append(rows, []string{
			pc.Class,
			fmt.Sprintf("%.3f", pc.Precision),
			fmt.Sprintf("%.3f", pc.Recall),
			fmt.Sprintf("%.3f", pc.F1),
			fmt.Sprintf("%d", pc.Support),
			auc,
		})
	}
	rows = append(rows, []string{
		"macro avg",
		fmt.Sprintf("%.3f", r.MacroPrecision),
		fmt.Sprintf("%.3f", r.MacroRecall),
		fmt.Sprintf("%.3f", r.MacroF1),
		fmt.Sprintf("%d", r.Samples),
		fmt.Sprintf("%.3f", r.AUC),
	})

	var b strings.Builder
	writeGrid(&b, header, rows)

	fmt.Fprintf(&b, "\nAccuracy:          %.3f\n", r.Accuracy)
	fmt.Fprintf(&b, "Macro specificity: %.3f\n", r.MacroSpecificity)
	l := r.Legacy
	fmt.Fprintf(&b, "Legacy binary:     TP=%d TN=%d FP=%d FN=%d\n",
		l.TruePositives, l.TrueNegatives, l.FalsePositives, l.FalseNegatives)

	for _, n := range r.Notes {
		fmt.Fprintf(&b, "note: %s\n", n)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteConfusionTable writes m as a grid with actual classes down the side
// and predicted classes across the top.
func WriteConfusionTable(w io.Writer, m *classification.ConfusionMatrix) error {
	labels := m.Classes().Labels()
	header := append([]string{"actual \\ predicted"}, labels...)
	counts := m.Rows()

	rows := make([][]string, len(labels))
	for i, label := range labels {
		row := make([]string, 0, len(labels)+1)
		row = append(row, label)
		for _, c := range counts[i] {
			row = append(row, fmt.Sprintf("%d", c))
		}
		rows[i] = row
	}

	var b strings.Builder
	writeGrid(&b, header, rows)
	_, err := io.WriteString(w, b.String())
	return err
}

// writeGrid left-aligns the first column and right-aligns the rest, sizing
// columns by display width so wide runes line up.
func writeGrid(b *strings.Builder, header []string, rows [][]string) {
	widths := make([]int, len(header))
	measure := func(cells []string) {
		for i, c := range cells {
			widths[i] = max(widths[i], runewidth.StringWidth(fit(c)))
		}
	}
	measure(header)
	for _, r := range rows {
		measure(r)
	}

	line := func(cells []string) {
		for i, c := range cells {
			c = fit(c)
			if i > 0 {
				b.WriteString("  ")
				b.WriteString(runewidth.FillLeft(c, widths[i]))
				continue
			}
			b.WriteString(runewidth.FillRight(c, widths[i]))
		}
		b.WriteString("\n")
	}

	line(header)
	total := 0
	for _, w := range widths {
		total += w
	}
	b.WriteString(strings.Repeat("-", total+2*(len(widths)-1)))
	b.WriteString("\n")
	for _, r := range rows {
		line(r)
	}
}

func fit(s string) string {
	return runewidth.Truncate(s, maxLabelWidth, "…")
}
