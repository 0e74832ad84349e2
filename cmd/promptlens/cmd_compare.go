package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/promptlens/promptlens/internal/classification"
	"github.com/spf13/cobra"
)

func newCompareCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "compare <report1.json> <report2.json> [report3.json ...]",
		Short: "Compare evaluation reports",
		Long: `Compare reports written by "promptlens evaluate --format json" side by side.

Shows accuracy, macro scores and AUC for each report, per-class F1, and the
delta between the first and the last report.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "table" && format != "json" {
				return fmt.Errorf("unsupported format %q: must be table or json", format)
			}

			reports := make([]*savedReport, 0, len(args))
			for _, path := range args {
				r, err := loadSavedReport(path)
				if err != nil {
					return fmt.Errorf("failed to load %s: %w", path, err)
				}
				reports = append(reports, r)
			}

			cmp := buildComparison(args, reports)
			if format == "json" {
				return printComparisonJSON(cmd.OutOrStdout(), cmp)
			}
			printComparisonTable(cmd.OutOrStdout(), cmp)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table or json")

	return cmd
}

// savedReport is the part of an evaluationResult that compare reads.
type savedReport struct {
	Source string `json:"source"`
	Report struct {
		Samples          int                              `json:"samples"`
		Accuracy         float64                          `json:"accuracy"`
		MacroPrecision   float64                          `json:"macroPrecision"`
		MacroRecall      float64                          `json:"macroRecall"`
		MacroF1          float64                          `json:"macroF1"`
		MacroSpecificity float64                          `json:"macroSpecificity"`
		AUC              float64                          `json:"auc"`
		PerClass         []classification.PerClassMetrics `json:"perClass"`
	} `json:"report"`
}

// metricComparison is one metric across reports.
type metricComparison struct {
	Metric string    `json:"metric"`
	Values []float64 `json:"values"`
	Delta  float64   `json:"delta"`
}

// classComparison is one class's F1 across reports. F1 and Delta are nil
// where a report lacks the class.
type classComparison struct {
	Class string     `json:"class"`
	F1    []*float64 `json:"f1"`
	Delta *float64   `json:"delta"`
}

// comparison is the full comparison output.
type comparison struct {
	Files   []string           `json:"files"`
	Samples []int              `json:"samples"`
	Metrics []metricComparison `json:"metrics"`
	Classes []classComparison  `json:"classes"`
}

func loadSavedReport(path string) (*savedReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r savedReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	if r.Report.Samples == 0 {
		return nil, fmt.Errorf("no report found (was it written by evaluate --format json?)")
	}
	return &r, nil
}

func buildComparison(files []string, reports []*savedReport) *comparison {
	cmp := &comparison{Files: files}
	for _, r := range reports {
		cmp.Samples = append(cmp.Samples, r.Report.Samples)
	}

	metrics := []struct {
		name string
		get  func(*savedReport) float64
	}{
		{"Accuracy", func(r *savedReport) float64 { return r.Report.Accuracy }},
		{"Macro precision", func(r *savedReport) float64 { return r.Report.MacroPrecision }},
		{"Macro recall", func(r *savedReport) float64 { return r.Report.MacroRecall }},
		{"Macro F1", func(r *savedReport) float64 { return r.Report.MacroF1 }},
		{"Macro specificity", func(r *savedReport) float64 { return r.Report.MacroSpecificity }},
		{"Macro AUC", func(r *savedReport) float64 { return r.Report.AUC }},
	}
	n := len(reports)
	for _, m := range metrics {
		mc := metricComparison{Metric: m.name}
		for _, r := range reports {
			mc.Values = append(mc.Values, m.get(r))
		}
		mc.Delta = mc.Values[n-1] - mc.Values[0]
		cmp.Metrics = append(cmp.Metrics, mc)
	}

	// Classes in first-seen order across reports.
	var classes []string
	seen := make(map[string]bool)
	for _, r := range reports {
		for _, pc := range r.Report.PerClass {
			if !seen[pc.Class] {
				seen[pc.Class] = true
				classes = append(classes, pc.Class)
			}
		}
	}

	for _, class := range classes {
		cc := classComparison{Class: class}
		for _, r := range reports {
			var f1 *float64
			for _, pc := range r.Report.PerClass {
				if pc.Class == class {
					v := pc.F1
					f1 = &v
					break
				}
			}
			cc.F1 = append(cc.F1, f1)
		}
		if first, last := cc.F1[0], cc.F1[n-1]; first != nil && last != nil {
			d := *last - *first
			cc.Delta = &d
		}
		cmp.Classes = append(cmp.Classes, cc)
	}

	return cmp
}

func printComparisonTable(w io.Writer, c *comparison) {
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintln(w, " COMPARISON REPORT")
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintln(w)

	for i, f := range c.Files {
		fmt.Fprintf(w, "  [%d] %s  (%d samples)\n", i+1, f, c.Samples[i])
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, strings.Repeat("-", 70))
	fmt.Fprintln(w, " AGGREGATE")
	fmt.Fprintln(w, strings.Repeat("-", 70))

	fmt.Fprintf(w, "  %-20s", "Metric")
	for i := range c.Files {
		fmt.Fprintf(w, "  %-9s", fmt.Sprintf("[%d]", i+1))
	}
	fmt.Fprintf(w, "  Delta\n")

	for _, m := range c.Metrics {
		fmt.Fprintf(w, "  %-20s", m.Metric)
		for _, v := range m.Values {
			fmt.Fprintf(w, "  %-9.4f", v)
		}
		fmt.Fprintf(w, "  %s\n", formatDelta(m.Delta))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, strings.Repeat("-", 70))
	fmt.Fprintln(w, " PER-CLASS F1")
	fmt.Fprintln(w, strings.Repeat("-", 70))

	fmt.Fprintf(w, "  %s", runewidth.FillRight("Class", 25))
	for i := range c.Files {
		fmt.Fprintf(w, "  %-9s", fmt.Sprintf("[%d] F1", i+1))
	}
	fmt.Fprintf(w, "  Delta\n")

	for _, cc := range c.Classes {
		fmt.Fprintf(w, "  %s", runewidth.FillRight(runewidth.Truncate(cc.Class, 25, "..."), 25))
		for _, v := range cc.F1 {
			if v == nil {
				fmt.Fprintf(w, "  %-9s", "n/a")
			} else {
				fmt.Fprintf(w, "  %-9.4f", *v)
			}
		}
		if cc.Delta == nil {
			fmt.Fprintf(w, "  n/a\n")
		} else {
			fmt.Fprintf(w, "  %s\n", formatDelta(*cc.Delta))
		}
	}
	fmt.Fprintln(w)
}

func formatDelta(d float64) string {
	icon := " "
	switch {
	case d > 0 && math.Abs(d) >= 5e-5:
		icon = "↑"
	case d < 0 && math.Abs(d) >= 5e-5:
		icon = "↓"
	}
	return fmt.Sprintf("%s%+.4f", icon, d)
}

func printComparisonJSON(w io.Writer, c *comparison) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal comparison report: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
