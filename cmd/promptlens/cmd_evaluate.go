package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/promptlens/promptlens/internal/classification"
	"github.com/promptlens/promptlens/internal/confidence"
	"github.com/promptlens/promptlens/internal/dataset"
	"github.com/promptlens/promptlens/internal/reporting"
	"github.com/promptlens/promptlens/internal/statistics"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// evaluationResult is the JSON output of evaluate and the input of compare.
type evaluationResult struct {
	Source       string                         `json:"source"`
	Report       *classification.Report         `json:"report"`
	AccuracyCI   *statistics.ConfidenceInterval `json:"accuracyCi,omitempty"`
	GateFailures []reporting.GateFailure        `json:"gateFailures,omitempty"`
}

type evaluateOptions struct {
	actualCol    string
	predictedCol string
	classes      []string
	confidence   string
	format       string
	rows         string
	ciLevel      float64
	junitPath    string
	explain      bool
	showMatrix   bool
	thresholds   reporting.Thresholds
}

func newEvaluateCommand() *cobra.Command {
	var opts evaluateOptions

	cmd := &cobra.Command{
		Use:   "evaluate <predictions.csv>",
		Short: "Compute classification metrics from a predictions CSV",
		Long: `Compute classification metrics from a CSV of (actual, predicted) label pairs.

Reports the confusion matrix, per-class precision/recall/F1, macro averages,
macro specificity, one-vs-rest ROC-AUC and the legacy binary block.

The class set is --classes, else the classes in .promptlens.yaml, else the
labels seen in the file. With a declared class set, labels outside it are an
error.

Threshold flags (--min-*) make the command exit with status 1 when the report
falls short, after printing it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProjectConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !flags.Changed("actual-col") {
				opts.actualCol = cfg.Evaluate.ActualColumn
			}
			if !flags.Changed("predicted-col") {
				opts.predictedCol = cfg.Evaluate.PredictedColumn
			}
			if !flags.Changed("classes") {
				opts.classes = cfg.Classes
			}
			if !flags.Changed("format") {
				opts.format = cfg.Evaluate.Format
			}
			params := cfg.Evaluate.Confidence.Params
			if !flags.Changed("confidence") {
				opts.confidence = cfg.Evaluate.Confidence.Type
			} else if opts.confidence != cfg.Evaluate.Confidence.Type {
				params = nil
			}
			mergeThresholds(&opts.thresholds, cfg.Evaluate.Thresholds, cmd)

			fn, err := confidence.New(confidence.Kind(opts.confidence), params)
			if err != nil {
				return err
			}
			return runEvaluate(cmd.OutOrStdout(), args[0], opts, fn, *cfg.Generate.Seed)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.actualCol, "actual-col", "", "Column holding true labels (default from config: actual)")
	f.StringVar(&opts.predictedCol, "predicted-col", "", "Column holding predicted labels (default from config: predicted)")
	f.StringSliceVar(&opts.classes, "classes", nil, "Ordered class labels, comma separated")
	f.StringVar(&opts.confidence, "confidence", "", "Confidence function for AUC: proxy or jitter")
	f.StringVarP(&opts.format, "format", "f", "", "Output format: auto, table or json")
	f.StringVar(&opts.rows, "rows", "", "Only evaluate data rows START:END (1-based, inclusive)")
	f.Float64Var(&opts.ciLevel, "ci", 0, "Add a bootstrap confidence interval for accuracy at this level, e.g. 0.95")
	f.StringVar(&opts.junitPath, "junit", "", "Also write a JUnit XML report to this path")
	f.BoolVar(&opts.explain, "explain", false, "Print a plain-language interpretation (table format)")
	f.BoolVar(&opts.showMatrix, "matrix", false, "Print the confusion matrix (table format)")
	f.Float64Var(&opts.thresholds.MinAccuracy, "min-accuracy", 0, "Fail when accuracy is below this")
	f.Float64Var(&opts.thresholds.MinMacroF1, "min-macro-f1", 0, "Fail when macro F1 is below this")
	f.Float64Var(&opts.thresholds.MinAUC, "min-auc", 0, "Fail when macro AUC is below this")
	f.Float64Var(&opts.thresholds.MinClassF1, "min-class-f1", 0, "Fail when any class F1 is below this")

	return cmd
}

// mergeThresholds fills every threshold not given on the command line from
// the config.
func mergeThresholds(dst *reporting.Thresholds, cfg reporting.Thresholds, cmd *cobra.Command) {
	flags := cmd.Flags()
	if !flags.Changed("min-accuracy") {
		dst.MinAccuracy = cfg.MinAccuracy
	}
	if !flags.Changed("min-macro-f1") {
		dst.MinMacroF1 = cfg.MinMacroF1
	}
	if !flags.Changed("min-auc") {
		dst.MinAUC = cfg.MinAUC
	}
	if !flags.Changed("min-class-f1") {
		dst.MinClassF1 = cfg.MinClassF1
	}
}

func runEvaluate(w io.Writer, path string, opts evaluateOptions, fn classification.ConfidenceFunc, seed int64) error {
	if opts.ciLevel != 0 && (opts.ciLevel <= 0 || opts.ciLevel >= 1) {
		return fmt.Errorf("--ci must be between 0 and 1, got %v", opts.ciLevel)
	}
	format := resolveFormat(opts.format, w)
	if format != "table" && format != "json" {
		return fmt.Errorf("unsupported format %q: must be auto, table or json", opts.format)
	}

	pairs, err := loadPairs(path, opts)
	if err != nil {
		return err
	}
	classes, err := classification.ResolveClassSet(opts.classes, pairs.Actual, pairs.Predicted)
	if err != nil {
		return err
	}
	report, err := classification.Assemble(pairs.Actual, pairs.Predicted, classes, fn)
	if err != nil {
		return fmt.Errorf("evaluating %s: %w", path, err)
	}

	result := evaluationResult{
		Source:       path,
		Report:       report,
		GateFailures: opts.thresholds.Check(report),
	}
	if opts.ciLevel > 0 {
		correct, err := classification.CorrectMask(pairs.Actual, pairs.Predicted)
		if err != nil {
			return err
		}
		ci := statistics.AccuracyCI(correct, opts.ciLevel, seed)
		result.AccuracyCI = &ci
	}

	if format == "json" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		fmt.Fprintln(w, string(data))
	} else if err := printEvaluationTable(w, result, opts); err != nil {
		return err
	}

	if opts.junitPath != "" {
		if err := reporting.WriteJUnitXML(opts.junitPath, path, report, opts.thresholds, time.Now()); err != nil {
			return fmt.Errorf("writing JUnit report: %w", err)
		}
	}

	if len(result.GateFailures) > 0 {
		return &ThresholdError{Failures: result.GateFailures}
	}
	return nil
}

func loadPairs(path string, opts evaluateOptions) (dataset.LabelPairs, error) {
	if opts.rows == "" {
		return dataset.LoadLabelPairs(path, opts.actualCol, opts.predictedCol)
	}
	start, end, err := parseRowRange(opts.rows)
	if err != nil {
		return dataset.LabelPairs{}, err
	}
	rows, err := dataset.LoadCSVRange(path, start, end)
	if err != nil {
		return dataset.LabelPairs{}, err
	}
	pairs, err := dataset.LabelPairsFromRows(rows, opts.actualCol, opts.predictedCol)
	if err != nil {
		return dataset.LabelPairs{}, fmt.Errorf("csv: %s: %w", path, err)
	}
	return pairs, nil
}

// parseRowRange parses "START:END"; an empty END means the last row.
func parseRowRange(s string) (int, int, error) {
	startRaw, endRaw, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("--rows must look like START:END, got %q", s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(startRaw))
	if err != nil {
		return 0, 0, fmt.Errorf("--rows start: %w", err)
	}
	end := math.MaxInt
	if strings.TrimSpace(endRaw) != "" {
		if end, err = strconv.Atoi(strings.TrimSpace(endRaw)); err != nil {
			return 0, 0, fmt.Errorf("--rows end: %w", err)
		}
	}
	return start, end, nil
}

// resolveFormat maps "auto" to table on a terminal and json otherwise.
func resolveFormat(format string, w io.Writer) string {
	if format != "auto" {
		return format
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "table"
	}
	return "json"
}

func printEvaluationTable(w io.Writer, res evaluationResult, opts evaluateOptions) error {
	fmt.Fprintf(w, "Source: %s (%d samples, %d classes)\n\n",
		res.Source, res.Report.Samples, res.Report.ConfusionMatrix.Classes().Len())
	if err := reporting.WriteReportTable(w, res.Report); err != nil {
		return err
	}
	if res.AccuracyCI != nil {
		ci := res.AccuracyCI
		fmt.Fprintf(w, "Accuracy %.0f%% CI:   [%.3f, %.3f]\n", ci.Level*100, ci.Lower, ci.Upper)
	}
	if opts.showMatrix {
		fmt.Fprintln(w)
		if err := reporting.WriteConfusionTable(w, res.Report.ConfusionMatrix); err != nil {
			return err
		}
	}
	if opts.explain {
		fmt.Fprintln(w)
		fmt.Fprint(w, reporting.FormatSummary(res.Report))
	}
	if len(res.GateFailures) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Thresholds not met:")
		for _, f := range res.GateFailures {
			fmt.Fprintf(w, "  ✗ %s\n", f)
		}
	}
	return nil
}
