// Package dataset reads and writes labeled data as CSV.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/promptlens/promptlens/internal/models"
)

// Row maps column name to cell value.
type Row map[string]string

// EntryColumns is the header written by WriteEntriesCSV and expected by LoadEntries.
var EntryColumns = []string{
	"message_id",
	"message_content",
	"intent_category",
	"urgency_level",
	"patient_type",
	"response_priority",
}

// LoadCSV reads a CSV file whose first record is the header.
func LoadCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	rows, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("csv: %s: %w", path, err)
	}
	return rows, nil
}

// ReadCSV is LoadCSV over an arbitrary reader.
func ReadCSV(r io.Reader) ([]Row, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty (no header row)")
	}

	headers := records[0]
	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(headers) {
			return nil, fmt.Errorf("row %d has %d columns, expected %d", i+2, len(record), len(headers))
		}
		row := make(Row, len(headers))
		for j, h := range headers {
			row[h] = record[j]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// LoadCSVRange reads data rows start..end (1-based, inclusive). end is
// clamped to the rows available.
func LoadCSVRange(path string, start, end int) ([]Row, error) {
	if start < 1 {
		return nil, fmt.Errorf("csv: range start must be >= 1, got %d", start)
	}
	if end < start {
		return nil, fmt.Errorf("csv: range end (%d) must be >= start (%d)", end, start)
	}

	all, err := LoadCSV(path)
	if err != nil {
		return nil, err
	}
	if start > len(all) {
		return []Row{}, nil
	}
	return all[start-1 : min(end, len(all))], nil
}

// LabelPairs holds the two aligned label sequences of an evaluation file.
type LabelPairs struct {
	Actual    []string
	Predicted []string
}

// LabelPairsFromRows extracts the actual and predicted columns from rows.
// A row missing either column is an error naming its 1-based data row.
func LabelPairsFromRows(rows []Row, actualCol, predictedCol string) (LabelPairs, error) {
	pairs := LabelPairs{
		Actual:    make([]string, 0, len(rows)),
		Predicted: make([]string, 0, len(rows)),
	}
	for i, row := range rows {
		a, ok := row[actualCol]
		if !ok {
			return LabelPairs{}, fmt.Errorf("row %d: missing column %q", i+1, actualCol)
		}
		p, ok := row[predictedCol]
		if !ok {
			return LabelPairs{}, fmt.Errorf("row %d: missing column %q", i+1, predictedCol)
		}
		pairs.Actual = append(pairs.Actual, a)
		pairs.Predicted = append(pairs.Predicted, p)
	}
	return pairs, nil
}

// LoadLabelPairs reads a predictions CSV with one column of true labels and
// one of predicted labels.
func LoadLabelPairs(path, actualCol, predictedCol string) (LabelPairs, error) {
	rows, err := LoadCSV(path)
	if err != nil {
		return LabelPairs{}, err
	}
	pairs, err := LabelPairsFromRows(rows, actualCol, predictedCol)
	if err != nil {
		return LabelPairs{}, fmt.Errorf("csv: %s: %w", path, err)
	}
	return pairs, nil
}

// LoadEntries reads dataset entries written by WriteEntriesCSV.
func LoadEntries(path string) ([]models.DatasetEntry, error) {
	rows, err := LoadCSV(path)
	if err != nil {
		return nil, err
	}

	entries := make([]models.DatasetEntry, 0, len(rows))
	for i, row := range rows {
		for _, col := range EntryColumns {
			if _, ok := row[col]; !ok {
				return nil, fmt.Errorf("csv: %s: row %d: missing column %q", path, i+1, col)
			}
		}
		priority, err := strconv.Atoi(row["response_priority"])
		if err != nil {
			return nil, fmt.Errorf("csv: %s: row %d: response_priority: %w", path, i+1, err)
		}
		entries = append(entries, models.DatasetEntry{
			MessageID:        row["message_id"],
			MessageContent:   row["message_content"],
			IntentCategory:   row["intent_category"],
			UrgencyLevel:     row["urgency_level"],
			PatientType:      row["patient_type"],
			ResponsePriority: priority,
		})
	}
	return entries, nil
}

// WriteEntriesCSV writes entries with an EntryColumns header.
func WriteEntriesCSV(w io.Writer, entries []models.DatasetEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(EntryColumns); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, e := range entries {
		record := []string{
			e.MessageID,
			e.MessageContent,
			e.IntentCategory,
			e.UrgencyLevel,
			e.PatientType,
			strconv.Itoa(e.ResponsePriority),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("csv: write %s: %w", e.MessageID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
