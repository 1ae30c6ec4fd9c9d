package ml

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

const (
	labelColumn      = "is_high_risk"
	customerIdColumn = "CustomerId"
)

// LoadLabeledCSV reads a pre-featurized training CSV: one column per model
// feature, a CustomerId column (dropped if present), and an is_high_risk
// label column. A missing file fails fast before any parsing.
func LoadLabeledCSV(path string) (X [][]float64, y []int, featureNames []string, err error) {
	if _, statErr := os.Stat(path); statErr != nil {
		return nil, nil, nil, fmt.Errorf("training data not found at %s: %w", path, statErr)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, nil, nil, fmt.Errorf("%s has no data rows", path)
	}

	header := records[0]
	labelIdx := -1
	customerIdx := -1
	for i, col := range header {
		switch col {
		case labelColumn:
			labelIdx = i
		case customerIdColumn:
			customerIdx = i
		}
	}
	if labelIdx < 0 {
		return nil, nil, nil, fmt.Errorf("%s is missing the %s column", path, labelColumn)
	}

	for i, col := range header {
		if i != labelIdx && i != customerIdx {
			featureNames = append(featureNames, col)
		}
	}

	for rowNum, record := range records[1:] {
		if len(record) != len(header) {
			return nil, nil, nil, fmt.Errorf("row %d has %d columns, want %d", rowNum+2, len(record), len(header))
		}
		label, err := strconv.Atoi(record[labelIdx])
		if err != nil || (label != 0 && label != 1) {
			return nil, nil, nil, fmt.Errorf("row %d column %q: invalid label %q", rowNum+2, labelColumn, record[labelIdx])
		}
		row := make([]float64, 0, len(featureNames))
		for i, cell := range record {
			if i == labelIdx || i == customerIdx {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("row %d column %q: invalid value %q", rowNum+2, header[i], cell)
			}
			row = append(row, v)
		}
		X = append(X, row)
		y = append(y, label)
	}
	return X, y, featureNames, nil
}

// LoadFeatureCSV reads an unlabeled feature CSV and returns its header and
// raw records for callers that re-emit the rows.
func LoadFeatureCSV(path string) (header []string, records [][]string, err error) {
	if _, statErr := os.Stat(path); statErr != nil {
		return nil, nil, fmt.Errorf("input data not found at %s: %w", path, statErr)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	all, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("%s is empty", path)
	}
	return all[0], all[1:], nil
}

// MatrixFromRecords builds the model input matrix from raw CSV rows, mapping
// columns by name onto the expected feature schema. CustomerId and label
// columns are ignored; a schema column absent from the header is an error
// naming the column, as is a header column the schema does not know.
func MatrixFromRecords(header []string, records [][]string, featureNames []string) ([][]float64, error) {
	colIdx := make(map[string]int, len(header))
	for i, col := range header {
		colIdx[col] = i
	}

	expected := make(map[string]bool, len(featureNames))
	for _, name := range featureNames {
		expected[name] = true
	}
	for _, col := range header {
		if col == customerIdColumn || col == labelColumn {
			continue
		}
		if !expected[col] {
			return nil, fmt.Errorf("unexpected column %q in input data", col)
		}
	}

	indices := make([]int, len(featureNames))
	for i, name := range featureNames {
		idx, ok := colIdx[name]
		if !ok {
			return nil, fmt.Errorf("input data is missing feature column %q", name)
		}
		indices[i] = idx
	}

	X := make([][]float64, len(records))
	for rowNum, record := range records {
		row := make([]float64, len(featureNames))
		for i, idx := range indices {
			if idx >= len(record) {
				return nil, fmt.Errorf("row %d has %d columns, want at least %d", rowNum+2, len(record), idx+1)
			}
			v, err := strconv.ParseFloat(record[idx], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: invalid value %q", rowNum+2, featureNames[i], record[idx])
			}
			row[i] = v
		}
		X[rowNum] = row
	}
	return X, nil
}
