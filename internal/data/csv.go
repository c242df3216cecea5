package data

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// LoadCSV reads a dataset from CSV rows of the form:
//
//	x1,x2,...,xn,label
//	0.53,-0.21,1
//	1.20,0.44,0
//
// A leading header row is skipped when its first field is not a number.
// Labels are mapped by sign: positive values become +1, zero or negative -1,
// so both 0/1 and -1/+1 encodings work.
func LoadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV")
	}
	if len(records) > 0 && !isNumber(records[0][0]) {
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	d := &Dataset{
		X: make([][]float64, len(records)),
		Y: make([]float64, len(records)),
	}
	for i, rec := range records {
		if len(rec) < 2 {
			return nil, errors.Errorf("row %d: need at least one feature and a label, got %d fields", i+1, len(rec))
		}
		row := make([]float64, len(rec)-1)
		for j, field := range rec[:len(rec)-1] {
			row[j], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "row %d, column %d", i+1, j+1)
			}
		}
		label, err := strconv.ParseFloat(rec[len(rec)-1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d label", i+1)
		}

		d.X[i] = row
		d.Y[i] = -1
		if label > 0 {
			d.Y[i] = 1
		}
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadCSVFile opens path and reads it with LoadCSV.
func LoadCSVFile(path string) (*Dataset, error) {
	//nolint:gosec // G304: dataset path comes from the user
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open dataset")
	}
	defer f.Close()

	d, err := LoadCSV(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return d, nil
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
