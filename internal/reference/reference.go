// Package reference loads the externally supplied allow-lists that restrict
// the analysis universe: the F&O security list and the symbol list.
package reference

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNotFound is returned when the reference file does not exist.
var ErrNotFound = errors.New("reference file not found")

// Column names looked up in reference files.
const (
	SecurityColumn = "SECURITY"
	SymbolColumn   = "SYMBOL"
)

// Load returns the values of column from the reference file at path.
// Files ending in .xlsx are read from their first sheet with excelize,
// anything else is read as CSV. The first row is the header; the column
// is matched case-insensitively.
func Load(path, column string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	var (
		rows [][]string
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		rows, err = readXLSX(path)
	} else {
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return columnValues(rows, column)
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

func readCSV(path string) ([][]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	r := csv.NewReader(fh)
	r.FieldsPerRecord = -1
	var rows [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return rows, nil
			}
			return nil, err
		}
		rows = append(rows, rec)
	}
}

func columnValues(rows [][]string, column string) ([]string, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("column %q not found: file is empty", column)
	}
	col := -1
	for i, h := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), column) {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("column %q not found", column)
	}

	out := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if col < len(row) {
			out = append(out, row[col])
		} else {
			out = append(out, "")
		}
	}
	return out, nil
}

// FirstWords maps each security name to its first whitespace-delimited
// token, upper-cased. Blank names are skipped.
func FirstWords(securities []string) []string {
	out := make([]string, 0, len(securities))
	for _, s := range securities {
		if w := FirstWord(s); w != "" {
			out = append(out, w)
		}
	}
	return out
}

// FirstWord returns the upper-cased leading token of s, or "".
func FirstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}

// Symbols returns the set of trimmed, upper-cased non-blank symbols.
func Symbols(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if s := strings.ToUpper(strings.TrimSpace(v)); s != "" {
			set[s] = struct{}{}
		}
	}
	return set
}
