package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/guttosm/bhavpulse/internal/domain/models"
)

// ErrTableNotFound is returned by Load when the combined table has not been written yet.
var ErrTableNotFound = errors.New("combined table not found")

// Column names of the persisted combined table.
const (
	ColSymbol    = "SYMBOL"
	ColSecurity  = "SECURITY"
	ColPrevClose = "PREV_CL_PR"
	ColOpen      = "OPEN_PRICE"
	ColHigh      = "HIGH_PRICE"
	ColLow       = "LOW_PRICE"
	ColClose     = "CLOSE_PRICE"
	ColDate      = "DATE"
)

// TableRepository defines the contract for the combined table file.
type TableRepository interface {
	Save(rows []models.SessionRow, withSymbol bool) error
	Load() ([]models.SessionRow, error)
	Exists() bool
	Path() string
}

type tableRepository struct {
	path string
}

// NewTableRepository returns a CSV-backed repository rooted at path.
func NewTableRepository(path string) TableRepository {
	return &tableRepository{path: path}
}

func (r *tableRepository) Path() string { return r.path }

// Exists reports whether the combined table is present as a regular file.
func (r *tableRepository) Exists() bool {
	fi, err := os.Stat(r.path)
	return err == nil && fi.Mode().IsRegular()
}

// Save replaces the combined table with rows. The file is written next to
// its destination and renamed into place, so readers never see a partial table.
func (r *tableRepository) Save(rows []models.SessionRow, withSymbol bool) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".merged-*.csv")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // no-op after a successful rename

	if err := writeRows(tmp, rows, withSymbol); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace %s: %w", r.path, err)
	}
	return nil
}

func writeRows(w io.Writer, rows []models.SessionRow, withSymbol bool) error {
	cw := csv.NewWriter(w)

	header := []string{ColSecurity, ColPrevClose, ColOpen, ColHigh, ColLow, ColClose, ColDate}
	if withSymbol {
		header = append([]string{ColSymbol}, header...)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		rec := []string{row.Security, row.PrevClose, row.Open, row.High, row.Low, row.Close, row.Date}
		if withSymbol {
			rec = append([]string{row.Symbol}, rec...)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// Load reads the combined table. Columns are resolved by name: SECURITY,
// the four prices and DATE are required, SYMBOL and PREV_CL_PR are optional.
func (r *tableRepository) Load() ([]models.SessionRow, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTableNotFound, r.path)
		}
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	return readRows(f)
}

func readRows(rd io.Reader) ([]models.SessionRow, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToUpper(strings.TrimSpace(h))] = i
	}
	for _, col := range []string{ColSecurity, ColOpen, ColHigh, ColLow, ColClose, ColDate} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("combined table is missing column %q", col)
		}
	}

	cell := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var rows []models.SessionRow
	line := 1
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read line after %d: %w", line, err)
		}
		line++
		rows = append(rows, models.SessionRow{
			Symbol:    cell(rec, ColSymbol),
			Security:  cell(rec, ColSecurity),
			PrevClose: cell(rec, ColPrevClose),
			Open:      cell(rec, ColOpen),
			High:      cell(rec, ColHigh),
			Low:       cell(rec, ColLow),
			Close:     cell(rec, ColClose),
			Date:      cell(rec, ColDate),
		})
	}
	return rows, nil
}
