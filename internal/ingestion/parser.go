package ingestion

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/guttosm/bhavpulse/internal/domain/models"
)

// Positions 9..15 (NET_TRDVAL through LO_52_WK in a Pd file) are always dropped.
const (
	trailingDropFrom = 9
	trailingDropTo   = 15
)

// requiredColumns must survive the positional drop, otherwise the table is
// misaligned and the run fails.
var requiredColumns = []string{"SECURITY", "OPEN_PRICE", "HIGH_PRICE", "LOW_PRICE", "CLOSE_PRICE"}

// columnLayout is the resolved position of each kept column in the source
// table; -1 marks an optional column that is absent.
type columnLayout struct {
	symbol, security, prevClose, open, high, low, close int
	maxIndex                                            int
}

func (l columnLayout) hasSymbol() bool { return l.symbol >= 0 }

// keptColumns applies the positional drop to header and returns the kept
// names (trimmed, upper-cased) keyed to their original index.
func keptColumns(header []string, leadingDrop int) map[string]int {
	kept := make(map[string]int, len(header))
	for i, h := range header {
		if i < leadingDrop || (i >= trailingDropFrom && i <= trailingDropTo) {
			continue
		}
		name := strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := kept[name]; !dup {
			kept[name] = i
		}
	}
	return kept
}

// resolveLayout validates the header of a per-day table.
// It fails on:
//   - a required column missing after the positional drop
func resolveLayout(header []string, leadingDrop int) (columnLayout, error) {
	kept := keptColumns(header, leadingDrop)

	var missing []string
	for _, c := range requiredColumns {
		if _, ok := kept[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return columnLayout{}, fmt.Errorf("missing columns after drop: %s", strings.Join(missing, ", "))
	}

	pos := func(name string) int {
		if i, ok := kept[name]; ok {
			return i
		}
		return -1
	}
	l := columnLayout{
		symbol:    pos("SYMBOL"),
		security:  pos("SECURITY"),
		prevClose: pos("PREV_CL_PR"),
		open:      pos("OPEN_PRICE"),
		high:      pos("HIGH_PRICE"),
		low:       pos("LOW_PRICE"),
		close:     pos("CLOSE_PRICE"),
	}
	for _, i := range []int{l.symbol, l.security, l.prevClose, l.open, l.high, l.low, l.close} {
		if i > l.maxIndex {
			l.maxIndex = i
		}
	}
	return l, nil
}

// parseTable opens, validates and parses one per-day table, tagging every
// row with date.
// It fails on:
//   - a header missing required columns
//   - a row too short to hold a resolved column
//   - unrecoverable I/O or CSV errors
//
// It tolerates:
//   - empty cells (kept as empty text; the analysis stage drops such rows)
func parseTable(ctx context.Context, path string, leadingDrop int, date string) ([]models.SessionRow, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, false, errors.New("empty table: no header")
		}
		return nil, false, fmt.Errorf("read header: %w", err)
	}
	layout, err := resolveLayout(header, leadingDrop)
	if err != nil {
		return nil, false, err
	}

	cell := func(rec []string, i int) string {
		if i < 0 {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var rows []models.SessionRow
	lineNumber := 1

	for {
		select {
		case <-ctx.Done():
			return nil, false, ctx.Err()
		default:
		}

		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, false, fmt.Errorf("read line after %d: %w", lineNumber, err)
		}
		lineNumber++

		if len(rec) <= layout.maxIndex {
			return nil, false, fmt.Errorf("line %d: expected at least %d columns, got %d", lineNumber, layout.maxIndex+1, len(rec))
		}

		rows = append(rows, models.SessionRow{
			Symbol:    cell(rec, layout.symbol),
			Security:  cell(rec, layout.security),
			PrevClose: cell(rec, layout.prevClose),
			Open:      cell(rec, layout.open),
			High:      cell(rec, layout.high),
			Low:       cell(rec, layout.low),
			Close:     cell(rec, layout.close),
			Date:      date,
		})
	}

	return rows, layout.hasSymbol(), nil
}
