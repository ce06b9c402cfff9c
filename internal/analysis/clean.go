// Package analysis holds the pure computations over the combined table:
// cleaning, row predicates, the trailing-window gain aggregation and the
// candle series.
package analysis

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/bhavpulse/internal/domain/models"
	"github.com/guttosm/bhavpulse/internal/reference"
)

// DateLayout is the session date format of the combined table (month is
// matched case-insensitively, so "21-MAR-2024" parses).
const DateLayout = "02-Jan-2006"

// Clean converts raw rows into price records, dropping every row whose
// open, high, low or close price or session date is missing or unparseable.
// The input is not modified.
func Clean(rows []models.SessionRow) []models.PriceRecord {
	out := make([]models.PriceRecord, 0, len(rows))
	for _, row := range rows {
		rec, ok := cleanRow(row)
		if ok {
			out = append(out, rec)
		}
	}
	return out
}

func cleanRow(row models.SessionRow) (models.PriceRecord, bool) {
	var (
		rec models.PriceRecord
		ok  bool
	)
	if rec.Open, ok = parsePrice(row.Open); !ok {
		return rec, false
	}
	if rec.High, ok = parsePrice(row.High); !ok {
		return rec, false
	}
	if rec.Low, ok = parsePrice(row.Low); !ok {
		return rec, false
	}
	if rec.Close, ok = parsePrice(row.Close); !ok {
		return rec, false
	}

	d, err := time.Parse(DateLayout, strings.TrimSpace(row.Date))
	if err != nil {
		return rec, false
	}
	rec.Date = d
	rec.Security = row.Security
	rec.Symbol = strings.TrimSpace(row.Symbol)
	rec.FirstWord = reference.FirstWord(row.Security)
	return rec, true
}

func parsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
