package analysis

import (
	"sort"

	"github.com/guttosm/bhavpulse/internal/domain/models"
)

// Candles returns the OHLC series of security, sorted by date.
func Candles(records []models.PriceRecord, security string) []models.Candle {
	var out []models.Candle
	for _, r := range records {
		if r.Security == security {
			out = append(out, models.Candle{Date: r.Date, Open: r.Open, High: r.High, Low: r.Low, Close: r.Close})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Securities returns the distinct security names in first-seen order.
func Securities(records []models.PriceRecord) []string {
	return distinct(records, func(r models.PriceRecord) string { return r.Security })
}

// SymbolsOf returns the distinct non-empty tickers in first-seen order.
func SymbolsOf(records []models.PriceRecord) []string {
	return distinct(records, func(r models.PriceRecord) string { return r.Symbol })
}

func distinct(records []models.PriceRecord, key func(models.PriceRecord) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		k := key(r)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
