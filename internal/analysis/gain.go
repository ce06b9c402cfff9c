package analysis

import (
	"errors"
	"sort"

	"github.com/guttosm/bhavpulse/internal/domain/models"
)

// ErrInvalidWindow is returned for a trailing window shorter than one session.
var ErrInvalidWindow = errors.New("trailing window must be at least 1 session")

// DaywiseGain computes, per security, the gain of the latest close over the
// low n sessions back.
//
// For a security with L sessions sorted by date (ties keep input order):
//   - baseline = Low of session L-n when L >= n, else Low of the earliest session
//   - comparison = Close of the latest session
//   - gain = (comparison - baseline) / baseline * 100, or 0 when baseline is 0
//
// Summaries are ordered by security name; records with a blank name are
// ignored. Duplicate dates for one security are kept as distinct sessions.
// The input is not modified.
func DaywiseGain(records []models.PriceRecord, n int) ([]models.GainSummary, error) {
	if n < 1 {
		return nil, ErrInvalidWindow
	}

	groups := make(map[string][]models.PriceRecord)
	for _, r := range records {
		if r.Security == "" {
			continue // rows without a security name belong to no group
		}
		groups[r.Security] = append(groups[r.Security], r)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]models.GainSummary, 0, len(names))
	for _, name := range names {
		out = append(out, summarize(name, groups[name], n))
	}
	return out, nil
}

// summarize reduces one security's sessions; group is sorted in place.
func summarize(security string, group []models.PriceRecord, n int) models.GainSummary {
	sort.SliceStable(group, func(i, j int) bool { return group[i].Date.Before(group[j].Date) })

	l := len(group)
	baseline := group[0].Low
	if l >= n {
		baseline = group[l-n].Low
	}
	latest := group[l-1]

	return models.GainSummary{
		Security:    security,
		Symbol:      latest.Symbol,
		LowPrice:    baseline,
		ClosePrice:  latest.Close,
		GainPercent: GainPercent(baseline, latest.Close),
	}
}

// GainPercent is (comparison - baseline) / baseline * 100, defined as 0 for a zero baseline.
func GainPercent(baseline, comparison float64) float64 {
	if baseline == 0 {
		return 0
	}
	return (comparison - baseline) / baseline * 100
}

// AtLeast keeps the summaries whose gain is at least threshold, in order.
func AtLeast(summaries []models.GainSummary, threshold float64) []models.GainSummary {
	out := make([]models.GainSummary, 0, len(summaries))
	for _, s := range summaries {
		if s.GainPercent >= threshold {
			out = append(out, s)
		}
	}
	return out
}
