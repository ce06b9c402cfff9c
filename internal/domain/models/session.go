package models

import "time"

// SessionRow is one merged row of the combined table, exactly as read from a
// per-day archive. Prices stay as raw text; they are validated when the table
// is cleaned for analysis.
//
// Column order in the persisted table:
//  1. SYMBOL (only when the merge keeps it)
//  2. SECURITY
//  3. PREV_CL_PR
//  4. OPEN_PRICE
//  5. HIGH_PRICE
//  6. LOW_PRICE
//  7. CLOSE_PRICE
//  8. DATE (DD-MMM-YYYY, empty when the archive name carries no date)
type SessionRow struct {
	Symbol    string
	Security  string
	PrevClose string
	Open      string
	High      string
	Low       string
	Close     string
	Date      string
}

// PriceRecord is a validated session: all four prices parsed and a
// parseable session date.
type PriceRecord struct {
	Security  string
	Symbol    string
	FirstWord string // leading whitespace token of Security, upper-cased
	Date      time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
}
