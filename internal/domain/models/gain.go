package models

import "time"

// GainSummary is the trailing-window result for one security.
//
// Fields:
//   - Security: security name the group was keyed on.
//   - Symbol: ticker of the most recent record (empty when not tracked).
//   - LowPrice: baseline LOW N sessions back (or of the earliest session).
//   - ClosePrice: CLOSE of the most recent session.
//   - GainPercent: (ClosePrice - LowPrice) / LowPrice * 100, 0 when LowPrice is 0.
type GainSummary struct {
	Security    string
	Symbol      string
	LowPrice    float64
	ClosePrice  float64
	GainPercent float64
}

// GainReport bundles the summaries for one analysis request with the
// non-fatal problems met while producing them.
type GainReport struct {
	Days     int
	Title    string
	Rows     []GainSummary
	Warnings []string
}

// Candle is one OHLC point of a security's price series.
type Candle struct {
	Date  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// CandleSeries is the candlestick view for one security.
type CandleSeries struct {
	Security string
	Candles  []Candle
	Warnings []string
}

// Choices are the values offered by the analysis selection controls.
type Choices struct {
	Securities    []string // "All" first, then names in first-seen order
	Symbols       []string
	SecurityTypes []string
	DayRanges     []string
	MaxCustomDays int
	Warnings      []string
}
