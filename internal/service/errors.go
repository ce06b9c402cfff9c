package service

import "errors"

var (
	// ErrSecurityRequired is returned by Candles when no single security is selected.
	ErrSecurityRequired = errors.New("no single security selected")

	// ErrInvalidArchive is returned by StoreArchive for names that are not archives.
	ErrInvalidArchive = errors.New("invalid archive name")
)

// Warnings surfaced with an otherwise successful result.
const (
	WarnSelectSecurity  = "Please select a specific security to view the candlestick chart."
	WarnFnoMissing      = "F&O securities file not found."
	WarnSymbolsMissing  = "Symbol reference file not found."
	WarnInvalidMinClose = "Please enter a valid numeric value for CLOSE_PRICE filter"
	WarnNoSecurities    = "No securities met the gain threshold."
	WarnNoCandles       = "No data available for the selected security."
)
