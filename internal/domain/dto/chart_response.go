package dto

// BarPoint is one bar of the gain chart, with the prices shown on hover.
type BarPoint struct {
	Security    string  `json:"security"`
	GainPercent float64 `json:"gain_percent"`
	LowPrice    float64 `json:"low_price"`
	ClosePrice  float64 `json:"close_price"`
}

// BarChartResponse is returned by GET /api/v1/charts/bar.
type BarChartResponse struct {
	Title    string     `json:"title" example:"Equities with High Gains over 3 Days"`
	XField   string     `json:"x" example:"SECURITY"`
	YField   string     `json:"y" example:"GAIN_PERCENT"`
	Hover    []string   `json:"hover_data"`
	Points   []BarPoint `json:"points"`
	Warnings []string   `json:"warnings,omitempty"`
}

// CandlePoint is one OHLC point; Date is formatted as YYYY-MM-DD.
type CandlePoint struct {
	Date  string  `json:"date" example:"2024-03-21"`
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

// CandlestickResponse is returned by GET /api/v1/charts/candlestick.
type CandlestickResponse struct {
	Security string        `json:"security"`
	Candles  []CandlePoint `json:"candles"`
	Warnings []string      `json:"warnings,omitempty"`
}
