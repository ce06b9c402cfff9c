package dto

// GainRow is one line of the gains table.
type GainRow struct {
	Security    string  `json:"security" example:"RELIANCE INDUSTRIES LTD"`
	Symbol      string  `json:"symbol,omitempty" example:"RELIANCE"`
	LowPrice    float64 `json:"low_price" example:"2410.5"`
	ClosePrice  float64 `json:"close_price" example:"2530"`
	GainPercent float64 `json:"gain_percent" example:"4.96"`
}

// GainsResponse represents the JSON structure returned by GET /api/v1/gains.
type GainsResponse struct {
	Days     int       `json:"days" example:"2"`
	Title    string    `json:"title" example:"Equities with High Gains over 2 Days"`
	Count    int       `json:"count" example:"1"`
	Rows     []GainRow `json:"rows"`
	Warnings []string  `json:"warnings,omitempty"`
}
