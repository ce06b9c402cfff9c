package dto

// MergeResponse is returned by POST /api/v1/merge.
type MergeResponse struct {
	Message  string `json:"message" example:"merged CSV saved at: output/merged_output.csv"`
	Archives int    `json:"archives" example:"3"`
	Files    int    `json:"files" example:"3"`
	Rows     int    `json:"rows" example:"5120"`
	Path     string `json:"path" example:"output/merged_output.csv"`
	Download string `json:"download" example:"/api/merged-output"`
}

// UploadResponse is returned by POST /api/v1/archives.
type UploadResponse struct {
	Saved []string `json:"saved"`
}

// OptionsResponse lists the values the selection controls offer.
type OptionsResponse struct {
	Securities    []string `json:"securities"`
	Symbols       []string `json:"symbols"`
	SecurityTypes []string `json:"security_types"`
	DayRanges     []string `json:"day_ranges"`
	MaxCustomDays int      `json:"max_custom_days" example:"30"`
	Warnings      []string `json:"warnings,omitempty"`
}
