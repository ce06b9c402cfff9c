package dto

import "time"

// ErrorResponse is the JSON body returned by every failing endpoint.
//
// Fields:
//   - Message: short human readable description.
//   - ErrorDetails: text of the underlying error, if any.
//   - Timestamp: when the error response was built (UTC).
type ErrorResponse struct {
	Message      string    `json:"message" example:"merged output file not found"`
	ErrorDetails string    `json:"error_details,omitempty" example:"open output/merged_output.csv: no such file or directory"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface so an ErrorResponse can travel through c.Error.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse; err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
