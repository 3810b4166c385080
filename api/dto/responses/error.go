package responses

import "net/http"

// ErrorResponse is the body of every failed request: {"ok": false, "error": "..."}.
// It implements huma.StatusError so handlers can return it directly.
type ErrorResponse struct {
	status int

	OK      bool     `json:"ok"`
	Message string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// NewErrorResponse builds an error body for status. Causes are listed in details.
func NewErrorResponse(status int, msg string, errs ...error) *ErrorResponse {
	resp := &ErrorResponse{status: status, Message: msg}
	for _, err := range errs {
		if err != nil {
			resp.Details = append(resp.Details, err.Error())
		}
	}
	return resp
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// GetStatus returns the HTTP status code
func (e *ErrorResponse) GetStatus() int {
	if e.status == 0 {
		return http.StatusInternalServerError
	}
	return e.status
}

// ContentType keeps error bodies as plain JSON
func (e *ErrorResponse) ContentType(string) string {
	return "application/json"
}
