package httputil

import (
	"encoding/json"
	"net/http"

	"html2md/internal/domain"
)

// ErrorBody is the JSON envelope for every non-200 response.
type ErrorBody struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// RespondJSON writes a JSON response with the given status code.
// It handles encoding errors safely by marshaling first, preventing
// partial responses if encoding fails after headers are sent.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		// Encoding failed - return 500 instead
		RespondError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// RespondError writes the error envelope with the given status code.
func RespondError(w http.ResponseWriter, status int, message string) {
	payload, err := json.Marshal(ErrorBody{Error: message, Status: status})
	if err != nil {
		// Fallback to plain text if JSON encoding fails
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// RespondAPIError surfaces a pipeline failure verbatim: its message and
// status pair is the client-visible contract.
func RespondAPIError(w http.ResponseWriter, apiErr *domain.APIError) {
	RespondError(w, apiErr.Status, apiErr.Message)
}
