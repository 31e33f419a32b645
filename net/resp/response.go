package resp

import (
	"encoding/json"
	"net/http"

	"github.com/ncobase/taskmate/ecode"
)

// Exception represents a failure body. Message is always present so clients
// can surface it verbatim.
type Exception struct {
	Status  int    `json:"-"`                // HTTP status
	Code    int    `json:"code,omitempty"`   // Business code
	Message string `json:"message"`          // Message
	Errors  any    `json:"errors,omitempty"` // Validation errors
}

// Success writes data with 200.
func Success(w http.ResponseWriter, data ...any) {
	WithStatusCode(w, http.StatusOK, data...)
}

// WithStatusCode writes a success body with a custom status. A string payload
// becomes {"message": ...}; no payload becomes {"message": "ok"}.
func WithStatusCode(w http.ResponseWriter, statusCode int, data ...any) {
	if statusCode < 200 || statusCode >= 400 {
		Fail(w, &Exception{Status: statusCode})
		return
	}

	var body any = map[string]any{"message": "ok"}
	if len(data) > 0 && data[0] != nil {
		if msg, ok := data[0].(string); ok {
			body = map[string]any{"message": msg}
		} else {
			body = data[0]
		}
	}
	writeJSON(w, statusCode, body)
}

// Fail writes a failure body. Missing fields are filled from the code table.
func Fail(w http.ResponseWriter, r *Exception) {
	if r == nil {
		r = &Exception{Status: http.StatusInternalServerError, Code: ecode.ServerErr}
	}
	status, body := buildFailureResponse(r)
	writeJSON(w, status, body)
}

func buildFailureResponse(r *Exception) (int, *Exception) {
	code := ecode.RequestErr
	if r.Code != 0 {
		code = r.Code
	}
	status := r.Status
	if status == 0 {
		status = ecode.ToHTTPStatus(code)
	}
	message := r.Message
	if message == "" {
		message = ecode.Text(code)
	}
	return status, &Exception{Status: status, Code: code, Message: message, Errors: r.Errors}
}

// Raw writes body verbatim, for answers that deliberately are not JSON.
func Raw(w http.ResponseWriter, statusCode int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}

func writeJSON(w http.ResponseWriter, code int, res any) {
	raw, err := json.Marshal(res)
	if err != nil {
		http.Error(w, "Failed to encode JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(raw)
}
