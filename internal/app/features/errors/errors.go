// internal/app/features/errors/errors.go
package errors

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// errBody is the JSON error envelope every handler returns on failure.
type errBody struct {
	Error string `json:"error"`
}

// RenderJSON writes v as a JSON response with the given status.
func RenderJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError writes a JSON error envelope with the given status.
func JSONError(w http.ResponseWriter, status int, msg string) {
	RenderJSON(w, status, errBody{Error: msg})
}

// ErrorLogger pairs structured logging with client-safe error responses so
// handlers never leak internal error text to callers.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger on the app logger.
func NewErrorLogger(log *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: log}
}

// LogServerError logs err at error level and answers 500 with userMsg.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	e.Log.Error(msg, zap.Error(err), zap.String("path", r.URL.Path))
	JSONError(w, http.StatusInternalServerError, userMsg)
}

// LogBadRequest logs err at warn level and answers 400 with userMsg.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	e.Log.Warn(msg, zap.Error(err), zap.String("path", r.URL.Path))
	JSONError(w, http.StatusBadRequest, userMsg)
}

// LogNotFound answers 404 without logging; missing rows are routine.
func (e *ErrorLogger) LogNotFound(w http.ResponseWriter, r *http.Request, userMsg string) {
	JSONError(w, http.StatusNotFound, userMsg)
}
