package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/phrazzld/shelf-api/internal/apperr"
	"github.com/phrazzld/shelf-api/internal/platform/logger"
	"github.com/phrazzld/shelf-api/internal/redact"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

// MessageResponse is a success body that carries only a message.
type MessageResponse struct {
	Message string `json:"message"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response",
			"error", redact.Error(err))
	}
}

// RespondWithFailure writes the error envelope for err. Errors that are not
// failures are answered as unhandled exceptions.
//
// Log level strategy:
// - 5xx errors: ERROR
// - 429 Too Many Requests: WARN (operational concern)
// - Other 4xx errors: DEBUG
func RespondWithFailure(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	f := apperr.From(ctx, err)
	if f == nil {
		f = apperr.Unhandled(ctx, nil)
	}

	level := slog.LevelDebug
	switch {
	case f.HTTPStatus() >= http.StatusInternalServerError:
		level = slog.LevelError
	case f.HTTPStatus() == http.StatusTooManyRequests:
		level = slog.LevelWarn
	}

	logger.FromContext(ctx).LogAttrs(ctx, level, "API error response",
		slog.String("trace_id", GetTraceID(ctx)),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", f.HTTPStatus()),
		slog.String("code", f.Code()),
		slog.String("kind", f.Kind().String()),
	)

	resp := ErrorResponse{
		Message: f.Message(),
		Code:    f.Code(),
	}
	if f.HasDetails() {
		resp.Details = f.Details()
	}
	RespondWithJSON(w, r, f.HTTPStatus(), resp)
}
