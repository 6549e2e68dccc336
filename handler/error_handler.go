package handler

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/edgeworker/pkg/logger"
	"github.com/dmitrymomot/edgeworker/pkg/requestid"
)

// determineLogLevel maps HTTP status codes to appropriate log levels
func determineLogLevel(statusCode int) slog.Level {
	if statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// NewErrorHandler creates the error handler shared by every API route.
// It logs the underlying cause with the request ID and renders the failure envelope.
// Internal causes are logged but never sent to the client.
func NewErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		e := Classify(err)
		status := e.Status()

		log.LogAttrs(r.Context(), determineLogLevel(status), "request error",
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("kind", string(e.Kind)),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if renderErr := JSONError(e).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.Error("failed to render error response",
				logger.RequestID(requestid.FromContext(r.Context())),
				logger.Error(renderErr),
				logger.Event("render_error"),
			)
		}
	}
}

// ErrorHandlerFor adapts an ErrorHandler[Context] for use with a specific request type.
//
// Example:
//
//	handler.Wrap(create, handler.ErrorHandlerFor[createRequest](errHandler))
func ErrorHandlerFor[R any](h ErrorHandler[Context]) WrapOption[Context, R] {
	return WithErrorHandler[Context, R](h)
}
