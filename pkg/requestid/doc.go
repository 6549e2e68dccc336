// Package requestid attaches a correlation ID to every HTTP request.
//
// Middleware reads the X-Request-ID header, replaces missing or malformed values
// with a fresh UUID, stores the ID in the request context and echoes it back in
// the response header. FromContext retrieves it, and LoggerExtractor plugs it into
// pkg/logger so every record logged with the request context carries request_id.
package requestid
