// Package logger builds log/slog loggers for the worker.
//
// New configures output format, level and static attributes, and wraps the
// handler in LogHandlerDecorator so values carried by the request context
// (for example the request ID) are added to every record:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "edgeworker"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//
// Middleware emits one access log record per HTTP request. The attribute
// helpers (Error, RequestID, Component, ...) keep key names consistent.
package logger
