// Package clientip resolves the originating client address of a request
// served behind edge proxies and reverse proxies.
//
// Headers are trusted in a fixed order (DefaultHeaders), falling back to
// RemoteAddr. Only deploy it where those headers are set by your own proxy;
// clients can forge them otherwise.
//
//	mux.Use(clientip.Middleware)
//	log := logger.New(logger.WithContextExtractors(clientip.LoggerExtractor()))
package clientip
