// Package migrate applies embedded SQL migrations with pressly/goose.
//
// It uses a goose Provider rather than the package-level goose API, so several
// databases (for example parallel tests on in-memory SQLite) can migrate at the
// same time without sharing dialect or filesystem state.
package migrate
