// Package kv implements the /api/cached/:key routes.
//
// Values are opaque bytes stored with a fixed TTL and returned as plain text.
// Missing keys answer 404 with the body "Not found".
package kv
