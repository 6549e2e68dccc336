// Package files implements the /api/files/:key routes on a blob store.
//
// Uploads keep the request Content-Type (application/octet-stream when absent)
// and downloads stream the object back with it. Bodies over the configured cap
// are rejected with 413 before reaching the store.
package files
