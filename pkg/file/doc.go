// Package file provides blob storage behind a small key/value style interface.
//
// Objects are addressed by slash-separated keys and carry a content type.
// Two implementations are provided:
//   - LocalStorage: filesystem storage with YAML metadata sidecars
//   - S3Storage: AWS S3 and S3-compatible services (MinIO, R2, etc.)
//
// # Usage
//
//	storage, err := file.NewLocalStorage(file.LocalConfig{Dir: "./data/blobs"})
//	if err != nil {
//		return err
//	}
//
//	if err := storage.Put(ctx, "reports/q1.csv", data, "text/csv"); err != nil {
//		return err
//	}
//
//	obj, err := storage.Get(ctx, "reports/q1.csv")
//	if errors.Is(err, file.ErrFileNotFound) {
//		// 404
//	}
//	defer obj.Body.Close()
//
// # Keys
//
// ValidateKey rejects empty keys, absolute keys and keys containing "." or ".."
// segments. LocalStorage additionally confines every resolved path to its root.
//
// # Error Handling
//
// S3 failures are classified into package errors (ErrFileNotFound,
// ErrAccessDenied, ErrBucketNotFound, ErrOperationTimeout, ...) so callers can
// use errors.Is without importing the AWS SDK.
package file
