package file

import (
	"context"
	"fmt"
	"io"
	"mime"
	"strings"
)

// DefaultContentType is stored for objects uploaded without a media type.
const DefaultContentType = "application/octet-stream"

// MaxKeyLength bounds object keys; S3 rejects keys over 1024 bytes.
const MaxKeyLength = 1024

// Object is a stored blob opened for reading. Callers must close Body.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// Storage is a flat blob store addressed by string keys.
// Keys may contain '/' to group objects; they never escape the store root.
type Storage interface {
	// Get opens key for reading. It returns ErrFileNotFound when key is absent.
	Get(ctx context.Context, key string) (*Object, error)
	// Put stores data under key with contentType, replacing any previous object.
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// ValidateKey rejects keys that are empty, too long, absolute or that contain
// parent-directory segments, backslashes or NUL bytes.
func ValidateKey(key string) error {
	switch {
	case key == "":
		return fmt.Errorf("%w: empty key", ErrInvalidKey)
	case len(key) > MaxKeyLength:
		return fmt.Errorf("%w: key longer than %d bytes", ErrInvalidKey, MaxKeyLength)
	case strings.HasPrefix(key, "/"):
		return fmt.Errorf("%w: %q is absolute", ErrInvalidKey, key)
	case strings.ContainsAny(key, "\\\x00"):
		return fmt.Errorf("%w: %q contains forbidden characters", ErrInvalidKey, key)
	}

	for _, seg := range strings.Split(key, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("%w: %q has an empty or relative segment", ErrInvalidKey, key)
		}
	}
	return nil
}

// NormalizeContentType returns a canonical media type for ct.
// Empty or unparsable values become DefaultContentType; parameters such as charset are kept.
func NormalizeContentType(ct string) string {
	ct = strings.TrimSpace(ct)
	if ct == "" {
		return DefaultContentType
	}

	mediaType, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return DefaultContentType
	}
	return mime.FormatMediaType(mediaType, params)
}
