package router

import "errors"

// ErrInvalidPattern is the panic value cause for malformed route patterns.
var ErrInvalidPattern = errors.New("router: invalid pattern")
