package binder

import "errors"

// Common binding errors
var (
	ErrInvalidJSON         = errors.New("invalid JSON")
	ErrInvalidQuery        = errors.New("invalid query parameter")
	ErrInvalidPath         = errors.New("invalid path parameter")
	ErrInvalidHeader       = errors.New("invalid header")
	ErrBodyTooLarge        = errors.New("request body too large")
	ErrBinderNotApplicable = errors.New("binder not applicable to request")
)
