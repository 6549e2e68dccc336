package binder

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
)

var bytesType = reflect.TypeOf([]byte(nil))

// Body creates a raw body binder function.
// The whole request body is read into the first []byte field tagged `body:"raw"`.
// A positive limit caps the body size; larger bodies return ErrBodyTooLarge.
// Returns ErrBinderNotApplicable when the target has no such field.
//
// Example:
//
//	type setRequest struct {
//		Key   string `path:"key"`
//		Value []byte `body:"raw"`
//	}
func Body(limit int64) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return ErrBinderNotApplicable
		}

		rv = rv.Elem()
		rt := rv.Type()

		for i := 0; i < rv.NumField(); i++ {
			field := rv.Field(i)
			if !field.CanSet() || rt.Field(i).Tag.Get("body") != "raw" || rt.Field(i).Type != bytesType {
				continue
			}

			data, err := readBody(r, limit)
			if err != nil {
				return err
			}
			field.SetBytes(data)
			return nil
		}

		return ErrBinderNotApplicable
	}
}

func readBody(r *http.Request, limit int64) ([]byte, error) {
	if r.Body == nil {
		return []byte{}, nil
	}

	var reader io.Reader = r.Body
	if limit > 0 {
		reader = io.LimitReader(r.Body, limit+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, maxErr.Limit)
		}
		return nil, fmt.Errorf("reading request body: %w", err)
	}

	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, limit)
	}

	return data, nil
}
