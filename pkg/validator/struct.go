package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	playground "github.com/go-playground/validator/v10"
)

var (
	structValidator     *playground.Validate
	structValidatorOnce sync.Once
)

func getStructValidator() *playground.Validate {
	structValidatorOnce.Do(func() {
		structValidator = playground.New(playground.WithRequiredStructEnabled())
	})
	return structValidator
}

// Struct validates v against its `validate:"..."` struct tags.
// Field failures are returned as ValidationErrors keyed by the field's struct path.
//
// Example:
//
//	type Config struct {
//		Addr string `env:"ADDR" validate:"required,hostname_port"`
//	}
//
//	if err := validator.Struct(cfg); err != nil {
//		return err
//	}
func Struct(v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return ErrInvalidTarget
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: got %s", ErrInvalidTarget, rv.Kind())
	}

	err := getStructValidator().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Join(ErrInvalidTarget, err)
	}

	errs := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs.Add(ValidationError{
			Field:   fe.Namespace(),
			Message: describe(fe),
		})
	}
	return errs
}

func describe(fe playground.FieldError) string {
	if fe.Param() != "" {
		return fmt.Sprintf("failed %q check (%s)", fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("failed %q check", fe.Tag())
}
