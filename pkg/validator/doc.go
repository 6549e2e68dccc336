// Package validator provides pure input-shape checks and rule-building helpers.
//
// The simple predicates IsNonEmptyAfterTrim and LooksLikeEmail are total and
// side-effect free, so handlers can run them before touching any storage.
// Rules wrap a predicate with field-level error metadata and are evaluated with
// Apply, which collects failures into a ValidationErrors slice in order:
//
//	err := validator.Apply(
//		validator.RequiredString("name", req.Name).WithMessage("Name is required"),
//		validator.LooseEmail("email", req.Email).WithMessage("Invalid email"),
//	)
//	if errs := validator.ExtractValidationErrors(err); len(errs) > 0 {
//		first, _ := errs.First()
//		return handler.JSONError(handler.InvalidInput(first.Message))
//	}
//
// Struct validates `validate:"..."` tags through go-playground/validator and is
// used for configuration structs.
package validator
