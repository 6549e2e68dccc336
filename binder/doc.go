// Package binder fills request structs from the parts of an HTTP request.
//
// Each binder reads one source and only touches fields tagged for it:
//
//	path:"id"            Path(extractor)
//	query:"page"         Query()
//	header:"Content-Type" Header()
//	body:"raw"           Body(limit)
//	json:"name"          JSON()
//
// Binders are combined with handler.WithBinders and run in order.
// Failures wrap one of the sentinel errors in errors.go so callers can classify
// them with errors.Is.
package binder
