package compute

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"

	"github.com/dmitrymomot/edgeworker/binder"
	"github.com/dmitrymomot/edgeworker/handler"
	"github.com/dmitrymomot/edgeworker/router"
)

var (
	ErrEmptyData        = errors.New("data array is empty")
	ErrUnknownOperation = errors.New("unknown operation")
)

// Supported operations.
const (
	OpSum  = "sum"
	OpMean = "mean"
	OpMax  = "max"
	OpMin  = "min"
	OpStd  = "std"
)

var errMissingField = errors.New("missing required field")

// Request is the body of POST /api/compute. Both fields must be present.
type Request struct {
	Data      []float64 `json:"data"`
	Operation string    `json:"operation"`
}

// UnmarshalJSON rejects bodies that omit data or operation or set them to null.
func (r *Request) UnmarshalJSON(b []byte) error {
	var raw struct {
		Data      *[]float64 `json:"data"`
		Operation *string    `json:"operation"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch {
	case raw.Data == nil:
		return fmt.Errorf("%w: data", errMissingField)
	case raw.Operation == nil:
		return fmt.Errorf("%w: operation", errMissingField)
	}
	r.Data, r.Operation = *raw.Data, *raw.Operation
	return nil
}

// Result is returned inside the success envelope.
// Result is null when the reduction overflows to a non-finite value.
type Result struct {
	Result    *float64 `json:"result"`
	Operation string   `json:"operation"`
	Count     int      `json:"count"`
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

// Reduce applies op to data. Empty data is rejected before op is looked at.
func Reduce(op string, data []float64) (float64, error) {
	if len(data) == 0 {
		return 0, ErrEmptyData
	}

	switch op {
	case OpSum:
		return sum(data), nil
	case OpMean:
		return sum(data) / float64(len(data)), nil
	case OpMax:
		m := math.Inf(-1)
		for _, v := range data {
			m = math.Max(m, v)
		}
		return m, nil
	case OpMin:
		m := math.Inf(1)
		for _, v := range data {
			m = math.Min(m, v)
		}
		return m, nil
	case OpStd:
		mean := sum(data) / float64(len(data))
		var variance float64
		for _, v := range data {
			variance += (v - mean) * (v - mean)
		}
		return math.Sqrt(variance / float64(len(data))), nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownOperation, op)
	}
}

func sum(data []float64) float64 {
	var s float64
	for _, v := range data {
		s += v
	}
	return s
}

// Handler serves POST /api/compute.
type Handler struct {
	errHandler handler.ErrorHandler[handler.Context]
}

// NewHandler creates the compute handler. A nil log discards error logs.
func NewHandler(log *slog.Logger) *Handler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Handler{errHandler: handler.NewErrorHandler(log)}
}

// Register mounts the compute route on rt.
func (h *Handler) Register(rt *router.Router) {
	rt.Post("/api/compute", handler.Wrap(h.Compute,
		handler.WithBinder[handler.Context, Request](bindJSON),
		handler.ErrorHandlerFor[Request](h.errHandler),
	))
}

func bindJSON(r *http.Request, v any) error {
	err := binder.DecodeJSON(r, v)
	if errors.Is(err, binder.ErrInvalidJSON) {
		return handler.InvalidInput("Invalid JSON").Wrap(err)
	}
	return err
}

// Compute reduces the posted numbers with the requested operation.
func (h *Handler) Compute(_ handler.Context, req Request) handler.Response {
	result, err := Reduce(req.Operation, req.Data)
	switch {
	case errors.Is(err, ErrEmptyData):
		return handler.Fail(handler.InvalidInput("Data array is empty").Wrap(err))
	case errors.Is(err, ErrUnknownOperation):
		return handler.Fail(handler.InvalidInput("Unknown operation: " + req.Operation).Wrap(err))
	case err != nil:
		return handler.Fail(err)
	}

	return handler.JSON(Result{
		Result:    finite(result),
		Operation: req.Operation,
		Count:     len(req.Data),
	})
}
