// Package batch sizes many ducts in one call. A failing item is reported
// in place and does not stop the others.
package batch

import (
	"errors"

	"Ducted/internal/calc/calcerr"
	"Ducted/internal/calc/sizing"
)

// MaxItems bounds a single request.
const MaxItems = 1000

type Input struct {
	Items []sizing.Input `json:"items" yaml:"items"`
}

type ItemError struct {
	Kind    calcerr.Kind `json:"kind,omitempty"`
	Field   string       `json:"field,omitempty"`
	Message string       `json:"message"`
}

type Item struct {
	Index  int            `json:"index"`
	Result *sizing.Result `json:"result,omitempty"`
	Error  *ItemError     `json:"error,omitempty"`
}

type Result struct {
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Items     []Item `json:"items"`
}

// Size runs every item through s in order.
func Size(s *sizing.Calculator, in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, calcerr.InvalidInput("batch.size", "items", 0, "no items")
	}
	if len(in.Items) > MaxItems {
		return Result{}, calcerr.InvalidInput("batch.size", "items", len(in.Items), "too many items")
	}
	out := Result{Items: make([]Item, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := s.Size(item)
		if err != nil {
			out.Failed++
			out.Items = append(out.Items, Item{Index: i, Error: itemError(err)})
			continue
		}
		out.Succeeded++
		out.Items = append(out.Items, Item{Index: i, Result: &res})
	}
	return out, nil
}

func itemError(err error) *ItemError {
	ie := &ItemError{Kind: calcerr.KindOf(err), Message: err.Error()}
	var ce *calcerr.Error
	if errors.As(err, &ce) {
		ie.Field = ce.Field
	}
	return ie
}
