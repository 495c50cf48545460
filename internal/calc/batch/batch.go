package batch

import (
	"fmt"

	groundroll "Told/internal/calc/groundroll"
)

// MaxItems bounds one batch request.
const MaxItems = 500

type Input struct {
	Items []groundroll.Request `json:"items"`
}

type Item struct {
	Input  groundroll.Input  `json:"input"`
	Result groundroll.Result `json:"result"`
}

type Result struct {
	Results []Item `json:"results"`
}

// Calculate runs every query in order and stops at the first failure.
func Calculate(in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, fmt.Errorf("no items")
	}
	if len(in.Items) > MaxItems {
		return Result{}, fmt.Errorf("too many items: %d > %d", len(in.Items), MaxItems)
	}
	out := Result{Results: make([]Item, 0, len(in.Items))}
	for i, req := range in.Items {
		q, opts, err := req.Resolve()
		if err != nil {
			return Result{}, fmt.Errorf("item %d: %w", i, err)
		}
		res, err := groundroll.Calculate(q, opts)
		if err != nil {
			return Result{}, fmt.Errorf("item %d: %w", i, err)
		}
		out.Results = append(out.Results, Item{Input: q, Result: res})
	}
	return out, nil
}
