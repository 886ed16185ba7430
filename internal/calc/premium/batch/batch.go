package batch

import (
	"fmt"

	laser "Aperture/internal/calc/laser"
)

type Item struct {
	Name       string           `json:"name"`
	Parameters laser.Parameters `json:"parameters"`
}

type ItemResult struct {
	Name   string       `json:"name"`
	Result laser.Result `json:"result"`
}

type Input struct {
	Items []Item `json:"items"`
}

type Result struct {
	Results []ItemResult `json:"results"`
	// Highest is the most hazardous class in the batch.
	Highest laser.Class `json:"highest_class"`
}

// MaxItems bounds one batch request.
const MaxItems = 500

func Calculate(engine *laser.Engine, in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, fmt.Errorf("no items")
	}
	if len(in.Items) > MaxItems {
		return Result{}, fmt.Errorf("too many items: %d > %d", len(in.Items), MaxItems)
	}
	out := Result{Results: make([]ItemResult, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := engine.Calculate(item.Parameters)
		if err != nil {
			return Result{}, fmt.Errorf("item %d (%s): %w", i+1, item.Name, err)
		}
		if res.Class.Rank() > out.Highest.Rank() {
			out.Highest = res.Class
		}
		out.Results = append(out.Results, ItemResult{Name: item.Name, Result: res})
	}
	return out, nil
}
