package batch

import (
	"fmt"

	"Abutment/internal/formula"
)

type Item struct {
	Row     int            `json:"row,omitempty"`
	Formula string         `json:"formula"`
	Params  formula.Params `json:"params"`

	err error
}

type Outcome struct {
	Row     int            `json:"row,omitempty"`
	Formula string         `json:"formula"`
	Value   float64        `json:"value"`
	Trace   string         `json:"trace,omitempty"`
	Params  formula.Params `json:"params,omitempty"`
	Error   string         `json:"error,omitempty"`
	Kind    string         `json:"kind,omitempty"`

	Err error `json:"-"`
}

// Result converts a successful outcome back into an evaluation result.
func (o Outcome) Result() formula.Result {
	return formula.Result{ID: o.Formula, Value: o.Value, Trace: o.Trace, Params: o.Params}
}

// Run evaluates every item. A failing item is recorded in its outcome and does
// not stop the rest of the batch.
func Run(cat *formula.Catalog, items []Item) ([]Outcome, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("no items")
	}
	out := make([]Outcome, 0, len(items))
	for _, item := range items {
		o := Outcome{Row: item.Row, Formula: item.Formula}
		res, err := evaluate(cat, item)
		if err != nil {
			o.Err = err
			o.Error = err.Error()
			o.Kind = formula.Kind(err)
		} else {
			o.Value = res.Value
			o.Trace = res.Trace
			o.Params = res.Params
		}
		out = append(out, o)
	}
	return out, nil
}

func evaluate(cat *formula.Catalog, item Item) (formula.Result, error) {
	if item.err != nil {
		return formula.Result{}, item.err
	}
	return cat.Evaluate(item.Formula, item.Params)
}

// Failed counts outcomes carrying an error.
func Failed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}
