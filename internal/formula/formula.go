package formula

import (
	"fmt"
	"math"
)

// Params maps parameter names to values. It is the request side of an evaluation.
type Params map[string]float64

type Param struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Unit        string  `json:"unit,omitempty"`
	Default     float64 `json:"default"`
}

// Constraint is a domain restriction on one parameter, checked after Adjust.
type Constraint struct {
	Param string
	Text  string
	OK    func(v float64) bool
}

// Definition describes one equation. Definitions are built once when a catalog
// is loaded and are never modified afterwards.
type Definition struct {
	ID      string
	Title   string
	Article string
	Symbol  string
	Unit    string

	Required []Param
	Optional []Param

	// Template is the right-hand side with {name} placeholders,
	// e.g. "10.0 + 5.0*sqrt({L1}*{W1})".
	Template string

	// Precision is the number of decimals used for parameters in the trace,
	// ParamPrecision overrides it per parameter.
	Precision       int
	ParamPrecision  map[string]int
	ResultPrecision int

	// Adjust normalizes inputs before validation and display.
	Adjust      map[string]func(float64) float64
	Constraints []Constraint

	Eval func(p Params) float64

	// Unimplemented holds the reason a formula cannot be evaluated yet.
	Unimplemented string
}

type Result struct {
	ID     string  `json:"id"`
	Value  float64 `json:"value"`
	Trace  string  `json:"trace"`
	Params Params  `json:"params"`
}

func (d Definition) params() []Param {
	out := make([]Param, 0, len(d.Required)+len(d.Optional))
	out = append(out, d.Required...)
	return append(out, d.Optional...)
}

// Has reports whether name is a declared parameter.
func (d Definition) Has(name string) bool {
	for _, p := range d.params() {
		if p.Name == name {
			return true
		}
	}
	return false
}

func (d Definition) precisionOf(name string) int {
	if p, ok := d.ParamPrecision[name]; ok {
		return p
	}
	return d.Precision
}

// Validate checks a definition's metadata. Catalogs call it on construction.
func (d Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("definition without id")
	}
	if d.Symbol == "" {
		return fmt.Errorf("eq. %s: empty symbol", d.ID)
	}
	if d.Unimplemented == "" && d.Eval == nil {
		return fmt.Errorf("eq. %s: no expression", d.ID)
	}
	if d.Precision < 0 || d.ResultPrecision < 0 {
		return fmt.Errorf("eq. %s: negative precision", d.ID)
	}
	seen := make(map[string]bool)
	for _, p := range d.params() {
		if p.Name == "" {
			return fmt.Errorf("eq. %s: unnamed parameter", d.ID)
		}
		if seen[p.Name] {
			return fmt.Errorf("eq. %s: duplicate parameter %s", d.ID, p.Name)
		}
		seen[p.Name] = true
	}
	for _, name := range placeholders(d.Template) {
		if !seen[name] {
			return fmt.Errorf("eq. %s: template references undeclared parameter %s", d.ID, name)
		}
	}
	for name, prec := range d.ParamPrecision {
		if !seen[name] {
			return fmt.Errorf("eq. %s: precision for undeclared parameter %s", d.ID, name)
		}
		if prec < 0 {
			return fmt.Errorf("eq. %s: negative precision for %s", d.ID, name)
		}
	}
	for name := range d.Adjust {
		if !seen[name] {
			return fmt.Errorf("eq. %s: adjustment for undeclared parameter %s", d.ID, name)
		}
	}
	for _, c := range d.Constraints {
		if !seen[c.Param] {
			return fmt.Errorf("eq. %s: constraint on undeclared parameter %s", d.ID, c.Param)
		}
		if c.OK == nil {
			return fmt.Errorf("eq. %s: constraint on %s has no check", d.ID, c.Param)
		}
	}
	return nil
}

// Evaluate computes d against req. Optional parameters absent from req take
// their defaults; names d does not declare are ignored. The returned value is
// unrounded, only the trace is formatted.
func Evaluate(d Definition, req Params) (Result, error) {
	if d.Unimplemented != "" {
		return Result{}, fmt.Errorf("eq. %s: %s: %w", d.ID, d.Unimplemented, ErrUnimplemented)
	}

	var missing []string
	for _, p := range d.Required {
		if _, ok := req[p.Name]; !ok {
			missing = append(missing, p.Name)
		}
	}
	if len(missing) > 0 {
		return Result{}, &MissingParameterError{Formula: d.ID, Params: missing}
	}

	merged := make(Params, len(d.Required)+len(d.Optional))
	for _, p := range d.Optional {
		merged[p.Name] = p.Default
	}
	for _, p := range d.params() {
		v, ok := req[p.Name]
		if !ok {
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Result{}, &InvalidValueError{Formula: d.ID, Param: p.Name, Value: v, Constraint: "finite"}
		}
		merged[p.Name] = v
	}

	for name, adjust := range d.Adjust {
		merged[name] = adjust(merged[name])
	}
	for _, c := range d.Constraints {
		if v := merged[c.Param]; !c.OK(v) {
			return Result{}, &InvalidValueError{Formula: d.ID, Param: c.Param, Value: v, Constraint: c.Text}
		}
	}

	value := d.Eval(merged)
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Result{}, &InvalidValueError{Formula: d.ID, Param: d.Symbol, Value: value, Constraint: "finite"}
	}

	return Result{
		ID:     d.ID,
		Value:  value,
		Trace:  d.trace(merged, value),
		Params: merged,
	}, nil
}
