// Package lrfd holds equations from the AASHTO LRFD Bridge Design Specifications
// as formula definitions. Units are US customary (kip, in., ft, ksi, kcf).
package lrfd

import (
	"sync"

	"Abutment/internal/formula"
)

var catalog = sync.OnceValue(func() *formula.Catalog {
	defs := append(chapter4(), chapter5()...)
	return formula.MustCatalog(defs...)
})

// Catalog returns the shared, read-only catalog.
func Catalog() *formula.Catalog {
	return catalog()
}

func nonNegative(param string) formula.Constraint {
	return formula.Constraint{Param: param, Text: ">= 0", OK: func(v float64) bool { return v >= 0 }}
}

func positive(param string) formula.Constraint {
	return formula.Constraint{Param: param, Text: "> 0", OK: func(v float64) bool { return v > 0 }}
}

func atLeast(param string, min float64, text string) formula.Constraint {
	return formula.Constraint{Param: param, Text: text, OK: func(v float64) bool { return v >= min }}
}
