package lrfd

import (
	"math"

	"Abutment/internal/formula"
)

var (
	spanL1 = formula.Param{
		Name:        "L1",
		Description: "modified span length, lesser of the actual span or 60.0",
		Unit:        "ft",
	}
	widthW1 = formula.Param{
		Name: "W1",
		Description: "modified edge-to-edge width, lesser of the actual width or 60.0 " +
			"for multilane loading, or 30.0 for single-lane loading",
		Unit: "ft",
	}
)

func chapter4() []formula.Definition {
	return []formula.Definition{
		{
			ID:      "4.6.2.2.1-1",
			Title:   "Longitudinal stiffness parameter",
			Article: "4.6.2.2.1",
			Symbol:  "Kg",
			Unit:    "in.^4",
			Required: []formula.Param{
				{Name: "n", Description: "modular ratio between beam and deck materials, Eb/Ed"},
				{Name: "I", Description: "moment of inertia of the beam", Unit: "in.^4"},
				{Name: "A", Description: "area of the beam", Unit: "in.^2"},
				{Name: "eg", Description: "distance between the centers of gravity of the basic beam and deck", Unit: "in."},
			},
			Template:        "{n}*({I} + {A}*{eg}^2)",
			Precision:       2,
			ResultPrecision: 1,
			Constraints:     []formula.Constraint{positive("n")},
			Eval: func(p formula.Params) float64 {
				return p["n"] * (p["I"] + p["A"]*p["eg"]*p["eg"])
			},
		},
		{
			// The strip width has been divided by 1.20 to account for the
			// multiple presence effect.
			ID:              "4.6.2.3-1",
			Title:           "Equivalent strip width, one lane loaded",
			Article:         "4.6.2.3",
			Symbol:          "E",
			Unit:            "in.",
			Required:        []formula.Param{spanL1, widthW1},
			Template:        "10.0 + 5.0*sqrt({L1}*{W1})",
			Precision:       3,
			ResultPrecision: 3,
			Constraints:     []formula.Constraint{nonNegative("L1"), nonNegative("W1")},
			Eval: func(p formula.Params) float64 {
				return 10.0 + 5.0*math.Sqrt(p["L1"]*p["W1"])
			},
		},
		{
			ID:      "4.6.2.3-2",
			Title:   "Equivalent strip width, more than one lane loaded",
			Article: "4.6.2.3",
			Symbol:  "E",
			Unit:    "in.",
			Required: []formula.Param{
				spanL1,
				widthW1,
				{Name: "W", Description: "physical edge-to-edge width of bridge", Unit: "ft"},
				{Name: "NL", Description: "number of design lanes as specified in Article 3.6.1.1.1"},
			},
			Template:        "min(84.0 + 1.44*sqrt({L1}*{W1}), 12.0*{W}/{NL})",
			Precision:       3,
			ParamPrecision:  map[string]int{"NL": 0},
			ResultPrecision: 3,
			Adjust:          map[string]func(float64) float64{"NL": math.Floor},
			Constraints: []formula.Constraint{
				nonNegative("L1"),
				nonNegative("W1"),
				atLeast("NL", 1, ">= 1 design lane"),
			},
			Eval: func(p formula.Params) float64 {
				return math.Min(84.0+1.44*math.Sqrt(p["L1"]*p["W1"]), 12.0*p["W"]/p["NL"])
			},
		},
	}
}
