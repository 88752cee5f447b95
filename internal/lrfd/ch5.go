package lrfd

import (
	"math"

	"Abutment/internal/formula"
)

var fcp = formula.Param{
	Name:        "fcp",
	Description: "specified compressive strength of concrete for use in design, f'c",
	Unit:        "ksi",
}

func chapter5() []formula.Definition {
	return []formula.Definition{
		{
			// Normal weight concrete up to 15.0 ksi and lightweight concrete up to
			// 10.0 ksi, unit weight between 0.090 and 0.155 kcf.
			ID:       "5.4.2.4-1",
			Title:    "Modulus of elasticity of concrete",
			Article:  "5.4.2.4",
			Symbol:   "Ec",
			Unit:     "ksi",
			Required: []formula.Param{fcp},
			Optional: []formula.Param{
				{Name: "wc", Description: "unit weight of concrete, Table 3.5.1 or Article C5.4.2.4", Unit: "kcf", Default: 0.145},
				{Name: "k1", Description: "correction factor for source of aggregate", Default: 1.0},
			},
			Template:        "120000*{k1}*{wc}^2*{fcp}^0.33",
			Precision:       2,
			ParamPrecision:  map[string]int{"wc": 3, "fcp": 1},
			ResultPrecision: 1,
			Constraints:     []formula.Constraint{nonNegative("fcp"), positive("wc"), positive("k1")},
			Eval: func(p formula.Params) float64 {
				return 120000 * p["k1"] * math.Pow(p["wc"], 2) * math.Pow(p["fcp"], 0.33)
			},
		},
		{
			ID:      "5.6.3.1.1-1",
			Title:   "Average stress in bonded prestressing steel",
			Article: "5.6.3.1.1",
			Symbol:  "fps",
			Unit:    "ksi",
			Required: []formula.Param{
				{Name: "fpu", Description: "specified tensile strength of prestressing steel", Unit: "ksi"},
				{Name: "k", Description: "factor from Eq. 5.6.3.1.1-2"},
				{Name: "c", Description: "distance from the extreme compression fiber to the neutral axis", Unit: "in."},
				{Name: "dp", Description: "distance from the extreme compression fiber to the centroid of the prestressing tendons", Unit: "in."},
			},
			Template:        "{fpu}*(1 - {k}*{c}/{dp})",
			Precision:       3,
			ResultPrecision: 2,
			Constraints:     []formula.Constraint{positive("dp")},
			Eval: func(p formula.Params) float64 {
				return p["fpu"] * (1 - p["k"]*p["c"]/p["dp"])
			},
		},
		{
			ID:      "5.6.3.1.1-2",
			Title:   "Prestressing steel factor",
			Article: "5.6.3.1.1",
			Symbol:  "k",
			Required: []formula.Param{
				{Name: "fpy", Description: "yield strength of prestressing steel", Unit: "ksi"},
				{Name: "fpu", Description: "specified tensile strength of prestressing steel", Unit: "ksi"},
			},
			Template:        "2*(1.04 - {fpy}/{fpu})",
			Precision:       2,
			ResultPrecision: 3,
			Constraints:     []formula.Constraint{positive("fpu")},
			Eval: func(p formula.Params) float64 {
				return 2 * (1.04 - p["fpy"]/p["fpu"])
			},
		},
		{
			// Flanged section where the compression flange depth is less than
			// a = beta1*c. Unused reinforcement terms default to zero.
			ID:       "5.6.3.2.2-1",
			Title:    "Nominal flexural resistance, flanged section",
			Article:  "5.6.3.2.2",
			Symbol:   "Mn",
			Unit:     "kip-in.",
			Required: []formula.Param{{Name: "a", Description: "depth of the equivalent stress block, c*beta1", Unit: "in."}},
			Optional: []formula.Param{
				{Name: "Aps", Description: "area of prestressing steel", Unit: "in.^2"},
				{Name: "fps", Description: "average stress in prestressing steel at nominal bending resistance", Unit: "ksi"},
				{Name: "dp", Description: "distance from extreme compression fiber to the centroid of prestressing steel", Unit: "in."},
				{Name: "As", Description: "area of nonprestressed tension reinforcement", Unit: "in.^2"},
				{Name: "fs", Description: "stress in the nonprestressed tension reinforcement at nominal flexural resistance", Unit: "ksi"},
				{Name: "ds", Description: "distance from extreme compression fiber to the centroid of nonprestressed tension reinforcement", Unit: "in."},
				{Name: "Asp", Description: "area of compression reinforcement, A's", Unit: "in.^2"},
				{Name: "fsp", Description: "stress in the compression reinforcement at nominal flexural resistance, f's", Unit: "ksi"},
				{Name: "dsp", Description: "distance from extreme compression fiber to the centroid of compression reinforcement, d's", Unit: "in."},
				{Name: "alpha1", Description: "stress block factor, Article 5.6.2.2", Default: 0.85},
				{Name: "fcp", Description: fcp.Description, Unit: fcp.Unit},
				{Name: "b", Description: "width of the compression face, effective flange width per Article 4.6.2.6", Unit: "in."},
				{Name: "bw", Description: "web width or diameter of a circular section", Unit: "in."},
				{Name: "hf", Description: "compression flange depth of an I- or T-member", Unit: "in."},
			},
			Template: "{Aps}*{fps}*({dp} - {a}/2) + {As}*{fs}*({ds} - {a}/2) - {Asp}*{fsp}*({dsp} - {a}/2)" +
				" + {alpha1}*{fcp}*({b} - {bw})*{hf}*({a}/2 - {hf}/2)",
			Precision:       2,
			ParamPrecision:  map[string]int{"fcp": 1},
			ResultPrecision: 2,
			Constraints:     []formula.Constraint{nonNegative("a")},
			Eval: func(p formula.Params) float64 {
				a := p["a"]
				return p["Aps"]*p["fps"]*(p["dp"]-a/2) +
					p["As"]*p["fs"]*(p["ds"]-a/2) -
					p["Asp"]*p["fsp"]*(p["dsp"]-a/2) +
					p["alpha1"]*p["fcp"]*(p["b"]-p["bw"])*p["hf"]*(a/2-p["hf"]/2)
			},
		},
		{
			ID:      "5.7.3.3-1",
			Title:   "Nominal shear resistance",
			Article: "5.7.3.3",
			Symbol:  "Vn",
			Unit:    "kip",
			Required: []formula.Param{
				{Name: "Vc", Description: "nominal shear resistance of the concrete", Unit: "kip"},
				{Name: "Vs", Description: "shear resistance provided by shear reinforcement", Unit: "kip"},
			},
			Optional: []formula.Param{
				{Name: "Vp", Description: "component of the effective prestressing force in the direction of the applied shear", Unit: "kip"},
			},
			Template:        "{Vc} + {Vs} + {Vp}",
			Precision:       2,
			ResultPrecision: 2,
			Eval: func(p formula.Params) float64 {
				return p["Vc"] + p["Vs"] + p["Vp"]
			},
		},
		{
			ID:      "5.7.3.3-3",
			Title:   "Nominal shear resistance of concrete",
			Article: "5.7.3.3",
			Symbol:  "Vc",
			Unit:    "kip",
			Required: []formula.Param{
				fcp,
				{Name: "bv", Description: "effective web width within the depth dv", Unit: "in."},
				{Name: "dv", Description: "effective shear depth", Unit: "in."},
			},
			Optional: []formula.Param{
				{Name: "beta", Description: "factor indicating ability of diagonally cracked concrete to transmit tension and shear", Default: 2.0},
				{Name: "lambda", Description: "concrete density modification factor, Article 5.4.2.8", Default: 1.0},
			},
			Template:        "0.0316*{beta}*{lambda}*sqrt({fcp})*{bv}*{dv}",
			Precision:       2,
			ResultPrecision: 2,
			Constraints:     []formula.Constraint{nonNegative("fcp")},
			Eval: func(p formula.Params) float64 {
				return 0.0316 * p["beta"] * p["lambda"] * math.Sqrt(p["fcp"]) * p["bv"] * p["dv"]
			},
		},
		{
			// Modification factors are 1.0 unless Article 5.10.8.2.1b or
			// 5.10.8.2.1c says otherwise. ld shall not be less than 12.0 in.
			ID:       "5.10.8.2.1a-1",
			Title:    "Modified tension development length",
			Article:  "5.10.8.2.1a",
			Symbol:   "ld",
			Unit:     "in.",
			Required: []formula.Param{{Name: "ldb", Description: "basic tension development length, Eq. 5.10.8.2.1a-2", Unit: "in."}},
			Optional: []formula.Param{
				{Name: "lambda_rl", Description: "reinforcement location factor", Default: 1.0},
				{Name: "lambda_cf", Description: "coating factor", Default: 1.0},
				{Name: "lambda_rc", Description: "reinforcement confinement factor", Default: 1.0},
				{Name: "lambda_er", Description: "excess reinforcement factor", Default: 1.0},
				{Name: "lambda", Description: "concrete density modification factor, Article 5.4.2.8", Default: 1.0},
			},
			Template:        "{ldb}*({lambda_rl}*{lambda_cf}*{lambda_rc}*{lambda_er})/{lambda}",
			Precision:       2,
			ResultPrecision: 2,
			Constraints:     []formula.Constraint{positive("lambda")},
			Eval: func(p formula.Params) float64 {
				return p["ldb"] * (p["lambda_rl"] * p["lambda_cf"] * p["lambda_rc"] * p["lambda_er"]) / p["lambda"]
			},
		},
		{
			// No. 11 bars and smaller.
			ID:      "5.10.8.2.1a-2",
			Title:   "Basic tension development length",
			Article: "5.10.8.2.1a",
			Symbol:  "ldb",
			Unit:    "in.",
			Required: []formula.Param{
				{Name: "db", Description: "nominal diameter of reinforcing bar", Unit: "in."},
				{Name: "fy", Description: "specified yield strength of reinforcing bars", Unit: "ksi"},
				fcp,
			},
			Template:        "2.4*{db}*{fy}/sqrt({fcp})",
			Precision:       2,
			ResultPrecision: 2,
			Constraints:     []formula.Constraint{positive("fcp")},
			Eval: func(p formula.Params) float64 {
				return 2.4 * p["db"] * p["fy"] / math.Sqrt(p["fcp"])
			},
		},
	}
}
