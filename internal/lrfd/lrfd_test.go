package lrfd

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"Abutment/internal/formula"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStripWidthOneLane verifies Eq. 4.6.2.3-1 with L1=60, W1=30.
func TestStripWidthOneLane(t *testing.T) {
	res, err := Catalog().Evaluate("4.6.2.3-1", formula.Params{"L1": 60.0, "W1": 30.0})
	require.NoError(t, err)

	assert.InDelta(t, 10.0+5.0*math.Sqrt(60.0*30.0), res.Value, 1e-9)
	assert.InDelta(t, 222.13, res.Value, 0.005)
	assert.Equal(t,
		"E = 10.0 + 5.0*sqrt(L1*W1)\n"+
			"E = 10.0 + 5.0*sqrt(60.000*30.000)\n"+
			"E = 222.132",
		res.Trace)
}

// TestStripWidthMultiLane verifies NL is floored and the lane-width limit governs.
func TestStripWidthMultiLane(t *testing.T) {
	res, err := Catalog().Evaluate("4.6.2.3-2", formula.Params{"L1": 60.0, "W1": 60.0, "W": 40.0, "NL": 3.7})
	require.NoError(t, err)

	assert.InDelta(t, 160.0, res.Value, 1e-9)
	assert.Equal(t,
		"E = min(84.0 + 1.44*sqrt(L1*W1), 12.0*W/NL)\n"+
			"E = min(84.0 + 1.44*sqrt(60.000*60.000), 12.0*40.000/3)\n"+
			"E = 160.000",
		res.Trace)
}

// TestConcreteModulus verifies Eq. 5.4.2.4-1 with default wc and k1.
func TestConcreteModulus(t *testing.T) {
	res, err := Catalog().Evaluate("5.4.2.4-1", formula.Params{"fcp": 5.0})
	require.NoError(t, err)

	assert.InDelta(t, 120000*1.0*math.Pow(0.145, 2)*math.Pow(5.0, 0.33), res.Value, 1e-9)
	assert.InDelta(t, 4291.2, res.Value, 0.1)
	assert.True(t, strings.HasPrefix(res.Trace, "Ec = 120000*k1*wc^2*fcp^0.33\nEc = 120000*1.00*0.145^2*5.0^0.33\n"))

	explicit, err := Catalog().Evaluate("5.4.2.4-1", formula.Params{"fcp": 5.0, "wc": 0.145, "k1": 1.0})
	require.NoError(t, err)
	assert.Equal(t, res.Value, explicit.Value)
}

// TestUnknownFormula verifies an id outside the catalog is rejected.
func TestUnknownFormula(t *testing.T) {
	_, err := Catalog().Evaluate("4.6.2.3-9", formula.Params{})
	var unknown *formula.UnknownFormulaError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "4.6.2.3-9", unknown.ID)
}

// TestStripWidthMissingW1 verifies the missing name is reported exactly.
func TestStripWidthMissingW1(t *testing.T) {
	_, err := Catalog().Evaluate("4.6.2.3-1", formula.Params{"L1": 60.0})
	var missing *formula.MissingParameterError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"W1"}, missing.Params)
}

func TestFormulas(t *testing.T) {
	tests := []struct {
		id    string
		req   formula.Params
		want  float64
		trace string
	}{
		{"4.6.2.2.1-1", formula.Params{"n": 1.2, "I": 100, "A": 10, "eg": 5}, 420, "Kg = 420.0"},
		{"5.6.3.1.1-1", formula.Params{"fpu": 270, "k": 0.28, "c": 5, "dp": 40}, 260.55, "fps = 260.55"},
		{"5.6.3.1.1-2", formula.Params{"fpy": 243, "fpu": 270}, 0.28, "k = 0.280"},
		{"5.6.3.2.2-1", formula.Params{"a": 4, "As": 3, "fs": 60, "ds": 20}, 3240, "Mn = 3240.00"},
		{"5.7.3.3-1", formula.Params{"Vc": 50, "Vs": 30}, 80, "Vn = 80.00"},
		{"5.7.3.3-3", formula.Params{"fcp": 4, "bv": 8, "dv": 30}, 30.336, "Vc = 30.34"},
		{"5.10.8.2.1a-1", formula.Params{"ldb": 20, "lambda_rl": 1.3}, 26, "ld = 26.00"},
		{"5.10.8.2.1a-2", formula.Params{"db": 1.0, "fy": 60, "fcp": 4}, 72, "ldb = 72.00"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			res, err := Catalog().Evaluate(tt.id, tt.req)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, res.Value, 1e-9)

			lines := strings.Split(res.Trace, "\n")
			require.Len(t, lines, 3)
			assert.Equal(t, tt.trace, lines[2])
		})
	}
}

// TestStiffnessNegativeEccentricity verifies a negative eg is squared and shown in parentheses.
func TestStiffnessNegativeEccentricity(t *testing.T) {
	res, err := Catalog().Evaluate("4.6.2.2.1-1", formula.Params{"n": 1.2, "I": 100, "A": 10, "eg": -5})
	require.NoError(t, err)
	assert.InDelta(t, 420.0, res.Value, 1e-9)
	assert.Equal(t,
		"Kg = n*(I + A*eg^2)\n"+
			"Kg = 1.20*(100.00 + 10.00*(-5.00)^2)\n"+
			"Kg = 420.0",
		res.Trace)
}

// TestConcreteModulusRejectsNegativeUnitWeight verifies wc and k1 are range checked.
func TestConcreteModulusRejectsNegativeUnitWeight(t *testing.T) {
	_, err := Catalog().Evaluate("5.4.2.4-1", formula.Params{"fcp": 5, "wc": -0.145, "k1": -1})
	var invalid *formula.InvalidValueError
	require.True(t, errors.As(err, &invalid), "got %v", err)
	assert.Equal(t, "5.4.2.4-1", invalid.Formula)
	assert.Equal(t, "wc", invalid.Param)
}

// TestFlangedMoment verifies the flange overhang term of Eq. 5.6.3.2.2-1.
func TestFlangedMoment(t *testing.T) {
	req := formula.Params{
		"a": 6, "Aps": 2, "fps": 260, "dp": 40,
		"fcp": 5, "b": 60, "bw": 8, "hf": 4,
	}
	res, err := Catalog().Evaluate("5.6.3.2.2-1", req)
	require.NoError(t, err)

	want := 2*260*(40-3.0) + 0.85*5*(60-8)*4*(3.0-2.0)
	assert.InDelta(t, want, res.Value, 1e-9)
}

func TestDomainConstraints(t *testing.T) {
	tests := []struct {
		id    string
		req   formula.Params
		param string
	}{
		{"4.6.2.3-1", formula.Params{"L1": 60, "W1": -30}, "W1"},
		{"4.6.2.3-2", formula.Params{"L1": 60, "W1": 60, "W": 40, "NL": 0.5}, "NL"},
		{"5.4.2.4-1", formula.Params{"fcp": -4}, "fcp"},
		{"5.4.2.4-1", formula.Params{"fcp": 5, "wc": -0.145}, "wc"},
		{"5.4.2.4-1", formula.Params{"fcp": 5, "k1": 0}, "k1"},
		{"5.6.3.1.1-1", formula.Params{"fpu": 270, "k": 0.28, "c": 5, "dp": 0}, "dp"},
		{"5.6.3.1.1-2", formula.Params{"fpy": 243, "fpu": 0}, "fpu"},
		{"5.10.8.2.1a-1", formula.Params{"ldb": 20, "lambda": 0}, "lambda"},
		{"5.10.8.2.1a-2", formula.Params{"db": 1, "fy": 60, "fcp": 0}, "fcp"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			_, err := Catalog().Evaluate(tt.id, tt.req)
			var invalid *formula.InvalidValueError
			require.True(t, errors.As(err, &invalid), "got %v", err)
			assert.Equal(t, tt.param, invalid.Param)
		})
	}
}

// TestCatalog_DefaultsAndParseBack checks every entry: defaults are equivalent
// to explicit values and the trace's last number parses back to the rounded value.
func TestCatalog_DefaultsAndParseBack(t *testing.T) {
	for _, d := range Catalog().List() {
		t.Run(d.ID, func(t *testing.T) {
			req := formula.Params{}
			for _, p := range d.Required {
				req[p.Name] = 4.0
			}
			res, err := formula.Evaluate(d, req)
			require.NoError(t, err)

			full := formula.Params{}
			for k, v := range req {
				full[k] = v
			}
			for _, p := range d.Optional {
				full[p.Name] = p.Default
			}
			explicit, err := formula.Evaluate(d, full)
			require.NoError(t, err)
			assert.Equal(t, math.Float64bits(res.Value), math.Float64bits(explicit.Value))

			lines := strings.Split(res.Trace, "\n")
			last := strings.TrimPrefix(lines[len(lines)-1], d.Symbol+" = ")
			parsed, err := strconv.ParseFloat(last, 64)
			require.NoError(t, err)
			rounded, _ := strconv.ParseFloat(formula.FormatValue(res.Value, d.ResultPrecision), 64)
			assert.Equal(t, rounded, parsed)
		})
	}
}
