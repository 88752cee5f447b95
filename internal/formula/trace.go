package formula

import (
	"regexp"
	"strconv"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

func placeholders(tmpl string) []string {
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(tmpl, -1) {
		names = append(names, m[1])
	}
	return names
}

// Equation returns the symbolic form, e.g. "E = 10.0 + 5.0*sqrt(L1*W1)".
func (d Definition) Equation() string {
	return d.Symbol + " = " + placeholderRe.ReplaceAllString(d.Template, "$1")
}

// Substitute renders the template with each parameter formatted at its precision.
// Negative values are parenthesized so "{x}^2" reads as (-x)^2.
func (d Definition) Substitute(p Params) string {
	return placeholderRe.ReplaceAllStringFunc(d.Template, func(m string) string {
		s := d.FormatParam(m[1:len(m)-1], p)
		if strings.HasPrefix(s, "-") {
			return "(" + s + ")"
		}
		return s
	})
}

// FormatParam formats one parameter of p at its display precision.
func (d Definition) FormatParam(name string, p Params) string {
	return FormatValue(p[name], d.precisionOf(name))
}

func (d Definition) trace(p Params, value float64) string {
	var b strings.Builder
	b.WriteString(d.Equation())
	b.WriteString("\n")
	b.WriteString(d.Symbol + " = " + d.Substitute(p))
	b.WriteString("\n")
	b.WriteString(d.Symbol + " = " + FormatValue(value, d.ResultPrecision))
	return b.String()
}

// FormatValue formats v with a fixed number of decimals.
func FormatValue(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
