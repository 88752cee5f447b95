package formula

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_LookupAndEvaluate(t *testing.T) {
	cat, err := NewCatalog(stripWidth(), modulus())
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())

	d, err := cat.Lookup("5.4.2.4-1")
	require.NoError(t, err)
	assert.Equal(t, "Ec", d.Symbol)

	res, err := cat.Evaluate("4.6.2.3-1", Params{"L1": 60, "W1": 30})
	require.NoError(t, err)
	assert.Equal(t, "4.6.2.3-1", res.ID)
}

// TestCatalog_Unknown verifies unknown ids surface UnknownFormulaError.
func TestCatalog_Unknown(t *testing.T) {
	cat := MustCatalog(stripWidth())

	_, err := cat.Evaluate("9.9.9-9", Params{"L1": 1})
	var unknown *UnknownFormulaError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "9.9.9-9", unknown.ID)
	assert.ErrorIs(t, err, ErrUnknownFormula)
	assert.Equal(t, "unknown_formula", Kind(err))
}

func TestCatalog_ListOrder(t *testing.T) {
	cat := MustCatalog(modulus(), stripWidth())

	var ids []string
	for _, d := range cat.List() {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"5.4.2.4-1", "4.6.2.3-1"}, ids)
}

func TestCatalog_Rejects(t *testing.T) {
	_, err := NewCatalog(stripWidth(), stripWidth())
	assert.Error(t, err, "duplicate ids")

	_, err = NewCatalog(Definition{ID: "broken"})
	assert.Error(t, err, "invalid definition")

	assert.Panics(t, func() { MustCatalog(Definition{}) })
}
