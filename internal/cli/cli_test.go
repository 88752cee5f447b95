package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"Abutment/internal/formula"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	cfg := filepath.Join(t.TempDir(), "none.toml")

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestParseAssignments(t *testing.T) {
	params, err := ParseAssignments([]string{"L1=60", "W1 = 30.5"})
	require.NoError(t, err)
	assert.Equal(t, formula.Params{"L1": 60, "W1": 30.5}, params)

	for _, bad := range [][]string{{"L1"}, {"=5"}, {"L1=abc"}, {"L1=1", "L1=2"}} {
		_, err := ParseAssignments(bad)
		assert.Error(t, err, "%v", bad)
	}
}

func TestEval(t *testing.T) {
	out, err := run(t, "eval", "4.6.2.3-1", "L1=60", "W1=30")
	require.NoError(t, err)
	assert.Contains(t, out, "Eq. 4.6.2.3-1 Equivalent strip width, one lane loaded")
	assert.Contains(t, out, "E = 10.0 + 5.0*sqrt(60.000*30.000)\nE = 222.132\n")
}

func TestEval_JSON(t *testing.T) {
	out, err := run(t, "eval", "--json", "5.4.2.4-1", "fcp=5")
	require.NoError(t, err)

	var res formula.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "5.4.2.4-1", res.ID)
	assert.Equal(t, 0.145, res.Params["wc"])
}

func TestEval_Errors(t *testing.T) {
	_, err := run(t, "eval", "4.6.2.3-1", "L1=60")
	assert.ErrorIs(t, err, formula.ErrMissingParameter)

	_, err = run(t, "eval", "0.0.0")
	assert.ErrorIs(t, err, formula.ErrUnknownFormula)
}

func TestListAndShow(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "4.6.2.3-2")
	assert.Contains(t, out, "5.10.8.2.1a-2")

	out, err = run(t, "show", "5.4.2.4-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Ec = 120000*k1*wc^2*fcp^0.33")
	assert.Contains(t, out, "0.145")
}

// TestBatchAndReport verifies the workbook commands write their files.
func TestBatchAndReport(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"formula", "L1", "W1", "fcp"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"4.6.2.3-1", 60, 30}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"5.4.2.4-1", "", "", 5}))
	require.NoError(t, f.SaveAs(in))
	require.NoError(t, f.Close())

	results := filepath.Join(dir, "out.xlsx")
	out, err := run(t, "batch", in, "-o", results)
	require.NoError(t, err)
	assert.Contains(t, out, "Evaluated 2 rows (0 failed)")
	_, err = os.Stat(results)
	require.NoError(t, err)

	pdf := filepath.Join(dir, "report.pdf")
	_, err = run(t, "report", in, "-o", pdf, "--project", "Bridge 12")
	require.NoError(t, err)
	data, err := os.ReadFile(pdf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}
