package batch

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"Abutment/internal/calc"
	"Abutment/internal/formula"
	"Abutment/internal/lrfd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func sample(t *testing.T) *bytes.Buffer {
	return workbook(t, [][]any{
		{"formula", "L1", "W1", "W", "NL", "fcp"},
		{"4.6.2.3-1", 60, 30},
		{"4.6.2.3-2", 60, 60, 40, 3.7},
		{"5.4.2.4-1", "", "", "", "", 5},
		{"", 99},
		{"4.6.2.3-1", 60},
		{"9.9.9", 1},
		{"4.6.2.3-1", "sixty", 30},
	})
}

// TestReadWorkbook verifies header mapping, blank cells and skipped rows.
func TestReadWorkbook(t *testing.T) {
	items, err := ReadWorkbook(sample(t))
	require.NoError(t, err)
	require.Len(t, items, 6)

	assert.Equal(t, 2, items[0].Row)
	assert.Equal(t, "4.6.2.3-1", items[0].Formula)
	assert.Equal(t, formula.Params{"L1": 60, "W1": 30}, items[0].Params)
	assert.Equal(t, formula.Params{"fcp": 5}, items[2].Params)
	assert.Equal(t, 6, items[3].Row)
	assert.Error(t, items[5].err)
}

// TestRun verifies failing items are reported without stopping the batch.
func TestRun(t *testing.T) {
	items, err := ReadWorkbook(sample(t))
	require.NoError(t, err)

	outcomes, err := Run(lrfd.Catalog(), items)
	require.NoError(t, err)
	require.Len(t, outcomes, 6)

	assert.InDelta(t, 222.132, outcomes[0].Value, 1e-3)
	assert.InDelta(t, 160.0, outcomes[1].Value, 1e-9)
	assert.NoError(t, outcomes[2].Err)
	assert.ErrorIs(t, outcomes[3].Err, formula.ErrMissingParameter)
	assert.ErrorIs(t, outcomes[4].Err, formula.ErrUnknownFormula)
	assert.ErrorIs(t, outcomes[5].Err, formula.ErrInvalidValue)
	assert.Equal(t, "invalid_value", outcomes[5].Kind)
	assert.Equal(t, 3, Failed(outcomes))

	_, err = Run(lrfd.Catalog(), nil)
	assert.Error(t, err)
}

func TestReadWorkbook_BadHeader(t *testing.T) {
	_, err := ReadWorkbook(workbook(t, [][]any{{"id", "L1"}, {"4.6.2.3-1", 1}}))
	assert.Error(t, err)

	_, err = ReadWorkbook(workbook(t, [][]any{{"formula", "L1"}}))
	assert.Error(t, err)

	_, err = ReadWorkbook(bytes.NewBufferString("not a workbook"))
	assert.Error(t, err)
}

// TestWriteWorkbook verifies the results sheet can be read back.
func TestWriteWorkbook(t *testing.T) {
	items, err := ReadWorkbook(sample(t))
	require.NoError(t, err)
	outcomes, err := Run(lrfd.Catalog(), items)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, outcomes))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(resultsSheet)
	require.NoError(t, err)
	require.Len(t, rows, len(outcomes)+1)
	assert.Equal(t, []string{"row", "formula", "value", "error", "trace"}, rows[0])
	assert.Equal(t, "4.6.2.3-1", rows[1][1])
	assert.Contains(t, rows[1][4], "E = 222.132")
	assert.Contains(t, rows[4][3], "missing parameter")
}

func TestHandler_Workbook(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "batch.xlsx")
	require.NoError(t, err)
	_, err = part.Write(sample(t).Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/user/batch", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	(&Handler{Catalog: lrfd.Catalog()}).Workbook(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 6, resp.Count)
	assert.Equal(t, 3, resp.Failed)
}

func TestHandler_JSON(t *testing.T) {
	body := `{"items":[{"formula":"4.6.2.3-1","params":{"L1":60,"W1":30}},{"formula":"nope","params":{}}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/batch/json", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	(&Handler{Catalog: lrfd.Catalog()}).JSON(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Outcomes, 2)
	assert.Equal(t, "E = 10.0 + 5.0*sqrt(L1*W1)\nE = 10.0 + 5.0*sqrt(60.000*30.000)\nE = 222.132", resp.Outcomes[0].Trace)
	assert.Equal(t, "unknown_formula", resp.Outcomes[1].Kind)
}

func TestHandler_BadRequests(t *testing.T) {
	h := &Handler{Catalog: lrfd.Catalog()}
	tests := []struct {
		name string
		body string
		call func(http.ResponseWriter, *http.Request)
	}{
		{"malformed json", `{"items":`, h.JSON},
		{"no items", `{"items":[]}`, h.JSON},
		{"no file", ``, h.Workbook},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.call(rec, httptest.NewRequest(http.MethodPost, "/api/user/batch", bytes.NewBufferString(tt.body)))
			require.Equal(t, http.StatusBadRequest, rec.Code)
			var resp calc.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, calc.KindBadRequest, resp.Kind)
		})
	}
}
