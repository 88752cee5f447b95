package batch

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"Abutment/internal/formula"

	"github.com/xuri/excelize/v2"
)

const resultsSheet = "Results"

// ReadWorkbook reads items from the first sheet. The header row is "formula"
// followed by parameter names; each data row holds a formula id and values.
// Empty cells are left out of the request so that defaults apply.
func ReadWorkbook(r io.Reader) ([]Item, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q: no data rows", sheet)
	}

	header := rows[0]
	if len(header) == 0 || !strings.EqualFold(strings.TrimSpace(header[0]), "formula") {
		return nil, fmt.Errorf("sheet %q: first header cell must be \"formula\"", sheet)
	}

	var items []Item
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		items = append(items, parseRow(i+1, header, row))
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("sheet %q: no data rows", sheet)
	}
	return items, nil
}

func parseRow(rowNum int, header, row []string) Item {
	item := Item{Row: rowNum, Formula: strings.TrimSpace(row[0]), Params: formula.Params{}}
	for j := 1; j < len(row) && j < len(header); j++ {
		name := strings.TrimSpace(header[j])
		cell := strings.TrimSpace(row[j])
		if name == "" || cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			if item.err == nil {
				item.err = &formula.InvalidValueError{Formula: item.Formula, Param: name, Value: math.NaN(), Constraint: "a number, got " + strconv.Quote(cell)}
			}
			continue
		}
		item.Params[name] = v
	}
	return item
}

// WriteWorkbook writes outcomes to a single "Results" sheet.
func WriteWorkbook(w io.Writer, outcomes []Outcome) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), resultsSheet); err != nil {
		return err
	}
	header := []any{"row", "formula", "value", "error", "trace"}
	if err := f.SetSheetRow(resultsSheet, "A1", &header); err != nil {
		return err
	}
	for i, o := range outcomes {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		var value any = o.Value
		if o.Err != nil {
			value = ""
		}
		row := []any{o.Row, o.Formula, value, o.Error, o.Trace}
		if err := f.SetSheetRow(resultsSheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(resultsSheet, "E", "E", 80); err != nil {
		return err
	}
	return f.Write(w)
}
