package report

import (
	"fmt"
	"io"
	"slices"
	"time"

	"Abutment/internal/formula"

	"github.com/phpdave11/gofpdf"
)

type Meta struct {
	Title   string    `json:"title"`
	Project string    `json:"project"`
	Author  string    `json:"author"`
	Notes   string    `json:"notes"`
	Date    time.Time `json:"-"`
}

// Write renders results as an A4 calculation sheet.
func Write(w io.Writer, meta Meta, cat *formula.Catalog, results []formula.Result) error {
	if meta.Title == "" {
		meta.Title = "Calculation Report"
	}
	if meta.Date.IsZero() {
		meta.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(meta.Title, false)
	pdf.SetAuthor(meta.Author, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, meta.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", meta.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", meta.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", meta.Date.Format("2006-01-02")))
	pdf.Ln(10)
	if meta.Notes != "" {
		pdf.MultiCell(0, 6, meta.Notes, "", "L", false)
		pdf.Ln(4)
	}

	for _, res := range results {
		heading := "Eq. " + res.ID
		unit := ""
		var params []string
		d, err := cat.Lookup(res.ID)
		if err == nil {
			heading += ": " + d.Title
			unit = d.Unit
			params = paramLines(d, res)
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 7, heading, "", "L", false)
		if err == nil && d.Article != "" {
			pdf.SetFont("Helvetica", "I", 10)
			pdf.Cell(0, 5, "AASHTO LRFD Article "+d.Article)
			pdf.Ln(6)
		}
		pdf.SetFont("Helvetica", "", 10)
		for _, line := range params {
			pdf.Cell(0, 5, line)
			pdf.Ln(5)
		}
		pdf.SetFont("Courier", "", 10)
		pdf.MultiCell(0, 5, res.Trace, "", "L", false)
		if unit != "" {
			pdf.SetFont("Helvetica", "I", 10)
			pdf.Cell(0, 5, "Units: "+unit)
			pdf.Ln(5)
		}
		pdf.Ln(4)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// paramLines lists the inputs res was computed with, in declaration order.
func paramLines(d formula.Definition, res formula.Result) []string {
	var lines []string
	for _, p := range slices.Concat(d.Required, d.Optional) {
		if _, ok := res.Params[p.Name]; !ok {
			continue
		}
		line := p.Name + " = " + d.FormatParam(p.Name, res.Params)
		if p.Unit != "" {
			line += " " + p.Unit
		}
		if p.Description != "" {
			line += "  (" + p.Description + ")"
		}
		lines = append(lines, line)
	}
	return lines
}
