package report

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"Abutment/internal/calc"
	"Abutment/internal/calc/batch"
	"Abutment/internal/formula"
)

type Input struct {
	Meta
	Items []batch.Item `json:"items"`
}

type Handler struct {
	Catalog *formula.Catalog
}

// Generate evaluates the posted items and returns them as a PDF. Any failing
// item fails the whole report.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		calc.WriteMessage(w, http.StatusBadRequest, calc.KindBadRequest, "Invalid request payload")
		return
	}
	if len(input.Items) == 0 {
		calc.WriteMessage(w, http.StatusBadRequest, calc.KindBadRequest, "No items")
		return
	}

	results := make([]formula.Result, 0, len(input.Items))
	for _, item := range input.Items {
		res, err := h.Catalog.Evaluate(item.Formula, item.Params)
		if err != nil {
			calc.WriteError(w, err)
			return
		}
		results = append(results, res)
	}

	var buf bytes.Buffer
	if err := Write(&buf, input.Meta, h.Catalog, results); err != nil {
		log.Printf("report: %v", err)
		calc.WriteMessage(w, http.StatusInternalServerError, calc.KindInternal, "Report generation error")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	w.Write(buf.Bytes())
}
