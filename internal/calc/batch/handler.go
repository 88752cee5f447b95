package batch

import (
	"encoding/json"
	"log"
	"net/http"

	"Abutment/internal/calc"
	"Abutment/internal/formula"
)

const MaxUploadSize = 10 << 20 // 10MB

type Handler struct {
	Catalog *formula.Catalog
}

type Response struct {
	Count    int       `json:"count"`
	Failed   int       `json:"failed"`
	Outcomes []Outcome `json:"outcomes"`
}

// Workbook evaluates an uploaded xlsx file (multipart field "file").
func (h *Handler) Workbook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		calc.WriteMessage(w, http.StatusBadRequest, calc.KindBadRequest, "File required")
		return
	}
	defer file.Close()

	items, err := ReadWorkbook(file)
	if err != nil {
		log.Printf("batch: %v", err)
		calc.WriteMessage(w, http.StatusBadRequest, calc.KindBadRequest, "Invalid file")
		return
	}
	h.respond(w, items)
}

// JSON evaluates a list of items posted as {"items": [...]}.
func (h *Handler) JSON(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Items []Item `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		calc.WriteMessage(w, http.StatusBadRequest, calc.KindBadRequest, "Invalid request payload")
		return
	}
	h.respond(w, input.Items)
}

func (h *Handler) respond(w http.ResponseWriter, items []Item) {
	outcomes, err := Run(h.Catalog, items)
	if err != nil {
		calc.WriteMessage(w, http.StatusBadRequest, calc.KindBadRequest, "No items")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Response{Count: len(outcomes), Failed: Failed(outcomes), Outcomes: outcomes})
}
