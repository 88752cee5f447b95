package calc

import (
	"encoding/json"
	"net/http"
	"strconv"

	"Abutment/internal/auth"
	"Abutment/internal/formula"
	"Abutment/internal/repo"

	"github.com/gorilla/mux"
)

const (
	defaultHistory = 20
	maxHistory     = 200
)

type Handler struct {
	Catalog *formula.Catalog
	Repo    repo.EvaluationRepository
}

type ParamView struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	Default     *float64 `json:"default,omitempty"`
}

type FormulaView struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Article     string      `json:"article,omitempty"`
	Symbol      string      `json:"symbol"`
	Unit        string      `json:"unit,omitempty"`
	Equation    string      `json:"equation"`
	Required    []ParamView `json:"required"`
	Optional    []ParamView `json:"optional,omitempty"`
	Constraints []string    `json:"constraints,omitempty"`
}

type EvaluateRequest struct {
	Params formula.Params `json:"params"`
}

type EvaluateResponse struct {
	ID      string  `json:"id"`
	Value   float64 `json:"value"`
	Trace   string  `json:"trace"`
	SavedID string  `json:"saved_id,omitempty"`
}

func NewFormulaView(d formula.Definition) FormulaView {
	v := FormulaView{
		ID:       d.ID,
		Title:    d.Title,
		Article:  d.Article,
		Symbol:   d.Symbol,
		Unit:     d.Unit,
		Equation: d.Equation(),
		Required: make([]ParamView, 0, len(d.Required)),
	}
	for _, p := range d.Required {
		v.Required = append(v.Required, ParamView{Name: p.Name, Description: p.Description, Unit: p.Unit})
	}
	for _, p := range d.Optional {
		def := p.Default
		v.Optional = append(v.Optional, ParamView{Name: p.Name, Description: p.Description, Unit: p.Unit, Default: &def})
	}
	for _, c := range d.Constraints {
		v.Constraints = append(v.Constraints, c.Param+" "+c.Text)
	}
	return v
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	defs := h.Catalog.List()
	out := make([]FormulaView, 0, len(defs))
	for _, d := range defs {
		out = append(out, NewFormulaView(d))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	d, err := h.Catalog.Lookup(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NewFormulaView(d))
}

// Evaluate runs one formula and saves the result to the caller's history.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var input EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteMessage(w, http.StatusBadRequest, KindBadRequest, "Invalid request payload")
		return
	}
	res, err := h.Catalog.Evaluate(mux.Vars(r)["id"], input.Params)
	if err != nil {
		WriteError(w, err)
		return
	}

	out := EvaluateResponse{ID: res.ID, Value: res.Value, Trace: res.Trace}
	if userID, ok := auth.UserID(r.Context()); ok && h.Repo != nil {
		saved, err := h.Repo.SaveEvaluation(r.Context(), userID, res)
		if err != nil {
			WriteError(w, err)
			return
		}
		out.SavedID = saved.ID
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		WriteMessage(w, http.StatusUnauthorized, KindUnauthorized, "Unauthorized")
		return
	}
	if h.Repo == nil {
		WriteMessage(w, http.StatusServiceUnavailable, KindUnavailable, "History not available")
		return
	}
	limit := defaultHistory
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			WriteMessage(w, http.StatusBadRequest, KindBadRequest, "Invalid limit")
			return
		}
		limit = min(n, maxHistory)
	}
	list, err := h.Repo.ListEvaluations(r.Context(), userID, limit)
	if err != nil {
		WriteError(w, err)
		return
	}
	if list == nil {
		list = []repo.Evaluation{}
	}
	writeJSON(w, http.StatusOK, list)
}
