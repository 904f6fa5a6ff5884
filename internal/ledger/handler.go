// internal/ledger/handler.go
package ledger

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	Repo     *Repository
	Validate *validator.Validate
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo, Validate: validator.New()}
}

/* ============================== Endpoints ============================== */

// POST /ledger
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in EntryCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(in); err != nil {
		http.Error(w, "Payload inválido: "+err.Error(), http.StatusBadRequest)
		return
	}
	if in.Amount.IsNegative() {
		http.Error(w, "Valor do lançamento não pode ser negativo", http.StatusBadRequest)
		return
	}
	if in.OccurredAt.IsZero() {
		in.OccurredAt = time.Now()
	}

	entry := &Entry{
		Kind:        in.Kind,
		Amount:      in.Amount,
		Description: in.Description,
		Category:    in.Category,
		OccurredAt:  in.OccurredAt,
	}
	if err := h.Repo.Create(entry); err != nil {
		http.Error(w, "Erro ao criar lançamento", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(entry)
}

// GET /ledger?kind=&category=&from=&to=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	f := ListFilter{
		Kind:     Kind(r.URL.Query().Get("kind")),
		Category: r.URL.Query().Get("category"),
	}
	if f.Kind != "" && f.Kind != KindIncome && f.Kind != KindExpense {
		http.Error(w, "Tipo inválido. Use 'income' ou 'expense'.", http.StatusBadRequest)
		return
	}
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			http.Error(w, "Parâmetro 'from' inválido (use YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		f.From = &t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			http.Error(w, "Parâmetro 'to' inválido (use YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		f.To = &t
	}

	entries, err := h.Repo.List(f)
	if err != nil {
		http.Error(w, "Erro ao buscar lançamentos", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entries)
}

// GET /ledger/{id}
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID do lançamento inválido", http.StatusBadRequest)
		return
	}

	entry, err := h.Repo.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Lançamento não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao buscar lançamento", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entry)
}

// GET /ledger/summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Repo.Summarize()
	if err != nil {
		http.Error(w, "Erro ao somar o livro-caixa", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(summary)
}

// GET /ledger/by-category?kind=expense
func (h *Handler) ByCategory(w http.ResponseWriter, r *http.Request) {
	kind := Kind(r.URL.Query().Get("kind"))
	if kind == "" {
		kind = KindExpense
	}
	if kind != KindIncome && kind != KindExpense {
		http.Error(w, "Tipo inválido. Use 'income' ou 'expense'.", http.StatusBadRequest)
		return
	}

	totals, err := h.Repo.SumByCategory(kind)
	if err != nil {
		http.Error(w, "Erro ao agrupar por categoria", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(totals)
}

// GET /ledger/by-month
func (h *Handler) ByMonth(w http.ResponseWriter, r *http.Request) {
	totals, err := h.Repo.SumByMonth()
	if err != nil {
		http.Error(w, "Erro ao agrupar por mês", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(totals)
}
