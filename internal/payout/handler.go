// internal/payout/handler.go
package payout

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	Executor *Executor
}

func NewHandler(executor *Executor) *Handler {
	return &Handler{Executor: executor}
}

/* ============================== Endpoints ============================== */

// POST /commissions/{id}/pay (admin)
func (h *Handler) PayOne(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da comissão inválido", http.StatusBadRequest)
		return
	}

	rec, err := h.Executor.PayOne(r.Context(), uint(id), time.Now())
	switch {
	case err == nil:
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rec)
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "Comissão não encontrada", http.StatusNotFound)
	case errors.Is(err, ErrAlreadyPaid):
		http.Error(w, "Comissão já paga", http.StatusConflict)
	case errors.Is(err, ErrNotApproved):
		http.Error(w, "Comissão ainda não aprovada", http.StatusUnprocessableEntity)
	default:
		http.Error(w, "Erro ao pagar comissão", http.StatusInternalServerError)
	}
}

// POST /payouts/run (admin)
// Aceita ?asOf=YYYY-MM-DD para rodar a folha com data de referência fixa.
func (h *Handler) RunBatch(w http.ResponseWriter, r *http.Request) {
	asOf := time.Now()
	if v := r.URL.Query().Get("asOf"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			http.Error(w, "Parâmetro 'asOf' inválido (use YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		// A referência cobre o dia civil inteiro: vencimento à meia-noite
		// em qualquer fuso entra na janela da própria data.
		asOf = time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
	}

	summary, err := h.Executor.RunBatch(r.Context(), asOf)
	if err != nil {
		http.Error(w, "Erro ao rodar pagamento em lote", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(summary)
}
