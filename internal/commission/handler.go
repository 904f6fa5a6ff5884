// internal/commission/handler.go
package commission

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/salesdesk/payroll-engine/internal/auth"
	"github.com/salesdesk/payroll-engine/internal/employee"
)

type Handler struct {
	Repo      *Repository
	Employees employee.Repository
	Validate  *validator.Validate
}

func NewHandler(repo *Repository, employees employee.Repository) *Handler {
	return &Handler{Repo: repo, Employees: employees, Validate: validator.New()}
}

/* ============================== Endpoints ============================== */

// POST /commissions (admin)
// Snapshot de nome/cargo do funcionário e data de vencimento calculada aqui.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in CommissionCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(in); err != nil {
		http.Error(w, "Payload inválido: "+err.Error(), http.StatusBadRequest)
		return
	}
	if in.Amount.IsNegative() {
		http.Error(w, "Valor da comissão não pode ser negativo", http.StatusBadRequest)
		return
	}

	emp, err := h.Employees.FindByID(h.Repo.DB, in.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Funcionário não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao buscar funcionário", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	c := &Commission{
		EmployeeID:    emp.ID,
		EmployeeName:  emp.FullName(),
		EmployeeRole:  emp.Role,
		OfferName:     in.OfferName,
		Amount:        in.Amount,
		Status:        StatusUnpaid,
		Approved:      false,
		PayoutDueDate: PayoutDueDate(now),
	}
	if err := h.Repo.Create(c); err != nil {
		http.Error(w, "Erro ao criar comissão", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// GET /commissions?status=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && status != StatusUnpaid && status != StatusPaid {
		http.Error(w, "Status inválido. Use 'unpaid' ou 'paid'.", http.StatusBadRequest)
		return
	}

	list, err := h.Repo.List(status)
	if err != nil {
		http.Error(w, "Erro ao buscar comissões", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// GET /commissions/{id}
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da comissão inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repo.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Comissão não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao buscar comissão", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// GET /employees/{id}/commissions
func (h *Handler) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID do funcionário inválido", http.StatusBadRequest)
		return
	}

	userID, _ := auth.UserID(r.Context())
	if !auth.IsAdmin(r.Context()) && uint(id) != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	list, err := h.Repo.ListByEmployee(uint(id))
	if err != nil {
		http.Error(w, "Erro ao buscar comissões do funcionário", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// POST /commissions/{id}/approve (admin)
// Idempotente: reaprovar não altera approved_at nem approved_by.
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da comissão inválido", http.StatusBadRequest)
		return
	}

	actorID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Token ausente", http.StatusUnauthorized)
		return
	}

	c, err := h.Repo.Approve(uint(id), actorID, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Comissão não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao aprovar comissão", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}
