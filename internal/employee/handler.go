package employee

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/salesdesk/payroll-engine/internal/auth"
	"github.com/salesdesk/payroll-engine/internal/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// request DTOs
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createEmployeeRequest struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Photo    string `json:"photo"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

// Login valida credenciais e emite access + refresh token
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	user, err := h.Repository.FindByEmail(h.DB, req.Email)
	if err != nil {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	if !utils.CheckPassword(user.Password, req.Password) {
		http.Error(w, "senha incorreta", http.StatusUnauthorized)
		return
	}

	access, err := auth.IssueTokensOnLogin(h.DB, w, user.ID, user.IsAdmin)
	if err != nil {
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"token":              access,
		"needsPasswordReset": user.NeedsPasswordReset,
	})
}

// POST /employees (admin)
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	needsReset := false
	if req.Password == "" {
		// Sem senha no cadastro: gera temporária e força redefinição.
		tmp, err := tempPassword()
		if err != nil {
			http.Error(w, "erro ao gerar senha temporária", http.StatusInternalServerError)
			return
		}
		req.Password = tmp
		needsReset = true
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	e := Employee{
		Name:               req.Name,
		LastName:           req.LastName,
		Role:               req.Role,
		Email:              req.Email,
		Phone:              req.Phone,
		Photo:              req.Photo,
		Password:           hash,
		NeedsPasswordReset: needsReset,
		IsAdmin:            req.IsAdmin,
	}

	if err := h.Repository.Save(h.DB, &e); err != nil {
		http.Error(w, "erro ao salvar funcionário", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(e)
}

// GET /employees — admin vê todos; não-admin vê apenas o próprio registro
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	if auth.IsAdmin(r.Context()) {
		employees, err := h.Repository.ListAll(h.DB)
		if err != nil {
			http.Error(w, "erro ao listar funcionários", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(employees)
		return
	}

	obj, err := h.Repository.FindByID(h.DB, userID)
	if err != nil {
		http.Error(w, "funcionário não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode([]Employee{*obj})
}

// GET /employees/{id}
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if !auth.IsAdmin(r.Context()) && uint(id) != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	obj, err := h.Repository.FindByID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "funcionário não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(obj)
}

// PUT /employees/{id} — altera o cadastro; não reescreve snapshots antigos
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if !auth.IsAdmin(r.Context()) && uint(id) != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var data Employee
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Update(h.DB, uint(id), &data); err != nil {
		http.Error(w, "erro ao atualizar funcionário", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("funcionário atualizado com sucesso"))
}

// DELETE /employees/{id} (admin)
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Delete(h.DB, uint(id)); err != nil {
		http.Error(w, "erro ao excluir funcionário", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("funcionário excluído com sucesso"))
}

// POST /employees/password — troca a própria senha e limpa o flag de reset
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req struct {
		Current string `json:"current"`
		New     string `json:"new"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.New == "" {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	user, err := h.Repository.FindByID(h.DB, userID)
	if err != nil {
		http.Error(w, "funcionário não encontrado", http.StatusNotFound)
		return
	}
	if !utils.CheckPassword(user.Password, req.Current) {
		http.Error(w, "senha atual incorreta", http.StatusUnauthorized)
		return
	}

	hash, err := utils.HashPassword(req.New)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}
	user.Password = hash
	user.NeedsPasswordReset = false
	if err := h.Repository.Save(h.DB, user); err != nil {
		http.Error(w, "erro ao salvar senha", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var e Employee
	if err := h.DB.First(&e, userID).Error; err != nil {
		http.Error(w, "funcionário não encontrado", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(&e)
}
