// internal/commission/repository.go
package commission

import (
	"time"

	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de comissões.
type Repository struct {
	DB *gorm.DB
}

// NewRepository instancia um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// WithDB retorna uma cópia do repo usando um *gorm.DB específico (ex.: tx).
func (r *Repository) WithDB(db *gorm.DB) *Repository {
	if db == nil {
		db = r.DB
	}
	return &Repository{DB: db}
}

/* ============================== CRUD básico ============================== */

// Create insere uma nova comissão.
func (r *Repository) Create(c *Commission) error {
	return r.DB.Create(c).Error
}

// FindByID busca uma única comissão pelo seu ID.
func (r *Repository) FindByID(id uint) (*Commission, error) {
	var c Commission
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// List retorna todas as comissões, com filtro opcional de status.
func (r *Repository) List(status string) ([]Commission, error) {
	q := r.DB.Model(&Commission{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []Commission
	err := q.Order("payout_due_date ASC").Find(&list).Error
	return list, err
}

// ListByEmployee busca todas as comissões de um funcionário.
func (r *Repository) ListByEmployee(employeeID uint) ([]Commission, error) {
	var list []Commission
	err := r.DB.
		Where("employee_id = ?", employeeID).
		Order("payout_due_date ASC").
		Find(&list).Error
	return list, err
}

// FindPayable retorna as comissões aprovadas, não pagas e vencidas até asOf.
// asOf é fixado uma vez pelo chamador para a rodada inteira.
func (r *Repository) FindPayable(asOf time.Time) ([]Commission, error) {
	var list []Commission
	err := r.DB.
		Where("status = ? AND approved = ? AND payout_due_date <= ?", StatusUnpaid, true, asOf).
		Order("payout_due_date ASC, id ASC").
		Find(&list).Error
	return list, err
}

/* ========================= Transições condicionais ========================= */

// Approve marca a comissão como aprovada, uma única vez.
// O WHERE approved = false torna a operação idempotente: uma segunda
// chamada não afeta linha nenhuma e approved_at/approved_by ficam intactos.
// Retorna a comissão atualizada, ou gorm.ErrRecordNotFound se o ID não existe.
func (r *Repository) Approve(id uint, actorID uint, at time.Time) (*Commission, error) {
	res := r.DB.Model(&Commission{}).
		Where("id = ? AND approved = ?", id, false).
		Updates(map[string]interface{}{
			"approved":    true,
			"approved_at": &at,
			"approved_by": &actorID,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	// 0 linhas: ou já estava aprovada (no-op) ou não existe.
	return r.FindByID(id)
}

// MarkPaid flipa status para "paid" apenas se a comissão ainda está
// unpaid e aprovada. Deve rodar dentro da mesma transação que grava o
// lançamento no livro-caixa; RowsAffected == 0 sinaliza corrida perdida
// ou precondição violada, e o chamador decide o erro relendo o registro.
func (r *Repository) MarkPaid(db *gorm.DB, id uint, at time.Time) (int64, error) {
	if db == nil {
		db = r.DB
	}
	res := db.Model(&Commission{}).
		Where("id = ? AND status = ? AND approved = ?", id, StatusUnpaid, true).
		Updates(map[string]interface{}{
			"status":  StatusPaid,
			"paid_at": &at,
		})
	return res.RowsAffected, res.Error
}
