// internal/commission/model.go
package commission

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Status de pagamento de uma comissão. "paid" é terminal.
const (
	StatusUnpaid = "unpaid"
	StatusPaid   = "paid"
)

// Commission representa uma comissão devida a um funcionário.
//
// EmployeeName e EmployeeRole são um snapshot do cadastro no momento da
// criação: o histórico de folha não muda se o perfil for editado depois.
type Commission struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	EmployeeID   uint            `gorm:"not null;index" json:"employeeId"`
	EmployeeName string          `gorm:"size:255;not null" json:"employeeName"`
	EmployeeRole string          `gorm:"size:100" json:"employeeRole"`
	OfferName    string          `gorm:"size:255" json:"offerName"`
	Amount       decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"amount"`
	Status       string          `gorm:"size:20;not null;default:'unpaid';index" json:"status"`
	Approved     bool            `gorm:"not null;default:false;index" json:"approved"`
	// PayoutDueDate é calculada na criação (regra quinzenal) e não muda.
	PayoutDueDate time.Time  `gorm:"not null;index" json:"payoutDueDate"`
	ApprovedBy    *uint      `json:"approvedBy,omitempty"`
	ApprovedAt    *time.Time `json:"approvedAt,omitempty"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Commission{})
}
