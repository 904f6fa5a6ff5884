// internal/ledger/model.go
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Kind classifica um lançamento do livro-caixa.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// CategoryCommission é a categoria usada para despesas geradas por payout de comissão.
const CategoryCommission = "Commission"

// Entry é um lançamento financeiro imutável. O livro é append-only:
// correções entram como novos lançamentos, nunca como update/delete.
type Entry struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Kind        Kind            `gorm:"size:20;not null;index" json:"kind"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"amount"`
	Description string          `gorm:"size:255" json:"description"`
	Category    string          `gorm:"size:100;index" json:"category"`
	// ReferenceID aponta para a comissão que gerou este lançamento.
	// O uniqueIndex garante no máximo um lançamento por comissão.
	ReferenceID *uint     `gorm:"uniqueIndex" json:"referenceId,omitempty"`
	OccurredAt  time.Time `gorm:"not null;index" json:"occurredAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Entry{})
}
