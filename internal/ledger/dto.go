// internal/ledger/dto.go
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// DTO usado no POST /ledger
type EntryCreateDTO struct {
	Kind        Kind            `json:"kind" validate:"required,oneof=income expense"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"max=255"`
	Category    string          `json:"category" validate:"max=100"`
	OccurredAt  time.Time       `json:"occurredAt"` // se zero, assume now
}
