// internal/commission/dto.go
package commission

import "github.com/shopspring/decimal"

// DTO usado no POST /commissions
type CommissionCreateDTO struct {
	EmployeeID uint            `json:"employeeId" validate:"required"`
	OfferName  string          `json:"offerName" validate:"max=255"` // opcional
	Amount     decimal.Decimal `json:"amount"`
}
