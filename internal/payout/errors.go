// internal/payout/errors.go
package payout

import "errors"

var (
	// ErrNotApproved: a comissão ainda não passou pela aprovação.
	ErrNotApproved = errors.New("comissão não aprovada")
	// ErrAlreadyPaid: a comissão já está em estado terminal "paid".
	ErrAlreadyPaid = errors.New("comissão já paga")
)
