package payout

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdesk/payroll-engine/internal/commission"
)

func runBatchVia(t *testing.T, h *Handler, target string) *Summary {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, nil)
	rr := httptest.NewRecorder()
	h.RunBatch(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var s Summary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &s))
	return &s
}

// Vencimento gravado à meia-noite de um fuso não UTC: a rodada com
// ?asOf= na própria data do vencimento precisa alcançá-lo.
func TestRunBatchHandler_AsOfReachesDueDateInOtherZone(t *testing.T) {
	e, commissions, _, _ := newTestExecutor(t)
	h := NewHandler(e)

	recife := time.FixedZone("UTC-3", -3*60*60)
	c := &commission.Commission{
		EmployeeID:    1,
		EmployeeName:  "Ana Souza",
		EmployeeRole:  "Vendedora",
		Amount:        decimal.NewFromInt(500),
		Status:        commission.StatusUnpaid,
		PayoutDueDate: time.Date(2025, time.April, 1, 0, 0, 0, 0, recife),
	}
	require.NoError(t, commissions.Create(c))
	_, err := commissions.Approve(c.ID, 1, time.Date(2025, time.March, 20, 10, 0, 0, 0, recife))
	require.NoError(t, err)

	// Antes do vencimento nada é pago.
	early := runBatchVia(t, h, "/payouts/run?asOf=2025-03-25")
	assert.Zero(t, early.Paid)
	assert.Zero(t, early.Processed)

	// No dia do vencimento a comissão entra na rodada.
	due := runBatchVia(t, h, "/payouts/run?asOf=2025-04-01")
	assert.Equal(t, 1, due.Paid)
	assert.Equal(t, 1, due.Processed)
}

func TestRunBatchHandler_RejectsMalformedAsOf(t *testing.T) {
	e, _, _, _ := newTestExecutor(t)
	h := NewHandler(e)

	req := httptest.NewRequest(http.MethodPost, "/payouts/run?asOf=01-04-2025", nil)
	rr := httptest.NewRecorder()
	h.RunBatch(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
