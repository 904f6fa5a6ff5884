package commission_test

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/salesdesk/payroll-engine/internal/commission"
	"github.com/salesdesk/payroll-engine/internal/employee"
)

func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// Uma conexão só: cada conexão :memory: seria um banco separado.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&employee.Employee{}, &commission.Commission{}))
	return db
}

func newCommission(t *testing.T, repo *commission.Repository, due time.Time) *commission.Commission {
	t.Helper()
	c := &commission.Commission{
		EmployeeID:    1,
		EmployeeName:  "Ana Souza",
		EmployeeRole:  "Vendedora",
		OfferName:     "Plano Anual",
		Amount:        decimal.NewFromInt(1000),
		Status:        commission.StatusUnpaid,
		PayoutDueDate: due,
	}
	require.NoError(t, repo.Create(c))
	return c
}

func TestApprove_SetsApprovalOnce(t *testing.T) {
	db := newTestDB(t)
	repo := commission.NewRepository(db)

	c := newCommission(t, repo, date(2025, time.March, 15))

	first := date(2025, time.March, 11)
	got, err := repo.Approve(c.ID, 7, first)
	require.NoError(t, err)
	assert.True(t, got.Approved)
	require.NotNil(t, got.ApprovedAt)
	assert.True(t, got.ApprovedAt.Equal(first))
	require.NotNil(t, got.ApprovedBy)
	assert.Equal(t, uint(7), *got.ApprovedBy)
}

func TestApprove_Idempotent(t *testing.T) {
	db := newTestDB(t)
	repo := commission.NewRepository(db)

	c := newCommission(t, repo, date(2025, time.March, 15))

	first := date(2025, time.March, 11)
	_, err := repo.Approve(c.ID, 7, first)
	require.NoError(t, err)

	// Reaprovação: outro ator, outra data — nada muda.
	got, err := repo.Approve(c.ID, 99, date(2025, time.March, 12))
	require.NoError(t, err)
	assert.True(t, got.Approved)
	require.NotNil(t, got.ApprovedAt)
	assert.True(t, got.ApprovedAt.Equal(first), "approved_at não pode mudar na reaprovação")
	assert.Equal(t, uint(7), *got.ApprovedBy)
}

func TestApprove_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := commission.NewRepository(db)

	_, err := repo.Approve(12345, 7, time.Now())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindPayable_SelectsOnlyDueApprovedUnpaid(t *testing.T) {
	db := newTestDB(t)
	repo := commission.NewRepository(db)

	due := newCommission(t, repo, date(2025, time.March, 15))
	_, err := repo.Approve(due.ID, 1, date(2025, time.March, 11))
	require.NoError(t, err)

	notApproved := newCommission(t, repo, date(2025, time.March, 15))
	_ = notApproved

	notDue := newCommission(t, repo, date(2025, time.April, 1))
	_, err = repo.Approve(notDue.ID, 1, date(2025, time.March, 21))
	require.NoError(t, err)

	payable, err := repo.FindPayable(date(2025, time.March, 25))
	require.NoError(t, err)
	require.Len(t, payable, 1)
	assert.Equal(t, due.ID, payable[0].ID)

	// No dia 1º de abril a terceira entra na janela.
	payable, err = repo.FindPayable(date(2025, time.April, 1))
	require.NoError(t, err)
	assert.Len(t, payable, 2)
}

func TestMarkPaid_ConditionalOnStatusAndApproval(t *testing.T) {
	db := newTestDB(t)
	repo := commission.NewRepository(db)

	c := newCommission(t, repo, date(2025, time.March, 15))

	// Não aprovada: nenhuma linha afetada.
	rows, err := repo.MarkPaid(nil, c.ID, date(2025, time.March, 16))
	require.NoError(t, err)
	assert.Zero(t, rows)

	_, err = repo.Approve(c.ID, 1, date(2025, time.March, 11))
	require.NoError(t, err)

	paidAt := date(2025, time.March, 16)
	rows, err = repo.MarkPaid(nil, c.ID, paidAt)
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	got, err := repo.FindByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, commission.StatusPaid, got.Status)
	require.NotNil(t, got.PaidAt)
	assert.True(t, got.PaidAt.Equal(paidAt))

	// Segunda tentativa: estado terminal, zero linhas.
	rows, err = repo.MarkPaid(nil, c.ID, date(2025, time.March, 17))
	require.NoError(t, err)
	assert.Zero(t, rows)
}

func TestCommission_SnapshotSurvivesProfileChanges(t *testing.T) {
	db := newTestDB(t)
	repo := commission.NewRepository(db)
	employees := employee.NewRepository()

	e := &employee.Employee{Name: "Bruno", LastName: "Lima", Role: "Vendedor", Email: "bruno@example.com"}
	require.NoError(t, employees.Save(db, e))

	c := &commission.Commission{
		EmployeeID:    e.ID,
		EmployeeName:  e.FullName(),
		EmployeeRole:  e.Role,
		Amount:        decimal.NewFromInt(500),
		Status:        commission.StatusUnpaid,
		PayoutDueDate: date(2025, time.June, 15),
	}
	require.NoError(t, repo.Create(c))

	// Promoção depois da comissão criada.
	require.NoError(t, employees.Update(db, e.ID, &employee.Employee{
		Name: "Bruno", LastName: "Lima", Role: "Gerente", Email: "bruno@example.com",
	}))

	got, err := repo.FindByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bruno Lima", got.EmployeeName)
	assert.Equal(t, "Vendedor", got.EmployeeRole, "snapshot preserva o cargo da época")
}
