package ledger_test

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/salesdesk/payroll-engine/internal/ledger"
)

func newTestRepo(t *testing.T) *ledger.Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, ledger.Migrate(db))
	return ledger.NewRepository(db)
}

func seedEntry(t *testing.T, repo *ledger.Repository, kind ledger.Kind, amount int64, category string, occurred time.Time) {
	t.Helper()
	require.NoError(t, repo.Create(&ledger.Entry{
		Kind:       kind,
		Amount:     decimal.NewFromInt(amount),
		Category:   category,
		OccurredAt: occurred,
	}))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSummarize_DerivesBalanceFromEntries(t *testing.T) {
	repo := newTestRepo(t)

	seedEntry(t, repo, ledger.KindIncome, 5000, "Vendas", day(2025, time.March, 3))
	seedEntry(t, repo, ledger.KindIncome, 2500, "Vendas", day(2025, time.March, 9))
	seedEntry(t, repo, ledger.KindExpense, 1000, ledger.CategoryCommission, day(2025, time.March, 16))
	seedEntry(t, repo, ledger.KindExpense, 300, "Escritório", day(2025, time.March, 20))

	s, err := repo.Summarize()
	require.NoError(t, err)
	assert.True(t, s.TotalIncome.Equal(decimal.NewFromInt(7500)))
	assert.True(t, s.TotalExpense.Equal(decimal.NewFromInt(1300)))
	assert.True(t, s.AvailableBalance.Equal(s.TotalIncome.Sub(s.TotalExpense)))
}

func TestSummarize_EmptyLedgerIsZero(t *testing.T) {
	repo := newTestRepo(t)

	s, err := repo.Summarize()
	require.NoError(t, err)
	assert.True(t, s.TotalIncome.IsZero())
	assert.True(t, s.TotalExpense.IsZero())
	assert.True(t, s.AvailableBalance.IsZero())
}

// Função pura do conteúdo do livro: resomar sempre reproduz os totais.
func TestSummarize_Stable(t *testing.T) {
	repo := newTestRepo(t)

	seedEntry(t, repo, ledger.KindIncome, 1200, "Vendas", day(2025, time.May, 2))
	seedEntry(t, repo, ledger.KindExpense, 450, "Escritório", day(2025, time.May, 5))

	first, err := repo.Summarize()
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := repo.Summarize()
		require.NoError(t, err)
		assert.True(t, first.TotalIncome.Equal(again.TotalIncome))
		assert.True(t, first.TotalExpense.Equal(again.TotalExpense))
		assert.True(t, first.AvailableBalance.Equal(again.AvailableBalance))
	}
}

func TestSumByCategory(t *testing.T) {
	repo := newTestRepo(t)

	seedEntry(t, repo, ledger.KindExpense, 1000, ledger.CategoryCommission, day(2025, time.March, 16))
	seedEntry(t, repo, ledger.KindExpense, 500, ledger.CategoryCommission, day(2025, time.April, 1))
	seedEntry(t, repo, ledger.KindExpense, 300, "Escritório", day(2025, time.March, 20))
	seedEntry(t, repo, ledger.KindIncome, 9000, "Vendas", day(2025, time.March, 1))

	totals, err := repo.SumByCategory(ledger.KindExpense)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	byName := map[string]decimal.Decimal{}
	for _, ct := range totals {
		byName[ct.Category] = ct.Total
	}
	assert.True(t, byName[ledger.CategoryCommission].Equal(decimal.NewFromInt(1500)))
	assert.True(t, byName["Escritório"].Equal(decimal.NewFromInt(300)))
}

func TestSumByMonth(t *testing.T) {
	repo := newTestRepo(t)

	seedEntry(t, repo, ledger.KindIncome, 5000, "Vendas", day(2025, time.March, 3))
	seedEntry(t, repo, ledger.KindExpense, 1000, ledger.CategoryCommission, day(2025, time.March, 16))
	seedEntry(t, repo, ledger.KindExpense, 500, ledger.CategoryCommission, day(2025, time.April, 1))

	totals, err := repo.SumByMonth()
	require.NoError(t, err)
	require.Len(t, totals, 2)

	assert.Equal(t, "2025-03", totals[0].Month)
	assert.True(t, totals[0].Income.Equal(decimal.NewFromInt(5000)))
	assert.True(t, totals[0].Expense.Equal(decimal.NewFromInt(1000)))

	assert.Equal(t, "2025-04", totals[1].Month)
	assert.True(t, totals[1].Income.IsZero())
	assert.True(t, totals[1].Expense.Equal(decimal.NewFromInt(500)))
}

func TestExistsByReference(t *testing.T) {
	repo := newTestRepo(t)

	ref := uint(42)
	require.NoError(t, repo.Create(&ledger.Entry{
		Kind:        ledger.KindExpense,
		Amount:      decimal.NewFromInt(1000),
		Category:    ledger.CategoryCommission,
		ReferenceID: &ref,
		OccurredAt:  day(2025, time.March, 16),
	}))

	ok, err := repo.ExistsByReference(nil, 42)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ExistsByReference(nil, 43)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUniqueReference_SecondPostingRejected(t *testing.T) {
	repo := newTestRepo(t)

	ref := uint(7)
	first := &ledger.Entry{
		Kind: ledger.KindExpense, Amount: decimal.NewFromInt(100),
		Category: ledger.CategoryCommission, ReferenceID: &ref,
		OccurredAt: day(2025, time.March, 16),
	}
	require.NoError(t, repo.Create(first))

	dup := &ledger.Entry{
		Kind: ledger.KindExpense, Amount: decimal.NewFromInt(100),
		Category: ledger.CategoryCommission, ReferenceID: &ref,
		OccurredAt: day(2025, time.March, 17),
	}
	assert.Error(t, repo.Create(dup), "índice único em reference_id bloqueia o segundo lançamento")
}
