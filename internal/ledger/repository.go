// internal/ledger/repository.go
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados do livro-caixa.
// Não existem métodos Update/Delete: o livro é append-only.
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

/* ============================== Escrita ============================== */

// Create insere um novo lançamento.
func (r *Repository) Create(entry *Entry) error {
	return r.DB.Create(entry).Error
}

/* ============================== Leitura ============================== */

// FindByID busca um único lançamento pelo seu ID.
func (r *Repository) FindByID(id uint) (*Entry, error) {
	var entry Entry
	if err := r.DB.First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListFilter restringe a listagem de lançamentos.
type ListFilter struct {
	Kind     Kind
	Category string
	From     *time.Time
	To       *time.Time
}

// List retorna lançamentos em ordem cronológica, com filtro opcional.
func (r *Repository) List(f ListFilter) ([]Entry, error) {
	q := r.DB.Model(&Entry{})
	if f.Kind != "" {
		q = q.Where("kind = ?", f.Kind)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.From != nil {
		q = q.Where("occurred_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("occurred_at <= ?", *f.To)
	}
	var entries []Entry
	err := q.Order("occurred_at ASC").Find(&entries).Error
	return entries, err
}

// ExistsByReference verifica se já existe lançamento para a comissão informada.
// Se db == nil, usa r.DB. Permite usar dentro de transação.
func (r *Repository) ExistsByReference(db *gorm.DB, referenceID uint) (bool, error) {
	if db == nil {
		db = r.DB
	}
	var count int64
	err := db.Model(&Entry{}).
		Where("reference_id = ?", referenceID).
		Count(&count).Error
	return count > 0, err
}

/* ======================== Agregações derivadas ======================== */

// Summary são os totais derivados do livro. Nunca são armazenados:
// cada chamada resoma todos os lançamentos.
type Summary struct {
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	AvailableBalance decimal.Decimal `json:"availableBalance"`
}

func (r *Repository) sumByKind(kind Kind) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.DB.Model(&Entry{}).
		Where("kind = ?", kind).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// Summarize soma o livro inteiro por tipo e deriva o saldo disponível.
func (r *Repository) Summarize() (*Summary, error) {
	income, err := r.sumByKind(KindIncome)
	if err != nil {
		return nil, err
	}
	expense, err := r.sumByKind(KindExpense)
	if err != nil {
		return nil, err
	}
	return &Summary{
		TotalIncome:      income,
		TotalExpense:     expense,
		AvailableBalance: income.Sub(expense),
	}, nil
}

// CategoryTotal é o total somado de uma categoria.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// SumByCategory agrupa lançamentos de um tipo por categoria.
func (r *Repository) SumByCategory(kind Kind) ([]CategoryTotal, error) {
	var totals []CategoryTotal
	err := r.DB.Model(&Entry{}).
		Where("kind = ?", kind).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Group("category").
		Order("category ASC").
		Scan(&totals).Error
	return totals, err
}

// MonthTotal é o total de um mês no formato "2006-01".
type MonthTotal struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// SumByMonth agrupa o livro inteiro por mês. Agrupamento feito em memória
// para não depender de função de data específica do banco.
func (r *Repository) SumByMonth() ([]MonthTotal, error) {
	entries, err := r.List(ListFilter{})
	if err != nil {
		return nil, err
	}
	byMonth := map[string]*MonthTotal{}
	var order []string
	for _, e := range entries {
		key := e.OccurredAt.Format("2006-01")
		mt, ok := byMonth[key]
		if !ok {
			mt = &MonthTotal{Month: key, Income: decimal.Zero, Expense: decimal.Zero}
			byMonth[key] = mt
			order = append(order, key)
		}
		switch e.Kind {
		case KindIncome:
			mt.Income = mt.Income.Add(e.Amount)
		case KindExpense:
			mt.Expense = mt.Expense.Add(e.Amount)
		}
	}
	totals := make([]MonthTotal, 0, len(order))
	for _, key := range order {
		totals = append(totals, *byMonth[key])
	}
	return totals, nil
}
