// internal/payout/executor.go
package payout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/salesdesk/payroll-engine/internal/commission"
	"github.com/salesdesk/payroll-engine/internal/ledger"
)

// Executor efetua o pagamento de comissões: grava a despesa no
// livro-caixa e flipa a comissão para "paid" na mesma transação.
//
// A garantia central é no-máximo-um lançamento por comissão, mesmo com
// rodadas concorrentes: o UPDATE condicional de status decide quem paga,
// e o índice único em reference_id é a trava de fundo no banco.
type Executor struct {
	DB          *gorm.DB
	Commissions *commission.Repository
	Ledger      *ledger.Repository
	Log         *logrus.Logger
	// WebhookURL opcional: recebe o resumo de cada rodada.
	WebhookURL string
}

func NewExecutor(db *gorm.DB, commissions *commission.Repository, entries *ledger.Repository, log *logrus.Logger) *Executor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Executor{DB: db, Commissions: commissions, Ledger: entries, Log: log}
}

/* ========================= Pagamento individual ========================= */

// PayOne paga uma comissão específica.
// Erros: gorm.ErrRecordNotFound, ErrNotApproved, ErrAlreadyPaid.
func (e *Executor) PayOne(ctx context.Context, id uint, now time.Time) (*commission.Commission, error) {
	rec, err := e.Commissions.WithDB(e.DB.WithContext(ctx)).FindByID(id)
	if err != nil {
		return nil, err
	}
	if rec.Status == commission.StatusPaid {
		return nil, ErrAlreadyPaid
	}
	if !rec.Approved {
		return nil, ErrNotApproved
	}

	if err := e.payTx(ctx, rec, now); err != nil {
		return nil, err
	}
	return e.Commissions.FindByID(id)
}

// payTx é a unidade atômica: UPDATE condicional do status + INSERT no livro.
// O UPDATE roda primeiro; se nenhuma linha foi afetada, outra execução já
// pagou (ou a precondição mudou) e nada é inserido.
func (e *Executor) payTx(ctx context.Context, rec *commission.Commission, now time.Time) error {
	return e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := e.Commissions.MarkPaid(tx, rec.ID, now)
		if err != nil {
			return err
		}
		if rows == 0 {
			// Corrida perdida ou precondição violada; reclassifica relendo.
			cur, err := e.Commissions.WithDB(tx).FindByID(rec.ID)
			if err != nil {
				return err
			}
			if cur.Status == commission.StatusPaid {
				return ErrAlreadyPaid
			}
			return ErrNotApproved
		}

		refID := rec.ID
		entry := &ledger.Entry{
			Kind:        ledger.KindExpense,
			Amount:      rec.Amount,
			Description: fmt.Sprintf("Comissão #%d — %s", rec.ID, rec.EmployeeName),
			Category:    ledger.CategoryCommission,
			ReferenceID: &refID,
			OccurredAt:  now,
		}
		if err := e.Ledger.WithDB(tx).Create(entry); err != nil {
			// Índice único em reference_id: lançamento já existe.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyPaid
			}
			return err
		}
		return nil
	})
}

/* ============================ Rodada em lote ============================ */

// RecordError identifica uma comissão que falhou dentro da rodada.
type RecordError struct {
	CommissionID uint   `json:"commissionId"`
	Error        string `json:"error"`
}

// Summary é o resultado de uma rodada de pagamento em lote.
type Summary struct {
	RunID     string        `json:"runId"`
	AsOf      time.Time     `json:"asOf"`
	Processed int           `json:"processed"`
	Paid      int           `json:"paid"`
	Skipped   int           `json:"skipped"`
	Failed    int           `json:"failed"`
	Canceled  bool          `json:"canceled,omitempty"`
	Errors    []RecordError `json:"errors,omitempty"`
}

// RunBatch paga todas as comissões aprovadas, não pagas e vencidas até now.
// now é fixado uma vez para a rodada inteira. Cada registro é independente:
// falha em um não aborta os demais. Registros pagos por uma execução
// concorrente são contados como skipped, nunca repagos.
//
// Cancelamento via ctx para a rodada entre registros; o que já foi pago
// permanece pago e o resumo reflete o parcial.
func (e *Executor) RunBatch(ctx context.Context, now time.Time) (*Summary, error) {
	summary := &Summary{
		RunID: uuid.NewString(),
		AsOf:  now,
	}
	log := e.Log.WithFields(logrus.Fields{
		"runId": summary.RunID,
		"asOf":  now.Format("2006-01-02"),
	})

	candidates, err := e.Commissions.WithDB(e.DB.WithContext(ctx)).FindPayable(now)
	if err != nil {
		return nil, err
	}
	log.WithField("candidates", len(candidates)).Info("rodada de pagamento iniciada")

	for i := range candidates {
		if ctx.Err() != nil {
			summary.Canceled = true
			log.WithField("processed", summary.Processed).Warn("rodada cancelada pelo chamador")
			break
		}
		rec := &candidates[i]
		summary.Processed++

		switch err := e.payTx(ctx, rec, now); {
		case err == nil:
			summary.Paid++
		case errors.Is(err, ErrAlreadyPaid), errors.Is(err, ErrNotApproved):
			// Outra execução chegou primeiro ou o registro mudou; pula.
			summary.Skipped++
		default:
			summary.Failed++
			summary.Errors = append(summary.Errors, RecordError{
				CommissionID: rec.ID,
				Error:        err.Error(),
			})
			log.WithField("commissionId", rec.ID).WithError(err).Error("falha ao pagar comissão")
		}
	}

	log.WithFields(logrus.Fields{
		"processed": summary.Processed,
		"paid":      summary.Paid,
		"skipped":   summary.Skipped,
		"failed":    summary.Failed,
	}).Info("rodada de pagamento concluída")

	if e.WebhookURL != "" {
		go NotifyRunSummary(e.WebhookURL, summary, e.Log)
	}
	return summary, nil
}
