// internal/payout/webhook.go
package payout

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// NotifyRunSummary envia o resumo de uma rodada para o webhook configurado.
// Melhor esforço: falha só gera log, nunca afeta a rodada.
func NotifyRunSummary(url string, s *Summary, log *logrus.Logger) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	body, err := json.Marshal(s)
	if err != nil {
		log.WithError(err).Error("erro ao serializar resumo da rodada")
		return
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.WithField("runId", s.RunID).WithError(err).Error("erro ao enviar webhook da rodada")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.WithFields(logrus.Fields{
			"runId":  s.RunID,
			"status": resp.StatusCode,
		}).Warn("webhook da rodada respondeu com erro")
	}
}
