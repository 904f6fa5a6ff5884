// internal/commission/schedule.go
package commission

import "time"

// PayoutDueDate aplica a regra de corte quinzenal da folha:
//   - criada até o dia 14 → vence no dia 15 do mesmo mês;
//   - criada do dia 15 em diante → vence no dia 1º do mês seguinte.
//
// time.Date normaliza mês 13 para janeiro do ano seguinte, então a virada
// de dezembro e os tamanhos de mês não precisam de caso especial.
func PayoutDueDate(ref time.Time) time.Time {
	if ref.Day() <= 14 {
		return time.Date(ref.Year(), ref.Month(), 15, 0, 0, 0, 0, ref.Location())
	}
	return time.Date(ref.Year(), ref.Month()+1, 1, 0, 0, 0, 0, ref.Location())
}
