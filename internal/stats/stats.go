// Package stats calcula os números do painel financeiro: métricas do
// período selecionado (dia, semana, mês) e a série temporal de receita.
// Cálculo puro, recomputado a cada leitura.
package stats

import (
	"fmt"
	"sort"
	"time"

	domain "github.com/studiotrim/agenda-api/internal/domain/appointment"
	"github.com/studiotrim/agenda-api/internal/models"
	"github.com/studiotrim/agenda-api/internal/money"
)

// Period é o seletor do painel.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return Period(s), nil
	}
	return "", fmt.Errorf("período inválido: %q", s)
}

// Summary são as métricas de cabeçalho do período.
type Summary struct {
	Period          Period       `json:"period"`
	DistinctClients int          `json:"distinct_clients"`
	Appointments    int          `json:"appointments"`
	TotalCents      money.Amount `json:"total_cents"`
	TotalLabel      string       `json:"total_label"`
}

// Point é um ponto da série de receita: um dia-calendário e a soma dos
// valores daquele dia. Label é "DD/MM", só para exibição; a ordenação é
// sempre pelo instante Day.
type Point struct {
	Day   time.Time    `json:"day"`
	Label string       `json:"label"`
	Cents money.Amount `json:"cents"`
}

// Range devolve o intervalo [start, end) do período em torno de "now".
// A semana começa no domingo (convenção pt-BR).
func Range(p Period, now time.Time, loc *time.Location) (start, end time.Time) {
	t := now.In(loc)
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, loc)

	switch p {
	case PeriodDay:
		return midnight, midnight.AddDate(0, 0, 1)
	case PeriodWeek:
		start = midnight.AddDate(0, 0, -int(midnight.Weekday()))
		return start, start.AddDate(0, 0, 7)
	case PeriodMonth:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0)
	}

	return midnight, midnight.AddDate(0, 0, 1)
}

// inRange testa início em [start, end).
func inRange(ap models.Appointment, start, end time.Time) bool {
	return !ap.StartTime.Before(start) && ap.StartTime.Before(end)
}

// countsTowardRevenue exclui cancelados das somas; agendados e
// concluídos contam.
func countsTowardRevenue(ap models.Appointment) bool {
	return ap.Status != string(domain.StatusCancelled)
}

// Summarize filtra os agendamentos para o período e computa clientes
// distintos, total de agendamentos e valor somado.
func Summarize(aps []models.Appointment, p Period, now time.Time, loc *time.Location) Summary {
	start, end := Range(p, now, loc)

	clients := make(map[uint]struct{})
	var count int
	var total money.Amount

	for _, ap := range aps {
		if !inRange(ap, start, end) || !countsTowardRevenue(ap) {
			continue
		}
		clients[ap.ClientID] = struct{}{}
		count++
		total += ap.PriceCents
	}

	return Summary{
		Period:          p,
		DistinctClients: len(clients),
		Appointments:    count,
		TotalCents:      total,
		TotalLabel:      total.FormatBRL(),
	}
}

// RevenueSeries agrupa TODOS os agendamentos por dia-calendário e soma
// os valores de cada dia. A saída vem ordenada pelo instante do dia,
// nunca pelo rótulo "DD/MM", que quebraria na virada do ano.
func RevenueSeries(aps []models.Appointment, loc *time.Location) []Point {
	totals := make(map[time.Time]money.Amount)

	for _, ap := range aps {
		if !countsTowardRevenue(ap) {
			continue
		}
		y, m, d := ap.StartTime.In(loc).Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, loc)
		totals[day] += ap.PriceCents
	}

	points := make([]Point, 0, len(totals))
	for day, cents := range totals {
		points = append(points, Point{
			Day:   day,
			Label: day.Format("02/01"),
			Cents: cents,
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Day.Before(points[j].Day)
	})

	return points
}
