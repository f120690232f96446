package stats

import (
	"testing"
	"time"

	"github.com/studiotrim/agenda-api/internal/models"
	"github.com/studiotrim/agenda-api/internal/money"
)

var spLoc = func() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		panic(err)
	}
	return loc
}()

func ap(clientID uint, start time.Time, cents money.Amount) models.Appointment {
	return models.Appointment{
		ClientID:   clientID,
		StartTime:  start,
		EndTime:    start.Add(30 * time.Minute),
		PriceCents: cents,
		Status:     "scheduled",
	}
}

func day(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, spLoc)
}

func TestParsePeriod(t *testing.T) {
	for _, ok := range []string{"day", "week", "month"} {
		if _, err := ParsePeriod(ok); err != nil {
			t.Errorf("ParsePeriod(%q): %v", ok, err)
		}
	}
	if _, err := ParsePeriod("year"); err == nil {
		t.Error("ParsePeriod(year) deveria falhar")
	}
}

func TestRangeDay(t *testing.T) {
	now := day(2024, time.March, 20, 15)
	start, end := Range(PeriodDay, now, spLoc)

	if !start.Equal(day(2024, time.March, 20, 0)) {
		t.Errorf("início = %s", start)
	}
	if !end.Equal(day(2024, time.March, 21, 0)) {
		t.Errorf("fim = %s", end)
	}
}

func TestRangeWeekStartsSunday(t *testing.T) {
	// 2024-03-20 é quarta-feira; a semana começa em 2024-03-17 (domingo)
	now := day(2024, time.March, 20, 15)
	start, end := Range(PeriodWeek, now, spLoc)

	if start.Weekday() != time.Sunday || start.Day() != 17 {
		t.Errorf("início da semana = %s", start)
	}
	if !end.Equal(start.AddDate(0, 0, 7)) {
		t.Errorf("fim da semana = %s", end)
	}
}

func TestRangeMonth(t *testing.T) {
	now := day(2024, time.March, 20, 15)
	start, end := Range(PeriodMonth, now, spLoc)

	if start.Day() != 1 || start.Month() != time.March {
		t.Errorf("início do mês = %s", start)
	}
	if end.Month() != time.April || end.Day() != 1 {
		t.Errorf("fim do mês = %s", end)
	}
}

func TestSummarizeDayFilter(t *testing.T) {
	aps := []models.Appointment{
		ap(1, day(2024, time.March, 20, 14), 5000),
		ap(2, day(2024, time.March, 21, 10), 3000),
	}

	s := Summarize(aps, PeriodDay, day(2024, time.March, 20, 12), spLoc)
	if s.Appointments != 1 {
		t.Errorf("agendamentos = %d, esperado 1", s.Appointments)
	}
	if s.TotalCents != 5000 {
		t.Errorf("total = %d, esperado 5000", s.TotalCents)
	}
	if s.TotalLabel != "R$ 50,00" {
		t.Errorf("rótulo = %q", s.TotalLabel)
	}
}

func TestSummarizeDistinctClients(t *testing.T) {
	now := day(2024, time.March, 20, 12)
	aps := []models.Appointment{
		ap(1, day(2024, time.March, 20, 9), 5000),
		ap(1, day(2024, time.March, 20, 10), 5000),
		ap(2, day(2024, time.March, 20, 11), 3000),
		ap(3, day(2024, time.March, 20, 14), 7000),
	}

	s := Summarize(aps, PeriodDay, now, spLoc)
	if s.DistinctClients != 3 {
		t.Errorf("clientes distintos = %d, esperado 3", s.DistinctClients)
	}
	if s.Appointments != 4 {
		t.Errorf("agendamentos = %d, esperado 4", s.Appointments)
	}
}

func TestSummarizeExcludesCancelled(t *testing.T) {
	now := day(2024, time.March, 20, 12)
	cancelled := ap(2, day(2024, time.March, 20, 10), 9900)
	cancelled.Status = "cancelled"

	aps := []models.Appointment{
		ap(1, day(2024, time.March, 20, 9), 5000),
		cancelled,
	}

	s := Summarize(aps, PeriodDay, now, spLoc)
	if s.TotalCents != 5000 || s.Appointments != 1 || s.DistinctClients != 1 {
		t.Errorf("resumo com cancelado: %+v", s)
	}
}

func TestSummarizeWeekInclusive(t *testing.T) {
	now := day(2024, time.March, 20, 12) // semana 17–23 de março
	aps := []models.Appointment{
		ap(1, day(2024, time.March, 17, 9), 1000),  // domingo, dentro
		ap(2, day(2024, time.March, 23, 23), 2000), // sábado, dentro
		ap(3, day(2024, time.March, 24, 0), 4000),  // domingo seguinte, fora
		ap(4, day(2024, time.March, 16, 23), 8000), // sábado anterior, fora
	}

	s := Summarize(aps, PeriodWeek, now, spLoc)
	if s.TotalCents != 3000 || s.Appointments != 2 {
		t.Errorf("resumo da semana: %+v", s)
	}
}

func TestRevenueSeriesIgnoresPeriodAndSortsByDay(t *testing.T) {
	aps := []models.Appointment{
		ap(1, day(2024, time.December, 30, 10), 5000),
		ap(2, day(2025, time.January, 2, 10), 3000),
		ap(3, day(2024, time.December, 30, 15), 2000),
	}

	points := RevenueSeries(aps, spLoc)
	if len(points) != 2 {
		t.Fatalf("%d pontos, esperado 2", len(points))
	}

	// 30/12 vem antes de 02/01: ordenação pelo dia, não pelo rótulo
	if points[0].Label != "30/12" || points[1].Label != "02/01" {
		t.Errorf("rótulos = %q, %q", points[0].Label, points[1].Label)
	}
	if points[0].Cents != 7000 {
		t.Errorf("soma de 30/12 = %d, esperado 7000", points[0].Cents)
	}
	if points[1].Cents != 3000 {
		t.Errorf("soma de 02/01 = %d, esperado 3000", points[1].Cents)
	}
}
