// Package agenda transforma a lista crua de agendamentos nas visões de
// calendário: ordenação, agrupamento por dia, partição próximos/histórico
// e contagem por célula do calendário. Todas as funções são puras e
// recomputadas a cada leitura; "agora" é sempre um parâmetro.
package agenda

import (
	"sort"
	"time"

	"github.com/studiotrim/agenda-api/internal/models"
)

// DayGroup é o bloco de um dia-calendário na visão agrupada.
type DayGroup struct {
	Day          time.Time            `json:"day"`
	Appointments []models.Appointment `json:"appointments"`
}

// dayOf trunca o instante para a meia-noite do dia-calendário no fuso dado.
func dayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// SortByStart devolve uma cópia ordenada por instante de início,
// crescente e estável. A ordenação é sobre o time.Time, nunca sobre
// rótulos formatados.
func SortByStart(aps []models.Appointment) []models.Appointment {
	out := make([]models.Appointment, len(aps))
	copy(out, aps)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

// GroupByDay particiona os agendamentos por dia-calendário. Dentro de
// cada grupo vale a ordem de SortByStart; os grupos aparecem na ordem
// em que cada dia surge na lista ordenada.
func GroupByDay(aps []models.Appointment, loc *time.Location) []DayGroup {
	sorted := SortByStart(aps)

	index := make(map[time.Time]int)
	var groups []DayGroup

	for _, ap := range sorted {
		day := dayOf(ap.StartTime, loc)
		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			groups = append(groups, DayGroup{Day: day})
		}
		groups[i].Appointments = append(groups[i].Appointments, ap)
	}

	return groups
}

// Partition separa próximos de passados.
//
// Sem dia selecionado, próximo = início estritamente depois de "agora".
// Com um dia selecionado a seleção prevalece: todos os agendamentos
// daquele dia entram em próximos, passados ou não. O histórico é sempre
// temporal (início não depois de "agora"), independente da seleção.
func Partition(aps []models.Appointment, now time.Time, selected *time.Time, loc *time.Location) (upcoming, past []models.Appointment) {
	sorted := SortByStart(aps)

	var selDay time.Time
	if selected != nil {
		selDay = dayOf(*selected, loc)
	}

	for _, ap := range sorted {
		if selected != nil {
			if dayOf(ap.StartTime, loc).Equal(selDay) {
				upcoming = append(upcoming, ap)
			}
		} else if ap.StartTime.After(now) {
			upcoming = append(upcoming, ap)
		}

		if !ap.StartTime.After(now) {
			past = append(past, ap)
		}
	}

	return upcoming, past
}

// CountOn conta agendamentos do dia-calendário dado (igualdade de data,
// não comparação de instante). Alimenta o selo das células do calendário.
func CountOn(aps []models.Appointment, day time.Time, loc *time.Location) int {
	target := dayOf(day, loc)

	n := 0
	for _, ap := range aps {
		if dayOf(ap.StartTime, loc).Equal(target) {
			n++
		}
	}
	return n
}

// CalendarCounts retorna o total por dia-do-mês para o mês dado,
// omitindo dias sem agendamentos.
func CalendarCounts(aps []models.Appointment, year int, month time.Month, loc *time.Location) map[int]int {
	counts := make(map[int]int)

	for _, ap := range aps {
		t := ap.StartTime.In(loc)
		if t.Year() == year && t.Month() == month {
			counts[t.Day()]++
		}
	}
	return counts
}

// RemoveByID devolve a lista sem o agendamento de id dado, preservando
// a ordem relativa dos demais.
func RemoveByID(aps []models.Appointment, id uint) []models.Appointment {
	out := make([]models.Appointment, 0, len(aps))
	for _, ap := range aps {
		if ap.ID != id {
			out = append(out, ap)
		}
	}
	return out
}
