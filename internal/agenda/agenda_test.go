package agenda

import (
	"testing"
	"time"

	"github.com/studiotrim/agenda-api/internal/models"
)

var spLoc = func() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		panic(err)
	}
	return loc
}()

func at(day, hour, min int) time.Time {
	return time.Date(2024, 3, day, hour, min, 0, 0, spLoc)
}

func ap(id uint, start time.Time) models.Appointment {
	return models.Appointment{
		ID:        id,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Status:    "scheduled",
	}
}

func ids(aps []models.Appointment) []uint {
	out := make([]uint, len(aps))
	for i, a := range aps {
		out[i] = a.ID
	}
	return out
}

func TestSortByStart(t *testing.T) {
	in := []models.Appointment{
		ap(1, at(20, 9, 0)),
		ap(2, at(20, 8, 0)),
		ap(3, at(19, 23, 0)),
	}

	got := SortByStart(in)

	want := []uint{3, 2, 1}
	for i, id := range ids(got) {
		if id != want[i] {
			t.Fatalf("ordem = %v, esperado %v", ids(got), want)
		}
	}

	// entrada intacta
	if in[0].ID != 1 {
		t.Error("SortByStart mutou a entrada")
	}
}

func TestSortByStartStable(t *testing.T) {
	same := at(20, 14, 30)
	in := []models.Appointment{ap(1, same), ap(2, same), ap(3, same)}

	got := SortByStart(in)
	for i, id := range ids(got) {
		if id != uint(i+1) {
			t.Fatalf("empate reordenado: %v", ids(got))
		}
	}
}

func TestGroupByDayIsPartition(t *testing.T) {
	in := []models.Appointment{
		ap(1, at(20, 14, 30)),
		ap(2, at(21, 10, 0)),
		ap(3, at(20, 15, 30)),
		ap(4, at(19, 9, 0)),
	}

	groups := GroupByDay(in, spLoc)

	if len(groups) != 3 {
		t.Fatalf("%d grupos, esperado 3", len(groups))
	}

	// dias na ordem crescente (primeira ocorrência na lista ordenada)
	wantDays := []int{19, 20, 21}
	total := 0
	seen := map[uint]bool{}
	for i, g := range groups {
		if g.Day.Day() != wantDays[i] {
			t.Errorf("grupo %d: dia %d, esperado %d", i, g.Day.Day(), wantDays[i])
		}
		for _, a := range g.Appointments {
			if seen[a.ID] {
				t.Errorf("agendamento %d duplicado entre grupos", a.ID)
			}
			seen[a.ID] = true
			total++
		}
	}
	if total != len(in) {
		t.Errorf("união dos grupos tem %d agendamentos, esperado %d", total, len(in))
	}

	// dentro do dia 20, ordem por horário
	day20 := groups[1].Appointments
	if day20[0].ID != 1 || day20[1].ID != 3 {
		t.Errorf("ordem no dia 20: %v", ids(day20))
	}
}

func TestPartitionByClock(t *testing.T) {
	in := []models.Appointment{
		ap(1, at(20, 14, 30)),
		ap(2, at(20, 15, 30)),
	}

	// antes dos dois: ambos próximos, em ordem de horário
	up, past := Partition(in, at(20, 12, 0), nil, spLoc)
	if len(up) != 2 || len(past) != 0 {
		t.Fatalf("antes: próximos=%v passados=%v", ids(up), ids(past))
	}
	if up[0].ID != 1 || up[1].ID != 2 {
		t.Errorf("ordem dos próximos: %v", ids(up))
	}

	// entre os dois: o primeiro vira histórico
	up, past = Partition(in, at(20, 15, 0), nil, spLoc)
	if len(up) != 1 || up[0].ID != 2 {
		t.Errorf("entre: próximos=%v", ids(up))
	}
	if len(past) != 1 || past[0].ID != 1 {
		t.Errorf("entre: passados=%v", ids(past))
	}

	// exatamente no horário do primeiro: "não depois de agora" é passado
	up, past = Partition(in, at(20, 14, 30), nil, spLoc)
	if len(up) != 1 || len(past) != 1 {
		t.Errorf("no instante: próximos=%v passados=%v", ids(up), ids(past))
	}
}

func TestPartitionSelectedDayOverridesClock(t *testing.T) {
	in := []models.Appointment{
		ap(1, at(20, 14, 30)),
		ap(2, at(20, 15, 30)),
		ap(3, at(21, 10, 0)),
	}

	sel := at(20, 0, 0)
	now := at(20, 15, 0) // primeiro já passou

	up, past := Partition(in, now, &sel, spLoc)

	// seleção mostra o dia inteiro, inclusive o que já passou
	if len(up) != 2 || up[0].ID != 1 || up[1].ID != 2 {
		t.Errorf("com seleção: próximos=%v", ids(up))
	}
	// histórico continua temporal, ignorando a seleção
	if len(past) != 1 || past[0].ID != 1 {
		t.Errorf("com seleção: passados=%v", ids(past))
	}
}

func TestCountOn(t *testing.T) {
	in := []models.Appointment{
		ap(1, at(20, 14, 30)),
		ap(2, at(20, 8, 0)),
		ap(3, at(21, 10, 0)),
	}

	if got := CountOn(in, at(20, 23, 59), spLoc); got != 2 {
		t.Errorf("dia 20: %d, esperado 2", got)
	}
	if got := CountOn(in, at(22, 0, 0), spLoc); got != 0 {
		t.Errorf("dia 22: %d, esperado 0", got)
	}
}

func TestCalendarCounts(t *testing.T) {
	in := []models.Appointment{
		ap(1, at(20, 14, 30)),
		ap(2, at(20, 15, 30)),
		ap(3, at(21, 10, 0)),
		ap(4, time.Date(2024, 4, 1, 9, 0, 0, 0, spLoc)),
	}

	counts := CalendarCounts(in, 2024, time.March, spLoc)
	if counts[20] != 2 || counts[21] != 1 {
		t.Errorf("counts = %v", counts)
	}
	if _, ok := counts[1]; ok {
		t.Error("abril vazou para março")
	}
}

func TestRemoveByID(t *testing.T) {
	in := []models.Appointment{
		ap(1, at(20, 9, 0)),
		ap(2, at(20, 10, 0)),
		ap(3, at(20, 11, 0)),
	}

	got := RemoveByID(in, 2)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("após remoção: %v", ids(got))
	}

	// id inexistente: lista igual
	got = RemoveByID(in, 99)
	if len(got) != 3 {
		t.Errorf("remoção de id ausente alterou a lista: %v", ids(got))
	}
}
