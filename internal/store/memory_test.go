package store

import (
	"context"
	"testing"
	"time"

	"github.com/studiotrim/agenda-api/internal/models"
)

func mustLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatal(err)
	}
	return loc
}

func TestCreateClientIDsMonotonic(t *testing.T) {
	m := NewMemory()

	var last uint
	for i := 0; i < 5; i++ {
		c := m.CreateClient("Cliente", "", "")
		if c.ID <= last {
			t.Fatalf("id %d não é estritamente crescente após %d", c.ID, last)
		}
		last = c.ID
	}
}

func TestIDsNotReusedAfterDelete(t *testing.T) {
	m := NewMemory()
	loc := mustLoc(t)

	a := m.AddAppointment(models.Appointment{StartTime: time.Date(2024, 3, 20, 14, 30, 0, 0, loc)})
	b := m.AddAppointment(models.Appointment{StartTime: time.Date(2024, 3, 20, 15, 30, 0, 0, loc)})

	if !m.RemoveAppointment(a.ID) {
		t.Fatal("remoção do primeiro agendamento falhou")
	}

	c := m.AddAppointment(models.Appointment{StartTime: time.Date(2024, 3, 21, 10, 0, 0, 0, loc)})
	if c.ID == a.ID || c.ID == b.ID {
		t.Fatalf("id %d reutilizado após remoção", c.ID)
	}
	if c.ID <= b.ID {
		t.Fatalf("id %d deveria ser maior que %d", c.ID, b.ID)
	}
}

func TestRemoveAppointmentKeepsOrder(t *testing.T) {
	m := NewMemory()
	loc := mustLoc(t)

	var ids []uint
	for h := 9; h < 14; h++ {
		ap := m.AddAppointment(models.Appointment{StartTime: time.Date(2024, 3, 20, h, 0, 0, 0, loc)})
		ids = append(ids, ap.ID)
	}

	if !m.RemoveAppointment(ids[2]) {
		t.Fatal("remoção falhou")
	}
	if m.RemoveAppointment(ids[2]) {
		t.Fatal("segunda remoção do mesmo id deveria falhar")
	}

	got := m.Appointments()
	want := []uint{ids[0], ids[1], ids[3], ids[4]}
	if len(got) != len(want) {
		t.Fatalf("restaram %d agendamentos, esperado %d", len(got), len(want))
	}
	for i, ap := range got {
		if ap.ID != want[i] {
			t.Errorf("posição %d: id %d, esperado %d", i, ap.ID, want[i])
		}
	}
}

func TestAppointmentsOnFiltersByCalendarDay(t *testing.T) {
	m := NewMemory()
	loc := mustLoc(t)

	m.AddAppointment(models.Appointment{StartTime: time.Date(2024, 3, 20, 14, 30, 0, 0, loc)})
	m.AddAppointment(models.Appointment{StartTime: time.Date(2024, 3, 21, 10, 0, 0, 0, loc)})
	m.AddAppointment(models.Appointment{StartTime: time.Date(2024, 3, 20, 8, 0, 0, 0, loc)})

	day := time.Date(2024, 3, 20, 0, 0, 0, 0, loc)
	got := m.AppointmentsOn(day)
	if len(got) != 2 {
		t.Fatalf("retornou %d agendamentos, esperado 2", len(got))
	}
	// ordem relativa original, não ordenada por horário
	if got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("ordem relativa alterada: %d, %d", got[0].ID, got[1].ID)
	}
}

func TestClientLookupAbsent(t *testing.T) {
	m := NewMemory()
	m.CreateClient("Maria Silva", "(11) 99999-9999", "maria@email.com")

	if _, ok := m.Client(99); ok {
		t.Error("lookup de id inexistente deveria reportar ausência")
	}
	if c, ok := m.Client(1); !ok || c.Name != "Maria Silva" {
		t.Errorf("lookup do id 1 retornou (%v, %v)", c, ok)
	}
}

func TestListsAreDefensiveCopies(t *testing.T) {
	m := NewMemory()
	m.CreateClient("Maria Silva", "", "")

	clients := m.Clients()
	clients[0].Name = "alterado"

	again := m.Clients()
	if again[0].Name != "Maria Silva" {
		t.Error("mutação da cópia vazou para o registro")
	}
}

func TestSeedLoadsDemoData(t *testing.T) {
	m := NewMemory()
	loc := mustLoc(t)

	if err := m.Seed(loc); err != nil {
		t.Fatal(err)
	}

	if got := len(m.Clients()); got != 2 {
		t.Errorf("seed criou %d clientes, esperado 2", got)
	}
	if got := len(m.Services()); got != 3 {
		t.Errorf("seed criou %d serviços, esperado 3", got)
	}

	day := time.Date(2024, 3, 20, 0, 0, 0, 0, loc)
	aps := m.AppointmentsOn(day)
	if len(aps) != 2 {
		t.Fatalf("seed criou %d agendamentos em 2024-03-20, esperado 2", len(aps))
	}
	if aps[0].PriceCents != 5000 || aps[1].PriceCents != 3000 {
		t.Errorf("preços do seed = %d, %d", aps[0].PriceCents, aps[1].PriceCents)
	}
	if aps[0].ServiceName != "Corte de Cabelo" {
		t.Errorf("nome desnormalizado = %q", aps[0].ServiceName)
	}
}

func TestRepositoryConflictDetection(t *testing.T) {
	m := NewMemory()
	loc := mustLoc(t)
	ctx := context.Background()

	start := time.Date(2024, 3, 20, 14, 30, 0, 0, loc)
	m.AddAppointment(models.Appointment{
		BarberID:  1,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Status:    "scheduled",
	})

	if err := m.AssertNoTimeConflict(ctx, 1, start.Add(15*time.Minute), start.Add(45*time.Minute)); err == nil {
		t.Error("sobreposição não detectada")
	}
	if err := m.AssertNoTimeConflict(ctx, 1, start.Add(30*time.Minute), start.Add(60*time.Minute)); err != nil {
		t.Errorf("intervalo adjacente não deveria conflitar: %v", err)
	}
	if err := m.AssertNoTimeConflict(ctx, 2, start, start.Add(30*time.Minute)); err != nil {
		t.Errorf("outro barbeiro não deveria conflitar: %v", err)
	}
}

func TestListAppointmentsForPeriodSorted(t *testing.T) {
	m := NewMemory()
	loc := mustLoc(t)
	ctx := context.Background()

	mk := func(day, hour, min int) {
		st := time.Date(2024, 3, day, hour, min, 0, 0, loc)
		m.AddAppointment(models.Appointment{BarberID: 1, StartTime: st, EndTime: st.Add(time.Hour)})
	}
	mk(20, 9, 0)
	mk(20, 8, 0)
	mk(19, 23, 0)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, loc)
	got, err := m.ListAppointmentsForPeriod(ctx, 1, start, start.AddDate(0, 1, 0))
	if err != nil {
		t.Fatal(err)
	}

	wantHours := [][2]int{{23, 0}, {8, 0}, {9, 0}}
	for i, ap := range got {
		if ap.StartTime.Hour() != wantHours[i][0] || ap.StartTime.Minute() != wantHours[i][1] {
			t.Errorf("posição %d: %s", i, ap.StartTime.Format("2006-01-02 15:04"))
		}
	}
}

func TestListAppointmentsForPeriodResolvesClient(t *testing.T) {
	m := NewMemory()
	loc := mustLoc(t)
	ctx := context.Background()

	if err := m.Seed(loc); err != nil {
		t.Fatal(err)
	}

	// referência pendurada: cliente 999 não existe
	st := time.Date(2024, 3, 20, 17, 0, 0, 0, loc)
	m.AddAppointment(models.Appointment{
		BarberID: 1, ClientID: 999,
		StartTime: st, EndTime: st.Add(time.Hour),
	})

	start := time.Date(2024, 3, 20, 0, 0, 0, 0, loc)
	got, err := m.ListAppointmentsForPeriod(ctx, 1, start, start.AddDate(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("período com %d agendamentos", len(got))
	}

	if got[0].Client.Name != "Maria Silva" {
		t.Errorf("cliente resolvido = %q", got[0].Client.Name)
	}
	if got[2].Client.Name != "" {
		t.Errorf("referência pendurada deveria ficar em branco, veio %q", got[2].Client.Name)
	}
}
