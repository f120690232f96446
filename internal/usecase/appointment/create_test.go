package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/studiotrim/agenda-api/internal/audit"
	"github.com/studiotrim/agenda-api/internal/httperr"
	"github.com/studiotrim/agenda-api/internal/logging"
	"github.com/studiotrim/agenda-api/internal/store"
	"github.com/studiotrim/agenda-api/internal/timezone"
)

func newFixture(t *testing.T) (*store.Memory, *audit.Dispatcher) {
	t.Helper()

	m := store.NewMemory()
	if err := m.Seed(timezone.Location(timezone.DefaultTimezone)); err != nil {
		t.Fatal(err)
	}

	// sem gravador de auditoria: Dispatch não bloqueia e o worker descarta
	d := audit.NewDispatcher(nil, logging.New(false))
	return m, d
}

// futureSlot devolve uma data/hora dentro do expediente do seed
// (09:00–18:00, fechado no domingo) e além da antecedência mínima.
func futureSlot() (date, hour string) {
	t := timezone.Now().AddDate(0, 0, 2)
	if t.Weekday() == time.Sunday {
		t = t.AddDate(0, 0, 1)
	}
	return t.Format("2006-01-02"), "10:00"
}

func TestCreateAppointment(t *testing.T) {
	m, d := newFixture(t)
	uc := NewCreateAppointment(m, d)

	date, hour := futureSlot()

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		SalonID:     1,
		BarberID:    1,
		ClientName:  "Ana Oliveira",
		ClientPhone: "(11) 77777-7777",
		ServiceID:   1,
		Date:        date,
		Time:        hour,
	})
	if err != nil {
		t.Fatalf("criação falhou: %v", err)
	}

	if ap.ID == 0 {
		t.Error("agendamento sem id")
	}
	if ap.ServiceName != "Corte de Cabelo" {
		t.Errorf("nome desnormalizado = %q", ap.ServiceName)
	}
	if ap.PriceCents != 5000 {
		t.Errorf("preço capturado = %d", ap.PriceCents)
	}
	if ap.Status != "scheduled" {
		t.Errorf("status inicial = %q", ap.Status)
	}
	if got := ap.EndTime.Sub(ap.StartTime); got != 30*time.Minute {
		t.Errorf("duração = %s", got)
	}

	// cliente novo foi criado pelo telefone
	if _, err := m.GetOrCreateClient(context.Background(), 1, "", "(11) 77777-7777", ""); err != nil {
		t.Errorf("cliente não registrado: %v", err)
	}
}

func TestCreateAppointmentConflict(t *testing.T) {
	m, d := newFixture(t)
	uc := NewCreateAppointment(m, d)

	date, hour := futureSlot()
	in := CreateAppointmentInput{
		SalonID:     1,
		BarberID:    1,
		ClientName:  "Ana Oliveira",
		ClientPhone: "(11) 77777-7777",
		ServiceID:   1,
		Date:        date,
		Time:        hour,
	}

	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("primeira criação falhou: %v", err)
	}

	_, err := uc.Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "time_conflict") {
		t.Errorf("segunda criação no mesmo horário: %v, esperado time_conflict", err)
	}
}

func TestCreateAppointmentTooSoon(t *testing.T) {
	m, d := newFixture(t)
	uc := NewCreateAppointment(m, d)

	now := timezone.Now().Add(30 * time.Minute)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		SalonID:     1,
		BarberID:    1,
		ClientName:  "Ana Oliveira",
		ClientPhone: "(11) 77777-7777",
		ServiceID:   1,
		Date:        now.Format("2006-01-02"),
		Time:        now.Format("15:04"),
	})
	if !httperr.IsBusiness(err, "too_soon") {
		t.Errorf("agendamento sem antecedência: %v, esperado too_soon", err)
	}
}

func TestCreateAppointmentOutsideWorkingHours(t *testing.T) {
	m, d := newFixture(t)
	uc := NewCreateAppointment(m, d)

	date, _ := futureSlot()

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		SalonID:     1,
		BarberID:    1,
		ClientName:  "Ana Oliveira",
		ClientPhone: "(11) 77777-7777",
		ServiceID:   1,
		Date:        date,
		Time:        "22:00",
	})
	if !httperr.IsBusiness(err, "outside_working_hours") {
		t.Errorf("fora do expediente: %v, esperado outside_working_hours", err)
	}
}

func TestCreateAppointmentUnknownService(t *testing.T) {
	m, d := newFixture(t)
	uc := NewCreateAppointment(m, d)

	date, hour := futureSlot()

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		SalonID:     1,
		BarberID:    1,
		ClientName:  "Ana Oliveira",
		ClientPhone: "(11) 77777-7777",
		ServiceID:   99,
		Date:        date,
		Time:        hour,
	})
	if !httperr.IsBusiness(err, "service_not_found") {
		t.Errorf("serviço inexistente: %v, esperado service_not_found", err)
	}
}
