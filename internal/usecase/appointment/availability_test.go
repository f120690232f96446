package appointment

import (
	"context"
	"testing"
	"time"

	domain "github.com/studiotrim/agenda-api/internal/domain/appointment"
	"github.com/studiotrim/agenda-api/internal/timezone"
)

func TestAvailabilityFullDay(t *testing.T) {
	m, _ := newFixture(t)
	uc := NewGetAvailability(m)

	dateStr, _ := futureSlot()
	loc := timezone.Location(timezone.DefaultTimezone)
	date, _ := time.ParseInLocation("2006-01-02", dateStr, loc)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID:   1,
		BarberID:  1,
		ServiceID: 1, // 30min, grade de 30 em 30
		Date:      date,
	})
	if err != nil {
		t.Fatal(err)
	}

	// 09:00–18:00 com passo de 30min e bloco de 30min → 18 janelas
	if len(slots) != 18 {
		t.Fatalf("%d janelas, esperado 18", len(slots))
	}
	if slots[0].Start != "09:00" || slots[len(slots)-1].End != "18:00" {
		t.Errorf("bordas: %s .. %s", slots[0].Start, slots[len(slots)-1].End)
	}
}

func TestAvailabilitySkipsBookedSlot(t *testing.T) {
	m, d := newFixture(t)
	create := NewCreateAppointment(m, d)
	uc := NewGetAvailability(m)

	dateStr, hour := futureSlot()
	if _, err := create.Execute(context.Background(), CreateAppointmentInput{
		SalonID:     1,
		BarberID:    1,
		ClientName:  "Ana Oliveira",
		ClientPhone: "(11) 77777-7777",
		ServiceID:   1,
		Date:        dateStr,
		Time:        hour,
	}); err != nil {
		t.Fatal(err)
	}

	loc := timezone.Location(timezone.DefaultTimezone)
	date, _ := time.ParseInLocation("2006-01-02", dateStr, loc)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID:   1,
		BarberID:  1,
		ServiceID: 1,
		Date:      date,
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, s := range slots {
		if s.Start == hour {
			t.Errorf("janela %s ainda oferecida após reserva", hour)
		}
	}
	if len(slots) != 17 {
		t.Errorf("%d janelas, esperado 17", len(slots))
	}
}

func TestAvailabilityInactiveDay(t *testing.T) {
	m, _ := newFixture(t)
	uc := NewGetAvailability(m)

	loc := timezone.Location(timezone.DefaultTimezone)

	// domingo está inativo no seed
	sunday := timezone.Now().In(loc)
	for sunday.Weekday() != time.Sunday {
		sunday = sunday.AddDate(0, 0, 1)
	}

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID:   1,
		BarberID:  1,
		ServiceID: 1,
		Date:      timezone.StartOfDay(sunday, loc),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 0 {
		t.Errorf("%d janelas num dia inativo", len(slots))
	}
}
