package appointment

import (
	"context"
	"testing"

	domain "github.com/studiotrim/agenda-api/internal/domain/appointment"
	"github.com/studiotrim/agenda-api/internal/httperr"
)

func createOne(t *testing.T) (uc *CreateAppointment, cancelUC *CancelAppointment, completeUC *CompleteAppointment, deleteUC *DeleteAppointment, apID uint) {
	t.Helper()

	m, d := newFixture(t)
	uc = NewCreateAppointment(m, d)
	cancelUC = NewCancelAppointment(m, d)
	completeUC = NewCompleteAppointment(m, d)
	deleteUC = NewDeleteAppointment(m, d)

	date, hour := futureSlot()
	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		SalonID:     1,
		BarberID:    1,
		ClientName:  "Ana Oliveira",
		ClientPhone: "(11) 77777-7777",
		ServiceID:   2,
		Date:        date,
		Time:        hour,
	})
	if err != nil {
		t.Fatal(err)
	}
	return uc, cancelUC, completeUC, deleteUC, ap.ID
}

func TestCancelAppointment(t *testing.T) {
	_, cancelUC, _, _, id := createOne(t)

	ap, err := cancelUC.Execute(context.Background(), 1, 1, id)
	if err != nil {
		t.Fatal(err)
	}
	if ap.Status != string(domain.StatusCancelled) || ap.CancelledAt == nil {
		t.Errorf("status = %q, cancelled_at = %v", ap.Status, ap.CancelledAt)
	}

	// cancelar de novo é estado inválido
	if _, err := cancelUC.Execute(context.Background(), 1, 1, id); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("segundo cancelamento: %v, esperado invalid_state", err)
	}
}

func TestCompleteAppointment(t *testing.T) {
	_, cancelUC, completeUC, _, id := createOne(t)

	ap, err := completeUC.Execute(context.Background(), 1, 1, id)
	if err != nil {
		t.Fatal(err)
	}
	if ap.Status != string(domain.StatusCompleted) || ap.CompletedAt == nil {
		t.Errorf("status = %q, completed_at = %v", ap.Status, ap.CompletedAt)
	}

	// concluído não cancela
	if _, err := cancelUC.Execute(context.Background(), 1, 1, id); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("cancelar concluído: %v, esperado invalid_state", err)
	}
}

func TestDeleteAppointment(t *testing.T) {
	_, _, _, deleteUC, id := createOne(t)

	if err := deleteUC.Execute(context.Background(), 1, 1, id); err != nil {
		t.Fatal(err)
	}

	if err := deleteUC.Execute(context.Background(), 1, 1, id); !httperr.IsBusiness(err, "appointment_not_found") {
		t.Errorf("segunda remoção: %v, esperado appointment_not_found", err)
	}
}

func TestCancelUnknownAppointment(t *testing.T) {
	_, cancelUC, _, _, _ := createOne(t)

	if _, err := cancelUC.Execute(context.Background(), 1, 1, 999); !httperr.IsBusiness(err, "appointment_not_found") {
		t.Errorf("cancelar inexistente: %v", err)
	}
}
