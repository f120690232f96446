package appointment

import (
	"context"

	"github.com/studiotrim/agenda-api/internal/audit"
	domain "github.com/studiotrim/agenda-api/internal/domain/appointment"
)

// DeleteAppointment remove o registro de vez, ao estilo do filtro
// client-side do sistema original. Diferente de cancelar, não deixa
// rastro na agenda; o rastro fica só na auditoria.
type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	salonID uint,
	barberID uint,
	appointmentID uint,
) error {

	if err := uc.repo.DeleteAppointment(ctx, appointmentID, barberID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &barberID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &appointmentID,
	})

	return nil
}
