package store

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/studiotrim/agenda-api/internal/domain/appointment"
	"github.com/studiotrim/agenda-api/internal/httperr"
	"github.com/studiotrim/agenda-api/internal/models"
	"github.com/studiotrim/agenda-api/internal/money"
)

// Memory é o registro em memória de clientes, agendamentos e serviços.
// Substitui o estado mutável de nível de pacote do sistema original por
// um objeto construído por instância, para que testes não compartilhem
// estado. Vive apenas durante o processo; não persiste nada.
type Memory struct {
	mu sync.RWMutex

	salon        models.Salon
	users        []models.User
	clients      []models.Client
	appointments []models.Appointment
	services     []models.Service
	workingHours []models.WorkingHours

	// Contadores monotônicos independentes do tamanho das coleções:
	// deletar e recriar nunca reutiliza um id.
	clientSeq      uint
	appointmentSeq uint
	serviceSeq     uint
}

func NewMemory() *Memory {
	return &Memory{}
}

// ======================================================
// CLIENTES
// ======================================================

// Clients retorna uma cópia defensiva, em ordem de inserção.
func (m *Memory) Clients() []models.Client {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Client, len(m.clients))
	copy(out, m.clients)
	return out
}

// Client busca por id. O segundo retorno indica existência: um id
// pendurado não é erro, é ausência que o chamador trata.
func (m *Memory) Client(id uint) (models.Client, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.clients {
		if c.ID == id {
			return c, true
		}
	}
	return models.Client{}, false
}

// CreateClient aceita campos como vierem; validação de conteúdo é
// responsabilidade da borda HTTP.
func (m *Memory) CreateClient(name, phone, email string) models.Client {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clientSeq++
	c := models.Client{
		ID:      m.clientSeq,
		SalonID: m.salon.ID,
		Name:    name,
		Phone:   phone,
		Email:   email,
	}
	m.clients = append(m.clients, c)
	return c
}

// ======================================================
// SERVIÇOS
// ======================================================

func (m *Memory) Services() []models.Service {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Service, len(m.services))
	copy(out, m.services)
	return out
}

func (m *Memory) Service(id uint) (models.Service, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.services {
		if s.ID == id {
			return s, true
		}
	}
	return models.Service{}, false
}

func (m *Memory) AddService(s models.Service) models.Service {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.serviceSeq++
	s.ID = m.serviceSeq
	s.SalonID = m.salon.ID
	m.services = append(m.services, s)
	return s
}

// ======================================================
// AGENDAMENTOS
// ======================================================

func (m *Memory) Appointments() []models.Appointment {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Appointment, len(m.appointments))
	copy(out, m.appointments)
	return out
}

// AppointmentsOn filtra por dia-calendário (igualdade de data, não de
// instante), preservando a ordem relativa original.
func (m *Memory) AppointmentsOn(day time.Time) []models.Appointment {
	m.mu.RLock()
	defer m.mu.RUnlock()

	y, mo, d := day.Date()
	var out []models.Appointment
	for _, ap := range m.appointments {
		ay, am, ad := ap.StartTime.In(day.Location()).Date()
		if ay == y && am == mo && ad == d {
			out = append(out, ap)
		}
	}
	return out
}

// AddAppointment atribui o próximo id e anexa. Não há verificação de
// sobreposição aqui: o registro não é o sistema de referência e o
// sistema original permite encaixe duplo.
func (m *Memory) AddAppointment(ap models.Appointment) models.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.appointmentSeq++
	ap.ID = m.appointmentSeq
	ap.SalonID = m.salon.ID
	if ap.Status == "" {
		ap.Status = string(domain.InitialStatus())
	}
	m.appointments = append(m.appointments, ap)
	return ap
}

// RemoveAppointment remove exatamente o registro com o id dado,
// mantendo a ordem relativa dos demais. Retorna false se ausente.
func (m *Memory) RemoveAppointment(id uint) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, ap := range m.appointments {
		if ap.ID == id {
			m.appointments = append(m.appointments[:i], m.appointments[i+1:]...)
			return true
		}
	}
	return false
}

// ======================================================
// SEED (dados de demonstração do sistema original)
// ======================================================

// Seed carrega o salão, os clientes, o catálogo e os dois agendamentos
// de demonstração. Rótulos de preço legados são convertidos no
// carregamento; um rótulo malformado interrompe o seed.
func (m *Memory) Seed(loc *time.Location) error {
	m.mu.Lock()
	m.salon = models.Salon{
		ID:                1,
		Name:              "Studio Trim",
		Slug:              "studio-trim",
		Timezone:          loc.String(),
		MinAdvanceMinutes: 120,
	}
	m.users = []models.User{
		{ID: 1, SalonID: 1, Name: "John Doe", Email: "john@studiotrim.com", Role: "owner"},
	}
	for wd := 0; wd < 7; wd++ {
		m.workingHours = append(m.workingHours, models.WorkingHours{
			ID:              uint(wd + 1),
			BarberID:        1,
			Weekday:         wd,
			Active:          wd != 0,
			StartTime:       "09:00",
			EndTime:         "18:00",
			SlotIntervalMin: 30,
		})
	}
	m.mu.Unlock()

	services := []struct {
		name     string
		duration int
		label    string
	}{
		{"Corte de Cabelo", 30, "R$ 50,00"},
		{"Barba", 20, "R$ 30,00"},
		{"Corte e Barba", 50, "R$ 70,00"},
	}
	for _, s := range services {
		price, err := money.ParseBRL(s.label)
		if err != nil {
			return err
		}
		m.AddService(models.Service{
			Name:        s.name,
			DurationMin: s.duration,
			PriceCents:  price,
			Active:      true,
			Category:    "cabelo",
		})
	}

	maria := m.CreateClient("Maria Silva", "(11) 99999-9999", "maria@email.com")
	joao := m.CreateClient("João Santos", "(11) 88888-8888", "joao@email.com")

	seeds := []struct {
		client    models.Client
		serviceID uint
		date      string
		hour      string
	}{
		{maria, 1, "2024-03-20", "14:30"},
		{joao, 2, "2024-03-20", "15:30"},
	}
	for _, a := range seeds {
		svc, ok := m.Service(a.serviceID)
		if !ok {
			continue
		}
		start, err := time.ParseInLocation("2006-01-02 15:04", a.date+" "+a.hour, loc)
		if err != nil {
			return err
		}
		m.AddAppointment(models.Appointment{
			BarberID:    1,
			ClientID:    a.client.ID,
			ServiceID:   svc.ID,
			ServiceName: svc.Name,
			PriceCents:  svc.PriceCents,
			StartTime:   start,
			EndTime:     start.Add(time.Duration(svc.DurationMin) * time.Minute),
		})
	}

	return nil
}

// ======================================================
// domain.Repository: permite rodar os casos de uso de
// agendamento sem Postgres
// ======================================================

func (m *Memory) GetSalonByID(ctx context.Context, id uint) (*models.Salon, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.salon.ID != id {
		return nil, httperr.ErrBusiness("salon_not_found")
	}
	shop := m.salon
	return &shop, nil
}

func (m *Memory) GetService(ctx context.Context, salonID, serviceID uint) (*models.Service, error) {
	svc, ok := m.Service(serviceID)
	if !ok || svc.SalonID != salonID {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	return &svc, nil
}

func (m *Memory) GetOrCreateClient(ctx context.Context, salonID uint, name, phone, email string) (*models.Client, error) {
	m.mu.RLock()
	for _, c := range m.clients {
		if c.Phone == phone {
			m.mu.RUnlock()
			found := c
			return &found, nil
		}
	}
	m.mu.RUnlock()

	c := m.CreateClient(name, phone, email)
	return &c, nil
}

func (m *Memory) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	*ap = m.AddAppointment(*ap)
	return nil
}

func (m *Memory) AssertNoTimeConflict(ctx context.Context, barberID uint, start, end time.Time) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, ap := range m.appointments {
		if ap.BarberID != barberID || ap.Status != string(domain.StatusScheduled) {
			continue
		}
		if ap.StartTime.Before(end) && ap.EndTime.After(start) {
			return httperr.ErrBusiness("time_conflict")
		}
	}
	return nil
}

func (m *Memory) GetAppointmentForBarber(ctx context.Context, appointmentID, barberID uint) (*models.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, ap := range m.appointments {
		if ap.ID == appointmentID && ap.BarberID == barberID {
			found := ap
			return &found, nil
		}
	}
	return nil, httperr.ErrBusiness("appointment_not_found")
}

func (m *Memory) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.appointments {
		if m.appointments[i].ID == ap.ID {
			m.appointments[i] = *ap
			return nil
		}
	}
	return httperr.ErrBusiness("appointment_not_found")
}

func (m *Memory) DeleteAppointment(ctx context.Context, appointmentID, barberID uint) error {
	m.mu.RLock()
	var found bool
	for _, ap := range m.appointments {
		if ap.ID == appointmentID && ap.BarberID == barberID {
			found = true
			break
		}
	}
	m.mu.RUnlock()

	if !found || !m.RemoveAppointment(appointmentID) {
		return httperr.ErrBusiness("appointment_not_found")
	}
	return nil
}

func (m *Memory) GetWorkingHours(ctx context.Context, barberID uint, weekday int) (*models.WorkingHours, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, wh := range m.workingHours {
		if wh.BarberID == barberID && wh.Weekday == weekday {
			found := wh
			return &found, nil
		}
	}
	return nil, httperr.ErrBusiness("working_hours_not_found")
}

func (m *Memory) ListAppointmentsForDay(ctx context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	return m.ListAppointmentsForPeriod(ctx, barberID, start, end)
}

func (m *Memory) IsWithinWorkingHours(ctx context.Context, barberID uint, start, end time.Time) (bool, error) {
	wh, err := m.GetWorkingHours(ctx, barberID, int(start.Weekday()))
	if err != nil {
		return false, nil
	}
	return domain.FitsWorkingHours(wh, start, end), nil
}

func (m *Memory) ListAppointmentsForPeriod(ctx context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.Appointment
	for _, ap := range m.appointments {
		if ap.BarberID != barberID {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			// referência pendurada fica em branco, não é erro
			if cl, ok := m.clientLocked(ap.ClientID); ok {
				ap.Client = cl
			}
			out = append(out, ap)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})

	return out, nil
}

// clientLocked pressupõe m.mu já adquirido.
func (m *Memory) clientLocked(id uint) (models.Client, bool) {
	for _, cl := range m.clients {
		if cl.ID == id {
			return cl, true
		}
	}
	return models.Client{}, false
}

// Compile-time check
var _ domain.Repository = (*Memory)(nil)
