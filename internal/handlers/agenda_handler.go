package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studiotrim/agenda-api/internal/agenda"
	"github.com/studiotrim/agenda-api/internal/httperr"
	"github.com/studiotrim/agenda-api/internal/httpresp"
	"github.com/studiotrim/agenda-api/internal/middleware"
	"github.com/studiotrim/agenda-api/internal/models"
	"github.com/studiotrim/agenda-api/internal/timezone"
)

type AgendaHandler struct {
	db *gorm.DB
}

func NewAgendaHandler(db *gorm.DB) *AgendaHandler {
	return &AgendaHandler{db: db}
}

func (h *AgendaHandler) salonLocation(c *gin.Context, salonID uint) (*time.Location, bool) {
	var shop models.Salon
	if err := h.db.First(&shop, salonID).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Estabelecimento não encontrado")
		return nil, false
	}
	return timezone.Location(shop.Timezone), true
}

// GetAgenda devolve a visão da agenda do barbeiro: agendamentos
// agrupados por dia e particionados em próximos e histórico. Com
// ?date=AAAA-MM-DD o dia selecionado inteiro entra em próximos.
func (h *AgendaHandler) GetAgenda(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	loc, ok := h.salonLocation(c, salonID)
	if !ok {
		return
	}

	var selected *time.Time
	if raw := c.Query("date"); raw != "" {
		d, err := time.ParseInLocation("2006-01-02", raw, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida, use o formato AAAA-MM-DD")
			return
		}
		selected = &d
	}

	var aps []models.Appointment
	if err := h.db.Preload("Client").Preload("Service").
		Where("barber_id = ?", userID).
		Find(&aps).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao carregar agenda")
		return
	}

	now := time.Now().In(loc)
	upcoming, past := agenda.Partition(aps, now, selected, loc)

	httpresp.OK(c, gin.H{
		"days":     agenda.GroupByDay(aps, loc),
		"upcoming": agendaItems(upcoming),
		"past":     agendaItems(past),
	})
}

// GetCalendar devolve a contagem de agendamentos por dia do mês pedido,
// para os selos das células do calendário.
func (h *AgendaHandler) GetCalendar(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	loc, ok := h.salonLocation(c, salonID)
	if !ok {
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		httperr.BadRequest(c, "invalid_year", "Ano inválido")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido")
		return
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	var aps []models.Appointment
	if err := h.db.
		Where("barber_id = ? AND start_time >= ? AND start_time < ?", userID, start, end).
		Find(&aps).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao carregar calendário")
		return
	}

	httpresp.OK(c, gin.H{
		"year":   year,
		"month":  month,
		"counts": agenda.CalendarCounts(aps, year, time.Month(month), loc),
	})
}

func agendaItems(aps []models.Appointment) []gin.H {
	out := make([]gin.H, 0, len(aps))
	for _, ap := range aps {
		name := ap.ServiceName
		if name == "" {
			name = ap.Service.Name
		}
		out = append(out, gin.H{
			"id":           ap.ID,
			"start_time":   ap.StartTime,
			"end_time":     ap.EndTime,
			"status":       ap.Status,
			"client_name":  ap.Client.Name,
			"service_name": name,
			"price_cents":  ap.PriceCents,
			"price_label":  ap.PriceCents.FormatBRL(),
			"notes":        ap.Notes,
		})
	}
	return out
}
