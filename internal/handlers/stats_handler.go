package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studiotrim/agenda-api/internal/httperr"
	"github.com/studiotrim/agenda-api/internal/httpresp"
	"github.com/studiotrim/agenda-api/internal/middleware"
	"github.com/studiotrim/agenda-api/internal/models"
	"github.com/studiotrim/agenda-api/internal/stats"
	"github.com/studiotrim/agenda-api/internal/statscache"
	"github.com/studiotrim/agenda-api/internal/timezone"
)

type StatsHandler struct {
	db    *gorm.DB
	cache *statscache.Cache
}

func NewStatsHandler(db *gorm.DB, cache *statscache.Cache) *StatsHandler {
	return &StatsHandler{db: db, cache: cache}
}

// GetSummary devolve clientes distintos, total de agendamentos e
// faturamento do período pedido (day, week ou month). Resumos ficam
// em cache por um TTL curto; mutações invalidam.
func (h *StatsHandler) GetSummary(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	period, err := stats.ParsePeriod(c.DefaultQuery("period", "day"))
	if err != nil {
		httperr.BadRequest(c, "invalid_period", "Período inválido, use day, week ou month")
		return
	}

	if s, ok := h.cache.Summary(c.Request.Context(), userID, period); ok {
		httpresp.OK(c, s)
		return
	}

	loc, ok := h.location(c, salonID)
	if !ok {
		return
	}

	now := time.Now().In(loc)
	start, end := stats.Range(period, now, loc)

	var aps []models.Appointment
	if err := h.db.
		Where("barber_id = ? AND start_time >= ? AND start_time < ?", userID, start, end).
		Find(&aps).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao calcular estatísticas")
		return
	}

	s := stats.Summarize(aps, period, now, loc)

	h.cache.SetSummary(c.Request.Context(), userID, s)

	httpresp.OK(c, s)
}

// GetRevenueSeries devolve a série diária de faturamento do barbeiro,
// um ponto por dia-calendário com agendamento, ordenada pelo instante
// do dia.
func (h *StatsHandler) GetRevenueSeries(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	loc, ok := h.location(c, salonID)
	if !ok {
		return
	}

	var aps []models.Appointment
	if err := h.db.
		Where("barber_id = ?", userID).
		Find(&aps).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao calcular faturamento")
		return
	}

	httpresp.List(c, stats.RevenueSeries(aps, loc))
}

func (h *StatsHandler) location(c *gin.Context, salonID uint) (*time.Location, bool) {
	var shop models.Salon
	if err := h.db.First(&shop, salonID).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Estabelecimento não encontrado")
		return nil, false
	}
	return timezone.Location(shop.Timezone), true
}
