package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/studiotrim/agenda-api/internal/domain/appointment"
	"github.com/studiotrim/agenda-api/internal/httperr"
	"github.com/studiotrim/agenda-api/internal/httpresp"
	"github.com/studiotrim/agenda-api/internal/models"
	"github.com/studiotrim/agenda-api/internal/statscache"
	"github.com/studiotrim/agenda-api/internal/timezone"
	usecase "github.com/studiotrim/agenda-api/internal/usecase/appointment"
)

// PublicHandler atende a página de agendamento do cliente final,
// identificada pelo slug do salão, sem autenticação.
type PublicHandler struct {
	db           *gorm.DB
	availability *usecase.GetAvailability
	create       *usecase.CreateAppointment
	cache        *statscache.Cache
}

func NewPublicHandler(
	db *gorm.DB,
	availability *usecase.GetAvailability,
	create *usecase.CreateAppointment,
	cache *statscache.Cache,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		availability: availability,
		create:       create,
		cache:        cache,
	}
}

func (h *PublicHandler) salonBySlug(c *gin.Context) (*models.Salon, bool) {
	var shop models.Salon
	if err := h.db.Where("slug = ?", c.Param("slug")).
		First(&shop).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Estabelecimento não encontrado")
		return nil, false
	}
	return &shop, true
}

// barberFor resolve o barbeiro alvo: ?barber_id quando informado,
// senão o dono do salão.
func (h *PublicHandler) barberFor(c *gin.Context, salonID uint) (uint, bool) {
	if raw := c.Query("barber_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_barber", "Profissional inválido")
			return 0, false
		}
		var count int64
		h.db.Model(&models.User{}).
			Where("id = ? AND salon_id = ?", id, salonID).
			Count(&count)
		if count == 0 {
			httperr.NotFound(c, "barber_not_found", "Profissional não encontrado")
			return 0, false
		}
		return uint(id), true
	}

	var owner models.User
	if err := h.db.Where("salon_id = ? AND role = ?", salonID, "owner").
		First(&owner).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Profissional não encontrado")
		return 0, false
	}
	return owner.ID, true
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	shop, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.
		Where("salon_id = ? AND active = ?", shop.ID, true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao listar serviços")
		return
	}

	out := make([]gin.H, 0, len(services))
	for _, s := range services {
		out = append(out, gin.H{
			"id":           s.ID,
			"name":         s.Name,
			"description":  s.Description,
			"duration_min": s.DurationMin,
			"price_cents":  s.PriceCents,
			"price_label":  s.PriceLabel(),
			"image_url":    s.ImageURL,
		})
	}

	httpresp.List(c, out)
}

func (h *PublicHandler) GetAvailability(c *gin.Context) {
	shop, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	barberID, ok := h.barberFor(c, shop.ID)
	if !ok {
		return
	}

	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service", "Serviço inválido")
		return
	}

	loc := timezone.Location(shop.Timezone)
	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida, use o formato AAAA-MM-DD")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		SalonID:   shop.ID,
		BarberID:  barberID,
		ServiceID: uint(serviceID),
		Date:      date,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.List(c, slots)
}

type PublicCreateRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Notes       string `json:"notes"`
}

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	shop, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	barberID, ok := h.barberFor(c, shop.ID)
	if !ok {
		return
	}

	var req PublicCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados do agendamento incompletos")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), usecase.CreateAppointmentInput{
		SalonID:     shop.ID,
		BarberID:    barberID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), barberID)

	httpresp.Created(c, gin.H{
		"id":           ap.ID,
		"start_time":   ap.StartTime,
		"end_time":     ap.EndTime,
		"status":       ap.Status,
		"service_name": ap.ServiceName,
		"price_label":  ap.PriceCents.FormatBRL(),
	})
}
