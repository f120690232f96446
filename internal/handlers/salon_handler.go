package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studiotrim/agenda-api/internal/httperr"
	"github.com/studiotrim/agenda-api/internal/httpresp"
	"github.com/studiotrim/agenda-api/internal/middleware"
	"github.com/studiotrim/agenda-api/internal/models"
)

type SalonHandler struct {
	db *gorm.DB
}

func NewSalonHandler(db *gorm.DB) *SalonHandler {
	return &SalonHandler{db: db}
}

func (h *SalonHandler) GetSalon(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var shop models.Salon
	if err := h.db.First(&shop, salonID).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Estabelecimento não encontrado")
		return
	}

	httpresp.OK(c, salonResponse(&shop))
}

type UpdateSalonRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	Timezone          *string `json:"timezone"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
}

func (h *SalonHandler) UpdateSalon(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req UpdateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos")
		return
	}

	var shop models.Salon
	if err := h.db.First(&shop, salonID).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Estabelecimento não encontrado")
		return
	}

	if req.Name != nil {
		shop.Name = *req.Name
	}
	if req.Phone != nil {
		shop.Phone = *req.Phone
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}
	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido")
			return
		}
		shop.Timezone = *req.Timezone
	}
	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Antecedência mínima inválida")
			return
		}
		shop.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.Save(&shop).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao atualizar estabelecimento")
		return
	}

	httpresp.OK(c, salonResponse(&shop))
}

func salonResponse(shop *models.Salon) gin.H {
	return gin.H{
		"id":                  shop.ID,
		"name":                shop.Name,
		"slug":                shop.Slug,
		"phone":               shop.Phone,
		"address":             shop.Address,
		"timezone":            shop.Timezone,
		"min_advance_minutes": shop.MinAdvanceMinutes,
	}
}
