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

type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

func (h *WorkingHoursHandler) GetWorkingHours(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var hours []models.WorkingHours
	if err := h.db.Where("barber_id = ?", userID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao carregar horários")
		return
	}

	httpresp.List(c, hours)
}

type WorkingHoursEntry struct {
	Weekday         int    `json:"weekday" binding:"min=0,max=6"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	LunchStart      string `json:"lunch_start"`
	LunchEnd        string `json:"lunch_end"`
	SlotIntervalMin int    `json:"slot_interval_min"`
	Active          bool   `json:"active"`
}

type UpdateWorkingHoursRequest struct {
	Hours []WorkingHoursEntry `json:"hours" binding:"required"`
}

// UpdateWorkingHours substitui a grade semanal inteira do barbeiro.
func (h *WorkingHoursHandler) UpdateWorkingHours(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpdateWorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos")
		return
	}

	for _, e := range req.Hours {
		if !e.Active {
			continue
		}
		if !validHM(e.StartTime) || !validHM(e.EndTime) {
			httperr.BadRequest(c, "invalid_time", "Horário inválido, use o formato HH:MM")
			return
		}
		if e.LunchStart != "" && !validHM(e.LunchStart) {
			httperr.BadRequest(c, "invalid_time", "Horário de almoço inválido")
			return
		}
		if e.LunchEnd != "" && !validHM(e.LunchEnd) {
			httperr.BadRequest(c, "invalid_time", "Horário de almoço inválido")
			return
		}
		if e.SlotIntervalMin < 0 {
			httperr.BadRequest(c, "invalid_interval", "Intervalo de slots inválido")
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_id = ?", userID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		for _, e := range req.Hours {
			wh := models.WorkingHours{
				BarberID:        userID,
				Weekday:         e.Weekday,
				StartTime:       e.StartTime,
				EndTime:         e.EndTime,
				LunchStart:      e.LunchStart,
				LunchEnd:        e.LunchEnd,
				SlotIntervalMin: e.SlotIntervalMin,
				Active:          e.Active,
			}
			if wh.SlotIntervalMin == 0 {
				wh.SlotIntervalMin = 30
			}
			if err := tx.Create(&wh).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "internal_error", "Erro ao salvar horários")
		return
	}

	h.GetWorkingHours(c)
}

func validHM(hm string) bool {
	_, err := time.Parse("15:04", hm)
	return err == nil
}
