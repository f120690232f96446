package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studiotrim/agenda-api/internal/httperr"
	"github.com/studiotrim/agenda-api/internal/httpresp"
	"github.com/studiotrim/agenda-api/internal/middleware"
	"github.com/studiotrim/agenda-api/internal/models"
)

type NotificationPrefsHandler struct {
	db *gorm.DB
}

func NewNotificationPrefsHandler(db *gorm.DB) *NotificationPrefsHandler {
	return &NotificationPrefsHandler{db: db}
}

// GetPrefs devolve as preferências do usuário, criando o registro com
// os padrões na primeira leitura.
func (h *NotificationPrefsHandler) GetPrefs(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	prefs, err := h.loadOrCreate(userID)
	if err != nil {
		httperr.Internal(c, "internal_error", "Erro ao carregar preferências")
		return
	}

	httpresp.OK(c, prefs)
}

type UpdatePrefsRequest struct {
	NewAppointments       *bool `json:"new_appointments"`
	CancelledAppointments *bool `json:"cancelled_appointments"`
	DailySummary          *bool `json:"daily_summary"`
}

func (h *NotificationPrefsHandler) UpdatePrefs(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpdatePrefsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos")
		return
	}

	prefs, err := h.loadOrCreate(userID)
	if err != nil {
		httperr.Internal(c, "internal_error", "Erro ao carregar preferências")
		return
	}

	if req.NewAppointments != nil {
		prefs.NewAppointments = *req.NewAppointments
	}
	if req.CancelledAppointments != nil {
		prefs.CancelledAppointments = *req.CancelledAppointments
	}
	if req.DailySummary != nil {
		prefs.DailySummary = *req.DailySummary
	}

	if err := h.db.Save(prefs).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao salvar preferências")
		return
	}

	httpresp.OK(c, prefs)
}

func (h *NotificationPrefsHandler) loadOrCreate(userID uint) (*models.NotificationPrefs, error) {
	var prefs models.NotificationPrefs
	err := h.db.Where("user_id = ?", userID).First(&prefs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		prefs = models.NotificationPrefs{
			UserID:                userID,
			NewAppointments:       true,
			CancelledAppointments: true,
		}
		if err := h.db.Create(&prefs).Error; err != nil {
			return nil, err
		}
		return &prefs, nil
	}
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}
