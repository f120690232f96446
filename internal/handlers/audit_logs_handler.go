package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studiotrim/agenda-api/internal/httperr"
	"github.com/studiotrim/agenda-api/internal/httpresp"
	"github.com/studiotrim/agenda-api/internal/middleware"
	"github.com/studiotrim/agenda-api/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// ListLogs devolve a trilha de auditoria do salão, mais recente
// primeiro, com filtro opcional por ação e paginação simples.
func (h *AuditLogsHandler) ListLogs(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	q := h.db.Where("salon_id = ?", salonID)

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 200 {
			httperr.BadRequest(c, "invalid_limit", "Limite inválido")
			return
		}
		limit = n
	}

	offset := 0
	if raw := c.Query("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httperr.BadRequest(c, "invalid_offset", "Deslocamento inválido")
			return
		}
		offset = n
	}

	var logs []models.AuditLog
	if err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao listar auditoria")
		return
	}

	httpresp.List(c, logs)
}
