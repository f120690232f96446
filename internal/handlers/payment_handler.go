package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studiotrim/agenda-api/internal/httperr"
	"github.com/studiotrim/agenda-api/internal/httpresp"
	"github.com/studiotrim/agenda-api/internal/middleware"
	"github.com/studiotrim/agenda-api/internal/models"
	"github.com/studiotrim/agenda-api/internal/payment"
)

type PaymentHandler struct {
	db       *gorm.DB
	provider *payment.Provider
}

func NewPaymentHandler(db *gorm.DB, provider *payment.Provider) *PaymentHandler {
	return &PaymentHandler{db: db, provider: provider}
}

// CreatePaymentLink gera um link de pagamento Mercado Pago para o
// agendamento, usando o preço capturado na criação.
func (h *PaymentHandler) CreatePaymentLink(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	if h.provider == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "payments_disabled"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido")
		return
	}

	var ap models.Appointment
	if err := h.db.Where("id = ? AND barber_id = ?", id, userID).
		First(&ap).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado")
		return
	}

	link, err := h.provider.LinkFor(c.Request.Context(), &ap)
	if err != nil {
		httperr.Internal(c, "payment_error", "Erro ao gerar link de pagamento")
		return
	}

	httpresp.OK(c, gin.H{
		"preference_id": link.PreferenceID,
		"url":           link.URL,
	})
}
