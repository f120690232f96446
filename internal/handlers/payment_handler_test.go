package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/studiotrim/agenda-api/internal/middleware"
)

func TestPaymentLinkDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewPaymentHandler(nil, nil)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, uint(1))
		c.Set(middleware.ContextSalonID, uint(1))
	})
	r.POST("/appointments/:id/payment-link", h.CreatePaymentLink)

	w := doJSON(t, r, http.MethodPost, "/appointments/1/payment-link", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}
