package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studiotrim/agenda-api/internal/httperr"
	"github.com/studiotrim/agenda-api/internal/httpresp"
	"github.com/studiotrim/agenda-api/internal/middleware"
	"github.com/studiotrim/agenda-api/internal/statscache"
	usecase "github.com/studiotrim/agenda-api/internal/usecase/appointment"
)

type AppointmentHandler struct {
	create      *usecase.CreateAppointment
	cancel      *usecase.CancelAppointment
	complete    *usecase.CompleteAppointment
	delete      *usecase.DeleteAppointment
	listByDate  *usecase.ListAppointmentsByDate
	listByMonth *usecase.ListAppointmentsByMonth
	cache       *statscache.Cache
}

func NewAppointmentHandler(
	create *usecase.CreateAppointment,
	cancel *usecase.CancelAppointment,
	complete *usecase.CompleteAppointment,
	del *usecase.DeleteAppointment,
	listByDate *usecase.ListAppointmentsByDate,
	listByMonth *usecase.ListAppointmentsByMonth,
	cache *statscache.Cache,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:      create,
		cancel:      cancel,
		complete:    complete,
		delete:      del,
		listByDate:  listByDate,
		listByMonth: listByMonth,
		cache:       cache,
	}
}

type CreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Notes       string `json:"notes"`
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados do agendamento incompletos")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), usecase.CreateAppointmentInput{
		SalonID:     salonID,
		BarberID:    userID,
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

	h.cache.Invalidate(c.Request.Context(), userID)

	httpresp.Created(c, gin.H{
		"id":           ap.ID,
		"start_time":   ap.StartTime,
		"end_time":     ap.EndTime,
		"status":       ap.Status,
		"service_name": ap.ServiceName,
		"price_cents":  ap.PriceCents,
		"price_label":  ap.PriceCents.FormatBRL(),
	})
}

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida, use o formato AAAA-MM-DD")
		return
	}

	out, err := h.listByDate.Execute(c.Request.Context(), userID, salonID, date)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

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

	out, err := h.listByMonth.Execute(c.Request.Context(), userID, salonID, year, month)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, salonID, userID, id uint) error {
		_, err := h.cancel.Execute(ctx.Request.Context(), salonID, userID, id)
		return err
	})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, salonID, userID, id uint) error {
		_, err := h.complete.Execute(ctx.Request.Context(), salonID, userID, id)
		return err
	})
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido")
		return
	}

	if err := h.delete.Execute(c.Request.Context(), salonID, userID, uint(id)); err != nil {
		writeBusinessError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), userID)

	c.Status(http.StatusNoContent)
}

func (h *AppointmentHandler) transition(c *gin.Context, run func(*gin.Context, uint, uint, uint) error) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido")
		return
	}

	if err := run(c, salonID, userID, uint(id)); err != nil {
		writeBusinessError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), userID)

	httpresp.OK(c, gin.H{"ok": true})
}

// writeBusinessError traduz erros de negócio dos casos de uso em
// respostas HTTP com o código estável e uma mensagem em português.
func writeBusinessError(c *gin.Context, err error) {
	code := httperr.BusinessCode(err)
	switch code {
	case "salon_not_found":
		httperr.NotFound(c, code, "Estabelecimento não encontrado")
	case "service_not_found":
		httperr.NotFound(c, code, "Serviço não encontrado")
	case "appointment_not_found":
		httperr.NotFound(c, code, "Agendamento não encontrado")
	case "invalid_date_or_time":
		httperr.BadRequest(c, code, "Data ou horário inválidos")
	case "too_soon":
		httperr.BadRequest(c, code, "Horário muito próximo, escolha um horário com mais antecedência")
	case "outside_working_hours":
		httperr.BadRequest(c, code, "Horário fora do expediente")
	case "time_conflict":
		httperr.Conflict(c, code, "Já existe um agendamento neste horário")
	case "invalid_state":
		httperr.Write(c, http.StatusUnprocessableEntity, code, "Agendamento não permite esta operação")
	default:
		httperr.Internal(c, "internal_error", "Erro interno")
	}
}
