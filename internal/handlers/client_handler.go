package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studiotrim/agenda-api/internal/httperr"
	"github.com/studiotrim/agenda-api/internal/httpresp"
	"github.com/studiotrim/agenda-api/internal/middleware"
	"github.com/studiotrim/agenda-api/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

func (h *ClientHandler) ListClients(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	q := h.db.Where("salon_id = ?", salonID)

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR phone LIKE ?", like, like)
	}

	var clients []models.Client
	if err := q.Order("name ASC").Find(&clients).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao listar clientes")
		return
	}

	out := make([]gin.H, 0, len(clients))
	for _, cl := range clients {
		out = append(out, clientResponse(&cl))
	}

	httpresp.List(c, out)
}

type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`
}

func (h *ClientHandler) CreateClient(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Nome e telefone são obrigatórios")
		return
	}

	var existing models.Client
	err := h.db.Where("salon_id = ? AND phone = ?", salonID, req.Phone).
		First(&existing).Error
	if err == nil {
		httperr.Conflict(c, "client_already_exists", "Já existe um cliente com este telefone")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Internal(c, "internal_error", "Erro ao consultar clientes")
		return
	}

	client := models.Client{
		SalonID: salonID,
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
	}

	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao criar cliente")
		return
	}

	httpresp.Created(c, clientResponse(&client))
}

func clientResponse(cl *models.Client) gin.H {
	return gin.H{
		"id":    cl.ID,
		"name":  cl.Name,
		"phone": cl.Phone,
		"email": cl.Email,
	}
}
