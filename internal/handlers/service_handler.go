package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studiotrim/agenda-api/internal/httperr"
	"github.com/studiotrim/agenda-api/internal/httpresp"
	"github.com/studiotrim/agenda-api/internal/imaging"
	"github.com/studiotrim/agenda-api/internal/middleware"
	"github.com/studiotrim/agenda-api/internal/models"
	"github.com/studiotrim/agenda-api/internal/money"
	"github.com/studiotrim/agenda-api/internal/storage"
)

type ServiceHandler struct {
	db    *gorm.DB
	files *storage.ObjectStore
}

func NewServiceHandler(db *gorm.DB, files *storage.ObjectStore) *ServiceHandler {
	return &ServiceHandler{db: db, files: files}
}

func (h *ServiceHandler) ListServices(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	q := h.db.Where("salon_id = ?", salonID)
	if c.Query("include_inactive") != "true" {
		q = q.Where("active = ?", true)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao listar serviços")
		return
	}

	out := make([]gin.H, 0, len(services))
	for _, s := range services {
		out = append(out, serviceResponse(&s))
	}

	httpresp.List(c, out)
}

type CreateServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	DurationMin int    `json:"duration_min" binding:"required,min=5"`
	Category    string `json:"category"`

	// PriceCents é o formato preferido. PriceLabel ("R$ 50,00") é aceito
	// para clientes antigos e convertido na entrada.
	PriceCents *money.Amount `json:"price_cents"`
	PriceLabel string        `json:"price_label"`
}

func (r *CreateServiceRequest) price(c *gin.Context) (money.Amount, bool) {
	if r.PriceCents != nil {
		if *r.PriceCents < 0 {
			httperr.BadRequest(c, "invalid_price", "Preço não pode ser negativo")
			return 0, false
		}
		return *r.PriceCents, true
	}
	amount, err := money.ParseBRL(r.PriceLabel)
	if err != nil {
		httperr.BadRequest(c, "invalid_price", "Preço inválido, use o formato R$ 0,00")
		return 0, false
	}
	return amount, true
}

func (h *ServiceHandler) CreateService(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Nome e duração são obrigatórios")
		return
	}

	amount, ok := req.price(c)
	if !ok {
		return
	}

	svc := models.Service{
		SalonID:     salonID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		DurationMin: req.DurationMin,
		PriceCents:  amount,
		Category:    req.Category,
		Active:      true,
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao criar serviço")
		return
	}

	httpresp.Created(c, serviceResponse(&svc))
}

type UpdateServiceRequest struct {
	Name        *string       `json:"name"`
	Description *string       `json:"description"`
	DurationMin *int          `json:"duration_min"`
	Category    *string       `json:"category"`
	Active      *bool         `json:"active"`
	PriceCents  *money.Amount `json:"price_cents"`
	PriceLabel  *string       `json:"price_label"`
}

func (h *ServiceHandler) UpdateService(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	svc, ok := h.ownedService(c, salonID)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos")
		return
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.DurationMin != nil {
		if *req.DurationMin < 5 {
			httperr.BadRequest(c, "invalid_duration", "Duração mínima é de 5 minutos")
			return
		}
		svc.DurationMin = *req.DurationMin
	}
	if req.Category != nil {
		svc.Category = *req.Category
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}
	if req.PriceCents != nil {
		if *req.PriceCents < 0 {
			httperr.BadRequest(c, "invalid_price", "Preço não pode ser negativo")
			return
		}
		svc.PriceCents = *req.PriceCents
	} else if req.PriceLabel != nil {
		amount, err := money.ParseBRL(*req.PriceLabel)
		if err != nil {
			httperr.BadRequest(c, "invalid_price", "Preço inválido, use o formato R$ 0,00")
			return
		}
		svc.PriceCents = amount
	}

	if err := h.db.Save(svc).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao atualizar serviço")
		return
	}

	httpresp.OK(c, serviceResponse(svc))
}

func (h *ServiceHandler) UploadImage(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	if h.files == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage_disabled"})
		return
	}

	svc, ok := h.ownedService(c, salonID)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Arquivo de imagem obrigatório")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.Internal(c, "internal_error", "Erro ao ler arquivo")
		return
	}
	defer src.Close()

	data, err := imaging.Normalize(src)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagem inválida")
		return
	}

	url, err := h.files.Upload(c.Request.Context(), "services", data, "image/webp")
	if err != nil {
		httperr.Internal(c, "internal_error", "Erro ao enviar imagem")
		return
	}

	svc.ImageURL = url
	if err := h.db.Save(svc).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao salvar imagem")
		return
	}

	httpresp.OK(c, serviceResponse(svc))
}

func (h *ServiceHandler) ownedService(c *gin.Context, salonID uint) (*models.Service, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido")
		return nil, false
	}

	var svc models.Service
	if err := h.db.Where("id = ? AND salon_id = ?", id, salonID).
		First(&svc).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado")
		return nil, false
	}
	return &svc, true
}

func serviceResponse(s *models.Service) gin.H {
	return gin.H{
		"id":           s.ID,
		"name":         s.Name,
		"description":  s.Description,
		"duration_min": s.DurationMin,
		"price_cents":  s.PriceCents,
		"price_label":  s.PriceLabel(),
		"category":     s.Category,
		"image_url":    s.ImageURL,
		"active":       s.Active,
	}
}
