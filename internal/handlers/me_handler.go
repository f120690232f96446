package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studiotrim/agenda-api/internal/httperr"
	"github.com/studiotrim/agenda-api/internal/httpresp"
	"github.com/studiotrim/agenda-api/internal/imaging"
	"github.com/studiotrim/agenda-api/internal/middleware"
	"github.com/studiotrim/agenda-api/internal/models"
	"github.com/studiotrim/agenda-api/internal/storage"
)

type MeHandler struct {
	db    *gorm.DB
	files *storage.ObjectStore
}

func NewMeHandler(db *gorm.DB, files *storage.ObjectStore) *MeHandler {
	return &MeHandler{db: db, files: files}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.Preload("Salon").First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado")
		return
	}

	httpresp.OK(c, gin.H{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"phone":      user.Phone,
		"role":       user.Role,
		"theme":      user.Theme,
		"avatar_url": user.AvatarURL,
		"salon": gin.H{
			"id":       user.Salon.ID,
			"name":     user.Salon.Name,
			"slug":     user.Salon.Slug,
			"phone":    user.Salon.Phone,
			"address":  user.Salon.Address,
			"timezone": user.Salon.Timezone,
		},
	})
}

type UpdateMeRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Theme *string `json:"theme"`
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos")
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado")
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Theme != nil {
		if *req.Theme != "light" && *req.Theme != "dark" {
			httperr.BadRequest(c, "invalid_theme", "Tema inválido")
			return
		}
		user.Theme = *req.Theme
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao atualizar usuário")
		return
	}

	httpresp.OK(c, gin.H{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"phone":      user.Phone,
		"theme":      user.Theme,
		"avatar_url": user.AvatarURL,
	})
}

func (h *MeHandler) UploadAvatar(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	if h.files == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage_disabled"})
		return
	}

	file, err := c.FormFile("avatar")
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

	url, err := h.files.Upload(c.Request.Context(), "avatars", data, "image/webp")
	if err != nil {
		httperr.Internal(c, "internal_error", "Erro ao enviar imagem")
		return
	}

	if err := h.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("avatar_url", url).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao salvar avatar")
		return
	}

	httpresp.OK(c, gin.H{"avatar_url": url})
}
