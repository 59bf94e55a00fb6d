package handlers

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NavalhaLabs/navalha-agenda/internal/httperr"
	"github.com/NavalhaLabs/navalha-agenda/internal/middleware"
	"github.com/NavalhaLabs/navalha-agenda/internal/models"
	"github.com/NavalhaLabs/navalha-agenda/internal/storage"
)

const maxAvatarBytes = 5 << 20

// ======================================================
// HANDLER (upload de avatar do barbeiro)
// ======================================================

type MediaHandler struct {
	db    *gorm.DB
	media *storage.MediaStore
}

func NewMediaHandler(db *gorm.DB, media *storage.MediaStore) *MediaHandler {
	return &MediaHandler{db: db, media: media}
}

func (h *MediaHandler) UploadAvatar(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Envie o arquivo no campo 'avatar'.")
		return
	}

	if fileHeader.Size > maxAvatarBytes {
		httperr.BadRequest(c, "file_too_large", "Imagem acima de 5MB.")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Erro ao ler o arquivo.")
		return
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Arquivo não é uma imagem válida (jpeg/png).")
		return
	}

	url, err := h.media.UploadAvatar(c.Request.Context(), barbershopID, barberID, img)
	if err != nil {
		httperr.Internal(c, "upload_failed", "Erro ao enviar a imagem.")
		return
	}

	if err := h.db.
		Model(&models.User{}).
		Where("id = ?", barberID).
		Update("avatar_url", url).Error; err != nil {

		httperr.Internal(c, "failed_to_save_avatar", "Erro ao salvar o avatar.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}
