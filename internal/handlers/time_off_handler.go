package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NavalhaLabs/navalha-agenda/internal/httperr"
	"github.com/NavalhaLabs/navalha-agenda/internal/httpresp"
	"github.com/NavalhaLabs/navalha-agenda/internal/middleware"
	"github.com/NavalhaLabs/navalha-agenda/internal/models"
)

// ======================================================
// HANDLER (bloqueios de agenda do barbeiro)
// ======================================================

type TimeOffHandler struct {
	db *gorm.DB
}

func NewTimeOffHandler(db *gorm.DB) *TimeOffHandler {
	return &TimeOffHandler{db: db}
}

type CreateTimeOffRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Reason    string    `json:"reason"`
}

func (h *TimeOffHandler) List(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	var blocks []models.TimeOff
	if err := h.db.
		Where("barber_id = ?", barberID).
		Order("start_time ASC").
		Find(&blocks).Error; err != nil {

		httperr.Internal(c, "failed_to_list_time_off", "Erro ao listar bloqueios.")
		return
	}

	httpresp.List(c, blocks)
}

func (h *TimeOffHandler) Create(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateTimeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if !req.EndTime.After(req.StartTime) {
		httperr.BadRequest(c, "invalid_period", "Fim deve ser depois do início.")
		return
	}

	block := models.TimeOff{
		BarberID:  barberID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	}

	if err := h.db.Create(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_create_time_off", "Erro ao criar bloqueio.")
		return
	}

	c.JSON(http.StatusCreated, block)
}

func (h *TimeOffHandler) Delete(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	res := h.db.
		Where("id = ? AND barber_id = ?", id, barberID).
		Delete(&models.TimeOff{})

	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_time_off", "Erro ao remover bloqueio.")
		return
	}

	if res.RowsAffected == 0 {
		httperr.NotFound(c, "time_off_not_found", "Bloqueio não encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
