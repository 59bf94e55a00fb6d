package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NavalhaLabs/navalha-agenda/internal/httperr"
	"github.com/NavalhaLabs/navalha-agenda/internal/models"
	ucAppointment "github.com/NavalhaLabs/navalha-agenda/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db *gorm.DB

	createUC       *ucAppointment.CreateAppointment
	cancelUC       *ucAppointment.CancelAppointment
	availabilityUC *ucAppointment.GetAvailability
	calendarUC     *ucAppointment.DayAvailability
}

func NewPublicHandler(
	db *gorm.DB,
	createUC *ucAppointment.CreateAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	availabilityUC *ucAppointment.GetAvailability,
	calendarUC *ucAppointment.DayAvailability,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		createUC:       createUC,
		cancelUC:       cancelUC,
		availabilityUC: availabilityUC,
		calendarUC:     calendarUC,
	}
}

func (h *PublicHandler) shopBySlug(c *gin.Context) (*models.Barbershop, bool) {
	slug := c.Param("slug")

	var shop models.Barbershop
	if err := h.db.Where("slug = ?", slug).First(&shop).Error; err != nil {
		httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
		return nil, false
	}
	return &shop, true
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	BarberID    uint   `json:"barber_id"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))
	sort := strings.TrimSpace(strings.ToLower(c.Query("sort")))

	q := h.db.
		Where("barbershop_id = ? AND active = true", shop.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if minPriceStr := c.Query("min_price"); minPriceStr != "" {
		minPrice, err := strconv.ParseFloat(minPriceStr, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_min_price", "min_price inválido.")
			return
		}
		q = q.Where("price >= ?", minPrice)
	}

	if maxPriceStr := c.Query("max_price"); maxPriceStr != "" {
		maxPrice, err := strconv.ParseFloat(maxPriceStr, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_max_price", "max_price inválido.")
			return
		}
		q = q.Where("price <= ?", maxPrice)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	orderClause := "id ASC"
	switch sort {
	case "price_asc":
		orderClause = "price ASC"
	case "price_desc":
		orderClause = "price DESC"
	case "duration_asc":
		orderClause = "duration_min ASC"
	case "duration_desc":
		orderClause = "duration_min DESC"
	}

	var services []models.Service
	if err := q.Order(orderClause).Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barbershop": shop,
		"services":   services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY (GRADE POR BARBEIRO)
////////////////////////////////////////////////////////

func (h *PublicHandler) AvailabilityForClient(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data e serviço obrigatórios.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	cadence := 0
	if cadenceStr := c.Query("cadence"); cadenceStr != "" {
		cadence, err = strconv.Atoi(cadenceStr)
		if err != nil || cadence < 0 {
			httperr.BadRequest(c, "invalid_cadence", "Cadência inválida.")
			return
		}
	}

	barbers, err := h.availabilityUC.Execute(
		c.Request.Context(),
		ucAppointment.GetAvailabilityInput{
			BarbershopID: shop.ID,
			ServiceID:    uint(serviceID),
			Date:         dateStr,
			CadenceMin:   cadence,
		},
	)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "service_not_found"):
			httperr.BadRequest(c, "service_not_found", "Serviço inválido.")
		case httperr.IsBusiness(err, "invalid_date_or_time"):
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
		case httperr.IsBusiness(err, "invalid_cadence"):
			httperr.BadRequest(c, "invalid_cadence", "Cadência inválida.")
		default:
			httperr.Internal(c, "availability_failed", "Erro ao calcular horários.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":    dateStr,
		"barbers": barbers,
	})
}

////////////////////////////////////////////////////////
// CALENDAR (STATUS POR DIA)
////////////////////////////////////////////////////////

func (h *PublicHandler) CalendarForClient(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	fromStr := c.Query("from")
	toStr := c.Query("to")
	serviceIDStr := c.Query("service_id")

	if fromStr == "" || toStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Período e serviço obrigatórios.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	days, err := h.calendarUC.Execute(
		c.Request.Context(),
		ucAppointment.DayAvailabilityInput{
			BarbershopID: shop.ID,
			ServiceID:    uint(serviceID),
			From:         fromStr,
			To:           toStr,
		},
	)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "service_not_found"):
			httperr.BadRequest(c, "service_not_found", "Serviço inválido.")
		case httperr.IsBusiness(err, "invalid_period"):
			httperr.BadRequest(c, "invalid_period", "Período inválido.")
		case httperr.IsBusiness(err, "invalid_duration"):
			httperr.BadRequest(c, "invalid_duration", "Serviço com duração inválida.")
		default:
			httperr.Internal(c, "calendar_failed", "Erro ao montar calendário.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from": fromStr,
		"to":   toStr,
		"days": days,
	})
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	barberID := req.BarberID
	if barberID == 0 {
		// sem preferência de barbeiro: primeiro ativo que atende o serviço
		var barber models.User
		if err := h.db.
			Joins("JOIN barber_services bs ON bs.user_id = users.id").
			Where("bs.service_id = ? AND users.barbershop_id = ? AND users.active = ?",
				req.ServiceID, shop.ID, true).
			Order("users.id ASC").
			First(&barber).Error; err != nil {

			httperr.BadRequest(c, "barber_not_found", "Nenhum barbeiro atende este serviço.")
			return
		}
		barberID = barber.ID
	} else {
		var count int64
		h.db.Model(&models.User{}).
			Where("id = ? AND barbershop_id = ? AND active = ?", barberID, shop.ID, true).
			Count(&count)
		if count == 0 {
			httperr.BadRequest(c, "barber_not_found", "Barbeiro não encontrado.")
			return
		}
	}

	out, err := h.createUC.Execute(
		c.Request.Context(),
		ucAppointment.CreateAppointmentInput{
			BarbershopID: shop.ID,
			BarberID:     barberID,
			ClientName:   req.ClientName,
			ClientPhone:  req.ClientPhone,
			ClientEmail:  req.ClientEmail,
			ServiceID:    req.ServiceID,
			Date:         req.Date,
			Time:         req.Time,
			Notes:        req.Notes,
		},
	)
	if err != nil {
		mapCreateErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"appointment": gin.H{
			"public_code": out.Appointment.PublicCode,
			"barber_id":   out.Appointment.BarberID,
			"start_time":  out.Appointment.StartTime,
			"end_time":    out.Appointment.EndTime,
			"status":      out.Appointment.Status,
		},
		"payment_url": out.PaymentURL,
	})
}

////////////////////////////////////////////////////////
// LOOKUP / CANCEL POR CÓDIGO
////////////////////////////////////////////////////////

func (h *PublicHandler) GetAppointmentByCode(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	code := c.Param("code")

	var ap models.Appointment
	if err := h.db.
		Preload("Service").
		Preload("Barber").
		Where("barbershop_id = ? AND public_code = ?", shop.ID, code).
		First(&ap).Error; err != nil {

		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"public_code": ap.PublicCode,
		"service":     ap.Service.Name,
		"barber":      ap.Barber.Name,
		"start_time":  ap.StartTime,
		"end_time":    ap.EndTime,
		"status":      ap.Status,
	})
}

func (h *PublicHandler) CancelAppointmentByCode(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	code := c.Param("code")

	ap, err := h.cancelUC.ExecuteByCode(c.Request.Context(), shop.ID, code)
	if err != nil {
		if httperr.IsBusiness(err, "appointment_not_found") {
			httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
			return
		}
		if httperr.IsBusiness(err, "invalid_state") {
			httperr.BadRequest(c, "invalid_state", "Agendamento não pode ser cancelado.")
			return
		}
		httperr.Internal(c, "failed_to_cancel", "Erro ao cancelar agendamento.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"public_code": ap.PublicCode,
		"status":      ap.Status,
	})
}
