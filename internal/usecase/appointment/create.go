package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/NavalhaLabs/navalha-agenda/internal/audit"
	"github.com/NavalhaLabs/navalha-agenda/internal/cache"
	domain "github.com/NavalhaLabs/navalha-agenda/internal/domain/appointment"
	"github.com/NavalhaLabs/navalha-agenda/internal/httperr"
	"github.com/NavalhaLabs/navalha-agenda/internal/logger"
	"github.com/NavalhaLabs/navalha-agenda/internal/models"
	"github.com/NavalhaLabs/navalha-agenda/internal/payments"
	"github.com/NavalhaLabs/navalha-agenda/internal/schedule"
	"github.com/NavalhaLabs/navalha-agenda/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateAppointmentInput struct {
	BarbershopID uint
	BarberID     uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID uint

	Date  string
	Time  string
	Notes string

	// quem disparou a criação; nil quando veio da página pública
	ActorID *uint
}

type CreateAppointmentOutput struct {
	Appointment *models.Appointment
	// link de pagamento do sinal; vazio quando a loja não exige depósito
	PaymentURL string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	cache    *cache.AvailabilityCache
	deposits *payments.DepositService
	policy   schedule.Policy
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.AvailabilityCache,
	deposits *payments.DepositService,
	policy schedule.Policy,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		audit:    audit,
		cache:    cache,
		deposits: deposits,
		policy:   policy,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*CreateAppointmentOutput, error) {

	// --------------------------------------------------
	// 1️⃣ Barbearia
	// --------------------------------------------------
	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Data / hora no timezone da barbearia
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if start.Weekday() == uc.policy.ClosedWeekday {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	// --------------------------------------------------
	// 3️⃣ Antecedência mínima
	// --------------------------------------------------
	minAdvance := shop.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(shop.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 4️⃣ Serviço
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, in.BarbershopID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

	// --------------------------------------------------
	// 5️⃣ Expediente + almoço
	// --------------------------------------------------
	wh, err := uc.repo.GetWorkingHours(ctx, in.BarberID, int(start.Weekday()))
	if err != nil {
		return nil, err
	}
	if !domain.WithinWorkingHours(wh, uc.policy, start, end) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	// --------------------------------------------------
	// 6️⃣ Bloqueios de agenda
	// --------------------------------------------------
	blocks, err := uc.repo.ListTimeOff(ctx, in.BarberID, start, end)
	if err != nil {
		return nil, err
	}
	if len(blocks) > 0 {
		return nil, httperr.ErrBusiness("time_conflict")
	}

	// --------------------------------------------------
	// 7️⃣ Cliente (get or create)
	// --------------------------------------------------
	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.BarbershopID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 8️⃣ Criação (conflito revalidado com lock no repo)
	// --------------------------------------------------
	ap := &models.Appointment{
		BarbershopID: in.BarbershopID,
		BarberID:     in.BarberID,
		ClientID:     client.ID,
		ServiceID:    svc.ID,
		StartTime:    start,
		EndTime:      end,
		Status:       string(domain.InitialStatus()),
		PublicCode:   uuid.NewString(),
		Notes:        in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 9️⃣ Auditoria + cache
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       in.ActorID,
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	uc.cache.InvalidateShop(ctx, in.BarbershopID)

	// --------------------------------------------------
	// 🔟 Sinal (opcional)
	// --------------------------------------------------
	out := &CreateAppointmentOutput{Appointment: ap}

	if uc.deposits != nil && shop.DepositAmount > 0 {
		url, err := uc.deposits.CreateDepositPreference(ctx, shop, svc, ap)
		if err != nil {
			// reserva já está feita; falha no checkout não a desfaz
			logger.L().Warn("deposit preference failed",
				zap.Uint("appointment_id", ap.ID),
				zap.Error(err),
			)
		} else {
			out.PaymentURL = url
		}
	}

	return out, nil
}
