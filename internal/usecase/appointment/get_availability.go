package appointment

import (
	"context"
	"time"

	domain "github.com/NavalhaLabs/navalha-agenda/internal/domain/appointment"
	"github.com/NavalhaLabs/navalha-agenda/internal/httperr"
	"github.com/NavalhaLabs/navalha-agenda/internal/schedule"
	"github.com/NavalhaLabs/navalha-agenda/internal/timezone"
)

type GetAvailabilityInput struct {
	BarbershopID uint
	ServiceID    uint
	Date         string // "2006-01-02", interpretada no fuso da barbearia
	CadenceMin   int    // 0 usa a cadência padrão da política
}

// GetAvailability devolve a grade de horários de cada barbeiro que atende o
// serviço no dia pedido.
type GetAvailability struct {
	repo domain.Repository
	agg  *schedule.Aggregator
}

func NewGetAvailability(
	repo domain.Repository,
	agg *schedule.Aggregator,
) *GetAvailability {
	return &GetAvailability{
		repo: repo,
		agg:  agg,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in GetAvailabilityInput,
) ([]schedule.BarberSlots, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	day, err := time.ParseInLocation(
		schedule.DateLayout,
		in.Date,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	svc, err := uc.repo.GetService(ctx, in.BarbershopID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	return uc.agg.AvailableBarberSlots(
		ctx,
		svc.ID,
		day,
		svc.DurationMin,
		in.CadenceMin,
	)
}
