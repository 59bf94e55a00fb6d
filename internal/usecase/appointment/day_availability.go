package appointment

import (
	"context"
	"time"

	"github.com/NavalhaLabs/navalha-agenda/internal/cache"
	domain "github.com/NavalhaLabs/navalha-agenda/internal/domain/appointment"
	"github.com/NavalhaLabs/navalha-agenda/internal/httperr"
	"github.com/NavalhaLabs/navalha-agenda/internal/schedule"
	"github.com/NavalhaLabs/navalha-agenda/internal/timezone"
)

type DayAvailabilityInput struct {
	BarbershopID uint
	ServiceID    uint
	From         string // "2006-01-02"
	To           string // "2006-01-02", inclusivo
}

// DayAvailability classifica cada dia do período para pintar o calendário
// do cliente. O resultado fica em cache por alguns minutos; criação e
// cancelamento de agendamento invalidam o cache da loja.
type DayAvailability struct {
	repo  domain.Repository
	agg   *schedule.Aggregator
	cache *cache.AvailabilityCache
}

func NewDayAvailability(
	repo domain.Repository,
	agg *schedule.Aggregator,
	cache *cache.AvailabilityCache,
) *DayAvailability {
	return &DayAvailability{
		repo:  repo,
		agg:   agg,
		cache: cache,
	}
}

func (uc *DayAvailability) Execute(
	ctx context.Context,
	in DayAvailabilityInput,
) (map[string]schedule.DayStatus, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)

	from, err := time.ParseInLocation(schedule.DateLayout, in.From, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_period")
	}
	to, err := time.ParseInLocation(schedule.DateLayout, in.To, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_period")
	}

	svc, err := uc.repo.GetService(ctx, in.BarbershopID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	if days, ok := uc.cache.Get(ctx, in.BarbershopID, svc.ID, in.From, in.To); ok {
		return days, nil
	}

	days, err := uc.agg.DayAvailability(ctx, svc.ID, from, to, svc.DurationMin)
	if err != nil {
		return nil, err
	}

	uc.cache.Set(ctx, in.BarbershopID, svc.ID, in.From, in.To, days)

	return days, nil
}
