package schedule

import (
	"context"
	"time"

	"github.com/NavalhaLabs/navalha-agenda/internal/httperr"
)

// Classificação de um dia do calendário para um serviço.
type DayStatus string

const (
	DayAvailable  DayStatus = "available"
	DayBooked     DayStatus = "booked"
	DayNonWorking DayStatus = "non_working_day"
)

const DateLayout = "2006-01-02"

// BarberSlots agrupa a grade gerada por barbeiro.
type BarberSlots struct {
	BarberID   uint   `json:"barber_id"`
	BarberName string `json:"barber_name"`
	Slots      []Slot `json:"slots"`
}

// Aggregator responde, por serviço, "quem atende neste dia" e "como pintar
// o calendário do mês". É uma checagem existencial em cima do Generator,
// não um segundo algoritmo.
type Aggregator struct {
	gen     *Generator
	barbers BarberDirectory
}

func NewAggregator(gen *Generator, barbers BarberDirectory) *Aggregator {
	return &Aggregator{gen: gen, barbers: barbers}
}

// AvailableBarberSlots gera a grade de cada barbeiro ativo do serviço no
// dia pedido. Barbeiros sem expediente no dia (grade vazia) ficam de fora.
func (a *Aggregator) AvailableBarberSlots(
	ctx context.Context,
	serviceID uint,
	day time.Time,
	serviceDurationMin int,
	cadenceMin int,
) ([]BarberSlots, error) {

	barbers, err := a.barbers.ListActiveBarbers(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	out := make([]BarberSlots, 0, len(barbers))

	for _, b := range barbers {
		slots, err := a.gen.Generate(ctx, b.ID, day, serviceDurationMin, cadenceMin)
		if err != nil {
			return nil, err
		}
		if len(slots) == 0 {
			continue
		}
		out = append(out, BarberSlots{
			BarberID:   b.ID,
			BarberName: b.Name,
			Slots:      slots,
		})
	}

	return out, nil
}

// DayAvailability classifica cada dia de [from, to] para o serviço:
//   - dia passado        → booked (nunca oferecer dia passado como livre)
//   - domingo            → non_working_day, regra fixa, sem consultar expediente
//   - algum slot livre   → available
//   - caso contrário     → booked
func (a *Aggregator) DayAvailability(
	ctx context.Context,
	serviceID uint,
	from time.Time,
	to time.Time,
	serviceDurationMin int,
) (map[string]DayStatus, error) {

	if serviceDurationMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	loc := from.Location()
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, loc)
	if end.Before(start) {
		return nil, httperr.ErrBusiness("invalid_period")
	}

	now := a.gen.clock.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	result := make(map[string]DayStatus)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(DateLayout)

		if d.Before(today) {
			result[key] = DayBooked
			continue
		}

		if d.Weekday() == a.gen.policy.ClosedWeekday {
			result[key] = DayNonWorking
			continue
		}

		perBarber, err := a.AvailableBarberSlots(ctx, serviceID, d, serviceDurationMin, 0)
		if err != nil {
			return nil, err
		}

		status := DayBooked
		for _, bs := range perBarber {
			for _, s := range bs.Slots {
				if s.Available {
					status = DayAvailable
					break
				}
			}
			if status == DayAvailable {
				break
			}
		}

		result[key] = status
	}

	return result, nil
}
