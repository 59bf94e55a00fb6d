package schedule

import (
	"context"
	"time"

	"github.com/NavalhaLabs/navalha-agenda/internal/httperr"
)

// Slot é um horário candidato da grade. Start..Start+cadência define a
// célula exibida; Start..End (End = Start+duração do serviço) é a janela
// checada contra conflitos. Indisponíveis também são retornados para a UI
// desenhar a grade completa.
type Slot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}

type Generator struct {
	hours    WorkingHoursProvider
	bookings BookingStore
	timeOff  TimeOffStore
	clock    Clock
	policy   Policy
}

func NewGenerator(
	hours WorkingHoursProvider,
	bookings BookingStore,
	timeOff TimeOffStore,
	clock Clock,
	policy Policy,
) *Generator {
	return &Generator{
		hours:    hours,
		bookings: bookings,
		timeOff:  timeOff,
		clock:    clock,
		policy:   policy,
	}
}

// Generate enumera a grade de horários de um barbeiro num dia.
// cadenceMin == 0 usa a cadência da política; duração e cadência não
// positivas são rejeitadas antes de qualquer leitura.
//
// Dia sem expediente configurado → fatia vazia, sem erro. Falha de leitura
// de agendamentos ou bloqueios → erro; nunca assumimos agenda livre.
func (g *Generator) Generate(
	ctx context.Context,
	barberID uint,
	day time.Time,
	serviceDurationMin int,
	cadenceMin int,
) ([]Slot, error) {

	if serviceDurationMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}
	if cadenceMin == 0 {
		cadenceMin = g.policy.CadenceMin
	}
	if cadenceMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_cadence")
	}

	loc := day.Location()
	dayDate := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)

	now := g.clock.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	// Dias já passados não geram grade alguma; horários passados do dia
	// corrente ainda aparecem, só que indisponíveis (máscara abaixo).
	if dayDate.Before(today) {
		return []Slot{}, nil
	}

	wh, err := g.hours.GetWorkingHours(ctx, barberID, int(dayDate.Weekday()))
	if err != nil {
		return nil, err
	}
	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return []Slot{}, nil
	}

	dayStart, err := atTime(dayDate, wh.StartTime)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_working_hours")
	}
	dayEnd, err := atTime(dayDate, wh.EndTime)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_working_hours")
	}
	if !dayEnd.After(dayStart) {
		return []Slot{}, nil
	}

	lunchStart, err := atTime(dayDate, g.policy.LunchStart)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_policy")
	}
	lunchEnd, err := atTime(dayDate, g.policy.LunchEnd)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_policy")
	}

	appointments, err := g.bookings.ListBookings(ctx, barberID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	blocks, err := g.timeOff.ListTimeOff(ctx, barberID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	busy := make([]Interval, 0, len(appointments)+len(blocks))
	for _, ap := range appointments {
		busy = append(busy, Interval{Start: ap.StartTime, End: ap.EndTime})
	}
	for _, b := range blocks {
		busy = append(busy, Interval{Start: b.StartTime, End: b.EndTime})
	}

	cadence := time.Duration(cadenceMin) * time.Minute
	duration := time.Duration(serviceDurationMin) * time.Minute

	// Primeiro início aceitável hoje: próximo tick da grade >= agora.
	isToday := dayDate.Equal(today)
	var minStart time.Time
	if isToday {
		minStart = dayStart
		if now.After(dayStart) {
			elapsed := now.Sub(dayStart)
			ticks := (elapsed + cadence - 1) / cadence
			minStart = dayStart.Add(ticks * cadence)
		}
	}

	var slots []Slot

	for cur := dayStart; !cur.Add(cadence).After(dayEnd); {

		// início dentro do almoço: pula direto para o fim da pausa,
		// sem enumerar célula
		if !cur.Before(lunchStart) && cur.Before(lunchEnd) {
			cur = lunchEnd
			continue
		}

		conflictEnd := cur.Add(duration)
		window := Interval{Start: cur, End: conflictEnd}

		available := true

		// serviço não termina dentro do expediente
		if conflictEnd.After(dayEnd) {
			available = false
		}

		if available {
			for _, b := range busy {
				if window.Overlaps(b) {
					available = false
					break
				}
			}
		}

		if available && isToday && cur.Before(minStart) {
			available = false
		}

		slots = append(slots, Slot{
			Start:     cur,
			End:       conflictEnd,
			Available: available,
		})

		cur = cur.Add(cadence)
	}

	if slots == nil {
		return []Slot{}, nil
	}
	return slots, nil
}

func atTime(day time.Time, hm string) (time.Time, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0,
		day.Location(),
	), nil
}
