package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/NavalhaLabs/navalha-agenda/internal/httperr"
	"github.com/NavalhaLabs/navalha-agenda/internal/models"
)

// ------------------------------
// fakes
// ------------------------------

type fakeHours struct {
	rows map[int]*models.WorkingHours
	err  error
}

func (f fakeHours) GetWorkingHours(_ context.Context, _ uint, weekday int) (*models.WorkingHours, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[weekday], nil
}

type fakeBookings struct {
	items []models.Appointment
	err   error
}

func (f fakeBookings) ListBookings(_ context.Context, _ uint, _, _ time.Time) ([]models.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

type fakeTimeOff struct {
	items []models.TimeOff
	err   error
}

func (f fakeTimeOff) ListTimeOff(_ context.Context, _ uint, _, _ time.Time) ([]models.TimeOff, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

// ------------------------------
// helpers
// ------------------------------

// 2026-03-02 é uma segunda-feira.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func hm(day time.Time, hour, min int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, day.Location())
}

func mondayHours(start, end string) map[int]*models.WorkingHours {
	return map[int]*models.WorkingHours{
		int(time.Monday): {
			BarberID:  1,
			Weekday:   int(time.Monday),
			StartTime: start,
			EndTime:   end,
			Active:    true,
		},
	}
}

func newTestGenerator(hours fakeHours, bookings fakeBookings, timeOff fakeTimeOff, now time.Time) *Generator {
	return NewGenerator(hours, bookings, timeOff, fixedClock{t: now}, DefaultPolicy())
}

func slotAt(t *testing.T, slots []Slot, hour, min int) Slot {
	t.Helper()
	want := hm(monday, hour, min)
	for _, s := range slots {
		if s.Start.Equal(want) {
			return s
		}
	}
	t.Fatalf("no slot starting at %02d:%02d", hour, min)
	return Slot{}
}

func hasSlotAt(slots []Slot, hour, min int) bool {
	want := hm(monday, hour, min)
	for _, s := range slots {
		if s.Start.Equal(want) {
			return true
		}
	}
	return false
}

// pastNow fixa "hoje" bem antes do dia gerado, para não mascarar horários.
var pastNow = time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)

// ------------------------------
// cenário de referência: segunda 10:00–20:00, serviço de 45min,
// agendamento existente 12:00–12:45
// ------------------------------

func referenceSlots(t *testing.T) []Slot {
	t.Helper()

	gen := newTestGenerator(
		fakeHours{rows: mondayHours("10:00", "20:00")},
		fakeBookings{items: []models.Appointment{{
			BarberID:  1,
			StartTime: hm(monday, 12, 0),
			EndTime:   hm(monday, 12, 45),
			Status:    "scheduled",
		}}},
		fakeTimeOff{},
		pastNow,
	)

	slots, err := gen.Generate(context.Background(), 1, monday, 45, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return slots
}

func TestGenerate_BookingConflicts(t *testing.T) {
	slots := referenceSlots(t)

	if s := slotAt(t, slots, 11, 0); !s.Available {
		t.Fatalf("11:00 must be available, got %+v", s)
	}
	if s := slotAt(t, slots, 11, 15); !s.Available {
		t.Fatalf("11:15 ends exactly at booking start, must be available")
	}
	if s := slotAt(t, slots, 11, 30); s.Available {
		t.Fatalf("11:30 overlaps the 12:00 booking, must be unavailable")
	}
	if s := slotAt(t, slots, 11, 45); s.Available {
		t.Fatalf("11:45 overlaps the 12:00 booking, must be unavailable")
	}
	if s := slotAt(t, slots, 12, 0); s.Available {
		t.Fatalf("12:00 is the booking itself, must be unavailable")
	}
	if s := slotAt(t, slots, 12, 45); !s.Available {
		t.Fatalf("12:45 starts at booking end, must be available")
	}
	if s := slotAt(t, slots, 13, 0); !s.Available {
		t.Fatalf("13:00 must be available")
	}
}

func TestGenerate_SlotEndIsConflictWindow(t *testing.T) {
	slots := referenceSlots(t)

	s := slotAt(t, slots, 11, 0)
	if !s.End.Equal(hm(monday, 11, 45)) {
		t.Fatalf("slot end must be start+duration, got %v", s.End)
	}
}

func TestGenerate_LunchBreakStartsSkipped(t *testing.T) {
	slots := referenceSlots(t)

	for _, s := range slots {
		h, m := s.Start.Hour(), s.Start.Minute()
		if h == 14 && m >= 30 {
			t.Fatalf("slot start %02d:%02d falls inside the lunch break", h, m)
		}
	}

	if !hasSlotAt(slots, 14, 15) {
		t.Fatalf("14:15 is a valid tick before the break and must be enumerated")
	}
	if s := slotAt(t, slots, 14, 15); !s.Available {
		t.Fatalf("14:15 has no conflicts and must be available even though the service runs to 15:00")
	}
	if !hasSlotAt(slots, 15, 0) {
		t.Fatalf("grid must resume at 15:00 after the break")
	}
}

func TestGenerate_CadenceRegularity(t *testing.T) {
	slots := referenceSlots(t)

	cadence := 15 * time.Minute
	breakGap := 45 * time.Minute // 14:15 → 15:00

	for i := 1; i < len(slots); i++ {
		gap := slots[i].Start.Sub(slots[i-1].Start)
		if gap == cadence {
			continue
		}
		if gap == breakGap && slots[i-1].Start.Equal(hm(monday, 14, 15)) {
			continue
		}
		t.Fatalf("irregular gap %v between %v and %v", gap, slots[i-1].Start, slots[i].Start)
	}
}

func TestGenerate_ClosingTimeSlots(t *testing.T) {
	slots := referenceSlots(t)

	// 19:45 é o último tick cuja célula de 15min cabe no expediente;
	// o serviço de 45min não termina até 20:00, então fica indisponível.
	last := slots[len(slots)-1]
	if !last.Start.Equal(hm(monday, 19, 45)) {
		t.Fatalf("last enumerated slot must be 19:45, got %v", last.Start)
	}
	if last.Available {
		t.Fatalf("19:45 cannot finish a 45min service before closing")
	}
	if s := slotAt(t, slots, 19, 15); !s.Available {
		t.Fatalf("19:15 finishes exactly at closing and must be available")
	}
}

// ------------------------------
// demais propriedades
// ------------------------------

func TestGenerate_DayOffIsEmpty(t *testing.T) {
	gen := newTestGenerator(fakeHours{rows: map[int]*models.WorkingHours{}}, fakeBookings{}, fakeTimeOff{}, pastNow)

	slots, err := gen.Generate(context.Background(), 1, monday, 30, 15)
	if err != nil {
		t.Fatalf("day off must not be an error, got %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected empty grid, got %d slots", len(slots))
	}
}

func TestGenerate_InactiveRowIsEmpty(t *testing.T) {
	rows := mondayHours("10:00", "20:00")
	rows[int(time.Monday)].Active = false

	gen := newTestGenerator(fakeHours{rows: rows}, fakeBookings{}, fakeTimeOff{}, pastNow)

	slots, err := gen.Generate(context.Background(), 1, monday, 30, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("inactive weekday must yield an empty grid")
	}
}

func TestGenerate_PastDayIsEmpty(t *testing.T) {
	futureNow := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	gen := newTestGenerator(fakeHours{rows: mondayHours("10:00", "20:00")}, fakeBookings{}, fakeTimeOff{}, futureNow)

	slots, err := gen.Generate(context.Background(), 1, monday, 30, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("past days must not enumerate slots")
	}
}

func TestGenerate_TodayMasksPastTicks(t *testing.T) {
	// agora = 11:50 de segunda → próximo tick da grade é 12:00
	now := hm(monday, 11, 50)
	gen := newTestGenerator(fakeHours{rows: mondayHours("10:00", "20:00")}, fakeBookings{}, fakeTimeOff{}, now)

	slots, err := gen.Generate(context.Background(), 1, monday, 30, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s := slotAt(t, slots, 10, 0); s.Available {
		t.Fatalf("10:00 already passed and must be masked")
	}
	if s := slotAt(t, slots, 11, 45); s.Available {
		t.Fatalf("11:45 is before the next aligned tick and must be masked")
	}
	if s := slotAt(t, slots, 12, 0); !s.Available {
		t.Fatalf("12:00 is the next aligned tick and must be available")
	}
}

func TestGenerate_FutureDayIsNotMasked(t *testing.T) {
	gen := newTestGenerator(fakeHours{rows: mondayHours("10:00", "20:00")}, fakeBookings{}, fakeTimeOff{}, pastNow)

	slots, err := gen.Generate(context.Background(), 1, monday, 30, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s := slotAt(t, slots, 10, 0); !s.Available {
		t.Fatalf("future days must not mask early slots")
	}
}

func TestGenerate_TimeOffConflicts(t *testing.T) {
	gen := newTestGenerator(
		fakeHours{rows: mondayHours("10:00", "20:00")},
		fakeBookings{},
		fakeTimeOff{items: []models.TimeOff{{
			BarberID:  1,
			StartTime: hm(monday, 16, 0),
			EndTime:   hm(monday, 18, 0),
		}}},
		pastNow,
	)

	slots, err := gen.Generate(context.Background(), 1, monday, 45, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s := slotAt(t, slots, 15, 15); !s.Available {
		t.Fatalf("15:15 ends exactly at the block start, must be available")
	}
	if s := slotAt(t, slots, 15, 30); s.Available {
		t.Fatalf("15:30 runs into the block, must be unavailable")
	}
	if s := slotAt(t, slots, 17, 45); s.Available {
		t.Fatalf("17:45 starts inside the block, must be unavailable")
	}
	if s := slotAt(t, slots, 18, 0); !s.Available {
		t.Fatalf("18:00 starts at the block end, must be available")
	}
}

func TestGenerate_NoDoubleBooking(t *testing.T) {
	slots := referenceSlots(t)

	booking := Interval{Start: hm(monday, 12, 0), End: hm(monday, 12, 45)}
	for _, s := range slots {
		if s.Available && (Interval{Start: s.Start, End: s.End}).Overlaps(booking) {
			t.Fatalf("available slot %v..%v overlaps an existing booking", s.Start, s.End)
		}
	}
}

// ------------------------------
// falhas
// ------------------------------

func TestGenerate_UpstreamBookingErrorPropagates(t *testing.T) {
	boom := errors.New("db down")
	gen := newTestGenerator(fakeHours{rows: mondayHours("10:00", "20:00")}, fakeBookings{err: boom}, fakeTimeOff{}, pastNow)

	_, err := gen.Generate(context.Background(), 1, monday, 30, 15)
	if !errors.Is(err, boom) {
		t.Fatalf("booking read failure must propagate, got %v", err)
	}
}

func TestGenerate_UpstreamTimeOffErrorPropagates(t *testing.T) {
	boom := errors.New("db down")
	gen := newTestGenerator(fakeHours{rows: mondayHours("10:00", "20:00")}, fakeBookings{}, fakeTimeOff{err: boom}, pastNow)

	_, err := gen.Generate(context.Background(), 1, monday, 30, 15)
	if !errors.Is(err, boom) {
		t.Fatalf("time-off read failure must propagate, got %v", err)
	}
}

func TestGenerate_UpstreamHoursErrorPropagates(t *testing.T) {
	boom := errors.New("db down")
	gen := newTestGenerator(fakeHours{err: boom}, fakeBookings{}, fakeTimeOff{}, pastNow)

	_, err := gen.Generate(context.Background(), 1, monday, 30, 15)
	if !errors.Is(err, boom) {
		t.Fatalf("working-hours read failure must propagate, got %v", err)
	}
}

func TestGenerate_InvalidInput(t *testing.T) {
	gen := newTestGenerator(fakeHours{rows: mondayHours("10:00", "20:00")}, fakeBookings{}, fakeTimeOff{}, pastNow)

	if _, err := gen.Generate(context.Background(), 1, monday, 0, 15); !httperr.IsBusiness(err, "invalid_duration") {
		t.Fatalf("zero duration must be rejected, got %v", err)
	}
	if _, err := gen.Generate(context.Background(), 1, monday, -30, 15); !httperr.IsBusiness(err, "invalid_duration") {
		t.Fatalf("negative duration must be rejected, got %v", err)
	}
	if _, err := gen.Generate(context.Background(), 1, monday, 30, -15); !httperr.IsBusiness(err, "invalid_cadence") {
		t.Fatalf("negative cadence must be rejected, got %v", err)
	}
}

func TestGenerate_ZeroCadenceUsesPolicyDefault(t *testing.T) {
	gen := newTestGenerator(fakeHours{rows: mondayHours("10:00", "11:00")}, fakeBookings{}, fakeTimeOff{}, pastNow)

	slots, err := gen.Generate(context.Background(), 1, monday, 30, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 10:00..11:00 com cadência default de 15min → 10:00, 10:15, 10:30, 10:45
	if len(slots) != 4 {
		t.Fatalf("expected 4 slots with the default cadence, got %d", len(slots))
	}
}

func TestGenerate_MalformedWorkingHours(t *testing.T) {
	rows := mondayHours("10h00", "20:00")
	gen := newTestGenerator(fakeHours{rows: rows}, fakeBookings{}, fakeTimeOff{}, pastNow)

	if _, err := gen.Generate(context.Background(), 1, monday, 30, 15); !httperr.IsBusiness(err, "invalid_working_hours") {
		t.Fatalf("malformed stored hours must surface as an error, got %v", err)
	}
}
