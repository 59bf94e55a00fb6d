package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/NavalhaLabs/navalha-agenda/internal/httperr"
	"github.com/NavalhaLabs/navalha-agenda/internal/models"
)

type fakeDirectory struct {
	barbers []models.User
	err     error
}

func (f fakeDirectory) ListActiveBarbers(_ context.Context, _ uint) ([]models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.barbers, nil
}

type hoursByBarber struct {
	rows map[uint]map[int]*models.WorkingHours
}

func (f hoursByBarber) GetWorkingHours(_ context.Context, barberID uint, weekday int) (*models.WorkingHours, error) {
	byDay := f.rows[barberID]
	if byDay == nil {
		return nil, nil
	}
	return byDay[weekday], nil
}

func allWeekHours(barberID uint, start, end string) map[int]*models.WorkingHours {
	rows := make(map[int]*models.WorkingHours)
	for wd := 0; wd < 7; wd++ {
		rows[wd] = &models.WorkingHours{
			BarberID:  barberID,
			Weekday:   wd,
			StartTime: start,
			EndTime:   end,
			Active:    true,
		}
	}
	return rows
}

func newTestAggregator(hours WorkingHoursProvider, bookings fakeBookings, dir fakeDirectory, now time.Time) *Aggregator {
	gen := NewGenerator(hours, bookings, fakeTimeOff{}, fixedClock{t: now}, DefaultPolicy())
	return NewAggregator(gen, dir)
}

// 2026-03-01 é um domingo.
var sunday = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func TestDayAvailability_SundayShortcut(t *testing.T) {
	// barbeiro com expediente configurado até aos domingos: o atalho de
	// domingo fechado vale mesmo assim
	agg := newTestAggregator(
		hoursByBarber{rows: map[uint]map[int]*models.WorkingHours{1: allWeekHours(1, "09:00", "18:00")}},
		fakeBookings{},
		fakeDirectory{barbers: []models.User{{ID: 1, Name: "Rafa"}}},
		pastNow,
	)

	days, err := agg.DayAvailability(context.Background(), 10, sunday, sunday.AddDate(0, 0, 13), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for key, status := range days {
		d, _ := time.Parse(DateLayout, key)
		if d.Weekday() == time.Sunday && status != DayNonWorking {
			t.Fatalf("sunday %s must be non_working_day, got %s", key, status)
		}
		if d.Weekday() != time.Sunday && status != DayAvailable {
			t.Fatalf("open weekday %s with free grid must be available, got %s", key, status)
		}
	}
}

func TestDayAvailability_PastDaysAreBooked(t *testing.T) {
	now := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	agg := newTestAggregator(
		hoursByBarber{rows: map[uint]map[int]*models.WorkingHours{1: allWeekHours(1, "09:00", "18:00")}},
		fakeBookings{},
		fakeDirectory{barbers: []models.User{{ID: 1, Name: "Rafa"}}},
		now,
	)

	days, err := agg.DayAvailability(context.Background(), 10, sunday.AddDate(0, 0, 1), sunday.AddDate(0, 0, 4), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if days["2026-03-02"] != DayBooked {
		t.Fatalf("past monday must be booked, got %s", days["2026-03-02"])
	}
	if days["2026-03-03"] != DayBooked {
		t.Fatalf("past tuesday must be booked, got %s", days["2026-03-03"])
	}
	if days["2026-03-04"] != DayAvailable {
		t.Fatalf("today with free afternoon must be available, got %s", days["2026-03-04"])
	}
}

func TestDayAvailability_FullyBookedWeekday(t *testing.T) {
	// agenda inteira coberta por um único agendamento
	agg := newTestAggregator(
		hoursByBarber{rows: map[uint]map[int]*models.WorkingHours{1: allWeekHours(1, "10:00", "12:00")}},
		fakeBookings{items: []models.Appointment{{
			BarberID:  1,
			StartTime: hm(monday, 10, 0),
			EndTime:   hm(monday, 12, 0),
			Status:    "scheduled",
		}}},
		fakeDirectory{barbers: []models.User{{ID: 1, Name: "Rafa"}}},
		pastNow,
	)

	days, err := agg.DayAvailability(context.Background(), 10, monday, monday, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if days["2026-03-02"] != DayBooked {
		t.Fatalf("fully booked weekday must be booked, got %s", days["2026-03-02"])
	}
}

func TestDayAvailability_MatchesSlotExistence(t *testing.T) {
	// dois barbeiros: um de folga na segunda, outro com agenda livre;
	// um único slot livre basta para o dia contar como disponível
	rows := map[uint]map[int]*models.WorkingHours{
		2: allWeekHours(2, "10:00", "12:00"),
	}
	agg := newTestAggregator(
		hoursByBarber{rows: rows},
		fakeBookings{},
		fakeDirectory{barbers: []models.User{{ID: 1, Name: "Folgado"}, {ID: 2, Name: "Rafa"}}},
		pastNow,
	)

	days, err := agg.DayAvailability(context.Background(), 10, monday, monday, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days["2026-03-02"] != DayAvailable {
		t.Fatalf("one free barber is enough, got %s", days["2026-03-02"])
	}

	perBarber, err := agg.AvailableBarberSlots(context.Background(), 10, monday, 30, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(perBarber) != 1 || perBarber[0].BarberID != 2 {
		t.Fatalf("day-off barbers must be dropped, got %+v", perBarber)
	}
}

func TestDayAvailability_NoActiveBarbers(t *testing.T) {
	agg := newTestAggregator(hoursByBarber{}, fakeBookings{}, fakeDirectory{}, pastNow)

	days, err := agg.DayAvailability(context.Background(), 10, monday, monday, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days["2026-03-02"] != DayBooked {
		t.Fatalf("no barbers means nothing bookable, got %s", days["2026-03-02"])
	}
}

func TestDayAvailability_DirectoryErrorPropagates(t *testing.T) {
	boom := errors.New("db down")
	agg := newTestAggregator(hoursByBarber{}, fakeBookings{}, fakeDirectory{err: boom}, pastNow)

	_, err := agg.DayAvailability(context.Background(), 10, monday, monday, 30)
	if !errors.Is(err, boom) {
		t.Fatalf("directory failure must propagate, got %v", err)
	}
}

func TestDayAvailability_InvalidInput(t *testing.T) {
	agg := newTestAggregator(hoursByBarber{}, fakeBookings{}, fakeDirectory{}, pastNow)

	if _, err := agg.DayAvailability(context.Background(), 10, monday, monday, 0); !httperr.IsBusiness(err, "invalid_duration") {
		t.Fatalf("zero duration must be rejected, got %v", err)
	}
	if _, err := agg.DayAvailability(context.Background(), 10, monday, monday.AddDate(0, 0, -3), 30); !httperr.IsBusiness(err, "invalid_period") {
		t.Fatalf("inverted range must be rejected, got %v", err)
	}
}
