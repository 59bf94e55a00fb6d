package appointment

import (
	"time"

	"github.com/NavalhaLabs/navalha-agenda/internal/models"
	"github.com/NavalhaLabs/navalha-agenda/internal/schedule"
)

// WithinWorkingHours valida se um intervalo cabe no expediente do barbeiro,
// fora da pausa de almoço (regra de domínio do caminho de escrita: a grade
// pode exibir um horário que avança sobre o almoço, mas a criação aplica a
// política da loja).
func WithinWorkingHours(
	wh *models.WorkingHours,
	policy schedule.Policy,
	start time.Time,
	end time.Time,
) bool {

	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return false
	}

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			start.Year(), start.Month(), start.Day(),
			t.Hour(), t.Minute(), 0, 0,
			start.Location(),
		)
	}

	workStart := parseHM(wh.StartTime)
	workEnd := parseHM(wh.EndTime)

	if start.Before(workStart) || end.After(workEnd) {
		return false
	}

	lunch := schedule.Interval{
		Start: parseHM(policy.LunchStart),
		End:   parseHM(policy.LunchEnd),
	}
	requested := schedule.Interval{Start: start, End: end}

	return !requested.Overlaps(lunch)
}
