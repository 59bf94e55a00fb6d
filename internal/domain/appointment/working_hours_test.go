package appointment

import (
	"testing"
	"time"

	"github.com/NavalhaLabs/navalha-agenda/internal/models"
	"github.com/NavalhaLabs/navalha-agenda/internal/schedule"
)

func mondayAt(t *testing.T, hour, min int) time.Time {
	t.Helper()
	return time.Date(2026, time.March, 2, hour, min, 0, 0, time.UTC)
}

func fullDayHours() *models.WorkingHours {
	return &models.WorkingHours{
		BarberID:  1,
		Weekday:   int(time.Monday),
		StartTime: "10:00",
		EndTime:   "20:00",
		Active:    true,
	}
}

func TestWithinWorkingHours(t *testing.T) {
	policy := schedule.DefaultPolicy()
	wh := fullDayHours()

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"dentro do expediente", mondayAt(t, 11, 0), mondayAt(t, 11, 45), true},
		{"termina exatamente no fechamento", mondayAt(t, 19, 15), mondayAt(t, 20, 0), true},
		{"comeca antes da abertura", mondayAt(t, 9, 30), mondayAt(t, 10, 15), false},
		{"passa do fechamento", mondayAt(t, 19, 30), mondayAt(t, 20, 15), false},
		{"dentro do almoco", mondayAt(t, 14, 30), mondayAt(t, 15, 0), false},
		{"avanca sobre o almoco", mondayAt(t, 14, 15), mondayAt(t, 15, 0), false},
		{"termina quando o almoco comeca", mondayAt(t, 13, 45), mondayAt(t, 14, 30), true},
		{"comeca quando o almoco termina", mondayAt(t, 15, 0), mondayAt(t, 15, 45), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := WithinWorkingHours(wh, policy, tc.start, tc.end)
			if got != tc.want {
				t.Fatalf("WithinWorkingHours(%s-%s) = %v, esperado %v",
					tc.start.Format("15:04"), tc.end.Format("15:04"), got, tc.want)
			}
		})
	}
}

func TestWithinWorkingHoursNoConfig(t *testing.T) {
	policy := schedule.DefaultPolicy()

	if WithinWorkingHours(nil, policy, mondayAt(t, 11, 0), mondayAt(t, 11, 45)) {
		t.Fatal("sem expediente configurado deve recusar")
	}

	inactive := fullDayHours()
	inactive.Active = false
	if WithinWorkingHours(inactive, policy, mondayAt(t, 11, 0), mondayAt(t, 11, 45)) {
		t.Fatal("expediente inativo deve recusar")
	}
}

func TestCancelAndComplete(t *testing.T) {
	now := mondayAt(t, 12, 0)

	ap := &models.Appointment{Status: string(StatusScheduled)}
	if err := Cancel(ap, now); err != nil {
		t.Fatalf("cancelamento de agendado falhou: %v", err)
	}
	if ap.Status != string(StatusCancelled) || ap.CancelledAt == nil {
		t.Fatalf("estado apos cancelar: %s", ap.Status)
	}

	if err := Cancel(ap, now); err == nil {
		t.Fatal("cancelar duas vezes deveria falhar")
	}

	ap2 := &models.Appointment{Status: string(StatusScheduled)}
	if err := Complete(ap2, now); err != nil {
		t.Fatalf("conclusao de agendado falhou: %v", err)
	}
	if ap2.Status != string(StatusCompleted) || ap2.CompletedAt == nil {
		t.Fatalf("estado apos concluir: %s", ap2.Status)
	}

	if err := Complete(ap2, now); err == nil {
		t.Fatal("concluir duas vezes deveria falhar")
	}
}
