package schedule

import (
	"context"
	"time"

	"github.com/NavalhaLabs/navalha-agenda/internal/models"
)

// WorkingHoursProvider resolve o expediente de um barbeiro num dia da
// semana. Ausência de configuração retorna (nil, nil): dia sem expediente,
// nunca um erro. Erros são falhas reais de leitura e devem subir: devolver
// vazio aqui mostraria disponibilidade falsa.
type WorkingHoursProvider interface {
	GetWorkingHours(ctx context.Context, barberID uint, weekday int) (*models.WorkingHours, error)
}

// BookingStore lista agendamentos não cancelados que tocam [start, end].
type BookingStore interface {
	ListBookings(ctx context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error)
}

// TimeOffStore lista bloqueios de agenda que tocam [start, end].
type TimeOffStore interface {
	ListTimeOff(ctx context.Context, barberID uint, start, end time.Time) ([]models.TimeOff, error)
}

// BarberDirectory resolve os barbeiros ativos que executam um serviço.
type BarberDirectory interface {
	ListActiveBarbers(ctx context.Context, serviceID uint) ([]models.User, error)
}
