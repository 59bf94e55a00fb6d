package appointment

import (
	"context"
	"time"

	"github.com/NavalhaLabs/navalha-agenda/internal/models"
)

// Repository é o contrato de persistência dos casos de uso de agendamento.
// Os métodos de disponibilidade (GetWorkingHours, ListBookings, ListTimeOff,
// ListActiveBarbers) também satisfazem as ports de internal/schedule.
type Repository interface {
	// -------- Barbershop --------
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	GetBarbershopBySlug(
		ctx context.Context,
		slug string,
	) (*models.Barbershop, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		barbershopID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		barbershopID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Appointment (create / conflict) --------

	// CreateAppointment revalida o conflito de horário com lock de linha e
	// insere na mesma transação; devolve ErrBusiness("time_conflict") se o
	// slot foi tomado entre a consulta de disponibilidade e o commit.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForBarber(
		ctx context.Context,
		appointmentID uint,
		barberID uint,
	) (*models.Appointment, error)

	GetAppointmentByCode(
		ctx context.Context,
		barbershopID uint,
		code string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability (schedule ports) --------

	// GetWorkingHours devolve (nil, nil) quando não há expediente
	// configurado para o dia: ausência é resultado de negócio, não erro.
	GetWorkingHours(
		ctx context.Context,
		barberID uint,
		weekday int,
	) (*models.WorkingHours, error)

	ListBookings(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListTimeOff(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.TimeOff, error)

	ListActiveBarbers(
		ctx context.Context,
		serviceID uint,
	) ([]models.User, error)

	// -------- Listing --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
