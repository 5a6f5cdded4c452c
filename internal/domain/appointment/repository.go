package appointment

import (
	"context"
	"time"

	"github.com/slotline/booking-api/internal/models"
)

type Repository interface {
	// -------- Business --------
	GetBusinessByID(
		ctx context.Context,
		id uint,
	) (*models.Business, error)

	GetBusinessBySlug(
		ctx context.Context,
		slug string,
	) (*models.Business, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		businessID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		businessID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Working hours --------
	GetActiveWorkingHours(
		ctx context.Context,
		staffID uint,
		weekday int,
	) (*models.WorkingHours, error)

	// -------- Subscription lookup --------
	HasActiveSubscription(
		ctx context.Context,
		businessID uint,
		staffID uint,
		clientPhone string,
	) (bool, error)

	GetActiveSubscriptionID(
		ctx context.Context,
		businessID uint,
		staffID uint,
		clientPhone string,
	) (*uint, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListDayAppointments(
		ctx context.Context,
		staffID uint,
		date time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		businessID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	GetAppointmentByRef(
		ctx context.Context,
		bookingRef string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listings --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		staffID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)
}
