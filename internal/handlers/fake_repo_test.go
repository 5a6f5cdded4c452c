package handlers

import (
	"context"
	"errors"
	"time"

	domain "github.com/slotline/booking-api/internal/domain/appointment"
	"github.com/slotline/booking-api/internal/models"
)

var errNotFound = errors.New("record not found")

// fakeRepo backs the handler tests that go through the repository port.
// Unset fields mean "not found".
type fakeRepo struct {
	business    *models.Business
	appointment *models.Appointment

	updated *models.Appointment
}

func (f *fakeRepo) GetBusinessByID(_ context.Context, id uint) (*models.Business, error) {
	if f.business == nil || f.business.ID != id {
		return nil, errNotFound
	}
	return f.business, nil
}

func (f *fakeRepo) GetBusinessBySlug(_ context.Context, slug string) (*models.Business, error) {
	if f.business == nil || f.business.Slug != slug {
		return nil, errNotFound
	}
	return f.business, nil
}

func (f *fakeRepo) GetService(_ context.Context, _ uint, _ uint) (*models.Service, error) {
	return nil, errNotFound
}

func (f *fakeRepo) GetOrCreateClient(_ context.Context, businessID uint, name, phone, _ string) (*models.Client, error) {
	return &models.Client{ID: 1, BusinessID: businessID, Name: name, Phone: phone}, nil
}

func (f *fakeRepo) GetActiveWorkingHours(_ context.Context, _ uint, _ int) (*models.WorkingHours, error) {
	return nil, errNotFound
}

func (f *fakeRepo) HasActiveSubscription(_ context.Context, _ uint, _ uint, _ string) (bool, error) {
	return false, nil
}

func (f *fakeRepo) GetActiveSubscriptionID(_ context.Context, _ uint, _ uint, _ string) (*uint, error) {
	return nil, nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, _ *models.Appointment) error {
	return nil
}

func (f *fakeRepo) ListDayAppointments(_ context.Context, _ uint, _ time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, _ uint, appointmentID uint) (*models.Appointment, error) {
	if f.appointment == nil || f.appointment.ID != appointmentID {
		return nil, errNotFound
	}
	return f.appointment, nil
}

func (f *fakeRepo) GetAppointmentByRef(_ context.Context, bookingRef string) (*models.Appointment, error) {
	if f.appointment == nil || f.appointment.BookingRef != bookingRef {
		return nil, errNotFound
	}
	return f.appointment, nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	f.updated = ap
	return nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, _ uint, _ time.Time, _ time.Time) ([]models.Appointment, error) {
	return nil, nil
}

var _ domain.Repository = (*fakeRepo)(nil)
