package appointment

import (
	"context"
	"errors"
	"time"

	domain "github.com/slotline/booking-api/internal/domain/appointment"
	"github.com/slotline/booking-api/internal/models"
)

var errNotFound = errors.New("record not found")

// fakeRepo is the in-memory double shared by the use case tests. Zero
// value fields mean "not found"; the setup helpers fill in the common
// happy-path fixture.
type fakeRepo struct {
	business *models.Business
	service  *models.Service

	wh    *models.WorkingHours
	whErr error

	day []models.Appointment

	appointments map[uint]*models.Appointment

	hasSub bool
	subID  *uint

	createErr error
	updateErr error

	created *models.Appointment
	updated *models.Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		business: &models.Business{
			ID:                1,
			Timezone:          "UTC",
			MinAdvanceMinutes: 120,
		},
		appointments: map[uint]*models.Appointment{},
	}
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

func (f *fakeRepo) GetService(_ context.Context, _ uint, serviceID uint) (*models.Service, error) {
	if f.service == nil || f.service.ID != serviceID {
		return nil, errNotFound
	}
	return f.service, nil
}

func (f *fakeRepo) GetOrCreateClient(_ context.Context, businessID uint, name, phone, _ string) (*models.Client, error) {
	return &models.Client{ID: 1, BusinessID: businessID, Name: name, Phone: phone}, nil
}

func (f *fakeRepo) GetActiveWorkingHours(_ context.Context, _ uint, _ int) (*models.WorkingHours, error) {
	if f.whErr != nil {
		return nil, f.whErr
	}
	return f.wh, nil
}

func (f *fakeRepo) HasActiveSubscription(_ context.Context, _ uint, _ uint, _ string) (bool, error) {
	return f.hasSub, nil
}

func (f *fakeRepo) GetActiveSubscriptionID(_ context.Context, _ uint, _ uint, _ string) (*uint, error) {
	return f.subID, nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if f.createErr != nil {
		return f.createErr
	}
	ap.ID = uint(len(f.appointments) + 100)
	f.appointments[ap.ID] = ap
	f.created = ap
	return nil
}

func (f *fakeRepo) ListDayAppointments(_ context.Context, _ uint, _ time.Time) ([]models.Appointment, error) {
	return f.day, nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, _ uint, appointmentID uint) (*models.Appointment, error) {
	ap, ok := f.appointments[appointmentID]
	if !ok {
		return nil, errNotFound
	}
	return ap, nil
}

func (f *fakeRepo) GetAppointmentByRef(_ context.Context, bookingRef string) (*models.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.BookingRef == bookingRef {
			return ap, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.appointments[ap.ID] = ap
	f.updated = ap
	return nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, _ uint, _ time.Time, _ time.Time) ([]models.Appointment, error) {
	return f.day, nil
}

var _ domain.Repository = (*fakeRepo)(nil)
