package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/slotline/booking-api/internal/domain/appointment"
	"github.com/slotline/booking-api/internal/httperr"
	"github.com/slotline/booking-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// pgExclusionViolation is SQLSTATE 23P01, raised by the
// appointments_no_overlap constraint. That rejection is the canonical
// "slot taken" signal; the in-process pre-check only exists to fail fast.
const pgExclusionViolation = "23P01"

func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation
}

// --------------------------------------------------
// Business
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBusinessByID(
	ctx context.Context,
	id uint,
) (*models.Business, error) {

	var biz models.Business
	if err := r.db.WithContext(ctx).First(&biz, id).Error; err != nil {
		return nil, err
	}
	return &biz, nil
}

func (r *AppointmentGormRepository) GetBusinessBySlug(
	ctx context.Context,
	slug string,
) (*models.Business, error) {

	var biz models.Business
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&biz).Error; err != nil {
		return nil, err
	}
	return &biz, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	businessID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", serviceID, businessID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	businessID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND phone = ?", businessID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		BusinessID: businessID,
		Name:       name,
		Phone:      phone,
		Email:      email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Working hours
// --------------------------------------------------

func (r *AppointmentGormRepository) GetActiveWorkingHours(
	ctx context.Context,
	staffID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("staff_id = ? AND weekday = ? AND active = true", staffID, weekday).
		First(&wh).Error; err != nil {
		return nil, err
	}

	return &wh, nil
}

// --------------------------------------------------
// Subscription lookup
// --------------------------------------------------

func (r *AppointmentGormRepository) activeSubscriptionQuery(
	ctx context.Context,
	businessID uint,
	staffID uint,
	clientPhone string,
) *gorm.DB {
	// a NULL staff_id means the plan covers the whole business
	return r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("business_id = ? AND client_phone = ? AND status = 'active'", businessID, clientPhone).
		Where("staff_id IS NULL OR staff_id = ?", staffID).
		Where("expires_at IS NULL OR expires_at > ?", time.Now())
}

func (r *AppointmentGormRepository) HasActiveSubscription(
	ctx context.Context,
	businessID uint,
	staffID uint,
	clientPhone string,
) (bool, error) {

	var count int64
	if err := r.activeSubscriptionQuery(ctx, businessID, staffID, clientPhone).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *AppointmentGormRepository) GetActiveSubscriptionID(
	ctx context.Context,
	businessID uint,
	staffID uint,
	clientPhone string,
) (*uint, error) {

	var sub models.Subscription
	err := r.activeSubscriptionQuery(ctx, businessID, staffID, clientPhone).
		Order("id ASC").
		First(&sub).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &sub.ID, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	if err := r.db.WithContext(ctx).Create(ap).Error; err != nil {
		if isExclusionViolation(err) {
			return httperr.ErrBusiness("slot_conflict")
		}
		return err
	}

	return nil
}

func (r *AppointmentGormRepository) ListDayAppointments(
	ctx context.Context,
	staffID uint,
	date time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"staff_id = ? AND date = ? AND status IN ?",
			staffID,
			date.Format("2006-01-02"),
			[]string{
				string(domain.StatusPending),
				string(domain.StatusConfirmed),
				string(domain.StatusQueueReserved),
			},
		).
		Order("start_minute ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	businessID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", appointmentID, businessID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentByRef(
	ctx context.Context,
	bookingRef string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("booking_ref = ?", bookingRef).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	if err := r.db.WithContext(ctx).Save(ap).Error; err != nil {
		if isExclusionViolation(err) {
			return httperr.ErrBusiness("slot_conflict")
		}
		return err
	}

	return nil
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	staffID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"staff_id = ? AND date >= ? AND date < ?",
			staffID,
			from.Format("2006-01-02"),
			to.Format("2006-01-02"),
		).
		Order("date ASC, start_minute ASC").
		Find(&aps).Error

	if err != nil {
		return nil, err
	}

	return aps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
