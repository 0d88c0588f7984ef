package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"salon-booking/internal/converter"
	"salon-booking/internal/delivery/dto"
	"salon-booking/internal/domain/entity"
	"salon-booking/internal/domain/repository"
	"salon-booking/internal/metrics"
	"salon-booking/internal/service"
	"salon-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrRequiredFields              = errors.New("required fields are missing")
	ErrInvalidEmail                = errors.New("invalid email address")
	ErrInvalidPhone                = errors.New("invalid phone number")
	ErrInvalidDate                 = errors.New("invalid appointment date")
	ErrPastDate                    = errors.New("appointment date is in the past")
	ErrInvalidTime                 = errors.New("invalid appointment time")
	ErrTimeSlotTaken               = errors.New("time slot is already booked")
	ErrAppointmentNotFound         = errors.New("appointment not found")
	ErrAppointmentAlreadyCancelled = errors.New("appointment is already cancelled")
)

// validationChecks lists the form checks in the order they are reported: the
// first failing entry is the rejection reason.
var validationChecks = []struct {
	tag string
	err error
}{
	{validator.TagNotBlank, ErrRequiredFields},
	{validator.TagEmail, ErrInvalidEmail},
	{validator.TagPhone, ErrInvalidPhone},
	{validator.TagCalendarDate, ErrInvalidDate},
	{validator.TagNotPast, ErrPastDate},
	{validator.TagClockTime, ErrInvalidTime},
}

// ValidationError is a rejected booking form. Reason is the first failing
// check; Fields has a message for every field that failed.
type ValidationError struct {
	Reason error
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return e.Reason.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}

// IsValidationError reports whether err is one of the form check failures.
func IsValidationError(err error) bool {
	for _, check := range validationChecks {
		if errors.Is(err, check.err) {
			return true
		}
	}
	return false
}

type BookingSettings struct {
	CurrencyPrefix string
	CloseDelay     time.Duration
	MessageTimeout time.Duration
}

type BookingUsecase interface {
	GetServices(ctx context.Context) (*dto.ServiceListResponse, error)
	GetWidgetSettings(ctx context.Context) *dto.WidgetSettingsResponse
	GetUpcomingAppointments(ctx context.Context) *dto.AppointmentListResponse
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, id string) error
}

type bookingUsecase struct {
	// mu makes check-then-append and find-then-cancel atomic.
	mu          sync.Mutex
	log         *logrus.Logger
	store       *service.BookingStore
	catalogRepo repository.CatalogRepository
	validator   *validator.CustomValidator
	audit       service.AuditService
	metrics     *metrics.BookingMetrics
	settings    BookingSettings
	now         func() time.Time
}

func NewBookingUsecase(
	log *logrus.Logger,
	store *service.BookingStore,
	catalogRepo repository.CatalogRepository,
	validator *validator.CustomValidator,
	audit service.AuditService,
	m *metrics.BookingMetrics,
	settings BookingSettings,
	now func() time.Time,
) BookingUsecase {
	if now == nil {
		now = time.Now
	}
	return &bookingUsecase{
		log:         log,
		store:       store,
		catalogRepo: catalogRepo,
		validator:   validator,
		audit:       audit,
		metrics:     m,
		settings:    settings,
		now:         now,
	}
}

func (u *bookingUsecase) GetServices(ctx context.Context) (*dto.ServiceListResponse, error) {
	services, err := u.catalogRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list catalog services: %+v", err)
		return nil, err
	}

	return &dto.ServiceListResponse{
		Services: converter.CatalogServicesToResponses(services),
	}, nil
}

func (u *bookingUsecase) GetWidgetSettings(ctx context.Context) *dto.WidgetSettingsResponse {
	return &dto.WidgetSettingsResponse{
		MinDate:          u.validator.Today().Format(entity.DateLayout),
		CloseDelayMs:     u.settings.CloseDelay.Milliseconds(),
		MessageTimeoutMs: u.settings.MessageTimeout.Milliseconds(),
		CurrencyPrefix:   u.settings.CurrencyPrefix,
	}
}

// GetUpcomingAppointments renders every appointment that is not cancelled.
func (u *bookingUsecase) GetUpcomingAppointments(ctx context.Context) *dto.AppointmentListResponse {
	return converter.AppointmentsToListResponse(u.store.Appointments(), u.settings.CurrencyPrefix)
}

// CreateAppointment books a submitted form.
//
// Flow:
// 1. Validate the form (first failing check wins)
// 2. Snapshot the catalog price of the selected service
// 3. Reject if a non-cancelled appointment holds the same date and time
// 4. Append to the store, which persists the full list
func (u *bookingUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if err := u.validateCandidate(req); err != nil {
		if IsValidationError(err) {
			u.reject(ctx, req, err)
		}
		return nil, err
	}

	price, err := u.priceOf(ctx, strings.TrimSpace(req.SelectedService))
	if err != nil {
		return nil, err
	}

	appointment := entity.Appointment{
		ID:              uuid.NewString(),
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerEmail:   strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
		SelectedService: strings.TrimSpace(req.SelectedService),
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		SpecialRequests: strings.TrimSpace(req.SpecialRequests),
		Price:           price,
		Status:          entity.AppointmentStatusConfirmed,
		BookedAt:        u.now().UTC(),
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if service.HasConflict(u.store.Appointments(), &appointment) {
		u.reject(ctx, req, ErrTimeSlotTaken)
		return nil, ErrTimeSlotTaken
	}

	if err := u.store.Append(ctx, appointment); err != nil {
		u.metrics.ObserveSubmission("error")
		u.log.Errorf("Failed to save appointment %s: %+v", appointment.ID, err)
		return nil, err
	}

	u.metrics.ObserveSubmission("booked")
	u.audit.LogCreate(ctx, service.AuditActionBook, "appointment", appointment.ID, slotSummary(&appointment))
	u.log.Infof("Appointment booked: id=%s, service=%s, date=%s, time=%s",
		appointment.ID, appointment.SelectedService, appointment.AppointmentDate, appointment.AppointmentTime)

	return converter.AppointmentToResponse(&appointment), nil
}

// CancelAppointment soft-deletes an appointment by flipping it to cancelled.
func (u *bookingUsecase) CancelAppointment(ctx context.Context, id string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	existing, ok := u.store.Find(id)
	if !ok {
		u.metrics.ObserveCancellation("not_found")
		return ErrAppointmentNotFound
	}
	if !existing.IsConfirmed() {
		u.metrics.ObserveCancellation("already_cancelled")
		return ErrAppointmentAlreadyCancelled
	}

	changed, err := u.store.Cancel(ctx, id)
	if err != nil {
		u.metrics.ObserveCancellation("error")
		u.log.Errorf("Failed to cancel appointment %s: %+v", id, err)
		return err
	}
	if !changed {
		u.metrics.ObserveCancellation("already_cancelled")
		return ErrAppointmentAlreadyCancelled
	}

	u.metrics.ObserveCancellation("cancelled")
	u.audit.LogUpdate(ctx, service.AuditActionCancel, "appointment", id,
		existing.Status.String(), entity.AppointmentStatusCancelled.String())
	u.log.Infof("Appointment cancelled: id=%s", id)

	return nil
}

func (u *bookingUsecase) validateCandidate(req *dto.CreateAppointmentRequest) error {
	err := u.validator.Validate(req)
	if err == nil {
		return nil
	}

	failed := make(map[string]bool)
	for _, tag := range validator.FailedTags(err) {
		failed[tag] = true
	}
	for _, check := range validationChecks {
		if failed[check.tag] {
			return &ValidationError{
				Reason: check.err,
				Fields: u.validator.FormatValidationErrors(err),
			}
		}
	}
	return fmt.Errorf("validate appointment: %w", err)
}

// priceOf returns the catalog price of a service, or zero for a service the
// catalog does not list.
func (u *bookingUsecase) priceOf(ctx context.Context, name string) (decimal.Decimal, error) {
	svc, err := u.catalogRepo.FindByName(ctx, name)
	if err != nil {
		u.log.Warnf("Failed to look up service %q: %+v", name, err)
		return decimal.Zero, err
	}
	if svc == nil {
		u.log.Warnf("Service %q is not in the catalog, booking at price 0", name)
		return decimal.Zero, nil
	}
	return svc.Price, nil
}

func (u *bookingUsecase) reject(ctx context.Context, req *dto.CreateAppointmentRequest, reason error) {
	u.metrics.ObserveSubmission("rejected")
	u.audit.LogReject(ctx, service.AuditActionReject, reason.Error(), map[string]string{
		"service": req.SelectedService,
		"date":    req.AppointmentDate,
		"time":    req.AppointmentTime,
	})
}

func slotSummary(appointment *entity.Appointment) map[string]string {
	return map[string]string{
		"service": appointment.SelectedService,
		"date":    appointment.AppointmentDate,
		"time":    appointment.AppointmentTime,
		"status":  appointment.Status.String(),
	}
}
