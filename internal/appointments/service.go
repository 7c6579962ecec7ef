package appointments

import (
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/gmsas95/healthmate/internal/errors"
	"github.com/gmsas95/healthmate/internal/facilities"
	"github.com/gmsas95/healthmate/internal/schedule"
)

// Service books and manages appointments against the facility
// directory and slot grid.
type Service struct {
	store  *Store
	clock  schedule.Clock
	logger *zap.Logger
	slots  map[string]bool
}

// NewService creates an appointment service.
func NewService(store *Store, clock schedule.Clock, logger *zap.Logger) *Service {
	if clock == nil {
		clock = schedule.SystemClock()
	}
	slots := make(map[string]bool)
	for _, s := range Slots() {
		slots[s] = true
	}
	return &Service{store: store, clock: clock, logger: logger, slots: slots}
}

// Book validates the form and persists the appointment.
func (s *Service) Book(input BookingInput) (*Appointment, error) {
	for _, f := range []struct{ name, val string }{
		{"service", input.Service},
		{"location", input.Location},
		{"date", input.Date},
		{"time", input.Time},
	} {
		if strings.TrimSpace(f.val) == "" {
			return nil, apperrors.Wrap(apperrors.ErrMissingField, apperrors.ErrMissingField.Code, f.name+" is required")
		}
	}

	if !facilities.KnownService(input.Service) {
		return nil, apperrors.Wrap(apperrors.ErrBadRequest, apperrors.ErrBadRequest.Code, "unknown service")
	}
	if _, ok := facilities.ByName(input.Location); !ok {
		return nil, apperrors.ErrUnknownFacility
	}
	if !s.slots[input.Time] {
		return nil, apperrors.ErrBadTimeSlot
	}

	date, err := time.ParseInLocation("2006-01-02", input.Date, s.clock.Now().Location())
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrBadRequest.Code, "date must be YYYY-MM-DD")
	}

	now := s.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return nil, apperrors.ErrPastDate
	}

	appt := &Appointment{
		Service:  input.Service,
		Location: input.Location,
		Date:     input.Date,
		Time:     input.Time,
		Remarks:  strings.TrimSpace(input.Remarks),
	}

	if err := s.store.CreateAppointment(appt); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrPersistWrite.Code, "failed to save appointment")
	}

	s.logger.Info("Appointment booked",
		zap.String("appointment_id", appt.ID),
		zap.String("service", appt.Service),
		zap.String("location", appt.Location),
		zap.String("date", appt.Date),
		zap.String("time", appt.Time),
	)

	return appt, nil
}

// List returns every booking, earliest first.
func (s *Service) List() ([]Appointment, error) {
	appts, err := s.store.ListAppointments()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrPersistRead.Code, "failed to load appointments")
	}
	return appts, nil
}

// Upcoming returns bookings from today onward.
func (s *Service) Upcoming() ([]Appointment, error) {
	today := s.clock.Now().Format("2006-01-02")
	appts, err := s.store.ListFrom(today)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrPersistRead.Code, "failed to load appointments")
	}
	return appts, nil
}

// Cancel deletes a booking after confirming it exists.
func (s *Service) Cancel(id string) error {
	appt, err := s.store.GetAppointment(id)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrPersistRead.Code, "failed to look up appointment")
	}
	if appt == nil {
		return apperrors.ErrNotFound
	}

	if err := s.store.DeleteAppointment(id); err != nil {
		return apperrors.Wrap(err, apperrors.ErrPersistWrite.Code, "failed to delete appointment")
	}

	s.logger.Info("Appointment cancelled", zap.String("appointment_id", id))
	return nil
}
