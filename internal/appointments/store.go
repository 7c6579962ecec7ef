package appointments

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store handles appointment persistence
type Store struct {
	db *gorm.DB
}

// NewStore creates a new appointment store
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Appointment{}); err != nil {
		return nil, fmt.Errorf("failed to migrate appointment schema: %w", err)
	}
	return &Store{db: db}, nil
}

// CreateAppointment inserts a booking
func (s *Store) CreateAppointment(appt *Appointment) error {
	if appt.ID == "" {
		appt.ID = "appt_" + uuid.NewString()
	}
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = time.Now()
	return s.db.Create(appt).Error
}

// GetAppointment retrieves a booking by id. Missing rows return nil, nil.
func (s *Store) GetAppointment(id string) (*Appointment, error) {
	var appt Appointment
	err := s.db.Where("id = ?", id).First(&appt).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// ListAppointments returns all bookings ordered by date then slot.
func (s *Store) ListAppointments() ([]Appointment, error) {
	var appts []Appointment
	err := s.db.Order("date ASC, time ASC").Find(&appts).Error
	return appts, err
}

// ListFrom returns bookings on or after the given date.
func (s *Store) ListFrom(date string) ([]Appointment, error) {
	var appts []Appointment
	err := s.db.Where("date >= ?", date).Order("date ASC, time ASC").Find(&appts).Error
	return appts, err
}

// DeleteAppointment removes a booking
func (s *Store) DeleteAppointment(id string) error {
	return s.db.Where("id = ?", id).Delete(&Appointment{}).Error
}
