package meds

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/gmsas95/healthmate/internal/store"
)

// Store handles dose row persistence
type Store struct {
	db *gorm.DB
}

// NewStore creates a new dose store
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&DoseRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate dose schema: %w", err)
	}
	return &Store{db: db}, nil
}

// CreateDose inserts a new dose row; the store assigns the id.
func (s *Store) CreateDose(dose *DoseRecord) error {
	return s.db.Create(dose).Error
}

// GetDose retrieves a dose by id. Missing rows return nil, nil.
func (s *Store) GetDose(id int64) (*DoseRecord, error) {
	var dose DoseRecord
	err := s.db.Where("id = ?", id).First(&dose).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dose, nil
}

// ListByDay returns all doses for a weekday in chronological order.
// Ordering uses the minutes key, never the display string.
func (s *Store) ListByDay(day string) ([]DoseRecord, error) {
	var doses []DoseRecord
	err := s.db.Where("day = ?", day).
		Order("time_minutes ASC, id ASC").
		Find(&doses).Error
	return doses, err
}

// DeleteDose removes a dose row
func (s *Store) DeleteDose(id int64) error {
	return s.db.Where("id = ?", id).Delete(&DoseRecord{}).Error
}

// UpcomingForDay returns still-unset doses for the day within the
// half-open minute range [from, to). Used by the reminder scanner.
func (s *Store) UpcomingForDay(day string, from, to int) ([]DoseRecord, error) {
	var doses []DoseRecord
	err := s.db.Where("day = ? AND status = ? AND time_minutes >= ? AND time_minutes < ?",
		day, StatusUnset, from, to).
		Order("time_minutes ASC, id ASC").
		Find(&doses).Error
	return doses, err
}

// StatusWrite returns the single-row status update for the batch
// commit seam.
func (s *Store) StatusWrite(id int64, status Status) store.Write {
	return func(tx *gorm.DB) error {
		return tx.Model(&DoseRecord{}).Where("id = ?", id).Update("status", status).Error
	}
}
