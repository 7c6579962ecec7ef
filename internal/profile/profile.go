// Package profile stores the user's personal health record as a
// single JSON document in the key-value store.
package profile

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	apperrors "github.com/gmsas95/healthmate/internal/errors"
)

// StorageKey is where the profile document lives in the KV store.
const StorageKey = "userProfile"

var phonePattern = regexp.MustCompile(`^[0-9]{8}$`)

// Profile is the user's personal record. All fields except the full
// name are optional.
type Profile struct {
	FullName     string `json:"fullName"`
	Gender       string `json:"gender,omitempty"`
	DateOfBirth  string `json:"dateOfBirth,omitempty"`
	Height       string `json:"height,omitempty"`
	Weight       string `json:"weight,omitempty"`
	BloodType    string `json:"bloodType,omitempty"`
	Allergies    string `json:"allergies,omitempty"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	Address      string `json:"address,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// KV is the slice of the datastore the profile service needs.
type KV interface {
	SetKV(key string, value []byte) error
	GetKV(key string) ([]byte, error)
	DeleteKV(key string) error
}

// Service reads and writes the profile document.
type Service struct {
	kv     KV
	logger *zap.Logger
}

func NewService(kv KV, logger *zap.Logger) *Service {
	return &Service{kv: kv, logger: logger}
}

// Get returns the stored profile, or nil when none has been saved.
func (s *Service) Get() (*Profile, error) {
	data, err := s.kv.GetKV(StorageKey)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, apperrors.ErrPersistRead.Code, "failed to load profile")
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrPersistRead.Code, "stored profile is corrupt")
	}
	return &p, nil
}

// Save validates and persists the profile, replacing any prior one.
func (s *Service) Save(p Profile) error {
	p.FullName = strings.TrimSpace(p.FullName)
	if p.FullName == "" {
		return apperrors.Wrap(apperrors.ErrMissingField, apperrors.ErrMissingField.Code, "full name is required")
	}
	if p.PhoneNumber != "" && !phonePattern.MatchString(p.PhoneNumber) {
		return apperrors.ErrPhoneFormat
	}

	data, err := json.Marshal(p)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrPersistWrite.Code, "failed to encode profile")
	}
	if err := s.kv.SetKV(StorageKey, data); err != nil {
		return apperrors.Wrap(err, apperrors.ErrPersistWrite.Code, "failed to save profile")
	}

	s.logger.Info("Profile saved", zap.String("full_name", p.FullName))
	return nil
}

// Clear removes the stored profile.
func (s *Service) Clear() error {
	if err := s.kv.DeleteKV(StorageKey); err != nil {
		return apperrors.Wrap(err, apperrors.ErrPersistWrite.Code, "failed to clear profile")
	}
	return nil
}
