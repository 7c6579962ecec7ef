package meds

import (
	"strings"
	"time"

	apperrors "github.com/gmsas95/healthmate/internal/errors"
	"github.com/gmsas95/healthmate/internal/schedule"
)

// Validator checks new dose definitions before they reach the store.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// Validate builds a DoseRecord from user input. Every field must be
// present and recognized, and a dose aimed at today must not be
// earlier than now (compared at minute granularity).
func (v *Validator) Validate(input DoseInput, targetDay schedule.Weekday, isToday bool, now time.Time) (*DoseRecord, error) {
	for _, f := range []struct{ name, val string }{
		{"name", input.Name},
		{"strength", input.Strength},
		{"unit", input.Unit},
		{"form", input.Form},
		{"time", input.Time},
	} {
		if strings.TrimSpace(f.val) == "" {
			return nil, apperrors.Wrap(apperrors.ErrMissingField, apperrors.ErrMissingField.Code, f.name+" is required")
		}
	}

	unit := Unit(input.Unit)
	if !unit.Valid() {
		return nil, apperrors.ErrUnknownUnit
	}

	form := Form(input.Form)
	if !form.Valid() {
		return nil, apperrors.ErrUnknownForm
	}

	minutes, err := ParseClock(input.Time)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrMissingField.Code, "time is not a valid clock value")
	}

	if isToday && minutes < MinuteOfDay(now) {
		return nil, apperrors.ErrPastTime
	}

	return &DoseRecord{
		Name:        strings.TrimSpace(input.Name),
		Strength:    strings.TrimSpace(input.Strength),
		Unit:        unit,
		Form:        form,
		Time:        FormatClock(minutes),
		TimeMinutes: minutes,
		Day:         targetDay.String(),
		Status:      StatusUnset,
	}, nil
}
