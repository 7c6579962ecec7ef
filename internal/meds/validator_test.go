package meds

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/gmsas95/healthmate/internal/errors"
	"github.com/gmsas95/healthmate/internal/schedule"
)

var sevenAM = time.Date(2025, 1, 15, 7, 0, 0, 0, time.Local)

func validInput() DoseInput {
	return DoseInput{
		Name:     "Paracetamol",
		Strength: "500",
		Unit:     "mg",
		Form:     "tablet",
		Time:     "8:00 AM",
	}
}

func TestValidate_Success(t *testing.T) {
	v := NewValidator()

	dose, err := v.Validate(validInput(), schedule.Wednesday, true, sevenAM)
	require.NoError(t, err)

	assert.Equal(t, "Paracetamol", dose.Name)
	assert.Equal(t, "500", dose.Strength)
	assert.Equal(t, UnitMg, dose.Unit)
	assert.Equal(t, FormTablet, dose.Form)
	assert.Equal(t, "8:00 AM", dose.Time)
	assert.Equal(t, 480, dose.TimeMinutes)
	assert.Equal(t, "Wednesday", dose.Day)
	assert.Equal(t, StatusUnset, dose.Status)
}

func TestValidate_EveryMissingFieldCombination(t *testing.T) {
	v := NewValidator()
	fields := []string{"name", "strength", "unit", "form", "time"}

	// Every non-empty subset of blanked fields must fail.
	for mask := 1; mask < 1<<len(fields); mask++ {
		input := validInput()
		for i := range fields {
			if mask&(1<<i) == 0 {
				continue
			}
			switch fields[i] {
			case "name":
				input.Name = ""
			case "strength":
				input.Strength = ""
			case "unit":
				input.Unit = ""
			case "form":
				input.Form = ""
			case "time":
				input.Time = ""
			}
		}

		_, err := v.Validate(input, schedule.Wednesday, false, sevenAM)
		require.Error(t, err, "mask %b", mask)
		assert.Equal(t, apperrors.ErrMissingField.Code, apperrors.GetCode(err), "mask %b", mask)
	}
}

func TestValidate_WhitespaceOnlyIsMissing(t *testing.T) {
	v := NewValidator()
	input := validInput()
	input.Name = "   "

	_, err := v.Validate(input, schedule.Wednesday, false, sevenAM)
	assert.Equal(t, apperrors.ErrMissingField.Code, apperrors.GetCode(err))
}

func TestValidate_UnknownEnums(t *testing.T) {
	v := NewValidator()

	input := validInput()
	input.Unit = "kg"
	_, err := v.Validate(input, schedule.Wednesday, false, sevenAM)
	assert.ErrorIs(t, err, apperrors.ErrUnknownUnit)

	input = validInput()
	input.Form = "injection"
	_, err = v.Validate(input, schedule.Wednesday, false, sevenAM)
	assert.ErrorIs(t, err, apperrors.ErrUnknownForm)
}

func TestValidate_PastTimeToday(t *testing.T) {
	v := NewValidator()
	input := validInput()
	input.Time = "6:00 AM"

	_, err := v.Validate(input, schedule.Wednesday, true, sevenAM)
	assert.ErrorIs(t, err, apperrors.ErrPastTime)
}

func TestValidate_ExactlyNowIsAllowed(t *testing.T) {
	v := NewValidator()
	input := validInput()
	input.Time = "7:00 AM"

	_, err := v.Validate(input, schedule.Wednesday, true, sevenAM)
	assert.NoError(t, err)
}

func TestValidate_SecondsIgnored(t *testing.T) {
	v := NewValidator()
	input := validInput()
	input.Time = "7:00 AM"

	// 07:00:45 still counts as minute 420, so 7:00 AM is not in the past.
	now := time.Date(2025, 1, 15, 7, 0, 45, 0, time.Local)
	_, err := v.Validate(input, schedule.Wednesday, true, now)
	assert.NoError(t, err)
}

func TestValidate_PastTimeAllowedForFutureDay(t *testing.T) {
	v := NewValidator()
	input := validInput()
	input.Time = "6:00 AM"

	_, err := v.Validate(input, schedule.Friday, false, sevenAM)
	assert.NoError(t, err)
}

func TestValidate_NormalizesTimeDisplay(t *testing.T) {
	v := NewValidator()
	input := validInput()
	input.Time = "8:5 am"

	dose, err := v.Validate(input, schedule.Wednesday, true, sevenAM)
	require.NoError(t, err)
	assert.Equal(t, "8:05 AM", dose.Time)
}
