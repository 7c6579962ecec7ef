package meds

import (
	"time"
)

// Status is the adherence state of a single dose. The zero value is
// the unset state, which is also how fresh rows persist (the status
// column defaults to '').
type Status string

const (
	StatusUnset  Status = ""
	StatusTaken  Status = "taken"
	StatusMissed Status = "missed"
)

// Toggle advances the status through the fixed cycle
// unset -> taken -> missed -> unset. Total: any other value is treated
// as unset and moves to taken.
func (s Status) Toggle() Status {
	switch s {
	case StatusTaken:
		return StatusMissed
	case StatusMissed:
		return StatusUnset
	default:
		return StatusTaken
	}
}

// Valid reports whether s is one of the three known states.
func (s Status) Valid() bool {
	switch s {
	case StatusUnset, StatusTaken, StatusMissed:
		return true
	}
	return false
}

// Unit is a dosage strength unit.
type Unit string

const (
	UnitMg      Unit = "mg"
	UnitMcg     Unit = "mcg"
	UnitG       Unit = "g"
	UnitMl      Unit = "ml"
	UnitPercent Unit = "%"
)

// Units lists the selectable dosage units in display order.
func Units() []Unit {
	return []Unit{UnitMg, UnitMcg, UnitG, UnitMl, UnitPercent}
}

func (u Unit) Valid() bool {
	switch u {
	case UnitMg, UnitMcg, UnitG, UnitMl, UnitPercent:
		return true
	}
	return false
}

// Form is a dosage form.
type Form string

const (
	FormCapsule Form = "capsule"
	FormTablet  Form = "tablet"
	FormLiquid  Form = "liquid"
	FormTopical Form = "topical"
)

// Forms lists the selectable dosage forms in display order.
func Forms() []Form {
	return []Form{FormCapsule, FormTablet, FormLiquid, FormTopical}
}

func (f Form) Valid() bool {
	switch f {
	case FormCapsule, FormTablet, FormLiquid, FormTopical:
		return true
	}
	return false
}

// DoseRecord is one prescribed administration instance: a medication
// at a time of day on a weekday, with its adherence status.
type DoseRecord struct {
	ID int64 `json:"id" gorm:"primaryKey;autoIncrement"`

	Name     string `json:"name"`
	Strength string `json:"strength"` // numeric-as-string, e.g. "500"
	Unit     Unit   `json:"unit"`
	Form     Form   `json:"form"`

	// Time is the display string ("8:00 AM"). TimeMinutes holds the
	// same instant as minutes since midnight and is the ordering key;
	// sorting the display string lexically would put "10:00 AM" before
	// "9:00 AM".
	Time        string `json:"time"`
	TimeMinutes int    `json:"-" gorm:"index"`

	Day    string `json:"day" gorm:"index"` // weekday name
	Status Status `json:"status" gorm:"default:''"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the table name the companion schema has always used.
func (DoseRecord) TableName() string {
	return "medications"
}

// DoseInput is the user-supplied definition of a new dose.
type DoseInput struct {
	Name     string `json:"name"`
	Strength string `json:"strength"`
	Unit     string `json:"unit"`
	Form     string `json:"form"`
	Time     string `json:"time"` // "H:MM AM/PM"
}

// TimeGroup is one display bucket: all doses sharing an exact time
// label, in chronological bucket order.
type TimeGroup struct {
	Time  string       `json:"time"`
	Doses []DoseRecord `json:"doses"`
}
