package appointments

import (
	"fmt"
	"time"
)

// Appointment is one booked visit to a healthcare facility.
type Appointment struct {
	ID string `json:"id" gorm:"primaryKey"`

	Service  string `json:"service"`
	Location string `json:"location"`
	Date     string `json:"date"` // "2006-01-02"
	Time     string `json:"time"` // slot label, "HH:MM"
	Remarks  string `json:"remarks,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingInput is the user-supplied booking form.
type BookingInput struct {
	Service  string `json:"service"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Remarks  string `json:"remarks"`
}

// Slots returns the bookable time grid: every 15 minutes from 08:00
// through 17:45, plus the closing 18:00 slot.
func Slots() []string {
	var slots []string
	for h := 8; h <= 17; h++ {
		for m := 0; m < 60; m += 15 {
			slots = append(slots, fmt.Sprintf("%02d:%02d", h, m))
		}
	}
	return append(slots, "18:00")
}
