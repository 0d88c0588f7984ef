package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Layouts of the date and time strings stored on an appointment.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusConfirmed AppointmentStatus = "Confirmed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

func (s AppointmentStatus) IsValid() bool {
	return s == AppointmentStatusConfirmed || s == AppointmentStatusCancelled
}

func (s AppointmentStatus) String() string {
	return string(s)
}

// UnmarshalText rejects unknown statuses, so a slot holding one is treated as corrupt.
func (s *AppointmentStatus) UnmarshalText(text []byte) error {
	status := AppointmentStatus(text)
	if !status.IsValid() {
		return fmt.Errorf("unknown appointment status %q", string(text))
	}
	*s = status
	return nil
}

// Appointment is a booked salon visit. JSON keys match the records the booking
// widget keeps in its storage slot.
type Appointment struct {
	ID              string            `json:"id"`
	CustomerName    string            `json:"customerName"`
	CustomerEmail   string            `json:"customerEmail"`
	CustomerPhone   string            `json:"customerPhone"`
	SelectedService string            `json:"selectedService"`
	AppointmentDate string            `json:"appointmentDate"`
	AppointmentTime string            `json:"appointmentTime"`
	SpecialRequests string            `json:"specialRequests"`
	Price           decimal.Decimal   `json:"price"`
	Status          AppointmentStatus `json:"status"`
	BookedAt        time.Time         `json:"bookedAt"`
}

// IsConfirmed checks if appointment is confirmed
func (a *Appointment) IsConfirmed() bool {
	return a.Status == AppointmentStatusConfirmed
}

// IsCancelled checks if appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// Cancel moves a confirmed appointment to cancelled. It reports whether the
// status changed; a cancelled appointment stays cancelled.
func (a *Appointment) Cancel() bool {
	if a.IsCancelled() {
		return false
	}
	a.Status = AppointmentStatusCancelled
	return true
}

// SameSlot reports whether both appointments are for the same date and time.
func (a *Appointment) SameSlot(other *Appointment) bool {
	return a.AppointmentDate == other.AppointmentDate && a.AppointmentTime == other.AppointmentTime
}

// ScheduledAt combines the date and time strings into a point in loc.
func (a *Appointment) ScheduledAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, a.AppointmentDate+" "+a.AppointmentTime, loc)
}
