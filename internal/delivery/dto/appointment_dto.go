package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

// CreateAppointmentRequest carries the booking form fields. Price, ID, status
// and booking time are computed by the server.
type CreateAppointmentRequest struct {
	CustomerName    string `json:"customerName" validate:"notblank"`
	CustomerEmail   string `json:"customerEmail" validate:"notblank,salon_email"`
	CustomerPhone   string `json:"customerPhone" validate:"notblank,salon_phone"`
	SelectedService string `json:"selectedService" validate:"notblank"`
	AppointmentDate string `json:"appointmentDate" validate:"notblank,calendar_date,not_past"`
	AppointmentTime string `json:"appointmentTime" validate:"notblank,clock_time"`
	SpecialRequests string `json:"specialRequests"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              string          `json:"id"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerPhone   string          `json:"customer_phone"`
	SelectedService string          `json:"selected_service"`
	AppointmentDate string          `json:"appointment_date"`
	AppointmentTime string          `json:"appointment_time"`
	SpecialRequests string          `json:"special_requests,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Status          string          `json:"status"`
	BookedAt        time.Time       `json:"booked_at"`
}

// AppointmentView is one rendered card of the upcoming appointments list.
type AppointmentView struct {
	ID              string       `json:"id"`
	Service         string       `json:"service"`
	Date            string       `json:"date"`
	Time            string       `json:"time"`
	CustomerName    string       `json:"customer_name"`
	Price           string       `json:"price"`
	Status          string       `json:"status"`
	StatusClass     string       `json:"status_class"`
	SpecialRequests string       `json:"special_requests,omitempty"`
	Cancel          CancelAction `json:"cancel"`
}

type CancelAction struct {
	AppointmentID string `json:"appointment_id"`
	Label         string `json:"label"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentView `json:"appointments"`
	Total        int               `json:"total"`
	EmptyMessage string            `json:"empty_message,omitempty"`
}
