package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"salon-booking/internal/delivery/dto"
	"salon-booking/internal/delivery/http/view"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const maxBookingBodyBytes = 64 << 10

const (
	msgBooked    = "Appointment booked successfully! We will contact you soon to confirm."
	msgCancelled = "Appointment cancelled successfully."
)

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	log            *logrus.Logger
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, log *logrus.Logger) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		log:            log,
	}
}

func (h *BookingHandler) GetServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.bookingUsecase.GetServices(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get services")
		return
	}

	response.Success(w, http.StatusOK, "Services retrieved successfully", services)
}

func (h *BookingHandler) GetWidgetSettings(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Widget settings retrieved successfully", h.bookingUsecase.GetWidgetSettings(r.Context()))
}

func (h *BookingHandler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Appointments retrieved successfully", h.bookingUsecase.GetUpcomingAppointments(r.Context()))
}

// GetAppointmentsFragment serves the rendered appointment cards as HTML.
func (h *BookingHandler) GetAppointmentsFragment(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := view.RenderAppointments(&buf, h.bookingUsecase.GetUpcomingAppointments(r.Context())); err != nil {
		h.log.Errorf("Failed to render appointments: %+v", err)
		response.InternalServerError(w, "Failed to render appointments")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *BookingHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAppointmentRequest(w, r)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	appointment, err := h.bookingUsecase.CreateAppointment(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrRequiredFields):
			response.ValidationError(w, "Please fill in all required fields.", fieldErrors(err))
		case errors.Is(err, usecase.ErrInvalidEmail):
			response.ValidationError(w, "Please enter a valid email address.", fieldErrors(err))
		case errors.Is(err, usecase.ErrInvalidPhone):
			response.ValidationError(w, "Please enter a valid phone number.", fieldErrors(err))
		case errors.Is(err, usecase.ErrInvalidDate):
			response.ValidationError(w, "Please select a valid date.", fieldErrors(err))
		case errors.Is(err, usecase.ErrPastDate):
			response.ValidationError(w, "Please select a future date.", fieldErrors(err))
		case errors.Is(err, usecase.ErrInvalidTime):
			response.ValidationError(w, "Please select a valid time.", fieldErrors(err))
		case errors.Is(err, usecase.ErrTimeSlotTaken):
			response.Conflict(w, "This time slot is already booked. Please choose a different time.")
		default:
			response.InternalServerError(w, "Failed to save appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, msgBooked, appointment)
}

func (h *BookingHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	err := h.bookingUsecase.CancelAppointment(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAppointmentNotFound):
			response.NotFound(w, "Appointment not found")
		case errors.Is(err, usecase.ErrAppointmentAlreadyCancelled):
			response.Conflict(w, "Appointment is already cancelled")
		default:
			response.InternalServerError(w, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, msgCancelled, nil)
}

// fieldErrors returns the per-field messages of a rejected form, if any.
func fieldErrors(err error) interface{} {
	var validationErr *usecase.ValidationError
	if errors.As(err, &validationErr) && len(validationErr.Fields) > 0 {
		return validationErr.Fields
	}
	return nil
}

// decodeAppointmentRequest accepts the booking form either as JSON or as a
// regular HTML form post.
func decodeAppointmentRequest(w http.ResponseWriter, r *http.Request) (*dto.CreateAppointmentRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBookingBodyBytes)

	var req dto.CreateAppointmentRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if mediaType == "multipart/form-data" {
			if err := r.ParseMultipartForm(maxBookingBodyBytes); err != nil {
				return nil, err
			}
		} else if err := r.ParseForm(); err != nil {
			return nil, err
		}
		req = dto.CreateAppointmentRequest{
			CustomerName:    r.PostFormValue("customerName"),
			CustomerEmail:   r.PostFormValue("customerEmail"),
			CustomerPhone:   r.PostFormValue("customerPhone"),
			SelectedService: r.PostFormValue("selectedService"),
			AppointmentDate: r.PostFormValue("appointmentDate"),
			AppointmentTime: r.PostFormValue("appointmentTime"),
			SpecialRequests: r.PostFormValue("specialRequests"),
		}
	default:
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, err
		}
	}
	return &req, nil
}
