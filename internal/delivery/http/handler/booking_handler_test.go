package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"salon-booking/internal/delivery/dto"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBookingUsecase struct {
	createErr error
	cancelErr error
	servErr   error
	lastReq   *dto.CreateAppointmentRequest
	lastID    string
}

func (s *stubBookingUsecase) GetServices(ctx context.Context) (*dto.ServiceListResponse, error) {
	if s.servErr != nil {
		return nil, s.servErr
	}
	return &dto.ServiceListResponse{Services: []dto.ServiceResponse{{Name: "Manicure"}}}, nil
}

func (s *stubBookingUsecase) GetWidgetSettings(ctx context.Context) *dto.WidgetSettingsResponse {
	return &dto.WidgetSettingsResponse{MinDate: "2024-06-15"}
}

func (s *stubBookingUsecase) GetUpcomingAppointments(ctx context.Context) *dto.AppointmentListResponse {
	return &dto.AppointmentListResponse{EmptyMessage: "No appointments booked yet."}
}

func (s *stubBookingUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	s.lastReq = req
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &dto.AppointmentResponse{ID: "a1", Status: "Confirmed"}, nil
}

func (s *stubBookingUsecase) CancelAppointment(ctx context.Context, id string) error {
	s.lastID = id
	return s.cancelErr
}

func newTestHandler(uc usecase.BookingUsecase) *BookingHandler {
	log, _ := test.NewNullLogger()
	return NewBookingHandler(uc, log)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCreateAppointment_ErrorMapping(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{usecase.ErrRequiredFields, http.StatusBadRequest, "Please fill in all required fields."},
		{usecase.ErrInvalidEmail, http.StatusBadRequest, "Please enter a valid email address."},
		{usecase.ErrInvalidPhone, http.StatusBadRequest, "Please enter a valid phone number."},
		{usecase.ErrInvalidDate, http.StatusBadRequest, "Please select a valid date."},
		{usecase.ErrPastDate, http.StatusBadRequest, "Please select a future date."},
		{usecase.ErrInvalidTime, http.StatusBadRequest, "Please select a valid time."},
		{usecase.ErrTimeSlotTaken, http.StatusConflict, "This time slot is already booked. Please choose a different time."},
		{errors.New("disk full"), http.StatusInternalServerError, "Failed to save appointment"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			h := newTestHandler(&stubBookingUsecase{createErr: tt.err})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(`{}`))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			h.CreateAppointment(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			resp := decodeResponse(t, rec)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestCreateAppointment_JSONBody(t *testing.T) {
	stub := &stubBookingUsecase{}
	h := newTestHandler(stub)
	body := `{"customerName":"Ada","customerEmail":"ada@example.com","customerPhone":"555","selectedService":"Manicure","appointmentDate":"2024-06-20","appointmentTime":"10:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.CreateAppointment(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, msgBooked, resp.Message)
	require.NotNil(t, stub.lastReq)
	assert.Equal(t, "Ada", stub.lastReq.CustomerName)
	assert.Equal(t, "10:00", stub.lastReq.AppointmentTime)
}

func TestCreateAppointment_FormBody(t *testing.T) {
	stub := &stubBookingUsecase{}
	h := newTestHandler(stub)
	form := url.Values{
		"customerName":    {"Grace"},
		"customerEmail":   {"grace@example.com"},
		"customerPhone":   {"555 0100"},
		"selectedService": {"Pedicure"},
		"appointmentDate": {"2024-06-20"},
		"appointmentTime": {"11:00"},
		"specialRequests": {"None"},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	h.CreateAppointment(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, stub.lastReq)
	assert.Equal(t, "Pedicure", stub.lastReq.SelectedService)
	assert.Equal(t, "None", stub.lastReq.SpecialRequests)
}

func TestCreateAppointment_MalformedBody(t *testing.T) {
	stub := &stubBookingUsecase{}
	h := newTestHandler(stub)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(`{"customerName":`))
	rec := httptest.NewRecorder()

	h.CreateAppointment(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, stub.lastReq)
}

func TestCancelAppointment_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"cancelled", nil, http.StatusOK},
		{"not found", usecase.ErrAppointmentNotFound, http.StatusNotFound},
		{"already cancelled", usecase.ErrAppointmentAlreadyCancelled, http.StatusConflict},
		{"storage failure", errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubBookingUsecase{cancelErr: tt.err}
			h := newTestHandler(stub)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments/a1/cancel", nil)
			req = mux.SetURLVars(req, map[string]string{"id": "a1"})
			rec := httptest.NewRecorder()

			h.CancelAppointment(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "a1", stub.lastID)
		})
	}
}

func TestGetServices_Error(t *testing.T) {
	h := newTestHandler(&stubBookingUsecase{servErr: errors.New("boom")})
	rec := httptest.NewRecorder()

	h.GetServices(rec, httptest.NewRequest(http.MethodGet, "/api/v1/services", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetAppointmentsFragment(t *testing.T) {
	h := newTestHandler(&stubBookingUsecase{})
	rec := httptest.NewRecorder()

	h.GetAppointmentsFragment(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments/fragment", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `class="no-appointments"`)
}

func TestCreateAppointment_FieldErrorsInEnvelope(t *testing.T) {
	h := newTestHandler(&stubBookingUsecase{createErr: &usecase.ValidationError{
		Reason: usecase.ErrInvalidEmail,
		Fields: map[string]string{"customerEmail": "customerEmail must be a valid email address"},
	}})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.CreateAppointment(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "Please enter a valid email address.", resp.Message)
	assert.Equal(t, map[string]interface{}{"customerEmail": "customerEmail must be a valid email address"}, resp.Error)
}

func TestCreateAppointment_WrappedErrors(t *testing.T) {
	h := newTestHandler(&stubBookingUsecase{createErr: fmt.Errorf("book: %w", usecase.ErrTimeSlotTaken)})
	rec := httptest.NewRecorder()
	h.CreateAppointment(rec, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Nil(t, decodeResponse(t, rec).Error)

	h = newTestHandler(&stubBookingUsecase{cancelErr: fmt.Errorf("cancel: %w", usecase.ErrAppointmentNotFound)})
	req := mux.SetURLVars(httptest.NewRequest(http.MethodPost, "/api/v1/appointments/a1/cancel", nil), map[string]string{"id": "a1"})
	rec = httptest.NewRecorder()
	h.CancelAppointment(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
