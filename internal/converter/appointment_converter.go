package converter

import (
	"sort"
	"strings"
	"time"

	"salon-booking/internal/delivery/dto"
	"salon-booking/internal/domain/entity"
)

const (
	longDateLayout = "Monday, January 2, 2006"
	clockLayout    = "3:04 PM"

	EmptyAppointmentsMessage = "No appointments booked yet. Book your first appointment below!"
	cancelLabel              = "Cancel"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:              appointment.ID,
		CustomerName:    appointment.CustomerName,
		CustomerEmail:   appointment.CustomerEmail,
		CustomerPhone:   appointment.CustomerPhone,
		SelectedService: appointment.SelectedService,
		AppointmentDate: appointment.AppointmentDate,
		AppointmentTime: appointment.AppointmentTime,
		SpecialRequests: appointment.SpecialRequests,
		Price:           appointment.Price,
		Status:          appointment.Status.String(),
		BookedAt:        appointment.BookedAt,
	}
}

// AppointmentsToViews renders the upcoming list: cancelled appointments are
// dropped and the rest ordered by date then time.
func AppointmentsToViews(appointments []entity.Appointment, currencyPrefix string) []dto.AppointmentView {
	active := make([]entity.Appointment, 0, len(appointments))
	for _, appointment := range appointments {
		if !appointment.IsCancelled() {
			active = append(active, appointment)
		}
	}

	// Dates and times are zero-padded, so the string key sorts chronologically.
	sort.SliceStable(active, func(i, j int) bool {
		return slotKey(&active[i]) < slotKey(&active[j])
	})

	views := make([]dto.AppointmentView, len(active))
	for i := range active {
		views[i] = AppointmentToView(&active[i], currencyPrefix)
	}
	return views
}

// AppointmentsToListResponse wraps the rendered views with the empty-state text.
func AppointmentsToListResponse(appointments []entity.Appointment, currencyPrefix string) *dto.AppointmentListResponse {
	views := AppointmentsToViews(appointments, currencyPrefix)
	response := &dto.AppointmentListResponse{
		Appointments: views,
		Total:        len(views),
	}
	if len(views) == 0 {
		response.EmptyMessage = EmptyAppointmentsMessage
	}
	return response
}

func AppointmentToView(appointment *entity.Appointment, currencyPrefix string) dto.AppointmentView {
	view := dto.AppointmentView{
		ID:           appointment.ID,
		Service:      appointment.SelectedService,
		CustomerName: appointment.CustomerName,
		Price:        currencyPrefix + appointment.Price.StringFixed(2),
		Status:       appointment.Status.String(),
		StatusClass:  "status-" + strings.ToLower(appointment.Status.String()),
		Cancel: dto.CancelAction{
			AppointmentID: appointment.ID,
			Label:         cancelLabel,
		},
	}
	if at, err := appointment.ScheduledAt(time.UTC); err == nil {
		view.Date = at.Format(longDateLayout)
		view.Time = at.Format(clockLayout)
	} else {
		view.Date = FormatLongDate(appointment.AppointmentDate)
		view.Time = FormatClockTime(appointment.AppointmentTime)
	}
	if strings.TrimSpace(appointment.SpecialRequests) != "" {
		view.SpecialRequests = appointment.SpecialRequests
	}
	return view
}

// FormatLongDate turns 2024-01-01 into "Monday, January 1, 2024". Unparsable
// input is returned unchanged.
func FormatLongDate(date string) string {
	t, err := time.Parse(entity.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(longDateLayout)
}

// FormatClockTime turns 14:00 into "2:00 PM". Unparsable input is returned unchanged.
func FormatClockTime(clock string) string {
	t, err := time.Parse(entity.TimeLayout, clock)
	if err != nil {
		return clock
	}
	return t.Format(clockLayout)
}

func slotKey(appointment *entity.Appointment) string {
	return appointment.AppointmentDate + " " + appointment.AppointmentTime
}
