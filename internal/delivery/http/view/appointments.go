package view

import (
	"html/template"
	"io"

	"salon-booking/internal/delivery/dto"
)

var appointmentsTemplate = template.Must(template.New("appointments").Parse(`
{{- if not .Appointments -}}
<p class="no-appointments">{{ .EmptyMessage }}</p>
{{- else -}}
{{- range .Appointments }}
<div class="appointment-card">
    <div class="appointment-header">
        <div class="appointment-info">
            <h3>{{ .Service }}</h3>
            <p class="appointment-status {{ .StatusClass }}">{{ .Status }}</p>
        </div>
        <button class="cancel-appointment-btn" data-appointment-id="{{ .Cancel.AppointmentID }}">{{ .Cancel.Label }}</button>
    </div>
    <div class="appointment-details">
        <div class="detail-item">
            <span class="detail-label">Date</span>
            <span class="detail-value">{{ .Date }}</span>
        </div>
        <div class="detail-item">
            <span class="detail-label">Time</span>
            <span class="detail-value">{{ .Time }}</span>
        </div>
        <div class="detail-item">
            <span class="detail-label">Customer</span>
            <span class="detail-value">{{ .CustomerName }}</span>
        </div>
        <div class="detail-item">
            <span class="detail-label">Price</span>
            <span class="detail-value">{{ .Price }}</span>
        </div>
    </div>
    {{- if .SpecialRequests }}
    <div class="special-requests">
        <span class="detail-label">Special Requests:</span>
        <p>{{ .SpecialRequests }}</p>
    </div>
    {{- end }}
</div>
{{- end }}
{{- end }}
`))

// RenderAppointments writes the appointment cards the booking widget inserts
// into its list. Values are HTML-escaped.
func RenderAppointments(w io.Writer, list *dto.AppointmentListResponse) error {
	return appointmentsTemplate.Execute(w, list)
}
