package view

import (
	"bytes"
	"strings"
	"testing"

	"salon-booking/internal/delivery/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderAppointments_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := RenderAppointments(&buf, &dto.AppointmentListResponse{EmptyMessage: "Nothing here"})
	require.NoError(t, err)

	assert.Equal(t, `<p class="no-appointments">Nothing here</p>`, strings.TrimSpace(buf.String()))
}

func TestRenderAppointments_Cards(t *testing.T) {
	list := &dto.AppointmentListResponse{
		Appointments: []dto.AppointmentView{
			{
				ID:           "a1",
				Service:      "Manicure",
				Date:         "Monday, January 1, 2024",
				Time:         "2:00 PM",
				CustomerName: "Grace",
				Price:        "$30.00",
				Status:       "Confirmed",
				StatusClass:  "status-confirmed",
				Cancel:       dto.CancelAction{AppointmentID: "a1", Label: "Cancel"},
			},
			{
				ID:              "a2",
				Service:         "Pedicure",
				CustomerName:    "<script>alert(1)</script>",
				SpecialRequests: "Extra towels",
				Cancel:          dto.CancelAction{AppointmentID: "a2", Label: "Cancel"},
			},
		},
		Total: 2,
	}

	var buf bytes.Buffer
	require.NoError(t, RenderAppointments(&buf, list))
	html := buf.String()

	assert.Equal(t, 2, strings.Count(html, `class="appointment-card"`))
	assert.Contains(t, html, `data-appointment-id="a1"`)
	assert.Contains(t, html, "Monday, January 1, 2024")
	assert.Contains(t, html, "$30.00")
	assert.Contains(t, html, `appointment-status status-confirmed`)
	assert.Equal(t, 1, strings.Count(html, `class="special-requests"`))
	assert.Contains(t, html, "Extra towels")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.NotContains(t, html, "no-appointments")
}
