package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingForm struct {
	Name  string `json:"customerName" validate:"notblank"`
	Email string `json:"customerEmail" validate:"notblank,salon_email"`
	Phone string `json:"customerPhone" validate:"notblank,salon_phone"`
	Date  string `json:"appointmentDate" validate:"notblank,calendar_date,not_past"`
	Time  string `json:"appointmentTime" validate:"notblank,clock_time"`
}

func fixedClock() time.Time {
	return time.Date(2024, time.June, 15, 18, 30, 0, 0, time.Local)
}

func validForm() bookingForm {
	return bookingForm{
		Name:  "Ada",
		Email: "ada@example.com",
		Phone: "+1 (555) 010-2000",
		Date:  "2024-06-15",
		Time:  "09:30",
	}
}

func TestValidate_AcceptsValidForm(t *testing.T) {
	v := NewValidatorWithClock(fixedClock)
	assert.NoError(t, v.Validate(validForm()))
}

func TestValidate_FailedTags(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*bookingForm)
		field  string
		tag    string
	}{
		{"blank name", func(f *bookingForm) { f.Name = "   " }, "customerName", TagNotBlank},
		{"empty email", func(f *bookingForm) { f.Email = "" }, "customerEmail", TagNotBlank},
		{"email without dot", func(f *bookingForm) { f.Email = "ada@example" }, "customerEmail", TagEmail},
		{"email with space", func(f *bookingForm) { f.Email = "ada lovelace@example.com" }, "customerEmail", TagEmail},
		{"phone with letters", func(f *bookingForm) { f.Phone = "555-CALL" }, "customerPhone", TagPhone},
		{"malformed date", func(f *bookingForm) { f.Date = "15/06/2024" }, "appointmentDate", TagCalendarDate},
		{"impossible date", func(f *bookingForm) { f.Date = "2024-02-30" }, "appointmentDate", TagCalendarDate},
		{"yesterday", func(f *bookingForm) { f.Date = "2024-06-14" }, "appointmentDate", TagNotPast},
		{"malformed time", func(f *bookingForm) { f.Time = "9:30" }, "appointmentTime", TagClockTime},
		{"out of range time", func(f *bookingForm) { f.Time = "24:00" }, "appointmentTime", TagClockTime},
	}

	v := NewValidatorWithClock(fixedClock)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			err := v.Validate(form)
			require.Error(t, err)

			tags := FailedTags(err)
			assert.Equal(t, map[string]string{tt.field: tt.tag}, tags)
		})
	}
}

func TestValidate_TodayIsNotPast(t *testing.T) {
	// late in the day, today's date is still bookable
	v := NewValidatorWithClock(func() time.Time {
		return time.Date(2024, time.June, 15, 23, 59, 0, 0, time.Local)
	})
	form := validForm()
	form.Date = "2024-06-15"
	assert.NoError(t, v.Validate(form))
}

func TestValidate_PhoneCharacters(t *testing.T) {
	v := NewValidatorWithClock(fixedClock)
	for _, phone := range []string{"5550102000", "555 010 2000", "+44-20-7946-0000", "(555)0102000"} {
		form := validForm()
		form.Phone = phone
		assert.NoError(t, v.Validate(form), phone)
	}
}

func TestToday(t *testing.T) {
	v := NewValidatorWithClock(fixedClock)
	assert.Equal(t, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.Local), v.Today())
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidatorWithClock(fixedClock)
	form := validForm()
	form.Name = ""
	form.Time = "noon"

	messages := v.FormatValidationErrors(v.Validate(form))
	assert.Equal(t, "customerName is required", messages["customerName"])
	assert.Equal(t, "appointmentTime must be a time in HH:MM format", messages["appointmentTime"])
}

func TestFailedTags_NonValidationError(t *testing.T) {
	assert.Empty(t, FailedTags(assert.AnError))
}
