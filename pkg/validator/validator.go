package validator

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const (
	dateLayout = "2006-01-02"

	TagNotBlank     = "notblank"
	TagEmail        = "salon_email"
	TagPhone        = "salon_phone"
	TagCalendarDate = "calendar_date"
	TagNotPast      = "not_past"
	TagClockTime    = "clock_time"
)

var (
	emailPattern     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern     = regexp.MustCompile(`^[\d\s\-\+\(\)]+$`)
	clockTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

type CustomValidator struct {
	validator *validator.Validate
	now       func() time.Time
}

func NewValidator() *CustomValidator {
	return NewValidatorWithClock(time.Now)
}

// NewValidatorWithClock uses now to decide what "today" is for the not_past rule.
func NewValidatorWithClock(now func() time.Time) *CustomValidator {
	cv := &CustomValidator{
		validator: validator.New(),
		now:       now,
	}

	cv.validator.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	cv.mustRegister(TagNotBlank, validators.NotBlank)
	cv.mustRegister(TagEmail, matches(emailPattern))
	cv.mustRegister(TagPhone, matches(phonePattern))
	cv.mustRegister(TagCalendarDate, isCalendarDate)
	cv.mustRegister(TagNotPast, cv.isNotPast)
	cv.mustRegister(TagClockTime, matches(clockTimePattern))

	return cv
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Today returns the start of the current local day.
func (cv *CustomValidator) Today() time.Time {
	now := cv.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required", TagNotBlank:
				errors[field] = field + " is required"
			case "email", TagEmail:
				errors[field] = field + " must be a valid email address"
			case TagPhone:
				errors[field] = field + " may only contain digits, spaces and + - ( )"
			case TagCalendarDate:
				errors[field] = field + " must be a date in YYYY-MM-DD format"
			case TagNotPast:
				errors[field] = field + " must be today or later"
			case TagClockTime:
				errors[field] = field + " must be a time in HH:MM format"
			case "min":
				errors[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}

// FailedTags returns the failing tag per field, keyed by the field's JSON name.
func FailedTags(err error) map[string]string {
	tags := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			tags[e.Field()] = e.Tag()
		}
	}
	return tags
}

func (cv *CustomValidator) mustRegister(tag string, fn validator.Func) {
	if err := cv.validator.RegisterValidation(tag, fn); err != nil {
		panic("validator: register " + tag + ": " + err.Error())
	}
}

func (cv *CustomValidator) isNotPast(fl validator.FieldLevel) bool {
	today := cv.Today()
	date, err := time.ParseInLocation(dateLayout, fl.Field().String(), today.Location())
	if err != nil {
		return false
	}
	return !date.Before(today)
}

func isCalendarDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(dateLayout, fl.Field().String())
	return err == nil
}

func matches(pattern *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return pattern.MatchString(fl.Field().String())
	}
}
