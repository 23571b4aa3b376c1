package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"smartgym/pkg/logger"
	"smartgym/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Details flattens the errors into the map shape carried by AppError.
func (v ValidationErrors) Details() map[string]any {
	fields := make(map[string]any, len(v))
	for _, err := range v {
		fields[err.Field] = err.Message
	}
	return fields
}

type BookingValidator struct {
	validate      *validator.Validate
	logger        *logger.Logger
	noteMaxLength int
}

func NewBookingValidator(log *logger.Logger, noteMaxLength int) *BookingValidator {
	v := validator.New()

	if err := v.RegisterValidation("booking_date", validateBookingDate); err != nil {
		log.Fatal("Failed to register 'booking_date' validator", "error", err)
	}
	if err := v.RegisterValidation("booking_time", validateBookingTime); err != nil {
		log.Fatal("Failed to register 'booking_time' validator", "error", err)
	}

	log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validate:      v,
		logger:        log,
		noteMaxLength: noteMaxLength,
	}
}

func validateBookingDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(model.DateLayout, fl.Field().String())
	return err == nil
}

func validateBookingTime(fl validator.FieldLevel) bool {
	_, err := model.NewSchedule("2000-01-01", fl.Field().String())
	return err == nil
}

// Validate checks the shape of a create request. It does not look at the
// clock or the directory.
func (v *BookingValidator) Validate(req *model.BookingRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if v.noteMaxLength > 0 && utf8.RuneCountInString(req.Note) > v.noteMaxLength {
		return ValidationErrors{
			ValidationError{
				Field:   "Note",
				Message: fmt.Sprintf("Note must be at most %d characters", v.noteMaxLength),
			},
		}
	}

	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case "booking_date":
			message = fmt.Sprintf("%s must be a calendar date in YYYY-MM-DD format", err.Field())
		case "booking_time":
			message = fmt.Sprintf("%s must be a 24-hour time in HH:MM format", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
