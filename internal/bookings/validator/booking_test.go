package validator

import (
	"errors"
	"strings"
	"testing"

	"smartgym/pkg/logger"
	"smartgym/pkg/model"
)

func validRequest() *model.BookingRequest {
	return &model.BookingRequest{
		CustomerID: "alice@gym.io",
		TrainerID:  "mike@gym.io",
		Date:       "2099-06-01",
		Time:       "10:00",
	}
}

func TestBookingValidator_Validate(t *testing.T) {
	v := NewBookingValidator(logger.Discard(), 20)

	tests := []struct {
		name      string
		mutate    func(r *model.BookingRequest)
		wantField string
	}{
		{"valid", func(r *model.BookingRequest) {}, ""},
		{"valid with seconds", func(r *model.BookingRequest) { r.Time = "10:00:00" }, ""},
		{"missing customer", func(r *model.BookingRequest) { r.CustomerID = "" }, "CustomerID"},
		{"missing trainer", func(r *model.BookingRequest) { r.TrainerID = "" }, "TrainerID"},
		{"missing date", func(r *model.BookingRequest) { r.Date = "" }, "Date"},
		{"missing time", func(r *model.BookingRequest) { r.Time = "" }, "Time"},
		{"bad date", func(r *model.BookingRequest) { r.Date = "2099-13-01" }, "Date"},
		{"non-iso date", func(r *model.BookingRequest) { r.Date = "01/06/2099" }, "Date"},
		{"bad time", func(r *model.BookingRequest) { r.Time = "25:00" }, "Time"},
		{"time with non-zero seconds", func(r *model.BookingRequest) { r.Time = "10:00:30" }, "Time"},
		{"customer too long", func(r *model.BookingRequest) { r.CustomerID = strings.Repeat("a", 181) }, "CustomerID"},
		{"note too long", func(r *model.BookingRequest) { r.Note = strings.Repeat("n", 21) }, "Note"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := v.Validate(req)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if _, ok := verrs.Details()[tt.wantField]; !ok {
				t.Errorf("expected error on %s, got %v", tt.wantField, verrs)
			}
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "Date", Message: "Date is required"},
		{Field: "Time", Message: "Time is required"},
	}
	got := errs.Error()
	if !strings.Contains(got, "2 error(s)") || !strings.Contains(got, "Date: Date is required") {
		t.Errorf("unexpected message: %s", got)
	}
	if (ValidationErrors{}).Error() != "" {
		t.Error("expected empty message for no errors")
	}
}
