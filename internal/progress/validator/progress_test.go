package validator

import (
	"errors"
	"testing"

	"smartgym/pkg/model"
)

func ptr(f float64) *float64 { return &f }

func TestProgressValidator(t *testing.T) {
	v := NewProgressValidator()

	valid := func() model.ProgressRequest {
		return model.ProgressRequest{DNI: "12345678", WeightKg: ptr(80), BodyFatPct: ptr(0), MusclePct: ptr(100)}
	}

	tests := []struct {
		name      string
		mutate    func(r *model.ProgressRequest)
		wantField string
		wantMsg   string
	}{
		{"valid with edge percentages", func(*model.ProgressRequest) {}, "", ""},
		{"max weight", func(r *model.ProgressRequest) { r.WeightKg = ptr(400) }, "", ""},
		{"missing dni", func(r *model.ProgressRequest) { r.DNI = "" }, "DNI", "DNI is required"},
		{"missing weight", func(r *model.ProgressRequest) { r.WeightKg = nil }, "WeightKg", "WeightKg is required"},
		{"zero weight", func(r *model.ProgressRequest) { r.WeightKg = ptr(0) }, "WeightKg", "WeightKg must be greater than 0"},
		{"weight too high", func(r *model.ProgressRequest) { r.WeightKg = ptr(400.5) }, "WeightKg", "WeightKg must be at most 400"},
		{"negative body fat", func(r *model.ProgressRequest) { r.BodyFatPct = ptr(-1) }, "BodyFatPct", "BodyFatPct must be at least 0"},
		{"muscle above 100", func(r *model.ProgressRequest) { r.MusclePct = ptr(101) }, "MusclePct", "MusclePct must be at most 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			err := v.Validate(&req)
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
			if msg := verrs.Details()[tt.wantField]; msg != tt.wantMsg {
				t.Errorf("expected %q on %s, got %v", tt.wantMsg, tt.wantField, msg)
			}
		})
	}
}
