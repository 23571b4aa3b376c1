package validator

import (
	"errors"
	"strings"
	"testing"

	"smartgym/pkg/model"
)

func TestPartyValidator_Customer(t *testing.T) {
	v := NewPartyValidator()

	tests := []struct {
		name      string
		customer  model.Customer
		wantField string
	}{
		{"valid", model.Customer{ID: "alice@gym.io", Name: "Alice", Age: 30}, ""},
		{"missing id", model.Customer{Name: "Alice", Age: 30}, "ID"},
		{"missing name", model.Customer{ID: "alice@gym.io", Age: 30}, "Name"},
		{"negative age", model.Customer{ID: "alice@gym.io", Name: "Alice", Age: -1}, "Age"},
		{"age too high", model.Customer{ID: "alice@gym.io", Name: "Alice", Age: 200}, "Age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateCustomer(&tt.customer)
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

func TestPartyValidator_Trainer(t *testing.T) {
	v := NewPartyValidator()

	valid := model.Trainer{ID: "mike@gym.io", Name: "Mike", Age: 40, Specialty: "strength"}
	if err := v.ValidateTrainer(&valid); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	long := valid
	long.Specialty = strings.Repeat("s", 161)
	var verrs ValidationErrors
	if err := v.ValidateTrainer(&long); !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if msg := verrs.Details()["Specialty"]; msg != "Specialty must be at most 160 characters" {
		t.Errorf("unexpected message: %v", msg)
	}
}

func TestPartyValidator_Identity(t *testing.T) {
	v := NewPartyValidator()

	tests := []struct {
		name      string
		req       model.IdentityLinkRequest
		wantField string
		wantMsg   string
	}{
		{"valid", model.IdentityLinkRequest{DNI: "12345678", Email: "alice@gym.io"}, "", ""},
		{"short dni", model.IdentityLinkRequest{DNI: "1234567", Email: "alice@gym.io"}, "DNI", "DNI must be exactly 8 characters"},
		{"letters in dni", model.IdentityLinkRequest{DNI: "1234567a", Email: "alice@gym.io"}, "DNI", "DNI must contain only digits"},
		{"missing email", model.IdentityLinkRequest{DNI: "12345678"}, "Email", "Email is required"},
		{"bad email", model.IdentityLinkRequest{DNI: "12345678", Email: "alice"}, "Email", "Email must be a valid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateIdentity(&tt.req)
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
