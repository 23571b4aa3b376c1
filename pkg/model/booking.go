package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Booking is a reservation of one trainer slot by one customer. Bookings
// are never updated; they are created and later cancelled.
type Booking struct {
	ID         int64     `json:"id" bson:"_id"`
	CustomerID string    `json:"customer_id" bson:"customer_id"`
	TrainerID  string    `json:"trainer_id" bson:"trainer_id"`
	Schedule   `bson:",inline"`
	Note       string    `json:"note,omitempty" bson:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

func (b Booking) String() string {
	return fmt.Sprintf("Booking{id=%d, customer=%s, trainer=%s, schedule=%s}", b.ID, b.CustomerID, b.TrainerID, b.Schedule)
}

// BookingRequest is the create payload accepted over HTTP.
type BookingRequest struct {
	CustomerID string `json:"customer_id" validate:"required,max=180"`
	TrainerID  string `json:"trainer_id" validate:"required,max=180"`
	Date       string `json:"date" validate:"required,booking_date"`
	Time       string `json:"time" validate:"required,booking_time"`
	Note       string `json:"note,omitempty"`
}

// UnmarshalJSON also accepts the email-based field names used by older
// clients (customer_email, trainerEmail, ...).
func (r *BookingRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		CustomerID         string `json:"customer_id"`
		CustomerEmail      string `json:"customer_email"`
		CustomerEmailCamel string `json:"customerEmail"`
		TrainerID          string `json:"trainer_id"`
		TrainerEmail       string `json:"trainer_email"`
		TrainerEmailCamel  string `json:"trainerEmail"`
		Date               string `json:"date"`
		Time               string `json:"time"`
		Note               string `json:"note"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.CustomerID = firstNonEmpty(raw.CustomerID, raw.CustomerEmail, raw.CustomerEmailCamel)
	r.TrainerID = firstNonEmpty(raw.TrainerID, raw.TrainerEmail, raw.TrainerEmailCamel)
	r.Date = raw.Date
	r.Time = raw.Time
	r.Note = raw.Note
	return nil
}

// CancelResult is returned after a successful cancellation.
type CancelResult struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

const StatusCancelled = "CANCELLED"

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
