package model

import "time"

// Customer is a registered gym member. ID is the member's normalized email.
type Customer struct {
	ID        string    `json:"id" bson:"_id" validate:"required,max=180"`
	Name      string    `json:"name" bson:"name" validate:"required,min=1,max=120"`
	Age       int       `json:"age" bson:"age" validate:"gte=0,lte=120"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Trainer is a registered coach that customers book slots with.
type Trainer struct {
	ID        string    `json:"id" bson:"_id" validate:"required,max=180"`
	Name      string    `json:"name" bson:"name" validate:"required,min=1,max=120"`
	Age       int       `json:"age" bson:"age" validate:"gte=0,lte=120"`
	Specialty string    `json:"specialty,omitempty" bson:"specialty,omitempty" validate:"max=160"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// HistoryEntry is one human-readable line in a customer's booking history.
type HistoryEntry struct {
	CustomerID string    `json:"customer_id" bson:"customer_id"`
	TrainerID  string    `json:"trainer_id" bson:"trainer_id"`
	Schedule   string    `json:"schedule" bson:"schedule"`
	Note       string    `json:"note" bson:"note"`
	RecordedAt time.Time `json:"recorded_at" bson:"recorded_at"`
}
