package model

import "time"

const (
	RoleCustomer = "CUSTOMER"
	RoleTrainer  = "TRAINER"
)

// IdentityLink maps a national ID (DNI) to a registered party's email.
// One DNI resolves to exactly one email; relinking replaces it.
type IdentityLink struct {
	DNI      string    `json:"dni" bson:"_id"`
	Email    string    `json:"email" bson:"email"`
	Role     string    `json:"role" bson:"role"`
	LinkedAt time.Time `json:"linked_at" bson:"linked_at"`
}

type IdentityLinkRequest struct {
	DNI   string `json:"dni" validate:"required,len=8,numeric"`
	Email string `json:"email" validate:"required,email,max=180"`
}

// AttendanceRecord is one gym entry recorded at the access desk.
type AttendanceRecord struct {
	ID        string    `json:"id" bson:"_id"`
	Email     string    `json:"email" bson:"email"`
	Role      string    `json:"role" bson:"role"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// DNIRequest carries a national ID in a request body.
type DNIRequest struct {
	DNI string `json:"dni"`
}

type AccessResult struct {
	Message string            `json:"message"`
	Record  *AttendanceRecord `json:"record"`
}

// Routine is a weekly training plan keyed by lowercase weekday
// ("monday".."saturday"). The newest routine of a customer is the active one.
type Routine struct {
	ID         string            `json:"id" bson:"_id"`
	CustomerID string            `json:"customer_id" bson:"customer_id"`
	Plan       map[string]string `json:"plan" bson:"plan"`
	CreatedAt  time.Time         `json:"created_at" bson:"created_at"`
}

type RoutineBlock struct {
	Day   string `json:"day"`
	Block string `json:"block"`
}

// ProgressRecord holds one day's body measurements for a customer.
// A customer has at most one record per date.
type ProgressRecord struct {
	ID         string    `json:"-" bson:"_id"`
	CustomerID string    `json:"customer_id" bson:"customer_id"`
	Date       string    `json:"date" bson:"date"`
	WeightKg   float64   `json:"weight_kg" bson:"weight_kg"`
	BodyFatPct float64   `json:"body_fat_pct" bson:"body_fat_pct"`
	MusclePct  float64   `json:"muscle_pct" bson:"muscle_pct"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// ProgressRequest uses pointers so a missing measurement is told apart
// from a legitimate zero.
type ProgressRequest struct {
	DNI        string   `json:"dni" validate:"required"`
	WeightKg   *float64 `json:"weight_kg" validate:"required,gt=0,lte=400"`
	BodyFatPct *float64 `json:"body_fat_pct" validate:"required,gte=0,lte=100"`
	MusclePct  *float64 `json:"muscle_pct" validate:"required,gte=0,lte=100"`
}

type ProgressSummary struct {
	Items         []*ProgressRecord `json:"items"`
	Total         int               `json:"total"`
	AvgWeightKg   float64           `json:"avg_weight_kg"`
	AvgBodyFatPct float64           `json:"avg_body_fat_pct"`
	AvgMusclePct  float64           `json:"avg_muscle_pct"`
}
