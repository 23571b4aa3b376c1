package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("booking not found")

	ErrDuplicateBooking = errors.New("duplicate booking")

	ErrTrainerBusy = errors.New("trainer already has a booking at that schedule")

	ErrUnknownParty = errors.New("party does not exist")
)

const (
	RoleCustomer = "customer"
	RoleTrainer  = "trainer"
)

// UnknownPartyError names which side of the booking is missing from the
// directory. It matches ErrUnknownParty under errors.Is.
type UnknownPartyError struct {
	Role string
	ID   string
}

func (e *UnknownPartyError) Error() string {
	return fmt.Sprintf("%s does not exist: %s", e.Role, e.ID)
}

func (e *UnknownPartyError) Is(target error) bool {
	return target == ErrUnknownParty
}
