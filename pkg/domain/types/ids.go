package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// ProfileID identifies a device/user profile. There is exactly one active
// conversation thread per profile.
type ProfileID string

// Validate checks if the ProfileID is valid
func (p ProfileID) Validate() error {
	if p == "" {
		return goerr.New("profile ID cannot be empty")
	}
	return nil
}

// String returns the string representation of ProfileID
func (p ProfileID) String() string {
	return string(p)
}

// MessageID identifies a conversation message. It is time-ordered with a
// random suffix so IDs generated within the same millisecond stay unique.
type MessageID string

// NewMessageID generates a new MessageID
func NewMessageID() MessageID {
	return MessageID(fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.New().String()[:8]))
}

// String returns the string representation of MessageID
func (m MessageID) String() string {
	return string(m)
}

// PetID is a UUID-based identifier for Pet
type PetID string

// NewPetID generates a new UUID v4 PetID
func NewPetID() PetID {
	return PetID(uuid.New().String())
}

// String returns the string representation of PetID
func (p PetID) String() string {
	return string(p)
}

// TaskID is a UUID-based identifier for Task
type TaskID string

// NewTaskID generates a new UUID v4 TaskID
func NewTaskID() TaskID {
	return TaskID(uuid.New().String())
}

// String returns the string representation of TaskID
func (t TaskID) String() string {
	return string(t)
}

// VaccinationID is a UUID-based identifier for VaccinationRecord
type VaccinationID string

// NewVaccinationID generates a new UUID v4 VaccinationID
func NewVaccinationID() VaccinationID {
	return VaccinationID(uuid.New().String())
}

// String returns the string representation of VaccinationID
func (v VaccinationID) String() string {
	return string(v)
}

// NotificationID is a UUID-based identifier for Notification
type NotificationID string

// NewNotificationID generates a new UUID v4 NotificationID
func NewNotificationID() NotificationID {
	return NotificationID(uuid.New().String())
}

// String returns the string representation of NotificationID
func (n NotificationID) String() string {
	return string(n)
}

// ActionID is an identifier for a SuggestedAction
type ActionID string

// NewActionID generates a new ActionID
func NewActionID() ActionID {
	return ActionID(fmt.Sprintf("action-%d-%s", time.Now().UnixMilli(), uuid.New().String()[:8]))
}

// String returns the string representation of ActionID
func (a ActionID) String() string {
	return string(a)
}
