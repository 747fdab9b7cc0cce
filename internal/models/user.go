// internal/models/user.go
package models

import "github.com/google/uuid"

// User is an account known to the service. Guests joining a table without
// registering get an ephemeral user minted on first contact.
type User struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Password string    `json:"password,omitempty"`
	Username string    `json:"username"`

	IsEphemeral bool `json:"is_ephemeral"`
}
