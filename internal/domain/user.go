package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the account that owns résumés. PasswordHash is empty for accounts
// created through an external identity provider, in which case Provider names it.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	ImageURL     *string   `json:"image,omitempty"`
	PasswordHash string    `json:"-"`
	Provider     string    `json:"provider,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
