package model

import (
	"time"

	"github.com/google/uuid"
)

// =====================================================
// DEFAULT CLIENT CONSTANTS
// =====================================================
// Provisioned automatically when the invoice form is opened
// with an empty client list.
const (
	DefaultClientName  = "Default Client"
	DefaultClientEmail = "default@example.com"
)

// =====================================================
// ENTITY: Client
// =====================================================
type Client struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// EmailOrEmpty returns the email or "" when unset.
func (c *Client) EmailOrEmpty() string {
	if c.Email == nil {
		return ""
	}
	return *c.Email
}
