package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// requiredID rejects the zero uuid. validation.Required cannot: a
// uuid.UUID is a [16]byte array, which is never length zero, so the
// zero id would slip through as "present".
func requiredID(value interface{}) error {
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return errors.New("id is required")
	}
	return nil
}

// =====================================================
// CREATE CLIENT REQUEST
// =====================================================
type CreateClientRequest struct {
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
}

// Validate validates CreateClientRequest
func (req CreateClientRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required.Error("name is required")),
		validation.Field(&req.Email, is.EmailFormat),
	)
}

// =====================================================
// UPDATE CLIENT REQUEST
// =====================================================
// Only fields present in the body are changed.
type UpdateClientRequest struct {
	ID    uuid.UUID `json:"id"`
	Name  *string   `json:"name,omitempty"`
	Email *string   `json:"email,omitempty"`
}

// Validate validates UpdateClientRequest
func (req UpdateClientRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ID, validation.By(requiredID)),
		validation.Field(&req.Email, is.EmailFormat),
	)
}

// =====================================================
// DELETE CLIENT REQUEST
// =====================================================
type DeleteClientRequest struct {
	ID uuid.UUID `json:"id"`
}

// Validate validates DeleteClientRequest
func (req DeleteClientRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ID, validation.By(requiredID)),
	)
}

// =====================================================
// DELETE CLIENT RESPONSE
// =====================================================
type DeleteClientResponse struct {
	Success bool `json:"success"`
}
