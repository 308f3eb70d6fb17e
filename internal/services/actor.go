package services

import "github.com/google/uuid"

// Actor identifies the staff member behind a request, for audit fields
type Actor struct {
	ID        uuid.UUID
	IP        string
	UserAgent string
}
