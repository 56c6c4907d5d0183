// Package domain holds the core types shared across the domain-scout service.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// CheckResult is the availability verdict for a single candidate domain.
// Exactly one CheckResult is produced per submitted domain, in input order.
type CheckResult struct {
	Domain    string   `json:"domain"`
	Available bool     `json:"available"`
	Premium   bool     `json:"premium"`
	Price     *float64 `json:"price,omitempty"`

	// ErrorMessage is set when this specific lookup failed irrecoverably
	// while the rest of the batch may still have succeeded.
	ErrorMessage string `json:"error_message,omitempty"`
}

// Favorite is a domain a user chose to keep, with the project idea that
// produced it.
type Favorite struct {
	ID          uuid.UUID `db:"id"           json:"id"`
	Domain      string    `db:"domain"       json:"domain"`
	ProjectIdea string    `db:"project_idea" json:"project_idea,omitempty"`
	CreatedAt   time.Time `db:"created_at"   json:"created_at"`
}
