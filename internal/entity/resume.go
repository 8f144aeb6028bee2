package entity

import (
	"time"

	"github.com/google/uuid"
)

// Resume represents a parsed resume row for data transfer between layers.
type Resume struct {
	ID         uuid.UUID `json:"id"`
	FileID     string    `json:"file_id"`
	Name       string    `json:"name,omitempty"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Skills     []string  `json:"skills,omitempty"`
	Experience []string  `json:"experience,omitempty"`
	Education  []string  `json:"education,omitempty"`
	ParsedAt   time.Time `json:"parsed_at"`
}
