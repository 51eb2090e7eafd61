package db_models

import "github.com/google/uuid"

// SavedTrip persists a completed itinerary alongside the answers that
// produced it. The plan document is stored as the raw wire JSON; the
// mutation engine rewrites it coordinate by coordinate.
type SavedTrip struct {
	BaseModel
	AccountID   *uuid.UUID `gorm:"type:uuid;index"`
	Destination string
	StartDate   string
	EndDate     string
	SearchMode  string
	PlanJSON    []byte `gorm:"type:jsonb"`
	RequestJSON []byte `gorm:"type:jsonb"`
}
