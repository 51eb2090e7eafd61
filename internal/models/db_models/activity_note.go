package db_models

import "github.com/google/uuid"

// ActivityNote is a per-account annotation on one itinerary coordinate of a
// saved trip, with a done flag for checking activities off. One row per
// (account, trip, day, activity); saving again overwrites.
type ActivityNote struct {
	BaseModel
	AccountID     uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_activity_note_slot"`
	TripID        uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_activity_note_slot;index"`
	DayIndex      int       `gorm:"uniqueIndex:idx_activity_note_slot"`
	ActivityIndex int       `gorm:"uniqueIndex:idx_activity_note_slot"`
	Note          string    `gorm:"type:text"`
	IsDone        bool
}
