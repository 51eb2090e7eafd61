package request_models

// SaveNoteRequest upserts the note pinned to one itinerary coordinate.
// A nil IsDone leaves the completion flag unchanged.
type SaveNoteRequest struct {
	TripID        string `json:"trip_id" binding:"required,uuid4"`
	DayIndex      *int   `json:"day_index" binding:"required"`
	ActivityIndex *int   `json:"activity_index" binding:"required"`
	Note          string `json:"note"`
	IsDone        *bool  `json:"is_done"`
}
