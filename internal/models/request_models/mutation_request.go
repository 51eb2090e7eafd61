package request_models

type SuggestAlternativeRequest struct {
	TripID        string `json:"trip_id" binding:"required,uuid4"`
	DayIndex      *int   `json:"dayIndex" binding:"required"`
	ActivityIndex *int   `json:"activityIndex" binding:"required"`
	Message       string `json:"message" binding:"required"`
}

// AddActivityRequest inserts assistant-suggested activities into one day.
// InsertAfter is the index of the preceding activity; nil inserts at the
// start of the day.
type AddActivityRequest struct {
	TripID      string `json:"trip_id" binding:"required,uuid4"`
	DayIndex    *int   `json:"dayIndex" binding:"required"`
	InsertAfter *int   `json:"insertAfter"`
	Message     string `json:"message" binding:"required"`
}

type OpenComposerRequest struct {
	TripID        string `json:"trip_id" binding:"required,uuid4"`
	DayIndex      *int   `json:"dayIndex" binding:"required"`
	ActivityIndex *int   `json:"activityIndex" binding:"required"`
	Text          string `json:"text"`
}

type CloseComposerRequest struct {
	TripID        string `json:"trip_id" binding:"required,uuid4"`
	DayIndex      *int   `json:"dayIndex" binding:"required"`
	ActivityIndex *int   `json:"activityIndex" binding:"required"`
}
