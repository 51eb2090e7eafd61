package response_models

import "fastplan/internal/models/request_models"

// SubmitPlanResponse carries the generated plan forward to the result view
// together with the answers that produced it, which later mutation prompts
// need as context.
type SubmitPlanResponse struct {
	TripID          string                      `json:"trip_id"`
	Plan            TripPlan                    `json:"plan"`
	OriginalRequest request_models.AnswerRecord `json:"original_request"`
}

type SavedTripSummary struct {
	ID          string `json:"id"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	SearchMode  string `json:"search_mode"`
	CreatedAt   string `json:"created_at"`
}

// AddActivityResponse reports a completed insertion: the sequence now in the
// plan and the position of its first element.
type AddActivityResponse struct {
	DayIndex   int           `json:"dayIndex"`
	InsertedAt int           `json:"insertedAt"`
	Activities []Activity    `json:"activities"`
	DayCost    *CostEstimate `json:"day_cost_estimate,omitempty"`
	TripCost   *TripCost     `json:"total_cost_estimate,omitempty"`
}

type ActivityNoteResponse struct {
	ID            string `json:"id"`
	TripID        string `json:"trip_id"`
	DayIndex      int    `json:"day_index"`
	ActivityIndex int    `json:"activity_index"`
	Note          string `json:"note"`
	IsDone        bool   `json:"is_done"`
	UpdatedAt     string `json:"updated_at"`
}

// SuggestAlternativeResponse reports a completed merge: the replacement that
// now occupies the coordinate plus whatever aggregates the assistant chose to
// refresh.
type SuggestAlternativeResponse struct {
	DayIndex      int           `json:"dayIndex"`
	ActivityIndex int           `json:"activityIndex"`
	Activity      Activity      `json:"activity"`
	DayCost       *CostEstimate `json:"day_cost_estimate,omitempty"`
	TripCost      *TripCost     `json:"total_cost_estimate,omitempty"`
}
