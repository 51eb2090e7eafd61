package response_models

import "fastplan/internal/models/request_models"

// WizardStateResponse is the controller's view of a session after any wizard
// operation: the step pointer, the derived validity flags and the accumulated
// answers the step views render from.
type WizardStateResponse struct {
	SessionID    string                      `json:"session_id"`
	CurrentStep  int                         `json:"current_step"`
	TotalSteps   int                         `json:"total_steps"`
	StepValid    bool                        `json:"step_valid"`
	DurationDays int                         `json:"duration_days"` // 0 = unknown
	EndDateMin   string                      `json:"end_date_min,omitempty"`
	Answers      request_models.AnswerRecord `json:"answers"`
}

type DestinationSuggestion struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}
