package request_models

type UpdateWizardFieldRequest struct {
	SessionID string      `json:"session_id" binding:"required,uuid4"`
	Update    FieldUpdate `json:"update" binding:"required"`
}

type WizardStepRequest struct {
	SessionID string `json:"session_id" binding:"required,uuid4"`
}
