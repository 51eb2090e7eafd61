package request_models

// AnswerRecord is the wizard accumulator. Field keys match what the web
// client posts; set-valued answers stay string slices end to end so a
// persisted snapshot round-trips without losing membership.
type AnswerRecord struct {
	Destination        string   `json:"destination"`
	StartDate          string   `json:"startDate"`
	EndDate            string   `json:"endDate"`
	TripStyle          []string `json:"tripStyle"`
	Interests          []string `json:"interests"`
	Pace               string   `json:"pace"`
	Budget             string   `json:"budget"`
	TransportationMode string   `json:"transportationMode"`
	TravelWith         string   `json:"travelWith"`
	MustSeeAttractions string   `json:"mustSeeAttractions"`
	SearchMode         string   `json:"searchMode"`
}

// FieldUpdate is a partial merge into the AnswerRecord; nil slices and empty
// strings mean "not touched" so a single-field update never clobbers siblings.
type FieldUpdate struct {
	Destination        *string  `json:"destination,omitempty"`
	StartDate          *string  `json:"startDate,omitempty"`
	EndDate            *string  `json:"endDate,omitempty"`
	TripStyle          []string `json:"tripStyle,omitempty"`
	Interests          []string `json:"interests,omitempty"`
	Pace               *string  `json:"pace,omitempty"`
	Budget             *string  `json:"budget,omitempty"`
	TransportationMode *string  `json:"transportationMode,omitempty"`
	TravelWith         *string  `json:"travelWith,omitempty"`
	MustSeeAttractions *string  `json:"mustSeeAttractions,omitempty"`
	SearchMode         *string  `json:"searchMode,omitempty"`
}

type SubmitPlanRequest struct {
	SessionID string `json:"session_id" binding:"required,uuid4"`
}
