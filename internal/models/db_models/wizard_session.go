package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"

	"fastplan/internal/models/request_models"
)

// SessionSchemaVersion stamps every persisted snapshot. A snapshot written by
// an incompatible schema must degrade to a fresh session, never crash the
// wizard, so readers compare versions before rehydrating.
const SessionSchemaVersion = 2

type WizardSession struct {
	BaseModel
	AccountID          *uuid.UUID `gorm:"type:uuid;index"`
	SchemaVersion      int
	CurrentStep        int
	Destination        string
	StartDate          string
	EndDate            string
	TripStyle          pq.StringArray `gorm:"type:text[]"`
	Interests          pq.StringArray `gorm:"type:text[]"`
	Pace               string
	Budget             string
	TransportationMode string
	TravelWith         string
	MustSeeAttractions string
	SearchMode         string
	Submitted          bool
}

func (s *WizardSession) ToAnswerRecord() request_models.AnswerRecord {
	return request_models.AnswerRecord{
		Destination:        s.Destination,
		StartDate:          s.StartDate,
		EndDate:            s.EndDate,
		TripStyle:          append([]string(nil), s.TripStyle...),
		Interests:          append([]string(nil), s.Interests...),
		Pace:               s.Pace,
		Budget:             s.Budget,
		TransportationMode: s.TransportationMode,
		TravelWith:         s.TravelWith,
		MustSeeAttractions: s.MustSeeAttractions,
		SearchMode:         s.SearchMode,
	}
}

func (s *WizardSession) SetAnswerRecord(r request_models.AnswerRecord) {
	s.Destination = r.Destination
	s.StartDate = r.StartDate
	s.EndDate = r.EndDate
	s.TripStyle = append(pq.StringArray(nil), r.TripStyle...)
	s.Interests = append(pq.StringArray(nil), r.Interests...)
	s.Pace = r.Pace
	s.Budget = r.Budget
	s.TransportationMode = r.TransportationMode
	s.TravelWith = r.TravelWith
	s.MustSeeAttractions = r.MustSeeAttractions
	s.SearchMode = r.SearchMode
}
