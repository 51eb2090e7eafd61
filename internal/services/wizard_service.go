package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"fastplan/internal/catalog"
	"fastplan/internal/models/db_models"
	"fastplan/internal/models/request_models"
	"fastplan/internal/models/response_models"
	"fastplan/internal/repositories"
	"fastplan/pkg/utils"
)

// The wizard is a mostly-linear chain of steps with exactly one branch point:
// step 6 routes to the search-mode selection step, which is terminal — the
// only exit from it is submission.
const (
	StepDestination = 1
	StepDates       = 2
	StepTripStyle   = 3
	StepInterests   = 4
	StepPreferences = 5
	StepFinal       = 6
	StepSearchMode  = 7

	TotalWizardSteps = 7
)

// AccessGuard is the capability check gating wizard entry. The production
// guard rides on the authenticated user id the JWT middleware resolved;
// tests substitute a fake.
type AccessGuard interface {
	Allow(ctx context.Context, userID string) bool
}

type tokenAccessGuard struct{}

func NewTokenAccessGuard() AccessGuard {
	return &tokenAccessGuard{}
}

func (g *tokenAccessGuard) Allow(_ context.Context, userID string) bool {
	return userID != ""
}

type WizardServiceInterface interface {
	StartSession(ctx context.Context, userID string) (*response_models.WizardStateResponse, error)
	Resume(ctx context.Context, sessionID string) (*response_models.WizardStateResponse, error)
	UpdateField(ctx context.Context, sessionID string, update request_models.FieldUpdate) (*response_models.WizardStateResponse, error)
	Advance(ctx context.Context, sessionID string) (*response_models.WizardStateResponse, error)
	Retreat(ctx context.Context, sessionID string) (*response_models.WizardStateResponse, error)
	Abandon(ctx context.Context, sessionID string) error
}

type WizardService struct {
	sessionRepo repositories.SessionRepository
	guard       AccessGuard
}

func NewWizardService(sessionRepo repositories.SessionRepository, guard AccessGuard) WizardServiceInterface {
	return &WizardService{
		sessionRepo: sessionRepo,
		guard:       guard,
	}
}

func (w *WizardService) StartSession(ctx context.Context, userID string) (*response_models.WizardStateResponse, error) {
	if !w.guard.Allow(ctx, userID) {
		return nil, utils.ErrInvalidCredentials
	}

	session := &db_models.WizardSession{
		SchemaVersion: db_models.SessionSchemaVersion,
		CurrentStep:   StepDestination,
		// Single-choice answers are preselected the way the form ships them.
		Pace:               "Moderate",
		Budget:             "Mid-range",
		TransportationMode: "Walking & Public Transit",
		TravelWith:         "Solo",
	}
	if userID != "" {
		if accountID, err := uuid.Parse(userID); err == nil {
			session.AccountID = &accountID
		}
	}

	if err := w.sessionRepo.Insert(ctx, session); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return w.stateResponse(session), nil
}

// Resume rehydrates a persisted snapshot. A snapshot written by an
// incompatible schema version degrades to a fresh session rather than
// erroring: the answers are dropped, the session id survives.
func (w *WizardService) Resume(ctx context.Context, sessionID string) (*response_models.WizardStateResponse, error) {
	session, err := w.sessionRepo.FindById(ctx, sessionID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if session == nil || session.Submitted {
		return nil, utils.ErrSessionNotFound
	}

	if session.SchemaVersion != db_models.SessionSchemaVersion {
		fresh := db_models.WizardSession{
			BaseModel:          session.BaseModel,
			AccountID:          session.AccountID,
			SchemaVersion:      db_models.SessionSchemaVersion,
			CurrentStep:        StepDestination,
			Pace:               "Moderate",
			Budget:             "Mid-range",
			TransportationMode: "Walking & Public Transit",
			TravelWith:         "Solo",
		}
		*session = fresh
		if err := w.sessionRepo.Update(ctx, session); err != nil {
			return nil, utils.ErrDatabaseError
		}
	}

	return w.stateResponse(session), nil
}

// UpdateField merges a partial update into the answer record. It never moves
// the step pointer; a rejected value leaves the whole record untouched.
func (w *WizardService) UpdateField(ctx context.Context, sessionID string, update request_models.FieldUpdate) (*response_models.WizardStateResponse, error) {
	session, err := w.loadOpenSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	record := session.ToAnswerRecord()
	if err := applyFieldUpdate(&record, update); err != nil {
		return nil, err
	}
	session.SetAnswerRecord(record)

	if err := w.sessionRepo.Update(ctx, session); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return w.stateResponse(session), nil
}

// Advance moves to the next step only when the current step's validity
// predicate holds. An invalid advance is silently refused — the returned
// state carries step_valid=false and an unchanged step pointer; there is no
// error channel for "wrong step data".
func (w *WizardService) Advance(ctx context.Context, sessionID string) (*response_models.WizardStateResponse, error) {
	session, err := w.loadOpenSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	record := session.ToAnswerRecord()
	if session.CurrentStep < TotalWizardSteps && stepValid(session.CurrentStep, record) {
		session.CurrentStep++
		if err := w.sessionRepo.Update(ctx, session); err != nil {
			return nil, utils.ErrDatabaseError
		}
	}

	return w.stateResponse(session), nil
}

// Retreat is always allowed, never validated, and clamps at the first step.
func (w *WizardService) Retreat(ctx context.Context, sessionID string) (*response_models.WizardStateResponse, error) {
	session, err := w.loadOpenSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.CurrentStep > StepDestination {
		session.CurrentStep--
		if err := w.sessionRepo.Update(ctx, session); err != nil {
			return nil, utils.ErrDatabaseError
		}
	}

	return w.stateResponse(session), nil
}

func (w *WizardService) Abandon(ctx context.Context, sessionID string) error {
	if err := w.sessionRepo.Delete(ctx, sessionID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (w *WizardService) loadOpenSession(ctx context.Context, sessionID string) (*db_models.WizardSession, error) {
	session, err := w.sessionRepo.FindById(ctx, sessionID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if session == nil || session.Submitted {
		return nil, utils.ErrSessionNotFound
	}
	if session.SchemaVersion != db_models.SessionSchemaVersion {
		return nil, utils.ErrSessionNotFound
	}
	return session, nil
}

func (w *WizardService) stateResponse(session *db_models.WizardSession) *response_models.WizardStateResponse {
	record := session.ToAnswerRecord()
	return &response_models.WizardStateResponse{
		SessionID:    session.ID.String(),
		CurrentStep:  session.CurrentStep,
		TotalSteps:   TotalWizardSteps,
		StepValid:    stepValid(session.CurrentStep, record),
		DurationDays: utils.InclusiveDays(record.StartDate, record.EndDate),
		EndDateMin:   record.StartDate,
		Answers:      record,
	}
}

// stepValid is the per-step validity predicate behind the Next button.
func stepValid(step int, r request_models.AnswerRecord) bool {
	switch step {
	case StepDestination:
		return strings.TrimSpace(r.Destination) != ""
	case StepDates:
		start, okStart := utils.ParseDate(r.StartDate)
		end, okEnd := utils.ParseDate(r.EndDate)
		if !okStart || !okEnd {
			return false
		}
		return !end.Before(start) && !start.Before(utils.Today())
	case StepTripStyle:
		return len(r.TripStyle) > 0
	case StepInterests:
		return len(r.Interests) > 0
	case StepPreferences:
		return r.Pace != "" && r.Budget != "" && r.TransportationMode != ""
	case StepFinal:
		// Must-see attractions are optional free text.
		return true
	case StepSearchMode:
		// Terminal step: the only exit is submission, gated there.
		return false
	default:
		return false
	}
}

// applyFieldUpdate validates each touched field against the option catalog
// before merging; one bad value rejects the whole update.
func applyFieldUpdate(r *request_models.AnswerRecord, u request_models.FieldUpdate) error {
	if u.TripStyle != nil {
		for _, v := range u.TripStyle {
			if !catalog.IsTripStyle(v) {
				return utils.ErrValidation
			}
		}
	}
	if u.Interests != nil {
		for _, v := range u.Interests {
			if !catalog.IsInterest(v) {
				return utils.ErrValidation
			}
		}
	}
	if u.Pace != nil && !catalog.IsPace(*u.Pace) {
		return utils.ErrValidation
	}
	if u.Budget != nil && !catalog.IsBudget(*u.Budget) {
		return utils.ErrValidation
	}
	if u.TransportationMode != nil && !catalog.IsTransportationMode(*u.TransportationMode) {
		return utils.ErrValidation
	}
	if u.TravelWith != nil && !catalog.IsTravelWith(*u.TravelWith) {
		return utils.ErrValidation
	}
	if u.SearchMode != nil && !catalog.IsSearchMode(*u.SearchMode) {
		return utils.ErrValidation
	}
	if u.StartDate != nil {
		if _, ok := utils.ParseDate(*u.StartDate); !ok && *u.StartDate != "" {
			return utils.ErrValidation
		}
	}
	if u.EndDate != nil {
		if _, ok := utils.ParseDate(*u.EndDate); !ok && *u.EndDate != "" {
			return utils.ErrValidation
		}
	}

	if u.Destination != nil {
		r.Destination = *u.Destination
	}
	if u.StartDate != nil {
		r.StartDate = *u.StartDate
	}
	if u.EndDate != nil {
		r.EndDate = *u.EndDate
	}
	if u.TripStyle != nil {
		r.TripStyle = append([]string(nil), u.TripStyle...)
	}
	if u.Interests != nil {
		r.Interests = append([]string(nil), u.Interests...)
	}
	if u.Pace != nil {
		r.Pace = *u.Pace
	}
	if u.Budget != nil {
		r.Budget = *u.Budget
	}
	if u.TransportationMode != nil {
		r.TransportationMode = *u.TransportationMode
	}
	if u.TravelWith != nil {
		r.TravelWith = *u.TravelWith
	}
	if u.MustSeeAttractions != nil {
		r.MustSeeAttractions = *u.MustSeeAttractions
	}
	if u.SearchMode != nil {
		r.SearchMode = *u.SearchMode
	}

	return nil
}
