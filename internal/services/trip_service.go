package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"fastplan/internal/models/db_models"
	"fastplan/internal/models/request_models"
	"fastplan/internal/models/response_models"
	"fastplan/internal/repositories"
	"fastplan/pkg/utils"
)

type TripServiceInterface interface {
	GetTrip(ctx context.Context, tripID string) (*response_models.SubmitPlanResponse, error)
	ListTrips(ctx context.Context, accountID string, page, pageSize int) ([]response_models.SavedTripSummary, error)
	DeleteTrip(ctx context.Context, tripID, accountID string) error
	SaveActivityNote(ctx context.Context, accountID string, req request_models.SaveNoteRequest) (*response_models.ActivityNoteResponse, error)
	ListActivityNotes(ctx context.Context, accountID, tripID string) ([]response_models.ActivityNoteResponse, error)
}

type TripService struct {
	tripRepo repositories.TripRepository
	noteRepo repositories.NoteRepository
}

func NewTripService(tripRepo repositories.TripRepository, noteRepo repositories.NoteRepository) TripServiceInterface {
	return &TripService{
		tripRepo: tripRepo,
		noteRepo: noteRepo,
	}
}

func (t *TripService) GetTrip(ctx context.Context, tripID string) (*response_models.SubmitPlanResponse, error) {
	trip, err := t.tripRepo.FindById(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}

	var plan response_models.TripPlan
	if err := json.Unmarshal(trip.PlanJSON, &plan); err != nil {
		return nil, utils.ErrDatabaseError
	}
	var record request_models.AnswerRecord
	if len(trip.RequestJSON) > 0 {
		if err := json.Unmarshal(trip.RequestJSON, &record); err != nil {
			return nil, utils.ErrDatabaseError
		}
	}

	return &response_models.SubmitPlanResponse{
		TripID:          trip.ID.String(),
		Plan:            plan,
		OriginalRequest: record,
	}, nil
}

func (t *TripService) ListTrips(ctx context.Context, accountID string, page, pageSize int) ([]response_models.SavedTripSummary, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 50 {
		pageSize = 10
	}

	trips, err := t.tripRepo.ListByAccountId(ctx, page, pageSize, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	summaries := make([]response_models.SavedTripSummary, 0, len(trips))
	for _, trip := range trips {
		summaries = append(summaries, response_models.SavedTripSummary{
			ID:          trip.ID.String(),
			Destination: trip.Destination,
			StartDate:   trip.StartDate,
			EndDate:     trip.EndDate,
			SearchMode:  trip.SearchMode,
			CreatedAt:   utils.FormatRFC3339(time.Unix(trip.CreatedAt, 0).UTC()),
		})
	}
	return summaries, nil
}

func (t *TripService) DeleteTrip(ctx context.Context, tripID, accountID string) error {
	trip, err := t.tripRepo.FindById(ctx, tripID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if trip == nil {
		return utils.ErrTripNotFound
	}
	// Only the owner may delete. Anonymous trips have no owner and can only
	// expire, not be deleted through the API.
	if trip.AccountID == nil || trip.AccountID.String() != accountID {
		return utils.ErrTripNotFound
	}

	if err := t.tripRepo.Delete(ctx, tripID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// SaveActivityNote upserts the note for one coordinate. Notes hang off owned
// trips only; a nil IsDone in the request leaves the done flag as it was.
func (t *TripService) SaveActivityNote(ctx context.Context, accountID string, req request_models.SaveNoteRequest) (*response_models.ActivityNoteResponse, error) {
	if req.DayIndex == nil || req.ActivityIndex == nil {
		return nil, utils.ErrInvalidInput
	}

	trip, err := t.tripRepo.FindById(ctx, req.TripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil || trip.AccountID == nil || trip.AccountID.String() != accountID {
		return nil, utils.ErrTripNotFound
	}

	note, err := t.noteRepo.FindBySlot(ctx, accountID, req.TripID, *req.DayIndex, *req.ActivityIndex)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	if note == nil {
		accountUUID, err := uuid.Parse(accountID)
		if err != nil {
			return nil, utils.ErrInvalidInput
		}
		note = &db_models.ActivityNote{
			AccountID:     accountUUID,
			TripID:        trip.ID,
			DayIndex:      *req.DayIndex,
			ActivityIndex: *req.ActivityIndex,
			Note:          req.Note,
		}
		if req.IsDone != nil {
			note.IsDone = *req.IsDone
		}
		if err := t.noteRepo.Insert(ctx, note); err != nil {
			return nil, utils.ErrDatabaseError
		}
	} else {
		note.Note = req.Note
		if req.IsDone != nil {
			note.IsDone = *req.IsDone
		}
		if err := t.noteRepo.Update(ctx, note); err != nil {
			return nil, utils.ErrDatabaseError
		}
	}

	resp := toNoteResponse(note)
	return &resp, nil
}

func (t *TripService) ListActivityNotes(ctx context.Context, accountID, tripID string) ([]response_models.ActivityNoteResponse, error) {
	notes, err := t.noteRepo.ListByTrip(ctx, accountID, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.ActivityNoteResponse, 0, len(notes))
	for i := range notes {
		out = append(out, toNoteResponse(&notes[i]))
	}
	return out, nil
}

func toNoteResponse(n *db_models.ActivityNote) response_models.ActivityNoteResponse {
	return response_models.ActivityNoteResponse{
		ID:            n.ID.String(),
		TripID:        n.TripID.String(),
		DayIndex:      n.DayIndex,
		ActivityIndex: n.ActivityIndex,
		Note:          n.Note,
		IsDone:        n.IsDone,
		UpdatedAt:     utils.FormatRFC3339(time.Unix(n.UpdatedAt, 0).UTC()),
	}
}
