package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"fastplan/internal/models/db_models"
)

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]db_models.WizardSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]db_models.WizardSession)}
}

func (f *fakeSessionRepo) Insert(_ context.Context, session *db_models.WizardSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	f.sessions[session.ID.String()] = *session
	return nil
}

func (f *fakeSessionRepo) FindById(_ context.Context, id string) (*db_models.WizardSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := s
	return &copied, nil
}

func (f *fakeSessionRepo) Update(_ context.Context, session *db_models.WizardSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[session.ID.String()] = *session
	return nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, id)
	return nil
}

type fakeTripRepo struct {
	mu    sync.Mutex
	trips map[string]db_models.SavedTrip
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{trips: make(map[string]db_models.SavedTrip)}
}

func (f *fakeTripRepo) Insert(_ context.Context, trip *db_models.SavedTrip) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if trip.ID == uuid.Nil {
		trip.ID = uuid.New()
	}
	f.trips[trip.ID.String()] = *trip
	return nil
}

func (f *fakeTripRepo) FindById(_ context.Context, id string) (*db_models.SavedTrip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	trip, ok := f.trips[id]
	if !ok {
		return nil, nil
	}
	copied := trip
	copied.PlanJSON = append([]byte(nil), trip.PlanJSON...)
	copied.RequestJSON = append([]byte(nil), trip.RequestJSON...)
	return &copied, nil
}

func (f *fakeTripRepo) ListByAccountId(_ context.Context, page, pageSize int, accountId string) ([]db_models.SavedTrip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db_models.SavedTrip
	for _, trip := range f.trips {
		if trip.AccountID != nil && trip.AccountID.String() == accountId {
			out = append(out, trip)
		}
	}
	return out, nil
}

func (f *fakeTripRepo) UpdatePlanJSON(_ context.Context, id string, planJSON []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	trip, ok := f.trips[id]
	if !ok {
		return nil
	}
	trip.PlanJSON = append([]byte(nil), planJSON...)
	f.trips[id] = trip
	return nil
}

func (f *fakeTripRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.trips, id)
	return nil
}

type fakeNoteRepo struct {
	mu    sync.Mutex
	notes map[string]db_models.ActivityNote
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: make(map[string]db_models.ActivityNote)}
}

func noteKey(accountId, tripId string, dayIndex, activityIndex int) string {
	return fmt.Sprintf("%s:%s:%d:%d", accountId, tripId, dayIndex, activityIndex)
}

func (f *fakeNoteRepo) Insert(_ context.Context, note *db_models.ActivityNote) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	f.notes[noteKey(note.AccountID.String(), note.TripID.String(), note.DayIndex, note.ActivityIndex)] = *note
	return nil
}

func (f *fakeNoteRepo) Update(_ context.Context, note *db_models.ActivityNote) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notes[noteKey(note.AccountID.String(), note.TripID.String(), note.DayIndex, note.ActivityIndex)] = *note
	return nil
}

func (f *fakeNoteRepo) FindBySlot(_ context.Context, accountId, tripId string, dayIndex, activityIndex int) (*db_models.ActivityNote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	note, ok := f.notes[noteKey(accountId, tripId, dayIndex, activityIndex)]
	if !ok {
		return nil, nil
	}
	copied := note
	return &copied, nil
}

func (f *fakeNoteRepo) ListByTrip(_ context.Context, accountId, tripId string) ([]db_models.ActivityNote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db_models.ActivityNote
	for _, note := range f.notes {
		if note.AccountID.String() == accountId && note.TripID.String() == tripId {
			out = append(out, note)
		}
	}
	return out, nil
}

// fakePlanner counts calls and plays back canned JSON, or fails on demand.
type fakePlanner struct {
	mu               sync.Mutex
	planJSON         string
	replacementJSON  string
	failPlan         error
	failReplacement  error
	planCalls        int
	replacementCalls int
}

func (f *fakePlanner) GeneratePlanJSON(_ context.Context, _ string, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.planCalls++
	if f.failPlan != nil {
		return "", f.failPlan
	}
	return f.planJSON, nil
}

func (f *fakePlanner) SuggestReplacementJSON(_ context.Context, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replacementCalls++
	if f.failReplacement != nil {
		return "", f.failReplacement
	}
	return f.replacementJSON, nil
}

func (f *fakePlanner) GetEmbedding(_ context.Context, _ string) (pgvector.Vector, error) {
	return pgvector.NewVector(make([]float32, 4)), nil
}

func (f *fakePlanner) Close() error { return nil }

type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

func (f *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
}

func (f *fakeCache) Delete(_ context.Context, key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
}
