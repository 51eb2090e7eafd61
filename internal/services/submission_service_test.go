package services

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"

	"fastplan/internal/models/db_models"
	"fastplan/internal/models/request_models"
	mem "fastplan/pkg/memcache"
	"fastplan/pkg/utils"
)

const cannedPlanJSON = `{
  "summary": "Three cultural days in Paris",
  "days": [
    {
      "title": "Day 1: Classics",
      "activities": [
        {"time": "09:00", "description": "Louvre highlights", "place_name_for_lookup": "Louvre Museum", "category": "museum", "cost_estimate": {"min": 15, "max": 22, "currency": "USD"}},
        {"time": "14:00", "description": "Walk the Tuileries", "place_name_for_lookup": "Tuileries Garden", "category": "attraction"}
      ]
    },
    {
      "title": "Day 2: Left Bank",
      "activities": [
        {"time": "10:00", "description": "Browse Shakespeare and Company", "place_name_for_lookup": "Shakespeare and Company", "category": "shopping"}
      ]
    }
  ],
  "total_cost_estimate": {"min": 120, "max": 260, "currency": "USD"}
}`

func completeSession(t *testing.T, repo *fakeSessionRepo) *db_models.WizardSession {
	t.Helper()
	session := &db_models.WizardSession{
		SchemaVersion:      db_models.SessionSchemaVersion,
		CurrentStep:        StepSearchMode,
		Destination:        "Paris, France",
		StartDate:          futureDate(10),
		EndDate:            futureDate(12),
		TripStyle:          pq.StringArray{"Cultural"},
		Interests:          pq.StringArray{"Art & Culture", "Food & Cuisine"},
		Pace:               "Moderate",
		Budget:             "Mid-range",
		TransportationMode: "Walking & Public Transit",
		TravelWith:         "Partner",
		SearchMode:         "normal",
	}
	if err := repo.Insert(context.Background(), session); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	return session
}

func completeRecord() request_models.AnswerRecord {
	return request_models.AnswerRecord{
		Destination:        "Paris, France",
		StartDate:          "2026-10-01",
		EndDate:            "2026-10-03",
		TripStyle:          []string{"Cultural"},
		Interests:          []string{"Art & Culture", "Food & Cuisine"},
		Pace:               "Moderate",
		Budget:             "Mid-range",
		TransportationMode: "Walking & Public Transit",
		TravelWith:         "Partner",
		SearchMode:         "normal",
	}
}

func newTestSubmission(planner *fakePlanner) (SubmissionServiceInterface, *fakeSessionRepo, *fakeTripRepo, *fakeCache) {
	sessionRepo := newFakeSessionRepo()
	tripRepo := newFakeTripRepo()
	cache := newFakeCache()
	svc := NewSubmissionService(sessionRepo, tripRepo, planner, cache, mem.NewSlots())
	return svc, sessionRepo, tripRepo, cache
}

func TestSubmit_FullPipeline(t *testing.T) {
	planner := &fakePlanner{planJSON: cannedPlanJSON}
	svc, sessionRepo, tripRepo, _ := newTestSubmission(planner)
	session := completeSession(t, sessionRepo)
	ctx := context.Background()

	result, err := svc.Submit(ctx, session.ID.String())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if result.TripID == "" {
		t.Fatal("empty trip id")
	}
	if result.Plan.Summary != "Three cultural days in Paris" {
		t.Fatalf("unexpected summary %q", result.Plan.Summary)
	}
	if len(result.Plan.Days) != 2 {
		t.Fatalf("got %d days, want 2", len(result.Plan.Days))
	}
	if result.OriginalRequest.Destination != "Paris, France" {
		t.Fatalf("original request lost the destination: %q", result.OriginalRequest.Destination)
	}
	if result.Plan.Days[0].Activities[0].Icon == "" {
		t.Fatal("activities not decorated with category icons")
	}

	saved, err := tripRepo.FindById(ctx, result.TripID)
	if err != nil || saved == nil {
		t.Fatalf("trip not persisted: %v", err)
	}
	if saved.SearchMode != "normal" {
		t.Fatalf("saved trip search mode %q", saved.SearchMode)
	}

	// The session is spent; resubmitting must not find it.
	if _, err := svc.Submit(ctx, session.ID.String()); !errors.Is(err, utils.ErrSessionNotFound) {
		t.Fatalf("resubmit got %v, want ErrSessionNotFound", err)
	}
}

func TestSubmit_IncompleteAnswers(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *db_models.WizardSession)
	}{
		{"no destination", func(s *db_models.WizardSession) { s.Destination = "" }},
		{"no dates", func(s *db_models.WizardSession) { s.StartDate, s.EndDate = "", "" }},
		{"inverted dates", func(s *db_models.WizardSession) { s.StartDate, s.EndDate = futureDate(12), futureDate(10) }},
		{"no interests", func(s *db_models.WizardSession) { s.Interests = nil }},
		{"no search mode", func(s *db_models.WizardSession) { s.SearchMode = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			planner := &fakePlanner{planJSON: cannedPlanJSON}
			svc, sessionRepo, _, _ := newTestSubmission(planner)
			session := completeSession(t, sessionRepo)
			ctx := context.Background()

			tt.mutate(session)
			if err := sessionRepo.Update(ctx, session); err != nil {
				t.Fatalf("Update: %v", err)
			}

			if _, err := svc.Submit(ctx, session.ID.String()); !errors.Is(err, utils.ErrIncompleteAnswers) {
				t.Fatalf("got %v, want ErrIncompleteAnswers", err)
			}
			if planner.planCalls != 0 {
				t.Fatalf("planner called %d times for incomplete answers", planner.planCalls)
			}
		})
	}
}

func TestSubmit_FailureKeepsSessionForRetry(t *testing.T) {
	planner := &fakePlanner{planJSON: cannedPlanJSON, failPlan: errors.New("model unavailable")}
	svc, sessionRepo, _, _ := newTestSubmission(planner)
	session := completeSession(t, sessionRepo)
	ctx := context.Background()

	if _, err := svc.Submit(ctx, session.ID.String()); !errors.Is(err, utils.ErrSubmissionFailed) {
		t.Fatalf("got %v, want ErrSubmissionFailed", err)
	}

	// All answers survive the failure, so the retry succeeds unchanged.
	planner.mu.Lock()
	planner.failPlan = nil
	planner.mu.Unlock()

	result, err := svc.Submit(ctx, session.ID.String())
	if err != nil {
		t.Fatalf("retry Submit: %v", err)
	}
	if result.OriginalRequest.Destination != "Paris, France" {
		t.Fatalf("retry lost answers: %q", result.OriginalRequest.Destination)
	}
}

func TestSubmit_MalformedModelOutput(t *testing.T) {
	planner := &fakePlanner{planJSON: `{"summary": "no days here", "days": []}`}
	svc, sessionRepo, _, _ := newTestSubmission(planner)
	session := completeSession(t, sessionRepo)

	if _, err := svc.Submit(context.Background(), session.ID.String()); !errors.Is(err, utils.ErrUnexpectedAI) {
		t.Fatalf("got %v, want ErrUnexpectedAI", err)
	}
}

func TestSubmit_CacheSharedAcrossSessions(t *testing.T) {
	planner := &fakePlanner{planJSON: cannedPlanJSON}
	svc, sessionRepo, _, _ := newTestSubmission(planner)
	ctx := context.Background()

	first := completeSession(t, sessionRepo)
	if _, err := svc.Submit(ctx, first.ID.String()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// Identical answers in a second session must reuse the cached plan.
	second := completeSession(t, sessionRepo)
	if _, err := svc.Submit(ctx, second.ID.String()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if planner.planCalls != 1 {
		t.Fatalf("planner called %d times, want 1 (cache hit)", planner.planCalls)
	}
}

func TestPlanCacheKey_NormalizesAnswers(t *testing.T) {
	base := completeRecord()
	reordered := completeRecord()
	reordered.Interests = []string{"Food & Cuisine", "Art & Culture"}
	reordered.Destination = "  paris, france "

	if planCacheKey(base) != planCacheKey(reordered) {
		t.Fatal("normalized answers produced different cache keys")
	}

	other := completeRecord()
	other.Budget = "Luxury"
	if planCacheKey(base) == planCacheKey(other) {
		t.Fatal("different budgets share a cache key")
	}
}
