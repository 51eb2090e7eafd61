package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"fastplan/internal/models/db_models"
	"fastplan/internal/models/request_models"
	"fastplan/internal/models/response_models"
	mem "fastplan/pkg/memcache"
	"fastplan/pkg/utils"
)

const cannedReplacementJSON = `{
  "activities": {
    "time": "09:30",
    "description": "Musée d'Orsay instead of the Louvre",
    "place_name_for_lookup": "Musée d'Orsay",
    "category": "museum",
    "cost_estimate": {"min": 14, "max": 18, "currency": "USD"}
  },
  "day_cost_estimate": {"min": 40, "max": 70, "currency": "USD"},
  "total_cost_estimate": {"min": 130, "max": 270, "currency": "USD"}
}`

type mutationFixture struct {
	svc       MutationServiceInterface
	tripRepo  *fakeTripRepo
	composers mem.ComposerStore
	slots     mem.SlotGuard
	cache     *fakeCache
	tripID    string
}

func newMutationFixture(t *testing.T, planner utils.PlannerClientInterface) *mutationFixture {
	t.Helper()

	tripRepo := newFakeTripRepo()
	composers := mem.NewComposers()
	slots := mem.NewSlots()
	cache := newFakeCache()
	svc := NewMutationService(tripRepo, planner, composers, slots, mem.NewTripLocks(), cache)

	trip := &db_models.SavedTrip{
		Destination: "Paris, France",
		PlanJSON:    []byte(cannedPlanJSON),
	}
	if err := tripRepo.Insert(context.Background(), trip); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	return &mutationFixture{
		svc:       svc,
		tripRepo:  tripRepo,
		composers: composers,
		slots:     slots,
		cache:     cache,
		tripID:    trip.ID.String(),
	}
}

func intPtr(i int) *int { return &i }

func suggestReq(tripID string, day, activity int, message string) request_models.SuggestAlternativeRequest {
	return request_models.SuggestAlternativeRequest{
		TripID:        tripID,
		DayIndex:      intPtr(day),
		ActivityIndex: intPtr(activity),
		Message:       message,
	}
}

func TestSuggestAlternative_MergesExactlyOneSlot(t *testing.T) {
	fx := newMutationFixture(t, &fakePlanner{replacementJSON: cannedReplacementJSON})
	ctx := context.Background()

	result, err := fx.svc.SuggestAlternative(ctx, suggestReq(fx.tripID, 0, 0, "something less crowded"))
	if err != nil {
		t.Fatalf("SuggestAlternative: %v", err)
	}
	if result.Activity.Description != "Musée d'Orsay instead of the Louvre" {
		t.Fatalf("unexpected replacement %q", result.Activity.Description)
	}
	if result.Activity.Icon != "🏛️" {
		t.Fatalf("replacement not decorated, icon %q", result.Activity.Icon)
	}

	trip, err := fx.tripRepo.FindById(ctx, fx.tripID)
	if err != nil || trip == nil {
		t.Fatalf("trip lookup: %v", err)
	}
	var plan response_models.TripPlan
	if err := json.Unmarshal(trip.PlanJSON, &plan); err != nil {
		t.Fatalf("unmarshal persisted plan: %v", err)
	}

	if plan.Days[0].Activities[0].Description != "Musée d'Orsay instead of the Louvre" {
		t.Fatalf("slot (0,0) not replaced: %q", plan.Days[0].Activities[0].Description)
	}
	if plan.Days[0].Activities[1].Description != "Walk the Tuileries" {
		t.Fatalf("sibling activity touched: %q", plan.Days[0].Activities[1].Description)
	}
	if plan.Days[1].Activities[0].Description != "Browse Shakespeare and Company" {
		t.Fatalf("other day touched: %q", plan.Days[1].Activities[0].Description)
	}
	if plan.Days[0].DayCostEstimate == nil || plan.Days[0].DayCostEstimate.Min != 40 {
		t.Fatalf("day cost aggregate not applied: %+v", plan.Days[0].DayCostEstimate)
	}
	if plan.TotalCostEstimate == nil || plan.TotalCostEstimate.Max != 270 {
		t.Fatalf("trip cost aggregate not applied: %+v", plan.TotalCostEstimate)
	}

	if _, open := fx.composers.Get(fx.tripID, 0, 0); open {
		t.Fatal("composer still open after a successful merge")
	}
}

func TestSuggestAlternative_PendingSlotRejectedBeforeModelCall(t *testing.T) {
	planner := &fakePlanner{replacementJSON: cannedReplacementJSON}
	fx := newMutationFixture(t, planner)

	if !fx.slots.Acquire(mem.SlotKey(fx.tripID, 0, 0)) {
		t.Fatal("could not prime the slot")
	}
	defer fx.slots.Release(mem.SlotKey(fx.tripID, 0, 0))

	_, err := fx.svc.SuggestAlternative(context.Background(), suggestReq(fx.tripID, 0, 0, "swap it"))
	if !errors.Is(err, utils.ErrMutationPending) {
		t.Fatalf("got %v, want ErrMutationPending", err)
	}
	if planner.replacementCalls != 0 {
		t.Fatalf("planner called %d times for a held slot", planner.replacementCalls)
	}
}

func TestSuggestAlternative_IndependentSlotsProceed(t *testing.T) {
	fx := newMutationFixture(t, &fakePlanner{replacementJSON: cannedReplacementJSON})
	ctx := context.Background()

	// A held slot on one coordinate must not block a different coordinate.
	if !fx.slots.Acquire(mem.SlotKey(fx.tripID, 0, 0)) {
		t.Fatal("could not prime the slot")
	}
	defer fx.slots.Release(mem.SlotKey(fx.tripID, 0, 0))

	if _, err := fx.svc.SuggestAlternative(ctx, suggestReq(fx.tripID, 1, 0, "a quieter bookshop")); err != nil {
		t.Fatalf("independent coordinate blocked: %v", err)
	}
}

func TestSuggestAlternative_OutOfRange(t *testing.T) {
	fx := newMutationFixture(t, &fakePlanner{replacementJSON: cannedReplacementJSON})

	tests := []struct {
		name     string
		day, act int
	}{
		{"day past end", 5, 0},
		{"negative day", -1, 0},
		{"activity past end", 0, 9},
		{"negative activity", 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.svc.SuggestAlternative(context.Background(), suggestReq(fx.tripID, tt.day, tt.act, "swap"))
			if !errors.Is(err, utils.ErrOutOfRange) {
				t.Fatalf("got %v, want ErrOutOfRange", err)
			}
		})
	}
}

func TestSuggestAlternative_FailureLeavesDocumentAndComposer(t *testing.T) {
	planner := &fakePlanner{failReplacement: errors.New("model unavailable")}
	fx := newMutationFixture(t, planner)
	ctx := context.Background()

	before, _ := fx.tripRepo.FindById(ctx, fx.tripID)

	_, err := fx.svc.SuggestAlternative(ctx, suggestReq(fx.tripID, 0, 0, "try a gallery"))
	if !errors.Is(err, utils.ErrMutationFailed) {
		t.Fatalf("got %v, want ErrMutationFailed", err)
	}

	after, _ := fx.tripRepo.FindById(ctx, fx.tripID)
	if !bytes.Equal(before.PlanJSON, after.PlanJSON) {
		t.Fatal("failed suggestion modified the stored plan")
	}

	// The typed instruction survives so the user can edit and retry.
	text, open := fx.composers.Get(fx.tripID, 0, 0)
	if !open || text != "try a gallery" {
		t.Fatalf("composer text lost on failure: %q (open=%v)", text, open)
	}

	// And the slot is free again for the retry.
	if !fx.slots.Acquire(mem.SlotKey(fx.tripID, 0, 0)) {
		t.Fatal("slot still held after failure")
	}
	fx.slots.Release(mem.SlotKey(fx.tripID, 0, 0))
}

func TestSuggestAlternative_BlankInstruction(t *testing.T) {
	planner := &fakePlanner{replacementJSON: cannedReplacementJSON}
	fx := newMutationFixture(t, planner)

	_, err := fx.svc.SuggestAlternative(context.Background(), suggestReq(fx.tripID, 0, 0, "   "))
	if !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
	if planner.replacementCalls != 0 {
		t.Fatal("planner called for a blank instruction")
	}
}

func TestOpenComposer(t *testing.T) {
	fx := newMutationFixture(t, &fakePlanner{})
	ctx := context.Background()

	if err := fx.svc.OpenComposer(ctx, fx.tripID, 0, 1, "draft text"); err != nil {
		t.Fatalf("OpenComposer: %v", err)
	}
	text, open := fx.composers.Get(fx.tripID, 0, 1)
	if !open || text != "draft text" {
		t.Fatalf("composer not anchored: (%q, %v)", text, open)
	}

	if err := fx.svc.OpenComposer(ctx, fx.tripID, 7, 0, "x"); !errors.Is(err, utils.ErrOutOfRange) {
		t.Fatalf("got %v, want ErrOutOfRange for a bad coordinate", err)
	}

	if err := fx.svc.CloseComposer(ctx, fx.tripID, 0, 1); err != nil {
		t.Fatalf("CloseComposer: %v", err)
	}
	if _, open := fx.composers.Get(fx.tripID, 0, 1); open {
		t.Fatal("composer still open after close")
	}
}

func persistedPlan(t *testing.T, fx *mutationFixture) *response_models.TripPlan {
	t.Helper()
	trip, err := fx.tripRepo.FindById(context.Background(), fx.tripID)
	if err != nil || trip == nil {
		t.Fatalf("trip lookup: %v", err)
	}
	var plan response_models.TripPlan
	if err := json.Unmarshal(trip.PlanJSON, &plan); err != nil {
		t.Fatalf("unmarshal persisted plan: %v", err)
	}
	return &plan
}

// gatedPlanner holds every suggestion call at a barrier until the expected
// number of callers is in flight, then answers by matching the prompt. It
// forces concurrent requests to finish their model round trips before any of
// them gets to merge.
type gatedPlanner struct {
	fakePlanner
	barrier   *sync.WaitGroup
	responses map[string]string
}

func (g *gatedPlanner) SuggestReplacementJSON(_ context.Context, prompt string) (string, error) {
	g.barrier.Done()
	g.barrier.Wait()
	for needle, resp := range g.responses {
		if strings.Contains(prompt, needle) {
			return resp, nil
		}
	}
	return "", errors.New("no canned response matches the prompt")
}

func TestSuggestAlternative_ConcurrentDifferentSlotsBothMerge(t *testing.T) {
	var barrier sync.WaitGroup
	barrier.Add(2)
	planner := &gatedPlanner{
		barrier: &barrier,
		responses: map[string]string{
			"Louvre highlights":              `{"activities": {"time": "09:30", "description": "Musée d'Orsay morning", "category": "museum"}}`,
			"Browse Shakespeare and Company": `{"activities": {"time": "10:00", "description": "Abbey Bookshop crawl", "category": "shopping"}}`,
		},
	}
	fx := newMutationFixture(t, planner)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = fx.svc.SuggestAlternative(ctx, suggestReq(fx.tripID, 0, 0, "something quieter"))
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = fx.svc.SuggestAlternative(ctx, suggestReq(fx.tripID, 1, 0, "a different bookshop"))
	}()
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
	}

	plan := persistedPlan(t, fx)
	if got := plan.Days[0].Activities[0].Description; got != "Musée d'Orsay morning" {
		t.Fatalf("merge on (0,0) lost, slot holds %q", got)
	}
	if got := plan.Days[1].Activities[0].Description; got != "Abbey Bookshop crawl" {
		t.Fatalf("merge on (1,0) lost, slot holds %q", got)
	}
}

func TestSuggestAlternative_InvalidatesHintedPlaceCache(t *testing.T) {
	fx := newMutationFixture(t, &fakePlanner{replacementJSON: cannedReplacementJSON})
	ctx := context.Background()

	// Seed the cache the way a lookup would: one bare entry, one hinted, both
	// registered under the place name's key index.
	bare := placeCacheKey("Louvre Museum")
	hinted := placeCacheKey("Louvre Museum Paris, France")
	fx.cache.Set(ctx, bare, `{"name":"Louvre Museum"}`, time.Hour)
	fx.cache.Set(ctx, hinted, `{"name":"Louvre Museum"}`, time.Hour)
	registerPlaceCacheKey(ctx, fx.cache, "Louvre Museum", bare)
	registerPlaceCacheKey(ctx, fx.cache, "Louvre Museum", hinted)

	if _, err := fx.svc.SuggestAlternative(ctx, suggestReq(fx.tripID, 0, 0, "something quieter")); err != nil {
		t.Fatalf("SuggestAlternative: %v", err)
	}

	if _, ok := fx.cache.Get(ctx, bare); ok {
		t.Fatal("bare place-details entry survived the replacement")
	}
	if _, ok := fx.cache.Get(ctx, hinted); ok {
		t.Fatal("hinted place-details entry survived the replacement")
	}
	if _, ok := fx.cache.Get(ctx, placeIndexKey("Louvre Museum")); ok {
		t.Fatal("key index survived the replacement")
	}
}

const cannedAdditionJSON = `{
  "activities": [
    {"time": "12:30", "description": "Lunch at Café Marly", "place_name_for_lookup": "Café Marly", "category": "food", "cost_estimate": {"min": 25, "max": 45, "currency": "USD"}}
  ],
  "day_cost_estimate": {"min": 60, "max": 100, "currency": "USD"}
}`

func addReq(tripID string, day int, after *int, message string) request_models.AddActivityRequest {
	return request_models.AddActivityRequest{
		TripID:      tripID,
		DayIndex:    intPtr(day),
		InsertAfter: after,
		Message:     message,
	}
}

func TestAddActivity_InsertsAfterAnchor(t *testing.T) {
	fx := newMutationFixture(t, &fakePlanner{replacementJSON: cannedAdditionJSON})
	ctx := context.Background()

	result, err := fx.svc.AddActivity(ctx, addReq(fx.tripID, 0, intPtr(0), "add a lunch stop"))
	if err != nil {
		t.Fatalf("AddActivity: %v", err)
	}
	if result.InsertedAt != 1 {
		t.Fatalf("inserted at %d, want 1", result.InsertedAt)
	}
	if len(result.Activities) != 1 || result.Activities[0].Icon != "🍽️" {
		t.Fatalf("addition not decorated: %+v", result.Activities)
	}

	plan := persistedPlan(t, fx)
	day := plan.Days[0]
	if len(day.Activities) != 3 {
		t.Fatalf("day has %d activities, want 3", len(day.Activities))
	}
	if day.Activities[0].Description != "Louvre highlights" ||
		day.Activities[1].Description != "Lunch at Café Marly" ||
		day.Activities[2].Description != "Walk the Tuileries" {
		t.Fatalf("unexpected day ordering: %+v", day.Activities)
	}
	if day.DayCostEstimate == nil || day.DayCostEstimate.Min != 60 {
		t.Fatalf("day cost aggregate not applied: %+v", day.DayCostEstimate)
	}
	if plan.Days[1].Activities[0].Description != "Browse Shakespeare and Company" {
		t.Fatalf("other day touched: %q", plan.Days[1].Activities[0].Description)
	}
}

func TestAddActivity_DefaultsToStartOfDay(t *testing.T) {
	fx := newMutationFixture(t, &fakePlanner{replacementJSON: cannedAdditionJSON})

	result, err := fx.svc.AddActivity(context.Background(), addReq(fx.tripID, 0, nil, "start with brunch"))
	if err != nil {
		t.Fatalf("AddActivity: %v", err)
	}
	if result.InsertedAt != 0 {
		t.Fatalf("inserted at %d, want 0", result.InsertedAt)
	}

	plan := persistedPlan(t, fx)
	if plan.Days[0].Activities[0].Description != "Lunch at Café Marly" {
		t.Fatalf("addition not at the start of the day: %q", plan.Days[0].Activities[0].Description)
	}
}

func TestAddActivity_PendingDayRejectedBeforeModelCall(t *testing.T) {
	planner := &fakePlanner{replacementJSON: cannedAdditionJSON}
	fx := newMutationFixture(t, planner)

	if !fx.slots.Acquire(mem.AddSlotKey(fx.tripID, 0)) {
		t.Fatal("could not prime the slot")
	}
	defer fx.slots.Release(mem.AddSlotKey(fx.tripID, 0))

	_, err := fx.svc.AddActivity(context.Background(), addReq(fx.tripID, 0, nil, "add lunch"))
	if !errors.Is(err, utils.ErrMutationPending) {
		t.Fatalf("got %v, want ErrMutationPending", err)
	}
	if planner.replacementCalls != 0 {
		t.Fatalf("planner called %d times for a held slot", planner.replacementCalls)
	}

	// A replacement on the same day is a different slot and still proceeds.
	planner.replacementJSON = cannedReplacementJSON
	if _, err := fx.svc.SuggestAlternative(context.Background(), suggestReq(fx.tripID, 0, 0, "swap it")); err != nil {
		t.Fatalf("replacement blocked by an addition slot: %v", err)
	}
}

func TestAddActivity_InsertAfterOutOfRange(t *testing.T) {
	planner := &fakePlanner{replacementJSON: cannedAdditionJSON}
	fx := newMutationFixture(t, planner)

	_, err := fx.svc.AddActivity(context.Background(), addReq(fx.tripID, 0, intPtr(5), "add lunch"))
	if !errors.Is(err, utils.ErrOutOfRange) {
		t.Fatalf("got %v, want ErrOutOfRange", err)
	}
	if planner.replacementCalls != 0 {
		t.Fatal("planner called for a bad insertion point")
	}
}

func TestParseAddition(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
		check   func(t *testing.T, r *additionResult)
	}{
		{
			name: "array of two",
			raw:  `{"activities": [{"time": "15:00", "description": "Coffee at The Cozy Cafe", "category": "cafe"}, {"time": "16:00", "description": "Browse the Old Town Bookstore"}]}`,
			check: func(t *testing.T, r *additionResult) {
				if len(r.activities) != 2 {
					t.Fatalf("got %d activities, want 2", len(r.activities))
				}
				if r.activities[0].Icon != "☕" {
					t.Fatalf("icon %q", r.activities[0].Icon)
				}
			},
		},
		{
			name: "single object tolerated",
			raw:  `{"activities": {"time": "15:00", "description": "Picnic by the Seine"}}`,
			check: func(t *testing.T, r *additionResult) {
				if len(r.activities) != 1 || r.activities[0].Description != "Picnic by the Seine" {
					t.Fatalf("activities %+v", r.activities)
				}
			},
		},
		{
			name: "missing time and cost get defaults",
			raw:  `{"activities": [{"description": "Wander the flea market"}]}`,
			check: func(t *testing.T, r *additionResult) {
				if r.activities[0].Time != "12:00" {
					t.Fatalf("time %q, want 12:00", r.activities[0].Time)
				}
				if r.activities[0].CostEstimate == nil || r.activities[0].CostEstimate.Currency != "USD" {
					t.Fatalf("cost estimate %+v", r.activities[0].CostEstimate)
				}
			},
		},
		{
			name:    "empty description rejects the batch",
			raw:     `{"activities": [{"description": "Lunch"}, {"description": "  "}]}`,
			wantErr: true,
		},
		{
			name:    "empty array",
			raw:     `{"activities": []}`,
			wantErr: true,
		},
		{
			name:    "no activities field",
			raw:     `{"suggestion": "go elsewhere"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseAddition(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAddition: %v", err)
			}
			tt.check(t, result)
		})
	}
}

func TestParseReplacement(t *testing.T) {
	original := &response_models.Activity{Time: "09:00", Category: "museum"}

	tests := []struct {
		name    string
		raw     string
		wantErr bool
		check   func(t *testing.T, r *replacementResult)
	}{
		{
			name: "single object",
			raw:  cannedReplacementJSON,
			check: func(t *testing.T, r *replacementResult) {
				if r.activity.Time != "09:30" {
					t.Fatalf("time %q", r.activity.Time)
				}
			},
		},
		{
			name: "one element array",
			raw:  `{"activities": [{"time": "10:00", "description": "Picnic by the Seine"}]}`,
			check: func(t *testing.T, r *replacementResult) {
				if r.activity.Description != "Picnic by the Seine" {
					t.Fatalf("description %q", r.activity.Description)
				}
			},
		},
		{
			name: "missing time inherits original",
			raw:  `{"activities": {"description": "Café stop"}}`,
			check: func(t *testing.T, r *replacementResult) {
				if r.activity.Time != "09:00" {
					t.Fatalf("time %q, want inherited 09:00", r.activity.Time)
				}
				if r.activity.Category != "museum" {
					t.Fatalf("category %q, want inherited museum", r.activity.Category)
				}
			},
		},
		{
			name: "fenced markdown payload",
			raw:  "```json\n" + `{"activities": {"description": "Covered market crawl"}}` + "\n```",
			check: func(t *testing.T, r *replacementResult) {
				if r.activity.Description != "Covered market crawl" {
					t.Fatalf("description %q", r.activity.Description)
				}
			},
		},
		{
			name:    "empty description",
			raw:     `{"activities": {"time": "10:00", "description": "  "}}`,
			wantErr: true,
		},
		{
			name:    "no activities field",
			raw:     `{"suggestion": "go elsewhere"}`,
			wantErr: true,
		},
		{
			name:    "empty array",
			raw:     `{"activities": []}`,
			wantErr: true,
		},
		{
			name:    "not json",
			raw:     "sorry, I cannot help with that",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseReplacement(tt.raw, original)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseReplacement: %v", err)
			}
			tt.check(t, result)
		})
	}
}
