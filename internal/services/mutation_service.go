package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"fastplan/internal/catalog"
	"fastplan/internal/models/db_models"
	"fastplan/internal/models/request_models"
	"fastplan/internal/models/response_models"
	"fastplan/internal/repositories"
	mem "fastplan/pkg/memcache"
	"fastplan/pkg/utils"
)

const composerTTL = 30 * time.Minute

// addComposerSlot anchors the addition composer inside a day. Replacement
// composers use real activity indices, which are never negative.
const addComposerSlot = -1

type MutationServiceInterface interface {
	OpenComposer(ctx context.Context, tripID string, dayIndex, activityIndex int, text string) error
	CloseComposer(ctx context.Context, tripID string, dayIndex, activityIndex int) error
	SuggestAlternative(ctx context.Context, req request_models.SuggestAlternativeRequest) (*response_models.SuggestAlternativeResponse, error)
	AddActivity(ctx context.Context, req request_models.AddActivityRequest) (*response_models.AddActivityResponse, error)
}

type MutationService struct {
	tripRepo  repositories.TripRepository
	planner   utils.PlannerClientInterface
	composers mem.ComposerStore
	slots     mem.SlotGuard
	locks     mem.TripLocker
	cache     Cache
}

func NewMutationService(
	tripRepo repositories.TripRepository,
	planner utils.PlannerClientInterface,
	composers mem.ComposerStore,
	slots mem.SlotGuard,
	locks mem.TripLocker,
	cache Cache,
) MutationServiceInterface {
	return &MutationService{
		tripRepo:  tripRepo,
		planner:   planner,
		composers: composers,
		slots:     slots,
		locks:     locks,
		cache:     cache,
	}
}

// OpenComposer anchors an inline composer to one itinerary coordinate. The
// typed text lives here, not in the plan document, so a failed suggestion
// cannot lose it.
func (m *MutationService) OpenComposer(ctx context.Context, tripID string, dayIndex, activityIndex int, text string) error {
	plan, _, err := m.loadPlan(ctx, tripID)
	if err != nil {
		return err
	}
	if _, err := plan.ActivityAt(dayIndex, activityIndex); err != nil {
		return err
	}
	m.composers.Open(tripID, dayIndex, activityIndex, text, composerTTL)
	return nil
}

func (m *MutationService) CloseComposer(_ context.Context, tripID string, dayIndex, activityIndex int) error {
	m.composers.Close(tripID, dayIndex, activityIndex)
	return nil
}

// SuggestAlternative asks the assistant for one replacement activity and, on
// a well-formed answer, merges it into the stored plan in a single write.
// Nothing about the plan changes on any failure path.
func (m *MutationService) SuggestAlternative(ctx context.Context, req request_models.SuggestAlternativeRequest) (*response_models.SuggestAlternativeResponse, error) {
	instruction := strings.TrimSpace(req.Message)
	if instruction == "" {
		return nil, utils.ErrInvalidInput
	}
	if req.DayIndex == nil || req.ActivityIndex == nil {
		return nil, utils.ErrInvalidInput
	}
	dayIndex, activityIndex := *req.DayIndex, *req.ActivityIndex

	plan, trip, err := m.loadPlan(ctx, req.TripID)
	if err != nil {
		return nil, err
	}
	current, err := plan.ActivityAt(dayIndex, activityIndex)
	if err != nil {
		return nil, err
	}

	// One pending suggestion per coordinate. The check happens before any
	// model call so a double-click costs nothing.
	slotKey := mem.SlotKey(req.TripID, dayIndex, activityIndex)
	if !m.slots.Acquire(slotKey) {
		return nil, utils.ErrMutationPending
	}
	defer m.slots.Release(slotKey)

	// Keep the typed text alive across the round trip; it is only discarded
	// once the merge lands.
	m.composers.Open(req.TripID, dayIndex, activityIndex, instruction, composerTTL)

	prompt := buildReplacementPrompt(plan, trip.RequestJSON, dayIndex, activityIndex, current, instruction)
	raw, err := m.planner.SuggestReplacementJSON(ctx, prompt)
	if err != nil {
		log.Printf("replacement suggestion: %v", err)
		return nil, utils.ErrMutationFailed
	}

	parsed, err := parseReplacement(raw, current)
	if err != nil {
		log.Printf("replacement parse: %v", err)
		return nil, utils.ErrMutationFailed
	}

	// The merge is a whole-document read-modify-write, so it holds the trip
	// lock: two suggestions for different coordinates of the same trip must
	// not interleave their re-read and write.
	m.locks.Lock(req.TripID)
	defer m.locks.Unlock(req.TripID)

	// Re-read before merging. The plan may have changed while the model was
	// thinking, and the merge must target the current document.
	plan, trip, err = m.loadPlan(ctx, req.TripID)
	if err != nil {
		if err == utils.ErrTripNotFound {
			// The trip vanished mid-flight. Merge-and-discard: drop the
			// result, clean up the composer, report nothing broken.
			m.composers.Close(req.TripID, dayIndex, activityIndex)
			return nil, utils.ErrTripNotFound
		}
		return nil, err
	}

	if err := plan.ReplaceActivity(dayIndex, activityIndex, parsed.activity); err != nil {
		return nil, err
	}
	if err := plan.ApplyCostEstimates(dayIndex, parsed.dayCost, parsed.tripCost); err != nil {
		return nil, err
	}

	planJSON, err := json.Marshal(plan)
	if err != nil {
		return nil, utils.ErrMutationFailed
	}
	if err := m.tripRepo.UpdatePlanJSON(ctx, req.TripID, planJSON); err != nil {
		return nil, utils.ErrDatabaseError
	}

	// The old activity's place lookup no longer describes this coordinate.
	// Invalidation covers hinted queries too, via the per-name key index.
	if current.PlaceNameForLookup != nil {
		invalidatePlaceDetails(ctx, m.cache, *current.PlaceNameForLookup)
	}

	m.composers.Close(req.TripID, dayIndex, activityIndex)

	return &response_models.SuggestAlternativeResponse{
		DayIndex:      dayIndex,
		ActivityIndex: activityIndex,
		Activity:      parsed.activity,
		DayCost:       parsed.dayCost,
		TripCost:      parsed.tripCost,
	}, nil
}

// AddActivity asks the assistant for one or more activities matching the
// instruction and splices them into the day at the requested insertion point,
// again in a single write. A nil InsertAfter inserts at the start of the day.
func (m *MutationService) AddActivity(ctx context.Context, req request_models.AddActivityRequest) (*response_models.AddActivityResponse, error) {
	instruction := strings.TrimSpace(req.Message)
	if instruction == "" {
		return nil, utils.ErrInvalidInput
	}
	if req.DayIndex == nil {
		return nil, utils.ErrInvalidInput
	}
	dayIndex := *req.DayIndex

	plan, trip, err := m.loadPlan(ctx, req.TripID)
	if err != nil {
		return nil, err
	}
	day, err := plan.DayAt(dayIndex)
	if err != nil {
		return nil, err
	}
	position := 0
	if req.InsertAfter != nil {
		if *req.InsertAfter < 0 || *req.InsertAfter >= len(day.Activities) {
			return nil, fmt.Errorf("insert after %d of %d on day %d: %w",
				*req.InsertAfter, len(day.Activities), dayIndex, utils.ErrOutOfRange)
		}
		position = *req.InsertAfter + 1
	}

	// One pending addition per day.
	slotKey := mem.AddSlotKey(req.TripID, dayIndex)
	if !m.slots.Acquire(slotKey) {
		return nil, utils.ErrMutationPending
	}
	defer m.slots.Release(slotKey)

	m.composers.Open(req.TripID, dayIndex, addComposerSlot, instruction, composerTTL)

	prompt := buildAdditionPrompt(plan, trip.RequestJSON, dayIndex, position, instruction)
	raw, err := m.planner.SuggestReplacementJSON(ctx, prompt)
	if err != nil {
		log.Printf("addition suggestion: %v", err)
		return nil, utils.ErrMutationFailed
	}

	parsed, err := parseAddition(raw)
	if err != nil {
		log.Printf("addition parse: %v", err)
		return nil, utils.ErrMutationFailed
	}

	m.locks.Lock(req.TripID)
	defer m.locks.Unlock(req.TripID)

	plan, _, err = m.loadPlan(ctx, req.TripID)
	if err != nil {
		if err == utils.ErrTripNotFound {
			m.composers.Close(req.TripID, dayIndex, addComposerSlot)
			return nil, utils.ErrTripNotFound
		}
		return nil, err
	}
	day, err = plan.DayAt(dayIndex)
	if err != nil {
		return nil, err
	}
	// The day may have shrunk while the model was thinking; keep the insert
	// inside the current bounds rather than failing a finished suggestion.
	if position > len(day.Activities) {
		position = len(day.Activities)
	}

	if err := plan.InsertActivities(dayIndex, position, parsed.activities); err != nil {
		return nil, err
	}
	if err := plan.ApplyCostEstimates(dayIndex, parsed.dayCost, parsed.tripCost); err != nil {
		return nil, err
	}

	planJSON, err := json.Marshal(plan)
	if err != nil {
		return nil, utils.ErrMutationFailed
	}
	if err := m.tripRepo.UpdatePlanJSON(ctx, req.TripID, planJSON); err != nil {
		return nil, utils.ErrDatabaseError
	}

	m.composers.Close(req.TripID, dayIndex, addComposerSlot)

	return &response_models.AddActivityResponse{
		DayIndex:   dayIndex,
		InsertedAt: position,
		Activities: parsed.activities,
		DayCost:    parsed.dayCost,
		TripCost:   parsed.tripCost,
	}, nil
}

func (m *MutationService) loadPlan(ctx context.Context, tripID string) (*response_models.TripPlan, *db_models.SavedTrip, error) {
	trip, err := m.tripRepo.FindById(ctx, tripID)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, nil, utils.ErrTripNotFound
	}
	var plan response_models.TripPlan
	if err := json.Unmarshal(trip.PlanJSON, &plan); err != nil {
		return nil, nil, utils.ErrMutationFailed
	}
	return &plan, trip, nil
}

type replacementResult struct {
	activity response_models.Activity
	dayCost  *response_models.CostEstimate
	tripCost *response_models.TripCost
}

// replacementEnvelope tolerates both shapes the model produces: a single
// object under "activities" or a one-element array.
type replacementEnvelope struct {
	Activities json.RawMessage               `json:"activities"`
	DayCost    *response_models.CostEstimate `json:"day_cost_estimate"`
	TripCost   *response_models.TripCost     `json:"total_cost_estimate"`
}

func parseReplacement(raw string, original *response_models.Activity) (*replacementResult, error) {
	cleaned := utils.CleanJSONResponse(raw)

	var env replacementEnvelope
	if err := json.Unmarshal([]byte(cleaned), &env); err != nil {
		return nil, err
	}
	if len(env.Activities) == 0 {
		return nil, fmt.Errorf("response has no activities field")
	}

	var activity response_models.Activity
	if err := json.Unmarshal(env.Activities, &activity); err != nil {
		var list []response_models.Activity
		if err := json.Unmarshal(env.Activities, &list); err != nil || len(list) == 0 {
			return nil, fmt.Errorf("activities field is neither object nor non-empty array")
		}
		activity = list[0]
	}

	if strings.TrimSpace(activity.Description) == "" {
		return nil, fmt.Errorf("replacement has empty description")
	}
	if activity.Time == "" {
		activity.Time = original.Time
	}
	if activity.Category == "" {
		activity.Category = original.Category
	}
	// Never trust an invented lookup name over an explicit null, but an
	// omitted field is not the model saying "no venue".
	if activity.PlaceNameForLookup != nil && strings.TrimSpace(*activity.PlaceNameForLookup) == "" {
		activity.PlaceNameForLookup = nil
	}
	activity.Icon = catalog.CategoryIcon(activity.Category)

	return &replacementResult{
		activity: activity,
		dayCost:  env.DayCost,
		tripCost: env.TripCost,
	}, nil
}

type additionResult struct {
	activities []response_models.Activity
	dayCost    *response_models.CostEstimate
	tripCost   *response_models.TripCost
}

func parseAddition(raw string) (*additionResult, error) {
	cleaned := utils.CleanJSONResponse(raw)

	var env replacementEnvelope
	if err := json.Unmarshal([]byte(cleaned), &env); err != nil {
		return nil, err
	}
	if len(env.Activities) == 0 {
		return nil, fmt.Errorf("response has no activities field")
	}

	var list []response_models.Activity
	if err := json.Unmarshal(env.Activities, &list); err != nil {
		var single response_models.Activity
		if err := json.Unmarshal(env.Activities, &single); err != nil {
			return nil, fmt.Errorf("activities field is neither array nor object")
		}
		list = []response_models.Activity{single}
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("activities array is empty")
	}

	activities := make([]response_models.Activity, 0, len(list))
	for _, a := range list {
		if strings.TrimSpace(a.Description) == "" {
			return nil, fmt.Errorf("addition has empty description")
		}
		if a.Time == "" {
			a.Time = "12:00"
		}
		if a.PlaceNameForLookup != nil && strings.TrimSpace(*a.PlaceNameForLookup) == "" {
			a.PlaceNameForLookup = nil
		}
		if a.CostEstimate == nil {
			a.CostEstimate = &response_models.CostEstimate{Currency: "USD"}
		}
		a.Icon = catalog.CategoryIcon(a.Category)
		activities = append(activities, a)
	}

	return &additionResult{
		activities: activities,
		dayCost:    env.DayCost,
		tripCost:   env.TripCost,
	}, nil
}

func buildAdditionPrompt(plan *response_models.TripPlan, requestJSON []byte, dayIndex, position int, instruction string) string {
	var sb strings.Builder

	sb.WriteString("You are adding one or more activities to an existing travel itinerary.\n\n")

	day := plan.Days[dayIndex]
	sb.WriteString(fmt.Sprintf("Day %d (%s) currently has:\n", dayIndex+1, day.Title))
	if len(day.Activities) == 0 {
		sb.WriteString("  (no activities yet)\n")
	}
	for i, a := range day.Activities {
		sb.WriteString(fmt.Sprintf("  %d. [%s] %s\n", i+1, a.Time, a.Description))
	}

	switch {
	case len(day.Activities) == 0:
		sb.WriteString("\nThe new activity starts the day.\n")
	case position == 0:
		sb.WriteString(fmt.Sprintf("\nInsert before %q as the first activity of the day.\n",
			day.Activities[0].Description))
	case position == len(day.Activities):
		sb.WriteString(fmt.Sprintf("\nInsert after %q at the end of the day.\n",
			day.Activities[position-1].Description))
	default:
		sb.WriteString(fmt.Sprintf("\nInsert between %q and %q.\n",
			day.Activities[position-1].Description, day.Activities[position].Description))
	}
	sb.WriteString(fmt.Sprintf("User request: %s\n", instruction))

	if len(requestJSON) > 0 {
		sb.WriteString(fmt.Sprintf("\nOriginal trip preferences: %s\n", string(requestJSON)))
	}

	sb.WriteString(`
Respond with a single JSON object, no markdown:
{
  "activities": [
    {
      "time": "15:00",
      "description": "the new activity",
      "place_name_for_lookup": "exact findable place name or null",
      "category": "food|museum|shopping|transport|hotel|attraction|cafe|other",
      "cost_estimate": {"min": 10, "max": 30, "currency": "USD"},
      "ticket_url": "official booking url or null"
    }
  ],
  "day_cost_estimate": {"min": 0, "max": 0, "currency": "USD"},
  "total_cost_estimate": {"min": 0, "max": 0, "currency": "USD"}
}

Rules:
- "activities" is always an array, even for a single suggestion. A short
  sequence of two or three related activities is acceptable when the request
  calls for it.
- Pick times that fit between the surrounding activities at the insertion
  point; start the day at a reasonable hour if it is empty.
- The suggestion must be feasible with the traveler's transportation mode.
- "place_name_for_lookup" must be a real, findable place; use null rather than
  inventing a name.
- All cost estimates are in USD. Recompute the day and trip estimates to
  include the additions.
`)
	return sb.String()
}

func buildReplacementPrompt(plan *response_models.TripPlan, requestJSON []byte, dayIndex, activityIndex int, current *response_models.Activity, instruction string) string {
	var sb strings.Builder

	sb.WriteString("You are revising one activity in an existing travel itinerary.\n\n")

	day := plan.Days[dayIndex]
	sb.WriteString(fmt.Sprintf("Day %d (%s) currently has:\n", dayIndex+1, day.Title))
	for i, a := range day.Activities {
		marker := " "
		if i == activityIndex {
			marker = ">"
		}
		sb.WriteString(fmt.Sprintf("%s %d. [%s] %s\n", marker, i+1, a.Time, a.Description))
	}

	sb.WriteString(fmt.Sprintf("\nReplace activity %d (marked with >): [%s] %s\n",
		activityIndex+1, current.Time, current.Description))
	sb.WriteString(fmt.Sprintf("User request: %s\n", instruction))

	if len(requestJSON) > 0 {
		sb.WriteString(fmt.Sprintf("\nOriginal trip preferences: %s\n", string(requestJSON)))
	}

	sb.WriteString(`
Respond with a single JSON object, no markdown:
{
  "activities": {
    "time": "09:00",
    "description": "the replacement activity",
    "place_name_for_lookup": "exact findable place name or null",
    "category": "food|museum|shopping|transport|hotel|attraction|cafe|other",
    "cost_estimate": {"min": 10, "max": 30, "currency": "USD"},
    "ticket_url": "official booking url or null"
  },
  "day_cost_estimate": {"min": 0, "max": 0, "currency": "USD"},
  "total_cost_estimate": {"min": 0, "max": 0, "currency": "USD"}
}

Rules:
- Suggest exactly one replacement that fits the day's flow and the user request.
- Keep the time slot close to the original unless the request says otherwise.
- "place_name_for_lookup" must be a real, findable place; use null rather than
  inventing a name.
- Recompute the day and trip cost estimates to reflect the replacement.
`)
	return sb.String()
}
