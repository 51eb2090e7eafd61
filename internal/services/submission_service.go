package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"sort"
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

// Generated plans are cached for three days; two users asking for the same
// trip within that window share one model call.
const planCacheTTL = 72 * time.Hour

type SubmissionServiceInterface interface {
	Submit(ctx context.Context, sessionID string) (*response_models.SubmitPlanResponse, error)
}

type SubmissionService struct {
	sessionRepo repositories.SessionRepository
	tripRepo    repositories.TripRepository
	planner     utils.PlannerClientInterface
	cache       Cache
	inflight    mem.SlotGuard
}

func NewSubmissionService(
	sessionRepo repositories.SessionRepository,
	tripRepo repositories.TripRepository,
	planner utils.PlannerClientInterface,
	cache Cache,
	inflight mem.SlotGuard,
) SubmissionServiceInterface {
	return &SubmissionService{
		sessionRepo: sessionRepo,
		tripRepo:    tripRepo,
		planner:     planner,
		cache:       cache,
		inflight:    inflight,
	}
}

// Submit runs the full generation pipeline for a finished wizard session:
// re-validate the accumulated answers, generate or fetch a cached plan,
// persist the trip, and only then retire the session. A failed submission
// leaves the session and its answers intact for retry.
func (s *SubmissionService) Submit(ctx context.Context, sessionID string) (*response_models.SubmitPlanResponse, error) {
	session, err := s.sessionRepo.FindById(ctx, sessionID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if session == nil || session.Submitted {
		return nil, utils.ErrSessionNotFound
	}

	record := session.ToAnswerRecord()
	if err := validateSubmission(record); err != nil {
		return nil, err
	}

	// One generation per session at a time; a second submit while the first
	// is still talking to the model is rejected, not queued.
	key := "submit:" + sessionID
	if !s.inflight.Acquire(key) {
		return nil, utils.ErrSubmissionPending
	}
	defer s.inflight.Release(key)

	plan, err := s.generatePlan(ctx, record)
	if err != nil {
		return nil, err
	}

	planJSON, err := json.Marshal(plan)
	if err != nil {
		return nil, utils.ErrSubmissionFailed
	}
	requestJSON, err := json.Marshal(record)
	if err != nil {
		return nil, utils.ErrSubmissionFailed
	}

	trip := &db_models.SavedTrip{
		AccountID:   session.AccountID,
		Destination: record.Destination,
		StartDate:   record.StartDate,
		EndDate:     record.EndDate,
		SearchMode:  record.SearchMode,
		PlanJSON:    planJSON,
		RequestJSON: requestJSON,
	}
	if err := s.tripRepo.Insert(ctx, trip); err != nil {
		return nil, utils.ErrDatabaseError
	}

	// The session is spent. From here on resuming it is a not-found, and the
	// next wizard run starts from scratch.
	session.Submitted = true
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		log.Printf("retire session %s: %v", sessionID, err)
	}

	return &response_models.SubmitPlanResponse{
		TripID:          trip.ID.String(),
		Plan:            *plan,
		OriginalRequest: record,
	}, nil
}

func (s *SubmissionService) generatePlan(ctx context.Context, record request_models.AnswerRecord) (*response_models.TripPlan, error) {
	cacheKey := planCacheKey(record)
	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		var plan response_models.TripPlan
		if err := json.Unmarshal([]byte(cached), &plan); err == nil && planUsable(&plan) {
			return &plan, nil
		}
		s.cache.Delete(ctx, cacheKey)
	}

	raw, err := s.planner.GeneratePlanJSON(ctx, buildTripPrompt(record), record.SearchMode)
	if err != nil {
		log.Printf("plan generation: %v", err)
		return nil, utils.ErrSubmissionFailed
	}

	var plan response_models.TripPlan
	if err := json.Unmarshal([]byte(utils.CleanJSONResponse(raw)), &plan); err != nil {
		log.Printf("plan parse: %v", err)
		return nil, utils.ErrUnexpectedAI
	}
	if !planUsable(&plan) {
		return nil, utils.ErrUnexpectedAI
	}
	decorateIcons(&plan)

	if encoded, err := json.Marshal(&plan); err == nil {
		s.cache.Set(ctx, cacheKey, string(encoded), planCacheTTL)
	}
	return &plan, nil
}

// validateSubmission is the structural gate in front of generation. The
// wizard's per-step gates should have caught all of this already, but the
// session store is writable by any holder of the session id.
func validateSubmission(r request_models.AnswerRecord) error {
	if strings.TrimSpace(r.Destination) == "" {
		return utils.ErrIncompleteAnswers
	}
	start, okStart := utils.ParseDate(r.StartDate)
	end, okEnd := utils.ParseDate(r.EndDate)
	if !okStart || !okEnd || end.Before(start) {
		return utils.ErrIncompleteAnswers
	}
	if len(r.TripStyle) == 0 || len(r.Interests) == 0 {
		return utils.ErrIncompleteAnswers
	}
	if r.Pace == "" || r.Budget == "" || r.TransportationMode == "" {
		return utils.ErrIncompleteAnswers
	}
	if r.SearchMode == "" {
		return utils.ErrIncompleteAnswers
	}
	return nil
}

func planUsable(p *response_models.TripPlan) bool {
	return p.Summary != "" && len(p.Days) > 0
}

// decorateIcons stamps every activity with its category icon so the result
// view renders without its own category table.
func decorateIcons(p *response_models.TripPlan) {
	for d := range p.Days {
		for a := range p.Days[d].Activities {
			activity := &p.Days[d].Activities[a]
			activity.Icon = catalog.CategoryIcon(activity.Category)
		}
	}
}

// planCacheKey hashes the normalized answers. Interest order and attraction
// whitespace must not fork cache entries.
func planCacheKey(r request_models.AnswerRecord) string {
	normalized := r
	normalized.TripStyle = append([]string(nil), r.TripStyle...)
	normalized.Interests = append([]string(nil), r.Interests...)
	sort.Strings(normalized.TripStyle)
	sort.Strings(normalized.Interests)
	normalized.Destination = strings.ToLower(strings.TrimSpace(r.Destination))
	normalized.MustSeeAttractions = strings.TrimSpace(r.MustSeeAttractions)

	encoded, _ := json.Marshal(normalized)
	sum := sha256.Sum256(encoded)
	return "trip_plan_" + hex.EncodeToString(sum[:])
}

func buildTripPrompt(r request_models.AnswerRecord) string {
	days := utils.InclusiveDays(r.StartDate, r.EndDate)
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(
		"You are an expert travel planner. Create a detailed %d-day itinerary for %s, from %s to %s.\n\n",
		days, r.Destination, r.StartDate, r.EndDate))
	sb.WriteString("Traveler profile:\n")
	sb.WriteString(fmt.Sprintf("- Trip style: %s\n", strings.Join(r.TripStyle, ", ")))
	sb.WriteString(fmt.Sprintf("- Interests: %s\n", strings.Join(r.Interests, ", ")))
	sb.WriteString(fmt.Sprintf("- Pace: %s\n", r.Pace))
	sb.WriteString(fmt.Sprintf("- Budget: %s\n", r.Budget))
	sb.WriteString(fmt.Sprintf("- Transportation: %s\n", r.TransportationMode))
	sb.WriteString(fmt.Sprintf("- Traveling with: %s\n", r.TravelWith))
	if strings.TrimSpace(r.MustSeeAttractions) != "" {
		sb.WriteString(fmt.Sprintf("- Must-see attractions: %s\n", r.MustSeeAttractions))
	}

	sb.WriteString(`
Respond with a single JSON object, no markdown, exactly this shape:
{
  "summary": "short trip overview",
  "days": [
    {
      "title": "Day 1: ...",
      "activities": [
        {
          "time": "09:00",
          "description": "what to do and why it fits the traveler",
          "place_name_for_lookup": "exact findable place name or null",
          "category": "food|museum|shopping|transport|hotel|attraction|cafe|other",
          "cost_estimate": {"min": 10, "max": 30, "currency": "USD"},
          "ticket_url": "official booking url or null"
        }
      ],
      "day_cost_estimate": {"min": 0, "max": 0, "currency": "USD"}
    }
  ],
  "destination_info": {
    "country": "", "city": "", "language": "", "currency": "",
    "budget_tips": [], "transportation_options": [], "discount_options": [],
    "emergency_info": {"police": "", "ambulance": ""}
  },
  "total_cost_estimate": {"min": 0, "max": 0, "currency": "USD"}
}

Rules:
- Produce exactly one entry in "days" per trip day, in date order.
- "place_name_for_lookup" must be a real, findable place. Use null when the
  activity has no single venue, never invent a name.
- Cost estimates are per person in the local currency's USD equivalent.
- Match the activity count per day to the requested pace.
`)
	return sb.String()
}
