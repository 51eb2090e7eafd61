package response_models

import (
	"fmt"

	"fastplan/pkg/utils"
)

// TripPlan is the itinerary document returned by the planning assistant and
// mutated afterwards through index-scoped writes. The wire format mirrors what
// the result view renders, so activities are addressed by (day, activity)
// position rather than a stable key.
type TripPlan struct {
	Summary           string           `json:"summary"`
	Days              []DayPlan        `json:"days"`
	DestinationInfo   *DestinationInfo `json:"destination_info,omitempty"`
	TotalCostEstimate *TripCost        `json:"total_cost_estimate,omitempty"`
}

type DayPlan struct {
	Title           string        `json:"title"`
	Activities      []Activity    `json:"activities"`
	DayCostEstimate *CostEstimate `json:"day_cost_estimate,omitempty"`
}

type Activity struct {
	Time               string        `json:"time"`
	Description        string        `json:"description"`
	PlaceNameForLookup *string       `json:"place_name_for_lookup"`
	PlaceDetails       *PlaceDetails `json:"place_details,omitempty"`
	Category           string        `json:"category,omitempty"`
	Icon               string        `json:"icon,omitempty"`
	CostEstimate       *CostEstimate `json:"cost_estimate,omitempty"`
	TicketURL          *string       `json:"ticket_url,omitempty"`
}

// CostEstimate and the aggregates below are backend-computed. Absent means
// "not available", which renders differently from an actual zero-cost item,
// hence pointers all the way down.
type CostEstimate struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency,omitempty"`
}

type CostRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type TripCost struct {
	Min            float64    `json:"min"`
	Max            float64    `json:"max"`
	Currency       string     `json:"currency"`
	Accommodations *CostRange `json:"accommodations,omitempty"`
	Food           *CostRange `json:"food,omitempty"`
	Attractions    *CostRange `json:"attractions,omitempty"`
	Transportation *CostRange `json:"transportation,omitempty"`
	Other          *CostRange `json:"other,omitempty"`
}

type DestinationInfo struct {
	Country               string                 `json:"country"`
	City                  string                 `json:"city"`
	Language              string                 `json:"language"`
	Currency              string                 `json:"currency"`
	ExchangeRate          *float64               `json:"exchange_rate,omitempty"`
	BudgetTips            []string               `json:"budget_tips,omitempty"`
	TransportationOptions []TransportationOption `json:"transportation_options,omitempty"`
	DiscountOptions       []DiscountOption       `json:"discount_options,omitempty"`
	EmergencyInfo         *EmergencyInfo         `json:"emergency_info,omitempty"`
}

type TransportationOption struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CostRange   string `json:"cost_range,omitempty"`
	AppLink     string `json:"app_link,omitempty"`
	AppName     string `json:"app_name,omitempty"`
}

type DiscountOption struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price,omitempty"`
	Link        string `json:"link,omitempty"`
}

type EmergencyInfo struct {
	Police        string `json:"police"`
	Ambulance     string `json:"ambulance"`
	TouristPolice string `json:"tourist_police,omitempty"`
}

// DayAt fails with ErrOutOfRange rather than clamping; a clamped index would
// silently show the wrong day.
func (p *TripPlan) DayAt(dayIndex int) (*DayPlan, error) {
	if dayIndex < 0 || dayIndex >= len(p.Days) {
		return nil, fmt.Errorf("day %d of %d: %w", dayIndex, len(p.Days), utils.ErrOutOfRange)
	}
	return &p.Days[dayIndex], nil
}

func (p *TripPlan) ActivityAt(dayIndex, activityIndex int) (*Activity, error) {
	day, err := p.DayAt(dayIndex)
	if err != nil {
		return nil, err
	}
	if activityIndex < 0 || activityIndex >= len(day.Activities) {
		return nil, fmt.Errorf("activity %d of %d on day %d: %w",
			activityIndex, len(day.Activities), dayIndex, utils.ErrOutOfRange)
	}
	return &day.Activities[activityIndex], nil
}

// ReplaceActivity writes exactly one coordinate. Sibling activities, ordering
// and cost aggregates are untouched; aggregates only change when the caller
// follows up with ApplyCostEstimates carrying backend-supplied numbers.
func (p *TripPlan) ReplaceActivity(dayIndex, activityIndex int, activity Activity) error {
	slot, err := p.ActivityAt(dayIndex, activityIndex)
	if err != nil {
		return err
	}
	*slot = activity
	return nil
}

// InsertActivities splices a sequence into a day at position; position
// len(activities) appends. Existing activities keep their relative order and
// aggregates are untouched, as with ReplaceActivity.
func (p *TripPlan) InsertActivities(dayIndex, position int, activities []Activity) error {
	day, err := p.DayAt(dayIndex)
	if err != nil {
		return err
	}
	if position < 0 || position > len(day.Activities) {
		return fmt.Errorf("position %d of %d on day %d: %w",
			position, len(day.Activities), dayIndex, utils.ErrOutOfRange)
	}

	tail := append(append([]Activity{}, activities...), day.Activities[position:]...)
	day.Activities = append(day.Activities[:position], tail...)
	return nil
}

// ApplyCostEstimates merges backend-supplied aggregates. A nil field means the
// response omitted it, in which case the prior aggregate is retained as stale
// rather than zeroed.
func (p *TripPlan) ApplyCostEstimates(dayIndex int, dayCost *CostEstimate, tripCost *TripCost) error {
	if dayCost != nil {
		day, err := p.DayAt(dayIndex)
		if err != nil {
			return err
		}
		day.DayCostEstimate = dayCost
	}
	if tripCost != nil {
		p.TotalCostEstimate = tripCost
	}
	return nil
}
