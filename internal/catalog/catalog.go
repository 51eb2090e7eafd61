// Package catalog holds the static option enumerations behind the fast plan
// wizard: what a step offers is data, not code, so the step views on the
// client render directly from these lists.
package catalog

type Option struct {
	Value string `json:"value"`
	Icon  string `json:"icon"`
}

type DescribedOption struct {
	Value       string `json:"value"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

type PopularDestination struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	Emoji string `json:"emoji"`
}

var TripStyleOptions = []Option{
	{Value: "Relaxing", Icon: "🏖️"},
	{Value: "Adventurous", Icon: "🧗‍♂️"},
	{Value: "Cultural", Icon: "🏛️"},
	{Value: "Romantic", Icon: "💑"},
}

var InterestOptions = []Option{
	{Value: "Food & Cuisine", Icon: "🍲"},
	{Value: "History & Heritage", Icon: "🏺"},
	{Value: "Art & Culture", Icon: "🎭"},
	{Value: "Nature & Outdoors", Icon: "🌿"},
	{Value: "Shopping", Icon: "🛍️"},
	{Value: "Nightlife", Icon: "🥂"},
	{Value: "Beaches", Icon: "🏝️"},
	{Value: "Photography", Icon: "📸"},
	{Value: "Wildlife", Icon: "🦁"},
	{Value: "Architecture", Icon: "🏙️"},
}

var PaceOptions = []DescribedOption{
	{Value: "Relaxed", Icon: "🐢", Description: "Plenty of downtime between activities"},
	{Value: "Moderate", Icon: "🚶", Description: "Balanced pace with some free time"},
	{Value: "Intense", Icon: "🏃‍♂️", Description: "Action-packed with lots to see"},
}

var BudgetOptions = []DescribedOption{
	{Value: "Budget", Icon: "💰", Description: "Economical options & local experiences"},
	{Value: "Mid-range", Icon: "💰💰", Description: "Comfortable with occasional splurges"},
	{Value: "Luxury", Icon: "💰💰💰", Description: "Premium experiences & accommodations"},
}

var TransportationModeOptions = []DescribedOption{
	{Value: "Walking & Public Transit", Icon: "🚶‍♀️🚇", Description: "Exploring on foot and using local transport."},
	{Value: "Rental Car / Own Vehicle", Icon: "🚗💨", Description: "Flexibility to drive and explore widely."},
	{Value: "Mix of Both", Icon: "🚶‍♂️🚗", Description: "Combining driving with walking/public transit."},
	{Value: "Ride-sharing & Taxis", Icon: "🚕", Description: "Mainly using taxis or ride-sharing services."},
}

var TravelWithOptions = []Option{
	{Value: "Solo", Icon: "🧍"},
	{Value: "Partner", Icon: "💑"},
	{Value: "Family", Icon: "👨‍👩‍👧‍👦"},
	{Value: "Friends", Icon: "👯"},
	{Value: "Group Tour", Icon: "🧑‍🤝‍🧑"},
}

var PopularDestinations = []PopularDestination{
	{Name: "Paris, France", Image: "/images/destinations/paris.webp", Emoji: "🗼"},
	{Name: "Tokyo, Japan", Image: "/images/destinations/tokyo.webp", Emoji: "🏯"},
	{Name: "Rome, Italy", Image: "/images/destinations/rome.webp", Emoji: "🏛️"},
	{Name: "Greece, Mykonos", Image: "/images/destinations/mykonos.webp", Emoji: "⛱️"},
	{Name: "New York, USA", Image: "/images/destinations/new-york.webp", Emoji: "🗽"},
	{Name: "Bangkok, Thailand", Image: "/images/destinations/bangkok.webp", Emoji: "🛕"},
}

// SearchModes select the planning model tier at submission.
var SearchModes = []string{"quick", "normal", "deep"}

func IsSearchMode(mode string) bool {
	for _, m := range SearchModes {
		if m == mode {
			return true
		}
	}
	return false
}

func hasValue(opts []Option, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

func hasDescribedValue(opts []DescribedOption, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

func IsTripStyle(v string) bool          { return hasValue(TripStyleOptions, v) }
func IsInterest(v string) bool           { return hasValue(InterestOptions, v) }
func IsPace(v string) bool               { return hasDescribedValue(PaceOptions, v) }
func IsBudget(v string) bool             { return hasDescribedValue(BudgetOptions, v) }
func IsTransportationMode(v string) bool { return hasDescribedValue(TransportationModeOptions, v) }
func IsTravelWith(v string) bool         { return hasValue(TravelWithOptions, v) }

// Activity categories arrive as an open string enum from the planning
// assistant; icon selection must be a total function, so anything outside the
// known set falls back to the default pin.
var categoryIcons = map[string]string{
	"food":       "🍽️",
	"museum":     "🏛️",
	"shopping":   "🛍️",
	"transport":  "🚌",
	"hotel":      "🏨",
	"attraction": "📍",
	"cafe":       "☕",
	"other":      "📌",
}

const defaultCategoryIcon = "📍"

func CategoryIcon(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return defaultCategoryIcon
}
