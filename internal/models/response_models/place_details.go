package response_models

// PlaceDetails is fetched lazily per activity; every field may be individually
// absent and the activity renders from its base fields regardless.
type PlaceDetails struct {
	Name         string   `json:"name"`
	Address      *string  `json:"address"`
	Rating       *float64 `json:"rating,omitempty"`
	TotalRatings *int     `json:"total_ratings,omitempty"`
	Phone        *string  `json:"phone,omitempty"`
	Website      *string  `json:"website,omitempty"`
	PriceLevel   *int     `json:"price_level,omitempty"`
	Location     *LatLng  `json:"location"`
	Photos       []string `json:"photos"`
	OpeningHours []string `json:"opening_hours"`
	Reviews      []Review `json:"reviews"`
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Review struct {
	AuthorName string  `json:"author_name"`
	Rating     float64 `json:"rating"`
	Text       string  `json:"text"`
	Time       string  `json:"time"`
}
