package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"googlemaps.github.io/maps"

	"fastplan/internal/models/response_models"
	"fastplan/pkg/utils"
)

const (
	placeCacheTTL = 72 * time.Hour
	maxReviews    = 3
	maxPhotos     = 4
)

type PlacesServiceInterface interface {
	// Lookup resolves a place name to rich details. The hint narrows the text
	// search, usually to the trip's destination city.
	Lookup(ctx context.Context, placeName, hint string) (*response_models.PlaceDetails, error)
}

type PlacesService struct {
	client *maps.Client
	apiKey string
	cache  Cache
}

func NewPlacesService(client *maps.Client, apiKey string, cache Cache) PlacesServiceInterface {
	return &PlacesService{
		client: client,
		apiKey: apiKey,
		cache:  cache,
	}
}

func (p *PlacesService) Lookup(ctx context.Context, placeName, hint string) (*response_models.PlaceDetails, error) {
	placeName = strings.TrimSpace(placeName)
	if placeName == "" {
		return nil, utils.ErrInvalidInput
	}
	if p.client == nil {
		return nil, utils.ErrLookupMiss
	}

	query := placeName
	if hint = strings.TrimSpace(hint); hint != "" {
		query = placeName + " " + hint
	}

	cacheKey := placeCacheKey(query)
	if cached, ok := p.cache.Get(ctx, cacheKey); ok {
		var details response_models.PlaceDetails
		if err := json.Unmarshal([]byte(cached), &details); err == nil {
			return &details, nil
		}
		p.cache.Delete(ctx, cacheKey)
	}

	search, err := p.client.TextSearch(ctx, &maps.TextSearchRequest{Query: query})
	if err != nil {
		log.Printf("place text search %q: %v", query, err)
		return nil, utils.ErrLookupMiss
	}
	if len(search.Results) == 0 {
		return nil, utils.ErrLookupMiss
	}

	result, err := p.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID: search.Results[0].PlaceID,
	})
	if err != nil {
		log.Printf("place details %q: %v", query, err)
		return nil, utils.ErrLookupMiss
	}

	details := p.toPlaceDetails(&result)
	if encoded, err := json.Marshal(details); err == nil {
		p.cache.Set(ctx, cacheKey, string(encoded), placeCacheTTL)
		registerPlaceCacheKey(ctx, p.cache, placeName, cacheKey)
	}
	return details, nil
}

func (p *PlacesService) toPlaceDetails(r *maps.PlaceDetailsResult) *response_models.PlaceDetails {
	details := &response_models.PlaceDetails{
		Name:   r.Name,
		Photos: []string{},
	}

	if r.FormattedAddress != "" {
		details.Address = &r.FormattedAddress
	}
	if r.Rating > 0 {
		rating := float64(r.Rating)
		details.Rating = &rating
		total := r.UserRatingsTotal
		details.TotalRatings = &total
	}
	if r.FormattedPhoneNumber != "" {
		details.Phone = &r.FormattedPhoneNumber
	}
	if r.Website != "" {
		details.Website = &r.Website
	}
	if r.PriceLevel > 0 {
		level := r.PriceLevel
		details.PriceLevel = &level
	}
	details.Location = &response_models.LatLng{
		Lat: r.Geometry.Location.Lat,
		Lng: r.Geometry.Location.Lng,
	}
	if r.OpeningHours != nil {
		details.OpeningHours = append(details.OpeningHours, r.OpeningHours.WeekdayText...)
	}
	for i, photo := range r.Photos {
		if i >= maxPhotos {
			break
		}
		details.Photos = append(details.Photos, p.photoURL(photo.PhotoReference))
	}
	for i, review := range r.Reviews {
		if i >= maxReviews {
			break
		}
		details.Reviews = append(details.Reviews, response_models.Review{
			AuthorName: review.AuthorName,
			Rating:     float64(review.Rating),
			Text:       review.Text,
			Time:       time.Unix(int64(review.Time), 0).UTC().Format("2006-01-02"),
		})
	}
	return details
}

func (p *PlacesService) photoURL(ref string) string {
	return fmt.Sprintf(
		"https://maps.googleapis.com/maps/api/place/photo?maxwidth=800&photo_reference=%s&key=%s",
		ref, p.apiKey)
}

func placeCacheKey(query string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(query))))
	return "place_details_" + hex.EncodeToString(sum[:])
}

// placeIndexKey addresses the set of cache keys holding details for one place
// name. Details are cached per query (name plus hint), so dropping a place
// means walking every key its name has been cached under.
func placeIndexKey(placeName string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(placeName))))
	return "place_details_keys_" + hex.EncodeToString(sum[:])
}

func registerPlaceCacheKey(ctx context.Context, cache Cache, placeName, cacheKey string) {
	indexKey := placeIndexKey(placeName)

	var keys []string
	if cached, ok := cache.Get(ctx, indexKey); ok {
		_ = json.Unmarshal([]byte(cached), &keys)
	}
	for _, k := range keys {
		if k == cacheKey {
			return
		}
	}
	keys = append(keys, cacheKey)

	if encoded, err := json.Marshal(keys); err == nil {
		cache.Set(ctx, indexKey, string(encoded), placeCacheTTL)
	}
}

// invalidatePlaceDetails drops every cached details entry for a place name,
// hinted queries included.
func invalidatePlaceDetails(ctx context.Context, cache Cache, placeName string) {
	cache.Delete(ctx, placeCacheKey(placeName))

	indexKey := placeIndexKey(placeName)
	if cached, ok := cache.Get(ctx, indexKey); ok {
		var keys []string
		if err := json.Unmarshal([]byte(cached), &keys); err == nil {
			for _, k := range keys {
				cache.Delete(ctx, k)
			}
		}
	}
	cache.Delete(ctx, indexKey)
}
