package services

import (
	"context"
	"log"
	"strings"

	"fastplan/internal/catalog"
	"fastplan/internal/models/response_models"
	"fastplan/internal/repositories"
	"fastplan/pkg/utils"
)

const suggestionLimit = 8

type DestinationServiceInterface interface {
	// Suggest returns destination candidates for a typeahead query or a map
	// region click. An empty query falls back to the curated popular list.
	Suggest(ctx context.Context, query string) ([]response_models.DestinationSuggestion, error)
}

type DestinationService struct {
	destinationRepo repositories.DestinationRepository
	planner         utils.PlannerClientInterface
}

func NewDestinationService(destinationRepo repositories.DestinationRepository, planner utils.PlannerClientInterface) DestinationServiceInterface {
	return &DestinationService{
		destinationRepo: destinationRepo,
		planner:         planner,
	}
}

func (d *DestinationService) Suggest(ctx context.Context, query string) ([]response_models.DestinationSuggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		suggestions := make([]response_models.DestinationSuggestion, 0, len(catalog.PopularDestinations))
		for _, p := range catalog.PopularDestinations {
			name, country := p.Name, ""
			if i := strings.LastIndex(p.Name, ", "); i != -1 {
				name, country = p.Name[:i], p.Name[i+2:]
			}
			suggestions = append(suggestions, response_models.DestinationSuggestion{
				Name:    name,
				Country: country,
			})
		}
		return suggestions, nil
	}

	seen := make(map[string]struct{})
	var suggestions []response_models.DestinationSuggestion

	// Semantic match first. The embedding call failing is not fatal, the
	// name search below still answers.
	if embedding, err := d.planner.GetEmbedding(ctx, query); err == nil {
		matches, err := d.destinationRepo.SearchByVector(embedding, suggestionLimit)
		if err != nil {
			log.Printf("destination vector search %q: %v", query, err)
		}
		for _, m := range matches {
			if _, dup := seen[m.Name]; dup {
				continue
			}
			seen[m.Name] = struct{}{}
			suggestions = append(suggestions, response_models.DestinationSuggestion{
				Name:    m.Name,
				Country: m.Country,
			})
		}
	}

	if len(suggestions) < suggestionLimit {
		matches, err := d.destinationRepo.SearchByName(query, suggestionLimit-len(suggestions))
		if err != nil {
			if len(suggestions) == 0 {
				return nil, utils.ErrDatabaseError
			}
			return suggestions, nil
		}
		for _, m := range matches {
			if _, dup := seen[m.Name]; dup {
				continue
			}
			seen[m.Name] = struct{}{}
			suggestions = append(suggestions, response_models.DestinationSuggestion{
				Name:    m.Name,
				Country: m.Country,
			})
		}
	}

	return suggestions, nil
}
