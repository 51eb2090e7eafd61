package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fastplan/internal/services"
	"fastplan/pkg/utils"
)

type PlacesController struct {
	placesService services.PlacesServiceInterface
}

func NewPlacesController(placesService services.PlacesServiceInterface) *PlacesController {
	return &PlacesController{
		placesService: placesService,
	}
}

// Lookup godoc
// @Summary Look up place details
// @Description Resolves an activity's place name to address, rating, photos and hours
// @Tags Places
// @Produce json
// @Param query query string true "Place name"
// @Param hint query string false "Destination hint to narrow the search"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /places/details [get]
func (p *PlacesController) Lookup(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		utils.RespondError(c, http.StatusBadRequest, "Query is required")
		return
	}

	details, err := p.placesService.Lookup(c.Request.Context(), query, c.Query("hint"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, details, "Place details fetched successfully")
}
