package controllers

import (
	"github.com/gin-gonic/gin"

	"fastplan/internal/services"
	"fastplan/pkg/utils"
)

type DestinationsController struct {
	destinationService services.DestinationServiceInterface
}

func NewDestinationsController(destinationService services.DestinationServiceInterface) *DestinationsController {
	return &DestinationsController{
		destinationService: destinationService,
	}
}

// Suggest godoc
// @Summary Suggest destinations
// @Description Typeahead suggestions for the destination step; empty query returns the popular list. Map region clicks forward their display name as the query.
// @Tags Destinations
// @Produce json
// @Param query query string false "Search text or map region name"
// @Success 200 {object} utils.APIResponse
// @Router /destinations/suggest [get]
func (d *DestinationsController) Suggest(c *gin.Context) {
	suggestions, err := d.destinationService.Suggest(c.Request.Context(), c.Query("query"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, suggestions, "Suggestions fetched successfully")
}
