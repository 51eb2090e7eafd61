package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fastplan/internal/models/request_models"
	"fastplan/internal/services"
	"fastplan/pkg/utils"
)

type MutationController struct {
	mutationService services.MutationServiceInterface
}

func NewMutationController(mutationService services.MutationServiceInterface) *MutationController {
	return &MutationController{
		mutationService: mutationService,
	}
}

// SuggestAlternative godoc
// @Summary Replace one itinerary activity
// @Description Asks the assistant for a replacement and merges it into the saved plan
// @Tags Mutations
// @Accept json
// @Produce json
// @Param request body request_models.SuggestAlternativeRequest true "Replacement payload"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /trips/replace-activity [post]
func (m *MutationController) SuggestAlternative(c *gin.Context) {
	var req request_models.SuggestAlternativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := m.mutationService.SuggestAlternative(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Activity replaced successfully")
}

// AddActivity godoc
// @Summary Add activities to one itinerary day
// @Description Asks the assistant for fitting activities and splices them into the saved plan
// @Tags Mutations
// @Accept json
// @Produce json
// @Param request body request_models.AddActivityRequest true "Addition payload"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /trips/add-activity [post]
func (m *MutationController) AddActivity(c *gin.Context) {
	var req request_models.AddActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := m.mutationService.AddActivity(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Activities added successfully")
}

// OpenComposer godoc
// @Summary Open an inline composer against an activity
// @Description Anchors the composer and preserves any typed draft server-side
// @Tags Mutations
// @Accept json
// @Produce json
// @Param request body request_models.OpenComposerRequest true "Composer payload"
// @Success 200 {object} utils.APIResponse
// @Router /trips/open-composer [post]
func (m *MutationController) OpenComposer(c *gin.Context) {
	var req request_models.OpenComposerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := m.mutationService.OpenComposer(c.Request.Context(), req.TripID, *req.DayIndex, *req.ActivityIndex, req.Text); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Composer opened")
}

// CloseComposer godoc
// @Summary Dismiss an inline composer
// @Tags Mutations
// @Accept json
// @Produce json
// @Param request body request_models.CloseComposerRequest true "Composer payload"
// @Success 200 {object} utils.APIResponse
// @Router /trips/close-composer [post]
func (m *MutationController) CloseComposer(c *gin.Context) {
	var req request_models.CloseComposerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := m.mutationService.CloseComposer(c.Request.Context(), req.TripID, *req.DayIndex, *req.ActivityIndex); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Composer closed")
}
