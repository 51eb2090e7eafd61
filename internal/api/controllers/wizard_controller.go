package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fastplan/internal/catalog"
	"fastplan/internal/models/request_models"
	"fastplan/internal/services"
	"fastplan/pkg/utils"
)

type WizardController struct {
	wizardService services.WizardServiceInterface
}

func NewWizardController(wizardService services.WizardServiceInterface) *WizardController {
	return &WizardController{
		wizardService: wizardService,
	}
}

// StartSession godoc
// @Summary Start a planning wizard session
// @Description Creates a fresh wizard session for the authenticated user
// @Tags Wizard
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /wizard/start [post]
func (w *WizardController) StartSession(c *gin.Context) {
	state, err := w.wizardService.StartSession(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, state, "Session started")
}

// Resume godoc
// @Summary Resume a wizard session
// @Description Rehydrates a persisted session; incompatible snapshots restart at step one
// @Tags Wizard
// @Produce json
// @Param session_id path string true "Session id"
// @Success 200 {object} utils.APIResponse
// @Router /wizard/{session_id} [get]
func (w *WizardController) Resume(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Session id is required")
		return
	}

	state, err := w.wizardService.Resume(c.Request.Context(), sessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, state, "Session resumed")
}

// UpdateField godoc
// @Summary Update wizard answers
// @Description Merges a partial answer update without moving the step pointer
// @Tags Wizard
// @Accept json
// @Produce json
// @Param request body request_models.UpdateWizardFieldRequest true "Field update payload"
// @Success 200 {object} utils.APIResponse
// @Router /wizard/update [post]
func (w *WizardController) UpdateField(c *gin.Context) {
	var req request_models.UpdateWizardFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	state, err := w.wizardService.UpdateField(c.Request.Context(), req.SessionID, req.Update)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, state, "Answers updated")
}

// Advance godoc
// @Summary Advance to the next wizard step
// @Description Moves forward only when the current step validates; otherwise returns the unchanged state
// @Tags Wizard
// @Accept json
// @Produce json
// @Param request body request_models.WizardStepRequest true "Step payload"
// @Success 200 {object} utils.APIResponse
// @Router /wizard/next [post]
func (w *WizardController) Advance(c *gin.Context) {
	var req request_models.WizardStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	state, err := w.wizardService.Advance(c.Request.Context(), req.SessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, state, "Step advanced")
}

// Retreat godoc
// @Summary Go back one wizard step
// @Tags Wizard
// @Accept json
// @Produce json
// @Param request body request_models.WizardStepRequest true "Step payload"
// @Success 200 {object} utils.APIResponse
// @Router /wizard/back [post]
func (w *WizardController) Retreat(c *gin.Context) {
	var req request_models.WizardStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	state, err := w.wizardService.Retreat(c.Request.Context(), req.SessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, state, "Step retreated")
}

// Abandon godoc
// @Summary Abandon a wizard session
// @Tags Wizard
// @Produce json
// @Param session_id path string true "Session id"
// @Success 200 {object} utils.APIResponse
// @Router /wizard/{session_id} [delete]
func (w *WizardController) Abandon(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Session id is required")
		return
	}

	if err := w.wizardService.Abandon(c.Request.Context(), sessionID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Session abandoned")
}

// Options godoc
// @Summary List wizard option catalogs
// @Description Returns the selectable options for every wizard step
// @Tags Wizard
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /wizard/options [get]
func (w *WizardController) Options(c *gin.Context) {
	utils.RespondSuccess(c, gin.H{
		"trip_styles":          catalog.TripStyleOptions,
		"interests":            catalog.InterestOptions,
		"paces":                catalog.PaceOptions,
		"budgets":              catalog.BudgetOptions,
		"transportation_modes": catalog.TransportationModeOptions,
		"travel_with":          catalog.TravelWithOptions,
		"popular_destinations": catalog.PopularDestinations,
		"search_modes":         catalog.SearchModes,
	}, "Options fetched successfully")
}
