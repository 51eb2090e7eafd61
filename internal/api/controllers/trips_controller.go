package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fastplan/internal/models/request_models"
	"fastplan/internal/services"
	"fastplan/pkg/utils"
)

type TripsController struct {
	tripService services.TripServiceInterface
}

func NewTripsController(tripService services.TripServiceInterface) *TripsController {
	return &TripsController{
		tripService: tripService,
	}
}

// GetTrip godoc
// @Summary Fetch a saved trip
// @Description Returns the stored plan together with the answers that produced it
// @Tags Trips
// @Produce json
// @Param trip_id path string true "Trip id"
// @Success 200 {object} utils.APIResponse
// @Router /trips/{trip_id} [get]
func (t *TripsController) GetTrip(c *gin.Context) {
	tripID := c.Param("trip_id")
	if tripID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip id is required")
		return
	}

	trip, err := t.tripService.GetTrip(c.Request.Context(), tripID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip fetched successfully")
}

// ListTrips godoc
// @Summary List the authenticated user's saved trips
// @Tags Trips
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} utils.APIResponse
// @Router /trips [get]
func (t *TripsController) ListTrips(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "10")

	page, err := strconv.Atoi(pageStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}
	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size")
		return
	}

	trips, svcErr := t.tripService.ListTrips(c.Request.Context(), c.GetString("user_id"), page, pageSize)
	if svcErr != nil {
		utils.HandleServiceError(c, svcErr)
		return
	}

	utils.RespondSuccess(c, trips, "Trips fetched successfully")
}

// SaveNote godoc
// @Summary Save a note on one itinerary activity
// @Description Upserts the note and done flag pinned to a (day, activity) coordinate
// @Tags Trips
// @Accept json
// @Produce json
// @Param request body request_models.SaveNoteRequest true "Note payload"
// @Success 200 {object} utils.APIResponse
// @Router /trips/notes [post]
func (t *TripsController) SaveNote(c *gin.Context) {
	var req request_models.SaveNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	note, err := t.tripService.SaveActivityNote(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, note, "Note saved successfully")
}

// ListNotes godoc
// @Summary List the authenticated user's notes for a trip
// @Tags Trips
// @Produce json
// @Param trip_id path string true "Trip id"
// @Success 200 {object} utils.APIResponse
// @Router /trips/{trip_id}/notes [get]
func (t *TripsController) ListNotes(c *gin.Context) {
	tripID := c.Param("trip_id")
	if tripID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip id is required")
		return
	}

	notes, err := t.tripService.ListActivityNotes(c.Request.Context(), c.GetString("user_id"), tripID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, notes, "Notes fetched successfully")
}

// DeleteTrip godoc
// @Summary Delete a saved trip
// @Tags Trips
// @Produce json
// @Param trip_id path string true "Trip id"
// @Success 200 {object} utils.APIResponse
// @Router /trips/{trip_id} [delete]
func (t *TripsController) DeleteTrip(c *gin.Context) {
	tripID := c.Param("trip_id")
	if tripID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip id is required")
		return
	}

	if err := t.tripService.DeleteTrip(c.Request.Context(), tripID, c.GetString("user_id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Trip deleted successfully")
}
