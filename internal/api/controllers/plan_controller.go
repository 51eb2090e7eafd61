package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fastplan/internal/models/request_models"
	"fastplan/internal/services"
	"fastplan/pkg/utils"
)

type PlanController struct {
	submissionService services.SubmissionServiceInterface
}

func NewPlanController(submissionService services.SubmissionServiceInterface) *PlanController {
	return &PlanController{
		submissionService: submissionService,
	}
}

// Submit godoc
// @Summary Generate an itinerary from a finished wizard session
// @Description Validates the accumulated answers, generates the plan and saves the trip
// @Tags Plans
// @Accept json
// @Produce json
// @Param request body request_models.SubmitPlanRequest true "Submission payload"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /plans/submit [post]
func (p *PlanController) Submit(c *gin.Context) {
	var req request_models.SubmitPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := p.submissionService.Submit(c.Request.Context(), req.SessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Plan generated successfully")
}
