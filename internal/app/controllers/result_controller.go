package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campus-election/internal/app/models/dto"
	"github.com/yigit/campus-election/internal/app/services"
	"github.com/yigit/campus-election/internal/middleware"
)

// ResultController handles tallies and countdown reads
type ResultController struct {
	resultService services.ResultService
}

// NewResultController creates a new ResultController
func NewResultController(resultService services.ResultService) *ResultController {
	return &ResultController{
		resultService: resultService,
	}
}

// GetResults returns the ranked tally of an election
// @Summary Get election results
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param id path int true "Election ID"
// @Success 200 {object} dto.APIResponse{data=models.ElectionResults} "Results computed"
// @Failure 400 {object} dto.ErrorResponse "Invalid election ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Election not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /elections/{id}/results [get]
func (c *ResultController) GetResults(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "election")
	if !ok {
		return
	}

	results, err := c.resultService.GetResults(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(results))
}

// GetLiveResults returns the ranked tally of the live election
// @Summary Get live election results
// @Tags results
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.ElectionResults} "Results computed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "No live election"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /elections/active/results [get]
func (c *ResultController) GetLiveResults(ctx *gin.Context) {
	results, err := c.resultService.GetLiveResults(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(results))
}

// GetCountdown returns the remaining time of an election
// @Summary Get election countdown
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param id path int true "Election ID"
// @Success 200 {object} dto.APIResponse{data=models.Countdown} "Countdown computed"
// @Failure 400 {object} dto.ErrorResponse "Invalid election ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Election not found"
// @Router /elections/{id}/countdown [get]
func (c *ResultController) GetCountdown(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "election")
	if !ok {
		return
	}

	countdown, err := c.resultService.GetCountdown(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(countdown))
}
