package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campus-election/internal/app/models"
	"github.com/yigit/campus-election/internal/app/models/dto"
	"github.com/yigit/campus-election/internal/app/services"
	"github.com/yigit/campus-election/internal/middleware"
)

// BallotController handles vote admission requests
type BallotController struct {
	ballotService services.BallotService
}

// NewBallotController creates a new BallotController
func NewBallotController(ballotService services.BallotService) *BallotController {
	return &BallotController{
		ballotService: ballotService,
	}
}

// voterID returns the authenticated voter or answers 401
func voterID(ctx *gin.Context) (int64, bool) {
	id, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "User not authenticated")))
		return 0, false
	}
	return id, true
}

// SubmitBallot handles a ballot submission
// @Summary Submit a ballot
// @Description Validates and records the caller's selections. With partial=false any rejected selection rejects the whole ballot.
// @Description The response always carries the per-selection report.
// @Tags ballots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitBallotRequest true "Ballot selections"
// @Success 201 {object} dto.APIResponse{data=models.BallotReport} "Ballot committed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Voter role required"
// @Failure 404 {object} dto.ErrorResponse "Election, voter or position not found"
// @Failure 409 {object} dto.APIResponse{data=models.BallotReport} "Ballot rejected"
// @Failure 422 {object} dto.APIResponse{data=models.BallotReport} "Candidate is not on the ballot"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /ballots [post]
func (c *BallotController) SubmitBallot(ctx *gin.Context) {
	voter, ok := voterID(ctx)
	if !ok {
		return
	}

	var req dto.SubmitBallotRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	report, err := c.ballotService.SubmitBallot(ctx.Request.Context(), voter, req.Selections, req.Options())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if !report.Committed {
		ctx.JSON(rejectedBallotResponse(report))
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(report))
}

// rejectedBallotResponse answers with the status of the first rejected selection
func rejectedBallotResponse(report *models.BallotReport) (int, dto.APIResponse) {
	status, code := http.StatusConflict, dto.ErrorCodeResourceConflict
	detail := dto.NewErrorDetail(code, "Ballot rejected")
	if len(report.Errors) > 0 {
		first := report.Errors[0]
		status, code = middleware.StatusForKind(first.Code)
		detail = dto.NewErrorDetail(code, first.Message).WithReason(first.Code)
	}

	return status, dto.APIResponse{
		Success:   false,
		Data:      report,
		Error:     detail,
		Timestamp: time.Now(),
	}
}

// GetMyVotes lists the caller's votes in an election
// @Summary Get my votes
// @Tags ballots
// @Produce json
// @Security BearerAuth
// @Param id path int true "Election ID"
// @Success 200 {object} dto.APIResponse{data=dto.VoterVotesResponse} "Votes retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid election ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Election not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /elections/{id}/my-votes [get]
func (c *BallotController) GetMyVotes(ctx *gin.Context) {
	voter, ok := voterID(ctx)
	if !ok {
		return
	}
	electionID, ok := middleware.ParseIDParam(ctx, "id", "election")
	if !ok {
		return
	}

	votes, err := c.ballotService.GetVoterVotes(ctx.Request.Context(), voter, electionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.VoterVotesResponse{
		ElectionID: electionID,
		Votes:      votes,
	}))
}

// CheckEligibility reports whether the caller may still vote for a position
// @Summary Check voting eligibility
// @Tags ballots
// @Produce json
// @Security BearerAuth
// @Param id path int true "Election ID"
// @Param positionId path int true "Position ID"
// @Success 200 {object} dto.APIResponse{data=models.Eligibility} "Eligibility computed"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Election or position not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /elections/{id}/positions/{positionId}/eligibility [get]
func (c *BallotController) CheckEligibility(ctx *gin.Context) {
	voter, ok := voterID(ctx)
	if !ok {
		return
	}
	electionID, ok := middleware.ParseIDParam(ctx, "id", "election")
	if !ok {
		return
	}
	positionID, ok := middleware.ParseIDParam(ctx, "positionId", "position")
	if !ok {
		return
	}

	eligibility, err := c.ballotService.CheckEligibility(ctx.Request.Context(), voter, electionID, positionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(eligibility))
}
