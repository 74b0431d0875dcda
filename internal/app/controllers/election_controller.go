package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campus-election/internal/app/models"
	"github.com/yigit/campus-election/internal/app/models/dto"
	"github.com/yigit/campus-election/internal/app/services"
	"github.com/yigit/campus-election/internal/middleware"
	"github.com/yigit/campus-election/internal/pkg/helpers"
)

// ElectionController handles election management and lifecycle operations
type ElectionController struct {
	electionService services.ElectionService
}

// NewElectionController creates a new ElectionController
func NewElectionController(electionService services.ElectionService) *ElectionController {
	return &ElectionController{
		electionService: electionService,
	}
}

// CreateElection handles election creation
// @Summary Create an election
// @Description Creates a pending election with its position and candidate assignments. Only one election may be live at a time.
// @Tags elections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateElectionRequest true "Election information"
// @Success 201 {object} dto.APIResponse{data=dto.ElectionResponse} "Election created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Position or candidate not found"
// @Failure 409 {object} dto.ErrorResponse "Another election is already live"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /elections [post]
func (c *ElectionController) CreateElection(ctx *gin.Context) {
	var req dto.CreateElectionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	createdBy, _ := middleware.CurrentUserID(ctx)
	election, err := c.electionService.CreateElection(ctx.Request.Context(), services.ElectionInput{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		CreatedBy:   createdBy,
	}, req.PositionIDs, req.CandidateIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromElection(election)))
}

// GetElection retrieves an election by ID
// @Summary Get election by ID
// @Tags elections
// @Produce json
// @Security BearerAuth
// @Param id path int true "Election ID"
// @Success 200 {object} dto.APIResponse{data=dto.ElectionResponse} "Election retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid election ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Election not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /elections/{id} [get]
func (c *ElectionController) GetElection(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "election")
	if !ok {
		return
	}

	election, err := c.electionService.GetElection(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromElection(election)))
}

// GetActiveElection retrieves the election that has not ended yet
// @Summary Get the live election
// @Description Returns the single election whose status is not ended
// @Tags elections
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ElectionResponse} "Live election retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "No live election"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /elections/active [get]
func (c *ElectionController) GetActiveElection(ctx *gin.Context) {
	election, err := c.electionService.GetLiveElection(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromElection(election)))
}

// ListElections retrieves a page of elections
// @Summary List elections
// @Description Lists elections newest first, optionally filtered by status
// @Tags elections
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(pending, active, paused, stopped, ended)
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.ElectionListResponse} "Elections retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid status filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /elections [get]
func (c *ElectionController) ListElections(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	var filter models.ElectionFilter
	if status := ctx.Query("status"); status != "" {
		s := models.ElectionStatus(status)
		filter.Status = &s
	}

	elections, total, err := c.electionService.ListElections(ctx.Request.Context(), filter, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.ElectionListResponse{
		Elections:      make([]dto.ElectionResponse, 0, len(elections)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}
	for _, e := range elections {
		resp.Elections = append(resp.Elections, dto.FromElection(e))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UpdateElection updates an election that has not ended
// @Summary Update an election
// @Description Changes fields of an election. Supplied id lists replace the current assignments.
// @Tags elections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Election ID"
// @Param request body dto.UpdateElectionRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.ElectionResponse} "Election updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Election not found"
// @Failure 409 {object} dto.ErrorResponse "Election has ended"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /elections/{id} [put]
func (c *ElectionController) UpdateElection(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "election")
	if !ok {
		return
	}

	var req dto.UpdateElectionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	update := services.ElectionUpdate{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	if req.PositionIDs != nil {
		update.PositionIDs = append([]int64{}, *req.PositionIDs...)
	}
	if req.CandidateIDs != nil {
		update.CandidateIDs = append([]int64{}, *req.CandidateIDs...)
	}

	election, err := c.electionService.UpdateElection(ctx.Request.Context(), id, update)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromElection(election)))
}

// DeleteElection deletes an election with its votes and assignments
// @Summary Delete an election
// @Tags elections
// @Produce json
// @Security BearerAuth
// @Param id path int true "Election ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Election deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid election ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Election not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /elections/{id} [delete]
func (c *ElectionController) DeleteElection(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "election")
	if !ok {
		return
	}

	if err := c.electionService.DeleteElection(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Election deleted successfully"}))
}

type transitionFunc func(ctx *gin.Context, id int64) (*models.Election, error)

func (c *ElectionController) transition(ctx *gin.Context, apply transitionFunc) {
	id, ok := middleware.ParseIDParam(ctx, "id", "election")
	if !ok {
		return
	}

	election, err := apply(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromElection(election)))
}

// StartElection opens a pending election for voting
// @Summary Start an election
// @Tags elections
// @Produce json
// @Security BearerAuth
// @Param id path int true "Election ID"
// @Success 200 {object} dto.APIResponse{data=dto.ElectionResponse} "Election started"
// @Failure 404 {object} dto.ErrorResponse "Election not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid transition"
// @Router /elections/{id}/start [post]
func (c *ElectionController) StartElection(ctx *gin.Context) {
	c.transition(ctx, func(ctx *gin.Context, id int64) (*models.Election, error) {
		return c.electionService.StartElection(ctx.Request.Context(), id)
	})
}

// PauseElection temporarily stops an active election
// @Summary Pause an election
// @Tags elections
// @Produce json
// @Security BearerAuth
// @Param id path int true "Election ID"
// @Success 200 {object} dto.APIResponse{data=dto.ElectionResponse} "Election paused"
// @Failure 404 {object} dto.ErrorResponse "Election not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid transition"
// @Router /elections/{id}/pause [post]
func (c *ElectionController) PauseElection(ctx *gin.Context) {
	c.transition(ctx, func(ctx *gin.Context, id int64) (*models.Election, error) {
		return c.electionService.PauseElection(ctx.Request.Context(), id)
	})
}

// ResumeElection reopens a paused election
// @Summary Resume an election
// @Tags elections
// @Produce json
// @Security BearerAuth
// @Param id path int true "Election ID"
// @Success 200 {object} dto.APIResponse{data=dto.ElectionResponse} "Election resumed"
// @Failure 404 {object} dto.ErrorResponse "Election not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid transition"
// @Router /elections/{id}/resume [post]
func (c *ElectionController) ResumeElection(ctx *gin.Context) {
	c.transition(ctx, func(ctx *gin.Context, id int64) (*models.Election, error) {
		return c.electionService.ResumeElection(ctx.Request.Context(), id)
	})
}

// StopElection halts an active or paused election
// @Summary Stop an election
// @Tags elections
// @Produce json
// @Security BearerAuth
// @Param id path int true "Election ID"
// @Success 200 {object} dto.APIResponse{data=dto.ElectionResponse} "Election stopped"
// @Failure 404 {object} dto.ErrorResponse "Election not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid transition"
// @Router /elections/{id}/stop [post]
func (c *ElectionController) StopElection(ctx *gin.Context) {
	c.transition(ctx, func(ctx *gin.Context, id int64) (*models.Election, error) {
		return c.electionService.StopElection(ctx.Request.Context(), id)
	})
}

// EndElection moves an election to its terminal state
// @Summary End an election
// @Description Ends the election. Ending an ended election returns it unchanged.
// @Tags elections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Election ID"
// @Param request body dto.TransitionRequest false "Reason for ending"
// @Success 200 {object} dto.APIResponse{data=dto.ElectionResponse} "Election ended"
// @Failure 404 {object} dto.ErrorResponse "Election not found"
// @Router /elections/{id}/end [post]
func (c *ElectionController) EndElection(ctx *gin.Context) {
	var req dto.TransitionRequest
	if ctx.Request.ContentLength > 0 && !middleware.BindJSON(ctx, &req) {
		return
	}
	c.transition(ctx, func(ctx *gin.Context, id int64) (*models.Election, error) {
		return c.electionService.EndElection(ctx.Request.Context(), id, req.Reason)
	})
}
