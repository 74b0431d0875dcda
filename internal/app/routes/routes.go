package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campus-election/internal/app/controllers"
	"github.com/yigit/campus-election/internal/app/models"
	"github.com/yigit/campus-election/internal/middleware"
	"github.com/yigit/campus-election/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	electionController *controllers.ElectionController,
	ballotController *controllers.BallotController,
	resultController *controllers.ResultController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// Liveness probes
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	// API version group
	v1 := router.Group("/api/v1")

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	// Election reads, results and countdown (any role)
	elections := authenticated.Group("/elections")
	{
		elections.GET("", electionController.ListElections)
		elections.GET("/active", electionController.GetActiveElection)
		elections.GET("/active/results", resultController.GetLiveResults)
		elections.GET("/:id", electionController.GetElection)
		elections.GET("/:id/results", resultController.GetResults)
		elections.GET("/:id/results/ws", wsHandler.HandleConnection)
		elections.GET("/:id/countdown", resultController.GetCountdown)
	}

	// Election management (admin only)
	electionsAdmin := authenticated.Group("/elections")
	electionsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
	{
		electionsAdmin.POST("", electionController.CreateElection)
		electionsAdmin.PUT("/:id", electionController.UpdateElection)
		electionsAdmin.DELETE("/:id", electionController.DeleteElection)
		electionsAdmin.POST("/:id/start", electionController.StartElection)
		electionsAdmin.POST("/:id/pause", electionController.PauseElection)
		electionsAdmin.POST("/:id/resume", electionController.ResumeElection)
		electionsAdmin.POST("/:id/stop", electionController.StopElection)
		electionsAdmin.POST("/:id/end", electionController.EndElection)
	}

	// Ballots (voters only)
	voters := authenticated.Group("")
	voters.Use(authMiddleware.RoleRequired(models.RoleVoter))
	{
		voters.POST("/ballots", ballotController.SubmitBallot)
		voters.GET("/elections/:id/my-votes", ballotController.GetMyVotes)
		voters.GET("/elections/:id/positions/:positionId/eligibility", ballotController.CheckEligibility)
	}
}
