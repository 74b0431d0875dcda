package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/campus-election/internal/app/models/dto"
	"github.com/yigit/campus-election/internal/pkg/apperrors"
)

// SnapshotFunc returns the current results of an election
type SnapshotFunc func(ctx context.Context, electionID int64) (interface{}, error)

// Handler for WebSocket connections
type Handler struct {
	hub      *Hub
	snapshot SnapshotFunc
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, snapshot SnapshotFunc, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:      hub,
		snapshot: snapshot,
		logger:   logger,
	}
}

func abortWithError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// HandleConnection godoc
// @Summary Subscribe to live election results
// @Description Upgrades the connection to a WebSocket that receives a results snapshot on connect and after every committed ballot or status change
// @Tags results, websocket
// @Produce json
// @Param id path int true "Election ID"
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 400 {object} dto.ErrorResponse "Invalid election ID"
// @Failure 404 {object} dto.ErrorResponse "Election not found"
// @Failure 500 {object} dto.ErrorResponse "Internal Server Error"
// @Router /elections/{id}/results/ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	electionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || electionID <= 0 {
		abortWithError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid election ID")
		return
	}

	initial, err := h.snapshot(c.Request.Context(), electionID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			abortWithError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Election not found")
			return
		}
		h.logger.Error().Err(err).Int64("electionID", electionID).Msg("Failed to load results snapshot")
		abortWithError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Failed to load results")
		return
	}
	payload, err := json.Marshal(NewMessage(MessageTypeResults, electionID, initial))
	if err != nil {
		h.logger.Error().Err(err).Int64("electionID", electionID).Msg("Failed to marshal results snapshot")
		abortWithError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Failed to load results")
		return
	}

	// userID is set by JWTAuth when the route is authenticated
	var userID int64
	if v, ok := c.Get("userID"); ok {
		userID, _ = v.(int64)
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("electionID", electionID).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:        h.hub,
		conn:       conn,
		send:       make(chan []byte, sendBuffer),
		userID:     userID,
		electionID: electionID,
		logger:     h.logger,
	}
	client.send <- payload
	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}
