package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// MessageTypeResults tags a results snapshot
const MessageTypeResults = "results"

const broadcastBuffer = 256

// Hub maintains the set of active clients and broadcasts messages to the clients
type Hub struct {
	// Registered clients organized by election ID
	clients map[int64]map[*Client]bool

	// Channel for outbound messages
	broadcast chan *Message

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Logger for Hub operations
	logger zerolog.Logger
}

// Message represents a message sent over WebSocket
type Message struct {
	// Type of message: "results"
	Type string `json:"type"`

	// Election this message belongs to
	ElectionID int64 `json:"electionId"`

	// Message payload
	Data interface{} `json:"data"`

	// Timestamp when the message was produced
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage creates a message stamped with the current time
func NewMessage(messageType string, electionID int64, data interface{}) *Message {
	return &Message{
		Type:       messageType,
		ElectionID: electionID,
		Data:       data,
		Timestamp:  time.Now(),
	}
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Message, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[int64]map[*Client]bool),
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and broadcasts until ctx is done
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// registerClient registers a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	electionID := client.electionID
	if _, ok := h.clients[electionID]; !ok {
		h.clients[electionID] = make(map[*Client]bool)
	}
	h.clients[electionID][client] = true

	h.logger.Info().
		Int64("electionID", electionID).
		Int64("userID", client.userID).
		Str("addr", client.remoteAddr()).
		Msg("Client registered")
}

// unregisterClient unregisters a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	electionID := client.electionID
	room, ok := h.clients[electionID]
	if !ok {
		return
	}
	if _, ok := room[client]; !ok {
		return
	}

	delete(room, client)
	close(client.send)

	// If no more clients watch this election, clean up
	if len(room) == 0 {
		delete(h.clients, electionID)
	}

	h.logger.Info().
		Int64("electionID", electionID).
		Int64("userID", client.userID).
		Str("addr", client.remoteAddr()).
		Msg("Client unregistered")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, room := range h.clients {
		for client := range room {
			h.removeLocked(client)
		}
	}
}

// broadcastMessage sends a message to every client watching its election
func (h *Hub) broadcastMessage(message *Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	electionID := message.ElectionID
	clients, ok := h.clients[electionID]
	if !ok {
		h.logger.Debug().
			Int64("electionID", electionID).
			Msg("No clients in election room for broadcast")
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("electionID", electionID).
			Msg("Failed to marshal message for broadcast")
		return
	}

	delivered := 0
	for client := range clients {
		select {
		case client.send <- data:
			delivered++
		default:
			// Send buffer full: the client is too slow, drop it
			h.removeLocked(client)
		}
	}

	h.logger.Debug().
		Int64("electionID", electionID).
		Str("type", message.Type).
		Int("clientCount", delivered).
		Msg("Message broadcasted to election room")
}

// Broadcast queues a message for delivery without blocking the caller.
// It reports false when the queue is full and the message was dropped.
func (h *Hub) Broadcast(message *Message) bool {
	select {
	case h.broadcast <- message:
		return true
	default:
		h.logger.Warn().
			Int64("electionID", message.ElectionID).
			Str("type", message.Type).
			Msg("Broadcast queue full, dropping message")
		return false
	}
}

// GetClientsCount returns the number of connected clients for an election
func (h *Hub) GetClientsCount(electionID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.clients[electionID]; ok {
		return len(clients)
	}
	return 0
}
