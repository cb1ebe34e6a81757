package ws

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Envelope is the wire shape of every realtime message, both directions.
// Client->server: join_project{projectId}, ai_chat{projectId, content}.
// Server->client: ai_typing{isTyping}, ai_message{content}.
type Envelope struct {
	Type      string `json:"type"`
	ProjectID string `json:"projectId,omitempty"`
	Content   string `json:"content,omitempty"`
	IsTyping  bool   `json:"isTyping,omitempty"`
}

// Message types on the realtime channel.
const (
	TypeJoinProject = "join_project"
	TypeAIChat      = "ai_chat"
	TypeAITyping    = "ai_typing"
	TypeAIMessage   = "ai_message"
)

type subscription struct {
	client    *Client
	projectID string
}

type outbound struct {
	projectID string
	data      []byte
}

// Hub fans messages out to the sockets subscribed to a project. Delivery is
// best-effort: a client whose send buffer is full is dropped. There is no
// ordering guarantee beyond send order from a single publisher.
type Hub struct {
	clients map[*Client]bool
	rooms   map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	join       chan subscription
	broadcast  chan outbound

	// ackDelay is how long the hub "types" before acknowledging an ai_chat
	// message on the realtime channel.
	ackDelay time.Duration

	logger zerolog.Logger
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan subscription),
		broadcast:  make(chan outbound, 64),
		ackDelay:   2 * time.Second,
		logger:     log.With().Str("serviceName", "wsHub").Logger(),
	}
}

// Run owns all room state. It must run in its own goroutine for the lifetime
// of the server; every other method communicates with it over channels.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			// Connected but roomless until a join_project message arrives.
			h.clients[client] = true

		case client := <-h.unregister:
			if h.clients[client] {
				delete(h.clients, client)
				h.leave(client)
				close(client.send)
			}

		case sub := <-h.join:
			h.leave(sub.client)
			if h.rooms[sub.projectID] == nil {
				h.rooms[sub.projectID] = make(map[*Client]bool)
			}
			h.rooms[sub.projectID][sub.client] = true
			sub.client.projectID = sub.projectID
			h.logger.Debug().Str("projectID", sub.projectID).Msg("Client joined project")

		case msg := <-h.broadcast:
			for client := range h.rooms[msg.projectID] {
				select {
				case client.send <- msg.data:
				default:
					// Slow consumer: drop it rather than block the hub.
					delete(h.clients, client)
					h.leave(client)
					close(client.send)
				}
			}
		}
	}
}

func (h *Hub) leave(c *Client) {
	if c.projectID == "" {
		return
	}
	if room, ok := h.rooms[c.projectID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, c.projectID)
		}
	}
	c.projectID = ""
}

// NotifyTyping broadcasts the AI typing indicator to a project's subscribers.
func (h *Hub) NotifyTyping(projectID string, isTyping bool) {
	h.send(projectID, Envelope{Type: TypeAITyping, IsTyping: isTyping})
}

// NotifyMessage broadcasts an AI chat message to a project's subscribers.
func (h *Hub) NotifyMessage(projectID string, content string) {
	h.send(projectID, Envelope{Type: TypeAIMessage, Content: content})
}

func (h *Hub) send(projectID string, env Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to marshal realtime envelope")
		return
	}
	h.broadcast <- outbound{projectID: projectID, data: data}
}

// handleAIChat acknowledges a realtime chat message: typing on, then after
// the ack delay typing off plus a progress note. The heavy lifting happens
// over the HTTP generate endpoint; this channel only signals liveness.
func (h *Hub) handleAIChat(projectID string) {
	h.NotifyTyping(projectID, true)
	time.AfterFunc(h.ackDelay, func() {
		h.NotifyTyping(projectID, false)
		h.NotifyMessage(projectID, "I'm working on your request...")
	})
}
