package events

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/unogame-go/internal/model"
)

// Hub fans session events out to the SSE clients watching one channel.
// It is the delivery half of the render sink: the engine publishes
// "something changed, re-render" signals and clients fetch fresh state.
type Hub struct {
	channel model.ChannelID
	clients map[*Client]bool
	mu      sync.RWMutex
	logger  *slog.Logger

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
}

// NewHub creates a new Hub for a channel
func NewHub(channel model.ChannelID, logger *slog.Logger) *Hub {
	return &Hub{
		channel:    channel,
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("channel", string(channel))),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Debug("event client registered",
				slog.String("player_id", string(client.playerID)))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.mu.Unlock()
				h.logger.Debug("event client unregistered",
					slog.String("player_id", string(client.playerID)),
					slog.Duration("connection_duration", time.Since(client.connectedAt)))
			} else {
				h.mu.Unlock()
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					h.logger.Warn("event dropped - client buffer full",
						slog.String("player_id", string(client.playerID)))
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast sends a message to all clients
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("event broadcast dropped - hub buffer full")
	}
}

// BroadcastEvent sends an SSE event with a name and data
func (h *Hub) BroadcastEvent(eventName, data string) {
	h.Broadcast(formatSSEMessage(eventName, data))
}

// Close shuts down the hub
func (h *Hub) Close() {
	close(h.done)
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// formatSSEMessage formats an SSE message; each data line needs its own
// "data: " prefix per the SSE wire format.
func formatSSEMessage(eventName, data string) []byte {
	msg := "event: " + eventName + "\n"
	for _, line := range splitLines(data) {
		msg += "data: " + line + "\n"
	}
	msg += "\n"
	return []byte(msg)
}

func splitLines(s string) []string {
	var lines []string
	var current string
	for _, r := range s {
		if r == '\n' {
			lines = append(lines, current)
			current = ""
		} else if r != '\r' {
			current += string(r)
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}

// HubManager holds one hub per channel with a live session
type HubManager struct {
	hubs   map[model.ChannelID]*Hub
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:   make(map[model.ChannelID]*Hub),
		logger: logger.With(slog.String("component", "events")),
	}
}

// GetOrCreateHub returns the hub for a channel, creating one if needed
func (m *HubManager) GetOrCreateHub(channel model.ChannelID) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[channel]; ok {
		return hub
	}

	hub := NewHub(channel, m.logger)
	m.hubs[channel] = hub
	go hub.Run()
	return hub
}

// GetHub returns the hub for a channel, or nil if none exists
func (m *HubManager) GetHub(channel model.ChannelID) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[channel]
}

// RemoveHub removes and closes a channel's hub
func (m *HubManager) RemoveHub(channel model.ChannelID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[channel]; ok {
		hub.Close()
		delete(m.hubs, channel)
	}
}

// CleanupEmptyHubs removes hubs with no clients
func (m *HubManager) CleanupEmptyHubs() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for channel, hub := range m.hubs {
		if hub.ClientCount() == 0 {
			hub.Close()
			delete(m.hubs, channel)
		}
	}
}
