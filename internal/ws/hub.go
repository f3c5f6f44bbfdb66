package ws

import (
	"context"
	"log/slog"
	"sync"
)

// Hub maintains the set of active clients and routes messages.
type Hub struct {
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	Incoming   chan *ClientMessage
	mu         sync.RWMutex

	// OnMessage is called for each incoming client message.
	OnMessage func(cm *ClientMessage)
	// OnDisconnect is called when a client disconnects, before its send
	// buffer is closed.
	OnDisconnect func(client *Client)
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Incoming:   make(chan *ClientMessage, 256),
	}
}

// Run starts the hub's main loop. It returns when ctx is cancelled, after
// disconnecting every remaining client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.Register:
			h.mu.Lock()
			h.Clients[client] = true
			h.mu.Unlock()
			slog.Info("client connected", "client", client.ID, "codec", client.codec().Name())

		case client := <-h.Unregister:
			h.remove(client)

		case cm := <-h.Incoming:
			// A message can still be queued after its client unregistered.
			if !h.connected(cm.Client) {
				slog.Debug("dropping message from disconnected client", "client", cm.Client.ID)
				continue
			}
			if h.OnMessage != nil {
				h.OnMessage(cm)
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	_, ok := h.Clients[client]
	delete(h.Clients, client)
	h.mu.Unlock()
	if !ok {
		return
	}

	slog.Info("client disconnected", "client", client.ID)
	if h.OnDisconnect != nil {
		h.OnDisconnect(client)
	}
	client.closeSend()
}

func (h *Hub) connected(client *Client) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.Clients[client]
}

func (h *Hub) closeAll() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.Clients))
	for c := range h.Clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		h.remove(c)
	}
}

// Broadcast sends an envelope to all connected clients.
func (h *Hub) Broadcast(env Envelope) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.Clients {
		client.SendMessage(env)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.Clients)
}
