package sse

import (
	"context"
	"sync"

	"frontdesk/internal/model"
)

type Client struct {
	RecipientID string
	Ch          chan model.Update
}

// Hub fans reconciler updates out to the SSE connections of one recipient.
// The reconciler stays the single owner of state; clients only observe.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan model.Update
	recipients map[string]map[*Client]struct{}
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan model.Update, 64),
		recipients: make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) Broadcast(update model.Update) {
	h.broadcast <- update
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case update := <-h.broadcast:
			h.broadcastToRecipient(update)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.recipients[client.RecipientID] == nil {
		h.recipients[client.RecipientID] = make(map[*Client]struct{})
	}
	h.recipients[client.RecipientID][client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients := h.recipients[client.RecipientID]
	if clients == nil {
		return
	}
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.recipients, client.RecipientID)
	}
}

func (h *Hub) broadcastToRecipient(update model.Update) {
	h.mu.RLock()
	clients := h.recipients[update.RecipientID]
	h.mu.RUnlock()
	for client := range clients {
		select {
		case client.Ch <- update:
		default:
			// Drop if the client is too slow.
		}
	}
}
