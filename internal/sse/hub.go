package sse

import (
	"context"
	"sync"
	"sync/atomic"

	"mockui/internal/domain"
	"mockui/internal/model"
	"mockui/internal/repository"
)

type Client struct {
	List string
	Ch   chan model.Change
}

type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan model.Change
	done       chan struct{}
	lists      map[string]map[*Client]struct{}
	mu         sync.RWMutex
	dropped    atomic.Uint64
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan model.Change, 64),
		done:       make(chan struct{}),
		lists:      make(map[string]map[*Client]struct{}),
	}
}

// Register and Unregister return immediately once Run has stopped.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast never blocks: store notifications are delivered on the goroutine
// that mutated the store, so a full queue drops the change instead.
func (h *Hub) Broadcast(change model.Change) {
	select {
	case h.broadcast <- change:
	default:
		h.dropped.Add(1)
	}
}

// Dropped counts changes discarded because the hub or a client was behind.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// Follow forwards every change of every list in source to the hub.
func (h *Hub) Follow(source repository.ChangeSource) (func(), error) {
	var unsubscribers []func()
	stop := func() {
		for _, unsubscribe := range unsubscribers {
			unsubscribe()
		}
	}
	for _, list := range domain.Lists {
		unsubscribe, err := source.Subscribe(list, h.Broadcast)
		if err != nil {
			stop()
			return nil, err
		}
		unsubscribers = append(unsubscribers, unsubscribe)
	}
	return stop, nil
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case change := <-h.broadcast:
			h.broadcastToList(change)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.lists[client.List] == nil {
		h.lists[client.List] = make(map[*Client]struct{})
	}
	h.lists[client.List][client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients := h.lists[client.List]
	if clients == nil {
		return
	}
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.lists, client.List)
	}
}

func (h *Hub) broadcastToList(change model.Change) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.lists[change.List] {
		select {
		case client.Ch <- change:
		default:
			h.dropped.Add(1)
		}
	}
}
