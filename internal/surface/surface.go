// Package surface is the browser-backed render engine. Each connected
// browser tab is a display surface; mounts, destroys, highlights and camera
// moves are broadcast to all of them and taps flow back over the same
// WebSocket.
package surface

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"eunify/internal/domain"
	"eunify/internal/render"
)

// Message ops
const (
	OpMount     = "mount"
	OpDestroy   = "destroy"
	OpHighlight = "highlight"
	OpCamera    = "camera"
	OpTap       = "tap"
)

// Message is the envelope exchanged with browsers
type Message struct {
	Op        string           `json:"op"`
	Instance  string           `json:"instance,omitempty"`
	Spec      *render.Spec     `json:"spec,omitempty"`
	Selection *SelectionRef    `json:"selection,omitempty"`
	Command   string           `json:"command,omitempty"`
	Target    render.TapTarget `json:"target,omitempty"`
	ID        string           `json:"id,omitempty"`
}

// SelectionRef names the highlighted element
type SelectionRef struct {
	Kind domain.SelectionKind `json:"kind"`
	ID   string               `json:"id,omitempty"`
}

// Hub is a render.Engine that draws on every connected browser
type Hub struct {
	logger   *zap.SugaredLogger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	current *instance
}

// NewHub creates a surface hub
func NewHub(logger *zap.SugaredLogger) *Hub {
	return &Hub{
		logger: logger.Named("surface"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// Mount implements render.Engine
func (h *Hub) Mount(ctx context.Context, spec render.Spec) (render.Instance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	inst := &instance{id: uuid.NewString(), hub: h, spec: spec}

	h.mu.Lock()
	h.current = inst
	h.mu.Unlock()

	h.broadcast(Message{Op: OpMount, Instance: inst.id, Spec: &inst.spec})
	h.logger.Debugw("Mounted instance", "instance", inst.id, "elements", len(spec.Elements))
	return inst, nil
}

// Run blocks until ctx is done, then disconnects every surface
func (h *Hub) Run(ctx context.Context) error {
	<-ctx.Done()
	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()
	for _, c := range clients {
		c.close()
	}
	return nil
}

// ClientCount returns the number of connected surfaces
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and attaches a new surface
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnw("WebSocket upgrade failed", "error", err)
		return
	}

	c := &client{
		id:   uuid.NewString(),
		hub:  h,
		conn: conn,
		send: make(chan []byte, 64),
	}

	// replay the current mount before the client can see broadcasts
	h.mu.Lock()
	if h.current != nil {
		for _, m := range h.current.replay() {
			if data, err := json.Marshal(m); err == nil {
				c.send <- data
			}
		}
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.logger.Infow("Surface connected", "client", c.id, "remote", r.RemoteAddr)

	go c.writePump()
	go c.readPump()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		h.logger.Infow("Surface disconnected", "client", c.id)
	}
}

func (h *Hub) broadcast(m Message) {
	data, err := json.Marshal(m)
	if err != nil {
		h.logger.Errorw("Failed to encode surface message", "op", m.Op, "error", err)
		return
	}

	h.mu.Lock()
	var slow []*client
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.Unlock()

	for _, c := range slow {
		h.logger.Warnw("Dropping slow surface", "client", c.id)
		c.close()
	}
}

// dispatch routes a tap to the current instance. Taps addressed to any
// other instance are stale and dropped.
func (h *Hub) dispatch(m Message) {
	if m.Op != OpTap {
		return
	}
	h.mu.Lock()
	cur := h.current
	h.mu.Unlock()

	if cur == nil || cur.id != m.Instance {
		h.logger.Debugw("Dropping tap for stale instance", "instance", m.Instance)
		return
	}
	cur.deliver(render.Tap{Target: m.Target, ID: m.ID})
}

func (h *Hub) release(inst *instance) {
	h.mu.Lock()
	if h.current == inst {
		h.current = nil
	}
	h.mu.Unlock()
	h.broadcast(Message{Op: OpDestroy, Instance: inst.id})
}
