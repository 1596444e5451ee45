package relay

import (
	"encoding/json"
	"sync"

	"github.com/MONGU38/kkokko-project/internal/telemetry/logger"
	"github.com/MONGU38/kkokko-project/internal/telemetry/metric"
)

// Hub tracks chat rooms and fans frames out to their members.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}

	log     logger.Logger
	metrics *metric.Metrics
}

// NewHub creates an empty Hub. The metrics argument may be nil.
func NewHub(log logger.Logger, metrics *metric.Metrics) *Hub {
	if log == nil {
		log = logger.Default()
	}
	return &Hub{
		rooms:   make(map[string]map[*Client]struct{}),
		log:     log.With("component", "relay"),
		metrics: metrics,
	}
}

// join places the client in the room, removing it from a previous room
// if it re-joins.
func (h *Hub) join(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c.room != "" && c.room != room {
		h.leaveLocked(c)
	}
	c.room = room

	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		h.rooms[room] = members
		if h.metrics != nil {
			h.metrics.RelayRoomOpened()
		}
	}
	members[c] = struct{}{}
	h.log.Debug("client joined room", "room", room, "members", len(members))
}

// leave removes the client from its room and closes its send channel.
func (h *Hub) leave(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(c)

	c.closeOnce.Do(func() { close(c.send) })
}

func (h *Hub) leaveLocked(c *Client) {
	members, ok := h.rooms[c.room]
	if !ok {
		return
	}
	if _, member := members[c]; !member {
		return
	}
	delete(members, c)
	if len(members) == 0 {
		delete(h.rooms, c.room)
		if h.metrics != nil {
			h.metrics.RelayRoomClosed()
		}
		h.log.Debug("room closed", "room", c.room)
	}
}

// deliver fans a frame out to every member of the room except the
// sender. Slow clients are skipped rather than awaited.
func (h *Hub) deliver(room string, from *Client, f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		h.log.Error("marshal frame", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for member := range h.rooms[room] {
		if member == from {
			continue
		}
		select {
		case member.send <- data:
			if h.metrics != nil {
				h.metrics.RelayFrameDelivered()
			}
		default:
			h.log.Warn("dropping frame for slow client", "room", room)
		}
	}
}

// RoomCount returns the number of open rooms.
func (h *Hub) RoomCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}
