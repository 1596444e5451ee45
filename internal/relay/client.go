package relay

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MONGU38/kkokko-project/internal/core/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The relay carries no credentials and rooms are opaque ID pairs;
	// all origins are accepted.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Client is one WebSocket connection attached to the hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	// room is managed by the hub while holding its lock.
	room string

	closeOnce sync.Once
}

// ServeWS upgrades the request and runs the client pumps.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	if h.metrics != nil {
		h.metrics.RelayClientConnected()
	}

	go c.writePump()
	c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.leave(c)
		c.conn.Close()
		if c.hub.metrics != nil {
			c.hub.metrics.RelayClientDisconnected()
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Debug("client read error", "error", err)
			}
			return
		}

		var f Frame
		if err := json.Unmarshal(data, &f); err != nil {
			c.reply(Frame{Type: FrameError, Reason: "malformed frame"})
			continue
		}
		c.handle(f)
	}
}

func (c *Client) handle(f Frame) {
	switch f.Type {
	case FrameJoinChat:
		if f.ParticipantID1 == "" || f.ParticipantID2 == "" {
			c.reply(Frame{Type: FrameError, Reason: "both participant ids are required"})
			return
		}
		c.hub.join(c, domain.RoomKey(f.ParticipantID1, f.ParticipantID2))

	case FrameSendMessage:
		if c.room == "" {
			c.reply(Frame{Type: FrameError, Reason: "join a chat first"})
			return
		}
		c.hub.deliver(c.room, c, Frame{
			Type:      FrameReceiveMessage,
			Message:   f.Message,
			Sender:    f.Sender,
			Timestamp: time.Now().UnixMilli(),
		})

	default:
		c.reply(Frame{Type: FrameError, Reason: "unknown frame type"})
	}
}

// reply queues a frame to this client only.
func (c *Client) reply(f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
