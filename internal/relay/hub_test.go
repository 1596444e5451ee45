package relay

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MONGU38/kkokko-project/internal/telemetry/logger"
)

func newFakeClient() *Client {
	return &Client{send: make(chan []byte, 4)}
}

func TestHubJoinAndDeliver(t *testing.T) {
	h := NewHub(logger.Default(), nil)

	a := newFakeClient()
	b := newFakeClient()
	h.join(a, "room-1")
	h.join(b, "room-1")

	if h.RoomCount() != 1 {
		t.Fatalf("rooms = %d, want 1", h.RoomCount())
	}

	h.deliver("room-1", a, Frame{Type: FrameReceiveMessage, Message: "hi", Sender: "a"})

	// Sender is excluded from the fan-out.
	select {
	case <-a.send:
		t.Error("sender received its own frame")
	default:
	}

	select {
	case data := <-b.send:
		var f Frame
		if err := json.Unmarshal(data, &f); err != nil {
			t.Fatal(err)
		}
		if f.Type != FrameReceiveMessage || f.Message != "hi" || f.Sender != "a" {
			t.Errorf("frame = %+v", f)
		}
	default:
		t.Error("peer received nothing")
	}
}

func TestHubRejoinMovesRooms(t *testing.T) {
	h := NewHub(logger.Default(), nil)

	c := newFakeClient()
	h.join(c, "room-1")
	h.join(c, "room-2")

	if h.RoomCount() != 1 {
		t.Errorf("rooms = %d, want 1 (old room closed)", h.RoomCount())
	}

	h.deliver("room-1", nil, Frame{Type: FrameReceiveMessage})
	select {
	case <-c.send:
		t.Error("client still receives from the old room")
	default:
	}
}

func TestHubLeaveClosesEmptyRoom(t *testing.T) {
	h := NewHub(logger.Default(), nil)

	c := newFakeClient()
	h.join(c, "room-1")
	h.leave(c)

	if h.RoomCount() != 0 {
		t.Errorf("rooms = %d, want 0", h.RoomCount())
	}
	if _, open := <-c.send; open {
		t.Error("send channel not closed on leave")
	}
}

func relayServer(h *Hub) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.ServeWS)
	return httptest.NewServer(mux)
}

func roomMembers(h *Hub, room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

func TestRelayEndToEnd(t *testing.T) {
	h := NewHub(logger.Default(), nil)
	srv := relayServer(h)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	dial := func() *websocket.Conn {
		t.Helper()
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		return conn
	}

	alice := dial()
	defer alice.Close()
	bob := dial()
	defer bob.Close()

	join := Frame{Type: FrameJoinChat, ParticipantID1: "kkpt-b", ParticipantID2: "kkpt-a"}
	if err := alice.WriteJSON(join); err != nil {
		t.Fatal(err)
	}
	// Reversed pair resolves to the same room.
	join.ParticipantID1, join.ParticipantID2 = "kkpt-a", "kkpt-b"
	if err := bob.WriteJSON(join); err != nil {
		t.Fatal(err)
	}

	// Joins are handled by each connection's read pump; wait for both
	// to land in the room before sending.
	deadline := time.Now().Add(2 * time.Second)
	for roomMembers(h, "kkpt-a-kkpt-b") != 2 {
		if time.Now().After(deadline) {
			t.Fatalf("rooms = %d, members = %d", h.RoomCount(), roomMembers(h, "kkpt-a-kkpt-b"))
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := alice.WriteJSON(Frame{Type: FrameSendMessage, Message: "안녕", Sender: "kkpt-a"}); err != nil {
		t.Fatal(err)
	}

	bob.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Frame
	if err := bob.ReadJSON(&got); err != nil {
		t.Fatalf("bob read: %v", err)
	}
	if got.Type != FrameReceiveMessage || got.Message != "안녕" || got.Sender != "kkpt-a" {
		t.Errorf("frame = %+v", got)
	}
	if got.Timestamp == 0 {
		t.Error("timestamp not set")
	}
}

func TestMalformedFrameGetsError(t *testing.T) {
	h := NewHub(logger.Default(), nil)
	srv := relayServer(h)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{broken")); err != nil {
		t.Fatal(err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Frame
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatal(err)
	}
	if got.Type != FrameError {
		t.Errorf("frame = %+v, want error frame", got)
	}
}
