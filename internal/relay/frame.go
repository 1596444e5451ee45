package relay

// Frame type identifiers.
const (
	FrameJoinChat       = "join-chat"
	FrameSendMessage    = "send-message"
	FrameReceiveMessage = "receive-message"
	FrameError          = "error"
)

// Frame is the relay wire format. One JSON object per WebSocket text
// message; Type selects which fields are meaningful.
type Frame struct {
	Type string `json:"type"`

	// join-chat and send-message carry the pair being chatted.
	ParticipantID1 string `json:"participant_id_1,omitempty"`
	ParticipantID2 string `json:"participant_id_2,omitempty"`

	// send-message and receive-message carry the payload.
	Message string `json:"message,omitempty"`
	Sender  string `json:"sender,omitempty"`

	// receive-message carries the relay-side timestamp (Unix ms).
	Timestamp int64 `json:"timestamp,omitempty"`

	// error frames carry a reason.
	Reason string `json:"reason,omitempty"`
}
