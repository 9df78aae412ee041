package hub

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Server -> client events.
const (
	EventGetFriends           = "GetFriends"
	EventUpdateFriend         = "UpdateFriend"
	EventReceiveMessageThread = "ReceiveMessageThread"
	EventNewMessage           = "NewMessage"
	EventNewMessageReceived   = "NewMessageReceived"
	EventReadedMessage        = "ReadedMessage"
	EventError                = "Error"
)

// Client -> server invocations on the chat channel.
const (
	InvokeSendMessage = "SendMessage"
	InvokeReadMessage = "ReadMessage"
)

// Envelope is the wire frame for every server push.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Invocation is an inbound client frame, its payload decoded per event.
type Invocation struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// SendMessagePayload is the body of a SendMessage invocation.
type SendMessagePayload struct {
	ReceiverID int    `json:"receiverId"`
	Content    string `json:"content"`
}

// ReadMessagePayload is the body of a ReadMessage invocation.
type ReadMessagePayload struct {
	OtherID int `json:"otherId"`
}

// GroupName derives the broadcast-group key for a two-party conversation.
// Order independent: GroupName(a, b) == GroupName(b, a).
func GroupName(a, b int) string {
	if a > b {
		a, b = b, a
	}
	return strconv.Itoa(a) + "-" + strconv.Itoa(b)
}

func errorEnvelope(format string, args ...any) Envelope {
	return Envelope{Event: EventError, Data: fmt.Sprintf(format, args...)}
}
