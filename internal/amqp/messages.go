package amqp

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// RefreshMessage asks a worker to run one refresh. It carries no budget
// data: the worker always fetches the current state.
type RefreshMessage struct {
	RequestID   string    `json:"request_id"`
	Source      string    `json:"source"`
	RequestedAt time.Time `json:"requested_at"`
}

func NewRefreshMessage(source string) *RefreshMessage {
	return &RefreshMessage{
		RequestID:   uuid.NewString(),
		Source:      source,
		RequestedAt: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RefreshMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RefreshMessageFromJSON decodes a message. A request id is mandatory.
func RefreshMessageFromJSON(data []byte) (*RefreshMessage, error) {
	var msg RefreshMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.RequestID == "" {
		return nil, errors.New("refresh message without request_id")
	}
	return &msg, nil
}
