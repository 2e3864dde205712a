package broker

import (
	"encoding/json"
	"errors"
	"fmt"
)

// request is the wire envelope pushed onto a service queue.
type request struct {
	Pattern       Pattern         `json:"pattern"`
	CorrelationID string          `json:"correlation_id"`
	ReplyTo       string          `json:"reply_to"`
	Data          json.RawMessage `json:"data"`
}

// reply is the wire envelope pushed onto the requester's reply list.
// Exactly one of Data and Error is set.
type reply struct {
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data,omitempty"`
	Error         *RemoteError    `json:"error,omitempty"`
}

// RemoteError carries a handler failure across the process boundary with
// a stable machine-readable status and a human-readable message.
type RemoteError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote error (status %d): %s", e.Status, e.Message)
}

// ErrTimeout is returned when no reply arrives within the configured
// window. Routers map it to a 502-class response.
var ErrTimeout = errors.New("broker: request timed out")

func replyKey(queue, correlationID string) string {
	return queue + ":reply:" + correlationID
}
