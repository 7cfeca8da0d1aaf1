package events

import (
	"encoding/json"
	"time"
)

// Event is the envelope pushed to SSE subscribers. Types in use:
// leads_refreshed, signals_refreshed, lead_edited, ping.
type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// MakeEvent serializes one envelope. Marshal failures of the payload
// degrade to an event without data rather than an error; a dropped
// notification is never worth failing the refresh that caused it.
func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
