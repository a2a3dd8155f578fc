package logbuf

import "encoding/json"

// unserializableMarker replaces a payload that cannot survive a JSON round
// trip.
type unserializableMarker struct {
	Unserializable bool   `json:"unserializable"`
	Message        string `json:"message"`
}

// truncatedMarker replaces a payload whose serialized form exceeds the
// preview budget.
type truncatedMarker struct {
	Truncated      bool   `json:"truncated"`
	Preview        string `json:"preview"`
	OriginalLength int    `json:"original_length"`
}

// Sanitize bounds an arbitrary payload for storage. The value is deep-copied
// via a serialize round trip so later mutation of the caller's object cannot
// corrupt stored history. A payload that cannot be serialized becomes an
// unserializable marker; one whose serialized form exceeds maxPreviewBytes
// becomes a truncated marker carrying the first maxPreviewBytes bytes.
//
// Sanitize never fails: ingestion can never be rejected because of payload
// shape. A nil payload yields nil.
func Sanitize(data any, maxPreviewBytes int) json.RawMessage {
	if data == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		m, merr := json.Marshal(unserializableMarker{Unserializable: true, Message: err.Error()})
		if merr != nil {
			return json.RawMessage(`{"unserializable":true}`)
		}
		return m
	}
	if maxPreviewBytes > 0 && len(b) > maxPreviewBytes {
		// Marshal of the preview string replaces any split UTF-8 sequence at
		// the cut point, so the marker is always valid JSON.
		m, merr := json.Marshal(truncatedMarker{Truncated: true, Preview: string(b[:maxPreviewBytes]), OriginalLength: len(b)})
		if merr != nil {
			return json.RawMessage(`{"truncated":true}`)
		}
		return m
	}
	return json.RawMessage(b)
}
