package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// ISOLayout is the wire format used for every Instant leaving the API.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// Instant is a point in time stored as a BSON datetime and rendered as an
// ISO-8601 string. The zero Instant means "absent" and renders as null.
type Instant struct {
	time.Time
}

// NewInstant normalizes t to UTC at millisecond precision, the resolution
// of a BSON datetime.
func NewInstant(t time.Time) Instant {
	if t.IsZero() {
		return Instant{}
	}
	return Instant{Time: t.UTC().Truncate(time.Millisecond)}
}

func Now() Instant {
	return NewInstant(time.Now())
}

// ParseInstant accepts RFC 3339 with or without fractional seconds.
func ParseInstant(raw string) (Instant, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Instant{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, trimmed)
	if err != nil {
		return Instant{}, fmt.Errorf("invalid instant %q: %w", raw, err)
	}
	return NewInstant(t), nil
}

func (i Instant) String() string {
	if i.IsZero() {
		return ""
	}
	return i.UTC().Format(ISOLayout)
}

// Ptr returns nil for the zero Instant, which is handy for nullable JSON.
func (i Instant) Ptr() *Instant {
	if i.IsZero() {
		return nil
	}
	return &i
}

func (i Instant) MarshalJSON() ([]byte, error) {
	if i.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(i.String())
}

func (i *Instant) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*i = Instant{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("instant must be an ISO-8601 string: %w", err)
	}
	parsed, err := ParseInstant(raw)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// MarshalBSONValue stores the zero Instant as null so "absent" survives a
// round trip through the database.
func (i Instant) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if i.IsZero() {
		return bsontype.Null, nil, nil
	}
	return bson.MarshalValue(i.UTC())
}

// UnmarshalBSONValue never fails on unexpected types: legacy documents with
// malformed timestamps decode to the zero Instant.
func (i *Instant) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.DateTime:
		if value, ok := raw.TimeOK(); ok {
			*i = NewInstant(value)
			return nil
		}
	case bsontype.Timestamp:
		if sec, _, ok := raw.TimestampOK(); ok {
			*i = NewInstant(time.Unix(int64(sec), 0))
			return nil
		}
	case bsontype.String:
		if value, ok := raw.StringValueOK(); ok {
			if parsed, err := ParseInstant(value); err == nil {
				*i = parsed
				return nil
			}
		}
	}
	*i = Instant{}
	return nil
}

// NullableInstant distinguishes an omitted JSON field from an explicit null.
type NullableInstant struct {
	Set   bool
	Value Instant
}

func (n *NullableInstant) UnmarshalJSON(data []byte) error {
	n.Set = true
	return n.Value.UnmarshalJSON(data)
}
