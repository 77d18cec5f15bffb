package models

import (
	"encoding/json"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func TestInstantJSON(t *testing.T) {
	at := NewInstant(time.Date(2025, 3, 14, 9, 30, 0, 123456789, time.FixedZone("BRT", -3*60*60)))

	raw, err := json.Marshal(at)
	if err != nil {
		t.Fatalf("marshal returned error: %v", err)
	}
	if string(raw) != `"2025-03-14T12:30:00.123Z"` {
		t.Fatalf("unexpected wire format %s", raw)
	}

	raw, err = json.Marshal(Instant{})
	if err != nil {
		t.Fatalf("marshal zero returned error: %v", err)
	}
	if string(raw) != "null" {
		t.Fatalf("expected zero instant to render as null, got %s", raw)
	}
}

func TestInstantUnmarshalJSON(t *testing.T) {
	var payload struct {
		Deadline Instant `json:"deadline"`
	}
	if err := json.Unmarshal([]byte(`{"deadline":"2025-03-14T20:00:00-03:00"}`), &payload); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	if !payload.Deadline.Equal(time.Date(2025, 3, 14, 23, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected instant %v", payload.Deadline)
	}

	if err := json.Unmarshal([]byte(`{"deadline":1710450000}`), &payload); err == nil {
		t.Fatal("expected numeric instant to be rejected")
	}
	if err := json.Unmarshal([]byte(`{"deadline":"amanhã"}`), &payload); err == nil {
		t.Fatal("expected malformed instant to be rejected")
	}
}

func TestNullableInstantTracksExplicitNull(t *testing.T) {
	var payload struct {
		Deadline NullableInstant `json:"deadline"`
	}
	if err := json.Unmarshal([]byte(`{}`), &payload); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	if payload.Deadline.Set {
		t.Fatal("omitted field must not be marked as set")
	}

	if err := json.Unmarshal([]byte(`{"deadline":null}`), &payload); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	if !payload.Deadline.Set || !payload.Deadline.Value.IsZero() {
		t.Fatalf("expected explicit null to be set and zero, got %+v", payload.Deadline)
	}
}

func TestInstantBSONToleratesLegacyValues(t *testing.T) {
	type doc struct {
		At Instant `bson:"at"`
	}

	cases := []struct {
		name  string
		value interface{}
		want  time.Time
	}{
		{"datetime", time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"iso string", "2025-01-02T03:04:05Z", time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"garbage string", "ontem", time.Time{}},
		{"number", int32(42), time.Time{}},
		{"null", nil, time.Time{}},
	}

	for _, tc := range cases {
		raw, err := bson.Marshal(bson.M{"at": tc.value})
		if err != nil {
			t.Fatalf("%s: marshal returned error: %v", tc.name, err)
		}
		var decoded doc
		if err := bson.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("%s: unmarshal returned error: %v", tc.name, err)
		}
		if !decoded.At.Time.Equal(tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, decoded.At.Time)
		}
	}
}

func TestInstantBSONStoresZeroAsNull(t *testing.T) {
	raw, err := bson.Marshal(struct {
		At Instant `bson:"at"`
	}{})
	if err != nil {
		t.Fatalf("marshal returned error: %v", err)
	}
	if got := bson.Raw(raw).Lookup("at").Type; got != bson.TypeNull {
		t.Fatalf("expected null, got %v", got)
	}
}
