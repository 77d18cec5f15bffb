package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPreCheckInJSONFlattensExtraFields(t *testing.T) {
	preCheckIn := PreCheckIn{
		ID:           "p1",
		Guests:       []interface{}{map[string]interface{}{"name": "Ana"}},
		LeadGuestCPF: "12345678900",
		Status:       PreCheckInReceived,
		CreatedAt:    NewInstant(time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)),
		Extra:        map[string]interface{}{"arrivalTime": "14:00", "id": "spoofed"},
	}

	raw, err := json.Marshal(preCheckIn)
	if err != nil {
		t.Fatalf("marshal returned error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	if decoded["arrivalTime"] != "14:00" {
		t.Fatalf("expected extra field to be flattened, got %v", decoded)
	}
	if decoded["id"] != "p1" {
		t.Fatalf("known fields must win over extra ones, got id=%v", decoded["id"])
	}
	if decoded["status"] != "recebido" || decoded["createdAt"] != "2025-03-14T12:00:00.000Z" {
		t.Fatalf("unexpected document %v", decoded)
	}
}

func TestComandaDeadline(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	if (Comanda{}).ExpiredAt(now) {
		t.Fatal("comanda without deadline must never expire")
	}
	late := Comanda{HorarioLimite: NewInstant(now.Add(-time.Second))}
	if !late.ExpiredAt(now) {
		t.Fatal("expected comanda past its deadline to be expired")
	}
	if late.DeadlineMessage() != DefaultDeadlineMessage {
		t.Fatalf("unexpected default message %q", late.DeadlineMessage())
	}
	late.MensagemAtraso = "Encerrado às 20h."
	if late.DeadlineMessage() != "Encerrado às 20h." {
		t.Fatalf("unexpected custom message %q", late.DeadlineMessage())
	}
}

func TestComandaJSONFields(t *testing.T) {
	comanda := Comanda{
		ID:             "c1",
		Token:          "AB12CD",
		GuestName:      "Ana",
		Cabin:          "Ipê",
		NumberOfGuests: 2,
		IsActive:       true,
		CreatedAt:      NewInstant(time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)),
	}

	raw, err := json.Marshal(comanda)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	want := []string{"id", "token", "guestName", "cabin", "numberOfGuests", "isActive", "createdAt", "horarioLimite"}
	if len(out) != len(want) {
		t.Fatalf("expected %d fields, got %v", len(want), out)
	}
	for _, key := range want {
		if _, ok := out[key]; !ok {
			t.Fatalf("missing field %q in %s", key, raw)
		}
	}
	if out["horarioLimite"] != nil {
		t.Fatalf("expected null deadline, got %v", out["horarioLimite"])
	}
}
