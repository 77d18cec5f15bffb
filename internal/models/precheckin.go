package models

import "encoding/json"

type PreCheckInStatus string

const (
	PreCheckInReceived  PreCheckInStatus = "recebido"
	PreCheckInCompleted PreCheckInStatus = "concluido"
	PreCheckInArchived  PreCheckInStatus = "arquivado"
)

func (s PreCheckInStatus) Valid() bool {
	switch s {
	case PreCheckInReceived, PreCheckInCompleted, PreCheckInArchived:
		return true
	}
	return false
}

// PreCheckIn is stored verbatim: anything the guest form sends beyond the
// guest list and lead CPF lands in Extra and is echoed back flattened.
type PreCheckIn struct {
	ID           string                 `bson:"_id,omitempty"`
	Guests       []interface{}          `bson:"guests"`
	LeadGuestCPF string                 `bson:"leadGuestCpf"`
	Status       PreCheckInStatus       `bson:"status"`
	CreatedAt    Instant                `bson:"createdAt"`
	Extra        map[string]interface{} `bson:",inline"`
}

func (p PreCheckIn) MarshalJSON() ([]byte, error) {
	out := flatten(p.Extra)
	out["id"] = p.ID
	out["guests"] = p.Guests
	out["leadGuestCpf"] = p.LeadGuestCPF
	out["status"] = p.Status
	out["createdAt"] = p.CreatedAt
	return json.Marshal(out)
}
