package models

import "time"

const DefaultDeadlineMessage = "O prazo para fazer o pedido com esta comanda já encerrou."

// Comanda is a guest's breakfast ordering tab.
type Comanda struct {
	ID             string  `bson:"_id,omitempty" json:"id"`
	Token          string  `bson:"token" json:"token"`
	GuestName      string  `bson:"guestName" json:"guestName"`
	Cabin          string  `bson:"cabin" json:"cabin"`
	NumberOfGuests int     `bson:"numberOfGuests" json:"numberOfGuests"`
	IsActive       bool    `bson:"isActive" json:"isActive"`
	CreatedAt      Instant `bson:"createdAt" json:"createdAt"`
	HorarioLimite  Instant `bson:"horarioLimite,omitempty" json:"horarioLimite"`
	MensagemAtraso string  `bson:"mensagemAtraso,omitempty" json:"mensagemAtraso,omitempty"`
}

// ExpiredAt reports whether the ordering deadline has passed at now.
// A comanda without a deadline never expires.
func (c Comanda) ExpiredAt(now time.Time) bool {
	if c.HorarioLimite.IsZero() {
		return false
	}
	return now.After(c.HorarioLimite.Time)
}

func (c Comanda) DeadlineMessage() string {
	if c.MensagemAtraso != "" {
		return c.MensagemAtraso
	}
	return DefaultDeadlineMessage
}

// ComandaUpdate carries the fields of a partial edit. A nil pointer leaves
// the stored value untouched; ClearHorarioLimite removes the deadline.
type ComandaUpdate struct {
	GuestName          *string
	Cabin              *string
	NumberOfGuests     *int
	MensagemAtraso     *string
	HorarioLimite      *Instant
	ClearHorarioLimite bool
}

func (u ComandaUpdate) Empty() bool {
	return u.GuestName == nil && u.Cabin == nil && u.NumberOfGuests == nil &&
		u.MensagemAtraso == nil && u.HorarioLimite == nil && !u.ClearHorarioLimite
}
