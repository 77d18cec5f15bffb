package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"cestas/internal/models"
)

const (
	PreCheckInListLimit     = 100
	preCheckInIncompleteMsg = "Dados do pré-check-in incompletos."
	preCheckInStatusMsg     = "Status inválido."
	preCheckInNotFoundMsg   = "Pré-check-in não encontrado."
)

type SubmitPreCheckInInput struct {
	Guests       []interface{} `json:"guests" validate:"required,min=1"`
	LeadGuestCPF string        `json:"leadGuestCpf" validate:"required"`
	// Extra carries the rest of the guest form verbatim.
	Extra map[string]interface{} `json:"-"`
}

type UpdatePreCheckInStatusInput struct {
	Status models.PreCheckInStatus `json:"status" validate:"required,oneof=recebido concluido arquivado"`
}

// Notifier is told about every accepted pre-check-in.
type Notifier interface {
	NotifyPreCheckIn(ctx context.Context, preCheckIn models.PreCheckIn) error
}

type PreCheckInService struct {
	store    PreCheckInStore
	notifier Notifier
	Now      func() time.Time
}

// NewPreCheckInService builds the intake. notifier may be nil.
func NewPreCheckInService(store PreCheckInStore, notifier Notifier) *PreCheckInService {
	return &PreCheckInService{store: store, notifier: notifier, Now: time.Now}
}

func (s *PreCheckInService) Submit(ctx context.Context, input SubmitPreCheckInInput) (string, error) {
	input.LeadGuestCPF = strings.TrimSpace(input.LeadGuestCPF)
	if err := checkInput(input, preCheckInIncompleteMsg); err != nil {
		return "", err
	}

	extra := make(map[string]interface{}, len(input.Extra))
	for key, value := range input.Extra {
		switch key {
		case "id", "_id", "guests", "leadGuestCpf", "status", "createdAt":
			continue
		}
		extra[key] = value
	}

	preCheckIn := models.PreCheckIn{
		Guests:       input.Guests,
		LeadGuestCPF: input.LeadGuestCPF,
		Status:       models.PreCheckInReceived,
		CreatedAt:    models.NewInstant(s.Now()),
		Extra:        extra,
	}
	if err := s.store.InsertPreCheckIn(ctx, &preCheckIn); err != nil {
		return "", internal("submit pre-check-in", err)
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyPreCheckIn(ctx, preCheckIn); err != nil {
			log.Printf("[PRE-CHECK-IN] [WARN] notification for %s failed: %v", preCheckIn.ID, err)
		}
	}
	return preCheckIn.ID, nil
}

// ListRecent returns the newest pre-check-ins first.
func (s *PreCheckInService) ListRecent(ctx context.Context) ([]models.PreCheckIn, error) {
	items, err := s.store.ListPreCheckIns(ctx, PreCheckInListLimit)
	if err != nil {
		return nil, internal("list pre-check-ins", err)
	}
	return items, nil
}

// UpdateStatus moves a pre-check-in to any status of the workflow; the order
// of transitions is not enforced.
func (s *PreCheckInService) UpdateStatus(ctx context.Context, rawID string, input UpdatePreCheckInStatusInput) error {
	input.Status = models.PreCheckInStatus(strings.TrimSpace(string(input.Status)))
	if err := checkInput(input, preCheckInStatusMsg); err != nil {
		return err
	}
	id, err := requireID(rawID, "O ID do pré-check-in é obrigatório.")
	if err != nil {
		return err
	}

	err = s.store.UpdatePreCheckInStatus(ctx, id, input.Status)
	if errors.Is(err, models.ErrNotFound) {
		return &NotFoundError{Message: preCheckInNotFoundMsg}
	}
	if err != nil {
		return internal("update pre-check-in status", err)
	}
	return nil
}
