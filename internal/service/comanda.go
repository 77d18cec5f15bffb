package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cestas/internal/models"
)

const (
	maxTokenAttempts    = 5
	comandaInvalidMsg   = "Comanda inválida ou já utilizada."
	comandaRequiredMsg  = "Nome do hóspede, cabana e número de hóspedes são obrigatórios."
	comandaNotFoundMsg  = "Comanda não encontrada."
	comandaNoChangesMsg = "Nenhum campo para atualizar."
)

type CreateComandaInput struct {
	GuestName      string          `json:"guestName" validate:"required"`
	Cabin          string          `json:"cabin" validate:"required"`
	NumberOfGuests int             `json:"numberOfGuests" validate:"required,gt=0"`
	HorarioLimite  *models.Instant `json:"horarioLimite"`
	MensagemAtraso string          `json:"mensagemAtraso"`
}

type UpdateComandaInput struct {
	GuestName      *string                `json:"guestName"`
	Cabin          *string                `json:"cabin"`
	NumberOfGuests *int                   `json:"numberOfGuests"`
	MensagemAtraso *string                `json:"mensagemAtraso"`
	HorarioLimite  models.NullableInstant `json:"horarioLimite"`
}

// ComandaService issues and validates guest ordering tabs.
type ComandaService struct {
	store         ComandaStore
	GenerateToken TokenGenerator
	Now           func() time.Time
}

func NewComandaService(store ComandaStore) *ComandaService {
	return &ComandaService{store: store, GenerateToken: GenerateToken, Now: time.Now}
}

func (s *ComandaService) Create(ctx context.Context, input CreateComandaInput) (models.Comanda, error) {
	input.GuestName = strings.TrimSpace(input.GuestName)
	input.Cabin = strings.TrimSpace(input.Cabin)
	if err := checkInput(input, comandaRequiredMsg); err != nil {
		return models.Comanda{}, err
	}

	comanda := models.Comanda{
		GuestName:      input.GuestName,
		Cabin:          input.Cabin,
		NumberOfGuests: input.NumberOfGuests,
		IsActive:       true,
		CreatedAt:      models.NewInstant(s.Now()),
		MensagemAtraso: strings.TrimSpace(input.MensagemAtraso),
	}
	if input.HorarioLimite != nil {
		comanda.HorarioLimite = *input.HorarioLimite
	}

	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		token := strings.ToUpper(s.GenerateToken(TokenLength))

		_, err := s.store.FindActiveComandaByToken(ctx, token)
		if err == nil {
			continue
		}
		if !errors.Is(err, models.ErrNotFound) {
			return models.Comanda{}, internal("create comanda", err)
		}

		comanda.Token = token
		err = s.store.InsertComanda(ctx, &comanda)
		if errors.Is(err, models.ErrDuplicateKey) {
			continue
		}
		if err != nil {
			return models.Comanda{}, internal("create comanda", err)
		}
		return comanda, nil
	}

	return models.Comanda{}, internal("create comanda", fmt.Errorf("no free token after %d attempts", maxTokenAttempts))
}

// ValidateToken resolves a guest-typed token to its active comanda. The
// lookup is case-insensitive; an active comanda past its deadline yields
// ExpiredError rather than NotFoundError.
func (s *ComandaService) ValidateToken(ctx context.Context, raw string) (models.Comanda, error) {
	token := strings.ToUpper(strings.TrimSpace(raw))
	if token == "" {
		return models.Comanda{}, &NotFoundError{Message: comandaInvalidMsg}
	}

	comanda, err := s.store.FindActiveComandaByToken(ctx, token)
	if errors.Is(err, models.ErrNotFound) {
		return models.Comanda{}, &NotFoundError{Message: comandaInvalidMsg}
	}
	if err != nil {
		return models.Comanda{}, internal("validate token", err)
	}

	if comanda.ExpiredAt(s.Now()) {
		return models.Comanda{}, &ExpiredError{Message: comanda.DeadlineMessage()}
	}
	return comanda, nil
}

func (s *ComandaService) List(ctx context.Context) ([]models.Comanda, error) {
	comandas, err := s.store.ListComandas(ctx)
	if err != nil {
		return nil, internal("list comandas", err)
	}
	return comandas, nil
}

func (s *ComandaService) Update(ctx context.Context, rawID string, input UpdateComandaInput) (models.Comanda, error) {
	id, err := requireID(rawID, "O ID da comanda é obrigatório.")
	if err != nil {
		return models.Comanda{}, err
	}

	update := models.ComandaUpdate{
		GuestName:      trimPtr(input.GuestName),
		Cabin:          trimPtr(input.Cabin),
		NumberOfGuests: input.NumberOfGuests,
		MensagemAtraso: trimPtr(input.MensagemAtraso),
	}
	if input.HorarioLimite.Set {
		if input.HorarioLimite.Value.IsZero() {
			update.ClearHorarioLimite = true
		} else {
			value := input.HorarioLimite.Value
			update.HorarioLimite = &value
		}
	}

	var details []string
	if update.GuestName != nil && *update.GuestName == "" {
		details = append(details, "guestName is required")
	}
	if update.Cabin != nil && *update.Cabin == "" {
		details = append(details, "cabin is required")
	}
	if update.NumberOfGuests != nil && *update.NumberOfGuests <= 0 {
		details = append(details, "numberOfGuests is invalid")
	}
	if len(details) > 0 {
		return models.Comanda{}, invalid(comandaRequiredMsg, details...)
	}
	if update.Empty() {
		return models.Comanda{}, invalid(comandaNoChangesMsg)
	}

	updated, err := s.store.UpdateComanda(ctx, id, update)
	if errors.Is(err, models.ErrNotFound) {
		return models.Comanda{}, &NotFoundError{Message: comandaNotFoundMsg}
	}
	if err != nil {
		return models.Comanda{}, internal("update comanda", err)
	}
	return updated, nil
}
