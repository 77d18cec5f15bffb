package service

import (
	"context"
	"errors"
	"strings"

	"cestas/internal/models"
)

const (
	cabinRequiredMsg     = "Nome e capacidade da cabana são obrigatórios."
	cabinNotFoundMsg     = "Cabana não encontrada."
	cabinIDRequiredMsg   = "O ID da cabana é obrigatório."
	locationNameMsg      = "O nome é obrigatório."
	countryIDRequiredMsg = "O ID do país é obrigatório."
	stateIDRequiredMsg   = "O ID do estado é obrigatório."
	settingsKeyMsg       = "Configuração desconhecida."
	settingsEmptyMsg     = "Nenhum campo para atualizar."
)

type CabinInput struct {
	Name     string `json:"name" validate:"required"`
	Capacity int    `json:"capacity" validate:"required,gt=0"`
}

type UpdateCabinInput struct {
	Name     *string `json:"name"`
	Capacity *int    `json:"capacity"`
}

type CountryInput struct {
	Name string `json:"name" validate:"required"`
}

type StateInput struct {
	Name      string `json:"name" validate:"required"`
	CountryID string `json:"countryId" validate:"required"`
}

type CityInput struct {
	Name    string `json:"name" validate:"required"`
	StateID string `json:"stateId" validate:"required"`
}

// CatalogService covers the small reference collections: cabins, the
// country/state/city hierarchy and the settings documents.
type CatalogService struct {
	cabins    CabinStore
	locations LocationStore
	settings  SettingsStore
}

func NewCatalogService(cabins CabinStore, locations LocationStore, settings SettingsStore) *CatalogService {
	return &CatalogService{cabins: cabins, locations: locations, settings: settings}
}

func (s *CatalogService) ListCabins(ctx context.Context) ([]models.Cabin, error) {
	cabins, err := s.cabins.ListCabins(ctx)
	if err != nil {
		return nil, internal("list cabins", err)
	}
	return cabins, nil
}

func (s *CatalogService) CreateCabin(ctx context.Context, input CabinInput) (models.Cabin, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := checkInput(input, cabinRequiredMsg); err != nil {
		return models.Cabin{}, err
	}
	cabin := models.Cabin{Name: input.Name, Capacity: input.Capacity}
	if err := s.cabins.InsertCabin(ctx, &cabin); err != nil {
		return models.Cabin{}, internal("create cabin", err)
	}
	return cabin, nil
}

func (s *CatalogService) UpdateCabin(ctx context.Context, rawID string, input UpdateCabinInput) (models.Cabin, error) {
	id, err := requireID(rawID, cabinIDRequiredMsg)
	if err != nil {
		return models.Cabin{}, err
	}
	update := models.CabinUpdate{Name: trimPtr(input.Name), Capacity: input.Capacity}
	if update.Name != nil && *update.Name == "" {
		return models.Cabin{}, invalid(cabinRequiredMsg, "name is required")
	}
	if update.Capacity != nil && *update.Capacity <= 0 {
		return models.Cabin{}, invalid(cabinRequiredMsg, "capacity is invalid")
	}
	if update.Name == nil && update.Capacity == nil {
		return models.Cabin{}, invalid(settingsEmptyMsg)
	}

	cabin, err := s.cabins.UpdateCabin(ctx, id, update)
	if errors.Is(err, models.ErrNotFound) {
		return models.Cabin{}, &NotFoundError{Message: cabinNotFoundMsg}
	}
	if err != nil {
		return models.Cabin{}, internal("update cabin", err)
	}
	return cabin, nil
}

func (s *CatalogService) DeleteCabin(ctx context.Context, rawID string) error {
	id, err := requireID(rawID, cabinIDRequiredMsg)
	if err != nil {
		return err
	}
	err = s.cabins.DeleteCabin(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return &NotFoundError{Message: cabinNotFoundMsg}
	}
	if err != nil {
		return internal("delete cabin", err)
	}
	return nil
}

func (s *CatalogService) ListCountries(ctx context.Context) ([]models.Country, error) {
	countries, err := s.locations.ListCountries(ctx)
	if err != nil {
		return nil, internal("list countries", err)
	}
	return countries, nil
}

func (s *CatalogService) CreateCountry(ctx context.Context, input CountryInput) (models.Country, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := checkInput(input, locationNameMsg); err != nil {
		return models.Country{}, err
	}
	country := models.Country{Name: input.Name}
	if err := s.locations.InsertCountry(ctx, &country); err != nil {
		return models.Country{}, internal("create country", err)
	}
	return country, nil
}

func (s *CatalogService) ListStates(ctx context.Context, countryID string) ([]models.State, error) {
	countryID = strings.TrimSpace(countryID)
	if countryID == "" {
		return nil, invalid(countryIDRequiredMsg, "countryId is required")
	}
	states, err := s.locations.ListStates(ctx, countryID)
	if err != nil {
		return nil, internal("list states", err)
	}
	return states, nil
}

func (s *CatalogService) CreateState(ctx context.Context, input StateInput) (models.State, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.CountryID = strings.TrimSpace(input.CountryID)
	if err := checkInput(input, locationNameMsg); err != nil {
		return models.State{}, err
	}
	state := models.State{Name: input.Name, CountryID: input.CountryID}
	if err := s.locations.InsertState(ctx, &state); err != nil {
		return models.State{}, internal("create state", err)
	}
	return state, nil
}

func (s *CatalogService) ListCities(ctx context.Context, stateID string) ([]models.City, error) {
	stateID = strings.TrimSpace(stateID)
	if stateID == "" {
		return nil, invalid(stateIDRequiredMsg, "stateId is required")
	}
	cities, err := s.locations.ListCities(ctx, stateID)
	if err != nil {
		return nil, internal("list cities", err)
	}
	return cities, nil
}

func (s *CatalogService) CreateCity(ctx context.Context, input CityInput) (models.City, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.StateID = strings.TrimSpace(input.StateID)
	if err := checkInput(input, locationNameMsg); err != nil {
		return models.City{}, err
	}
	city := models.City{Name: input.Name, StateID: input.StateID}
	if err := s.locations.InsertCity(ctx, &city); err != nil {
		return models.City{}, internal("create city", err)
	}
	return city, nil
}

// Settings returns the named settings document, or an empty one if it was
// never saved.
func (s *CatalogService) Settings(ctx context.Context, key string) (models.Settings, error) {
	key, err := settingsKey(key)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.FindSettings(ctx, key)
	if errors.Is(err, models.ErrNotFound) {
		return models.Settings{}, nil
	}
	if err != nil {
		return nil, internal("find settings", err)
	}
	return settings, nil
}

// MergeSettings sets the given top-level fields and keeps all others.
func (s *CatalogService) MergeSettings(ctx context.Context, key string, fields models.Settings) (models.Settings, error) {
	key, err := settingsKey(key)
	if err != nil {
		return nil, err
	}
	delete(fields, "_id")
	delete(fields, "id")
	if len(fields) == 0 {
		return nil, invalid(settingsEmptyMsg)
	}
	merged, err := s.settings.MergeSettings(ctx, key, fields)
	if err != nil {
		return nil, internal("merge settings", err)
	}
	return merged, nil
}

func settingsKey(raw string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	switch key {
	case models.SettingsApp, models.SettingsGeneral:
		return key, nil
	}
	return "", &NotFoundError{Message: settingsKeyMsg}
}
