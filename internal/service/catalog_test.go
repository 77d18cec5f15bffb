package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"cestas/internal/database/memstore"
	"cestas/internal/models"
	"cestas/internal/service"
)

func newCatalogService(store *memstore.Store) *service.CatalogService {
	return service.NewCatalogService(store, store, store)
}

func TestCabins(t *testing.T) {
	svc := newCatalogService(memstore.New())
	ctx := context.Background()

	_, err := svc.CreateCabin(ctx, service.CabinInput{Name: "Ipê"})
	requireValidation(t, err)

	cabin, err := svc.CreateCabin(ctx, service.CabinInput{Name: "Ipê", Capacity: 4})
	require.NoError(t, err)

	capacity := 6
	updated, err := svc.UpdateCabin(ctx, cabin.ID, service.UpdateCabinInput{Capacity: &capacity})
	require.NoError(t, err)
	require.Equal(t, 6, updated.Capacity)
	require.Equal(t, "Ipê", updated.Name)

	zero := 0
	_, err = svc.UpdateCabin(ctx, cabin.ID, service.UpdateCabinInput{Capacity: &zero})
	requireValidation(t, err)

	require.NoError(t, svc.DeleteCabin(ctx, cabin.ID))
	requireNotFound(t, svc.DeleteCabin(ctx, cabin.ID))

	cabins, err := svc.ListCabins(ctx)
	require.NoError(t, err)
	require.Empty(t, cabins)
}

func TestLocations_Hierarchy(t *testing.T) {
	svc := newCatalogService(memstore.New())
	ctx := context.Background()

	brasil, err := svc.CreateCountry(ctx, service.CountryInput{Name: "Brasil"})
	require.NoError(t, err)
	minas, err := svc.CreateState(ctx, service.StateInput{Name: "Minas Gerais", CountryID: brasil.ID})
	require.NoError(t, err)
	_, err = svc.CreateCity(ctx, service.CityInput{Name: "Tiradentes", StateID: minas.ID})
	require.NoError(t, err)

	_, err = svc.CreateState(ctx, service.StateInput{Name: "Sem país"})
	requireValidation(t, err)
	_, err = svc.ListStates(ctx, "")
	requireValidation(t, err)
	_, err = svc.ListCities(ctx, "")
	requireValidation(t, err)

	states, err := svc.ListStates(ctx, brasil.ID)
	require.NoError(t, err)
	require.Len(t, states, 1)

	cities, err := svc.ListCities(ctx, minas.ID)
	require.NoError(t, err)
	require.Len(t, cities, 1)
	require.Equal(t, "Tiradentes", cities[0].Name)

	cities, err = svc.ListCities(ctx, "other")
	require.NoError(t, err)
	require.Empty(t, cities)
}

func TestSettings_MergeKeepsOtherFields(t *testing.T) {
	svc := newCatalogService(memstore.New())
	ctx := context.Background()

	empty, err := svc.Settings(ctx, "app")
	require.NoError(t, err)
	require.Empty(t, empty)

	_, err = svc.MergeSettings(ctx, "app", models.Settings{"logoUrl": "https://cdn/logo.png", "primaryColor": "#335533"})
	require.NoError(t, err)
	merged, err := svc.MergeSettings(ctx, "APP", models.Settings{"primaryColor": "#000000", "_id": "ignored"})
	require.NoError(t, err)
	require.Equal(t, models.Settings{"logoUrl": "https://cdn/logo.png", "primaryColor": "#000000"}, merged)

	_, err = svc.MergeSettings(ctx, "geral", models.Settings{})
	requireValidation(t, err)

	_, err = svc.Settings(ctx, "secrets")
	requireNotFound(t, err)
}
