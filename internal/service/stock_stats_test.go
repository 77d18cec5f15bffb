package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cestas/internal/database/memstore"
	"cestas/internal/models"
	"cestas/internal/service"
)

func TestStockStats(t *testing.T) {
	store := memstore.New()
	svc := service.NewStockService(store)
	ctx := context.Background()

	padaria, err := svc.CreateSupplier(ctx, service.CreateSupplierInput{Name: "Padaria"})
	require.NoError(t, err)
	laticinios, err := svc.CreateSupplier(ctx, service.CreateSupplierInput{Name: "Laticínios"})
	require.NoError(t, err)
	broa, err := svc.CreateItem(ctx, service.CreateItemInput{Name: "Broa", SupplierID: padaria.ID})
	require.NoError(t, err)
	pao, err := svc.CreateItem(ctx, service.CreateItemInput{Name: "Pão de queijo", SupplierID: padaria.ID})
	require.NoError(t, err)
	queijo, err := svc.CreateItem(ctx, service.CreateItemInput{Name: "Queijo minas", SupplierID: laticinios.ID})
	require.NoError(t, err)

	submit := func(at time.Time, items models.OrderData) {
		svc.Now = clock(at)
		_, err := svc.SubmitOrder(ctx, service.SubmitStockOrderInput{Items: items})
		require.NoError(t, err)
	}
	submit(fixedNow, models.OrderData{
		padaria.ID:    {broa.ID: 3, pao.ID: 0},
		laticinios.ID: {queijo.ID: 2},
	})
	submit(fixedNow.Add(time.Hour), models.OrderData{padaria.ID: {broa.ID: 1, pao.ID: 4}})
	submit(time.Date(2025, 3, 14, 23, 59, 59, 0, time.UTC), models.OrderData{laticinios.ID: {queijo.ID: 1}})
	submit(fixedNow, models.OrderData{"fornecedor-removido": {"item-removido": 1}})
	submit(fixedNow.AddDate(0, 0, -3), models.OrderData{padaria.ID: {broa.ID: 100}})
	submit(fixedNow.AddDate(0, 0, 1), models.OrderData{padaria.ID: {broa.ID: 100}})

	stats, err := svc.Stats(ctx, "2025-03-14", "2025-03-14")
	require.NoError(t, err)
	require.Equal(t, 4, stats.TotalOrders)
	require.Equal(t, 12, stats.TotalItems)
	require.Equal(t, []service.RankedCount{
		{Name: "Broa", Value: 4},
		{Name: "Pão de queijo", Value: 4},
		{Name: "Queijo minas", Value: 3},
		{Name: "item-removido", Value: 1},
	}, stats.TopItems)
	require.Equal(t, []service.RankedCount{
		{Name: "Laticínios", Value: 2},
		{Name: "Padaria", Value: 2},
		{Name: "fornecedor-removido", Value: 1},
	}, stats.MostUsedSuppliers)
}

func TestStockStats_EmptyPeriod(t *testing.T) {
	svc := service.NewStockService(memstore.New())

	stats, err := svc.Stats(context.Background(), "2025-03-01", "2025-03-02")
	require.NoError(t, err)
	require.Zero(t, stats.TotalOrders)
	require.Empty(t, stats.TopItems)
	require.NotNil(t, stats.TopItems)
	require.NotNil(t, stats.MostUsedSuppliers)
}

func TestStockStats_KeepsTopTen(t *testing.T) {
	store := memstore.New()
	svc := service.NewStockService(store)
	svc.Now = clock(fixedNow)

	quantities := map[string]int{}
	for i := 1; i <= 12; i++ {
		quantities[fmt.Sprintf("i%02d", i)] = i
	}
	_, err := svc.SubmitOrder(context.Background(), service.SubmitStockOrderInput{Items: models.OrderData{"f1": quantities}})
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background(), "2025-03-14", "2025-03-14")
	require.NoError(t, err)
	require.Len(t, stats.TopItems, 10)
	require.Equal(t, service.RankedCount{Name: "i12", Value: 12}, stats.TopItems[0])
	require.Equal(t, service.RankedCount{Name: "i03", Value: 3}, stats.TopItems[9])
}

func TestStockStats_Errors(t *testing.T) {
	store := memstore.New()
	svc := service.NewStockService(store)

	verr := requireValidation(t, errorOf(svc.Stats(context.Background(), "", "2025-03-14")))
	require.Equal(t, "Período de datas é obrigatório.", verr.Message)
	requireValidation(t, errorOf(svc.Stats(context.Background(), "2025-03-14", "ontem")))

	store.Fail("ListStockOrdersBetween", errors.New("connection reset"))
	requireInternal(t, errorOf(svc.Stats(context.Background(), "2025-03-14", "2025-03-14")))
}

func errorOf(_ service.StockStats, err error) error {
	return err
}
