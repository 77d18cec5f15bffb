package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"cestas/internal/database/memstore"
	"cestas/internal/models"
	"cestas/internal/service"
)

func TestStockOrder_SubmitAndList(t *testing.T) {
	store := memstore.New()
	svc := service.NewStockService(store)
	svc.Now = clock(fixedNow)

	_, err := svc.SubmitOrder(context.Background(), service.SubmitStockOrderInput{})
	requireValidation(t, err)

	order, err := svc.SubmitOrder(context.Background(), service.SubmitStockOrderInput{
		Items: models.OrderData{"f1": {"i1": 3, "i2": 0}},
	})
	require.NoError(t, err)
	require.Equal(t, models.StockOrderRequested, order.Status)
	require.Equal(t, 3, order.OrderData["f1"]["i1"])

	orders, err := svc.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, order.ID, orders[0].ID)
}

func TestSuppliersAndItems(t *testing.T) {
	store := memstore.New()
	svc := service.NewStockService(store)
	ctx := context.Background()

	padaria, err := svc.CreateSupplier(ctx, service.CreateSupplierInput{Name: " Padaria "})
	require.NoError(t, err)
	require.Equal(t, "Padaria", padaria.Name)
	laticinios, err := svc.CreateSupplier(ctx, service.CreateSupplierInput{Name: "Laticínios"})
	require.NoError(t, err)

	_, err = svc.CreateItem(ctx, service.CreateItemInput{Name: "Pão de queijo", SupplierID: padaria.ID, Posicao: 2})
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, service.CreateItemInput{Name: "Broa", SupplierID: padaria.ID, Posicao: 1})
	require.NoError(t, err)
	queijo, err := svc.CreateItem(ctx, service.CreateItemInput{Name: "Queijo minas", SupplierID: laticinios.ID})
	require.NoError(t, err)

	items, err := svc.ListItems(ctx, padaria.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "Broa", items[0].Name)

	_, err = svc.ListItems(ctx, "")
	requireValidation(t, err)
	_, err = svc.CreateItem(ctx, service.CreateItemInput{Name: "Sem fornecedor"})
	requireValidation(t, err)

	form, err := svc.FormData(ctx)
	require.NoError(t, err)
	require.Len(t, form.Suppliers, 2)
	require.Len(t, form.Items, 3)

	found, err := svc.GetSupplier(ctx, laticinios.ID)
	require.NoError(t, err)
	require.Equal(t, "Laticínios", found.Name)

	require.NoError(t, svc.DeleteSupplier(ctx, padaria.ID))
	form, err = svc.FormData(ctx)
	require.NoError(t, err)
	require.Len(t, form.Suppliers, 1)
	require.Len(t, form.Items, 1)
	require.Equal(t, queijo.ID, form.Items[0].ID)

	requireNotFound(t, svc.DeleteSupplier(ctx, padaria.ID))
	require.NoError(t, svc.DeleteItem(ctx, queijo.ID))
	requireNotFound(t, svc.DeleteItem(ctx, queijo.ID))
	requireValidation(t, svc.DeleteItem(ctx, ""))
}

func TestStockFormData_EmptyListsAreNotNil(t *testing.T) {
	svc := service.NewStockService(memstore.New())

	form, err := svc.FormData(context.Background())
	require.NoError(t, err)
	require.NotNil(t, form.Suppliers)
	require.NotNil(t, form.Items)
}
