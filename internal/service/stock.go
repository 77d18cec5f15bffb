package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"cestas/internal/models"
)

const (
	StockOrderListLimit   = 100
	stockOrderEmptyMsg    = "Nenhum item no pedido."
	supplierRequiredMsg   = "O nome do fornecedor é obrigatório."
	supplierNotFoundMsg   = "Fornecedor não encontrado."
	supplierIDRequiredMsg = "O ID do fornecedor é obrigatório."
	itemRequiredMsg       = "Nome e ID do fornecedor são obrigatórios."
	itemNotFoundMsg       = "Item não encontrado."
	itemIDRequiredMsg     = "O ID do item é obrigatório."
)

type SubmitStockOrderInput struct {
	Items models.OrderData `json:"items"`
}

type CreateSupplierInput struct {
	Name string `json:"name" validate:"required"`
}

type CreateItemInput struct {
	Name       string `json:"name" validate:"required"`
	SupplierID string `json:"supplierId" validate:"required"`
	Posicao    int    `json:"posicao"`
}

// StockService aggregates purchase requests and keeps the supplier/item
// catalogue the request form is built from.
type StockService struct {
	store StockStore
	Now   func() time.Time
}

func NewStockService(store StockStore) *StockService {
	return &StockService{store: store, Now: time.Now}
}

// SubmitOrder persists the nested quantity map as one request. Quantities
// and item ids are stored as sent.
func (s *StockService) SubmitOrder(ctx context.Context, input SubmitStockOrderInput) (models.StockOrderRequest, error) {
	if len(input.Items) == 0 {
		return models.StockOrderRequest{}, invalid(stockOrderEmptyMsg, "items is required")
	}

	order := models.StockOrderRequest{
		OrderData: input.Items,
		Status:    models.StockOrderRequested,
		CreatedAt: models.NewInstant(s.Now()),
	}
	if err := s.store.InsertStockOrder(ctx, &order); err != nil {
		return models.StockOrderRequest{}, internal("submit stock order", err)
	}
	return order, nil
}

func (s *StockService) ListOrders(ctx context.Context) ([]models.StockOrderRequest, error) {
	orders, err := s.store.ListStockOrders(ctx, StockOrderListLimit)
	if err != nil {
		return nil, internal("list stock orders", err)
	}
	return orders, nil
}

func (s *StockService) FormData(ctx context.Context) (models.StockFormData, error) {
	suppliers, err := s.store.ListSuppliers(ctx)
	if err != nil {
		return models.StockFormData{}, internal("list suppliers", err)
	}
	items, err := s.store.ListItems(ctx, "")
	if err != nil {
		return models.StockFormData{}, internal("list items", err)
	}
	return models.StockFormData{Suppliers: nonNil(suppliers), Items: nonNil(items)}, nil
}

func (s *StockService) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	suppliers, err := s.store.ListSuppliers(ctx)
	if err != nil {
		return nil, internal("list suppliers", err)
	}
	return suppliers, nil
}

func (s *StockService) GetSupplier(ctx context.Context, rawID string) (models.Supplier, error) {
	id, err := requireID(rawID, supplierIDRequiredMsg)
	if err != nil {
		return models.Supplier{}, err
	}
	supplier, err := s.store.FindSupplier(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return models.Supplier{}, &NotFoundError{Message: supplierNotFoundMsg}
	}
	if err != nil {
		return models.Supplier{}, internal("find supplier", err)
	}
	return supplier, nil
}

func (s *StockService) CreateSupplier(ctx context.Context, input CreateSupplierInput) (models.Supplier, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := checkInput(input, supplierRequiredMsg); err != nil {
		return models.Supplier{}, err
	}
	supplier := models.Supplier{Name: input.Name}
	if err := s.store.InsertSupplier(ctx, &supplier); err != nil {
		return models.Supplier{}, internal("create supplier", err)
	}
	return supplier, nil
}

// DeleteSupplier also removes every item of that supplier.
func (s *StockService) DeleteSupplier(ctx context.Context, rawID string) error {
	id, err := requireID(rawID, supplierIDRequiredMsg)
	if err != nil {
		return err
	}
	err = s.store.DeleteSupplier(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return &NotFoundError{Message: supplierNotFoundMsg}
	}
	if err != nil {
		return internal("delete supplier", err)
	}
	return nil
}

func (s *StockService) ListItems(ctx context.Context, supplierID string) ([]models.StockItem, error) {
	supplierID = strings.TrimSpace(supplierID)
	if supplierID == "" {
		return nil, invalid(supplierIDRequiredMsg, "supplierId is required")
	}
	items, err := s.store.ListItems(ctx, supplierID)
	if err != nil {
		return nil, internal("list items", err)
	}
	return items, nil
}

func (s *StockService) CreateItem(ctx context.Context, input CreateItemInput) (models.StockItem, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.SupplierID = strings.TrimSpace(input.SupplierID)
	if err := checkInput(input, itemRequiredMsg); err != nil {
		return models.StockItem{}, err
	}
	item := models.StockItem{Name: input.Name, SupplierID: input.SupplierID, Posicao: input.Posicao}
	if err := s.store.InsertItem(ctx, &item); err != nil {
		return models.StockItem{}, internal("create item", err)
	}
	return item, nil
}

func (s *StockService) DeleteItem(ctx context.Context, rawID string) error {
	id, err := requireID(rawID, itemIDRequiredMsg)
	if err != nil {
		return err
	}
	err = s.store.DeleteItem(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return &NotFoundError{Message: itemNotFoundMsg}
	}
	if err != nil {
		return internal("delete item", err)
	}
	return nil
}

func nonNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
