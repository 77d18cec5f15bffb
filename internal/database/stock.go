package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cestas/internal/models"
)

func (s *Store) InsertStockOrder(ctx context.Context, order *models.StockOrderRequest) error {
	doc := *order
	doc.ID = newID()
	if _, err := s.col(ColStockOrders).InsertOne(ctx, doc); err != nil {
		return mapErr(err)
	}
	order.ID = doc.ID
	return nil
}

func (s *Store) ListStockOrders(ctx context.Context, limit int64) ([]models.StockOrderRequest, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	return findAll[models.StockOrderRequest](ctx, s.col(ColStockOrders), bson.M{}, opts)
}

func (s *Store) ListStockOrdersBetween(ctx context.Context, from, to time.Time) ([]models.StockOrderRequest, error) {
	filter := bson.M{"createdAt": bson.M{"$gte": from, "$lte": to}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	return findAll[models.StockOrderRequest](ctx, s.col(ColStockOrders), filter, opts)
}

func (s *Store) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return findAll[models.Supplier](ctx, s.col(ColSuppliers), bson.M{}, opts)
}

func (s *Store) FindSupplier(ctx context.Context, id string) (models.Supplier, error) {
	var supplier models.Supplier
	if err := s.col(ColSuppliers).FindOne(ctx, idFilter(id)).Decode(&supplier); err != nil {
		return models.Supplier{}, mapErr(err)
	}
	return supplier, nil
}

func (s *Store) InsertSupplier(ctx context.Context, supplier *models.Supplier) error {
	doc := *supplier
	doc.ID = newID()
	if _, err := s.col(ColSuppliers).InsertOne(ctx, doc); err != nil {
		return mapErr(err)
	}
	supplier.ID = doc.ID
	return nil
}

// DeleteSupplier removes the supplier and every item pointing at it.
func (s *Store) DeleteSupplier(ctx context.Context, id string) error {
	err := s.withTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		result, err := s.col(ColSuppliers).DeleteOne(sessCtx, idFilter(id))
		if err != nil {
			return err
		}
		if result.DeletedCount == 0 {
			return mongo.ErrNoDocuments
		}
		_, err = s.col(ColStockItems).DeleteMany(sessCtx, bson.M{"supplierId": id})
		return err
	})
	return mapErr(err)
}

func (s *Store) ListItems(ctx context.Context, supplierID string) ([]models.StockItem, error) {
	filter := bson.M{}
	if supplierID != "" {
		filter["supplierId"] = supplierID
	}
	opts := options.Find().SetSort(bson.D{{Key: "posicao", Value: 1}, {Key: "name", Value: 1}})
	return findAll[models.StockItem](ctx, s.col(ColStockItems), filter, opts)
}

func (s *Store) InsertItem(ctx context.Context, item *models.StockItem) error {
	doc := *item
	doc.ID = newID()
	if _, err := s.col(ColStockItems).InsertOne(ctx, doc); err != nil {
		return mapErr(err)
	}
	item.ID = doc.ID
	return nil
}

func (s *Store) DeleteItem(ctx context.Context, id string) error {
	return s.deleteByID(ctx, ColStockItems, id)
}

func (s *Store) deleteByID(ctx context.Context, collection, id string) error {
	result, err := s.col(collection).DeleteOne(ctx, idFilter(id))
	if err != nil {
		return mapErr(err)
	}
	if result.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
