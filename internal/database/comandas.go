package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cestas/internal/models"
)

func (s *Store) InsertComanda(ctx context.Context, comanda *models.Comanda) error {
	doc := *comanda
	doc.ID = newID()
	if _, err := s.col(ColComandas).InsertOne(ctx, doc); err != nil {
		return mapErr(err)
	}
	comanda.ID = doc.ID
	return nil
}

func (s *Store) FindActiveComandaByToken(ctx context.Context, token string) (models.Comanda, error) {
	var comanda models.Comanda
	err := s.col(ColComandas).FindOne(ctx, bson.M{"token": token, "isActive": true}).Decode(&comanda)
	if err != nil {
		return models.Comanda{}, mapErr(err)
	}
	return comanda, nil
}

func (s *Store) ListComandas(ctx context.Context) ([]models.Comanda, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll[models.Comanda](ctx, s.col(ColComandas), bson.M{}, opts)
}

func (s *Store) UpdateComanda(ctx context.Context, id string, update models.ComandaUpdate) (models.Comanda, error) {
	set := bson.M{}
	if update.GuestName != nil {
		set["guestName"] = *update.GuestName
	}
	if update.Cabin != nil {
		set["cabin"] = *update.Cabin
	}
	if update.NumberOfGuests != nil {
		set["numberOfGuests"] = *update.NumberOfGuests
	}
	if update.MensagemAtraso != nil {
		set["mensagemAtraso"] = *update.MensagemAtraso
	}
	if update.HorarioLimite != nil {
		set["horarioLimite"] = *update.HorarioLimite
	}

	change := bson.M{}
	if len(set) > 0 {
		change["$set"] = set
	}
	if update.ClearHorarioLimite {
		change["$unset"] = bson.M{"horarioLimite": ""}
	}
	if len(change) == 0 {
		return models.Comanda{}, fmt.Errorf("update comanda %s: no changes", id)
	}

	var updated models.Comanda
	err := s.col(ColComandas).FindOneAndUpdate(
		ctx,
		idFilter(id),
		change,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		return models.Comanda{}, mapErr(err)
	}
	return updated, nil
}

// ListActiveComandasDueBetween returns active comandas whose deadline is in
// (from, to], soonest first.
func (s *Store) ListActiveComandasDueBetween(ctx context.Context, from, to time.Time) ([]models.Comanda, error) {
	filter := bson.M{
		"isActive":      true,
		"horarioLimite": bson.M{"$gt": from, "$lte": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "horarioLimite", Value: 1}})
	return findAll[models.Comanda](ctx, s.col(ColComandas), filter, opts)
}

func (s *Store) CountActiveComandasCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	count, err := s.col(ColComandas).CountDocuments(ctx, bson.M{
		"isActive":  true,
		"createdAt": bson.M{"$gte": since},
	})
	if err != nil {
		return 0, fmt.Errorf("could not count comandas: %w", err)
	}
	return count, nil
}

func (s *Store) ListActiveComandasCreatedSince(ctx context.Context, since time.Time, limit int64) ([]models.Comanda, error) {
	filter := bson.M{
		"isActive":  true,
		"createdAt": bson.M{"$gte": since},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	return findAll[models.Comanda](ctx, s.col(ColComandas), filter, opts)
}
