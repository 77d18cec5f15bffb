package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cestas/internal/models"
)

func (s *Store) InsertPreCheckIn(ctx context.Context, preCheckIn *models.PreCheckIn) error {
	doc := *preCheckIn
	doc.ID = newID()
	if _, err := s.col(ColPreCheckIns).InsertOne(ctx, doc); err != nil {
		return mapErr(err)
	}
	preCheckIn.ID = doc.ID
	return nil
}

// ListPreCheckIns tolerates legacy documents whose createdAt is missing or
// not a date; those decode with a zero Instant.
func (s *Store) ListPreCheckIns(ctx context.Context, limit int64) ([]models.PreCheckIn, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	return findAll[models.PreCheckIn](ctx, s.col(ColPreCheckIns), bson.M{}, opts)
}

func (s *Store) UpdatePreCheckInStatus(ctx context.Context, id string, status models.PreCheckInStatus) error {
	result, err := s.col(ColPreCheckIns).UpdateOne(ctx, idFilter(id), bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return mapErr(err)
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
