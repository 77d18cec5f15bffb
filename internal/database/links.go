package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cestas/internal/models"
)

func (s *Store) InsertLink(ctx context.Context, link *models.GeneratedSurveyLink) error {
	doc := *link
	doc.ID = newID()
	if _, err := s.col(ColGeneratedLinks).InsertOne(ctx, doc); err != nil {
		return mapErr(err)
	}
	link.ID = doc.ID
	return nil
}

func (s *Store) ListLinks(ctx context.Context, surveyID string, limit int64) ([]models.GeneratedSurveyLink, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	return findAll[models.GeneratedSurveyLink](ctx, s.col(ColGeneratedLinks), bson.M{"surveyId": surveyID}, opts)
}
