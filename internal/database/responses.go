package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cestas/internal/models"
)

// InsertResponse writes the response header and all of its answers in one
// transaction; on any failure nothing is visible.
func (s *Store) InsertResponse(ctx context.Context, response *models.SurveyResponse, answers []models.Answer) error {
	header := *response
	header.ID = newID()

	docs := make([]interface{}, 0, len(answers))
	for _, answer := range answers {
		answer.ID = newID()
		answer.ResponseID = header.ID
		docs = append(docs, answer)
	}

	err := s.withTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if _, err := s.col(ColSurveyResponses).InsertOne(sessCtx, header); err != nil {
			return fmt.Errorf("could not insert response: %w", err)
		}
		if len(docs) == 0 {
			return nil
		}
		if _, err := s.col(ColSurveyAnswers).InsertMany(sessCtx, docs); err != nil {
			return fmt.Errorf("could not insert answers: %w", err)
		}
		return nil
	})
	if err != nil {
		return mapErr(err)
	}
	response.ID = header.ID
	return nil
}

func (s *Store) ListResponses(ctx context.Context, surveyID string, from, to time.Time) ([]models.ResponseWithAnswers, error) {
	filter := bson.M{"surveyId": surveyID}
	window := bson.M{}
	if !from.IsZero() {
		window["$gte"] = from
	}
	if !to.IsZero() {
		window["$lte"] = to
	}
	if len(window) > 0 {
		filter["respondedAt"] = window
	}

	opts := options.Find().SetSort(bson.D{{Key: "respondedAt", Value: 1}})
	headers, err := findAll[models.SurveyResponse](ctx, s.col(ColSurveyResponses), filter, opts)
	if err != nil {
		return nil, err
	}
	if len(headers) == 0 {
		return []models.ResponseWithAnswers{}, nil
	}

	ids := make([]string, 0, len(headers))
	for _, header := range headers {
		ids = append(ids, header.ID)
	}
	answers, err := findAll[models.Answer](ctx, s.col(ColSurveyAnswers), bson.M{"responseId": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}

	byResponse := make(map[string][]models.Answer, len(headers))
	for _, answer := range answers {
		byResponse[answer.ResponseID] = append(byResponse[answer.ResponseID], answer)
	}

	out := make([]models.ResponseWithAnswers, 0, len(headers))
	for _, header := range headers {
		joined := models.ResponseWithAnswers{SurveyResponse: header, Answers: byResponse[header.ID]}
		if joined.Answers == nil {
			joined.Answers = []models.Answer{}
		}
		out = append(out, joined)
	}
	return out, nil
}
