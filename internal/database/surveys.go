package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cestas/internal/models"
)

func (s *Store) ListSurveys(ctx context.Context) ([]models.Survey, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll[models.Survey](ctx, s.col(ColSurveys), bson.M{}, opts)
}

func (s *Store) FindActiveSurvey(ctx context.Context) (models.Survey, error) {
	var survey models.Survey
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if err := s.col(ColSurveys).FindOne(ctx, bson.M{"isActive": true}, opts).Decode(&survey); err != nil {
		return models.Survey{}, mapErr(err)
	}
	return survey, nil
}

func (s *Store) FindSurvey(ctx context.Context, id string) (models.Survey, error) {
	var survey models.Survey
	if err := s.col(ColSurveys).FindOne(ctx, idFilter(id)).Decode(&survey); err != nil {
		return models.Survey{}, mapErr(err)
	}
	return survey, nil
}

func (s *Store) InsertSurvey(ctx context.Context, survey *models.Survey) error {
	doc := *survey
	doc.ID = newID()
	if _, err := s.col(ColSurveys).InsertOne(ctx, doc); err != nil {
		return mapErr(err)
	}
	survey.ID = doc.ID
	return nil
}

// UpdateSurvey runs in a transaction so that activating one survey and
// deactivating the rest is seen as a single change.
func (s *Store) UpdateSurvey(ctx context.Context, id string, update models.SurveyUpdate) (models.Survey, error) {
	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.IsActive != nil {
		set["isActive"] = *update.IsActive
	}

	var updated models.Survey
	err := s.withTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		surveys := s.col(ColSurveys)

		if update.IsActive != nil && *update.IsActive {
			_, err := surveys.UpdateMany(sessCtx, bson.M{"isActive": true}, bson.M{"$set": bson.M{"isActive": false}})
			if err != nil {
				return err
			}
		}

		return surveys.FindOneAndUpdate(
			sessCtx,
			idFilter(id),
			bson.M{"$set": set},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
	})
	if err != nil {
		return models.Survey{}, mapErr(err)
	}
	return updated, nil
}

// DeleteSurvey removes the survey and its questions in one transaction.
func (s *Store) DeleteSurvey(ctx context.Context, id string) error {
	err := s.withTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		result, err := s.col(ColSurveys).DeleteOne(sessCtx, idFilter(id))
		if err != nil {
			return err
		}
		if result.DeletedCount == 0 {
			return mongo.ErrNoDocuments
		}
		_, err = s.col(ColSurveyQuestions).DeleteMany(sessCtx, bson.M{"surveyId": id})
		return err
	})
	return mapErr(err)
}

func (s *Store) ListQuestions(ctx context.Context, surveyID string) ([]models.Question, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}})
	return findAll[models.Question](ctx, s.col(ColSurveyQuestions), bson.M{"surveyId": surveyID}, opts)
}

func (s *Store) InsertQuestion(ctx context.Context, question *models.Question) error {
	doc := *question
	doc.ID = newID()
	if _, err := s.col(ColSurveyQuestions).InsertOne(ctx, doc); err != nil {
		return mapErr(err)
	}
	question.ID = doc.ID
	return nil
}

func (s *Store) UpdateQuestion(ctx context.Context, surveyID, questionID string, update models.QuestionUpdate) error {
	set := bson.M{}
	if update.Text != nil {
		set["text"] = *update.Text
	}
	if update.Type != nil {
		set["type"] = *update.Type
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Options != nil {
		set["options"] = *update.Options
	}
	if update.Position != nil {
		set["position"] = *update.Position
	}
	if len(set) == 0 {
		return errors.New("update question: no changes")
	}

	filter := idFilter(questionID)
	filter["surveyId"] = surveyID
	result, err := s.col(ColSurveyQuestions).UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return mapErr(err)
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteQuestion(ctx context.Context, surveyID, questionID string) error {
	filter := idFilter(questionID)
	filter["surveyId"] = surveyID
	result, err := s.col(ColSurveyQuestions).DeleteOne(ctx, filter)
	if err != nil {
		return mapErr(err)
	}
	if result.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
