package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type collectionIndexes struct {
	collection string
	models     []mongo.IndexModel
}

func indexPlan() []collectionIndexes {
	return []collectionIndexes{
		{
			collection: ColComandas,
			models: []mongo.IndexModel{
				{
					Keys: bson.D{{Key: "token", Value: 1}},
					Options: options.Index().
						SetName("active_token_unique").
						SetUnique(true).
						SetPartialFilterExpression(bson.M{"isActive": true}),
				},
				{
					Keys:    bson.D{{Key: "createdAt", Value: -1}},
					Options: options.Index().SetName("createdAt_desc"),
				},
			},
		},
		{
			collection: ColSurveyQuestions,
			models: []mongo.IndexModel{{
				Keys:    bson.D{{Key: "surveyId", Value: 1}, {Key: "position", Value: 1}},
				Options: options.Index().SetName("surveyId_position"),
			}},
		},
		{
			collection: ColSurveyResponses,
			models: []mongo.IndexModel{{
				Keys:    bson.D{{Key: "surveyId", Value: 1}, {Key: "respondedAt", Value: 1}},
				Options: options.Index().SetName("surveyId_respondedAt"),
			}},
		},
		{
			collection: ColSurveyAnswers,
			models: []mongo.IndexModel{{
				Keys:    bson.D{{Key: "responseId", Value: 1}},
				Options: options.Index().SetName("responseId_index"),
			}},
		},
		{
			collection: ColGeneratedLinks,
			models: []mongo.IndexModel{{
				Keys:    bson.D{{Key: "surveyId", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("surveyId_createdAt"),
			}},
		},
		{
			collection: ColPreCheckIns,
			models: []mongo.IndexModel{{
				Keys:    bson.D{{Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("createdAt_desc"),
			}},
		},
		{
			collection: ColStockOrders,
			models: []mongo.IndexModel{{
				Keys:    bson.D{{Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("createdAt_desc"),
			}},
		},
		{
			collection: ColStockItems,
			models: []mongo.IndexModel{{
				Keys:    bson.D{{Key: "supplierId", Value: 1}, {Key: "posicao", Value: 1}},
				Options: options.Index().SetName("supplierId_posicao"),
			}},
		},
		{
			collection: ColStates,
			models: []mongo.IndexModel{{
				Keys:    bson.D{{Key: "countryId", Value: 1}},
				Options: options.Index().SetName("countryId_index"),
			}},
		},
		{
			collection: ColCities,
			models: []mongo.IndexModel{{
				Keys:    bson.D{{Key: "stateId", Value: 1}},
				Options: options.Index().SetName("stateId_index"),
			}},
		},
		{
			collection: ColAdmins,
			models: []mongo.IndexModel{{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("email_unique").SetUnique(true),
			}},
		},
	}
}

// EnsureIndexes creates every index the stores rely on. It keeps going after
// a failure and returns the first error.
func EnsureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var firstErr error
	for _, plan := range indexPlan() {
		log.Printf("EnsureIndexes: creating %d index(es) on %s", len(plan.models), plan.collection)
		names, err := db.Collection(plan.collection).Indexes().CreateMany(ctx, plan.models)
		if err != nil {
			log.Printf("EnsureIndexes: %s index error: %v", plan.collection, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("indexes on %s: %w", plan.collection, err)
			}
			continue
		}
		log.Printf("EnsureIndexes: %s ready: %v", plan.collection, names)
	}
	return firstErr
}
