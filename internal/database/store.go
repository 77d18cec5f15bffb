package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cestas/internal/models"
)

const (
	ColComandas        = "comandas"
	ColSurveys         = "surveys"
	ColSurveyQuestions = "survey_questions"
	ColSurveyResponses = "survey_responses"
	ColSurveyAnswers   = "survey_answers"
	ColGeneratedLinks  = "generated_links"
	ColPreCheckIns     = "pre_check_ins"
	ColStockOrders     = "pedidos_estoque"
	ColStockItems      = "itens_estoque"
	ColSuppliers       = "fornecedores"
	ColCabins          = "cabanas"
	ColCountries       = "countries"
	ColStates          = "states"
	ColCities          = "cities"
	ColSettings        = "configuracoes"
	ColAdmins          = "admins"
)

// Store implements every service store on top of one MongoDB database.
type Store struct {
	db *mongo.Database
}

func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// withTransaction runs fn inside a multi-document transaction.
func (s *Store) withTransaction(ctx context.Context, fn func(sessCtx mongo.SessionContext) error) error {
	session, err := s.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("could not start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

// idFilter matches a document by its string id. Documents created before ids
// became strings still carry an ObjectID, so a hex id matches both forms.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{id, oid}}}
	}
	return bson.M{"_id": id}
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return models.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", models.ErrDuplicateKey, err)
	}
	return err
}

func findAll[T any](ctx context.Context, collection *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not query %s: %w", collection.Name(), err)
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", collection.Name(), err)
	}
	return out, nil
}
