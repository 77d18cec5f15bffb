package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cestas/internal/models"
)

var byName = options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

func (s *Store) ListCabins(ctx context.Context) ([]models.Cabin, error) {
	return findAll[models.Cabin](ctx, s.col(ColCabins), bson.M{}, byName)
}

func (s *Store) InsertCabin(ctx context.Context, cabin *models.Cabin) error {
	doc := *cabin
	doc.ID = newID()
	if _, err := s.col(ColCabins).InsertOne(ctx, doc); err != nil {
		return mapErr(err)
	}
	cabin.ID = doc.ID
	return nil
}

func (s *Store) UpdateCabin(ctx context.Context, id string, update models.CabinUpdate) (models.Cabin, error) {
	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Capacity != nil {
		set["capacity"] = *update.Capacity
	}
	if len(set) == 0 {
		return models.Cabin{}, errors.New("update cabin: no changes")
	}

	var cabin models.Cabin
	err := s.col(ColCabins).FindOneAndUpdate(
		ctx,
		idFilter(id),
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&cabin)
	if err != nil {
		return models.Cabin{}, mapErr(err)
	}
	return cabin, nil
}

func (s *Store) DeleteCabin(ctx context.Context, id string) error {
	return s.deleteByID(ctx, ColCabins, id)
}

func (s *Store) ListCountries(ctx context.Context) ([]models.Country, error) {
	return findAll[models.Country](ctx, s.col(ColCountries), bson.M{}, byName)
}

func (s *Store) InsertCountry(ctx context.Context, country *models.Country) error {
	doc := *country
	doc.ID = newID()
	if _, err := s.col(ColCountries).InsertOne(ctx, doc); err != nil {
		return mapErr(err)
	}
	country.ID = doc.ID
	return nil
}

func (s *Store) ListStates(ctx context.Context, countryID string) ([]models.State, error) {
	return findAll[models.State](ctx, s.col(ColStates), bson.M{"countryId": countryID}, byName)
}

func (s *Store) InsertState(ctx context.Context, state *models.State) error {
	doc := *state
	doc.ID = newID()
	if _, err := s.col(ColStates).InsertOne(ctx, doc); err != nil {
		return mapErr(err)
	}
	state.ID = doc.ID
	return nil
}

func (s *Store) ListCities(ctx context.Context, stateID string) ([]models.City, error) {
	return findAll[models.City](ctx, s.col(ColCities), bson.M{"stateId": stateID}, byName)
}

func (s *Store) InsertCity(ctx context.Context, city *models.City) error {
	doc := *city
	doc.ID = newID()
	if _, err := s.col(ColCities).InsertOne(ctx, doc); err != nil {
		return mapErr(err)
	}
	city.ID = doc.ID
	return nil
}

func (s *Store) FindSettings(ctx context.Context, key string) (models.Settings, error) {
	var doc bson.M
	if err := s.col(ColSettings).FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		return nil, mapErr(err)
	}
	delete(doc, "_id")
	return models.Settings(doc), nil
}

// MergeSettings upserts the document, overwriting only the given fields.
func (s *Store) MergeSettings(ctx context.Context, key string, fields models.Settings) (models.Settings, error) {
	var doc bson.M
	err := s.col(ColSettings).FindOneAndUpdate(
		ctx,
		bson.M{"_id": key},
		bson.M{"$set": bson.M(fields)},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, mapErr(err)
	}
	delete(doc, "_id")
	return models.Settings(doc), nil
}
