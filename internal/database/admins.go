package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"cestas/internal/models"
)

func (s *Store) FindAdminByEmail(ctx context.Context, email string) (models.Admin, error) {
	var admin models.Admin
	err := s.col(ColAdmins).FindOne(ctx, bson.M{"email": email, "role": models.RoleAdmin}).Decode(&admin)
	if err != nil {
		return models.Admin{}, mapErr(err)
	}
	return admin, nil
}

func (s *Store) InsertAdmin(ctx context.Context, admin *models.Admin) error {
	doc := *admin
	doc.ID = newID()
	if _, err := s.col(ColAdmins).InsertOne(ctx, doc); err != nil {
		return mapErr(err)
	}
	admin.ID = doc.ID
	return nil
}
