package models

const RoleAdmin = "admin"

type Admin struct {
	ID           string  `bson:"_id,omitempty" json:"id"`
	Email        string  `bson:"email" json:"email"`
	PasswordHash string  `bson:"passwordHash" json:"-"`
	Role         string  `bson:"role" json:"role"`
	CreatedAt    Instant `bson:"createdAt" json:"createdAt"`
}
