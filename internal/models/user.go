package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"fullName" json:"fullName"`
	Email      string             `bson:"email" json:"email"`
	Password   string             `bson:"password" json:"-"` // Hide from JSON responses
	Age        int                `bson:"age,omitempty" json:"age,omitempty"`
	Conditions []string           `bson:"conditions" json:"conditions"`
	CreatedAt  time.Time          `bson:"createdAt" json:"created_at"`
}

// PublicUser is the projection returned by the auth endpoints.
type PublicUser struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID.Hex(),
		FullName: u.FullName,
		Email:    u.Email,
	}
}
