package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserModel is an account that owns pitches.
type UserModel struct {
	ID        primitive.ObjectID `json:"id"       bson:"_id,omitempty"`
	Username  string             `json:"username" bson:"username"`
	Name      string             `json:"name"     bson:"name,omitempty"`
	Password  string             `json:"-"        bson:"password"`
	CreatedAt time.Time          `json:"created"  bson:"createdAt"`
	UpdatedAt time.Time          `json:"modified" bson:"updatedAt"`
}
