package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PitchModel is a generated business pitch stored in MongoDB.
// The JSON field names mirror the public API: clients know the owner field
// as userId and the generated text as generatedPitch.
type PitchModel struct {
	ID             primitive.ObjectID `json:"id"             bson:"_id,omitempty"`
	OwnerID        string             `json:"userId"         bson:"ownerId"`
	Type           string             `json:"type"           bson:"type"`
	BusinessName   string             `json:"businessName"   bson:"businessName"`
	Industry       string             `json:"industry"       bson:"industry"`
	TargetAudience string             `json:"targetAudience" bson:"targetAudience"`
	Tone           string             `json:"tone"           bson:"tone"`
	KeyPoints      []string           `json:"keyPoints"      bson:"keyPoints"`
	GeneratedText  string             `json:"generatedPitch" bson:"generatedPitch"`
	CreatedAt      time.Time          `json:"createdAt"      bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"      bson:"updatedAt"`
}
