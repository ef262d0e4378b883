package pitch

import (
	"context"
	"errors"
	"time"

	"github.com/pitchcraft/core/internal/database"
	"github.com/pitchcraft/core/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on the pitches collection.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(database.CollectionPitches)}
}

func (s *MongoStore) Create(ctx context.Context, rec *models.PitchModel) (*models.PitchModel, error) {
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	res, err := s.coll.InsertOne(ctx, rec)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		rec.ID = oid
	}
	return rec, nil
}

// FindOneAndUpdate replaces the generated text and the descriptive fields of
// the record matching (id, ownerID) and returns the updated document, or
// (nil, nil) when no owned record matches. Concurrent updates of the same
// record are last-write-wins.
func (s *MongoStore) FindOneAndUpdate(ctx context.Context, id, ownerID string, req Request, generatedText string) (*models.PitchModel, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	filter := bson.M{"_id": oid, "ownerId": ownerID}
	update := bson.M{"$set": bson.M{
		"type":           req.Type,
		"businessName":   req.BusinessName,
		"industry":       req.Industry,
		"targetAudience": req.TargetAudience,
		"tone":           req.Tone,
		"keyPoints":      req.KeyPoints,
		"generatedPitch": generatedText,
		"updatedAt":      time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out models.PitchModel
	if err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (s *MongoStore) Find(ctx context.Context, ownerID string) ([]models.PitchModel, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]models.PitchModel, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *MongoStore) FindOne(ctx context.Context, id, ownerID string) (*models.PitchModel, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var out models.PitchModel
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid, "ownerId": ownerID}).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (s *MongoStore) DeleteOne(ctx context.Context, id, ownerID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid, "ownerId": ownerID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
