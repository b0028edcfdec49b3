package repository

import (
	"context"
	"fmt"

	"guestgate-service/internal/domain/entity"
	"guestgate-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReservationRepository implements ReservationRepository
type MongoReservationRepository struct {
	collection *mongo.Collection
}

// NewMongoReservationRepository creates a new reservation repository
func NewMongoReservationRepository(db *mongo.Database) repository.ReservationRepository {
	collection := db.Collection("Customers")

	// Create indexes on the two lookup fields
	ctx := context.Background()
	emailIndex := mongo.IndexModel{
		Keys: bson.M{"email": 1},
	}
	phoneIndex := mongo.IndexModel{
		Keys: bson.M{"phone": 1},
	}
	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{emailIndex, phoneIndex})

	return &MongoReservationRepository{
		collection: collection,
	}
}

// FindByField finds reservations whose field exactly matches value.
// Results are sorted by customerId so callers taking the first record
// get a deterministic choice when more than one matches.
func (r *MongoReservationRepository) FindByField(ctx context.Context, field entity.KeyField, value string) ([]*entity.Reservation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "customerId", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{string(field): value}, opts)
	if err != nil {
		return nil, fmt.Errorf("query Customers by %s: %w", field, err)
	}
	defer cursor.Close(ctx)

	var records []*entity.Reservation
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode Customers by %s: %w", field, err)
	}

	return records, nil
}
