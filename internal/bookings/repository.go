package bookings

import (
	"context"

	"github.com/elrefaeey/padell/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, item models.Booking) error
	List(ctx context.Context, limit, offset int64) ([]models.Booking, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
}

// CourtGetter resolves the court being booked so its name can be
// denormalized into the record.
type CourtGetter interface {
	Get(ctx context.Context, id string) (models.Court, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, item models.Booking) error {
	_, err := r.col.InsertOne(ctx, item)
	return err
}

// List returns newest-first. A non-positive limit returns the whole
// collection.
func (r *MongoRepository) List(ctx context.Context, limit, offset int64) ([]models.Booking, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(offset)
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]models.Booking, 0)
	for cursor.Next(ctx) {
		var item models.Booking
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *MongoRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

// Delete is idempotent: removing an id that is already gone is not an error.
func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
