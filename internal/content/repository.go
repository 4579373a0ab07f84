package content

import (
	"context"

	"github.com/elrefaeey/padell/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	GetHome(ctx context.Context) (models.HomeContent, error)
	GetContact(ctx context.Context) (models.ContactInfo, error)
	Save(ctx context.Context, id string, set bson.M) error
}

// MongoRepository stores both singletons in the siteContent collection under
// their fixed keys.
type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) GetHome(ctx context.Context) (models.HomeContent, error) {
	var doc models.HomeContent
	err := r.col.FindOne(ctx, bson.M{"_id": models.HomeDocID}).Decode(&doc)
	return doc, err
}

func (r *MongoRepository) GetContact(ctx context.Context) (models.ContactInfo, error) {
	var doc models.ContactInfo
	err := r.col.FindOne(ctx, bson.M{"_id": models.ContactDocID}).Decode(&doc)
	return doc, err
}

// Save upserts the given fields only; everything else in the document is
// preserved.
func (r *MongoRepository) Save(ctx context.Context, id string, set bson.M) error {
	if len(set) == 0 {
		return nil
	}
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}, options.Update().SetUpsert(true))
	return err
}
