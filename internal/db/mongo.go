package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Collections struct {
	SiteContent *mongo.Collection
	Features    *mongo.Collection
	Courts      *mongo.Collection
	Offers      *mongo.Collection
	Bookings    *mongo.Collection
	Users       *mongo.Collection
}

func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *Collections, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, err
	}

	db := client.Database(dbName)

	cols := &Collections{
		SiteContent: db.Collection("siteContent"),
		Features:    db.Collection("features"),
		Courts:      db.Collection("courts"),
		Offers:      db.Collection("offers"),
		Bookings:    db.Collection("bookings"),
		Users:       db.Collection("users"),
	}

	return client, cols, nil
}

func EnsureIndexes(ctx context.Context, cols *Collections) error {
	indexTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := cols.Users.Indexes().CreateMany(indexTimeout, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return err
	}

	// Single-field ascending sorts only; ties resolve in natural order.
	for _, col := range []*mongo.Collection{cols.Features, cols.Courts, cols.Offers} {
		_, err = col.Indexes().CreateMany(indexTimeout, []mongo.IndexModel{
			{
				Keys: bson.D{{Key: "order", Value: 1}},
			},
		})
		if err != nil {
			return err
		}
	}

	_, err = cols.Bookings.Indexes().CreateMany(indexTimeout, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	})
	if err != nil {
		return err
	}

	return nil
}
