package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo opens a connection using the Stable API v1 and returns the client after a ping.
// Nested documents decode as maps so stored records serialize back to plain JSON objects.
// Caller should call client.Disconnect(ctx).
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).SetStrict(true).SetDeprecationErrors(true)
	clientOpts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(serverAPI).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// Collections groups the three collections served by the API.
type Collections struct {
	Users    *mongo.Collection
	Products *mongo.Collection
	Bids     *mongo.Collection
}

// Open returns the collection handles of the given database.
func Open(client *mongo.Client, database string) Collections {
	db := client.Database(database)
	return Collections{
		Users:    db.Collection("users"),
		Products: db.Collection("products"),
		Bids:     db.Collection("bids"),
	}
}
