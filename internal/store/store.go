// Package store provides the collection accessors used by the users, products and bids
// services: a MongoDB implementation and an in-memory one with the same query semantics.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dealcraft/dealcraft-server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

//go:generate mockgen -destination=mock_store.go -package=store github.com/dealcraft/dealcraft-server/internal/store Store

var (
	// ErrInvalidID is returned when an id is not a valid 24-character hex ObjectID.
	ErrInvalidID = errors.New("invalid id")
)

// Query describes a find: equality filter, optional descending sort on one field,
// optional limit and optional projection (the _id is always kept).
type Query struct {
	Filter   map[string]interface{}
	SortDesc string
	Limit    int64
	Fields   []string
}

// Store is one document collection.
type Store interface {
	Find(ctx context.Context, q Query) ([]models.Document, error)
	FindOne(ctx context.Context, filter map[string]interface{}) (models.Document, error)
	FindByID(ctx context.Context, id string) (models.Document, error)
	Insert(ctx context.Context, doc models.Document) (models.InsertResult, error)
	SetByID(ctx context.Context, id string, fields map[string]interface{}) (models.UpdateResult, error)
	DeleteByID(ctx context.Context, id string) (models.DeleteResult, error)
}

// ParseID converts a hex string into an ObjectID.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}
