package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dealcraft/dealcraft-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo implements Store on top of a MongoDB collection. Ids are ObjectIDs generated by the driver.
type Mongo struct {
	col *mongo.Collection
}

func NewMongo(col *mongo.Collection) *Mongo {
	return &Mongo{col: col}
}

func (m *Mongo) Find(ctx context.Context, q Query) ([]models.Document, error) {
	opts := options.Find()
	if q.SortDesc != "" {
		opts.SetSort(bson.D{{Key: q.SortDesc, Value: -1}})
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	if len(q.Fields) > 0 {
		proj := bson.M{}
		for _, f := range q.Fields {
			proj[f] = 1
		}
		opts.SetProjection(proj)
	}
	filter := bson.M{}
	for k, v := range q.Filter {
		filter[k] = v
	}

	cur, err := m.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", m.col.Name(), err)
	}
	defer cur.Close(ctx)
	out := []models.Document{}
	for cur.Next(ctx) {
		var d models.Document
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode %s: %w", m.col.Name(), err)
		}
		out = append(out, d)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor %s: %w", m.col.Name(), err)
	}
	return out, nil
}

func (m *Mongo) FindOne(ctx context.Context, filter map[string]interface{}) (models.Document, error) {
	f := bson.M{}
	for k, v := range filter {
		f[k] = v
	}
	var d models.Document
	if err := m.col.FindOne(ctx, f).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find one %s: %w", m.col.Name(), err)
	}
	return d, nil
}

func (m *Mongo) FindByID(ctx context.Context, id string) (models.Document, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return m.FindOne(ctx, map[string]interface{}{models.FieldID: oid})
}

func (m *Mongo) Insert(ctx context.Context, doc models.Document) (models.InsertResult, error) {
	if doc == nil {
		doc = models.Document{}
	}
	res, err := m.col.InsertOne(ctx, doc)
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("insert %s: %w", m.col.Name(), err)
	}
	return models.InsertResult{Acknowledged: true, InsertedID: res.InsertedID}, nil
}

func (m *Mongo) SetByID(ctx context.Context, id string, fields map[string]interface{}) (models.UpdateResult, error) {
	oid, err := ParseID(id)
	if err != nil {
		return models.UpdateResult{}, err
	}
	res, err := m.col.UpdateOne(ctx, bson.M{models.FieldID: oid}, bson.M{"$set": fields})
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("update %s: %w", m.col.Name(), err)
	}
	return models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}, nil
}

func (m *Mongo) DeleteByID(ctx context.Context, id string) (models.DeleteResult, error) {
	oid, err := ParseID(id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	res, err := m.col.DeleteOne(ctx, bson.M{models.FieldID: oid})
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("delete %s: %w", m.col.Name(), err)
	}
	return models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}
