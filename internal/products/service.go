package products

import (
	"context"

	"github.com/dealcraft/dealcraft-server/internal/models"
	"github.com/dealcraft/dealcraft-server/internal/store"
)

// RecentLimit is the fixed size of the recent products listing.
const RecentLimit = 6

// RecentFields are the only product fields exposed by the recent listing (besides _id).
var RecentFields = []string{
	models.FieldTitle,
	models.FieldPriceMin,
	models.FieldPriceMax,
	models.FieldCategory,
	models.FieldImage,
	models.FieldDescription,
}

type Service struct {
	products store.Store
}

func NewService(s store.Store) *Service {
	return &Service{products: s}
}

// List returns all products, or only those owned by ownerEmail when it is set.
func (s *Service) List(ctx context.Context, ownerEmail string) ([]models.Document, error) {
	q := store.Query{}
	if ownerEmail != "" {
		q.Filter = map[string]interface{}{models.FieldEmail: ownerEmail}
	}
	return s.products.Find(ctx, q)
}

// Recent returns the newest products by created_at, projected to RecentFields.
func (s *Service) Recent(ctx context.Context) ([]models.Document, error) {
	return s.products.Find(ctx, store.Query{
		SortDesc: models.FieldCreatedAt,
		Limit:    RecentLimit,
		Fields:   RecentFields,
	})
}

// Get returns nil when no product has the id.
func (s *Service) Get(ctx context.Context, id string) (models.Document, error) {
	return s.products.FindByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, p models.Document) (models.InsertResult, error) {
	return s.products.Insert(ctx, p)
}

// Update overwrites name and price from the payload; every other field of it is ignored.
// A missing name or price is stored as null.
func (s *Service) Update(ctx context.Context, id string, payload models.Document) (models.UpdateResult, error) {
	return s.products.SetByID(ctx, id, map[string]interface{}{
		models.FieldName:  payload.Lookup(models.FieldName),
		models.FieldPrice: payload.Lookup(models.FieldPrice),
	})
}

func (s *Service) Delete(ctx context.Context, id string) (models.DeleteResult, error) {
	return s.products.DeleteByID(ctx, id)
}
