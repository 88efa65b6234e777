package bids

import (
	"context"

	"github.com/dealcraft/dealcraft-server/internal/access"
	"github.com/dealcraft/dealcraft-server/internal/models"
	"github.com/dealcraft/dealcraft-server/internal/store"
)

type Service struct {
	bids store.Store
}

func NewService(s store.Store) *Service {
	return &Service{bids: s}
}

// List returns bids, restricted to buyerEmail when set. The restriction goes through
// access.BuyerScope, so a caller asking for someone else's bids gets access.ErrForbidden
// and no query is made.
func (s *Service) List(ctx context.Context, buyerEmail string) ([]models.Document, error) {
	scope, err := access.BuyerScope(ctx, buyerEmail)
	if err != nil {
		return nil, err
	}
	q := store.Query{}
	if scope != "" {
		q.Filter = map[string]interface{}{models.FieldBuyerEmail: scope}
	}
	return s.bids.Find(ctx, q)
}

// ForProduct returns the bids placed on a product, highest bid_price first.
// The product id is matched as stored, without ObjectID parsing.
func (s *Service) ForProduct(ctx context.Context, productID string) ([]models.Document, error) {
	return s.bids.Find(ctx, store.Query{
		Filter:   map[string]interface{}{models.FieldProduct: productID},
		SortDesc: models.FieldBidPrice,
	})
}

func (s *Service) Get(ctx context.Context, id string) (models.Document, error) {
	return s.bids.FindByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, b models.Document) (models.InsertResult, error) {
	return s.bids.Insert(ctx, b)
}

func (s *Service) Delete(ctx context.Context, id string) (models.DeleteResult, error) {
	return s.bids.DeleteByID(ctx, id)
}
