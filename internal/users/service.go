package users

import (
	"context"

	"github.com/dealcraft/dealcraft-server/internal/models"
	"github.com/dealcraft/dealcraft-server/internal/store"
)

// Service encapsulates user-related business logic
type Service struct {
	users store.Store
}

func NewService(s store.Store) *Service {
	return &Service{users: s}
}

// Create inserts the user unless one with the same email is already stored.
// The email is the natural key; uniqueness is checked here, not by an index.
func (s *Service) Create(ctx context.Context, u models.Document) (res models.InsertResult, existed bool, err error) {
	existing, err := s.users.FindOne(ctx, map[string]interface{}{models.FieldEmail: u.Lookup(models.FieldEmail)})
	if err != nil {
		return models.InsertResult{}, false, err
	}
	if existing != nil {
		return models.InsertResult{}, true, nil
	}
	res, err = s.users.Insert(ctx, u)
	return res, false, err
}

func (s *Service) Delete(ctx context.Context, id string) (models.DeleteResult, error) {
	return s.users.DeleteByID(ctx, id)
}
