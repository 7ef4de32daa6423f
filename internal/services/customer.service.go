package services

import (
	"context"

	"github.com/finbook/bookkeeper/internal/model"
)

type CustomerRepository interface {
	List(ctx context.Context, userID int64) ([]*model.Customer, error)
	Create(ctx context.Context, customer *model.Customer) (*model.Customer, error)
	Get(ctx context.Context, id, userID int64) (*model.Customer, error)
	Update(ctx context.Context, id, userID int64, p model.CustomerUpdateRequest) (*model.Customer, error)
	Delete(ctx context.Context, id, userID int64) error
}

type CustomerService struct {
	repo  CustomerRepository
	cache *SummaryCache
}

func NewCustomerService(repo CustomerRepository, cache *SummaryCache) *CustomerService {
	return &CustomerService{
		repo:  repo,
		cache: cache,
	}
}

func (s *CustomerService) List(ctx context.Context, userID int64) ([]*model.Customer, error) {
	return s.repo.List(ctx, userID)
}

func (s *CustomerService) Create(ctx context.Context, userID int64, p model.CustomerCreateRequest) (*model.Customer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	customer := &model.Customer{
		UserID: userID,
		Name:   p.Name,
		Email:  p.Email,
		Phone:  p.Phone,
	}
	return s.repo.Create(ctx, customer)
}

func (s *CustomerService) Get(ctx context.Context, id, userID int64) (*model.Customer, error) {
	return s.repo.Get(ctx, id, userID)
}

func (s *CustomerService) Update(ctx context.Context, id, userID int64, p model.CustomerUpdateRequest) (*model.Customer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, userID, p)
}

// Delete removes the customer and, through the repository, all of its
// entries. The cached summary goes with them.
func (s *CustomerService) Delete(ctx context.Context, id, userID int64) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.cache.Invalidate(userID, id)
	return nil
}
