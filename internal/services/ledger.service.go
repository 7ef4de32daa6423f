package services

import (
	"context"

	"github.com/finbook/bookkeeper/internal/model"
	"github.com/finbook/bookkeeper/internal/repository"
	"github.com/finbook/bookkeeper/pkg/prom"
)

type EntryRepository interface {
	Create(ctx context.Context, entry *model.LedgerEntry) (*model.LedgerEntry, error)
	List(ctx context.Context, userID int64, f model.EntryFilter) ([]*model.LedgerEntry, error)
	ListForCustomer(ctx context.Context, customerID, userID int64, f model.EntryFilter) ([]*model.LedgerEntry, error)
	Get(ctx context.Context, id, userID int64) (*model.LedgerEntry, error)
	Update(ctx context.Context, id, userID int64, patch model.EntryPatch) (*model.LedgerEntry, error)
	Delete(ctx context.Context, id, userID int64) error
	SumByType(ctx context.Context, customerID, userID int64) (credit, debit model.Money, err error)
}

// CustomerGuard is the ownership check plus the transaction scope the
// guarded writes run in.
type CustomerGuard interface {
	Exists(ctx context.Context, id, userID int64) (bool, error)
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type LedgerService struct {
	entries   EntryRepository
	customers CustomerGuard
	cache     *SummaryCache
}

func NewLedgerService(entries EntryRepository, customers CustomerGuard, cache *SummaryCache) *LedgerService {
	return &LedgerService{
		entries:   entries,
		customers: customers,
		cache:     cache,
	}
}

func (s *LedgerService) List(ctx context.Context, userID int64, f model.EntryFilter) ([]*model.LedgerEntry, error) {
	return s.entries.List(ctx, userID, f)
}

// ListForCustomer verifies ownership of the customer before listing. A
// missing or foreign customer surfaces as ErrCustomerNotFound.
func (s *LedgerService) ListForCustomer(ctx context.Context, customerID, userID int64, f model.EntryFilter) ([]*model.LedgerEntry, error) {
	owned, err := s.customers.Exists(ctx, customerID, userID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, repository.ErrCustomerNotFound
	}
	return s.entries.ListForCustomer(ctx, customerID, userID, f)
}

// Create validates the request, confirms the target customer belongs to
// the user and inserts the entry. Guard and insert share one transaction
// so a concurrent customer deletion rolls the insert back instead of
// leaving an orphan.
func (s *LedgerService) Create(ctx context.Context, userID int64, p model.EntryCreateRequest) (*model.LedgerEntry, error) {
	values, err := p.Parse()
	if err != nil {
		return nil, err
	}

	var created *model.LedgerEntry
	err = s.customers.WithinTransaction(ctx, func(ctx context.Context) error {
		owned, err := s.customers.Exists(ctx, p.CustomerID, userID)
		if err != nil {
			return err
		}
		if !owned {
			// the write path reports ownership failure on the field,
			// not as a 404
			return model.NewFieldError("customer_id", "Customer not found.")
		}

		entry := &model.LedgerEntry{
			UserID:    userID,
			Customer:  &model.Customer{ID: p.CustomerID},
			EntryType: values.EntryType,
			Amount:    values.Amount,
			Note:      values.Note,
			Date:      values.Date,
		}
		created, err = s.entries.Create(ctx, entry)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(userID, p.CustomerID)
	prom.IncEntriesCreated(values.EntryType)
	return created, nil
}

func (s *LedgerService) Get(ctx context.Context, id, userID int64) (*model.LedgerEntry, error) {
	return s.entries.Get(ctx, id, userID)
}

func (s *LedgerService) Update(ctx context.Context, id, userID int64, p model.EntryUpdateRequest) (*model.LedgerEntry, error) {
	patch, err := p.Parse()
	if err != nil {
		return nil, err
	}

	updated, err := s.entries.Update(ctx, id, userID, patch)
	if err != nil {
		return nil, err
	}
	if updated.Customer != nil {
		s.cache.Invalidate(userID, updated.Customer.ID)
	}
	return updated, nil
}

func (s *LedgerService) Delete(ctx context.Context, id, userID int64) error {
	entry, err := s.entries.Get(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := s.entries.Delete(ctx, id, userID); err != nil {
		return err
	}
	if entry.Customer != nil {
		s.cache.Invalidate(userID, entry.Customer.ID)
	}
	return nil
}

// Summarize returns the customer's credit/debit totals and balance. Totals
// come from the cache when fresh, otherwise from a decimal-exact
// aggregation over the customer's entries.
func (s *LedgerService) Summarize(ctx context.Context, customerID, userID int64) (model.Summary, error) {
	owned, err := s.customers.Exists(ctx, customerID, userID)
	if err != nil {
		return model.Summary{}, err
	}
	if !owned {
		return model.Summary{}, repository.ErrCustomerNotFound
	}

	if summary, ok := s.cache.Get(userID, customerID); ok {
		prom.IncSummariesServed("cache")
		return summary, nil
	}

	credit, debit, err := s.entries.SumByType(ctx, customerID, userID)
	if err != nil {
		return model.Summary{}, err
	}

	summary := model.NewSummary(credit, debit)
	s.cache.Set(userID, customerID, summary)
	prom.IncSummariesServed("db")
	return summary, nil
}
