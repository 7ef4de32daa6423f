package repository

import (
	"context"
	"errors"

	"github.com/finbook/bookkeeper/internal/model"
	"github.com/finbook/bookkeeper/pkg/pg"
	"gorm.io/gorm"
)

var (
	// ErrEntryNotFound is returned when an entry does not exist or is not
	// owned by the requesting user.
	ErrEntryNotFound = errors.New("ledger entry not found")
)

type EntryRepository struct {
	*pg.DB
}

func NewEntryRepository(db *pg.DB) *EntryRepository {
	return &EntryRepository{
		db,
	}
}

func (r *EntryRepository) Create(ctx context.Context, entry *model.LedgerEntry) (*model.LedgerEntry, error) {
	entity := toEntryEntity(entry)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return r.get(ctx, entity.ID, entity.UserID)
}

// List returns all entries owned by the user, narrowed by f.
// Order: most recent date first, creation time breaking ties.
func (r *EntryRepository) List(ctx context.Context, userID int64, f model.EntryFilter) ([]*model.LedgerEntry, error) {
	return r.list(ctx, userID, nil, f)
}

// ListForCustomer is List restricted to one customer. Ownership of the
// customer is the service's concern; here the user scope alone keeps
// foreign data out.
func (r *EntryRepository) ListForCustomer(ctx context.Context, customerID, userID int64, f model.EntryFilter) ([]*model.LedgerEntry, error) {
	return r.list(ctx, userID, &customerID, f)
}

func (r *EntryRepository) list(ctx context.Context, userID int64, customerID *int64, f model.EntryFilter) ([]*model.LedgerEntry, error) {
	q := r.Read(ctx).WithContext(ctx).
		Preload("Customer").
		Where("user_id = ?", userID)

	if customerID != nil {
		q = q.Where("customer_id = ?", *customerID)
	}
	if f.Type != nil {
		q = q.Where("entry_type = ?", *f.Type)
	}
	if f.StartDate != nil {
		q = q.Where("date >= ?", f.StartDate.Time)
	}
	if f.EndDate != nil {
		q = q.Where("date <= ?", f.EndDate.Time)
	}

	var entities []*EntryEntity
	if err := q.Order("date DESC, created_at DESC, id DESC").Find(&entities).Error; err != nil {
		return nil, err
	}

	return toEntryModels(entities), nil
}

func (r *EntryRepository) Get(ctx context.Context, id, userID int64) (*model.LedgerEntry, error) {
	return r.get(ctx, id, userID)
}

func (r *EntryRepository) get(ctx context.Context, id, userID int64) (*model.LedgerEntry, error) {
	var entity EntryEntity
	err := r.Read(ctx).WithContext(ctx).
		Preload("Customer").
		Where("id = ? AND user_id = ?", id, userID).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return toEntryModel(&entity), nil
}

// Update applies the present fields of patch. The owning customer is not
// part of the patch type, so reassignment attempts never reach the store.
func (r *EntryRepository) Update(ctx context.Context, id, userID int64, patch model.EntryPatch) (*model.LedgerEntry, error) {
	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		var entity EntryEntity
		err := r.Write(ctx).WithContext(ctx).
			Where("id = ? AND user_id = ?", id, userID).
			First(&entity).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEntryNotFound
			}
			return err
		}

		if patch.EntryType != nil {
			entity.EntryType = *patch.EntryType
		}
		if patch.Amount != nil {
			entity.Amount = *patch.Amount
		}
		if patch.Note != nil {
			entity.Note = *patch.Note
		}
		if patch.Date != nil {
			entity.Date = *patch.Date
		}

		return r.Write(ctx).WithContext(ctx).Save(&entity).Error
	})
	if err != nil {
		return nil, err
	}
	return r.get(ctx, id, userID)
}

func (r *EntryRepository) Delete(ctx context.Context, id, userID int64) error {
	result := r.Write(ctx).WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&EntryEntity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// SumByType totals the customer's entries per entry type. Amounts are
// accumulated with decimal arithmetic; an absent type sums to zero.
func (r *EntryRepository) SumByType(ctx context.Context, customerID, userID int64) (credit, debit model.Money, err error) {
	var rows []struct {
		EntryType string      `gorm:"column:entry_type"`
		Amount    model.Money `gorm:"column:amount"`
	}
	err = r.Read(ctx).WithContext(ctx).
		Model(&EntryEntity{}).
		Select("entry_type", "amount").
		Where("user_id = ? AND customer_id = ?", userID, customerID).
		Find(&rows).Error
	if err != nil {
		return model.Money{}, model.Money{}, err
	}

	credit = model.MoneyZero()
	debit = model.MoneyZero()
	for _, row := range rows {
		switch row.EntryType {
		case model.EntryTypeCredit:
			credit = credit.Add(row.Amount)
		case model.EntryTypeDebit:
			debit = debit.Add(row.Amount)
		}
	}
	return credit, debit, nil
}
