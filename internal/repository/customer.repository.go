package repository

import (
	"context"
	"errors"

	"github.com/finbook/bookkeeper/internal/model"
	"github.com/finbook/bookkeeper/pkg/pg"
	"gorm.io/gorm"
)

var (
	// ErrCustomerNotFound covers both "does not exist" and "owned by
	// someone else"; callers cannot tell the two apart, which keeps
	// customer ids unenumerable across accounts.
	ErrCustomerNotFound = errors.New("customer not found")
)

type CustomerRepository struct {
	*pg.DB
}

func NewCustomerRepository(db *pg.DB) *CustomerRepository {
	return &CustomerRepository{
		db,
	}
}

// List returns the user's customers, newest first.
func (r *CustomerRepository) List(ctx context.Context, userID int64) ([]*model.Customer, error) {
	var entities []*CustomerEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toCustomerModels(entities), nil
}

func (r *CustomerRepository) Create(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	entity := toCustomerEntity(customer)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toCustomerModel(entity), nil
}

func (r *CustomerRepository) Get(ctx context.Context, id, userID int64) (*model.Customer, error) {
	var entity CustomerEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return toCustomerModel(&entity), nil
}

// Exists is the ownership guard: it reports whether the customer exists
// AND belongs to the user.
func (r *CustomerRepository) Exists(ctx context.Context, id, userID int64) (bool, error) {
	var count int64
	err := r.Read(ctx).WithContext(ctx).
		Model(&CustomerEntity{}).
		Where("id = ? AND user_id = ?", id, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update applies the present fields of p. Runs load-then-save in one
// transaction so concurrent deletes cannot slip between the two.
func (r *CustomerRepository) Update(ctx context.Context, id, userID int64, p model.CustomerUpdateRequest) (*model.Customer, error) {
	var updated *model.Customer
	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		var entity CustomerEntity
		err := r.Write(ctx).WithContext(ctx).
			Where("id = ? AND user_id = ?", id, userID).
			First(&entity).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCustomerNotFound
			}
			return err
		}

		if p.Name != nil {
			entity.Name = *p.Name
		}
		if p.Email != nil {
			entity.Email = *p.Email
		}
		if p.Phone != nil {
			entity.Phone = *p.Phone
		}

		if err := r.Write(ctx).WithContext(ctx).Save(&entity).Error; err != nil {
			return err
		}
		updated = toCustomerModel(&entity)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the customer and all its ledger entries in a single
// transaction. The entries are removed explicitly so the cascade does not
// depend on the storage engine enforcing the foreign key.
func (r *CustomerRepository) Delete(ctx context.Context, id, userID int64) error {
	return r.WithinTransaction(ctx, func(ctx context.Context) error {
		result := r.Write(ctx).WithContext(ctx).
			Where("id = ? AND user_id = ?", id, userID).
			Delete(&CustomerEntity{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCustomerNotFound
		}

		return r.Write(ctx).WithContext(ctx).
			Where("customer_id = ? AND user_id = ?", id, userID).
			Delete(&EntryEntity{}).Error
	})
}
