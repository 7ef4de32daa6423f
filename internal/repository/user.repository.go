package repository

import (
	"context"
	"errors"

	"github.com/finbook/bookkeeper/internal/model"
	"github.com/finbook/bookkeeper/pkg/pg"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

type UserRepository struct {
	*pg.DB
}

func NewUserRepository(db *pg.DB) *UserRepository {
	return &UserRepository{
		db,
	}
}

// Create inserts a new user. The uniqueness check and the insert run in
// one transaction; the unique index on email backstops the race.
func (r *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	entity := toUserEntity(user)

	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		var count int64
		err := r.Write(ctx).WithContext(ctx).
			Model(&UserEntity{}).
			Where("email = ?", entity.Email).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}
		return r.Write(ctx).WithContext(ctx).Create(entity).Error
	})
	if err != nil {
		return nil, err
	}

	return toUserModel(entity), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var entity UserEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("email = ?", email).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserModel(&entity), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var entity UserEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserModel(&entity), nil
}
