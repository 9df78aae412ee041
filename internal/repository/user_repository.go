package repository

import (
	"context"
	"errors"

	"rentora/internal/domain"
	rentora_errors "rentora/pkg/errors"

	"gorm.io/gorm"
)

type PostgresUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u *domain.User) error {
	res := r.db.WithContext(ctx).Create(u)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) || isUniqueViolation(res.Error) {
			return rentora_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id int) (domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Where("id = ? AND is_deleted = false", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, rentora_errors.ErrNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Where("email = ? AND is_deleted = false", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, rentora_errors.ErrNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Where("is_deleted = false").
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *PostgresUserRepository) Update(ctx context.Context, u domain.User) error {
	res := r.db.WithContext(ctx).Save(&u)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return rentora_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) AddConnection(ctx context.Context, c *domain.Connection) error {
	res := r.db.WithContext(ctx).Create(c)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) || isUniqueViolation(res.Error) {
			return rentora_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

// DeleteConnection is a no-op when the row is already gone so that double
// disconnect events are harmless.
func (r *PostgresUserRepository) DeleteConnection(ctx context.Context, connectionID string) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Connection{}, "connection_id = ?", connectionID).Error
}

func (r *PostgresUserRepository) GetConnectionIDs(ctx context.Context, userID int) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&domain.Connection{}).
		Where("user_id = ?", userID).
		Pluck("connection_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// GetFriendIDs returns the distinct users that have exchanged at least one
// message with userID, in either direction, excluding userID itself.
func (r *PostgresUserRepository) GetFriendIDs(ctx context.Context, userID int) ([]int, error) {
	var ids []int
	err := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Distinct().
		Select("CASE WHEN sender_id = ? THEN receiver_id ELSE sender_id END", userID).
		Where("(sender_id = ? OR receiver_id = ?) AND sender_id <> receiver_id", userID, userID).
		Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
