package repository

import (
	"context"
	"errors"

	"rentora/internal/domain"
	rentora_errors "rentora/pkg/errors"

	"gorm.io/gorm"
)

type PostgresContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &PostgresContactRepository{db: db}
}

func (r *PostgresContactRepository) GetAll(ctx context.Context) ([]domain.Contact, error) {
	var contacts []domain.Contact
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *PostgresContactRepository) GetByID(ctx context.Context, id int) (domain.Contact, error) {
	var c domain.Contact
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Contact{}, rentora_errors.ErrNotFound
		}
		return domain.Contact{}, err
	}
	return c, nil
}

func (r *PostgresContactRepository) Create(ctx context.Context, c *domain.Contact) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *PostgresContactRepository) Delete(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&domain.Contact{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return rentora_errors.ErrNotFound
	}
	return nil
}
