package repository

import (
	"context"
	"errors"

	"rentora/internal/domain"
	rentora_errors "rentora/pkg/errors"

	"gorm.io/gorm"
)

type PostgresCityRepository struct {
	db *gorm.DB
}

func NewCityRepository(db *gorm.DB) CityRepository {
	return &PostgresCityRepository{db: db}
}

func (r *PostgresCityRepository) GetAll(ctx context.Context) ([]domain.City, error) {
	var cities []domain.City
	err := r.db.WithContext(ctx).Order("name ASC").Find(&cities).Error
	if err != nil {
		return nil, err
	}
	return cities, nil
}

func (r *PostgresCityRepository) GetByID(ctx context.Context, id int) (domain.City, error) {
	var c domain.City
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.City{}, rentora_errors.ErrNotFound
		}
		return domain.City{}, err
	}
	return c, nil
}

func (r *PostgresCityRepository) Create(ctx context.Context, c *domain.City) error {
	res := r.db.WithContext(ctx).Create(c)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) || isUniqueViolation(res.Error) {
			return rentora_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresCityRepository) Update(ctx context.Context, c domain.City) error {
	res := r.db.WithContext(ctx).Save(&c)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return rentora_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresCityRepository) Delete(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&domain.City{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return rentora_errors.ErrNotFound
	}
	return nil
}
