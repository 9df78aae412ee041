package repository

import (
	"context"
	"errors"

	"rentora/internal/domain"
	rentora_errors "rentora/pkg/errors"

	"gorm.io/gorm"
)

type PostgresPropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &PostgresPropertyRepository{db: db}
}

func (r *PostgresPropertyRepository) GetAllActive(ctx context.Context) ([]domain.Property, error) {
	var properties []domain.Property
	err := r.db.WithContext(ctx).
		Preload("City").
		Preload("Photos").
		Where("is_active = true").
		Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *PostgresPropertyRepository) GetByID(ctx context.Context, id int) (domain.Property, error) {
	var p domain.Property
	err := r.db.WithContext(ctx).
		Preload("City").
		Preload("Photos").
		Preload("User").
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Property{}, rentora_errors.ErrNotFound
		}
		return domain.Property{}, err
	}
	return p, nil
}

func (r *PostgresPropertyRepository) GetByUser(ctx context.Context, userID int) ([]domain.Property, error) {
	var properties []domain.Property
	err := r.db.WithContext(ctx).
		Preload("City").
		Preload("Photos").
		Where("posted_by = ?", userID).
		Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *PostgresPropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PostgresPropertyRepository) Update(ctx context.Context, p domain.Property) error {
	res := r.db.WithContext(ctx).Save(&p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return rentora_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresPropertyRepository) Delete(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&domain.Property{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return rentora_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresPropertyRepository) AddPhoto(ctx context.Context, ph *domain.Photo) error {
	res := r.db.WithContext(ctx).Create(ph)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) || isUniqueViolation(res.Error) {
			return rentora_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresPropertyRepository) GetPhoto(ctx context.Context, id int) (domain.Photo, error) {
	var ph domain.Photo
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ph).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Photo{}, rentora_errors.ErrNotFound
		}
		return domain.Photo{}, err
	}
	return ph, nil
}

// SetPrimaryPhoto demotes the current primary photo and promotes the given
// one, atomically.
func (r *PostgresPropertyRepository) SetPrimaryPhoto(ctx context.Context, propertyID, photoID int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Photo{}).
			Where("property_id = ? AND is_primary = true", propertyID).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		res := tx.Model(&domain.Photo{}).
			Where("id = ? AND property_id = ?", photoID, propertyID).
			Update("is_primary", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return rentora_errors.ErrNotFound
		}
		return nil
	})
}

func (r *PostgresPropertyRepository) DeletePhoto(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&domain.Photo{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return rentora_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresPropertyRepository) AddBookmark(ctx context.Context, b *domain.Bookmark) error {
	res := r.db.WithContext(ctx).Create(b)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) || isUniqueViolation(res.Error) {
			return rentora_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresPropertyRepository) DeleteBookmark(ctx context.Context, userID, propertyID int) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Bookmark{}, "user_id = ? AND property_id = ?", userID, propertyID).Error
}

func (r *PostgresPropertyRepository) GetBookmarked(ctx context.Context, userID int) ([]domain.Property, error) {
	var properties []domain.Property
	sub := r.db.Model(&domain.Bookmark{}).
		Select("property_id").
		Where("user_id = ?", userID)

	err := r.db.WithContext(ctx).
		Preload("City").
		Preload("Photos").
		Where("id IN (?)", sub).
		Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}
