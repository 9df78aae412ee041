package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"rentora/internal/domain"
	"rentora/internal/repository"
	"rentora/internal/storage"
	rentora_errors "rentora/pkg/errors"

	"github.com/google/uuid"
)

const activePropertiesCacheKey = "properties:active"

type PropertyService struct {
	repo   repository.PropertyRepository
	photos storage.PhotoStorage
	cache  Cache
}

func NewPropertyService(repo repository.PropertyRepository, photos storage.PhotoStorage, cache Cache) *PropertyService {
	if cache == nil {
		cache = NoopCache{}
	}
	return &PropertyService{repo: repo, photos: photos, cache: cache}
}

type PropertyInput struct {
	Title       string
	Price       float64
	Area        int
	Address     string
	Lat         float64
	Lng         float64
	Description string
	Category    domain.Category
	Furnish     domain.Furnish
	IsActive    bool
	CityID      int
}

func (s *PropertyService) GetAllActive(ctx context.Context) ([]domain.Property, error) {
	var cached []domain.Property
	if hit, err := s.cache.Get(ctx, activePropertiesCacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	properties, err := s.repo.GetAllActive(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, activePropertiesCacheKey, properties)
	return properties, nil
}

func (s *PropertyService) GetByID(ctx context.Context, id int) (domain.Property, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PropertyService) GetByUser(ctx context.Context, userID int) ([]domain.Property, error) {
	return s.repo.GetByUser(ctx, userID)
}

func (s *PropertyService) Create(ctx context.Context, userID int, in PropertyInput) (domain.Property, error) {
	p := domain.Property{
		Title:       in.Title,
		Price:       in.Price,
		Area:        in.Area,
		Address:     in.Address,
		Lat:         in.Lat,
		Lng:         in.Lng,
		Description: in.Description,
		Category:    in.Category,
		Furnish:     in.Furnish,
		IsActive:    in.IsActive,
		CityID:      in.CityID,
		PostedBy:    userID,
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return domain.Property{}, err
	}
	_ = s.cache.Delete(ctx, activePropertiesCacheKey)
	return p, nil
}

func (s *PropertyService) Update(ctx context.Context, userID, id int, in PropertyInput) (domain.Property, error) {
	p, err := s.ownedProperty(ctx, userID, id)
	if err != nil {
		return domain.Property{}, err
	}

	p.Title = in.Title
	p.Price = in.Price
	p.Area = in.Area
	p.Address = in.Address
	p.Lat = in.Lat
	p.Lng = in.Lng
	p.Description = in.Description
	p.Category = in.Category
	p.Furnish = in.Furnish
	p.IsActive = in.IsActive
	p.CityID = in.CityID

	if err := s.repo.Update(ctx, p); err != nil {
		return domain.Property{}, err
	}
	_ = s.cache.Delete(ctx, activePropertiesCacheKey)
	return p, nil
}

func (s *PropertyService) Delete(ctx context.Context, userID, id int) error {
	if _, err := s.ownedProperty(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, activePropertiesCacheKey)
	return nil
}

// AddPhoto uploads the image and records it. The first photo of a listing
// becomes primary.
func (s *PropertyService) AddPhoto(ctx context.Context, userID, propertyID int, filename, contentType string, body io.Reader) (domain.Photo, error) {
	p, err := s.ownedProperty(ctx, userID, propertyID)
	if err != nil {
		return domain.Photo{}, err
	}

	key := fmt.Sprintf("properties/%d/%s%s", propertyID, uuid.New().String(), path.Ext(filename))
	imageURL, err := s.photos.Upload(ctx, key, contentType, body)
	if err != nil {
		return domain.Photo{}, err
	}

	photo := domain.Photo{
		PublicID:   key,
		ImageURL:   imageURL,
		IsPrimary:  len(p.Photos) == 0,
		PropertyID: propertyID,
	}
	if err := s.repo.AddPhoto(ctx, &photo); err != nil {
		return domain.Photo{}, err
	}
	return photo, nil
}

func (s *PropertyService) SetPrimaryPhoto(ctx context.Context, userID, propertyID, photoID int) error {
	if _, err := s.ownedProperty(ctx, userID, propertyID); err != nil {
		return err
	}
	return s.repo.SetPrimaryPhoto(ctx, propertyID, photoID)
}

func (s *PropertyService) DeletePhoto(ctx context.Context, userID, propertyID, photoID int) error {
	if _, err := s.ownedProperty(ctx, userID, propertyID); err != nil {
		return err
	}
	photo, err := s.repo.GetPhoto(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.PropertyID != propertyID {
		return rentora_errors.ErrNotFound
	}
	if photo.IsPrimary {
		return rentora_errors.ErrInvalidInput
	}
	if err := s.photos.Delete(ctx, photo.PublicID); err != nil {
		return err
	}
	return s.repo.DeletePhoto(ctx, photoID)
}

func (s *PropertyService) AddBookmark(ctx context.Context, userID, propertyID int) error {
	if _, err := s.repo.GetByID(ctx, propertyID); err != nil {
		return err
	}
	err := s.repo.AddBookmark(ctx, &domain.Bookmark{UserID: userID, PropertyID: propertyID})
	if errors.Is(err, rentora_errors.ErrAlreadyExists) {
		return nil
	}
	return err
}

func (s *PropertyService) DeleteBookmark(ctx context.Context, userID, propertyID int) error {
	return s.repo.DeleteBookmark(ctx, userID, propertyID)
}

func (s *PropertyService) GetBookmarked(ctx context.Context, userID int) ([]domain.Property, error) {
	return s.repo.GetBookmarked(ctx, userID)
}

func (s *PropertyService) ownedProperty(ctx context.Context, userID, id int) (domain.Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Property{}, err
	}
	if p.PostedBy != userID {
		return domain.Property{}, rentora_errors.ErrForbidden
	}
	return p, nil
}
