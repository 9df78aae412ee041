package services

import (
	"context"

	"rentora/internal/domain"
	"rentora/internal/repository"
)

const cityCacheKey = "cities"

// Cache is the read-through cache the services consult before hitting the
// database. Backed by redis; nil-able in tests via NoopCache.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

// NoopCache disables caching.
type NoopCache struct{}

func (NoopCache) Get(ctx context.Context, key string, dest any) (bool, error) { return false, nil }
func (NoopCache) Set(ctx context.Context, key string, value any) error        { return nil }
func (NoopCache) Delete(ctx context.Context, keys ...string) error            { return nil }

type CityService struct {
	repo  repository.CityRepository
	cache Cache
}

func NewCityService(repo repository.CityRepository, cache Cache) *CityService {
	if cache == nil {
		cache = NoopCache{}
	}
	return &CityService{repo: repo, cache: cache}
}

func (s *CityService) GetAll(ctx context.Context) ([]domain.City, error) {
	var cached []domain.City
	if hit, err := s.cache.Get(ctx, cityCacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	cities, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, cityCacheKey, cities)
	return cities, nil
}

func (s *CityService) GetByID(ctx context.Context, id int) (domain.City, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CityService) Create(ctx context.Context, name string) (domain.City, error) {
	c := domain.City{Name: name}
	if err := s.repo.Create(ctx, &c); err != nil {
		return domain.City{}, err
	}
	_ = s.cache.Delete(ctx, cityCacheKey)
	return c, nil
}

func (s *CityService) Update(ctx context.Context, id int, name string) (domain.City, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.City{}, err
	}
	c.Name = name
	if err := s.repo.Update(ctx, c); err != nil {
		return domain.City{}, err
	}
	_ = s.cache.Delete(ctx, cityCacheKey)
	return c, nil
}

func (s *CityService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, cityCacheKey)
	return nil
}
