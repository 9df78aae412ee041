package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentora/internal/domain"
	"rentora/internal/mocks"
)

// memoryCache is an in-process stand-in for the redis cache.
type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

func TestCityGetAllPopulatesCache(t *testing.T) {
	repo := new(mocks.CityRepositoryMock)
	cache := newMemoryCache()
	svc := NewCityService(repo, cache)

	cities := []domain.City{{ID: 1, Name: "Pune"}, {ID: 2, Name: "Mumbai"}}
	repo.On("GetAll", mock.Anything).Return(cities, nil).Once()

	got, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cities, got)

	// second read is served from cache
	got, err = svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cities, got)
	repo.AssertNumberOfCalls(t, "GetAll", 1)
}

func TestCityMutationsInvalidateCache(t *testing.T) {
	repo := new(mocks.CityRepositoryMock)
	cache := newMemoryCache()
	svc := NewCityService(repo, cache)

	repo.On("GetAll", mock.Anything).Return([]domain.City{{ID: 1, Name: "Pune"}}, nil)
	_, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Contains(t, cache.entries, "cities")

	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	_, err = svc.Create(context.Background(), "Nagpur")
	require.NoError(t, err)
	assert.NotContains(t, cache.entries, "cities")
}

func TestCityUpdateLoadsThenSaves(t *testing.T) {
	repo := new(mocks.CityRepositoryMock)
	svc := NewCityService(repo, nil)

	repo.On("GetByID", mock.Anything, 1).Return(domain.City{ID: 1, Name: "Old"}, nil).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c domain.City) bool {
		return c.ID == 1 && c.Name == "New"
	})).Return(nil).Once()

	city, err := svc.Update(context.Background(), 1, "New")
	require.NoError(t, err)
	assert.Equal(t, "New", city.Name)
	repo.AssertExpectations(t)
}
