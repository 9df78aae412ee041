package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rentora/internal/domain"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepositoryMock) GetByID(ctx context.Context, id int) (domain.User, error) {
	args := m.Called(ctx, id)
	var u domain.User
	if val := args.Get(0); val != nil {
		u = val.(domain.User)
	}
	return u, args.Error(1)
}

func (m *UserRepositoryMock) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	var u domain.User
	if val := args.Get(0); val != nil {
		u = val.(domain.User)
	}
	return u, args.Error(1)
}

func (m *UserRepositoryMock) GetAll(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	var users []domain.User
	if val := args.Get(0); val != nil {
		users = val.([]domain.User)
	}
	return users, args.Error(1)
}

func (m *UserRepositoryMock) Update(ctx context.Context, u domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepositoryMock) AddConnection(ctx context.Context, c *domain.Connection) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *UserRepositoryMock) DeleteConnection(ctx context.Context, connectionID string) error {
	args := m.Called(ctx, connectionID)
	return args.Error(0)
}

func (m *UserRepositoryMock) GetConnectionIDs(ctx context.Context, userID int) ([]string, error) {
	args := m.Called(ctx, userID)
	var ids []string
	if val := args.Get(0); val != nil {
		ids = val.([]string)
	}
	return ids, args.Error(1)
}

func (m *UserRepositoryMock) GetFriendIDs(ctx context.Context, userID int) ([]int, error) {
	args := m.Called(ctx, userID)
	var ids []int
	if val := args.Get(0); val != nil {
		ids = val.([]int)
	}
	return ids, args.Error(1)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) Add(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MessageRepositoryMock) GetByID(ctx context.Context, id int) (domain.Message, error) {
	args := m.Called(ctx, id)
	var msg domain.Message
	if val := args.Get(0); val != nil {
		msg = val.(domain.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) GetThread(ctx context.Context, userID, otherID int) ([]domain.Message, error) {
	args := m.Called(ctx, userID, otherID)
	var msgs []domain.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]domain.Message)
	}
	return msgs, args.Error(1)
}

func (m *MessageRepositoryMock) MarkThreadRead(ctx context.Context, readerID, otherID int) error {
	args := m.Called(ctx, readerID, otherID)
	return args.Error(0)
}

func (m *MessageRepositoryMock) CountUnread(ctx context.Context, senderID, receiverID int) (int64, error) {
	args := m.Called(ctx, senderID, receiverID)
	return args.Get(0).(int64), args.Error(1)
}

type CityRepositoryMock struct {
	mock.Mock
}

func (m *CityRepositoryMock) GetAll(ctx context.Context) ([]domain.City, error) {
	args := m.Called(ctx)
	var cities []domain.City
	if val := args.Get(0); val != nil {
		cities = val.([]domain.City)
	}
	return cities, args.Error(1)
}

func (m *CityRepositoryMock) GetByID(ctx context.Context, id int) (domain.City, error) {
	args := m.Called(ctx, id)
	var city domain.City
	if val := args.Get(0); val != nil {
		city = val.(domain.City)
	}
	return city, args.Error(1)
}

func (m *CityRepositoryMock) Create(ctx context.Context, c *domain.City) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CityRepositoryMock) Update(ctx context.Context, c domain.City) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CityRepositoryMock) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type ContactRepositoryMock struct {
	mock.Mock
}

func (m *ContactRepositoryMock) GetAll(ctx context.Context) ([]domain.Contact, error) {
	args := m.Called(ctx)
	var contacts []domain.Contact
	if val := args.Get(0); val != nil {
		contacts = val.([]domain.Contact)
	}
	return contacts, args.Error(1)
}

func (m *ContactRepositoryMock) GetByID(ctx context.Context, id int) (domain.Contact, error) {
	args := m.Called(ctx, id)
	var contact domain.Contact
	if val := args.Get(0); val != nil {
		contact = val.(domain.Contact)
	}
	return contact, args.Error(1)
}

func (m *ContactRepositoryMock) Create(ctx context.Context, c *domain.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *ContactRepositoryMock) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type PropertyRepositoryMock struct {
	mock.Mock
}

func (m *PropertyRepositoryMock) GetAllActive(ctx context.Context) ([]domain.Property, error) {
	args := m.Called(ctx)
	var properties []domain.Property
	if val := args.Get(0); val != nil {
		properties = val.([]domain.Property)
	}
	return properties, args.Error(1)
}

func (m *PropertyRepositoryMock) GetByID(ctx context.Context, id int) (domain.Property, error) {
	args := m.Called(ctx, id)
	var p domain.Property
	if val := args.Get(0); val != nil {
		p = val.(domain.Property)
	}
	return p, args.Error(1)
}

func (m *PropertyRepositoryMock) GetByUser(ctx context.Context, userID int) ([]domain.Property, error) {
	args := m.Called(ctx, userID)
	var properties []domain.Property
	if val := args.Get(0); val != nil {
		properties = val.([]domain.Property)
	}
	return properties, args.Error(1)
}

func (m *PropertyRepositoryMock) Create(ctx context.Context, p *domain.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *PropertyRepositoryMock) Update(ctx context.Context, p domain.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *PropertyRepositoryMock) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *PropertyRepositoryMock) AddPhoto(ctx context.Context, ph *domain.Photo) error {
	args := m.Called(ctx, ph)
	return args.Error(0)
}

func (m *PropertyRepositoryMock) GetPhoto(ctx context.Context, id int) (domain.Photo, error) {
	args := m.Called(ctx, id)
	var ph domain.Photo
	if val := args.Get(0); val != nil {
		ph = val.(domain.Photo)
	}
	return ph, args.Error(1)
}

func (m *PropertyRepositoryMock) SetPrimaryPhoto(ctx context.Context, propertyID, photoID int) error {
	args := m.Called(ctx, propertyID, photoID)
	return args.Error(0)
}

func (m *PropertyRepositoryMock) DeletePhoto(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *PropertyRepositoryMock) AddBookmark(ctx context.Context, b *domain.Bookmark) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *PropertyRepositoryMock) DeleteBookmark(ctx context.Context, userID, propertyID int) error {
	args := m.Called(ctx, userID, propertyID)
	return args.Error(0)
}

func (m *PropertyRepositoryMock) GetBookmarked(ctx context.Context, userID int) ([]domain.Property, error) {
	args := m.Called(ctx, userID)
	var properties []domain.Property
	if val := args.Get(0); val != nil {
		properties = val.([]domain.Property)
	}
	return properties, args.Error(1)
}
