package repository

import (
	"context"

	"rentora/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, u domain.User) error

	AddConnection(ctx context.Context, c *domain.Connection) error
	DeleteConnection(ctx context.Context, connectionID string) error
	GetConnectionIDs(ctx context.Context, userID int) ([]string, error)
	GetFriendIDs(ctx context.Context, userID int) ([]int, error)
}

type MessageRepository interface {
	Add(ctx context.Context, m *domain.Message) error
	GetByID(ctx context.Context, id int) (domain.Message, error)
	GetThread(ctx context.Context, userID, otherID int) ([]domain.Message, error)
	MarkThreadRead(ctx context.Context, readerID, otherID int) error
	CountUnread(ctx context.Context, senderID, receiverID int) (int64, error)
}

type CityRepository interface {
	GetAll(ctx context.Context) ([]domain.City, error)
	GetByID(ctx context.Context, id int) (domain.City, error)
	Create(ctx context.Context, c *domain.City) error
	Update(ctx context.Context, c domain.City) error
	Delete(ctx context.Context, id int) error
}

type ContactRepository interface {
	GetAll(ctx context.Context) ([]domain.Contact, error)
	GetByID(ctx context.Context, id int) (domain.Contact, error)
	Create(ctx context.Context, c *domain.Contact) error
	Delete(ctx context.Context, id int) error
}

type PropertyRepository interface {
	GetAllActive(ctx context.Context) ([]domain.Property, error)
	GetByID(ctx context.Context, id int) (domain.Property, error)
	GetByUser(ctx context.Context, userID int) ([]domain.Property, error)
	Create(ctx context.Context, p *domain.Property) error
	Update(ctx context.Context, p domain.Property) error
	Delete(ctx context.Context, id int) error

	AddPhoto(ctx context.Context, ph *domain.Photo) error
	GetPhoto(ctx context.Context, id int) (domain.Photo, error)
	SetPrimaryPhoto(ctx context.Context, propertyID, photoID int) error
	DeletePhoto(ctx context.Context, id int) error

	AddBookmark(ctx context.Context, b *domain.Bookmark) error
	DeleteBookmark(ctx context.Context, userID, propertyID int) error
	GetBookmarked(ctx context.Context, userID int) ([]domain.Property, error)
}
