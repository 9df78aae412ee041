package repository

import (
	"context"
	"errors"

	"rentora/internal/domain"
	rentora_errors "rentora/pkg/errors"

	"gorm.io/gorm"
)

type PostgresMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Add(ctx context.Context, m *domain.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *PostgresMessageRepository) GetByID(ctx context.Context, id int) (domain.Message, error) {
	var m domain.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Message{}, rentora_errors.ErrNotFound
		}
		return domain.Message{}, err
	}
	return m, nil
}

// GetThread returns both directions of the conversation in non-decreasing
// creation time. Ties are broken by id so the order is stable.
func (r *PostgresMessageRepository) GetThread(ctx context.Context, userID, otherID int) ([]domain.Message, error) {
	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkThreadRead flips the read flag on every unread message the counterpart
// sent to the reader. A thread with nothing unread is a no-op.
func (r *PostgresMessageRepository) MarkThreadRead(ctx context.Context, readerID, otherID int) error {
	return r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = false", otherID, readerID).
		Update("is_read", true).Error
}

func (r *PostgresMessageRepository) CountUnread(ctx context.Context, senderID, receiverID int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = false", senderID, receiverID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
