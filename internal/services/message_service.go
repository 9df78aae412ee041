package services

import (
	"context"
	"time"

	"rentora/internal/domain"
	"rentora/internal/repository"
	rentora_errors "rentora/pkg/errors"
)

// MessageUserView is the sender/receiver summary embedded in a message.
type MessageUserView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MessageView is a message as delivered to clients.
type MessageView struct {
	ID        int             `json:"id"`
	Content   string          `json:"content"`
	Sender    MessageUserView `json:"sender"`
	Receiver  MessageUserView `json:"receiver"`
	IsRead    bool            `json:"isRead"`
	CreatedAt time.Time       `json:"createdAt"`
}

type MessageService struct {
	repo repository.MessageRepository
}

func NewMessageService(repo repository.MessageRepository) *MessageService {
	return &MessageService{repo: repo}
}

func (s *MessageService) GetThread(ctx context.Context, userID, otherID int) ([]MessageView, error) {
	messages, err := s.repo.GetThread(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}
	views := make([]MessageView, 0, len(messages))
	for _, m := range messages {
		views = append(views, toMessageView(m))
	}
	return views, nil
}

func (s *MessageService) Send(ctx context.Context, senderID, receiverID int, content string) (MessageView, error) {
	if receiverID == senderID {
		return MessageView{}, rentora_errors.ErrSelfMessage
	}
	if content == "" {
		return MessageView{}, rentora_errors.ErrInvalidInput
	}

	m := domain.Message{
		Content:    content,
		SenderID:   senderID,
		ReceiverID: receiverID,
	}
	if err := s.repo.Add(ctx, &m); err != nil {
		return MessageView{}, err
	}

	// reload with sender/receiver populated
	persisted, err := s.repo.GetByID(ctx, m.ID)
	if err != nil {
		return MessageView{}, err
	}
	return toMessageView(persisted), nil
}

// ReadThread marks everything otherID sent to readerID as read. A thread with
// no unread messages is a no-op.
func (s *MessageService) ReadThread(ctx context.Context, readerID, otherID int) error {
	return s.repo.MarkThreadRead(ctx, readerID, otherID)
}

func toMessageView(m domain.Message) MessageView {
	return MessageView{
		ID:      m.ID,
		Content: m.Content,
		Sender: MessageUserView{
			ID:   m.SenderID,
			Name: m.Sender.Name,
		},
		Receiver: MessageUserView{
			ID:   m.ReceiverID,
			Name: m.Receiver.Name,
		},
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}
