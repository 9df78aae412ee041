package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentora/internal/domain"
	"rentora/internal/mocks"
	rentora_errors "rentora/pkg/errors"
)

func TestSendRejectsSelfMessage(t *testing.T) {
	repo := new(mocks.MessageRepositoryMock)
	svc := NewMessageService(repo)

	_, err := svc.Send(context.Background(), 1, 1, "hi me")
	assert.ErrorIs(t, err, rentora_errors.ErrSelfMessage)
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestSendRejectsEmptyContent(t *testing.T) {
	repo := new(mocks.MessageRepositoryMock)
	svc := NewMessageService(repo)

	_, err := svc.Send(context.Background(), 1, 2, "")
	assert.ErrorIs(t, err, rentora_errors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestSendPersistsAndReloads(t *testing.T) {
	repo := new(mocks.MessageRepositoryMock)
	svc := NewMessageService(repo)

	created := time.Now()
	repo.On("Add", mock.Anything, mock.MatchedBy(func(m *domain.Message) bool {
		return m.SenderID == 1 && m.ReceiverID == 2 && m.Content == "hello" && !m.IsRead
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Message).ID = 7
	}).Return(nil).Once()
	repo.On("GetByID", mock.Anything, 7).Return(domain.Message{
		ID:         7,
		Content:    "hello",
		SenderID:   1,
		ReceiverID: 2,
		CreatedAt:  created,
		Sender:     domain.User{ID: 1, Name: "alice"},
		Receiver:   domain.User{ID: 2, Name: "bob"},
	}, nil).Once()

	view, err := svc.Send(context.Background(), 1, 2, "hello")
	require.NoError(t, err)
	assert.Equal(t, 7, view.ID)
	assert.Equal(t, "alice", view.Sender.Name)
	assert.Equal(t, "bob", view.Receiver.Name)
	assert.False(t, view.IsRead)
	repo.AssertExpectations(t)
}

func TestGetThreadMapsViews(t *testing.T) {
	repo := new(mocks.MessageRepositoryMock)
	svc := NewMessageService(repo)

	repo.On("GetThread", mock.Anything, 1, 2).Return([]domain.Message{
		{ID: 1, Content: "a", SenderID: 1, ReceiverID: 2, Sender: domain.User{ID: 1, Name: "alice"}},
		{ID: 2, Content: "b", SenderID: 2, ReceiverID: 1, IsRead: true, Sender: domain.User{ID: 2, Name: "bob"}},
	}, nil).Once()

	views, err := svc.GetThread(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "alice", views[0].Sender.Name)
	assert.True(t, views[1].IsRead)
}

func TestReadThreadDelegates(t *testing.T) {
	repo := new(mocks.MessageRepositoryMock)
	svc := NewMessageService(repo)

	repo.On("MarkThreadRead", mock.Anything, 1, 2).Return(nil).Once()
	require.NoError(t, svc.ReadThread(context.Background(), 1, 2))
	repo.AssertExpectations(t)
}
