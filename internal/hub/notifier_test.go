package hub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentora/internal/services"
	"rentora/pkg/logger"
)

type friendSourceStub struct {
	mock.Mock
}

func (s *friendSourceStub) GetFriend(ctx context.Context, subjectID, viewerID int) (services.FriendView, error) {
	args := s.Called(ctx, subjectID, viewerID)
	var view services.FriendView
	if val := args.Get(0); val != nil {
		view = val.(services.FriendView)
	}
	return view, args.Error(1)
}

func (s *friendSourceStub) GetConnectionIDs(ctx context.Context, userID int) ([]string, error) {
	args := s.Called(ctx, userID)
	var ids []string
	if val := args.Get(0); val != nil {
		ids = val.([]string)
	}
	return ids, args.Error(1)
}

func TestFriendUpdatedDeliversAggregate(t *testing.T) {
	h := New(logger.NewNop())
	target := newTestClient(2)
	h.Register(target)

	source := new(friendSourceStub)
	source.On("GetConnectionIDs", mock.Anything, 2).Return([]string{target.ID}, nil).Once()
	source.On("GetFriend", mock.Anything, 1, 2).
		Return(services.FriendView{ID: 1, Name: "alice", IsOnline: true, MessageUnread: 3}, nil).Once()

	n := NewFriendNotifier(h, source, logger.NewNop())
	n.FriendUpdated(context.Background(), 1, 2)

	e := recvEnvelope(t, target)
	assert.Equal(t, EventUpdateFriend, e.Event)
	data, ok := e.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), data["id"])
	assert.Equal(t, "alice", data["name"])
	assert.Equal(t, true, data["isOnline"])
	assert.Equal(t, float64(3), data["messageUnread"])

	source.AssertExpectations(t)
}

func TestFriendUpdatedOfflineTargetSkipsLookup(t *testing.T) {
	h := New(logger.NewNop())
	source := new(friendSourceStub)
	source.On("GetConnectionIDs", mock.Anything, 2).Return([]string(nil), nil).Once()

	n := NewFriendNotifier(h, source, logger.NewNop())
	n.FriendUpdated(context.Background(), 1, 2)

	source.AssertNotCalled(t, "GetFriend", mock.Anything, mock.Anything, mock.Anything)
}

func TestFriendUpdatedLookupErrorIsSwallowed(t *testing.T) {
	h := New(logger.NewNop())
	target := newTestClient(2)
	h.Register(target)

	source := new(friendSourceStub)
	source.On("GetConnectionIDs", mock.Anything, 2).Return([]string{target.ID}, nil).Once()
	source.On("GetFriend", mock.Anything, 1, 2).Return(services.FriendView{}, assert.AnError).Once()

	n := NewFriendNotifier(h, source, logger.NewNop())
	n.FriendUpdated(context.Background(), 1, 2)

	assertNoFrame(t, target)
}
