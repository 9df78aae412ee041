package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentora/config"
	"rentora/internal/domain"
	"rentora/internal/mocks"
	rentora_errors "rentora/pkg/errors"
)

func testUserService(userRepo *mocks.UserRepositoryMock, messageRepo *mocks.MessageRepositoryMock, publisher *mocks.PublisherMock) *UserService {
	cfg := &config.Config{
		APIURL:      "http://api.test",
		FrontendURL: "http://app.test",
	}
	return NewUserService(userRepo, messageRepo, publisher, cfg)
}

func TestRegisterQueuesVerificationMail(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	publisher := new(mocks.PublisherMock)
	svc := testUserService(userRepo, new(mocks.MessageRepositoryMock), publisher)

	userRepo.On("GetByEmail", mock.Anything, "new@test.io").Return(domain.User{}, rentora_errors.ErrNotFound).Once()
	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	publisher.On("PublishMail", mock.Anything, mock.Anything).Return(nil).Once()

	u, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Alice",
		Email:    "new@test.io",
		Password: "s3cret!",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)
	assert.NotEmpty(t, u.EmailVerifyToken)
	assert.False(t, u.IsActive)
	assert.True(t, CheckPassword(u.PasswordHash, "s3cret!"))

	userRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	svc := testUserService(userRepo, new(mocks.MessageRepositoryMock), new(mocks.PublisherMock))

	userRepo.On("GetByEmail", mock.Anything, "taken@test.io").Return(domain.User{ID: 1}, nil).Once()

	_, err := svc.Register(context.Background(), RegisterInput{Email: "taken@test.io", Password: "x"})
	assert.ErrorIs(t, err, rentora_errors.ErrAlreadyExists)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestConfirmEmail(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	svc := testUserService(userRepo, new(mocks.MessageRepositoryMock), new(mocks.PublisherMock))

	stored := domain.User{ID: 1, Email: "a@test.io", EmailVerifyToken: "tok"}
	userRepo.On("GetByEmail", mock.Anything, "a@test.io").Return(stored, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.IsActive
	})).Return(nil).Once()

	require.NoError(t, svc.ConfirmEmail(context.Background(), "a@test.io", "tok"))

	err := svc.ConfirmEmail(context.Background(), "a@test.io", "wrong")
	assert.ErrorIs(t, err, rentora_errors.ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	hash, err := HashPassword("letmein")
	require.NoError(t, err)
	stored := domain.User{ID: 5, Email: "a@test.io", PasswordHash: hash, IsActive: true}

	userRepo := new(mocks.UserRepositoryMock)
	svc := testUserService(userRepo, new(mocks.MessageRepositoryMock), new(mocks.PublisherMock))
	userRepo.On("GetByEmail", mock.Anything, "a@test.io").Return(stored, nil)

	u, err := svc.Login(context.Background(), "a@test.io", "letmein")
	require.NoError(t, err)
	assert.Equal(t, 5, u.ID)

	_, err = svc.Login(context.Background(), "a@test.io", "wrong")
	assert.ErrorIs(t, err, rentora_errors.ErrUnauthorized)
}

func TestLoginInactiveAccount(t *testing.T) {
	hash, _ := HashPassword("letmein")
	stored := domain.User{ID: 5, PasswordHash: hash, IsActive: false}

	userRepo := new(mocks.UserRepositoryMock)
	svc := testUserService(userRepo, new(mocks.MessageRepositoryMock), new(mocks.PublisherMock))
	userRepo.On("GetByEmail", mock.Anything, "a@test.io").Return(stored, nil).Once()

	_, err := svc.Login(context.Background(), "a@test.io", "letmein")
	assert.ErrorIs(t, err, rentora_errors.ErrInactiveUser)
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	publisher := new(mocks.PublisherMock)
	svc := testUserService(userRepo, new(mocks.MessageRepositoryMock), publisher)

	userRepo.On("GetByEmail", mock.Anything, "ghost@test.io").Return(domain.User{}, rentora_errors.ErrNotFound).Once()

	assert.NoError(t, svc.ForgotPassword(context.Background(), "ghost@test.io"))
	publisher.AssertNotCalled(t, "PublishMail", mock.Anything, mock.Anything)
}

func TestResetPasswordSingleUse(t *testing.T) {
	token := "reset-tok"
	expire := time.Now().Add(time.Hour)
	stored := domain.User{ID: 1, Email: "a@test.io", ResetToken: &token, ResetTokenExpire: &expire}

	userRepo := new(mocks.UserRepositoryMock)
	svc := testUserService(userRepo, new(mocks.MessageRepositoryMock), new(mocks.PublisherMock))
	userRepo.On("GetByEmail", mock.Anything, "a@test.io").Return(stored, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.ResetToken == nil && u.ResetTokenExpire == nil && CheckPassword(u.PasswordHash, "newpass")
	})).Return(nil).Once()

	require.NoError(t, svc.ResetPassword(context.Background(), "a@test.io", token, "newpass"))
	userRepo.AssertExpectations(t)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	token := "reset-tok"
	expire := time.Now().Add(-time.Minute)
	stored := domain.User{ID: 1, ResetToken: &token, ResetTokenExpire: &expire}

	userRepo := new(mocks.UserRepositoryMock)
	svc := testUserService(userRepo, new(mocks.MessageRepositoryMock), new(mocks.PublisherMock))
	userRepo.On("GetByEmail", mock.Anything, "a@test.io").Return(stored, nil).Once()

	err := svc.ResetPassword(context.Background(), "a@test.io", token, "newpass")
	assert.ErrorIs(t, err, rentora_errors.ErrInvalidInput)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGetFriendDerivesOnlineAndUnread(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	messageRepo := new(mocks.MessageRepositoryMock)
	svc := testUserService(userRepo, messageRepo, new(mocks.PublisherMock))

	userRepo.On("GetByID", mock.Anything, 2).Return(domain.User{ID: 2, Name: "bob"}, nil).Once()
	userRepo.On("GetConnectionIDs", mock.Anything, 2).Return([]string{"conn-1"}, nil).Once()
	messageRepo.On("CountUnread", mock.Anything, 2, 1).Return(int64(4), nil).Once()

	view, err := svc.GetFriend(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.Equal(t, FriendView{ID: 2, Name: "bob", IsOnline: true, MessageUnread: 4}, view)
}

func TestGetFriendOffline(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	messageRepo := new(mocks.MessageRepositoryMock)
	svc := testUserService(userRepo, messageRepo, new(mocks.PublisherMock))

	userRepo.On("GetByID", mock.Anything, 2).Return(domain.User{ID: 2, Name: "bob"}, nil).Once()
	userRepo.On("GetConnectionIDs", mock.Anything, 2).Return([]string{}, nil).Once()
	messageRepo.On("CountUnread", mock.Anything, 2, 1).Return(int64(0), nil).Once()

	view, err := svc.GetFriend(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.False(t, view.IsOnline)
	assert.Zero(t, view.MessageUnread)
}

func TestGetFriendsEmptyHistory(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	svc := testUserService(userRepo, new(mocks.MessageRepositoryMock), new(mocks.PublisherMock))

	userRepo.On("GetFriendIDs", mock.Anything, 1).Return([]int{}, nil).Once()

	friends, err := svc.GetFriends(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, friends)
	assert.Empty(t, friends)
}

func TestGetFriendsPerFriendAggregates(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	messageRepo := new(mocks.MessageRepositoryMock)
	svc := testUserService(userRepo, messageRepo, new(mocks.PublisherMock))

	userRepo.On("GetFriendIDs", mock.Anything, 1).Return([]int{2, 3}, nil).Once()
	userRepo.On("GetByID", mock.Anything, 2).Return(domain.User{ID: 2, Name: "bob"}, nil).Once()
	userRepo.On("GetByID", mock.Anything, 3).Return(domain.User{ID: 3, Name: "carol"}, nil).Once()
	userRepo.On("GetConnectionIDs", mock.Anything, 2).Return([]string{"c1"}, nil).Once()
	userRepo.On("GetConnectionIDs", mock.Anything, 3).Return([]string(nil), nil).Once()
	messageRepo.On("CountUnread", mock.Anything, 2, 1).Return(int64(2), nil).Once()
	messageRepo.On("CountUnread", mock.Anything, 3, 1).Return(int64(0), nil).Once()

	friends, err := svc.GetFriends(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, friends, 2)
	assert.True(t, friends[0].IsOnline)
	assert.Equal(t, int64(2), friends[0].MessageUnread)
	assert.False(t, friends[1].IsOnline)
}

func TestUpdateProfilePasswordChangeNeedsCurrent(t *testing.T) {
	hash, _ := HashPassword("current")
	userRepo := new(mocks.UserRepositoryMock)
	svc := testUserService(userRepo, new(mocks.MessageRepositoryMock), new(mocks.PublisherMock))

	userRepo.On("GetByID", mock.Anything, 1).Return(domain.User{ID: 1, PasswordHash: hash}, nil)

	_, err := svc.UpdateProfile(context.Background(), 1, UpdateProfileInput{
		Password:    "wrong",
		NewPassword: "next",
	})
	assert.ErrorIs(t, err, rentora_errors.ErrUnauthorized)

	userRepo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
	u, err := svc.UpdateProfile(context.Background(), 1, UpdateProfileInput{
		Password:    "current",
		NewPassword: "next",
	})
	require.NoError(t, err)
	assert.True(t, CheckPassword(u.PasswordHash, "next"))
}
