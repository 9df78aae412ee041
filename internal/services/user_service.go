package services

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"rentora/config"
	"rentora/internal/domain"
	"rentora/internal/jobs"
	"rentora/internal/repository"
	rentora_errors "rentora/pkg/errors"

	"github.com/google/uuid"
)

// FriendView is the presence aggregate of one user as seen by another:
// online iff the subject has at least one live connection, unread counting
// only messages the subject sent to the viewer.
type FriendView struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	IsOnline      bool   `json:"isOnline"`
	MessageUnread int64  `json:"messageUnread"`
}

type UserService struct {
	repo        repository.UserRepository
	messageRepo repository.MessageRepository
	publisher   jobs.Publisher
	cfg         *config.Config
}

func NewUserService(
	repo repository.UserRepository,
	messageRepo repository.MessageRepository,
	publisher jobs.Publisher,
	cfg *config.Config,
) *UserService {
	return &UserService{repo: repo, messageRepo: messageRepo, publisher: publisher, cfg: cfg}
}

type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type UpdateProfileInput struct {
	Name        string
	Phone       string
	Password    string
	NewPassword string
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return domain.User{}, rentora_errors.ErrAlreadyExists
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		Name:             in.Name,
		Email:            in.Email,
		Phone:            in.Phone,
		Role:             domain.RoleLandlord,
		PasswordHash:     hash,
		EmailVerifyToken: uuid.New().String(),
	}
	if err := s.repo.Create(ctx, &u); err != nil {
		return domain.User{}, err
	}

	link := fmt.Sprintf("%s/api/v1/users/confirm-email?email=%s&token=%s",
		s.cfg.APIURL, url.QueryEscape(u.Email), u.EmailVerifyToken)
	body := fmt.Sprintf(`<h3>Thanks for registering with Rentora</h3><br><a href=%q>Click here to verify your email</a>`, link)
	_ = s.publisher.PublishMail(ctx, jobs.MailJob{To: u.Email, Subject: "Verify your email", Body: body})

	return u, nil
}

func (s *UserService) ConfirmEmail(ctx context.Context, email, token string) error {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if token == "" || u.EmailVerifyToken != token {
		return rentora_errors.ErrInvalidInput
	}
	u.IsActive = true
	return s.repo.Update(ctx, u)
}

func (s *UserService) Login(ctx context.Context, email, password string) (domain.User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return domain.User{}, rentora_errors.ErrUnauthorized
	}
	if !CheckPassword(u.PasswordHash, password) {
		return domain.User{}, rentora_errors.ErrUnauthorized
	}
	if !u.IsActive {
		return domain.User{}, rentora_errors.ErrInactiveUser
	}
	return u, nil
}

// ForgotPassword is silent about unknown addresses so it cannot be used to
// probe for accounts.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil
	}

	token := uuid.New().String()
	expire := time.Now().Add(24 * time.Hour)
	u.ResetToken = &token
	u.ResetTokenExpire = &expire
	if err := s.repo.Update(ctx, u); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?email=%s&token=%s",
		s.cfg.FrontendURL, url.QueryEscape(u.Email), token)
	body := fmt.Sprintf(`<h3>Choose a new password</h3><br><a href=%q>Reset password</a><br>The link is valid for 24 hours and can be used once.`, link)
	_ = s.publisher.PublishMail(ctx, jobs.MailJob{To: u.Email, Subject: "Reset your password", Body: body})

	return nil
}

func (s *UserService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return rentora_errors.ErrInvalidInput
	}
	if u.ResetToken == nil || *u.ResetToken != token ||
		u.ResetTokenExpire == nil || u.ResetTokenExpire.Before(time.Now()) {
		return rentora_errors.ErrInvalidInput
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.ResetToken = nil
	u.ResetTokenExpire = nil
	return s.repo.Update(ctx, u)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.GetAll(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id int) (domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int, in UpdateProfileInput) (domain.User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Phone != "" {
		u.Phone = in.Phone
	}
	if in.NewPassword != "" {
		if !CheckPassword(u.PasswordHash, in.Password) {
			return domain.User{}, rentora_errors.ErrUnauthorized
		}
		hash, err := HashPassword(in.NewPassword)
		if err != nil {
			return domain.User{}, err
		}
		u.PasswordHash = hash
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// --- connection registry and friend graph ---

func (s *UserService) AddConnection(ctx context.Context, userID int, connectionID string) error {
	return s.repo.AddConnection(ctx, &domain.Connection{
		ConnectionID: connectionID,
		UserID:       userID,
	})
}

func (s *UserService) DeleteConnection(ctx context.Context, connectionID string) error {
	return s.repo.DeleteConnection(ctx, connectionID)
}

func (s *UserService) GetConnectionIDs(ctx context.Context, userID int) ([]string, error) {
	return s.repo.GetConnectionIDs(ctx, userID)
}

func (s *UserService) GetFriendIDs(ctx context.Context, userID int) ([]int, error) {
	return s.repo.GetFriendIDs(ctx, userID)
}

// GetFriend returns the aggregate of subjectID from viewerID's perspective.
func (s *UserService) GetFriend(ctx context.Context, subjectID, viewerID int) (FriendView, error) {
	u, err := s.repo.GetByID(ctx, subjectID)
	if err != nil {
		return FriendView{}, err
	}
	connIDs, err := s.repo.GetConnectionIDs(ctx, subjectID)
	if err != nil {
		return FriendView{}, err
	}
	unread, err := s.messageRepo.CountUnread(ctx, subjectID, viewerID)
	if err != nil {
		return FriendView{}, err
	}
	return FriendView{
		ID:            u.ID,
		Name:          u.Name,
		IsOnline:      len(connIDs) > 0,
		MessageUnread: unread,
	}, nil
}

// GetFriends returns the aggregates of everyone userID has exchanged messages
// with. A user with no message history has no friends and gets an empty list.
func (s *UserService) GetFriends(ctx context.Context, userID int) ([]FriendView, error) {
	friendIDs, err := s.repo.GetFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	friends := make([]FriendView, 0, len(friendIDs))
	for _, id := range friendIDs {
		view, err := s.GetFriend(ctx, id, userID)
		if err != nil {
			return nil, err
		}
		friends = append(friends, view)
	}
	return friends, nil
}
