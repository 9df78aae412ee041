package services

import (
	"context"
	"fmt"

	"rentora/config"
	"rentora/internal/domain"
	"rentora/internal/jobs"
	"rentora/internal/repository"
)

type ContactService struct {
	repo      repository.ContactRepository
	publisher jobs.Publisher
	cfg       *config.Config
}

func NewContactService(repo repository.ContactRepository, publisher jobs.Publisher, cfg *config.Config) *ContactService {
	return &ContactService{repo: repo, publisher: publisher, cfg: cfg}
}

func (s *ContactService) GetAll(ctx context.Context) ([]domain.Contact, error) {
	return s.repo.GetAll(ctx)
}

func (s *ContactService) GetByID(ctx context.Context, id int) (domain.Contact, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ContactService) Create(ctx context.Context, c domain.Contact) (domain.Contact, error) {
	if err := s.repo.Create(ctx, &c); err != nil {
		return domain.Contact{}, err
	}

	body := fmt.Sprintf("<h3>New contact message</h3><p>From: %s (%s, %s)</p><p>%s</p>",
		c.Name, c.Email, c.Phone, c.Message)
	_ = s.publisher.PublishMail(ctx, jobs.MailJob{
		To:      s.cfg.ContactInbox,
		Subject: "New contact message from " + c.Name,
		Body:    body,
	})

	return c, nil
}

func (s *ContactService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
