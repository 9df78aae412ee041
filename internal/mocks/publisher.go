package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"rentora/internal/jobs"
)

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) PublishMail(ctx context.Context, job jobs.MailJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *PublisherMock) Close() error {
	args := m.Called()
	return args.Error(0)
}

// PhotoStorageMock fakes the object storage client.
type PhotoStorageMock struct {
	mock.Mock
}

func (m *PhotoStorageMock) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, body)
	return args.String(0), args.Error(1)
}

func (m *PhotoStorageMock) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
