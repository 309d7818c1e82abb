package bot

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invoice-extract/models"
)

type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) SendMessage(ctx context.Context, to, text string) error {
	args := m.Called(ctx, to, text)
	return args.Error(0)
}

type MockMediaFetcher struct {
	mock.Mock
}

func (m *MockMediaFetcher) DownloadMedia(ctx context.Context, mediaID string) ([]byte, error) {
	args := m.Called(ctx, mediaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

type MockRecognizer struct {
	mock.Mock
}

func (m *MockRecognizer) Recognize(ctx context.Context, key string) ([]string, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockRegistrationStore struct {
	mock.Mock
}

func (m *MockRegistrationStore) GetRegistration(ctx context.Context, sender string) (string, bool, error) {
	args := m.Called(ctx, sender)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockRegistrationStore) PutRegistration(ctx context.Context, sender, taxID string) error {
	args := m.Called(ctx, sender, taxID)
	return args.Error(0)
}

type MockTransactionStore struct {
	mock.Mock
}

func (m *MockTransactionStore) PutTransaction(ctx context.Context, tx *models.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

type MockDocumentProcessor struct {
	mock.Mock
}

func (m *MockDocumentProcessor) Process(ctx context.Context, sender, mediaID, taxID string) Outcome {
	args := m.Called(ctx, sender, mediaID, taxID)
	return args.Get(0).(Outcome)
}
