package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"slidetext/internal/domain"
)

// MockTextExtractor is a mock implementation of port.TextExtractor.
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) Extract(ctx context.Context, upload *domain.Upload) (*domain.Extraction, error) {
	args := m.Called(ctx, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Extraction), args.Error(1)
}
