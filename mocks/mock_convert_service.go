package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"slidetext/internal/domain"
	"slidetext/internal/service"
)

// MockConvertService is a mock implementation of service.ConvertService.
type MockConvertService struct {
	mock.Mock
}

func (m *MockConvertService) Convert(ctx context.Context, input service.ConvertInput) (*domain.ConversionResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionResult), args.Error(1)
}
