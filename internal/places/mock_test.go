package places

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/clawfood/clawfood/pkg/nominatim"
)

// MockClient implements nominatim.Client for testing.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) Search(ctx context.Context, params nominatim.SearchParams) ([]nominatim.Place, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]nominatim.Place), args.Error(1)
}

func (m *MockClient) Reverse(ctx context.Context, lat, lon float64) (*nominatim.Place, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*nominatim.Place), args.Error(1)
}
