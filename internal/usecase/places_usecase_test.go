package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/accessmap-service/internal/domain"
	apperrors "github.com/accessmap-service/internal/pkg/errors"
	"github.com/accessmap-service/internal/usecase"
)

func f(v float64) *float64 { return &v }

// MockGeodataRepository is a mock of GeodataRepository
type MockGeodataRepository struct {
	mock.Mock
}

func (m *MockGeodataRepository) FetchByAttribute(ctx context.Context, attr domain.AccessibilityAttribute, bounds domain.BoundingBox) ([]domain.OSMElement, error) {
	args := m.Called(ctx, attr, bounds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OSMElement), args.Error(1)
}

func (m *MockGeodataRepository) SupportsAttribute(attr domain.AccessibilityAttribute) bool {
	switch attr {
	case domain.AttrWheelchair, domain.AttrToilet, domain.AttrElevator, domain.AttrTactile:
		return true
	}
	return false
}

// MockGeocoderRepository is a mock of GeocoderRepository
type MockGeocoderRepository struct {
	mock.Mock
}

func (m *MockGeocoderRepository) SearchPlace(ctx context.Context, query string) (*domain.GeocodeResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeocodeResult), args.Error(1)
}

func (m *MockGeocoderRepository) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	args := m.Called(ctx, lat, lon)
	return args.String(0), args.Error(1)
}

// MockIPLocatorRepository is a mock of IPLocatorRepository
type MockIPLocatorRepository struct {
	mock.Mock
}

func (m *MockIPLocatorRepository) Locate(ctx context.Context) (*domain.ResolvedLocation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResolvedLocation), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

var testBounds = domain.BoundingBox{South: 28.5, North: 28.7, West: 77.1, East: 77.3}

func wheelchairNode(id int64, lat, lon float64, name string) domain.OSMElement {
	return domain.OSMElement{
		Type: "node", ID: id,
		Lat: f(lat), Lon: f(lon),
		Tags: map[string]string{"wheelchair": "yes", "name": name},
	}
}

func TestPlacesUseCase_Aggregate(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("empty filter set expands to the default attribute set", func(t *testing.T) {
		geodata := &MockGeodataRepository{}
		uc := usecase.NewPlacesUseCase(geodata, &MockGeocoderRepository{}, nil, logger, time.Minute)

		for _, attr := range domain.DefaultAttributes {
			geodata.On("FetchByAttribute", mock.Anything, attr, testBounds).
				Return([]domain.OSMElement{}, nil).Once()
		}

		places, err := uc.Aggregate(ctx, testBounds, nil)
		require.NoError(t, err)
		assert.Empty(t, places)
		geodata.AssertExpectations(t)
	})

	t.Run("duplicates by lat lng and name collapse to the first occurrence", func(t *testing.T) {
		geodata := &MockGeodataRepository{}
		uc := usecase.NewPlacesUseCase(geodata, &MockGeocoderRepository{}, nil, logger, time.Minute)

		geodata.On("FetchByAttribute", mock.Anything, domain.AttrWheelchair, testBounds).
			Return([]domain.OSMElement{
				wheelchairNode(1, 28.61, 77.21, "Metro Gate"),
				wheelchairNode(2, 28.61, 77.21, "Metro Gate"), // другой id, та же точка
				wheelchairNode(3, 28.62, 77.21, "Metro Gate"), // другая точка
			}, nil).Once()

		places, err := uc.Aggregate(ctx, testBounds, []domain.AccessibilityAttribute{domain.AttrWheelchair})
		require.NoError(t, err)
		require.Len(t, places, 2)
		assert.Equal(t, "node_1", places[0].ID)
		assert.Equal(t, "node_3", places[1].ID)
	})

	t.Run("elements without coordinates are dropped", func(t *testing.T) {
		geodata := &MockGeodataRepository{}
		uc := usecase.NewPlacesUseCase(geodata, &MockGeocoderRepository{}, nil, logger, time.Minute)

		geodata.On("FetchByAttribute", mock.Anything, domain.AttrWheelchair, testBounds).
			Return([]domain.OSMElement{
				{Type: "relation", ID: 9, Tags: map[string]string{"wheelchair": "yes"}},
				wheelchairNode(1, 28.61, 77.21, "Kept"),
			}, nil).Once()

		places, err := uc.Aggregate(ctx, testBounds, []domain.AccessibilityAttribute{domain.AttrWheelchair})
		require.NoError(t, err)
		require.Len(t, places, 1)
		assert.Equal(t, "Kept", places[0].Name)
	})

	t.Run("any failed query fails the whole aggregation", func(t *testing.T) {
		geodata := &MockGeodataRepository{}
		uc := usecase.NewPlacesUseCase(geodata, &MockGeocoderRepository{}, nil, logger, time.Minute)

		geodata.On("FetchByAttribute", mock.Anything, domain.AttrWheelchair, testBounds).
			Return([]domain.OSMElement{wheelchairNode(1, 28.61, 77.21, "X")}, nil).Maybe()
		geodata.On("FetchByAttribute", mock.Anything, domain.AttrToilet, testBounds).
			Return(nil, apperrors.ErrRateLimited).Once()

		places, err := uc.Aggregate(ctx, testBounds,
			[]domain.AccessibilityAttribute{domain.AttrWheelchair, domain.AttrToilet})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrRateLimited)
		assert.Nil(t, places)
	})

	t.Run("attributes without query generator produce no fan-out", func(t *testing.T) {
		geodata := &MockGeodataRepository{}
		uc := usecase.NewPlacesUseCase(geodata, &MockGeocoderRepository{}, nil, logger, time.Minute)

		places, err := uc.Aggregate(ctx, testBounds,
			[]domain.AccessibilityAttribute{domain.AttrBraille, domain.AttrElderly})
		require.NoError(t, err)
		assert.Empty(t, places)
		geodata.AssertNotCalled(t, "FetchByAttribute", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid bounds are rejected", func(t *testing.T) {
		uc := usecase.NewPlacesUseCase(&MockGeodataRepository{}, &MockGeocoderRepository{}, nil, logger, time.Minute)

		_, err := uc.Aggregate(ctx, domain.BoundingBox{South: 2, North: 1, West: 0, East: 1}, nil)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCoordinates)
	})

	t.Run("cache hit short-circuits the fan-out", func(t *testing.T) {
		geodata := &MockGeodataRepository{}
		cacheRepo := &MockCacheRepository{}
		uc := usecase.NewPlacesUseCase(geodata, &MockGeocoderRepository{}, cacheRepo, logger, time.Minute)

		cached := []domain.Place{{
			ID: "node_1", Name: "Cached", Lat: 28.61, Lng: 77.21,
			AccessibilityType: []domain.AccessibilityAttribute{domain.AttrWheelchair},
		}}
		data, _ := json.Marshal(cached)
		cacheRepo.On("Get", mock.Anything, mock.Anything).Return(data, nil).Once()

		places, err := uc.Aggregate(ctx, testBounds, []domain.AccessibilityAttribute{domain.AttrWheelchair})
		require.NoError(t, err)
		require.Len(t, places, 1)
		assert.Equal(t, "Cached", places[0].Name)
		geodata.AssertNotCalled(t, "FetchByAttribute", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("successful aggregation is written to the cache", func(t *testing.T) {
		geodata := &MockGeodataRepository{}
		cacheRepo := &MockCacheRepository{}
		uc := usecase.NewPlacesUseCase(geodata, &MockGeocoderRepository{}, cacheRepo, logger, time.Minute)

		cacheRepo.On("Get", mock.Anything, mock.Anything).Return(nil, nil).Once()
		geodata.On("FetchByAttribute", mock.Anything, domain.AttrWheelchair, testBounds).
			Return([]domain.OSMElement{wheelchairNode(1, 28.61, 77.21, "X")}, nil).Once()
		cacheRepo.On("Set", mock.Anything, mock.Anything, mock.Anything, time.Minute).Return(nil).Once()

		_, err := uc.Aggregate(ctx, testBounds, []domain.AccessibilityAttribute{domain.AttrWheelchair})
		require.NoError(t, err)
		cacheRepo.AssertExpectations(t)
	})

	t.Run("unknown attributes are ignored", func(t *testing.T) {
		geodata := &MockGeodataRepository{}
		uc := usecase.NewPlacesUseCase(geodata, &MockGeocoderRepository{}, nil, logger, time.Minute)

		geodata.On("FetchByAttribute", mock.Anything, domain.AttrWheelchair, testBounds).
			Return([]domain.OSMElement{}, nil).Once()

		_, err := uc.Aggregate(ctx, testBounds,
			[]domain.AccessibilityAttribute{domain.AttrWheelchair, "ramp"})
		require.NoError(t, err)
		geodata.AssertExpectations(t)
	})
}

func TestPlacesUseCase_SearchArea(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("geocodes the query and aggregates inside its bounds", func(t *testing.T) {
		geodata := &MockGeodataRepository{}
		geocoder := &MockGeocoderRepository{}
		uc := usecase.NewPlacesUseCase(geodata, geocoder, nil, logger, time.Minute)

		geocoder.On("SearchPlace", mock.Anything, "New Delhi").
			Return(&domain.GeocodeResult{
				Point:       domain.Point{Lat: 28.6139, Lon: 77.2090},
				DisplayName: "New Delhi, India",
				Bounds:      testBounds,
			}, nil).Once()
		geodata.On("FetchByAttribute", mock.Anything, domain.AttrWheelchair, testBounds).
			Return([]domain.OSMElement{wheelchairNode(1, 28.61, 77.21, "X")}, nil).Once()

		area, places, err := uc.SearchArea(ctx, "New Delhi",
			[]domain.AccessibilityAttribute{domain.AttrWheelchair})
		require.NoError(t, err)
		assert.Equal(t, "New Delhi, India", area.DisplayName)
		assert.Len(t, places, 1)
	})

	t.Run("unknown place propagates invalid location", func(t *testing.T) {
		geocoder := &MockGeocoderRepository{}
		uc := usecase.NewPlacesUseCase(&MockGeodataRepository{}, geocoder, nil, logger, time.Minute)

		geocoder.On("SearchPlace", mock.Anything, "nowhere").
			Return(nil, apperrors.ErrInvalidLocation).Once()

		_, _, err := uc.SearchArea(ctx, "nowhere", nil)
		assert.ErrorIs(t, err, apperrors.ErrInvalidLocation)
	})

	t.Run("blank query is rejected", func(t *testing.T) {
		uc := usecase.NewPlacesUseCase(&MockGeodataRepository{}, &MockGeocoderRepository{}, nil, logger, time.Minute)

		_, _, err := uc.SearchArea(ctx, "   ", nil)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
	})
}
