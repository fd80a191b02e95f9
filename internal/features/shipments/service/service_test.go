package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cargo-tracker/internal/core/metrics"
	"cargo-tracker/internal/features/shipments/domain"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockShipmentRepository is a mock implementation of ports.ShipmentRepository
type MockShipmentRepository struct {
	mock.Mock
	mu sync.Mutex
}

func (m *MockShipmentRepository) Create(ctx context.Context, shipment *domain.Shipment) error {
	args := m.Called(ctx, shipment)
	return args.Error(0)
}

func (m *MockShipmentRepository) Save(ctx context.Context, shipment *domain.Shipment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	args := m.Called(ctx, shipment)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id string) (*domain.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error) {
	args := m.Called(ctx, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) List(ctx context.Context) ([]domain.Shipment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testProgression(t *testing.T) *domain.Progression {
	t.Helper()
	tmpl, err := domain.NewTemplate(
		domain.StageDefinition{Name: "Received", Glyph: "📦"},
		domain.StageDefinition{Name: "Shipped", Glyph: "🚚"},
		domain.StageDefinition{Name: "Delivered", Glyph: "🏠"},
	)
	require.NoError(t, err)
	return domain.NewProgression(tmpl).WithClock(func() time.Time {
		return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	})
}

func stored(t *testing.T, p *domain.Progression, id, status string) domain.Shipment {
	t.Helper()
	stages, err := p.ApplyStatus(status)
	require.NoError(t, err)
	return domain.Shipment{
		ID:             id,
		TrackingNumber: "TN-" + id,
		CustomerName:   "Customer " + id,
		TransportMode:  domain.TransportModeAir,
		Status:         status,
		Stages:         stages,
	}
}

func TestShipmentService_Stages(t *testing.T) {
	svc := NewShipmentService(new(MockShipmentRepository), testProgression(t))

	stages := svc.Stages()
	require.Len(t, stages, 3)
	assert.Equal(t, "Received", stages[0].Name)
	assert.Equal(t, "🏠", stages[2].Glyph)
}

func TestShipmentService_CreateShipment(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockShipmentRepository)
		svc := NewShipmentService(mockRepo, testProgression(t))
		before := testutil.ToFloat64(metrics.ShipmentsCreatedTotal.WithLabelValues("Sea"))

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Shipment")).Return(nil).Once()

		shipment, err := svc.CreateShipment(ctx, domain.NewShipmentParams{
			TrackingNumber: "CN1",
			CustomerName:   "Rahim",
			TransportMode:  "sea",
			Status:         "Shipped",
		})
		require.NoError(t, err)
		assert.Equal(t, "Shipped", shipment.Status)
		assert.Equal(t, domain.TransportModeSea, shipment.TransportMode)
		assert.Equal(t, 1, shipment.CurrentStageIndex())
		assert.Equal(t, before+1, testutil.ToFloat64(metrics.ShipmentsCreatedTotal.WithLabelValues("Sea")))
		mockRepo.AssertExpectations(t)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		mockRepo := new(MockShipmentRepository)
		svc := NewShipmentService(mockRepo, testProgression(t))

		_, err := svc.CreateShipment(ctx, domain.NewShipmentParams{
			TrackingNumber: "CN1",
			CustomerName:   "Rahim",
			Status:         "Lost",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate", func(t *testing.T) {
		mockRepo := new(MockShipmentRepository)
		svc := NewShipmentService(mockRepo, testProgression(t))

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Shipment")).Return(domain.ErrDuplicateTrackingNumber).Once()

		_, err := svc.CreateShipment(ctx, domain.NewShipmentParams{TrackingNumber: "CN1", CustomerName: "Rahim"})
		assert.ErrorIs(t, err, domain.ErrDuplicateTrackingNumber)
		mockRepo.AssertExpectations(t)
	})

	t.Run("RepoError", func(t *testing.T) {
		mockRepo := new(MockShipmentRepository)
		svc := NewShipmentService(mockRepo, testProgression(t))

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Shipment")).Return(errors.New("redis down")).Once()

		_, err := svc.CreateShipment(ctx, domain.NewShipmentParams{TrackingNumber: "CN1", CustomerName: "Rahim"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "service: failed to create shipment")
		mockRepo.AssertExpectations(t)
	})
}

func TestShipmentService_ListShipments(t *testing.T) {
	ctx := context.Background()
	p := testProgression(t)

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockShipmentRepository)
		svc := NewShipmentService(mockRepo, p)
		expected := []domain.Shipment{stored(t, p, "A", "Received")}

		mockRepo.On("List", ctx).Return(expected, nil).Once()

		shipments, err := svc.ListShipments(ctx)
		require.NoError(t, err)
		assert.Equal(t, expected, shipments)
	})

	t.Run("RepoError", func(t *testing.T) {
		mockRepo := new(MockShipmentRepository)
		svc := NewShipmentService(mockRepo, p)

		mockRepo.On("List", ctx).Return(nil, errors.New("redis down")).Once()

		_, err := svc.ListShipments(ctx)
		assert.Error(t, err)
	})
}

func TestShipmentService_TrackShipment(t *testing.T) {
	ctx := context.Background()
	p := testProgression(t)

	t.Run("TrimsInput", func(t *testing.T) {
		mockRepo := new(MockShipmentRepository)
		svc := NewShipmentService(mockRepo, p)
		expected := stored(t, p, "A", "Shipped")

		mockRepo.On("GetByTrackingNumber", ctx, "TN-A").Return(&expected, nil).Once()

		shipment, err := svc.TrackShipment(ctx, "  TN-A ")
		require.NoError(t, err)
		assert.Equal(t, "Shipped", shipment.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Blank", func(t *testing.T) {
		svc := NewShipmentService(new(MockShipmentRepository), p)

		_, err := svc.TrackShipment(ctx, "   ")
		assert.ErrorIs(t, err, domain.ErrTrackingNumberRequired)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(MockShipmentRepository)
		svc := NewShipmentService(mockRepo, p)

		mockRepo.On("GetByTrackingNumber", ctx, "TN-X").Return(nil, domain.ErrShipmentNotFound).Once()

		_, err := svc.TrackShipment(ctx, "TN-X")
		assert.ErrorIs(t, err, domain.ErrShipmentNotFound)
	})
}

func TestShipmentService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	p := testProgression(t)

	t.Run("Backwards", func(t *testing.T) {
		mockRepo := new(MockShipmentRepository)
		svc := NewShipmentService(mockRepo, p)
		current := stored(t, p, "A", "Delivered")

		mockRepo.On("Get", ctx, "A").Return(&current, nil).Once()
		mockRepo.On("Save", ctx, mock.MatchedBy(func(s *domain.Shipment) bool {
			return s.ID == "A" && s.Status == "Received" && s.CurrentStageIndex() == 0
		})).Return(nil).Once()

		updated, err := svc.UpdateStatus(ctx, "A", "Received")
		require.NoError(t, err)
		assert.Equal(t, "Received", updated.Status)
		assert.Equal(t, "Delivered", current.Status, "loaded shipment must not be mutated")
		mockRepo.AssertExpectations(t)
	})

	t.Run("InvalidStatusBeforeLoad", func(t *testing.T) {
		mockRepo := new(MockShipmentRepository)
		svc := NewShipmentService(mockRepo, p)

		_, err := svc.UpdateStatus(ctx, "A", "Lost")
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
		mockRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(MockShipmentRepository)
		svc := NewShipmentService(mockRepo, p)

		mockRepo.On("Get", ctx, "missing").Return(nil, domain.ErrShipmentNotFound).Once()

		_, err := svc.UpdateStatus(ctx, "missing", "Shipped")
		assert.ErrorIs(t, err, domain.ErrShipmentNotFound)
	})

	t.Run("DeletedBeforeSave", func(t *testing.T) {
		mockRepo := new(MockShipmentRepository)
		svc := NewShipmentService(mockRepo, p)
		current := stored(t, p, "A", "Received")

		mockRepo.On("Get", ctx, "A").Return(&current, nil).Once()
		mockRepo.On("Save", ctx, mock.AnythingOfType("*domain.Shipment")).Return(domain.ErrShipmentNotFound).Once()

		_, err := svc.UpdateStatus(ctx, "A", "Shipped")
		assert.ErrorIs(t, err, domain.ErrShipmentNotFound)
	})

	t.Run("SameStatusIsNotCountedAsModified", func(t *testing.T) {
		mockRepo := new(MockShipmentRepository)
		svc := NewShipmentService(mockRepo, p)
		current := stored(t, p, "A", "Shipped")

		mockRepo.On("Get", ctx, "A").Return(&current, nil).Once()
		mockRepo.On("Save", ctx, mock.AnythingOfType("*domain.Shipment")).Return(nil).Once()

		before := testutil.ToFloat64(metrics.ShipmentsModifiedTotal)
		_, err := svc.UpdateStatus(ctx, "A", "Shipped")
		require.NoError(t, err)
		assert.Equal(t, before, testutil.ToFloat64(metrics.ShipmentsModifiedTotal))
	})
}

// TestShipmentService_BulkUpdateStatus_Scenario verifies that A and B are delivered and C is untouched.
func TestShipmentService_BulkUpdateStatus_Scenario(t *testing.T) {
	ctx := context.Background()
	p := testProgression(t)
	mockRepo := new(MockShipmentRepository)
	svc := NewShipmentService(mockRepo, p, WithBulkConcurrency(2))

	mockRepo.On("List", ctx).Return([]domain.Shipment{
		stored(t, p, "A", "Received"),
		stored(t, p, "B", "Shipped"),
		stored(t, p, "C", "Received"),
	}, nil).Once()

	var saved []domain.Shipment
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Shipment")).
		Run(func(args mock.Arguments) {
			saved = append(saved, *args.Get(1).(*domain.Shipment))
		}).
		Return(nil).Twice()

	before := testutil.ToFloat64(metrics.StatusUpdatesTotal.WithLabelValues(metrics.ModeBulk))

	result, err := svc.BulkUpdateStatus(ctx, []string{"A", "B", "A", "missing"}, "Delivered")
	require.NoError(t, err)

	assert.Equal(t, "Delivered", result.Status)
	assert.Equal(t, 2, result.Matched)
	assert.Equal(t, 2, result.Modified)
	assert.Equal(t, []string{"missing"}, result.Missing)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.StatusUpdatesTotal.WithLabelValues(metrics.ModeBulk)))

	require.Len(t, saved, 2)
	ids := []string{saved[0].ID, saved[1].ID}
	assert.ElementsMatch(t, []string{"A", "B"}, ids)
	for _, s := range saved {
		assert.Equal(t, "Delivered", s.Status)
		assert.Equal(t, 2, s.CurrentStageIndex())
		for _, stage := range s.Stages {
			assert.True(t, stage.Done)
		}
		assert.NoError(t, s.Validate())
	}
	mockRepo.AssertExpectations(t)
}

func TestShipmentService_BulkUpdateStatus_ModifiedCountsChanges(t *testing.T) {
	ctx := context.Background()
	p := testProgression(t)
	mockRepo := new(MockShipmentRepository)
	svc := NewShipmentService(mockRepo, p)

	mockRepo.On("List", ctx).Return([]domain.Shipment{
		stored(t, p, "A", "Shipped"),
		stored(t, p, "B", "Received"),
	}, nil).Once()
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Shipment")).Return(nil).Twice()

	before := testutil.ToFloat64(metrics.ShipmentsModifiedTotal)

	result, err := svc.BulkUpdateStatus(ctx, []string{"A", "B"}, "Shipped")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Matched)
	assert.Equal(t, 1, result.Modified)
	assert.Empty(t, result.Missing)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ShipmentsModifiedTotal))
}

// TestShipmentService_BulkUpdateStatus_DeletedDuringUpdate verifies that a
// shipment removed between the listing and its write is reported as missing.
func TestShipmentService_BulkUpdateStatus_DeletedDuringUpdate(t *testing.T) {
	ctx := context.Background()
	p := testProgression(t)
	mockRepo := new(MockShipmentRepository)
	svc := NewShipmentService(mockRepo, p, WithBulkConcurrency(1))

	mockRepo.On("List", ctx).Return([]domain.Shipment{
		stored(t, p, "A", "Received"),
		stored(t, p, "B", "Received"),
	}, nil).Once()
	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(s *domain.Shipment) bool { return s.ID == "A" })).Return(nil).Once()
	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(s *domain.Shipment) bool { return s.ID == "B" })).
		Return(domain.ErrShipmentNotFound).Once()

	result, err := svc.BulkUpdateStatus(ctx, []string{"A", "B"}, "Delivered")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Matched)
	assert.Equal(t, 1, result.Modified)
	assert.Equal(t, []string{"B"}, result.Missing)
	mockRepo.AssertExpectations(t)
}

// TestShipmentService_BulkUpdateStatus_ValidationFirst verifies that bad input never reaches the store.
func TestShipmentService_BulkUpdateStatus_ValidationFirst(t *testing.T) {
	ctx := context.Background()
	p := testProgression(t)

	tests := []struct {
		name        string
		ids         []string
		status      string
		expectedErr error
	}{
		{name: "NilSelection", ids: nil, status: "Delivered", expectedErr: domain.ErrEmptySelection},
		{name: "BlankSelection", ids: []string{" ", ""}, status: "Delivered", expectedErr: domain.ErrEmptySelection},
		{name: "UnknownStatus", ids: []string{"A"}, status: "Lost", expectedErr: domain.ErrInvalidStatus},
		{name: "EmptyStatus", ids: []string{"A"}, status: "", expectedErr: domain.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockShipmentRepository)
			svc := NewShipmentService(mockRepo, p)

			result, err := svc.BulkUpdateStatus(ctx, tt.ids, tt.status)
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, result)
			mockRepo.AssertNotCalled(t, "List", mock.Anything)
			mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestShipmentService_BulkUpdateStatus_SaveError(t *testing.T) {
	ctx := context.Background()
	p := testProgression(t)
	mockRepo := new(MockShipmentRepository)
	svc := NewShipmentService(mockRepo, p, WithBulkConcurrency(1))

	mockRepo.On("List", ctx).Return([]domain.Shipment{stored(t, p, "A", "Received")}, nil).Once()
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Shipment")).Return(errors.New("redis down")).Once()

	result, err := svc.BulkUpdateStatus(ctx, []string{"A"}, "Shipped")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "shipment A")
}

func TestShipmentService_DeleteShipment(t *testing.T) {
	ctx := context.Background()
	p := testProgression(t)

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockShipmentRepository)
		svc := NewShipmentService(mockRepo, p)

		mockRepo.On("Delete", ctx, "A").Return(nil).Once()

		assert.NoError(t, svc.DeleteShipment(ctx, "A"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(MockShipmentRepository)
		svc := NewShipmentService(mockRepo, p)

		mockRepo.On("Delete", ctx, "A").Return(domain.ErrShipmentNotFound).Once()

		assert.ErrorIs(t, svc.DeleteShipment(ctx, "A"), domain.ErrShipmentNotFound)
	})
}

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, uniqueIDs([]string{" a", "b", "a", "", "b "}))
	assert.Empty(t, uniqueIDs(nil))
}
