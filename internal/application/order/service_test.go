package order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kobo/backend/internal/domain/order"
	"github.com/kobo/backend/internal/domain/shared"
	"github.com/kobo/backend/internal/domain/shared/valueobject"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id order.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByStatus(ctx context.Context, status order.Status) ([]order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByBuyerName(ctx context.Context, name string) ([]order.Order, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context) ([]order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Exists(ctx context.Context, id order.ID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func newTestOrder(t *testing.T, rawID string, orderedAt time.Time) *order.Order {
	t.Helper()
	raw := order.RawOrder{
		OrderID:     rawID,
		Platform:    "minne",
		BuyerName:   "山田 太郎",
		PostalCode:  "150-0041",
		Prefecture:  "東京都",
		City:        "渋谷区",
		Street:      "神南1-2-3",
		PhoneNumber: "090-1234-5678",
		ProductName: "ハンドメイドアクセサリー",
		PriceYen:    2500,
		OrderedAt:   orderedAt,
	}
	o, err := order.FromRaw(raw)
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func TestService_GetByID(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, 0)

	o := newTestOrder(t, "ORD-001", time.Now())
	repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	resp, err := svc.GetByID(context.Background(), "ORD-001")
	require.NoError(t, err)
	assert.Equal(t, "ORD-001", resp.OrderID)
	assert.Equal(t, "山田 太郎", resp.BuyerName)
	assert.Equal(t, "¥2,500", resp.PriceDisplay)
	assert.Equal(t, "pending", resp.Status)
	repo.AssertExpectations(t)
}

func TestService_GetByID_NotFound(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, 0)

	repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, order.ErrOrderNotFound)

	_, err := svc.GetByID(context.Background(), "ORD-404")
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestService_ListPending(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, 3)

	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	old := newTestOrder(t, "ORD-001", now.AddDate(0, 0, -5))
	fresh := newTestOrder(t, "ORD-002", now.AddDate(0, 0, -1))

	repo.On("FindByStatus", mock.Anything, order.StatusPending).Return([]order.Order{*old, *fresh}, nil)

	resp, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, resp, 2)

	assert.Equal(t, "ORD-001", resp[0].OrderID)
	assert.Equal(t, 5, resp[0].DaysSinceOrder)
	assert.True(t, resp[0].Overdue)

	assert.Equal(t, "ORD-002", resp[1].OrderID)
	assert.Equal(t, 1, resp[1].DaysSinceOrder)
	assert.False(t, resp[1].Overdue)
}

func TestService_SearchByBuyerName_RejectsBlank(t *testing.T) {
	svc := NewService(new(MockOrderRepository), 0)

	_, err := svc.SearchByBuyerName(context.Background(), "   ")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestService_MarkAsShipped(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, 0)

	o := newTestOrder(t, "ORD-001", time.Now())
	repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	repo.On("Save", mock.Anything, o).Return(nil)

	tracking := "1234-5678-9012"
	resp, err := svc.MarkAsShipped(context.Background(), MarkShippedRequest{
		OrderID:        "ORD-001",
		ShippingMethod: "click_post",
		TrackingNumber: &tracking,
	})
	require.NoError(t, err)
	assert.Equal(t, "shipped", resp.Status)
	assert.Equal(t, "click_post", resp.ShippingMethod)
	assert.Equal(t, "1234-5678-9012", resp.TrackingNumber)
	require.NotNil(t, resp.ShippedAt)
	repo.AssertExpectations(t)
}

func TestService_MarkAsShipped_WithoutTracking(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, 0)

	o := newTestOrder(t, "ORD-002", time.Now())
	repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	repo.On("Save", mock.Anything, o).Return(nil)

	resp, err := svc.MarkAsShipped(context.Background(), MarkShippedRequest{
		OrderID:        "ORD-002",
		ShippingMethod: "yamato_compact",
	})
	require.NoError(t, err)
	assert.Empty(t, resp.TrackingNumber)
}

func TestService_MarkAsShipped_BlankTracking(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, 0)

	o := newTestOrder(t, "ORD-001", time.Now())
	repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	// Supplying a tracking number and leaving it blank are different things
	blank := "   "
	_, err := svc.MarkAsShipped(context.Background(), MarkShippedRequest{
		OrderID:        "ORD-001",
		ShippingMethod: "click_post",
		TrackingNumber: &blank,
	})
	assert.ErrorIs(t, err, valueobject.ErrEmptyTrackingNumber)
	assert.True(t, o.IsPending(), "failed request leaves the order pending")
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_MarkAsShipped_NotFound(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, 0)

	repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, order.ErrOrderNotFound)

	_, err := svc.MarkAsShipped(context.Background(), MarkShippedRequest{
		OrderID:        "ORD-404",
		ShippingMethod: "click_post",
	})
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_MarkAsShipped_AlreadyShipped(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, 0)

	o := newTestOrder(t, "ORD-001", time.Now())
	require.NoError(t, o.MarkShipped(valueobject.ShippingMethodClickPost, nil, time.Now()))

	repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	// Already-shipped wins even when the requested method is also invalid
	_, err := svc.MarkAsShipped(context.Background(), MarkShippedRequest{
		OrderID:        "ORD-001",
		ShippingMethod: "carrier_pigeon",
	})
	assert.ErrorIs(t, err, order.ErrOrderAlreadyShipped)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_MarkAsShipped_InvalidMethod(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, 0)

	o := newTestOrder(t, "ORD-001", time.Now())
	repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	_, err := svc.MarkAsShipped(context.Background(), MarkShippedRequest{
		OrderID:        "ORD-001",
		ShippingMethod: "carrier_pigeon",
	})
	assert.ErrorIs(t, err, valueobject.ErrInvalidShippingMethod)
	assert.True(t, o.IsPending(), "failed request leaves the order pending")
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
