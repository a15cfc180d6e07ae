package shipping

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
	"github.com/kobo/backend/internal/domain/shipping"
)

// MockLabelRepository is a mock implementation of shipping.Repository
type MockLabelRepository struct {
	mock.Mock
}

func (m *MockLabelRepository) FindByID(ctx context.Context, id shipping.LabelID) (*shipping.Label, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.Label), args.Error(1)
}

func (m *MockLabelRepository) FindByOrderID(ctx context.Context, orderID order.ID) ([]shipping.Label, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shipping.Label), args.Error(1)
}

func (m *MockLabelRepository) Save(ctx context.Context, label *shipping.Label) error {
	args := m.Called(ctx, label)
	return args.Error(0)
}

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

// MockIssuer is a mock implementation of shipping.Issuer
type MockIssuer struct {
	mock.Mock
}

func (m *MockIssuer) Issue(ctx context.Context, o *order.Order, method valueobject.ShippingMethod) (*shipping.Label, error) {
	args := m.Called(ctx, o, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.Label), args.Error(1)
}

// MockArchiver is a mock implementation of shipping.Archiver
type MockArchiver struct {
	mock.Mock
}

func (m *MockArchiver) Archive(ctx context.Context, label *shipping.Label) error {
	args := m.Called(ctx, label)
	return args.Error(0)
}

func testOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.FromRaw(order.RawOrder{
		OrderID:     "ORD-001",
		Platform:    "minne",
		BuyerName:   "山田 太郎",
		PostalCode:  "150-0041",
		Prefecture:  "東京都",
		City:        "渋谷区",
		Street:      "神南1-2-3",
		ProductName: "ハンドメイドアクセサリー",
		PriceYen:    2500,
	})
	require.NoError(t, err)
	return o
}

func testClickPostLabel(t *testing.T, issuedAt time.Time) *shipping.Label {
	t.Helper()
	labelID, err := shipping.NewLabelID("LBL-001")
	require.NoError(t, err)
	orderID, err := order.NewID("ORD-001")
	require.NoError(t, err)
	tracking, err := valueobject.NewTrackingNumber("1234-5678-9012")
	require.NoError(t, err)
	label, err := shipping.NewClickPostLabel(labelID, orderID, "JVBERi0xLjQ=", tracking, issuedAt)
	require.NoError(t, err)
	return label
}

func newLabelService(labelRepo *MockLabelRepository, orderRepo *MockOrderRepository, issuer shipping.Issuer, archiver shipping.Archiver) *LabelService {
	issuers := map[valueobject.ShippingMethod]shipping.Issuer{}
	if issuer != nil {
		issuers[valueobject.ShippingMethodClickPost] = issuer
		issuers[valueobject.ShippingMethodYamatoCompact] = issuer
	}
	return NewLabelService(labelRepo, orderRepo, issuers, archiver, nil)
}

func TestLabelService_IssueLabel(t *testing.T) {
	labelRepo := new(MockLabelRepository)
	orderRepo := new(MockOrderRepository)
	issuer := new(MockIssuer)

	o := testOrder(t)
	label := testClickPostLabel(t, time.Now())

	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	issuer.On("Issue", mock.Anything, o, valueobject.ShippingMethodClickPost).Return(label, nil)
	labelRepo.On("Save", mock.Anything, label).Return(nil)

	svc := newLabelService(labelRepo, orderRepo, issuer, nil)
	resp, err := svc.IssueLabel(context.Background(), IssueLabelRequest{
		OrderID:        "ORD-001",
		ShippingMethod: "click_post",
	})
	require.NoError(t, err)

	assert.Equal(t, "LBL-001", resp.LabelID)
	assert.Equal(t, "click_post", resp.Kind)
	assert.NotEmpty(t, resp.PDFData)
	assert.False(t, resp.Expired)
	labelRepo.AssertExpectations(t)
}

func TestLabelService_IssueLabel_OrderNotFound(t *testing.T) {
	labelRepo := new(MockLabelRepository)
	orderRepo := new(MockOrderRepository)

	orderRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, order.ErrOrderNotFound)

	svc := newLabelService(labelRepo, orderRepo, new(MockIssuer), nil)
	_, err := svc.IssueLabel(context.Background(), IssueLabelRequest{
		OrderID:        "ORD-404",
		ShippingMethod: "click_post",
	})
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
	labelRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestLabelService_IssueLabel_InvalidMethod(t *testing.T) {
	labelRepo := new(MockLabelRepository)
	orderRepo := new(MockOrderRepository)

	o := testOrder(t)
	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	svc := newLabelService(labelRepo, orderRepo, new(MockIssuer), nil)
	_, err := svc.IssueLabel(context.Background(), IssueLabelRequest{
		OrderID:        "ORD-001",
		ShippingMethod: "carrier_pigeon",
	})
	assert.ErrorIs(t, err, valueobject.ErrInvalidShippingMethod)
}

func TestLabelService_IssueLabel_IssuerFailure(t *testing.T) {
	labelRepo := new(MockLabelRepository)
	orderRepo := new(MockOrderRepository)
	issuer := new(MockIssuer)

	o := testOrder(t)
	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	issuer.On("Issue", mock.Anything, o, valueobject.ShippingMethodClickPost).Return(nil, shared.ErrExternalService)

	svc := newLabelService(labelRepo, orderRepo, issuer, nil)
	_, err := svc.IssueLabel(context.Background(), IssueLabelRequest{
		OrderID:        "ORD-001",
		ShippingMethod: "click_post",
	})
	assert.ErrorIs(t, err, shared.ErrExternalService)
	labelRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestLabelService_IssueLabel_ArchiveFailureDoesNotFail(t *testing.T) {
	labelRepo := new(MockLabelRepository)
	orderRepo := new(MockOrderRepository)
	issuer := new(MockIssuer)
	archiver := new(MockArchiver)

	o := testOrder(t)
	label := testClickPostLabel(t, time.Now())

	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	issuer.On("Issue", mock.Anything, o, valueobject.ShippingMethodClickPost).Return(label, nil)
	labelRepo.On("Save", mock.Anything, label).Return(nil)
	archiver.On("Archive", mock.Anything, label).Return(shared.ErrExternalService)

	svc := newLabelService(labelRepo, orderRepo, issuer, archiver)
	resp, err := svc.IssueLabel(context.Background(), IssueLabelRequest{
		OrderID:        "ORD-001",
		ShippingMethod: "click_post",
	})
	require.NoError(t, err)
	assert.Equal(t, "LBL-001", resp.LabelID)
	archiver.AssertExpectations(t)
}

func TestLabelService_GetByID_Expired(t *testing.T) {
	labelRepo := new(MockLabelRepository)

	labelID, err := shipping.NewLabelID("LBL-002")
	require.NoError(t, err)
	orderID, err := order.NewID("ORD-001")
	require.NoError(t, err)
	issuedAt := time.Now().AddDate(0, 0, -15)
	label, err := shipping.NewYamatoCompactLabel(labelID, orderID, "QR-PAYLOAD", "WB-0001", issuedAt)
	require.NoError(t, err)

	labelRepo.On("FindByID", mock.Anything, labelID).Return(label, nil)

	svc := newLabelService(labelRepo, new(MockOrderRepository), nil, nil)
	resp, err := svc.GetByID(context.Background(), "LBL-002")
	require.NoError(t, err)
	assert.True(t, resp.Expired)
	assert.Equal(t, "yamato_compact", resp.Kind)
}

func TestLabelService_ListByOrder(t *testing.T) {
	labelRepo := new(MockLabelRepository)

	orderID, err := order.NewID("ORD-001")
	require.NoError(t, err)
	label := testClickPostLabel(t, time.Now())
	labelRepo.On("FindByOrderID", mock.Anything, orderID).Return([]shipping.Label{*label}, nil)

	svc := newLabelService(labelRepo, new(MockOrderRepository), nil, nil)
	resp, err := svc.ListByOrder(context.Background(), "ORD-001")
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "LBL-001", resp[0].LabelID)
}
