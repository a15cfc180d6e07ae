package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kobo/backend/internal/domain/messaging"
	"github.com/kobo/backend/internal/domain/order"
	"github.com/kobo/backend/internal/domain/shared/valueobject"
)

// MockTemplateRepository is a mock implementation of messaging.TemplateRepository
type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) FindByType(ctx context.Context, templateType messaging.TemplateType) (*messaging.Template, error) {
	args := m.Called(ctx, templateType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messaging.Template), args.Error(1)
}

func (m *MockTemplateRepository) Save(ctx context.Context, template *messaging.Template) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockTemplateRepository) ResetToDefault(ctx context.Context, templateType messaging.TemplateType) (*messaging.Template, error) {
	args := m.Called(ctx, templateType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messaging.Template), args.Error(1)
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

func testOrder(t *testing.T, rawID string) *order.Order {
	t.Helper()
	o, err := order.FromRaw(order.RawOrder{
		OrderID:     rawID,
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

func defaultTemplate(t *testing.T, templateType messaging.TemplateType) *messaging.Template {
	t.Helper()
	tpl, err := messaging.DefaultTemplate(templateType)
	require.NoError(t, err)
	return tpl
}

func newGenerateService(templateRepo *MockTemplateRepository, orderRepo *MockOrderRepository) *GenerateService {
	return NewGenerateService(
		templateRepo,
		orderRepo,
		messaging.IdentityProductNameResolver{},
		messaging.StaticShippingMethodLabels{},
	)
}

func TestGenerateService_GeneratePurchaseThanks(t *testing.T) {
	templateRepo := new(MockTemplateRepository)
	orderRepo := new(MockOrderRepository)

	o := testOrder(t, "ORD-001")
	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	templateRepo.On("FindByType", mock.Anything, messaging.TemplateTypePurchaseThanks).
		Return(defaultTemplate(t, messaging.TemplateTypePurchaseThanks), nil)

	svc := newGenerateService(templateRepo, orderRepo)
	resp, err := svc.GeneratePurchaseThanks(context.Background(), "ORD-001")
	require.NoError(t, err)

	assert.Contains(t, resp.Text, "山田 太郎")
	assert.Contains(t, resp.Text, "ハンドメイドアクセサリー")
	assert.Contains(t, resp.Text, "¥2,500")
	assert.Contains(t, resp.Text, "ORD-001")
	assert.Contains(t, resp.Text, "minne")
	assert.NotContains(t, resp.Text, "{{", "no placeholder survives rendering")
}

func TestGenerateService_GeneratePurchaseThanks_OrderNotFound(t *testing.T) {
	templateRepo := new(MockTemplateRepository)
	orderRepo := new(MockOrderRepository)

	orderRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, order.ErrOrderNotFound)

	svc := newGenerateService(templateRepo, orderRepo)
	_, err := svc.GeneratePurchaseThanks(context.Background(), "ORD-404")
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
	templateRepo.AssertNotCalled(t, "FindByType", mock.Anything, mock.Anything)
}

func TestGenerateService_GenerateShippingNotice(t *testing.T) {
	templateRepo := new(MockTemplateRepository)
	orderRepo := new(MockOrderRepository)

	o := testOrder(t, "ORD-002")
	require.NoError(t, o.MarkShipped(valueobject.ShippingMethodClickPost, nil, time.Now()))

	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	templateRepo.On("FindByType", mock.Anything, messaging.TemplateTypeShippingNotice).
		Return(defaultTemplate(t, messaging.TemplateTypeShippingNotice), nil)

	svc := newGenerateService(templateRepo, orderRepo)
	resp, err := svc.GenerateShippingNotice(context.Background(), "ORD-002")
	require.NoError(t, err)

	assert.Contains(t, resp.Text, "山田 太郎")
	assert.Contains(t, resp.Text, "ハンドメイドアクセサリー")
	assert.Contains(t, resp.Text, "クリックポスト(日本郵便)")
	assert.NotContains(t, resp.Text, "{{")
}

func TestGenerateService_GenerateShippingNotice_NotShipped(t *testing.T) {
	templateRepo := new(MockTemplateRepository)
	orderRepo := new(MockOrderRepository)

	o := testOrder(t, "ORD-003")
	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	svc := newGenerateService(templateRepo, orderRepo)
	_, err := svc.GenerateShippingNotice(context.Background(), "ORD-003")
	assert.ErrorIs(t, err, order.ErrOrderNotShipped)

	// The shipped check comes before any template lookup
	templateRepo.AssertNotCalled(t, "FindByType", mock.Anything, mock.Anything)
}

func TestGenerateService_GenerateShippingNotice_TemplateNotFound(t *testing.T) {
	templateRepo := new(MockTemplateRepository)
	orderRepo := new(MockOrderRepository)

	o := testOrder(t, "ORD-004")
	require.NoError(t, o.MarkShipped(valueobject.ShippingMethodYamatoCompact, nil, time.Now()))

	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	templateRepo.On("FindByType", mock.Anything, messaging.TemplateTypeShippingNotice).
		Return(nil, messaging.ErrTemplateNotFound)

	svc := newGenerateService(templateRepo, orderRepo)
	_, err := svc.GenerateShippingNotice(context.Background(), "ORD-004")
	assert.ErrorIs(t, err, messaging.ErrTemplateNotFound)
}

func TestGenerateService_UnresolvedVariableFails(t *testing.T) {
	templateRepo := new(MockTemplateRepository)
	orderRepo := new(MockOrderRepository)

	// A custom template with a variable the order context never provides
	tpl, err := messaging.NewTemplate("custom-purchase_thanks", messaging.TemplateTypePurchaseThanks,
		"{{buyer_name}} 様 {{coupon_code}}")
	require.NoError(t, err)

	o := testOrder(t, "ORD-005")
	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	templateRepo.On("FindByType", mock.Anything, messaging.TemplateTypePurchaseThanks).Return(tpl, nil)

	svc := newGenerateService(templateRepo, orderRepo)
	_, err = svc.GeneratePurchaseThanks(context.Background(), "ORD-005")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "coupon_code")
}
