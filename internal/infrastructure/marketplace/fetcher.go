// Package marketplace scrapes order details from minne and Creema order
// pages. Neither marketplace has a seller API, so the tool drives a headless
// browser against the pages the seller would otherwise read by hand.
package marketplace

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/kobo/backend/internal/domain/order"
	"github.com/kobo/backend/internal/infrastructure/config"
)

// selectors addresses the order fields on one marketplace's order page
type selectors struct {
	buyerName   string
	address     string
	phoneNumber string
	productName string
	price       string
	orderedAt   string
}

var minneSelectors = selectors{
	buyerName:   ".order-detail .buyer-name",
	address:     ".order-detail .shipping-address",
	phoneNumber: ".order-detail .buyer-tel",
	productName: ".order-detail .product-name",
	price:       ".order-detail .order-price",
	orderedAt:   ".order-detail .ordered-at",
}

var creemaSelectors = selectors{
	buyerName:   "#sales-detail .customer-name",
	address:     "#sales-detail .delivery-address",
	phoneNumber: "#sales-detail .customer-tel",
	productName: "#sales-detail .item-title",
	price:       "#sales-detail .sales-price",
	orderedAt:   "#sales-detail .order-date",
}

// ChromeFetcher implements order.Fetcher by scraping the marketplace order
// page in a headless browser.
type ChromeFetcher struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	timeout     time.Duration
	minneURL    string
	creemaURL   string
	logger      *zap.Logger
}

// NewChromeFetcher creates a fetcher with its own Chrome allocator
func NewChromeFetcher(cfg config.MarketplaceConfig, logger *zap.Logger) *ChromeFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	timeout := cfg.PageTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &ChromeFetcher{
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		timeout:     timeout,
		minneURL:    cfg.MinneURL,
		creemaURL:   cfg.CreemaURL,
		logger:      logger,
	}
}

// Fetch scrapes the order page for the given marketplace order ID
func (f *ChromeFetcher) Fetch(ctx context.Context, orderID string, platform order.Platform) (*order.RawOrder, error) {
	var (
		pageURL string
		sel     selectors
	)
	switch platform {
	case order.PlatformMinne:
		pageURL = fmt.Sprintf("%s/%s", f.minneURL, orderID)
		sel = minneSelectors
	case order.PlatformCreema:
		pageURL = fmt.Sprintf("%s/%s", f.creemaURL, orderID)
		sel = creemaSelectors
	default:
		return nil, order.ErrInvalidPlatform
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(f.allocCtx)
	defer browserCancel()

	var buyerName, address, phone, productName, priceText, orderedAtText string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitVisible(sel.buyerName, chromedp.ByQuery),
		chromedp.Text(sel.buyerName, &buyerName, chromedp.ByQuery),
		chromedp.Text(sel.address, &address, chromedp.ByQuery),
		chromedp.Text(sel.phoneNumber, &phone, chromedp.ByQuery),
		chromedp.Text(sel.productName, &productName, chromedp.ByQuery),
		chromedp.Text(sel.price, &priceText, chromedp.ByQuery),
		chromedp.Text(sel.orderedAt, &orderedAtText, chromedp.ByQuery),
	)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("order page %s timed out after %v: %w", pageURL, f.timeout, err)
		}
		return nil, fmt.Errorf("failed to scrape order page %s: %w", pageURL, err)
	}

	priceYen, err := ParsePriceYen(priceText)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", orderID, err)
	}
	addr, err := ParseAddress(address)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", orderID, err)
	}
	orderedAt, err := ParseOrderedAt(orderedAtText)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", orderID, err)
	}

	f.logger.Info("Order page scraped",
		zap.String("order_id", orderID),
		zap.String("platform", platform.String()),
	)

	return &order.RawOrder{
		OrderID:     orderID,
		Platform:    platform.String(),
		BuyerName:   buyerName,
		PostalCode:  addr.PostalCode,
		Prefecture:  addr.Prefecture,
		City:        addr.City,
		Street:      addr.Street,
		Building:    addr.Building,
		PhoneNumber: phone,
		ProductName: productName,
		PriceYen:    priceYen,
		OrderedAt:   orderedAt,
	}, nil
}

// Close releases the Chrome allocator
func (f *ChromeFetcher) Close() error {
	if f.allocCancel != nil {
		f.allocCancel()
	}
	return nil
}

var _ order.Fetcher = (*ChromeFetcher)(nil)
