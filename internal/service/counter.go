package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/merchco/counterpos/internal/apperr"
	"github.com/merchco/counterpos/internal/models"
)

// discountIdentities are the customer categories eligible for the 10%
// discount on sales, returns, and exchanges.
var discountIdentities = map[string]bool{
	"校友會員": true,
	"在校生":  true,
	"師長":   true,
}

// InventoryRepository defines the persistence operations required by the
// counter service.
type InventoryRepository interface {
	// Load reads the full inventory document.
	Load(ctx context.Context) (*models.Inventory, error)
	// Save rewrites the full inventory document.
	Save(ctx context.Context, inv *models.Inventory) error
}

// TransactionLedger records completed transactions and serves the
// returns view.
type TransactionLedger interface {
	// Append stores one transaction record.
	Append(ctx context.Context, rec models.Record) error
	// LatestReturns returns up to n return blocks, most recent first.
	LatestReturns(ctx context.Context, n int) ([]models.ReturnBlock, error)
}

// CounterService implements the sale, gift, return, and exchange
// operations over the shared inventory document.
//
// Every mutating operation runs its whole load → validate → mutate →
// save → record sequence under one mutex, so two concurrent requests
// cannot interleave their full-file rewrites and lose a stock change.
type CounterService struct {
	inventory InventoryRepository
	ledger    TransactionLedger

	// now is replaceable in tests.
	now func() time.Time

	mu sync.Mutex
}

// NewCounterService constructs a CounterService over the given inventory
// repository and transaction ledger.
func NewCounterService(inventory InventoryRepository, ledger TransactionLedger) *CounterService {
	return &CounterService{inventory: inventory, ledger: ledger, now: time.Now}
}

// SaleRequest carries one sale transaction.
type SaleRequest struct {
	Identity string            `json:"identity"`
	Channel  string            `json:"channel"`
	OrderID  string            `json:"order_id"`
	Items    []models.LineItem `json:"items"`
}

// GiftRequest carries one giveaway transaction.
type GiftRequest struct {
	Giver string            `json:"giver"`
	Items []models.LineItem `json:"items"`
}

// ReturnRequest carries one return transaction.
type ReturnRequest struct {
	Identity string            `json:"identity"`
	Channel  string            `json:"channel"`
	Items    []models.LineItem `json:"items"`
}

// ExchangeRequest carries one exchange transaction: OldItems come back
// from the customer, NewItems go out.
type ExchangeRequest struct {
	Identity string            `json:"identity"`
	Channel  string            `json:"channel"`
	OrderID  string            `json:"order_id"`
	OldItems []models.LineItem `json:"old_items"`
	NewItems []models.LineItem `json:"new_items"`
}

// Products returns the current inventory document.
func (s *CounterService) Products(ctx context.Context) (*models.Inventory, error) {
	return s.inventory.Load(ctx)
}

// LatestReturns returns the two most recent return blocks.
func (s *CounterService) LatestReturns(ctx context.Context) ([]models.ReturnBlock, error) {
	return s.ledger.LatestReturns(ctx, 2)
}

// Sale validates and books a sale in the name of staffName. Items are
// checked in input order; the first failing item aborts the whole
// request and nothing is persisted. On success stock is decremented,
// the discounted total is computed, and the transaction is recorded.
func (s *CounterService) Sale(ctx context.Context, staffName string, req SaleRequest) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, err := s.inventory.Load(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, item := range req.Items {
		stock, price, err := takeStock(inv, item)
		if err != nil {
			return 0, err
		}
		stock.Center -= item.Qty
		total += price * item.Qty
	}
	total = applyDiscount(req.Identity, total)

	if err := s.inventory.Save(ctx, inv); err != nil {
		return 0, err
	}
	if err := s.ledger.Append(ctx, models.Record{
		ID:       uuid.NewString(),
		Kind:     models.KindSale,
		Time:     s.now(),
		Staff:    staffName,
		Identity: req.Identity,
		Channel:  req.Channel,
		OrderID:  req.OrderID,
		Amount:   total,
		Items:    req.Items,
	}); err != nil {
		return 0, err
	}
	return total, nil
}

// Gift validates and books a giveaway: same stock checks and decrements
// as a sale, but no price is computed.
func (s *CounterService) Gift(ctx context.Context, staffName string, req GiftRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, err := s.inventory.Load(ctx)
	if err != nil {
		return err
	}

	for _, item := range req.Items {
		stock, _, err := takeStock(inv, item)
		if err != nil {
			return err
		}
		stock.Center -= item.Qty
	}

	if err := s.inventory.Save(ctx, inv); err != nil {
		return err
	}
	return s.ledger.Append(ctx, models.Record{
		ID:    uuid.NewString(),
		Kind:  models.KindGift,
		Time:  s.now(),
		Staff: staffName,
		Giver: req.Giver,
		Items: req.Items,
	})
}

// Return books a return: product and size must exist but there is no
// stock check, so returns always succeed for known goods. Stock is
// incremented and the refund total is computed at current prices with
// the same discount rule as sales.
func (s *CounterService) Return(ctx context.Context, staffName string, req ReturnRequest) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, err := s.inventory.Load(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, item := range req.Items {
		product, ok := inv.Get(item.Name)
		if !ok {
			return 0, apperr.New(apperr.KindValidation, fmt.Sprintf("找不到商品：%s", item.Name))
		}
		stock, ok := product.Style(item.Size)
		if !ok {
			return 0, apperr.New(apperr.KindValidation, fmt.Sprintf("%s 無此尺寸：%s", item.Name, item.Size))
		}
		stock.Center += item.Qty
		total += product.Price * item.Qty
	}
	total = applyDiscount(req.Identity, total)

	if err := s.inventory.Save(ctx, inv); err != nil {
		return 0, err
	}
	if err := s.ledger.Append(ctx, models.Record{
		ID:       uuid.NewString(),
		Kind:     models.KindReturn,
		Time:     s.now(),
		Staff:    staffName,
		Identity: req.Identity,
		Channel:  req.Channel,
		Amount:   total,
		Items:    req.Items,
	}); err != nil {
		return 0, err
	}
	return total, nil
}

// Exchange books an exchange. Old items are priced but their stock is
// never restored: returned goods are treated as written off, matching
// the books this system has always kept. New items are stock-checked
// and decremented. The result is the price difference new − old, with
// both sides discounted independently.
func (s *CounterService) Exchange(ctx context.Context, staffName string, req ExchangeRequest) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, err := s.inventory.Load(ctx)
	if err != nil {
		return 0, err
	}

	oldTotal := 0
	for _, item := range req.OldItems {
		product, ok := inv.Get(item.Name)
		if !ok {
			return 0, apperr.New(apperr.KindValidation, fmt.Sprintf("退回商品不存在：%s %s", item.Name, item.Size))
		}
		if _, ok := product.Style(item.Size); !ok {
			return 0, apperr.New(apperr.KindValidation, fmt.Sprintf("退回商品不存在：%s %s", item.Name, item.Size))
		}
		oldTotal += product.Price * item.Qty
	}

	newTotal := 0
	for _, item := range req.NewItems {
		product, ok := inv.Get(item.Name)
		if !ok {
			return 0, apperr.New(apperr.KindValidation, fmt.Sprintf("新商品不存在：%s %s", item.Name, item.Size))
		}
		stock, ok := product.Style(item.Size)
		if !ok {
			return 0, apperr.New(apperr.KindValidation, fmt.Sprintf("新商品不存在：%s %s", item.Name, item.Size))
		}
		if stock.Center < item.Qty {
			return 0, apperr.New(apperr.KindValidation, fmt.Sprintf("%s %s 庫存不足", item.Name, item.Size))
		}
		stock.Center -= item.Qty
		newTotal += product.Price * item.Qty
	}

	oldTotal = applyDiscount(req.Identity, oldTotal)
	newTotal = applyDiscount(req.Identity, newTotal)
	diff := newTotal - oldTotal

	if err := s.inventory.Save(ctx, inv); err != nil {
		return 0, err
	}
	if err := s.ledger.Append(ctx, models.Record{
		ID:       uuid.NewString(),
		Kind:     models.KindExchange,
		Time:     s.now(),
		Staff:    staffName,
		Identity: req.Identity,
		Channel:  req.Channel,
		OrderID:  req.OrderID,
		Amount:   diff,
		OldItems: req.OldItems,
		NewItems: req.NewItems,
	}); err != nil {
		return 0, err
	}
	return diff, nil
}

// takeStock validates one outgoing item against the inventory and
// returns its stock entry and unit price.
func takeStock(inv *models.Inventory, item models.LineItem) (*models.StyleStock, int, error) {
	product, ok := inv.Get(item.Name)
	if !ok {
		return nil, 0, apperr.New(apperr.KindValidation, fmt.Sprintf("找不到商品：%s", item.Name))
	}
	stock, ok := product.Style(item.Size)
	if !ok {
		return nil, 0, apperr.New(apperr.KindValidation, fmt.Sprintf("%s 無此尺寸：%s", item.Name, item.Size))
	}
	if stock.Center < item.Qty {
		return nil, 0, apperr.New(apperr.KindValidation, fmt.Sprintf("%s %s 庫存不足", item.Name, item.Size))
	}
	return stock, product.Price, nil
}

// applyDiscount multiplies total by 0.9 for eligible identities,
// truncating toward zero. Integer arithmetic keeps the result exact.
func applyDiscount(identity string, total int) int {
	if discountIdentities[identity] {
		return total * 9 / 10
	}
	return total
}
