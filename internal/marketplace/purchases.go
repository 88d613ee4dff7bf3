package marketplace

import (
	"context"
	"fmt"
	"time"

	"github.com/ecosprint/ecosprint-backend/pkg/kv"
	"github.com/shopspring/decimal"
)

// PurchaseSummary aggregates a buyer's order history.
type PurchaseSummary struct {
	Orders     int
	Items      int
	TotalSpent float64
}

// CompletePurchase turns every cart item into one purchase record and
// clears the cart. Safe to call with an empty cart or while anonymous:
// both are silent no-ops.
func (s *Store) CompletePurchase(ctx context.Context) (created []Purchase, err error) {
	start := time.Now()
	defer s.finish("complete_purchase", start, &err)

	s.mu.Lock()
	if s.currentUser == nil || len(s.cartItems) == 0 {
		s.mu.Unlock()
		return nil, nil
	}
	buyer := *s.currentUser

	now := s.now()
	purchaseDate := now.UTC().Format(time.RFC3339)
	batch := make([]Purchase, 0, len(s.cartItems))
	for _, item := range s.cartItems {
		batch = append(batch, Purchase{
			ID:           fmt.Sprintf("%d-%s", now.UnixMilli(), item.Product.ID),
			Product:      item.Product,
			Quantity:     item.Quantity,
			TotalPrice:   lineTotal(item.Product.Price, item.Quantity).InexactFloat64(),
			PurchaseDate: purchaseDate,
			BuyerID:      buyer.ID,
		})
	}

	nextPurchases := make([]Purchase, 0, len(batch)+len(s.purchases))
	nextPurchases = append(nextPurchases, batch...)
	nextPurchases = append(nextPurchases, s.purchases...)
	emptyCart := []CartItem{}

	if err = s.persist(ctx, "complete_purchase",
		write{kv.KeyPurchases, nextPurchases},
		write{kv.KeyCartItems, emptyCart},
	); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.purchases = nextPurchases
	s.cartItems = emptyCart
	s.mu.Unlock()

	s.notify(kv.KeyPurchases, kv.KeyCartItems)
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"buyer_id": buyer.ID,
		"items":    len(batch),
	}), "purchase completed")

	out := make([]Purchase, len(batch))
	copy(out, batch)
	return out, nil
}

// Purchases returns a copy of the order history, newest first.
func (s *Store) Purchases() []Purchase {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Purchase, len(s.purchases))
	copy(out, s.purchases)
	return out
}

// PurchasesByBuyer returns the buyer's purchases, newest first.
func (s *Store) PurchasesByBuyer(buyerID string) []Purchase {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []Purchase{}
	for _, p := range s.purchases {
		if p.BuyerID == buyerID {
			out = append(out, p)
		}
	}
	return out
}

// SummaryForBuyer totals the buyer's order history.
func (s *Store) SummaryForBuyer(buyerID string) PurchaseSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := PurchaseSummary{}
	total := decimal.Zero
	for _, p := range s.purchases {
		if p.BuyerID != buyerID {
			continue
		}
		summary.Orders++
		summary.Items += p.Quantity
		total = total.Add(decimal.NewFromFloat(p.TotalPrice))
	}
	summary.TotalSpent = total.InexactFloat64()
	return summary
}
