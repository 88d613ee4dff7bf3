package marketplace

import (
	"context"
	"time"

	"github.com/ecosprint/ecosprint-backend/pkg/kv"
	"github.com/shopspring/decimal"
)

// AddToCart merges the product into the cart: a repeat add of the same
// product id bumps the quantity and keeps the original snapshot, a first
// add stores a quantity-1 item with a copy of the product taken now.
// Anonymous sessions are a silent no-op.
func (s *Store) AddToCart(ctx context.Context, product Product) (err error) {
	start := time.Now()
	defer s.finish("add_to_cart", start, &err)

	s.mu.Lock()
	if s.currentUser == nil {
		s.mu.Unlock()
		return nil
	}

	nextItems := make([]CartItem, len(s.cartItems))
	copy(nextItems, s.cartItems)

	merged := false
	for i := range nextItems {
		if nextItems[i].Product.ID == product.ID {
			nextItems[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		nextItems = append(nextItems, CartItem{
			Product:  product,
			Quantity: 1,
			AddedAt:  s.now().UTC().Format(time.RFC3339),
		})
	}

	if err = s.persist(ctx, "add_to_cart", write{kv.KeyCartItems, nextItems}); err != nil {
		s.mu.Unlock()
		return err
	}
	s.cartItems = nextItems
	s.mu.Unlock()

	s.notify(kv.KeyCartItems)
	return nil
}

// RemoveFromCart drops the item whose snapshot carries the given product
// id. An absent id is a silent no-op.
func (s *Store) RemoveFromCart(ctx context.Context, productID string) (err error) {
	start := time.Now()
	defer s.finish("remove_from_cart", start, &err)

	s.mu.Lock()
	nextItems := make([]CartItem, 0, len(s.cartItems))
	removed := false
	for _, item := range s.cartItems {
		if item.Product.ID == productID {
			removed = true
			continue
		}
		nextItems = append(nextItems, item)
	}
	if !removed {
		s.mu.Unlock()
		return nil
	}

	if err = s.persist(ctx, "remove_from_cart", write{kv.KeyCartItems, nextItems}); err != nil {
		s.mu.Unlock()
		return err
	}
	s.cartItems = nextItems
	s.mu.Unlock()

	s.notify(kv.KeyCartItems)
	return nil
}

// ClearCart empties the cart.
func (s *Store) ClearCart(ctx context.Context) (err error) {
	start := time.Now()
	defer s.finish("clear_cart", start, &err)

	s.mu.Lock()
	if len(s.cartItems) == 0 {
		s.mu.Unlock()
		return nil
	}

	emptyCart := []CartItem{}
	if err = s.persist(ctx, "clear_cart", write{kv.KeyCartItems, emptyCart}); err != nil {
		s.mu.Unlock()
		return err
	}
	s.cartItems = emptyCart
	s.mu.Unlock()

	s.notify(kv.KeyCartItems)
	return nil
}

// CartItems returns a copy of the cart contents.
func (s *Store) CartItems() []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CartItem, len(s.cartItems))
	copy(out, s.cartItems)
	return out
}

// CartCount sums the quantities across all cart items.
func (s *Store) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, item := range s.cartItems {
		count += item.Quantity
	}
	return count
}

// CartTotal sums snapshot price times quantity across the cart.
func (s *Store) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, item := range s.cartItems {
		total = total.Add(lineTotal(item.Product.Price, item.Quantity))
	}
	return total.InexactFloat64()
}

func lineTotal(price float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
}
