package marketplace

import (
	"context"
	"math"
	"strings"
	"testing"
)

func TestCompletePurchaseSnapshotsTotalsAndClearsCart(t *testing.T) {
	store, _ := newTestStore(t)
	buyer := mustRegister(t, store, "alice", "a@x.com")
	bike := mustAddProduct(t, store, ProductInput{Title: "Bike", Price: 100})

	if err := store.AddToCart(context.Background(), *bike); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if err := store.AddToCart(context.Background(), *bike); err != nil {
		t.Fatalf("repeat add: %v", err)
	}

	created, err := store.CompletePurchase(context.Background())
	if err != nil {
		t.Fatalf("complete purchase: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("expected one purchase per cart line, got %d", len(created))
	}

	purchase := created[0]
	if purchase.TotalPrice != 200 {
		t.Fatalf("expected total 200, got %v", purchase.TotalPrice)
	}
	if purchase.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", purchase.Quantity)
	}
	if purchase.BuyerID != buyer.ID {
		t.Fatalf("expected buyer %s, got %s", buyer.ID, purchase.BuyerID)
	}
	if !strings.HasSuffix(purchase.ID, "-"+bike.ID) {
		t.Fatalf("purchase id must embed the product id, got %q", purchase.ID)
	}
	if len(store.CartItems()) != 0 {
		t.Fatal("cart must be empty after checkout")
	}
}

func TestCompletePurchaseOnePurchasePerLine(t *testing.T) {
	store, _ := newTestStore(t)
	mustRegister(t, store, "alice", "a@x.com")
	bike := mustAddProduct(t, store, ProductInput{Title: "Bike", Price: 100})
	lamp := mustAddProduct(t, store, ProductInput{Title: "Lamp", Price: 19.99})

	for _, p := range []*Product{bike, lamp} {
		if err := store.AddToCart(context.Background(), *p); err != nil {
			t.Fatalf("add %s: %v", p.Title, err)
		}
	}

	created, err := store.CompletePurchase(context.Background())
	if err != nil {
		t.Fatalf("complete purchase: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 purchases, got %d", len(created))
	}
	for _, p := range created {
		want := p.Product.Price * float64(p.Quantity)
		if math.Abs(p.TotalPrice-want) > 1e-9 {
			t.Fatalf("purchase %s: expected total %v, got %v", p.ID, want, p.TotalPrice)
		}
	}
}

func TestCompletePurchaseEmptyCartIsNoOp(t *testing.T) {
	store, _ := newTestStore(t)
	mustRegister(t, store, "alice", "a@x.com")

	created, err := store.CompletePurchase(context.Background())
	if err != nil {
		t.Fatalf("complete purchase: %v", err)
	}
	if created != nil {
		t.Fatalf("expected no purchases, got %+v", created)
	}
	if len(store.Purchases()) != 0 {
		t.Fatal("history must stay empty")
	}
}

func TestCompletePurchaseAnonymousIsNoOp(t *testing.T) {
	store, _ := newTestStore(t)

	created, err := store.CompletePurchase(context.Background())
	if err != nil {
		t.Fatalf("complete purchase: %v", err)
	}
	if created != nil {
		t.Fatalf("expected silent no-op while anonymous, got %+v", created)
	}
}

func TestPurchasesNewestFirst(t *testing.T) {
	store, _ := newTestStore(t)
	mustRegister(t, store, "alice", "a@x.com")
	bike := mustAddProduct(t, store, ProductInput{Title: "Bike", Price: 100})
	lamp := mustAddProduct(t, store, ProductInput{Title: "Lamp", Price: 20})

	if err := store.AddToCart(context.Background(), *bike); err != nil {
		t.Fatalf("add bike: %v", err)
	}
	if _, err := store.CompletePurchase(context.Background()); err != nil {
		t.Fatalf("first checkout: %v", err)
	}

	if err := store.AddToCart(context.Background(), *lamp); err != nil {
		t.Fatalf("add lamp: %v", err)
	}
	if _, err := store.CompletePurchase(context.Background()); err != nil {
		t.Fatalf("second checkout: %v", err)
	}

	history := store.Purchases()
	if len(history) != 2 {
		t.Fatalf("expected 2 purchases, got %d", len(history))
	}
	if history[0].Product.Title != "Lamp" {
		t.Fatalf("expected newest purchase first, got %q", history[0].Product.Title)
	}
}

func TestPurchasesByBuyerAndSummary(t *testing.T) {
	store, _ := newTestStore(t)
	alice := mustRegister(t, store, "alice", "a@x.com")
	bike := mustAddProduct(t, store, ProductInput{Title: "Bike", Price: 100})
	if err := store.AddToCart(context.Background(), *bike); err != nil {
		t.Fatalf("add bike: %v", err)
	}
	if err := store.AddToCart(context.Background(), *bike); err != nil {
		t.Fatalf("repeat add: %v", err)
	}
	if _, err := store.CompletePurchase(context.Background()); err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if err := store.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}

	mustRegister(t, store, "bob", "b@x.com")
	if got := store.PurchasesByBuyer(alice.ID); len(got) != 1 {
		t.Fatalf("expected alice's single purchase, got %d", len(got))
	}

	summary := store.SummaryForBuyer(alice.ID)
	if summary.Orders != 1 || summary.Items != 2 || summary.TotalSpent != 200 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}
