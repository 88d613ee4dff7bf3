package marketplace

import (
	"context"
	"testing"

	"github.com/ecosprint/ecosprint-backend/pkg/enums"
	pkgerrors "github.com/ecosprint/ecosprint-backend/pkg/errors"
)

func TestAddProductNewestFirst(t *testing.T) {
	store, _ := newTestStore(t)
	mustRegister(t, store, "alice", "a@x.com")

	first := mustAddProduct(t, store, ProductInput{Title: "Bike", Price: 100})
	second := mustAddProduct(t, store, ProductInput{Title: "Lamp", Price: 20})

	products := store.Products()
	if products[0].ID != second.ID {
		t.Fatalf("expected newest listing first, got %q", products[0].Title)
	}
	if products[1].ID != first.ID {
		t.Fatalf("expected older listing second, got %q", products[1].Title)
	}
}

func TestAddProductDenormalizesSeller(t *testing.T) {
	store, _ := newTestStore(t)
	user := mustRegister(t, store, "alice", "a@x.com")

	product := mustAddProduct(t, store, ProductInput{Title: "Bike", Price: 100})

	if product.SellerID != user.ID || product.SellerName != "alice" {
		t.Fatalf("expected seller snapshot, got %+v", product)
	}

	rename := "alice-renamed"
	if _, err := store.UpdateProfile(context.Background(), ProfileUpdate{Username: &rename}); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if got := store.Products()[0].SellerName; got != "alice" {
		t.Fatalf("seller name must not follow renames, got %q", got)
	}
}

func TestAddProductLocationFallsBackToSeller(t *testing.T) {
	store, _ := newTestStore(t)
	if _, err := store.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "a@x.com",
		Location: "Portland, OR",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	product := mustAddProduct(t, store, ProductInput{Title: "Bike", Price: 100})
	if product.Location != "Portland, OR" {
		t.Fatalf("expected seller location fallback, got %q", product.Location)
	}

	explicit := mustAddProduct(t, store, ProductInput{Title: "Lamp", Price: 20, Location: "Austin, TX"})
	if explicit.Location != "Austin, TX" {
		t.Fatalf("explicit location must win, got %q", explicit.Location)
	}
}

func TestAddProductAnonymousIsNoOp(t *testing.T) {
	store, _ := newTestStore(t)

	product, err := store.AddProduct(context.Background(), ProductInput{
		Title:     "Bike",
		Price:     100,
		Category:  enums.ProductCategorySports,
		Condition: enums.ProductConditionGood,
	})
	if err != nil {
		t.Fatalf("add product: %v", err)
	}
	if product != nil {
		t.Fatalf("expected silent no-op while anonymous, got %+v", product)
	}
	if len(store.Products()) != 0 {
		t.Fatal("catalog must stay empty")
	}
}

func TestAddProductRejectsBadInput(t *testing.T) {
	store, _ := newTestStore(t)
	mustRegister(t, store, "alice", "a@x.com")

	cases := []ProductInput{
		{Title: "", Price: 10, Category: "Sports", Condition: "Good"},
		{Title: "Bike", Price: -1, Category: "Sports", Condition: "Good"},
		{Title: "Bike", Price: 10, Category: "Nonsense", Condition: "Good"},
		{Title: "Bike", Price: 10, Category: "Sports", Condition: "Broken"},
	}
	for _, input := range cases {
		if _, err := store.AddProduct(context.Background(), input); !pkgerrors.Is(err, pkgerrors.CodeValidation) {
			t.Fatalf("input %+v: expected validation error, got %v", input, err)
		}
	}
}

func TestUpdateProductMergesSuppliedFields(t *testing.T) {
	store, _ := newTestStore(t)
	mustRegister(t, store, "alice", "a@x.com")
	product := mustAddProduct(t, store, ProductInput{Title: "Bike", Price: 100, Description: "trusty"})

	newPrice := 80.0
	updated, err := store.UpdateProduct(context.Background(), product.ID, ProductUpdate{Price: &newPrice})
	if err != nil {
		t.Fatalf("update product: %v", err)
	}
	if updated.Price != 80 {
		t.Fatalf("expected merged price, got %v", updated.Price)
	}
	if updated.Title != "Bike" || updated.Description != "trusty" {
		t.Fatalf("unsupplied fields must be retained, got %+v", updated)
	}
}

func TestUpdateProductUnknownIDIsNoOp(t *testing.T) {
	store, _ := newTestStore(t)
	mustRegister(t, store, "alice", "a@x.com")
	mustAddProduct(t, store, ProductInput{Title: "Bike", Price: 100})

	title := "Ghost"
	updated, err := store.UpdateProduct(context.Background(), "missing", ProductUpdate{Title: &title})
	if err != nil {
		t.Fatalf("update product: %v", err)
	}
	if updated != nil {
		t.Fatalf("expected silent no-op for unknown id, got %+v", updated)
	}
}

func TestDeleteProductDoesNotCascade(t *testing.T) {
	store, _ := newTestStore(t)
	mustRegister(t, store, "alice", "a@x.com")
	product := mustAddProduct(t, store, ProductInput{Title: "Bike", Price: 100})
	if err := store.AddToCart(context.Background(), *product); err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	if err := store.DeleteProduct(context.Background(), product.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}

	if len(store.Products()) != 0 {
		t.Fatal("expected listing removed")
	}
	items := store.CartItems()
	if len(items) != 1 || items[0].Product.ID != product.ID {
		t.Fatalf("cart snapshot must survive listing deletion, got %+v", items)
	}
}

func TestDeleteProductUnknownIDIsNoOp(t *testing.T) {
	store, _ := newTestStore(t)
	mustRegister(t, store, "alice", "a@x.com")
	mustAddProduct(t, store, ProductInput{Title: "Bike", Price: 100})

	if err := store.DeleteProduct(context.Background(), "missing"); err != nil {
		t.Fatalf("delete product: %v", err)
	}
	if len(store.Products()) != 1 {
		t.Fatal("unknown id must not change the catalog")
	}
}

func TestSearchProductsFiltersQueryAndCategory(t *testing.T) {
	store, _ := newTestStore(t)
	mustRegister(t, store, "alice", "a@x.com")
	mustAddProduct(t, store, ProductInput{Title: "Trek Road Bike", Price: 280, Category: enums.ProductCategorySports})
	mustAddProduct(t, store, ProductInput{Title: "Mountain Bike", Price: 150, Category: enums.ProductCategorySports})
	mustAddProduct(t, store, ProductInput{Title: "Oak Table", Price: 120, Category: enums.ProductCategoryHomeGarden, Description: "sturdy bike-shed companion"})

	byQuery := store.SearchProducts("bike", "")
	if len(byQuery) != 3 {
		t.Fatalf("expected title+description matches, got %d", len(byQuery))
	}

	byBoth := store.SearchProducts("bike", enums.ProductCategorySports)
	if len(byBoth) != 2 {
		t.Fatalf("expected 2 sports bikes, got %d", len(byBoth))
	}

	all := store.SearchProducts("", "")
	if len(all) != 3 {
		t.Fatalf("empty filters must match everything, got %d", len(all))
	}
}

func TestListingsBySeller(t *testing.T) {
	store, _ := newTestStore(t)
	alice := mustRegister(t, store, "alice", "a@x.com")
	mustAddProduct(t, store, ProductInput{Title: "Bike", Price: 100})
	if err := store.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}

	mustRegister(t, store, "bob", "b@x.com")
	mustAddProduct(t, store, ProductInput{Title: "Lamp", Price: 20})

	listings := store.ListingsBySeller(alice.ID)
	if len(listings) != 1 || listings[0].Title != "Bike" {
		t.Fatalf("expected alice's bike only, got %+v", listings)
	}
}
