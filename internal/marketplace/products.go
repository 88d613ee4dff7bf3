package marketplace

import (
	"context"
	"strings"
	"time"

	"github.com/ecosprint/ecosprint-backend/pkg/enums"
	pkgerrors "github.com/ecosprint/ecosprint-backend/pkg/errors"
	"github.com/ecosprint/ecosprint-backend/pkg/kv"
)

// ProductInput is the payload for listing an item for sale. Seller identity
// comes from the session; Location falls back to the seller's location when
// empty.
type ProductInput struct {
	Title       string `validate:"required"`
	Description string
	Price       float64 `validate:"gte=0"`
	Category    enums.ProductCategory
	Image       string
	Condition   enums.ProductCondition
	Location    string
}

// ProductUpdate carries optional listing mutations; nil fields are retained.
type ProductUpdate struct {
	Title       *string
	Description *string
	Price       *float64
	Category    *enums.ProductCategory
	Image       *string
	Condition   *enums.ProductCondition
	Location    *string
}

// AddProduct creates a listing owned by the current user and prepends it to
// the catalog (the feed is newest-first). Anonymous sessions are a silent
// no-op.
func (s *Store) AddProduct(ctx context.Context, input ProductInput) (product *Product, err error) {
	start := time.Now()
	defer s.finish("add_product", start, &err)

	if err = s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product input")
	}
	if err = input.Category.Validate(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product input")
	}
	if err = input.Condition.Validate(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product input")
	}

	s.mu.Lock()
	if s.currentUser == nil {
		s.mu.Unlock()
		return nil, nil
	}
	seller := *s.currentUser

	location := input.Location
	if location == "" {
		location = seller.Location
	}

	newProduct := Product{
		ID:          s.newID(),
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Image:       input.Image,
		SellerID:    seller.ID,
		SellerName:  seller.Username,
		DatePosted:  s.now().UTC().Format(time.RFC3339),
		Condition:   input.Condition,
		Location:    location,
	}

	nextProducts := make([]Product, 0, len(s.products)+1)
	nextProducts = append(nextProducts, newProduct)
	nextProducts = append(nextProducts, s.products...)

	if err = s.persist(ctx, "add_product", write{kv.KeyProducts, nextProducts}); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.products = nextProducts
	s.mu.Unlock()

	s.notify(kv.KeyProducts)
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"product_id": newProduct.ID,
		"seller_id":  newProduct.SellerID,
	}), "product listed")
	out := newProduct
	return &out, nil
}

// UpdateProduct shallow-merges the supplied fields into the matching
// listing. An unknown id is a silent no-op. Cart and purchase snapshots are
// never touched.
func (s *Store) UpdateProduct(ctx context.Context, id string, update ProductUpdate) (product *Product, err error) {
	start := time.Now()
	defer s.finish("update_product", start, &err)

	if update.Price != nil && *update.Price < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	if update.Category != nil {
		if err = update.Category.Validate(); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product update")
		}
	}
	if update.Condition != nil {
		if err = update.Condition.Validate(); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product update")
		}
	}

	s.mu.Lock()
	idx := -1
	for i := range s.products {
		if s.products[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil, nil
	}

	merged := s.products[idx]
	if update.Title != nil {
		merged.Title = *update.Title
	}
	if update.Description != nil {
		merged.Description = *update.Description
	}
	if update.Price != nil {
		merged.Price = *update.Price
	}
	if update.Category != nil {
		merged.Category = *update.Category
	}
	if update.Image != nil {
		merged.Image = *update.Image
	}
	if update.Condition != nil {
		merged.Condition = *update.Condition
	}
	if update.Location != nil {
		merged.Location = *update.Location
	}

	nextProducts := make([]Product, len(s.products))
	copy(nextProducts, s.products)
	nextProducts[idx] = merged

	if err = s.persist(ctx, "update_product", write{kv.KeyProducts, nextProducts}); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.products = nextProducts
	s.mu.Unlock()

	s.notify(kv.KeyProducts)
	out := merged
	return &out, nil
}

// DeleteProduct removes the matching listing unconditionally: cart items
// and purchases keep their snapshots, so nothing cascades. An unknown id is
// a silent no-op.
func (s *Store) DeleteProduct(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer s.finish("delete_product", start, &err)

	s.mu.Lock()
	nextProducts := make([]Product, 0, len(s.products))
	removed := false
	for _, p := range s.products {
		if p.ID == id {
			removed = true
			continue
		}
		nextProducts = append(nextProducts, p)
	}
	if !removed {
		s.mu.Unlock()
		return nil
	}

	if err = s.persist(ctx, "delete_product", write{kv.KeyProducts, nextProducts}); err != nil {
		s.mu.Unlock()
		return err
	}
	s.products = nextProducts
	s.mu.Unlock()

	s.notify(kv.KeyProducts)
	return nil
}

// Products returns a copy of the catalog, newest listings first.
func (s *Store) Products() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// ProductByID returns a copy of the matching listing, or nil.
func (s *Store) ProductByID(id string) *Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p
		}
	}
	return nil
}

// SearchProducts filters the feed by a case-insensitive title/description
// match and an optional category. Empty arguments match everything.
func (s *Store) SearchProducts(query string, category enums.ProductCategory) []Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(strings.TrimSpace(query))
	out := []Product{}
	for _, p := range s.products {
		if category != "" && p.Category != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Title), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ListingsBySeller returns the seller's listings, newest first.
func (s *Store) ListingsBySeller(sellerID string) []Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []Product{}
	for _, p := range s.products {
		if p.SellerID == sellerID {
			out = append(out, p)
		}
	}
	return out
}
