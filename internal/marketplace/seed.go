package marketplace

import (
	"time"

	"github.com/ecosprint/ecosprint-backend/pkg/enums"
)

// sampleProducts is the demo catalog loaded when the products key has never
// been written. Callers must not depend on its contents.
func sampleProducts(now time.Time) []Product {
	posted := func(daysAgo int) string {
		return now.Add(-time.Duration(daysAgo) * 24 * time.Hour).UTC().Format(time.RFC3339)
	}

	return []Product{
		{
			ID:          "1",
			Title:       "Vintage Leather Jacket",
			Description: "Classic brown leather jacket in excellent condition. Perfect for fall weather.",
			Price:       85,
			Category:    enums.ProductCategoryClothing,
			Image:       "https://images.unsplash.com/photo-1551028719-00167b16eac5?w=400&h=400&fit=crop",
			SellerID:    "demo-seller",
			SellerName:  "Sarah M.",
			DatePosted:  posted(2),
			Condition:   enums.ProductConditionGood,
			Location:    "New York, NY",
		},
		{
			ID:          "2",
			Title:       "iPhone 12 Pro",
			Description: "Unlocked iPhone 12 Pro in space gray. Minor scratches on back, screen is perfect.",
			Price:       450,
			Category:    enums.ProductCategoryElectronics,
			Image:       "https://images.unsplash.com/photo-1592750475338-74b7b21085ab?w=400&h=400&fit=crop",
			SellerID:    "demo-seller-2",
			SellerName:  "Mike R.",
			DatePosted:  posted(1),
			Condition:   enums.ProductConditionGood,
			Location:    "San Francisco, CA",
		},
		{
			ID:          "3",
			Title:       "Wooden Coffee Table",
			Description: "Beautiful handcrafted oak coffee table. Some wear but very sturdy.",
			Price:       120,
			Category:    enums.ProductCategoryHomeGarden,
			Image:       "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=400&h=400&fit=crop",
			SellerID:    "demo-seller-3",
			SellerName:  "Emma L.",
			DatePosted:  posted(3),
			Condition:   enums.ProductConditionFair,
			Location:    "Austin, TX",
		},
		{
			ID:          "4",
			Title:       "Road Bike - Trek",
			Description: "Trek road bike in great condition. Recently serviced, new tires.",
			Price:       280,
			Category:    enums.ProductCategorySports,
			Image:       "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=400&h=400&fit=crop",
			SellerID:    "demo-seller-4",
			SellerName:  "Alex K.",
			DatePosted:  posted(4),
			Condition:   enums.ProductConditionLikeNew,
			Location:    "Portland, OR",
		},
	}
}
