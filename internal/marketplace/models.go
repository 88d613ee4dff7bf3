package marketplace

import "github.com/ecosprint/ecosprint-backend/pkg/enums"

// User is the canonical identity record. JoinDate is set at registration and
// never changes. PasswordHash is empty for accounts created without a
// credential (see Login).
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FullName     string `json:"fullName"`
	Bio          string `json:"bio"`
	Location     string `json:"location"`
	JoinDate     string `json:"joinDate"`
	Avatar       string `json:"avatar"`
	PasswordHash string `json:"passwordHash,omitempty"`
}

// Product is a catalog listing. SellerName is copied from the seller at
// creation time and does not follow later profile renames.
type Product struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Price       float64                `json:"price"`
	Category    enums.ProductCategory  `json:"category"`
	Image       string                 `json:"image"`
	SellerID    string                 `json:"sellerId"`
	SellerName  string                 `json:"sellerName"`
	DatePosted  string                 `json:"datePosted"`
	Condition   enums.ProductCondition `json:"condition"`
	Location    string                 `json:"location,omitempty"`
}

// CartItem embeds a snapshot of the product taken when it was added. Later
// catalog edits do not reach items already in the cart.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	AddedAt  string  `json:"addedAt"`
}

// Purchase is one checkout line item. TotalPrice is computed once from the
// snapshot price and never recalculated.
type Purchase struct {
	ID           string  `json:"id"`
	Product      Product `json:"product"`
	Quantity     int     `json:"quantity"`
	TotalPrice   float64 `json:"totalPrice"`
	PurchaseDate string  `json:"purchaseDate"`
	BuyerID      string  `json:"buyerId"`
}
