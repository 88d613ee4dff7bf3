// Package kv provides the durable key-value collaborator the marketplace
// store persists its collections through. Every value is an opaque blob that
// fully replaces whatever was stored under the key before.
package kv

import "context"

// Collection keys written by the marketplace store. The dark-mode flag is
// owned by the presentation preference layer and shares the same storage.
const (
	KeyCurrentUser = "currentUser"
	KeyUsers       = "users"
	KeyProducts    = "products"
	KeyCartItems   = "cartItems"
	KeyPurchases   = "purchases"
	KeyDarkMode    = "isDarkMode"
)

// Store is the persistence contract: last-write-wins whole-value storage.
// Get reports ok=false when the key has never been written.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
	Close() error
}
