// Package prefs stores presentation preferences alongside the marketplace
// collections. It owns the isDarkMode key; the marketplace store never
// touches it.
package prefs

import (
	"context"
	"encoding/json"

	pkgerrors "github.com/ecosprint/ecosprint-backend/pkg/errors"
	"github.com/ecosprint/ecosprint-backend/pkg/kv"
)

// Service reads and writes the dark-mode flag.
type Service struct {
	storage kv.Store
}

func NewService(storage kv.Store) (*Service, error) {
	if storage == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "storage collaborator required")
	}
	return &Service{storage: storage}, nil
}

// DarkMode returns the stored flag, defaulting to false when never written.
func (s *Service) DarkMode(ctx context.Context) (bool, error) {
	data, ok, err := s.storage.Get(ctx, kv.KeyDarkMode)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load dark mode")
	}
	if !ok {
		return false, nil
	}
	var enabled bool
	if err := json.Unmarshal(data, &enabled); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode dark mode")
	}
	return enabled, nil
}

// SetDarkMode durably stores the flag.
func (s *Service) SetDarkMode(ctx context.Context, enabled bool) error {
	data, err := json.Marshal(enabled)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode dark mode")
	}
	if err := s.storage.Set(ctx, kv.KeyDarkMode, data); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist dark mode")
	}
	return nil
}

// Toggle flips the flag and returns the new value.
func (s *Service) Toggle(ctx context.Context) (bool, error) {
	enabled, err := s.DarkMode(ctx)
	if err != nil {
		return false, err
	}
	next := !enabled
	if err := s.SetDarkMode(ctx, next); err != nil {
		return false, err
	}
	return next, nil
}
