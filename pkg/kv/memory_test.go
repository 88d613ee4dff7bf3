package kv

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryGetNeverWrittenKey(t *testing.T) {
	store := NewMemory()

	value, ok, err := store.Get(context.Background(), KeyUsers)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok || value != nil {
		t.Fatalf("expected absent key, got ok=%v value=%q", ok, value)
	}
}

func TestMemorySetReplacesWholeValue(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	if err := store.Set(ctx, KeyProducts, []byte(`[1]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, KeyProducts, []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	value, ok, err := store.Get(ctx, KeyProducts)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || string(value) != `[]` {
		t.Fatalf("expected replaced value, got ok=%v value=%q", ok, value)
	}
	if store.Len() != 1 {
		t.Fatalf("expected one key, got %d", store.Len())
	}
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	if err := store.Set(ctx, KeyUsers, []byte(`abc`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, _, err := store.Get(ctx, KeyUsers)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	value[0] = 'z'

	again, _, err := store.Get(ctx, KeyUsers)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if string(again) != "abc" {
		t.Fatalf("mutating a returned value must not affect the store, got %q", again)
	}
}

func TestMemoryFailWrites(t *testing.T) {
	store := NewMemory()
	boom := errors.New("boom")
	store.FailWrites = boom

	if err := store.Set(context.Background(), KeyUsers, []byte(`[]`)); !errors.Is(err, boom) {
		t.Fatalf("expected injected failure, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatal("failed write must not store anything")
	}
}
