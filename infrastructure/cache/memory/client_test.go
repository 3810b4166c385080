package memory

import (
	"context"
	"testing"
	"time"
)

func TestNewMemoryCache(t *testing.T) {
	cache := NewMemoryCache()

	if cache == nil {
		t.Fatal("NewMemoryCache returned nil")
	}
	if cache.Len() != 0 {
		t.Errorf("new cache has %d entries, want 0", cache.Len())
	}
}

func TestMemoryCache_SetThenGet(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	key := `internal:{"commodity":"maize"}`
	value := []byte(`{"timestamp":"2024-05-01T12:00:00Z","value":[]}`)
	if err := cache.Set(ctx, key, value, time.Minute); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	got, err := cache.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if string(got) != string(value) {
		t.Errorf("Get returned %s, want %s", got, value)
	}
}

func TestMemoryCache_Get_NonExistentKey(t *testing.T) {
	cache := NewMemoryCache()

	got, err := cache.Get(context.Background(), "non-existent")

	if err != ErrCacheMiss {
		t.Errorf("Get error = %v, want ErrCacheMiss", err)
	}
	if got != nil {
		t.Error("Get should return nil value for non-existent key")
	}
}

func TestMemoryCache_Get_ExpiredKey(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	if err := cache.Set(ctx, "short", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	if _, err := cache.Get(ctx, "short"); err == nil {
		t.Error("Get should return error for expired key")
	}
	if cache.Len() != 0 {
		t.Errorf("expired entry not dropped on lookup, %d entries remain", cache.Len())
	}
}

func TestMemoryCache_Set_WithZeroTTL(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	if err := cache.Set(ctx, "forever", []byte("v"), 0); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	if _, err := cache.Get(ctx, "forever"); err != nil {
		t.Errorf("zero TTL entry should not expire: %v", err)
	}
}

func TestMemoryCache_ValuesAreCopied(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	value := []byte("original")
	_ = cache.Set(ctx, "k", value, time.Minute)
	value[0] = 'X'

	got, _ := cache.Get(ctx, "k")
	if string(got) != "original" {
		t.Errorf("stored value changed with caller's slice: %s", got)
	}

	got[0] = 'Y'
	again, _ := cache.Get(ctx, "k")
	if string(again) != "original" {
		t.Errorf("stored value changed with returned slice: %s", again)
	}
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()
	_ = cache.Set(ctx, "a", []byte("1"), time.Minute)
	_ = cache.Set(ctx, "b", []byte("2"), time.Minute)
	_ = cache.Set(ctx, "c", []byte("3"), time.Minute)

	if err := cache.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete returned error: %v", err)
	}
	if err := cache.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete of missing key returned error: %v", err)
	}
	if cache.Len() != 2 {
		t.Errorf("Len = %d after delete, want 2", cache.Len())
	}

	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if cache.Len() != 0 {
		t.Errorf("Len = %d after clear, want 0", cache.Len())
	}
}

func TestMemoryCache_CancelledContext(t *testing.T) {
	cache := NewMemoryCache()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := cache.Set(ctx, "k", []byte("v"), time.Minute); err == nil {
		t.Error("Set should fail on cancelled context")
	}
	if _, err := cache.Get(ctx, "k"); err == nil {
		t.Error("Get should fail on cancelled context")
	}
}
