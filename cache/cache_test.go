package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/salesloop/pagelens/models"
)

func record(title string) *models.ContentRecord {
	return &models.ContentRecord{Title: title}
}

func TestCache_PutGet(t *testing.T) {
	c := New(time.Hour, 10)

	c.Put("https://example.com", models.MethodHTTP, record("Produto"))

	got, ok := c.Get("https://example.com", models.MethodHTTP)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.Title != "Produto" {
		t.Errorf("Title = %q, want %q", got.Title, "Produto")
	}
}

func TestCache_MissOnUnknownKey(t *testing.T) {
	c := New(time.Hour, 10)

	if _, ok := c.Get("https://example.com", models.MethodHTTP); ok {
		t.Error("expected miss on empty cache")
	}
}

func TestCache_MethodsAreDistinctKeys(t *testing.T) {
	c := New(time.Hour, 10)

	c.Put("https://example.com", models.MethodAuto, record("via auto"))

	if _, ok := c.Get("https://example.com", models.MethodHTTP); ok {
		t.Error("auto entry must not satisfy a concrete-method lookup")
	}
	if _, ok := c.Get("https://example.com", models.MethodAuto); !ok {
		t.Error("expected hit for the auto key")
	}
}

func TestCache_StaleEntryIsEvicted(t *testing.T) {
	c := New(10*time.Millisecond, 10)

	c.Put("https://example.com", models.MethodHTTP, record("velho"))
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("https://example.com", models.MethodHTTP); ok {
		t.Fatal("expected miss for stale entry")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d after stale read, want 0", c.Len())
	}
}

func TestCache_Clear(t *testing.T) {
	c := New(time.Hour, 10)

	c.Put("https://a.com", models.MethodHTTP, record("a"))
	c.Put("https://b.com", models.MethodHTTP, record("b"))
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", c.Len())
	}
	if _, ok := c.Get("https://a.com", models.MethodHTTP); ok {
		t.Error("expected miss after Clear")
	}
}

func TestCache_CapacityEviction(t *testing.T) {
	c := New(time.Hour, 3)

	for i := 0; i < 5; i++ {
		c.Put(fmt.Sprintf("https://site%d.com", i), models.MethodHTTP, record("r"))
	}

	if c.Len() > 3 {
		t.Errorf("Len = %d, want at most 3", c.Len())
	}
}
