package common

import (
	"testing"
	"time"
)

func TestCachePutGet(t *testing.T) {
	c := NewCache[int](time.Minute)
	if _, ok := c.Get(); ok {
		t.Error("empty cache reported a hit")
	}
	c.Put(42)
	v, ok := c.Get()
	if !ok || v != 42 {
		t.Errorf("got (%d, %v), want (42, true)", v, ok)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache[string](10 * time.Millisecond)
	c.Put("fresh")
	if _, ok := c.Get(); !ok {
		t.Fatal("immediate read missed")
	}
	time.Sleep(25 * time.Millisecond)
	if v, ok := c.Get(); ok {
		t.Errorf("expired entry still served: %q", v)
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := NewCache[int](time.Minute)
	c.Put(1)
	c.Invalidate()
	if _, ok := c.Get(); ok {
		t.Error("invalidated entry still served")
	}
}

func TestCacheOverwrite(t *testing.T) {
	c := NewCache[int](time.Minute)
	c.Put(1)
	c.Put(2)
	if v, _ := c.Get(); v != 2 {
		t.Errorf("got %d, want the latest value", v)
	}
}
