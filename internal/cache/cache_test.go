package cache

import (
	"image"
	"sync"
	"testing"
)

func byteCost(n int) int64 { return int64(n) }

func TestGetSet(t *testing.T) {
	c := New[string, int](0, byteCost)
	c.Set("a", 10)

	if v, ok := c.Get("a"); !ok || v != 10 {
		t.Errorf("Get(a) = %d, %v, want 10, true", v, ok)
	}
	if _, ok := c.Get("b"); ok {
		t.Error("Get(b) found a missing key")
	}
	c.Set("a", 4)
	if c.Used() != 4 || c.Len() != 1 {
		t.Errorf("after replace: Used() = %d, Len() = %d, want 4, 1", c.Used(), c.Len())
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string, int](30, byteCost)
	c.Set("a", 10)
	c.Set("b", 10)
	c.Set("c", 10)
	c.Get("a")
	c.Set("d", 10)

	tests := []struct {
		key  string
		want bool
	}{
		{"a", true},
		{"b", false},
		{"c", true},
		{"d", true},
	}
	for _, tt := range tests {
		if _, ok := c.Get(tt.key); ok != tt.want {
			t.Errorf("Get(%s) present = %v, want %v", tt.key, ok, tt.want)
		}
	}
	if s := c.Stats(); s.Evictions != 1 || s.Used != 30 {
		t.Errorf("Stats() = %+v, want 1 eviction and 30 bytes", s)
	}
}

func TestOversizedEntryKept(t *testing.T) {
	c := New[string, int](10, byteCost)
	c.Set("a", 5)
	c.Set("big", 50)
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
	if _, ok := c.Get("big"); !ok {
		t.Error("newest entry evicted")
	}
}

func TestDeleteFunc(t *testing.T) {
	c := New[image.Rectangle, image.Image](0, ImageBytes)
	for x := 0; x < 4; x++ {
		r := image.Rect(x*64, 0, x*64+64, 64)
		c.Set(r, image.NewRGBA(image.Rect(0, 0, 64, 64)))
	}
	if c.Used() != 4*64*64*4 {
		t.Errorf("Used() = %d, want %d", c.Used(), 4*64*64*4)
	}

	dirty := image.Rect(100, 10, 140, 20)
	n := c.DeleteFunc(func(r image.Rectangle) bool { return r.Overlaps(dirty) })
	if n != 2 || c.Len() != 2 {
		t.Errorf("DeleteFunc() = %d, Len() = %d, want 2, 2", n, c.Len())
	}
	if !c.Delete(image.Rect(0, 0, 64, 64)) || c.Delete(image.Rect(0, 0, 64, 64)) {
		t.Error("Delete() should succeed once")
	}

	c.Clear()
	if c.Len() != 0 || c.Used() != 0 {
		t.Error("Clear() left entries")
	}
}

func TestStatsHitRate(t *testing.T) {
	c := New[int, int](0, byteCost)
	c.Set(1, 1)
	c.Get(1)
	c.Get(1)
	c.Get(1)
	c.Get(2)
	if s := c.Stats(); s.HitRate != 0.75 || s.Hits != 3 || s.Misses != 1 {
		t.Errorf("Stats() = %+v, want hit rate 0.75", s)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int, int](100, byteCost)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				c.Set(g*1000+i, 1)
				c.Get(g*1000 + i/2)
			}
		}()
	}
	wg.Wait()
	if c.Used() > 100 {
		t.Errorf("Used() = %d, want <= 100", c.Used())
	}
	if int64(c.Len()) != c.Used() {
		t.Errorf("Len() = %d, Used() = %d, want equal", c.Len(), c.Used())
	}
}
