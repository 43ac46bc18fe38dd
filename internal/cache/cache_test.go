package cache

import "testing"

func TestStore_GetSet(t *testing.T) {
	s := New()

	if _, ok := s.Get(NamespacePrices, "AAPL_2024-01-01_2024-01-31"); ok {
		t.Fatal("expected miss on empty store")
	}

	s.Set(NamespacePrices, "AAPL_2024-01-01_2024-01-31", []int{1, 2, 3})
	v, ok := s.Get(NamespacePrices, "AAPL_2024-01-01_2024-01-31")
	if !ok {
		t.Fatal("expected hit after set")
	}
	if got := v.([]int); len(got) != 3 {
		t.Errorf("expected stored value back, got %v", got)
	}
}

func TestStore_NamespaceIsolation(t *testing.T) {
	s := New()
	s.Set(NamespacePrices, "AAPL", "prices")
	s.Set(NamespaceMetrics, "AAPL", "metrics")

	v, ok := s.Get(NamespacePrices, "AAPL")
	if !ok || v.(string) != "prices" {
		t.Errorf("prices namespace returned %v", v)
	}
	v, ok = s.Get(NamespaceMetrics, "AAPL")
	if !ok || v.(string) != "metrics" {
		t.Errorf("metrics namespace returned %v", v)
	}
	if _, ok := s.Get(NamespaceInsiderTrades, "AAPL"); ok {
		t.Error("insider namespace should be empty")
	}
}

func TestStore_SetReplaces(t *testing.T) {
	s := New()
	s.Set(NamespaceMetrics, "AAPL", 1)
	s.Set(NamespaceMetrics, "AAPL", 2)

	v, _ := s.Get(NamespaceMetrics, "AAPL")
	if v.(int) != 2 {
		t.Errorf("expected last write to win, got %v", v)
	}
}

func TestStore_Clear(t *testing.T) {
	s := New()
	s.Set(NamespacePrices, "a", 1)
	s.Set(NamespaceMetrics, "b", 2)
	s.Set(NamespaceInsiderTrades, "c", 3)

	s.Clear()

	for _, ns := range []Namespace{NamespacePrices, NamespaceMetrics, NamespaceInsiderTrades} {
		for _, key := range []string{"a", "b", "c"} {
			if _, ok := s.Get(ns, key); ok {
				t.Errorf("expected %s/%s gone after Clear", ns, key)
			}
		}
	}

	// Store stays usable after Clear.
	s.Set(NamespacePrices, "a", 4)
	if v, ok := s.Get(NamespacePrices, "a"); !ok || v.(int) != 4 {
		t.Error("expected store usable after Clear")
	}
}
