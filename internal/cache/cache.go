package cache

// Namespace separates cached results by data kind so composite keys from
// different fetchers cannot collide.
type Namespace string

const (
	NamespacePrices        Namespace = "prices"
	NamespaceMetrics       Namespace = "financial_metrics"
	NamespaceInsiderTrades Namespace = "insider_trades"
)

// Store is a process-lifetime memo of fetch results, keyed by namespace and
// composite request key. There is no eviction, expiry, or size bound, and no
// locking: the store is meant for single-threaded batch and interactive use,
// where unbounded growth over one run is acceptable.
type Store struct {
	data map[Namespace]map[string]any
}

// New returns an empty Store. Construct one per process (or per test) and
// inject it, rather than sharing a package global.
func New() *Store {
	return &Store{data: make(map[Namespace]map[string]any)}
}

// Get returns the value stored under ns/key, and whether one exists.
func (s *Store) Get(ns Namespace, key string) (any, bool) {
	m, ok := s.data[ns]
	if !ok {
		return nil, false
	}
	v, ok := m[key]
	return v, ok
}

// Set stores value under ns/key, replacing any previous value.
func (s *Store) Set(ns Namespace, key string, value any) {
	m, ok := s.data[ns]
	if !ok {
		m = make(map[string]any)
		s.data[ns] = m
	}
	m[key] = value
}

// Clear drops every entry in every namespace.
func (s *Store) Clear() {
	s.data = make(map[Namespace]map[string]any)
}
