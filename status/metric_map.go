package status

import (
	"sort"
	"sync"
)

// MetricMap holds named metrics of one kind
// Callers resolve a pointer once with Get and update it lock-free afterwards
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

// NewMetricMap creates an empty MetricMap
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{items: make(map[string]*T)}
}

// Get returns the metric for key, registering a zero value on first use
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	ptr, ok := m.items[key]
	m.mu.RUnlock()
	if ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok = m.items[key]; !ok {
		ptr = new(T)
		m.items[key] = ptr
	}
	return ptr
}

// Range calls fn for every metric in key order
// fn runs without the lock held, so it may call Get
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	m.mu.RLock()
	entries := make([]string, 0, len(m.items))
	ptrs := make(map[string]*T, len(m.items))
	for k, v := range m.items {
		entries = append(entries, k)
		ptrs[k] = v
	}
	m.mu.RUnlock()

	sort.Strings(entries)
	for _, k := range entries {
		fn(k, ptrs[k])
	}
}

// Count returns the number of registered metrics
func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
