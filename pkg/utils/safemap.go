package utils

import (
	"sync"
)

// SafeMap is a map guarded by a mutex
type SafeMap[K comparable, V any] struct {
	mutex sync.Mutex
	data  map[K]V
}

func NewSafeMap[K comparable, V any]() *SafeMap[K, V] {
	return &SafeMap[K, V]{data: make(map[K]V)}
}

func (m *SafeMap[K, V]) Put(key K, value V) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.data[key] = value
}

// Take removes key and returns the value it held
func (m *SafeMap[K, V]) Take(key K) (V, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	v, ok := m.data[key]
	delete(m.data, key)
	return v, ok
}

func (m *SafeMap[K, V]) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.data)
}

func (m *SafeMap[K, V]) Keys() []K {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	keys := make([]K, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys
}
