package structures

// OrderedMap keeps unique keys in insertion order.
type OrderedMap[K comparable, V any] struct {
	keys []K
	data map[K]V
}

func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		keys: make([]K, 0),
		data: make(map[K]V),
	}
}

// Put overwrites an existing key in place without changing its position.
func (m *OrderedMap[K, V]) Put(key K, value V) {
	if _, exists := m.data[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.data[key] = value
}

func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	val, exists := m.data[key]
	return val, exists
}

func (m *OrderedMap[K, V]) ContainsKey(key K) bool {
	_, exists := m.data[key]
	return exists
}

func (m *OrderedMap[K, V]) Keys() []K {
	keys := make([]K, len(m.keys))
	copy(keys, m.keys)
	return keys
}

func (m *OrderedMap[K, V]) Values() []V {
	values := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		values = append(values, m.data[k])
	}
	return values
}

func (m *OrderedMap[K, V]) Length() int {
	return len(m.keys)
}

func (m *OrderedMap[K, V]) Clone() *OrderedMap[K, V] {
	clone := NewOrderedMap[K, V]()
	for _, k := range m.keys {
		clone.Put(k, m.data[k])
	}
	return clone
}
