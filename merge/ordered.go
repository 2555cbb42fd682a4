package merge

// orderedMap is a map that iterates in insertion order.
type orderedMap[K comparable, V any] struct {
	keys  []K
	index map[K]V
}

func newOrderedMap[K comparable, V any]() *orderedMap[K, V] {
	return &orderedMap[K, V]{index: make(map[K]V)}
}

func (m *orderedMap[K, V]) get(k K) (V, bool) {
	v, ok := m.index[k]
	return v, ok
}

// getOrCreate returns the value for k, inserting create() at the end when k
// is absent.
func (m *orderedMap[K, V]) getOrCreate(k K, create func() V) V {
	if v, ok := m.index[k]; ok {
		return v
	}
	v := create()
	m.keys = append(m.keys, k)
	m.index[k] = v
	return v
}

func (m *orderedMap[K, V]) len() int {
	return len(m.keys)
}

// values returns the values in insertion order.
func (m *orderedMap[K, V]) values() []V {
	out := make([]V, len(m.keys))
	for i, k := range m.keys {
		out[i] = m.index[k]
	}
	return out
}
