package types

// OrderedMap is a map that remembers insertion order of its keys.
type OrderedMap[K comparable, V any] struct {
	kv    map[K]entry[V]
	order chain[K]
}

type entry[V any] struct {
	at    handle
	value V
}

func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		kv: make(map[K]entry[V]),
	}
}

func (m *OrderedMap[K, V]) Get(key K) (value V, ok bool) {
	e, ok := m.kv[key]
	if ok {
		value = e.value
	}

	return
}

// Set stores value under key and reports whether the key is new. Updating
// an existing key keeps its position.
func (m *OrderedMap[K, V]) Set(key K, value V) bool {
	if m.kv == nil {
		m.kv = make(map[K]entry[V])
	}

	if e, alreadyExist := m.kv[key]; alreadyExist {
		e.value = value
		m.kv[key] = e
		return false
	}

	m.kv[key] = entry[V]{at: m.order.pushBack(key), value: value}
	return true
}

func (m *OrderedMap[K, V]) Len() int {
	return len(m.kv)
}

func (m *OrderedMap[K, V]) Keys() (keys []K) {
	keys = make([]K, 0, m.Len())
	for h := m.order.front; h != nilHandle; h = m.order.next(h) {
		keys = append(keys, m.order.value(h))
	}

	return
}

func (m *OrderedMap[K, V]) Delete(key K) (didDelete bool) {
	e, ok := m.kv[key]
	if ok {
		m.order.remove(e.at)
		delete(m.kv, key)
	}

	return ok
}
