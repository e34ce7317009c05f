package value

// Mapping is an ordered map from string keys to values. Insertion order is
// preserved so merged trees serialize deterministically.
type Mapping struct {
	keys  []string
	items map[string]Value
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{items: make(map[string]Value)}
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Value, bool) {
	v, ok := m.items[key]

	return v, ok
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.items[key]

	return ok
}

// Set stores v under key, appending the key when it is new. It returns the
// mapping to allow chained construction in tests and fixtures.
func (m *Mapping) Set(key string, v Value) *Mapping {
	if m.items == nil {
		m.items = make(map[string]Value)
	}

	if _, ok := m.items[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.items[key] = v

	return m
}

// Delete removes key, preserving the order of the remaining keys.
func (m *Mapping) Delete(key string) {
	if _, ok := m.items[key]; !ok {
		return
	}

	delete(m.items, key)

	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)

			break
		}
	}
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order. The slice is a copy.
func (m *Mapping) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)

	return out
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m *Mapping) Range(fn func(key string, v Value) bool) {
	for _, k := range m.keys {
		if !fn(k, m.items[k]) {
			return
		}
	}
}

// Clone returns a shallow copy: entry values are shared, which is safe
// because values are immutable.
func (m *Mapping) Clone() *Mapping {
	out := &Mapping{
		keys:  make([]string, len(m.keys)),
		items: make(map[string]Value, len(m.items)),
	}
	copy(out.keys, m.keys)

	for k, v := range m.items {
		out.items[k] = v
	}

	return out
}

// Equal reports whether both mappings hold the same keys with equal values.
// Key order is not significant for equality.
func (m *Mapping) Equal(o *Mapping) bool {
	if m.Len() != o.Len() {
		return false
	}

	for k, v := range m.items {
		ov, ok := o.items[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}

	return true
}
