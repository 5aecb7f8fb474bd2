package report

import "sort"

// AttributeCloner is implemented by attribute values that hold mutable state.
// Copies of an element receive CloneAttribute's result instead of sharing the
// value.
type AttributeCloner interface {
	CloneAttribute() any
}

// AttributeMap is a namespaced key-value store with a change counter.
//
// Clone shares the backing storage between both maps until either side is
// written; the writer then copies. Readers never observe the other side's
// writes.
type AttributeMap struct {
	values        map[string]map[string]any
	shared        bool
	changeTracker int64
}

// NewAttributeMap creates an empty attribute map.
func NewAttributeMap() *AttributeMap {
	return &AttributeMap{values: make(map[string]map[string]any)}
}

// Get returns the value stored under (namespace, name), or nil.
func (m *AttributeMap) Get(namespace, name string) any {
	return m.values[namespace][name]
}

// Set stores value under (namespace, name) and returns the previous value. A
// nil value removes the entry.
func (m *AttributeMap) Set(namespace, name string, value any) any {
	old := m.values[namespace][name]
	if value == nil && old == nil {
		return nil
	}
	m.copyOnWrite()
	if value == nil {
		delete(m.values[namespace], name)
		if len(m.values[namespace]) == 0 {
			delete(m.values, namespace)
		}
	} else {
		ns := m.values[namespace]
		if ns == nil {
			ns = make(map[string]any)
			m.values[namespace] = ns
		}
		ns[name] = value
	}
	m.changeTracker++
	return old
}

// Namespaces returns the sorted namespaces that hold at least one value.
func (m *AttributeMap) Namespaces() []string {
	result := make([]string, 0, len(m.values))
	for ns := range m.values {
		result = append(result, ns)
	}
	sort.Strings(result)
	return result
}

// Names returns the sorted attribute names within a namespace.
func (m *AttributeMap) Names(namespace string) []string {
	ns := m.values[namespace]
	result := make([]string, 0, len(ns))
	for n := range ns {
		result = append(result, n)
	}
	sort.Strings(result)
	return result
}

// Len returns the number of stored values.
func (m *AttributeMap) Len() int {
	n := 0
	for _, ns := range m.values {
		n += len(ns)
	}
	return n
}

// ChangeTracker returns a counter that grows with every write.
func (m *AttributeMap) ChangeTracker() int64 {
	return m.changeTracker
}

// Each calls fn for every entry, ordered by namespace and name.
func (m *AttributeMap) Each(fn func(namespace, name string, value any)) {
	for _, ns := range m.Namespaces() {
		for _, n := range m.Names(ns) {
			fn(ns, n, m.values[ns][n])
		}
	}
}

// Clone returns a copy that shares storage with m until the first write.
func (m *AttributeMap) Clone() *AttributeMap {
	m.shared = true
	return &AttributeMap{values: m.values, shared: true, changeTracker: m.changeTracker}
}

// copyFor returns the attribute map of an element copy. Values implementing
// AttributeCloner are copied; on derive, computed values are dropped.
func (m *AttributeMap) copyFor(derive bool) *AttributeMap {
	c := m.Clone()
	for ns, names := range m.values {
		for n, v := range names {
			if derive && dropOnDerive(ns, n) {
				c.Set(ns, n, nil)
				continue
			}
			if cl, ok := v.(AttributeCloner); ok {
				c.Set(ns, n, cl.CloneAttribute())
			}
		}
	}
	return c
}

func (m *AttributeMap) copyOnWrite() {
	if !m.shared {
		return
	}
	values := make(map[string]map[string]any, len(m.values))
	for ns, names := range m.values {
		copied := make(map[string]any, len(names))
		for n, v := range names {
			copied[n] = v
		}
		values[ns] = copied
	}
	m.values = values
	m.shared = false
}
