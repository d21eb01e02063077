package template

// Map is an insertion-ordered mapping from name to Template. It backs the
// variable table as well as header and query collections, all of which need
// stable iteration order and last-write-wins assignment.
type Map struct {
	keys   []string
	values map[string]Template
}

func NewMap() *Map {
	return &Map{values: make(map[string]Template)}
}

// Set assigns value to name. A repeated assignment overwrites the value in
// place and keeps the name's original position.
func (m *Map) Set(name string, value Template) {
	if m.values == nil {
		m.values = make(map[string]Template)
	}
	if _, ok := m.values[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.values[name] = value
}

func (m *Map) Get(name string) (Template, bool) {
	if m == nil || m.values == nil {
		return Template{}, false
	}
	v, ok := m.values[name]
	return v, ok
}

// Keys returns the names in insertion order. The returned slice must not be
// modified.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}
