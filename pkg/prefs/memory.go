package prefs

var _ Prefs = (*Memory)(nil)

// Memory is a Prefs that lives only in process memory.
// The zero value is ready to use.
type Memory struct {
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

func (m *Memory) GetString(key, def string) string {
	if val, ok := m.values[key]; ok {
		return val
	}
	return def
}

func (m *Memory) SetString(key, value string) error {
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
	return nil
}

func (m *Memory) HasKey(key string) bool {
	_, ok := m.values[key]
	return ok
}

func (m *Memory) DeleteKey(key string) error {
	delete(m.values, key)
	return nil
}

func (m *Memory) DeleteAll() error {
	m.values = map[string]string{}
	return nil
}

func (m *Memory) Flush() error {
	return nil
}

// Keys returns every key currently held, in no particular order.
func (m *Memory) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	return keys
}
