// Package store holds the client-scoped cart and favorites containers.
// The containers are plain in-memory state; persistence is delegated to a
// Persister so the same logic backs browser sessions, tests, and the
// database-backed session endpoints.
package store

// Persister loads and saves an opaque serialized snapshot under a key.
type Persister interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

// MemoryPersister keeps snapshots in a map. Used in tests and as the
// default when no durable backend is wired.
type MemoryPersister struct {
	data map[string][]byte
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{data: make(map[string][]byte)}
}

func (m *MemoryPersister) Load(key string) ([]byte, error) {
	return m.data[key], nil
}

func (m *MemoryPersister) Save(key string, data []byte) error {
	m.data[key] = data
	return nil
}
