package repository

import "sync"

// MemoryKVRepo backs the store with a plain map. Used by tests and by
// STORAGE_BACKEND=memory; nothing survives a restart.
type MemoryKVRepo struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryKVRepository() KVRepository {
	return &MemoryKVRepo{
		data: make(map[string]string),
	}
}

func (m *MemoryKVRepo) Get(key string) (value string, exists bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, exists = m.data[key]
	return
}

func (m *MemoryKVRepo) Set(key string, value string) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return
}

func (m *MemoryKVRepo) Delete(key string) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return
}
