package records

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/quasilyte/gdata"
)

// Store is a get/set key-value collaborator. LoadItem returns nil, nil for
// a key that was never saved. *gdata.Manager satisfies it.
type Store interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// OpenDisk opens the per-user data directory for appName.
func OpenDisk(appName string) (Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open gdata %s: %w", appName, err)
	}
	return m, nil
}

// MemStore keeps items in memory.
type MemStore struct {
	mu    sync.Mutex
	items map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{items: make(map[string][]byte)}
}

func (m *MemStore) LoadItem(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (m *MemStore) SaveItem(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = append([]byte(nil), data...)
	return nil
}

func loadJSON(s Store, key string, v any) (bool, error) {
	data, err := s.LoadItem(key)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return true, nil
}

func saveJSON(s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.SaveItem(key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
