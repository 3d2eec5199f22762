package account

import (
	"context"
	"encoding/json"

	"github.com/anhpng/luyende/internal/store"
)

// Storage keys. The account list and the current-user snapshot are separate
// documents, each rewritten whole on every mutation.
const (
	KeyAccounts    = "quiz_users"
	KeyCurrentUser = "quiz_current_user"
)

// Storage is the persistence collaborator injected into the Service.
// Writes are synchronous; there is a single local writer.
type Storage interface {
	// Load returns the document for key. The bool reports existence.
	Load(key string) (json.RawMessage, bool, error)

	// Save replaces the document for key.
	Save(key string, value json.RawMessage) error

	// Delete removes the document for key.
	Delete(key string) error
}

// MemoryStorage is an in-memory Storage for tests.
type MemoryStorage struct {
	docs map[string]json.RawMessage

	// Saves counts Save calls, letting tests assert write-through.
	Saves int
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{docs: make(map[string]json.RawMessage)}
}

func (m *MemoryStorage) Load(key string) (json.RawMessage, bool, error) {
	v, ok := m.docs[key]
	return v, ok, nil
}

func (m *MemoryStorage) Save(key string, value json.RawMessage) error {
	m.Saves++
	m.docs[key] = append(json.RawMessage(nil), value...)
	return nil
}

func (m *MemoryStorage) Delete(key string) error {
	delete(m.docs, key)
	return nil
}

// StoreStorage adapts the SQLite-backed document repo to Storage.
type StoreStorage struct {
	repo store.DocumentRepo
}

// NewStoreStorage wraps a document repo.
func NewStoreStorage(repo store.DocumentRepo) *StoreStorage {
	return &StoreStorage{repo: repo}
}

func (s *StoreStorage) Load(key string) (json.RawMessage, bool, error) {
	return s.repo.Get(context.Background(), key)
}

func (s *StoreStorage) Save(key string, value json.RawMessage) error {
	return s.repo.Put(context.Background(), key, value)
}

func (s *StoreStorage) Delete(key string) error {
	return s.repo.Delete(context.Background(), key)
}
