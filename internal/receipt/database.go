package receipt

import (
	"sync"

	"github.com/google/uuid"
)

// Store defines the interface for receipt storage
type Store interface {
	// Put saves a receipt and returns the ID assigned to it
	Put(receipt Receipt) string

	// Get retrieves a receipt by ID. The bool is false if no receipt has that ID.
	Get(id string) (Receipt, bool)
}

// IDGenerator generates unique IDs for receipts
type IDGenerator interface {
	Generate() string
}

// uuidGenerator generates random (version 4) UUIDs
type uuidGenerator struct{}

func (g *uuidGenerator) Generate() string {
	return uuid.NewString()
}

// MemoryStore implements the Store interface with a map held for the process lifetime
type MemoryStore struct {
	mu          sync.RWMutex
	receipts    map[string]Receipt
	idGenerator IDGenerator
}

// NewMemoryStore creates a new MemoryStore that assigns UUIDs
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithIDGenerator(&uuidGenerator{})
}

// NewMemoryStoreWithIDGenerator creates a new MemoryStore with a custom ID generator for testing
func NewMemoryStoreWithIDGenerator(idGen IDGenerator) *MemoryStore {
	return &MemoryStore{
		receipts:    make(map[string]Receipt),
		idGenerator: idGen,
	}
}

// Put saves a copy of the receipt under a freshly generated ID
func (m *MemoryStore) Put(receipt Receipt) string {
	stored := receipt.clone()

	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.idGenerator.Generate()
	for {
		if _, taken := m.receipts[id]; !taken {
			break
		}
		id = m.idGenerator.Generate()
	}
	m.receipts[id] = stored
	return id
}

// Get retrieves a copy of the receipt stored under id
func (m *MemoryStore) Get(id string) (Receipt, bool) {
	m.mu.RLock()
	receipt, ok := m.receipts[id]
	m.mu.RUnlock()
	if !ok {
		return Receipt{}, false
	}
	return receipt.clone(), true
}

// Len returns the number of stored receipts
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.receipts)
}
