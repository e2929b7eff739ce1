package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	interfaces "github.com/sheikh-saqib/bank-client-ledger/internal/interfaces"
	"github.com/sheikh-saqib/bank-client-ledger/internal/models"
	"github.com/sheikh-saqib/bank-client-ledger/internal/storage"
)

// ClientStore is an in-memory implementation of interfaces.ClientStore.
// Clients are kept in insertion order; lookups scan the slice and return the first match.
type ClientStore struct {
	mu      sync.Mutex       // protects clients
	clients []*models.Client // ordered collection, never handed out directly
}

// NewClientStore creates an empty store.
func NewClientStore() *ClientStore {
	return &ClientStore{
		clients: make([]*models.Client, 0),
	}
}

// Save appends a copy of the client. Email uniqueness is not checked.
// The generated ID is written back to the caller's client so it can be updated or deleted later.
func (m *ClientStore) Save(ctx context.Context, client *models.Client) error {

	m.mu.Lock()
	defer m.mu.Unlock()

	if client.ID == "" {
		client.ID = uuid.New().String()
	}
	stored := *client
	m.clients = append(m.clients, &stored)
	return nil
}

// FindByEmail returns a copy of the first client whose email equals email exactly.
func (m *ClientStore) FindByEmail(ctx context.Context, email string) (*models.Client, error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.clients {
		if c.Email == email {
			found := *c
			return &found, nil
		}
	}
	return nil, storage.ErrNotFound
}

// FindByID returns a copy of the record saved under id.
func (m *ClientStore) FindByID(ctx context.Context, id string) (*models.Client, error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return nil, storage.ErrNotFound
	}
	found := *m.clients[i]
	return &found, nil
}

// Update overwrites the stored records with the given clients.
// Either every client is found and written, or nothing changes.
func (m *ClientStore) Update(ctx context.Context, clients ...*models.Client) error {

	m.mu.Lock()
	defer m.mu.Unlock()

	idx := make([]int, len(clients))
	for i, c := range clients {
		idx[i] = m.indexOf(c.ID)
		if idx[i] < 0 {
			return storage.ErrNotFound
		}
	}
	for i, c := range clients {
		updated := *c
		m.clients[idx[i]] = &updated
	}
	return nil
}

// Delete removes the record that was saved as client. Unknown clients are ignored.
func (m *ClientStore) Delete(ctx context.Context, client *models.Client) error {

	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexOf(client.ID); i >= 0 {
		m.clients = append(m.clients[:i], m.clients[i+1:]...)
	}
	return nil
}

// List returns copies of all clients in insertion order.
func (m *ClientStore) List(ctx context.Context) ([]*models.Client, error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]*models.Client, len(m.clients))
	for i, c := range m.clients {
		cp := *c
		copied[i] = &cp
	}
	return copied, nil // copies so external code can't modify internal state
}

// indexOf must be called with mu held.
func (m *ClientStore) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, c := range m.clients {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Compile-time check: ensure ClientStore implements the ClientStore interface
var _ interfaces.ClientStore = (*ClientStore)(nil)
