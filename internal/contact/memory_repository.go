package contact

import (
	"context"
	"errors"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu       sync.RWMutex
	contacts map[string]Contact
}

// NewMemoryRepository builds an in-memory contact book for tests and dev
// mode.
func NewMemoryRepository() Repository {
	return &memoryRepository{contacts: make(map[string]Contact)}
}

func (r *memoryRepository) Create(_ context.Context, contact Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.contacts[contact.Phone]; exists {
		return ErrExists
	}
	r.contacts[contact.Phone] = contact
	return nil
}

func (r *memoryRepository) FindByPhone(_ context.Context, phone string) (Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	contact, ok := r.contacts[phone]
	if !ok {
		return Contact{}, errors.New("contact not found")
	}
	return contact, nil
}

func (r *memoryRepository) List(_ context.Context) ([]Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	contacts := make([]Contact, 0, len(r.contacts))
	for _, contact := range r.contacts {
		contacts = append(contacts, contact)
	}
	sort.Slice(contacts, func(i, j int) bool {
		return contacts[i].CreatedAt.After(contacts[j].CreatedAt)
	})
	return contacts, nil
}
