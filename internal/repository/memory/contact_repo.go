package memory

import (
	"context"
	"sync"

	"contacts-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ domain.ContactRepository = (*contactRepo)(nil)

type contactRepo struct {
	mu       sync.RWMutex
	contacts map[string]domain.Contact
	order    []string
}

// NewContactRepository creates an in-memory contact store. Identifiers are
// generated in the same 24-hex format the document database uses.
func NewContactRepository() domain.ContactRepository {
	return &contactRepo{
		contacts: make(map[string]domain.Contact),
	}
}

func (r *contactRepo) List(ctx context.Context) ([]domain.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contacts := make([]domain.Contact, 0, len(r.order))
	for _, id := range r.order {
		contacts = append(contacts, r.contacts[id])
	}
	return contacts, nil
}

func (r *contactRepo) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contact, exists := r.contacts[id]
	if !exists {
		return nil, domain.ErrContactNotFound
	}
	return &contact, nil
}

func (r *contactRepo) Create(ctx context.Context, in domain.ContactInput) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := primitive.NewObjectID().Hex()
	r.contacts[id] = *in.ToContact(id)
	r.order = append(r.order, id)
	return id, nil
}

func (r *contactRepo) Update(ctx context.Context, id string, in domain.ContactInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.contacts[id]; !exists {
		return domain.ErrContactNotFound
	}
	r.contacts[id] = *in.ToContact(id)
	return nil
}

func (r *contactRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.contacts[id]; !exists {
		return domain.ErrContactNotFound
	}
	delete(r.contacts, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *contactRepo) Ping(ctx context.Context) error {
	return ctx.Err()
}
