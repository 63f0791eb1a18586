package store

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"scatch_back_end/internal/models"
)

// Implémentations en mémoire des stores, utilisées par les tests et
// utilisables en dev sans MongoDB.

type MemoryUsers struct {
	mu    sync.Mutex
	users map[string]*models.User // email → document complet (hash inclus)
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: make(map[string]*models.User)}
}

func (s *MemoryUsers) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[u.Email]; exists {
		return ErrDuplicateEmail
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.Cart == nil {
		u.Cart = []primitive.ObjectID{}
	}
	clone := *u
	s.users[u.Email] = &clone
	return nil
}

func (s *MemoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	clone.Password = "" // même projection que Mongo
	clone.Cart = append([]primitive.ObjectID(nil), u.Cart...)
	return &clone, nil
}

func (s *MemoryUsers) Credentials(_ context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok {
		return "", ErrNotFound
	}
	return u.Password, nil
}

func (s *MemoryUsers) PushCart(_ context.Context, email string, productID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok {
		return ErrNotFound
	}
	u.Cart = append(u.Cart, productID)
	return nil
}

type MemoryOwners struct {
	mu     sync.Mutex
	owners map[string]*models.Owner
}

func NewMemoryOwners() *MemoryOwners {
	return &MemoryOwners{owners: make(map[string]*models.Owner)}
}

func (s *MemoryOwners) Create(_ context.Context, o *models.Owner) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.owners[o.Email]; exists {
		return ErrDuplicateEmail
	}
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	clone := *o
	s.owners[o.Email] = &clone
	return nil
}

func (s *MemoryOwners) FindByEmail(_ context.Context, email string) (*models.Owner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.owners[email]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *o
	clone.Password = ""
	return &clone, nil
}

func (s *MemoryOwners) Credentials(_ context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.owners[email]
	if !ok {
		return "", ErrNotFound
	}
	return o.Password, nil
}

type MemoryProducts struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]models.Product
	order    []primitive.ObjectID
}

func NewMemoryProducts() *MemoryProducts {
	return &MemoryProducts{products: make(map[primitive.ObjectID]models.Product)}
}

func (s *MemoryProducts) Create(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if _, exists := s.products[p.ID]; !exists {
		s.order = append(s.order, p.ID)
	}
	s.products[p.ID] = *p
	return nil
}

func (s *MemoryProducts) All(_ context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.products[id])
	}
	return out, nil
}

func (s *MemoryProducts) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[primitive.ObjectID]models.Product, len(ids))
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}
