package directory

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"nexventory/internal/domain"
)

// ErrUserNotFound is returned when a user id is not in the directory
var ErrUserNotFound = errors.New("user not found")

// Store provides access to the user directory
type Store interface {
	Users() []*domain.User
	User(id string) (*domain.User, bool)
	AddUser(user *domain.User)
	UpdateUser(user *domain.User) error
	Permissions() []domain.Permission
	Regions() []domain.Region
	Replace(seed *Seed)
	Snapshot() *Seed
}

// MemoryStore is an in-memory implementation of Store
type MemoryStore struct {
	mu          sync.RWMutex
	users       map[string]*domain.User
	permissions []domain.Permission
	regions     []domain.Region
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]*domain.User),
	}
}

// NewMemoryStoreFromSeed creates a store holding seed's records
func NewMemoryStoreFromSeed(seed *Seed) *MemoryStore {
	s := NewMemoryStore()
	s.Replace(seed)
	return s
}

// Users returns copies of all users sorted by username
func (s *MemoryStore) Users() []*domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		result = append(result, u.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Username == result[j].Username {
			return result[i].ID < result[j].ID
		}
		return result[i].Username < result[j].Username
	})
	return result
}

// User returns a copy of the user with id
func (s *MemoryStore) User(id string) (*domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, false
	}
	return u.Clone(), true
}

// AddUser inserts or replaces a user
func (s *MemoryStore) AddUser(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user.Clone()
}

// UpdateUser replaces an existing user
func (s *MemoryStore) UpdateUser(user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return fmt.Errorf("update %q: %w", user.ID, ErrUserNotFound)
	}
	s.users[user.ID] = user.Clone()
	return nil
}

// Permissions returns the permission catalogue in seed order
func (s *MemoryStore) Permissions() []domain.Permission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Permission(nil), s.permissions...)
}

// Regions returns the region catalogue in seed order
func (s *MemoryStore) Regions() []domain.Region {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Region(nil), s.regions...)
}

// Replace swaps the whole directory for seed's contents
func (s *MemoryStore) Replace(seed *Seed) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[string]*domain.User, len(seed.Users))
	for i := range seed.Users {
		u := seed.Users[i]
		s.users[u.ID] = u.Clone()
	}
	s.permissions = append([]domain.Permission(nil), seed.Permissions...)
	s.regions = append([]domain.Region(nil), seed.Regions...)
}

// Snapshot returns the directory as a seed, users sorted by username
func (s *MemoryStore) Snapshot() *Seed {
	users := s.Users()
	seed := &Seed{
		Permissions: s.Permissions(),
		Regions:     s.Regions(),
		Users:       make([]domain.User, 0, len(users)),
	}
	for _, u := range users {
		seed.Users = append(seed.Users, *u)
	}
	return seed
}
