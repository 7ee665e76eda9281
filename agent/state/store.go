package state

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrDuplicateOrder = errors.New("duplicate tracking number")
	ErrNilOrder       = errors.New("order is nil")
	ErrInvalidEmail   = errors.New("user email is empty")
)

// Store is the record store contract used by the locator and dispatcher.
type Store interface {
	FindByID(id int) (*Order, bool)
	FindByEmail(email string) ([]*Order, bool)
	Cancel(o *Order) error
}

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps orders indexed by tracking number and by owner email.
// It is not safe for concurrent use; a session owns exactly one store.
type MemoryStore struct {
	byID    map[int]*Order
	byEmail map[string][]*Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[int]*Order, 256),
		byEmail: make(map[string][]*Order, 32),
	}
}

// RegisterUser makes email known to the store even if it owns no orders yet.
func (s *MemoryStore) RegisterUser(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrInvalidEmail
	}
	if _, ok := s.byEmail[email]; !ok {
		s.byEmail[email] = []*Order{}
	}
	return nil
}

// Add stores a copy of o and returns the stored pointer.
func (s *MemoryStore) Add(o Order) (*Order, error) {
	if strings.TrimSpace(o.UserEmail) == "" {
		return nil, ErrInvalidEmail
	}
	if _, exists := s.byID[o.ID]; exists {
		return nil, fmt.Errorf("%w: id=%d", ErrDuplicateOrder, o.ID)
	}

	stored := &o
	s.byID[o.ID] = stored
	s.byEmail[o.UserEmail] = append(s.byEmail[o.UserEmail], stored)
	return stored, nil
}

func (s *MemoryStore) FindByID(id int) (*Order, bool) {
	o, ok := s.byID[id]
	return o, ok
}

// FindByEmail returns the orders owned by email in insertion order. The bool
// reports whether the email is known at all.
func (s *MemoryStore) FindByEmail(email string) ([]*Order, bool) {
	orders, ok := s.byEmail[email]
	if !ok {
		return nil, false
	}
	return slices.Clone(orders), true
}

// Cancel removes o from both indexes. The order must be present.
func (s *MemoryStore) Cancel(o *Order) error {
	if o == nil {
		return ErrNilOrder
	}
	stored, ok := s.byID[o.ID]
	if !ok || stored != o {
		return fmt.Errorf("%w: id=%d", ErrOrderNotFound, o.ID)
	}

	owned := s.byEmail[o.UserEmail]
	idx := slices.Index(owned, o)
	if idx < 0 {
		return fmt.Errorf("%w: id=%d missing from %s", ErrOrderNotFound, o.ID, o.UserEmail)
	}

	s.byEmail[o.UserEmail] = slices.Delete(owned, idx, idx+1)
	delete(s.byID, o.ID)
	return nil
}

// Len returns the number of live orders.
func (s *MemoryStore) Len() int {
	return len(s.byID)
}

// Users returns the number of known emails.
func (s *MemoryStore) Users() int {
	return len(s.byEmail)
}
