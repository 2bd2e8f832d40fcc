package datastores

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// ContactsInmem implements [ContactsStore].
type ContactsInmem struct {
	mu       sync.Mutex
	nextID   ContactID
	contacts []Contact
}

var _ ContactsStore = (*ContactsInmem)(nil)

// NewContactsInmem returns a store holding cs in order.
// Allocated ids start above the largest id in cs.
func NewContactsInmem(cs ...Contact) *ContactsInmem {
	nextID := 1
	for _, c := range cs {
		nextID = max(nextID, c.ID+1)
	}
	return &ContactsInmem{nextID: nextID, contacts: slices.Clone(cs)}
}

func (s *ContactsInmem) Add(_ context.Context, c *Contact) (ContactID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.nextID
	s.nextID++
	s.contacts = append(s.contacts, *c)
	return c.ID, nil
}

func (s *ContactsInmem) Update(_ context.Context, index int, c *Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.update(index, c)
	return nil
}

func (s *ContactsInmem) Remove(_ context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(index)
	return nil
}

func (s *ContactsInmem) UpdateID(_ context.Context, id ContactID, c *Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, err := s.indexOf(id)
	if err != nil {
		return err
	}
	s.update(index, c)
	return nil
}

func (s *ContactsInmem) RemoveID(_ context.Context, id ContactID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, err := s.indexOf(id)
	if err != nil {
		return err
	}
	s.remove(index)
	return nil
}

func (s *ContactsInmem) Search(_ context.Context, query string) ([]Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if query == "" {
		return slices.Clone(s.contacts), nil
	}
	q := strings.ToLower(query)
	found := []Contact{}
	for _, c := range s.contacts {
		if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Email), q) {
			found = append(found, c)
		}
	}
	return found, nil
}

func (s *ContactsInmem) IndexOf(_ context.Context, id ContactID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id)
}

func (s *ContactsInmem) Get(_ context.Context, id ContactID) (Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, err := s.indexOf(id)
	if err != nil {
		return Contact{}, err
	}
	return s.contacts[index], nil
}

func (s *ContactsInmem) Len(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.contacts), nil
}

func (s *ContactsInmem) update(index int, c *Contact) {
	if index < 0 || index >= len(s.contacts) {
		return
	}
	dst := &s.contacts[index]
	dst.Name, dst.Email, dst.Phone, dst.Status = c.Name, c.Email, c.Phone, c.Status
}

func (s *ContactsInmem) remove(index int) {
	if index < 0 || index >= len(s.contacts) {
		return
	}
	s.contacts = slices.Delete(s.contacts, index, index+1)
}

func (s *ContactsInmem) indexOf(id ContactID) (int, error) {
	index := slices.IndexFunc(s.contacts, func(c Contact) bool { return c.ID == id })
	if index < 0 {
		return -1, ErrObjectNotFound
	}
	return index, nil
}
