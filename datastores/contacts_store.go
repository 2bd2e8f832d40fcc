package datastores

import (
	"context"
	"errors"
)

type (
	ContactID = int
	Contact   struct {
		ID     ContactID `yaml:"id"`
		Name   string    `yaml:"name"`
		Email  string    `yaml:"email"`
		Phone  string    `yaml:"phone"`
		Status Status    `yaml:"status"`
	}
)

// ContactsStore owns an ordered collection of contacts.
//
// Positional operations address the authoritative collection, never a
// filtered projection of it. Out of range positions are ignored.
// Callers holding an id use UpdateID and RemoveID, which return
// [ErrObjectNotFound] for unknown ids.
type ContactsStore interface {
	Add(ctx context.Context, c *Contact) (ContactID, error)
	Update(ctx context.Context, index int, c *Contact) error
	Remove(ctx context.Context, index int) error
	Search(ctx context.Context, query string) ([]Contact, error)

	UpdateID(ctx context.Context, id ContactID, c *Contact) error
	RemoveID(ctx context.Context, id ContactID) error

	IndexOf(ctx context.Context, id ContactID) (int, error)
	Get(ctx context.Context, id ContactID) (Contact, error)
	Len(ctx context.Context) (int, error)
}

var ErrObjectNotFound = errors.New("store: object not found")

// Fixtures returns the contacts a fresh store starts with.
func Fixtures() []Contact {
	return []Contact{
		{ID: 1, Name: "John Doe", Email: "john@example.com", Phone: "+1 555-0101", Status: StatusActive},
		{ID: 2, Name: "Jane Smith", Email: "jane@example.com", Phone: "+1 555-0102", Status: StatusLead},
		{ID: 3, Name: "Bob Wilson", Email: "bob@company.org", Phone: "+1 555-0103", Status: StatusActive},
		{ID: 4, Name: "Alice Brown", Email: "alice@email.com", Phone: "+1 555-0104", Status: StatusInactive},
		{ID: 5, Name: "Charlie Davis", Email: "charlie@work.net", Phone: "+1 555-0105", Status: StatusLead},
	}
}
