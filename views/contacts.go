// Package views binds a contact list and detail form to a [datastores.ContactsStore].
//
// The list always shows a filtered projection of the store. Row numbers handed
// back by the front-end are positions in that projection, so every mutation
// recomputes the projection, resolves the row to its contact id and only then
// mutates the store by that id. The selection is kept as a contact id too.
package views

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	ds "github.com/oaiiae/huma-crm/datastores"
)

// Row is a display copy of a contact.
type Row struct {
	ID     ds.ContactID
	Name   string
	Email  string
	Phone  string
	Status string
}

// Form holds the detail form fields.
type Form struct {
	Name        string
	Email       string
	Phone       string
	StatusIndex int
}

func (f *Form) contact() *ds.Contact {
	return &ds.Contact{Name: f.Name, Email: f.Email, Phone: f.Phone, Status: ds.StatusAt(f.StatusIndex)}
}

// Contacts is the state of the contacts screen. It is not safe for concurrent use.
//
// The zero value shows nothing and has no selection until the first call
// that refreshes the rows.
type Contacts struct {
	Store  ds.ContactsStore
	Logger *slog.Logger
	Form   Form

	search string
	rows   []Row

	// selectedID is the id of the selected contact; ids start at 1, so 0 means none.
	selectedID ds.ContactID
}

// NewContacts returns a screen showing every contact of store.
func NewContacts(ctx context.Context, store ds.ContactsStore, logger *slog.Logger) (*Contacts, error) {
	v := &Contacts{Store: store, Logger: logger}
	return v, v.refresh(ctx)
}

// Rows returns a copy of the displayed rows.
func (v *Contacts) Rows() []Row    { return slices.Clone(v.rows) }
func (v *Contacts) Search() string { return v.search }

// Selected returns the row of the selected contact, or -1.
func (v *Contacts) Selected() int {
	if v.selectedID == 0 {
		return -1
	}
	return slices.IndexFunc(v.rows, func(r Row) bool { return r.ID == v.selectedID })
}

// SetSearch filters the list by query and clears the selection.
func (v *Contacts) SetSearch(ctx context.Context, query string) error {
	v.search = query
	v.selectedID = 0
	return v.refresh(ctx)
}

// Select loads the contact at row into the form. Unknown rows are ignored.
func (v *Contacts) Select(ctx context.Context, row int) error {
	filtered, err := v.Store.Search(ctx, v.search)
	if err != nil {
		return fmt.Errorf("select: %w", err)
	}
	if row < 0 || row >= len(filtered) {
		return nil
	}
	c := filtered[row]
	v.selectedID = c.ID
	v.Form = Form{Name: c.Name, Email: c.Email, Phone: c.Phone, StatusIndex: int(c.Status)}
	return v.refresh(ctx)
}

// Add stores the form as a new contact and clears the form.
// A form without a name is ignored.
func (v *Contacts) Add(ctx context.Context) error {
	if v.Form.Name == "" {
		return nil
	}
	id, err := v.Store.Add(ctx, v.Form.contact())
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	v.logger().DebugContext(ctx, "contact added", "id", id)
	v.Form = Form{}
	return v.refresh(ctx)
}

// Update replaces the contact shown at row with the form.
// The selection follows the contact and is cleared if it leaves the filter.
func (v *Contacts) Update(ctx context.Context, row int) error {
	id, ok, err := v.resolve(ctx, row)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	if ok {
		err = v.Store.UpdateID(ctx, id, v.Form.contact())
		if err != nil && !errors.Is(err, ds.ErrObjectNotFound) {
			return fmt.Errorf("update: %w", err)
		}
		v.logger().DebugContext(ctx, "contact updated", "row", row, "contact", id)
	}
	return v.refresh(ctx)
}

// Delete removes the contact shown at row, then clears the selection and the form.
func (v *Contacts) Delete(ctx context.Context, row int) error {
	id, ok, err := v.resolve(ctx, row)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if ok {
		err = v.Store.RemoveID(ctx, id)
		if err != nil && !errors.Is(err, ds.ErrObjectNotFound) {
			return fmt.Errorf("delete: %w", err)
		}
		v.logger().DebugContext(ctx, "contact deleted", "row", row, "contact", id)
	}
	v.selectedID = 0
	v.Form = Form{}
	return v.refresh(ctx)
}

// resolve maps a row of a freshly computed projection to its contact id.
func (v *Contacts) resolve(ctx context.Context, row int) (ds.ContactID, bool, error) {
	filtered, err := v.Store.Search(ctx, v.search)
	if err != nil {
		return 0, false, err
	}
	if row < 0 || row >= len(filtered) {
		return 0, false, nil
	}
	return filtered[row].ID, true, nil
}

func (v *Contacts) logger() *slog.Logger {
	if v.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return v.Logger
}

func (v *Contacts) refresh(ctx context.Context) error {
	filtered, err := v.Store.Search(ctx, v.search)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	v.rows = make([]Row, 0, len(filtered))
	for _, c := range filtered {
		v.rows = append(v.rows, Row{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone, Status: c.Status.String()})
	}
	if v.Selected() < 0 {
		v.selectedID = 0
	}
	return nil
}
