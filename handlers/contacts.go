package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	ds "github.com/oaiiae/huma-crm/datastores"
)

type Contacts struct {
	Store        ds.ContactsStore
	ErrorHandler func(context.Context, error)
}

type ContactModel struct {
	ID ds.ContactID `json:"id" readOnly:"true" example:"6"`

	Name   string `json:"name"             example:"Tom Hill"    minLength:"1"`
	Email  string `json:"email,omitempty"  example:"tom@x.com"`
	Phone  string `json:"phone,omitempty"  example:"+1 555-0106"`
	Status string `json:"status,omitempty" example:"Lead"        enum:"Active,Lead,Inactive" default:"Active"`
}

func contactModel(c *ds.Contact) ContactModel {
	return ContactModel{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone, Status: c.Status.String()}
}

func (m *ContactModel) contact() (*ds.Contact, error) {
	status := ds.StatusActive
	if m.Status != "" {
		var err error
		status, err = ds.ParseStatus(m.Status)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity("invalid status", err)
		}
	}
	return &ds.Contact{Name: m.Name, Email: m.Email, Phone: m.Phone, Status: status}, nil
}

func (h *Contacts) RegisterList(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/",
		handlerWithErrorHandler(h.list, h.ErrorHandler),
		opErrors(http.StatusInternalServerError),
	)
}

type ContactsListOutput struct {
	Body []ContactModel
}

func (h *Contacts) list(ctx context.Context, input *struct {
	Query string `query:"q" doc:"only contacts whose name or email contains this, ignoring case"`
}) (*ContactsListOutput, error) {
	contacts, err := h.Store.Search(ctx, input.Query)
	if err != nil {
		return nil, err
	}

	body := make([]ContactModel, 0, len(contacts))
	for _, contact := range contacts {
		body = append(body, contactModel(&contact))
	}

	return &ContactsListOutput{Body: body}, nil
}

func (h *Contacts) RegisterGet(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/{id}",
		handlerWithErrorHandler(h.get, h.ErrorHandler),
		opErrors(http.StatusNotFound, http.StatusInternalServerError),
	)
}

type ContactsGetOutput struct {
	Body ContactModel
}

func (h *Contacts) get(ctx context.Context, input *struct {
	ID ds.ContactID `path:"id" doc:"ID of the contact to get"`
}) (*ContactsGetOutput, error) {
	contact, err := h.Store.Get(ctx, input.ID)
	switch {
	case err == nil:
		return &ContactsGetOutput{Body: contactModel(&contact)}, nil

	case errors.Is(err, ds.ErrObjectNotFound):
		return nil, huma.Error404NotFound("id not found", err)

	default:
		return nil, err
	}
}

func (h *Contacts) RegisterPost(api huma.API) { // called by [huma.AutoRegister]
	huma.Post(api, "/",
		handlerWithErrorHandler(h.post, h.ErrorHandler),
		opStatus(http.StatusCreated),
		opErrors(http.StatusUnprocessableEntity, http.StatusInternalServerError),
	)
}

type ContactsPostOutput struct {
	Location string `header:"Location"`
	Body     ContactModel
}

func (h *Contacts) post(ctx context.Context, input *struct {
	Body ContactModel
}) (*ContactsPostOutput, error) {
	contact, err := input.Body.contact()
	if err != nil {
		return nil, err
	}

	id, err := h.Store.Add(ctx, contact)
	if err != nil {
		return nil, err
	}

	return &ContactsPostOutput{
		Location: strconv.Itoa(id),
		Body:     contactModel(contact),
	}, nil
}

func (h *Contacts) RegisterPut(api huma.API) { // called by [huma.AutoRegister]
	huma.Put(api, "/{id}",
		handlerWithErrorHandler(h.put, h.ErrorHandler),
		opErrors(http.StatusNotFound, http.StatusUnprocessableEntity, http.StatusInternalServerError),
	)
}

func (h *Contacts) put(ctx context.Context, input *struct {
	ID   ds.ContactID `path:"id" doc:"ID of the contact to put"`
	Body ContactModel
}) (*struct{}, error) {
	contact, err := input.Body.contact()
	if err != nil {
		return nil, err
	}

	err = h.Store.UpdateID(ctx, input.ID, contact)
	switch {
	case err == nil:
		return nil, nil

	case errors.Is(err, ds.ErrObjectNotFound):
		return nil, huma.Error404NotFound("id not found", err)

	default:
		return nil, err
	}
}

func (h *Contacts) RegisterDel(api huma.API) { // called by [huma.AutoRegister]
	huma.Delete(api, "/{id}",
		handlerWithErrorHandler(h.del, h.ErrorHandler),
		opErrors(http.StatusInternalServerError),
	)
}

func (h *Contacts) del(ctx context.Context, input *struct {
	ID ds.ContactID `path:"id" doc:"ID of the contact to delete"`
}) (*struct{}, error) {
	err := h.Store.RemoveID(ctx, input.ID)
	switch {
	case err == nil, errors.Is(err, ds.ErrObjectNotFound):
		return nil, nil

	default:
		return nil, err
	}
}
