package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ds "github.com/oaiiae/huma-crm/datastores"
	"github.com/oaiiae/huma-crm/handlers"
)

func newAPI(t *testing.T, store ds.ContactsStore) (humatest.TestAPI, *[]error) {
	t.Helper()
	var errs []error
	_, api := humatest.New(t)
	huma.AutoRegister(api, &handlers.Contacts{
		Store:        store,
		ErrorHandler: func(_ context.Context, err error) { errs = append(errs, err) },
	})
	return api, &errs
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v))
	return v
}

func TestContactsList(t *testing.T) {
	api, _ := newAPI(t, ds.NewContactsInmem(ds.Fixtures()...))

	resp := api.Get("/")
	require.Equal(t, http.StatusOK, resp.Code)
	body := decode[[]handlers.ContactModel](t, resp.Body.Bytes())
	require.Len(t, body, 5)
	assert.Equal(t, handlers.ContactModel{
		ID: 1, Name: "John Doe", Email: "john@example.com", Phone: "+1 555-0101", Status: "Active",
	}, body[0])

	resp = api.Get("/?q=JANE")
	require.Equal(t, http.StatusOK, resp.Code)
	body = decode[[]handlers.ContactModel](t, resp.Body.Bytes())
	require.Len(t, body, 1)
	assert.Equal(t, "Jane Smith", body[0].Name)

	resp = api.Get("/?q=nobody")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `[]`, resp.Body.String())
}

func TestContactsGet(t *testing.T) {
	api, errs := newAPI(t, ds.NewContactsInmem(ds.Fixtures()...))

	resp := api.Get("/4")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, handlers.ContactModel{
		ID: 4, Name: "Alice Brown", Email: "alice@email.com", Phone: "+1 555-0104", Status: "Inactive",
	}, decode[handlers.ContactModel](t, resp.Body.Bytes()))

	resp = api.Get("/42")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	require.Len(t, *errs, 1)
	assert.ErrorIs(t, (*errs)[0], ds.ErrObjectNotFound)
}

func TestContactsPost(t *testing.T) {
	store := ds.NewContactsInmem(ds.Fixtures()...)
	api, _ := newAPI(t, store)

	resp := api.Post("/", map[string]any{"name": "Tom", "email": "tom@x.com", "phone": "555", "status": "Lead"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	assert.Equal(t, "6", resp.Header().Get("Location"))
	assert.Equal(t, handlers.ContactModel{ID: 6, Name: "Tom", Email: "tom@x.com", Phone: "555", Status: "Lead"},
		decode[handlers.ContactModel](t, resp.Body.Bytes()))

	resp = api.Post("/", map[string]any{"name": "Ann"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	assert.Equal(t, handlers.ContactModel{ID: 7, Name: "Ann", Status: "Active"},
		decode[handlers.ContactModel](t, resp.Body.Bytes()))

	n, err := store.Len(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestContactsPostInvalid(t *testing.T) {
	store := ds.NewContactsInmem(ds.Fixtures()...)
	api, _ := newAPI(t, store)

	for name, body := range map[string]map[string]any{
		"empty name": {"name": ""},
		"no name":    {"email": "a@b.c"},
		"status":     {"name": "Tom", "status": "Customer"},
	} {
		t.Run(name, func(t *testing.T) {
			resp := api.Post("/", body)
			assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
		})
	}

	n, err := store.Len(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestContactsPut(t *testing.T) {
	store := ds.NewContactsInmem(ds.Fixtures()...)
	api, _ := newAPI(t, store)

	resp := api.Put("/3", map[string]any{"name": "Robert Wilson", "email": "rob@company.org", "status": "Inactive"})
	require.Equal(t, http.StatusNoContent, resp.Code, resp.Body.String())

	c, err := store.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, ds.Contact{ID: 3, Name: "Robert Wilson", Email: "rob@company.org", Status: ds.StatusInactive}, c)

	resp = api.Put("/42", map[string]any{"name": "ghost"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestContactsDelete(t *testing.T) {
	store := ds.NewContactsInmem(ds.Fixtures()...)
	api, _ := newAPI(t, store)

	resp := api.Delete("/1")
	require.Equal(t, http.StatusNoContent, resp.Code)
	resp = api.Delete("/1")
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = api.Get("/1")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = api.Post("/", map[string]any{"name": "Tom"})
	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, 6, decode[handlers.ContactModel](t, resp.Body.Bytes()).ID)
}

type brokenStore struct {
	ds.ContactsStore
}

var errBroken = errors.New("broken")

func (brokenStore) Search(context.Context, string) ([]ds.Contact, error) { return nil, errBroken }
func (brokenStore) UpdateID(context.Context, ds.ContactID, *ds.Contact) error { return errBroken }
func (brokenStore) RemoveID(context.Context, ds.ContactID) error { return errBroken }

func TestContactsStoreFailure(t *testing.T) {
	api, errs := newAPI(t, brokenStore{})

	assert.Equal(t, http.StatusInternalServerError, api.Get("/").Code)
	assert.Equal(t, http.StatusInternalServerError, api.Delete("/1").Code)
	assert.Equal(t, http.StatusInternalServerError, api.Put("/1", map[string]any{"name": "x"}).Code)
	require.Len(t, *errs, 3)
	for _, err := range *errs {
		assert.ErrorIs(t, err, errBroken)
	}
}

// racingStore removes the first contact right before every id-keyed
// mutation, as a concurrent DELETE of another contact would.
type racingStore struct {
	*ds.ContactsInmem
}

func (s racingStore) UpdateID(ctx context.Context, id ds.ContactID, c *ds.Contact) error {
	if err := s.Remove(ctx, 0); err != nil {
		return err
	}
	return s.ContactsInmem.UpdateID(ctx, id, c)
}

func (s racingStore) RemoveID(ctx context.Context, id ds.ContactID) error {
	if err := s.Remove(ctx, 0); err != nil {
		return err
	}
	return s.ContactsInmem.RemoveID(ctx, id)
}

func TestContactsMutationsFollowID(t *testing.T) {
	ctx := context.Background()
	store := ds.NewContactsInmem(ds.Fixtures()...)
	api, _ := newAPI(t, racingStore{store})

	resp := api.Put("/3", map[string]any{"name": "Robert"})
	require.Equal(t, http.StatusNoContent, resp.Code, resp.Body.String())
	bob, err := store.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Robert", bob.Name)
	alice, err := store.Get(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "Alice Brown", alice.Name)

	resp = api.Delete("/4")
	require.Equal(t, http.StatusNoContent, resp.Code)
	_, err = store.Get(ctx, 4)
	require.ErrorIs(t, err, ds.ErrObjectNotFound)
	charlie, err := store.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Charlie Davis", charlie.Name)

	all, err := store.Search(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, []ds.ContactID{3, 5}, []ds.ContactID{all[0].ID, all[1].ID})
}
