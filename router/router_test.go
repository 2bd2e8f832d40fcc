package router_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oaiiae/huma-crm/router"
)

type echo struct{}

func (*echo) RegisterEcho(api huma.API) {
	huma.Get(api, "/echo/{word}", func(_ context.Context, input *struct {
		Word string `path:"word"`
	}) (*struct {
		Body string
	}, error) {
		return &struct{ Body string }{Body: input.Word}, nil
	})
}

func TestNew(t *testing.T) {
	var calls []string
	h := router.New("test", "0.0.0",
		func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) },
		func(w http.ResponseWriter, _ *http.Request) { fmt.Fprint(w, "up 1\n") },
		router.OptUseMiddleware(func(ctx huma.Context, next func(huma.Context)) {
			calls = append(calls, ctx.Operation().Path)
			next(ctx)
		}),
		router.OptGroup("/api",
			router.OptGroup("/v1", router.OptAutoRegister(&echo{})),
		),
	)

	for _, tt := range []struct {
		path   string
		status int
		body   string
	}{
		{"/liveness", http.StatusOK, ""},
		{"/readiness", http.StatusServiceUnavailable, ""},
		{"/metrics", http.StatusOK, "up 1\n"},
		{"/api/v1/echo/hello", http.StatusOK, `"hello"`},
	} {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Contains(t, rec.Body.String(), tt.body)
			}
		})
	}

	assert.Equal(t, []string{"/api/v1/echo/{word}"}, calls)
}
