package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/adityarao/recipeshare/internal/config"
	"github.com/adityarao/recipeshare/internal/middleware"
	"github.com/adityarao/recipeshare/internal/models"
)

// testEnv spins up the full router against in-memory stores, with a
// cookie-aware client, mimicking the wiring in cmd/api.
type testEnv struct {
	t        *testing.T
	server   *httptest.Server
	client   *http.Client
	users    *memUserStore
	recipes  *memRecipeStore
	comments *memCommentStore
	cfg      *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Port:          "0",
		DatabaseURL:   "unused",
		CORSOrigin:    "http://localhost:5173",
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		BcryptCost:    4, // keep tests fast
	}

	users := newMemUserStore()
	recipes := newMemRecipeStore(users)
	comments := newMemCommentStore(users)

	log := zap.NewNop()
	h := NewHandler(cfg, users, recipes, comments, log)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	requireAuth := middleware.RequireAuth(users, cfg.AccessSecret)

	r.Route("/api/auth", func(r chi.Router) {
		r.Get("/", h.Auth.Ping)
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.Post("/refresh", h.Auth.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/logout", h.Auth.Logout)
		})
	})

	r.Route("/api/receipe", func(r chi.Router) {
		r.Get("/", h.Recipes.Ping)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/my", h.Recipes.ListMine)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleUser, models.RoleAdmin))
				r.Post("/", h.Recipes.Create)
				r.Put("/{id}", h.Recipes.Update)
				r.Delete("/{id}", h.Recipes.Delete)
				r.Post("/{id}/comments", h.Recipes.AddComment)
				r.Get("/{id}/comments", h.Recipes.ListComments)
				r.Delete("/{id}/comments/{commentID}", h.Recipes.DeleteComment)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))
				r.Get("/admin/all", h.Recipes.ListAll)
			})
		})
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testEnv{
		t:        t,
		server:   server,
		client:   &http.Client{Jar: jar},
		users:    users,
		recipes:  recipes,
		comments: comments,
		cfg:      cfg,
	}
}

// do issues a request through the cookie-aware client and decodes the JSON
// body, if any, into a generic map.
func (e *testEnv) do(method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	e.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(e.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.client.Do(req)
	require.NoError(e.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

// doWithCookies bypasses the jar and sends exactly the given cookies.
func (e *testEnv) doWithCookies(method, path string, body interface{}, cookies []*http.Cookie) (*http.Response, map[string]interface{}) {
	e.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(e.t, err)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(e.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

func (e *testEnv) register(name, email, password string) map[string]interface{} {
	e.t.Helper()
	resp, body := e.do(http.MethodPost, "/api/auth/register", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(e.t, http.StatusCreated, resp.StatusCode)
	return body
}

func (e *testEnv) login(email, password string) map[string]interface{} {
	e.t.Helper()
	resp, body := e.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(e.t, http.StatusOK, resp.StatusCode)
	return body
}

// cookie returns the named cookie currently held in the jar, or nil.
func (e *testEnv) cookie(name string) *http.Cookie {
	e.t.Helper()
	req, err := http.NewRequest(http.MethodGet, e.server.URL, nil)
	require.NoError(e.t, err)
	for _, c := range e.client.Jar.Cookies(req.URL) {
		if c.Name == name {
			return c
		}
	}
	return nil
}
