package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"mapify/internal/app"
	"mapify/internal/config"
	"mapify/internal/repository"
	"mapify/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureMailer struct {
	mu         sync.Mutex
	configured bool
	fail       bool
	links      []string
}

func (m *captureMailer) Configured() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.configured
}

func (m *captureMailer) set(configured, fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configured = configured
	m.fail = fail
}

func (m *captureMailer) SendPasswordReset(_ context.Context, _ string, link string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp: 554 rejected")
	}
	m.links = append(m.links, link)
	return nil
}

func (m *captureMailer) lastToken(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.links)
	u, err := url.Parse(m.links[len(m.links)-1])
	require.NoError(t, err)
	return u.Query().Get("token")
}

type testServer struct {
	*httptest.Server
	mailer *captureMailer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := &config.Config{
		Env:                 "dev",
		StorageBackend:      config.StorageMemory,
		JWTSecret:           "handler-test-secret",
		FrontendURL:         "http://localhost:5173",
		PasswordResetTTLMin: "30",
	}
	mailer := &captureMailer{configured: true}

	application, err := app.NewWithRepositories(cfg, repository.NewMemoryRepositories(), mailer)
	require.NoError(t, err)

	srv := httptest.NewServer(application.Router)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, mailer: mailer}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

type authBody struct {
	User struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
	Token string `json:"token"`
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

type placeBody struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Type        *string `json:"type"`
	Address     *string `json:"address"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	CreatedAt   string  `json:"created_at"`
	CreatedBy   int64   `json:"created_by"`
}

func (ts *testServer) register(t *testing.T, name, email, password string) authBody {
	t.Helper()
	resp := ts.do(t, http.MethodPost, "/auth/register", "", map[string]string{"name": name, "email": email, "password": password})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[authBody](t, resp)
}

func TestPlacesScenario(t *testing.T) {
	ts := newTestServer(t)

	a := ts.register(t, "A", "a@x.com", "pw1")

	resp := ts.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "a@x.com", "password": "pw1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[authBody](t, resp)
	assert.Equal(t, a.User.ID, login.User.ID)
	assert.Equal(t, "a@x.com", login.User.Email)
	require.NotEmpty(t, login.Token)

	resp = ts.do(t, http.MethodPost, "/places", login.Token, map[string]any{"name": "Lighthouse", "lat": 1, "lon": 2})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[placeBody](t, resp)
	assert.Equal(t, a.User.ID, created.CreatedBy)
	assert.Equal(t, "Lighthouse", created.Name)
	assert.Nil(t, created.Type)
	assert.NotEmpty(t, created.CreatedAt)

	resp = ts.do(t, http.MethodGet, "/places", login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]placeBody](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	resp = ts.do(t, http.MethodDelete, fmt.Sprintf("/places/%d", created.ID), login.Token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/places", login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]placeBody](t, resp))

	resp = ts.do(t, http.MethodDelete, fmt.Sprintf("/places/%d", created.ID), login.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListPlaces_EmptyIsArray(t *testing.T) {
	ts := newTestServer(t)
	a := ts.register(t, "A", "a@x.com", "pw1")

	resp := ts.do(t, http.MethodGet, "/places", a.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var raw json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.JSONEq(t, `[]`, string(raw))
}

func TestPlaces_RequireToken(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		header string
	}{
		{"list without header", http.MethodGet, "/places", ""},
		{"create without header", http.MethodPost, "/places", ""},
		{"update without header", http.MethodPut, "/places/1", ""},
		{"delete without header", http.MethodDelete, "/places/1", ""},
		{"not bearer", http.MethodGet, "/places", "Basic abc"},
		{"garbage token", http.MethodGet, "/places", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, ts.URL+tt.path, bytes.NewReader([]byte(`{}`)))
			require.NoError(t, err)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			body := decode[errorBody](t, resp)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestPlaces_ForeignSignatureRejected(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "A", "a@x.com", "pw1")

	foreign, err := utils.NewTokenIssuer("some-other-secret").GenerateToken(1, "A", "a@x.com")
	require.NoError(t, err)

	resp := ts.do(t, http.MethodGet, "/places", foreign, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	expired, err := utils.NewTokenIssuer("handler-test-secret").
		WithClock(func() time.Time { return time.Now().Add(-3 * time.Hour) }).
		GenerateToken(1, "A", "a@x.com")
	require.NoError(t, err)

	resp = ts.do(t, http.MethodGet, "/places", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreatePlace_Validation(t *testing.T) {
	ts := newTestServer(t)
	a := ts.register(t, "A", "a@x.com", "pw1")

	tests := []struct {
		name string
		body any
	}{
		{"missing lat", map[string]any{"name": "X", "lon": 2}},
		{"missing lon", map[string]any{"name": "X", "lat": 1}},
		{"missing name", map[string]any{"lat": 1, "lon": 2}},
		{"empty name", map[string]any{"name": "", "lat": 1, "lon": 2}},
		{"invalid json", "{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.do(t, http.MethodPost, "/places", a.Token, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}

	resp := ts.do(t, http.MethodPost, "/places", a.Token, map[string]any{"name": "Null Island", "lat": 0, "lon": 0})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestUpdatePlace(t *testing.T) {
	ts := newTestServer(t)
	a := ts.register(t, "A", "a@x.com", "pw1")
	b := ts.register(t, "B", "b@x.com", "pw2")

	resp := ts.do(t, http.MethodPost, "/places", a.Token, map[string]any{
		"name": "Forte", "type": "museum", "address": "Av. Praia", "lat": -5.75, "lon": -35.19, "description": "Fortaleza",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[placeBody](t, resp)

	resp = ts.do(t, http.MethodPut, fmt.Sprintf("/places/%d", created.ID), b.Token, map[string]any{"name": "Forte dos Reis Magos", "imageUrl": "http://img"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[placeBody](t, resp)

	assert.Equal(t, "Forte dos Reis Magos", updated.Name)
	require.NotNil(t, updated.Type)
	assert.Equal(t, "museum", *updated.Type)
	require.NotNil(t, updated.ImageURL)
	assert.Equal(t, "http://img", *updated.ImageURL)
	assert.Equal(t, -5.75, updated.Lat)
	assert.Equal(t, a.User.ID, updated.CreatedBy)

	resp = ts.do(t, http.MethodPut, fmt.Sprintf("/places/%d", created.ID), a.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	unchanged := decode[placeBody](t, resp)
	assert.Equal(t, updated, unchanged)

	resp = ts.do(t, http.MethodPut, "/places/999", a.Token, map[string]any{"name": "X"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = ts.do(t, http.MethodPut, "/places/999", a.Token, "garbage")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = ts.do(t, http.MethodPut, "/places/999", a.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = ts.do(t, http.MethodPut, fmt.Sprintf("/places/%d", created.ID), a.Token, "not json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ts.do(t, http.MethodPut, "/places/abc", a.Token, map[string]any{"name": "X"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRegister_Errors(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "A", "a@x.com", "pw1")

	resp := ts.do(t, http.MethodPost, "/auth/register", "", map[string]string{"name": "A2", "email": "A@X.COM", "password": "pw"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/auth/register", "", map[string]string{"name": "A2", "email": "c@x.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, decode[errorBody](t, resp).Error)
}

func TestLogin_Errors(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "A", "a@x.com", "pw1")

	resp := ts.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "a@x.com", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "nobody@x.com", "password": "pw1"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPasswordResetFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "A", "a@x.com", "pw1")

	known := ts.do(t, http.MethodPost, "/auth/forgot-password", "", map[string]string{"email": "a@x.com"})
	require.Equal(t, http.StatusOK, known.StatusCode)
	knownMsg := decode[map[string]string](t, known)

	unknown := ts.do(t, http.MethodPost, "/auth/forgot-password", "", map[string]string{"email": "ghost@x.com"})
	require.Equal(t, http.StatusOK, unknown.StatusCode)
	assert.Equal(t, knownMsg, decode[map[string]string](t, unknown), "ответы не должны раскрывать наличие email")

	token := ts.mailer.lastToken(t)

	resp := ts.do(t, http.MethodPost, "/auth/reset-password", "", map[string]string{"token": token, "password": "pw2"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "a@x.com", "password": "pw1"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = ts.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "a@x.com", "password": "pw2"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/auth/reset-password", "", map[string]string{"token": token, "password": "pw3"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/auth/forgot-password", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestForgotPassword_MailFailures(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "A", "a@x.com", "pw1")

	ts.mailer.set(true, true)
	resp := ts.do(t, http.MethodPost, "/auth/forgot-password", "", map[string]string{"email": "a@x.com"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decode[errorBody](t, resp)
	assert.NotContains(t, body.Error, "554")

	ts.mailer.set(false, false)
	resp = ts.do(t, http.MethodPost, "/auth/forgot-password", "", map[string]string{"email": "ghost@x.com"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	a := ts.register(t, "A", "a@x.com", "pw1")
	ts.register(t, "B", "b@x.com", "pw2")
	resp := ts.do(t, http.MethodPost, "/places", a.Token, map[string]any{"name": "X", "lat": 1, "lon": 2})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 2, body["totalUsers"])
	assert.EqualValues(t, 1, body["totalPlaces"])
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.do(t, http.MethodGet, "/", "", nil)

	resp := ts.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "http_requests_total")
}

func TestUnmatchedRoutes(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "not found", decode[errorBody](t, resp).Error)

	resp = ts.do(t, http.MethodPost, "/", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "method not allowed", decode[errorBody](t, resp).Error)

	resp = ts.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `http_requests_total{method="GET",path="unmatched",status="404"}`)
	assert.Contains(t, buf.String(), `http_requests_total{method="POST",path="unmatched",status="405"}`)
}
