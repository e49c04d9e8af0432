package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mapify/internal/reqctx"
	"mapify/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	claims *utils.SessionClaims
	err    error
	got    string
}

func (s *stubValidator) ValidateToken(token string) (*utils.SessionClaims, error) {
	s.got = token
	return s.claims, s.err
}

func TestJWTAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		validator  *stubValidator
		wantStatus int
		wantError  string
	}{
		{
			name:       "no header",
			validator:  &stubValidator{},
			wantStatus: http.StatusUnauthorized,
			wantError:  "missing bearer token",
		},
		{
			name:       "wrong scheme",
			header:     "Token abc",
			validator:  &stubValidator{},
			wantStatus: http.StatusUnauthorized,
			wantError:  "missing bearer token",
		},
		{
			name:       "invalid token",
			header:     "Bearer abc",
			validator:  &stubValidator{err: utils.ErrInvalidToken},
			wantStatus: http.StatusUnauthorized,
			wantError:  "invalid or expired token",
		},
		{
			name:       "valid token",
			header:     "Bearer good",
			validator:  &stubValidator{claims: &utils.SessionClaims{UserID: 7, Name: "A", Email: "a@x.com"}},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var principal reqctx.Principal
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				principal, _ = reqctx.GetPrincipal(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/places", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			JWTAuth(tt.validator)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantError, body["error"])
				return
			}
			assert.Equal(t, "good", tt.validator.got)
			assert.Equal(t, reqctx.Principal{UserID: 7, Name: "A", Email: "a@x.com"}, principal)
		})
	}
}

func TestJWTAuth_OptionsWithoutTokenRejected(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	rec := httptest.NewRecorder()
	JWTAuth(&stubValidator{})(next).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/places", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestRecoverer(t *testing.T) {
	h := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = reqctx.GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "client-id")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "client-id", seen)
	assert.Equal(t, "client-id", rec.Header().Get(HeaderRequestID))
}
