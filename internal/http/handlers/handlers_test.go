package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hongminglow/loanbook-be/internal/auth"
	"github.com/hongminglow/loanbook-be/internal/config"
	"github.com/hongminglow/loanbook-be/internal/storage/memory"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:  "test-secret",
		SessionTTL: 7 * 24 * time.Hour,
	}
}

func newTestServer(t *testing.T, cfg config.Config) (*httptest.Server, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL)
	guard := auth.NewSessionGuard(tokens)

	mux := http.NewServeMux()
	NewHealthHandler(time.Now()).Register(mux)
	NewAuthHandler(auth.NewAuthenticator(store, tokens), guard, &cfg).Register(mux)
	NewLoanHandler(store, guard, &cfg).Register(mux)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts, store
}

// doJSON sends a request with an optional JSON body and session cookie and
// decodes the response body into out (when out is non-nil).
func doJSON(t *testing.T, method, url string, body any, cookie *http.Cookie, out any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

// registerAndLogin creates an admin account and returns its session cookie.
func registerAndLogin(t *testing.T, baseURL, email, password string) *http.Cookie {
	t.Helper()

	creds := map[string]string{"email": email, "password": password}
	resp := doJSON(t, http.MethodPost, baseURL+"/auth/register", creds, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, baseURL+"/auth/login", creds, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, c := range resp.Cookies() {
		if c.Name == auth.SessionCookie {
			return c
		}
	}
	t.Fatal("login response missing session cookie")
	return nil
}
