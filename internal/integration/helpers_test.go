package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp":  {},
	"requestId":  {},
	"createdAt":  {},
	"bookingRef": {},
}

func prepareRequest(method, path string, body io.Reader, cookies []*http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanValue(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indeterministic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanValue(v any) {
	switch val := v.(type) {
	case map[string]any:
		for k := range val {
			if _, ok := keysToIgnore[k]; ok {
				delete(val, k)
				continue
			}
			cleanValue(val[k])
		}
	case []any:
		for _, item := range val {
			cleanValue(item)
		}
	}
}

func executeSQLFile(t testing.TB, db *pgxpool.Pool, path string) {
	t.Helper()

	script, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), string(script))
	require.NoError(t, err)
}

// registerAndLogin creates the user through the public API and returns the
// session cookies from a fresh login. Registration conflicts are fine; the
// user may already exist from an earlier scenario.
func (app *TestApp) registerAndLogin(t testing.TB, firstName, email, password string) []*http.Cookie {
	t.Helper()

	registerBody := fmt.Sprintf(
		`{"firstName": %q, "lastName": "Tester", "email": %q, "password": %q}`,
		firstName, email, password,
	)

	req := httptest.NewRequest("POST", "/users", strings.NewReader(registerBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated && rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected register status: %d", rec.Code)
	}

	loginBody := fmt.Sprintf(`{"email": %q, "password": %q}`, email, password)

	req = httptest.NewRequest("POST", "/sessions", strings.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "login should succeed")

	return rec.Result().Cookies()
}

func (app *TestApp) authenticatedUserCookies(t testing.TB) []*http.Cookie {
	return app.registerAndLogin(t, TestUserFirstName, TestUserEmail, TestUserPassword)
}
