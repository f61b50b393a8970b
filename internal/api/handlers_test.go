package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetdesk-io/fleetdesk/internal/config"
	"github.com/fleetdesk-io/fleetdesk/internal/database"
	"github.com/fleetdesk-io/fleetdesk/internal/store"
)

func newTestAPI(t *testing.T) *Api {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.RunMigrations(db, "sqlite"))

	cfg := &config.Config{Env: "development"}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TokenDuration = 24 * time.Hour

	api, err := NewApi(cfg, store.New(&database.Database{DB: db, Type: "sqlite"}))
	require.NoError(t, err)
	return api
}

func doRequest(t *testing.T, api *Api, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	api.Router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

// registerAndLogin returns a bearer token for a fresh account.
func registerAndLogin(t *testing.T, api *Api, email string) string {
	t.Helper()

	w := doRequest(t, api, "POST", "/auth/register", "", map[string]interface{}{
		"email":    email,
		"password": "hunter22",
		"role_id":  2,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, api, "POST", "/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	token, ok := body["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	w := doRequest(t, api, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRegister(t *testing.T) {
	api := newTestAPI(t)

	w := doRequest(t, api, "POST", "/auth/register", "", map[string]interface{}{
		"email":    "alice@fleet.test",
		"password": "hunter22",
		"role_id":  2,
		"name":     "Alice",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "alice@fleet.test", user["email"])
	assert.Equal(t, float64(2), user["role_id"])
	assert.NotZero(t, user["id"])
	assert.NotContains(t, user, "password_hash")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	api := newTestAPI(t)
	registerAndLogin(t, api, "alice@fleet.test")

	w := doRequest(t, api, "POST", "/auth/register", "", map[string]interface{}{
		"email":    "alice@fleet.test",
		"password": "different",
		"role_id":  2,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already registered", decodeBody(t, w)["error"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	api := newTestAPI(t)
	registerAndLogin(t, api, "alice@fleet.test")

	// Wrong password and unknown email look identical to the client.
	for _, creds := range []map[string]interface{}{
		{"email": "alice@fleet.test", "password": "wrong"},
		{"email": "nobody@fleet.test", "password": "hunter22"},
	} {
		w := doRequest(t, api, "POST", "/auth/login", "", creds)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid credentials", decodeBody(t, w)["error"])
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{"/companies", "/drivers", "/admin/dashboard"} {
		w := doRequest(t, api, "GET", path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestCompanyCRUD(t *testing.T) {
	api := newTestAPI(t)
	token := registerAndLogin(t, api, "owner@fleet.test")

	w := doRequest(t, api, "POST", "/companies", token, map[string]interface{}{
		"name": "Acme Logistics Inc",
		"city": "Springfield",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)
	id := int64(created["id"].(float64))
	assert.Equal(t, "Acme Logistics Inc", created["name"])

	w = doRequest(t, api, "GET", fmt.Sprintf("/companies/%d", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody(t, w)
	assert.Equal(t, true, got["success"])
	assert.Equal(t, "Acme Logistics Inc", got["data"].(map[string]interface{})["name"])

	// Partial update: omitted fields keep their values.
	w = doRequest(t, api, "PUT", fmt.Sprintf("/companies/%d", id), token, map[string]interface{}{
		"city": "Shelbyville",
	})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody(t, w)
	assert.Equal(t, "Acme Logistics Inc", updated["name"])
	assert.Equal(t, "Shelbyville", updated["city"])

	w = doRequest(t, api, "DELETE", fmt.Sprintf("/companies/%d", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, api, "GET", fmt.Sprintf("/companies/%d", id), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Company deletes are idempotent.
	w = doRequest(t, api, "DELETE", fmt.Sprintf("/companies/%d", id), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCompanyUpdateByNonOwnerIs404(t *testing.T) {
	api := newTestAPI(t)
	ownerToken := registerAndLogin(t, api, "owner@fleet.test")
	otherToken := registerAndLogin(t, api, "other@fleet.test")

	w := doRequest(t, api, "POST", "/companies", ownerToken, map[string]interface{}{
		"name": "Acme",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := int64(decodeBody(t, w)["id"].(float64))

	w = doRequest(t, api, "PUT", fmt.Sprintf("/companies/%d", id), otherToken, map[string]interface{}{
		"name": "Hijacked",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompanyListEnvelope(t *testing.T) {
	api := newTestAPI(t)
	token := registerAndLogin(t, api, "owner@fleet.test")

	for i := 0; i < 7; i++ {
		w := doRequest(t, api, "POST", "/companies", token, map[string]interface{}{
			"name": fmt.Sprintf("Company %d", i),
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doRequest(t, api, "GET", "/companies", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["data"], 5)

	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(7), pagination["total"])
	assert.Equal(t, float64(1), pagination["page"])
	assert.Equal(t, float64(5), pagination["limit"])
	assert.Equal(t, float64(2), pagination["totalPages"])

	// Search matches case-insensitively; total follows the filter.
	w = doRequest(t, api, "GET", "/companies?search=COMPANY%206", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Len(t, body["data"], 1)
	assert.Equal(t, float64(1), body["pagination"].(map[string]interface{})["total"])
}

func TestDriverCRUD(t *testing.T) {
	api := newTestAPI(t)
	token := registerAndLogin(t, api, "owner@fleet.test")

	w := doRequest(t, api, "POST", "/drivers", token, map[string]interface{}{
		"first_name":     "Jo",
		"last_name":      "Driver",
		"license_number": "DL-1234",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)
	id := int64(created["id"].(float64))

	w = doRequest(t, api, "PUT", fmt.Sprintf("/drivers/%d", id), token, map[string]interface{}{
		"experience_years": 5,
	})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody(t, w)
	assert.Equal(t, "Jo", updated["first_name"])
	assert.Equal(t, float64(5), updated["experience_years"])

	w = doRequest(t, api, "DELETE", fmt.Sprintf("/drivers/%d", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Driver deletes are not idempotent: the second one is a 404.
	w = doRequest(t, api, "DELETE", fmt.Sprintf("/drivers/%d", id), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboard(t *testing.T) {
	api := newTestAPI(t)
	token := registerAndLogin(t, api, "owner@fleet.test")

	for i := 0; i < 2; i++ {
		w := doRequest(t, api, "POST", "/companies", token, map[string]interface{}{
			"name": fmt.Sprintf("Company %d", i),
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}
	w := doRequest(t, api, "POST", "/drivers", token, map[string]interface{}{
		"first_name": "Jo",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, api, "GET", "/admin/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["totalCompanies"])
	assert.Equal(t, float64(1), body["totalDrivers"])
}

func TestMalformedBodyIs400(t *testing.T) {
	api := newTestAPI(t)
	token := registerAndLogin(t, api, "owner@fleet.test")

	req := httptest.NewRequest("POST", "/companies", bytes.NewBufferString("{not json"))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	api.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
