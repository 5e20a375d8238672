package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/corebank/corebank/internal/config"
	"github.com/corebank/corebank/internal/logging"
)

func testConfig() config.Config {
	return config.Config{
		AppName:        "corebank-test",
		AppEnv:         "development",
		Port:           "0",
		SessionTTL:     time.Minute,
		IdempotencyTTL: time.Minute,
		LoginRateLimit: 100,
	}
}

func newTestApp(t *testing.T, cfg config.Config) *fiber.App {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "start miniredis")
	t.Cleanup(mr.Close)

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.Close() })

	app := fiber.New()
	require.NoError(t, Setup(app, Deps{Cfg: cfg, Cache: cache, Logger: logging.Discard()}))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func login(t *testing.T, app *fiber.App, username, pin string) string {
	t.Helper()
	resp, body := doJSON(t, app, fiber.MethodPost, "/api/v1/login", "", map[string]string{
		"username": username,
		"pin":      pin,
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestAccountLifecycleOverHTTP(t *testing.T) {
	app := newTestApp(t, testConfig())

	// Create.
	resp, body := doJSON(t, app, fiber.MethodPost, "/api/v1/accounts", "", map[string]string{
		"username":     "alice",
		"display_name": "Alice Smith",
		"pin":          "1234",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "alice", body["username"])
	require.Equal(t, "0.00", body["balance"])

	// Duplicate username.
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/accounts", "", map[string]string{
		"username": "alice", "display_name": "Imposter", "pin": "9999",
	}, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	// Malformed PIN.
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/accounts", "", map[string]string{
		"username": "bob", "display_name": "Bob", "pin": "12",
	}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Wrong PIN and unknown user answer identically.
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/login", "", map[string]string{
		"username": "alice", "pin": "0000",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/login", "", map[string]string{
		"username": "nobody", "pin": "1234",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := login(t, app, "alice", "1234")

	// Balance starts at zero.
	resp, body = doJSON(t, app, fiber.MethodGet, "/api/v1/account/balance", token, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "0.00", body["balance"])

	// Deposit 50, withdraw 30, overdraw fails and changes nothing.
	resp, body = doJSON(t, app, fiber.MethodPost, "/api/v1/account/deposit", token,
		map[string]string{"amount": "50.00"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "50.00", body["balance"])

	resp, body = doJSON(t, app, fiber.MethodPost, "/api/v1/account/withdraw", token,
		map[string]string{"amount": "30.00"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "20.00", body["balance"])

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/account/withdraw", token,
		map[string]string{"amount": "100.00"}, nil)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/v1/account/balance", token, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "20.00", body["balance"])

	// Non-positive and malformed amounts are rejected at the boundary.
	for _, amount := range []string{"0", "-5", "abc", "0.001"} {
		resp, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/account/deposit", token,
			map[string]string{"amount": amount}, nil)
		require.Equalf(t, http.StatusBadRequest, resp.StatusCode, "amount %q", amount)
	}

	// Partial modify: malformed PIN is reported, name change still lands.
	resp, body = doJSON(t, app, fiber.MethodPatch, "/api/v1/account", token,
		map[string]string{"display_name": "Alice Cooper", "pin": "12"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["display_name_updated"])
	require.Equal(t, false, body["pin_updated"])
	require.Contains(t, body, "warning")

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/v1/account", token, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Alice Cooper", body["display_name"])

	// The old PIN still authenticates.
	login(t, app, "alice", "1234")

	// Close the account; the session dies with it.
	resp, _ = doJSON(t, app, fiber.MethodDelete, "/api/v1/account", token, nil, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/v1/account/balance", token, nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/login", "", map[string]string{
		"username": "alice", "pin": "1234",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	app := newTestApp(t, testConfig())

	resp, _ := doJSON(t, app, fiber.MethodGet, "/api/v1/account/balance", "", nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/v1/account/balance", "bogus-token", nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutEndsSession(t *testing.T) {
	app := newTestApp(t, testConfig())

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/accounts", "", map[string]string{
		"username": "alice", "display_name": "Alice", "pin": "1234",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	token := login(t, app, "alice", "1234")

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/logout", token, nil, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/v1/account/balance", token, nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDepositIdempotency(t *testing.T) {
	app := newTestApp(t, testConfig())

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/accounts", "", map[string]string{
		"username": "alice", "display_name": "Alice", "pin": "1234",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	token := login(t, app, "alice", "1234")

	headers := map[string]string{"Idempotency-Key": "deposit-1"}
	for i := 0; i < 2; i++ {
		resp, body := doJSON(t, app, fiber.MethodPost, "/api/v1/account/deposit", token,
			map[string]string{"amount": "50.00"}, headers)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "50.00", body["balance"])
	}

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/v1/account/balance", token, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "50.00", body["balance"])
}

func TestLoginRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.LoginRateLimit = 2
	app := newTestApp(t, cfg)

	for i := 0; i < 2; i++ {
		resp, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/login", "", map[string]string{
			"username": "alice", "pin": "0000",
		}, nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/login", "", map[string]string{
		"username": "alice", "pin": "0000",
	}, nil)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}
