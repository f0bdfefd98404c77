package routes

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/octovision/auth-service/internal/config"
	"github.com/octovision/auth-service/internal/logging"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	cfg := config.Config{
		AppEnv:    "development",
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
		// bcrypt minimum keeps the suite fast
		BcryptCost: 4,
	}
	if err := Setup(app, Deps{Cfg: cfg, Logger: logging.Discard()}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return app
}

type testResponse struct {
	status int
	raw    string
	body   map[string]any
}

func doJSON(t *testing.T, app *fiber.App, method, path, body, token string) testResponse {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	decoded := map[string]any{}
	if len(payload) > 0 && payload[0] == '{' {
		if err := json.Unmarshal(payload, &decoded); err != nil {
			t.Fatalf("decode body %q: %v", payload, err)
		}
	}
	return testResponse{status: resp.StatusCode, raw: string(payload), body: decoded}
}

func TestRegisterLoginResolveFlow(t *testing.T) {
	app := newTestApp(t)

	res := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/register",
		`{"email":"a@x.com","password":"pw1","role":"user"}`, "")
	if res.status != fiber.StatusCreated {
		t.Fatalf("register: expected 201 got %d", res.status)
	}
	if res.body["role"] != "user" {
		t.Fatalf("register: expected role user, got %v", res.body["role"])
	}
	if _, ok := res.body["password_hash"]; ok {
		t.Fatalf("register response must not expose the hash")
	}

	res = doJSON(t, app, fiber.MethodPost, "/api/v1/auth/login",
		`{"email":"a@x.com","password":"pw1"}`, "")
	if res.status != fiber.StatusOK {
		t.Fatalf("login: expected 200 got %d", res.status)
	}
	if res.body["token_type"] != "bearer" {
		t.Fatalf("login: expected bearer token type, got %v", res.body["token_type"])
	}
	token, _ := res.body["access_token"].(string)
	if token == "" {
		t.Fatalf("login: expected access token")
	}

	res = doJSON(t, app, fiber.MethodGet, "/api/v1/me", "", token)
	if res.status != fiber.StatusOK {
		t.Fatalf("me: expected 200 got %d", res.status)
	}
	if res.body["email"] != "a@x.com" || res.body["role"] != "user" {
		t.Fatalf("me: unexpected identity %v", res.body)
	}

	// Regular users are turned away from the admin route.
	res = doJSON(t, app, fiber.MethodGet, "/api/v1/admin-only", "", token)
	if res.status != fiber.StatusForbidden {
		t.Fatalf("admin-only: expected 403 got %d", res.status)
	}
}

func TestAdminFlow(t *testing.T) {
	app := newTestApp(t)

	res := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/register",
		`{"email":"root@x.com","password":"pw1","role":"admin"}`, "")
	if res.status != fiber.StatusCreated {
		t.Fatalf("register: expected 201 got %d", res.status)
	}

	res = doJSON(t, app, fiber.MethodPost, "/api/v1/auth/login",
		`{"email":"root@x.com","password":"pw1"}`, "")
	if res.status != fiber.StatusOK {
		t.Fatalf("login: expected 200 got %d", res.status)
	}
	token, _ := res.body["access_token"].(string)

	res = doJSON(t, app, fiber.MethodGet, "/api/v1/admin-only", "", token)
	if res.status != fiber.StatusOK {
		t.Fatalf("admin-only: expected 200 got %d", res.status)
	}
	userField, _ := res.body["user"].(map[string]any)
	if userField["role"] != "admin" {
		t.Fatalf("admin-only: expected admin identity, got %v", res.body)
	}
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	app := newTestApp(t)

	res := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/register",
		`{"email":"dup@x.com","password":"pw1"}`, "")
	if res.status != fiber.StatusCreated {
		t.Fatalf("first register: expected 201 got %d", res.status)
	}

	res = doJSON(t, app, fiber.MethodPost, "/api/v1/auth/register",
		`{"email":"dup@x.com","password":"pw2"}`, "")
	if res.status != fiber.StatusConflict {
		t.Fatalf("second register: expected 409 got %d", res.status)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	app := newTestApp(t)

	res := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/register",
		`{"email":"a@x.com","password":"pw1"}`, "")
	if res.status != fiber.StatusCreated {
		t.Fatalf("register: expected 201 got %d", res.status)
	}

	wrongPw := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/login",
		`{"email":"a@x.com","password":"wrong"}`, "")
	unknown := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/login",
		`{"email":"nobody@x.com","password":"pw1"}`, "")

	if wrongPw.status != fiber.StatusUnauthorized || unknown.status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401/401 got %d/%d", wrongPw.status, unknown.status)
	}
	if wrongPw.raw != unknown.raw {
		t.Fatalf("expected identical error payloads, got %q and %q", wrongPw.raw, unknown.raw)
	}
}

func TestProtectedRouteRejectsMissingOrBadToken(t *testing.T) {
	app := newTestApp(t)

	res := doJSON(t, app, fiber.MethodGet, "/api/v1/me", "", "")
	if res.status != fiber.StatusUnauthorized {
		t.Fatalf("no token: expected 401 got %d", res.status)
	}

	res = doJSON(t, app, fiber.MethodGet, "/api/v1/me", "", "not.a.token")
	if res.status != fiber.StatusUnauthorized {
		t.Fatalf("malformed token: expected 401 got %d", res.status)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	app := newTestApp(t)

	res := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/register",
		`{"email":"a@x.com","password":"pw1","role":"superuser"}`, "")
	if res.status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 got %d", res.status)
	}
}
