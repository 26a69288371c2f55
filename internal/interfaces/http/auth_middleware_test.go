package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/omplast/stores-api/internal/interfaces/http"
	pkgjwt "github.com/omplast/stores-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "ramesh"
	testIssuer    = "stores-api-test"
	testExpMin    = 60
)

// buildAuthApp builds a minimal Fiber app with:
//   - AuthMiddleware parsing the JWT and loading locals
//   - RequireRole authorizing access
//   - A dummy handler returning 200 once both middlewares pass
func buildAuthApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":      true,
				"user_id": apphttp.GetUserID(c),
				"role":    apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole generates a JWT with the given role.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err, "a valid JWT must be generated")
	return "Bearer " + tok
}

// doGet fires a GET request and returns the response.
func doGet(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole tests
// ──────────────────────────────────────────────────────────────────────────────

// The user carries the required role, so the request passes.
func TestRequireRole_AdminReachesAdminRoute(t *testing.T) {
	app := buildAuthApp("admin")
	resp := doGet(t, app, "/protected", tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, testUserID, body["user_id"], "the middleware must load the token user into locals")
	assert.Equal(t, "admin", body["role"])
}

// One of several allowed roles is enough.
func TestRequireRole_StorekeeperReachesMultiRoleRoute(t *testing.T) {
	app := buildAuthApp("admin", "storekeeper")
	resp := doGet(t, app, "/protected", tokenForRole(t, "storekeeper"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// A different role is rejected with 403.
func TestRequireRole_ProductionBlockedOnAdminRoute(t *testing.T) {
	app := buildAuthApp("admin")
	resp := doGet(t, app, "/protected", tokenForRole(t, "production"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware tests
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	app := buildAuthApp("admin")
	resp := doGet(t, app, "/protected", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	app := buildAuthApp("admin")
	resp := doGet(t, app, "/protected", "Token abc123")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	app := buildAuthApp("admin")
	resp := doGet(t, app, "/protected", "Bearer not.a.jwt")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	app := buildAuthApp("admin")
	tok, err := pkgjwt.Generate("another-secret", testUserID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doGet(t, app, "/protected", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"a token signed with a different secret must be rejected")
}
