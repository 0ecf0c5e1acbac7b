package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/spec-kit/planets-api/internal/api/http"
	"github.com/spec-kit/planets-api/internal/api/http/handlers"
	"github.com/spec-kit/planets-api/internal/auth"
	"github.com/spec-kit/planets-api/internal/cache"
	"github.com/spec-kit/planets-api/internal/config"
	"github.com/spec-kit/planets-api/internal/events"
	"github.com/spec-kit/planets-api/internal/observability"
	"github.com/spec-kit/planets-api/internal/persistence"
	"github.com/spec-kit/planets-api/internal/repository"
	"github.com/spec-kit/planets-api/internal/service"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	logger := zap.NewNop()

	users := repository.NewMemoryUserRepository()
	planets := repository.NewMemoryPlanetRepository()
	require.NoError(t, persistence.Seed(context.Background(), users, planets, bcrypt.MinCost, logger))

	dispatcher := events.NewInMemoryDispatcher()
	planetCache := cache.NewPlanetCache(nil, 0, logger)

	authCfg := config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 30, BcryptCost: bcrypt.MinCost}
	authService := service.NewAuthService(authCfg, users, dispatcher)
	planetService := service.NewPlanetService(planets, planetCache, dispatcher, logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, observability.NewMetrics(), 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("planets-api", "test", &persistence.Postgres{}, &persistence.Redis{}),
		Auth:           handlers.NewAuthHandler(authService),
		Planets:        handlers.NewPlanetsHandler(planetService),
		AuthMiddleware: auth.NewMiddleware(authService),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func loginAs(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestLoginAndMeFlow(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "admin",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "bearer", body["token_type"])
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)

	resp, me := doJSON(t, app, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin", me["username"])
	assert.Equal(t, "admin", me["role"])
	assert.Equal(t, true, me["is_admin"])
	assert.Equal(t, true, me["is_active"])
	assert.Contains(t, me, "id")
	assert.Contains(t, me, "created_at")
}

func TestLoginFailureIsUniformAcrossCauses(t *testing.T) {
	app := newTestApp(t)

	resp, wrongPass := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "admin", "password": "wrongpass",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, unknown := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "ghost", "password": "admin123",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	assert.Equal(t, wrongPass["detail"], unknown["detail"])
	assert.NotEmpty(t, wrongPass["detail"])
}

func TestMeRequiresValidToken(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/auth/me", "invalid_token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "NotBearer something")
	resp2, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
}

func TestPublicEndpointsNeedNoToken(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/planets", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var planets []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&planets))
	require.Len(t, planets, 8, "seed data loads all eight planets")
	assert.Equal(t, "Mercury", planets[0]["name"])

	resp, planet := doJSON(t, app, http.MethodGet, "/planets/1", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Mercury", planet["name"])

	resp, health := doJSON(t, app, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", health["status"])

	// the memory variant reports its absent dependencies but stays ready
	resp, ready := doJSON(t, app, http.MethodGet, "/health/ready", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ready", ready["status"])
}

func TestMutationsRequireToken(t *testing.T) {
	app := newTestApp(t)

	payload := map[string]any{
		"name": "Vulcan", "planet_type": "Terrestrial",
		"distance_from_sun": 50.0, "radius": 1000.0,
	}

	resp, _ := doJSON(t, app, http.MethodPost, "/planets", "", payload)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPut, "/planets/1", "", map[string]any{"radius": 1.0})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/planets/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// public reads are unaffected by the absence of a token
	resp, _ = doJSON(t, app, http.MethodGet, "/planets/1", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPlanetCRUDWithToken(t *testing.T) {
	app := newTestApp(t)
	token := loginAs(t, app, "admin", "admin123")

	resp, created := doJSON(t, app, http.MethodPost, "/planets", token, map[string]any{
		"name": "Vulcan", "planet_type": "Terrestrial",
		"distance_from_sun": 50.0, "radius": 1000.0, "mass": 3.2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Vulcan", created["name"])
	id := int64(created["id"].(float64))

	resp, _ = doJSON(t, app, http.MethodPost, "/planets", token, map[string]any{
		"name": "Vulcan", "planet_type": "Terrestrial",
		"distance_from_sun": 50.0, "radius": 1000.0,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, updated := doJSON(t, app, http.MethodPut, fmt.Sprintf("/planets/%d", id), token, map[string]any{
		"radius": 1234.0,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Vulcan", updated["name"])
	assert.InDelta(t, 1234.0, updated["radius"].(float64), 0.001)
	assert.InDelta(t, 3.2, updated["mass"].(float64), 0.001)

	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/planets/%d", id), token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/planets/%d", id), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPlanetValidationErrors(t *testing.T) {
	app := newTestApp(t)
	token := loginAs(t, app, "user", "user123")

	cases := map[string]map[string]any{
		"missing name":      {"planet_type": "Terrestrial", "distance_from_sun": 50.0, "radius": 1000.0},
		"negative radius":   {"name": "Vulcan", "planet_type": "Terrestrial", "distance_from_sun": 50.0, "radius": -1.0},
		"zero distance":     {"name": "Vulcan", "planet_type": "Terrestrial", "distance_from_sun": 0.0, "radius": 1000.0},
		"negative mass":     {"name": "Vulcan", "planet_type": "Terrestrial", "distance_from_sun": 50.0, "radius": 1000.0, "mass": -5.0},
		"empty planet type": {"name": "Vulcan", "planet_type": "", "distance_from_sun": 50.0, "radius": 1000.0},
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			resp, body := doJSON(t, app, http.MethodPost, "/planets", token, payload)
			assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			assert.Contains(t, body, "detail")
		})
	}
}

func TestUnknownPlanetAndBadID(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/planets/999", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/planets/abc", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestRootEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "planets-api", body["service"])
}

func TestExpiredTokenIsRejected(t *testing.T) {
	app := newTestApp(t)

	// sign an already-expired token with the app's secret
	expired := signExpiredToken(t, "test-secret", "admin")
	resp, _ := doJSON(t, app, http.MethodGet, "/auth/me", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
