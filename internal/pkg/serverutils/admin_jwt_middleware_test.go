package serverutils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedApp(secret string) *fiber.App {
	app := fiber.New()
	app.Use(AdminJwtMiddleware(secret))
	app.Get("/ping", func(ctx *fiber.Ctx) error {
		return ctx.SendString("pong")
	})
	return app
}

func signToken(t *testing.T, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAdminJwtMiddleware(t *testing.T) {
	const secret = "admin-secret"

	tests := []struct {
		name       string
		secret     string
		authHeader string
		wantStatus int
	}{
		{
			name:       "valid token passes",
			secret:     secret,
			authHeader: "Bearer " + signToken(t, secret),
			wantStatus: fiber.StatusOK,
		},
		{
			name:       "empty secret disables the surface",
			secret:     "",
			authHeader: "Bearer " + signToken(t, secret),
			wantStatus: fiber.StatusForbidden,
		},
		{
			name:       "missing header",
			secret:     secret,
			authHeader: "",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "not a bearer token",
			secret:     secret,
			authHeader: "Basic abc",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "token signed with wrong secret",
			secret:     secret,
			authHeader: "Bearer " + signToken(t, "other-secret"),
			wantStatus: fiber.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newProtectedApp(tt.secret)

			req := httptest.NewRequest("GET", "/ping", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
