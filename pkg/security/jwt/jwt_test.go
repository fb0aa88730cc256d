package jwt

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/careeradvisor/pkg/auth"
)

func protectedApp(secret, issuer string) *fiber.App {
	app := fiber.New()
	app.Use(NewAuthMiddleware(secret, issuer))
	app.Get("/me", func(c *fiber.Ctx) error {
		id, ok := UserID(c)
		if !ok {
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.SendString(id.String())
	})
	return app
}

func TestMiddlewareAcceptsGeneratedToken(t *testing.T) {
	user := auth.User{ID: uuid.New(), Email: "a@b.c"}
	token, err := NewGenerator("s3cret", "career-advisor", time.Minute).Generate(context.Background(), user)
	require.NoError(t, err)

	app := protectedApp("s3cret", "career-advisor")
	for _, header := range []string{"Bearer " + token, "bearer " + token, token} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, user.ID.String(), string(body))
	}
}

func TestMiddlewareRejects(t *testing.T) {
	user := auth.User{ID: uuid.New()}
	foreign, _ := NewGenerator("other", "career-advisor", time.Minute).Generate(context.Background(), user)
	wrongIssuer, _ := NewGenerator("s3cret", "someone-else", time.Minute).Generate(context.Background(), user)
	expired, _ := NewGenerator("s3cret", "career-advisor", -time.Minute).Generate(context.Background(), user)

	app := protectedApp("s3cret", "career-advisor")
	for name, header := range map[string]string{
		"missing":      "",
		"empty bearer": "Bearer ",
		"bad sig":      "Bearer " + foreign,
		"issuer":       "Bearer " + wrongIssuer,
		"expired":      "Bearer " + expired,
	} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err, name)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, name)
	}
}
