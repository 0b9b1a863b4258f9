package middleware_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"teamfeed/internal/middleware"
)

type fakeVerifier struct {
	uid bson.ObjectID
	sid bson.ObjectID
	err error
}

func (f *fakeVerifier) Verify(context.Context, string) (bson.ObjectID, bson.ObjectID, error) {
	return f.uid, f.sid, f.err
}

func newApp(verifier middleware.TokenVerifier) *fiber.App {
	app := fiber.New()
	app.Use(middleware.BearerAuth(verifier))
	app.Get("/open", func(c *fiber.Ctx) error {
		uid, _ := c.Locals("user_id").(string)
		return c.SendString(uid)
	})
	app.Get("/gated", middleware.RequireAuth(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestBearerAuthSetsLocals(t *testing.T) {
	fv := &fakeVerifier{uid: bson.NewObjectID(), sid: bson.NewObjectID()}
	app := newApp(fv)

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer some-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, fv.uid.Hex(), string(body))
}

func TestBearerAuthAnonymousPassThrough(t *testing.T) {
	app := newApp(&fakeVerifier{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/open", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBearerAuthRejectsInvalidToken(t *testing.T) {
	app := newApp(&fakeVerifier{err: errors.New("invalid token")})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer junk")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthGatesAnonymous(t *testing.T) {
	fv := &fakeVerifier{uid: bson.NewObjectID(), sid: bson.NewObjectID()}
	app := newApp(fv)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/gated", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
