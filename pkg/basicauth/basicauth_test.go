package basicauth_test

import (
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/snsbt/governance/pkg/basicauth"
)

func newTestBasicAuth(t *testing.T, username string, password string) *basicauth.BasicAuth {
	salt, err := basicauth.SaltGenerator(32)
	require.NoError(t, err)

	key, err := basicauth.DerivePasswordKey([]byte(password), salt)
	require.NoError(t, err)

	auth, err := basicauth.NewBasicAuth(username, hex.EncodeToString(key), hex.EncodeToString(salt))
	require.NoError(t, err)
	return auth
}

func TestNewBasicAuth(t *testing.T) {

	_, err := basicauth.NewBasicAuth("", "", "")
	require.Error(t, err)

	_, err = basicauth.NewBasicAuth("admin", "abcd", "abcd")
	require.Error(t, err)

	auth := newTestBasicAuth(t, "admin", "secret")
	require.True(t, auth.VerifyUsernameAndPassword("admin", "secret"))
	require.False(t, auth.VerifyUsernameAndPassword("admin", "wrong"))
	require.False(t, auth.VerifyUsernameAndPassword("root", "secret"))
}

func TestMiddleware(t *testing.T) {

	auth := newTestBasicAuth(t, "admin", "secret")

	e := echo.New()
	e.Use(auth.Middleware(func(c echo.Context) bool {
		return c.Request().Method == http.MethodGet
	}))
	e.GET("/data", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.PUT("/data", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	serve := func(method string, username string, password string) int {
		req := httptest.NewRequest(method, "/data", nil)
		if username != "" {
			req.SetBasicAuth(username, password)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, serve(http.MethodGet, "", ""))
	require.Equal(t, http.StatusUnauthorized, serve(http.MethodPut, "", ""))
	require.Equal(t, http.StatusUnauthorized, serve(http.MethodPut, "admin", "wrong"))
	require.Equal(t, http.StatusNoContent, serve(http.MethodPut, "admin", "secret"))
}
