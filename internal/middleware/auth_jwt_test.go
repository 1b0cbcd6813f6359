package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketplace/internal/config"
	"marketplace/internal/domain/model"
	"marketplace/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test_secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":  int64(42),
		"role": "buyer",
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	}
}

func runAuthJWT(token string) (*httptest.ResponseRecorder, echo.Context, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.TokenCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	cfg := config.Config{JWTSecret: testSecret}
	var captured echo.Context
	h := middleware.AuthJWT(cfg)(func(c echo.Context) error {
		captured = c
		return c.NoContent(http.StatusOK)
	})
	err := h(c)
	if captured != nil {
		c = captured
	}
	return rec, c, err
}

func TestAuthJWT_NoCookie(t *testing.T) {
	rec, _, err := runAuthJWT("")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_GarbageToken(t *testing.T) {
	rec, _, err := runAuthJWT("not.a.jwt")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	token := signToken(t, "other_secret", validClaims())
	rec, _, err := runAuthJWT(token)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_Expired(t *testing.T) {
	claims := validClaims()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	token := signToken(t, testSecret, claims)

	rec, _, err := runAuthJWT(token)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_Valid_SetsContext(t *testing.T) {
	token := signToken(t, testSecret, validClaims())

	rec, c, err := runAuthJWT(token)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), c.Get(middleware.CtxUserIDKey))
	assert.Equal(t, "buyer", c.Get(middleware.CtxUserRoleKey))
}

func runRoleGuard(guard echo.MiddlewareFunc, role string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set(middleware.CtxUserRoleKey, role)
	}

	h := guard(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	_ = h(c)
	return rec
}

func TestAdminRoleGuard(t *testing.T) {
	assert.Equal(t, http.StatusOK, runRoleGuard(middleware.AdminRoleGuard(), string(model.RoleAdmin)).Code)
	assert.Equal(t, http.StatusOK, runRoleGuard(middleware.AdminRoleGuard(), string(model.RoleSuperAdmin)).Code)
	assert.Equal(t, http.StatusForbidden, runRoleGuard(middleware.AdminRoleGuard(), string(model.RoleBuyer)).Code)
	assert.Equal(t, http.StatusForbidden, runRoleGuard(middleware.AdminRoleGuard(), string(model.RoleBusinessOwner)).Code)
	assert.Equal(t, http.StatusUnauthorized, runRoleGuard(middleware.AdminRoleGuard(), "").Code)
}

func TestSellerRoleGuard(t *testing.T) {
	assert.Equal(t, http.StatusOK, runRoleGuard(middleware.SellerRoleGuard(), string(model.RoleBusinessOwner)).Code)
	assert.Equal(t, http.StatusForbidden, runRoleGuard(middleware.SellerRoleGuard(), string(model.RoleAdmin)).Code)
	assert.Equal(t, http.StatusForbidden, runRoleGuard(middleware.SellerRoleGuard(), string(model.RoleBuyer)).Code)
}
