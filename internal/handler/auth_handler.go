package handler

import (
	"errors"
	"net/http"
	"time"

	"marketplace/internal/config"
	"marketplace/internal/middleware"
	"marketplace/internal/repository"
	auth "marketplace/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

// /auth のHTTP
type AuthHandler struct {
	registerUC   *auth.RegisterUserUsecase
	loginUC      *auth.LoginUsecase
	users        repository.UserRepository
	cookieSecure bool
}

// DI
func NewAuthHandler(
	registerUC *auth.RegisterUserUsecase,
	loginUC *auth.LoginUsecase,
	users repository.UserRepository,
	cookieSecure bool,
) *AuthHandler {
	return &AuthHandler{
		registerUC:   registerUC,
		loginUC:      loginUC,
		users:        users,
		cookieSecure: cookieSecure,
	}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// /auth/* を登録。/auth/me だけ認証が必要。
func (h *AuthHandler) RegisterRoutes(g *echo.Group, cfg config.Config) {
	g.POST("/auth/register", h.register)
	g.POST("/auth/login", h.login)
	g.POST("/auth/logout", h.logout)
	g.GET("/auth/me", h.me, middleware.AuthJWT(cfg))
}

func (h *AuthHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailAlreadyExists):
			return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		case errors.Is(err, auth.ErrInvalidEmailFormat),
			errors.Is(err, auth.ErrPasswordTooShort),
			errors.Is(err, auth.ErrInvalidRole),
			errors.Is(err, auth.ErrNameRequired):
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out.User)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
		case errors.Is(err, auth.ErrUserInactive):
			return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
		}
		return writeError(c, err)
	}

	// tokenはbodyに入れず、httpOnly cookieで返す
	c.SetCookie(h.tokenCookie(out.AccessToken, out.ExpiresAt))

	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) logout(c echo.Context) error {
	// 期限切れのcookieで上書きして消す
	c.SetCookie(h.tokenCookie("", time.Unix(0, 0)))
	return c.JSON(http.StatusOK, SuccessResponse{Message: "logged out"})
}

func (h *AuthHandler) me(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	u, err := h.users.FindByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		}
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, u)
}

func (h *AuthHandler) tokenCookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
}
