package middleware

import (
	"net/http"

	"marketplace/internal/domain/model"

	"github.com/labstack/echo/v4"
)

//contextに入っているroleを確認するガード。AuthJWTの後ろに置く。

// admin / super_admin だけ許可
func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if !model.Role(role).IsAdmin() {
				return c.JSON(http.StatusForbidden, errorJSON("admin only"))
			}

			return next(c)
		}
	}
}

// business_owner だけ許可（adminは自分の店舗を持たないので通さない）
func SellerRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if model.Role(role) != model.RoleBusinessOwner {
				return c.JSON(http.StatusForbidden, errorJSON("seller only"))
			}

			return next(c)
		}
	}
}
