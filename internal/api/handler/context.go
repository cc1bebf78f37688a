package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jugendhilfe/casework-system/internal/core/domain"
)

// ctxActor extracts the identity injected by the Auth middleware and performs
// a fast-fail check before any service call: both id and a known role must be
// present, or the token is structurally valid but operationally unusable.
func ctxActor(c echo.Context) (domain.Actor, error) {
	id, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)

	actor := domain.Actor{ID: id, Role: domain.Role(role)}
	if actor.ID == "" || !actor.Role.Valid() {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor, nil
}
