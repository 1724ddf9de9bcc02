package http

import (
	"errors"
	"net/http"
	"strings"

	"bookdesk/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const ctxOperatorIDKey = "operator_id"

var errUnauthorized = errors.New("unauthorized")

// OperatorAuth verifies an HS256 bearer token and stores its subject as the
// operator id for the request.
func OperatorAuth(secret []byte) echo.MiddlewareFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scheme, rawToken, found := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(rawToken) == "" {
				return failure(c, http.StatusUnauthorized, errUnauthorized)
			}

			claims := jwt.RegisteredClaims{}
			_, err := parser.ParseWithClaims(strings.TrimSpace(rawToken), &claims, func(*jwt.Token) (any, error) {
				return secret, nil
			})
			if err != nil {
				return failure(c, http.StatusUnauthorized, errUnauthorized)
			}

			operatorID, err := kernel.UUIDFromString(claims.Subject)
			if err != nil {
				return failure(c, http.StatusUnauthorized, errUnauthorized)
			}

			c.Set(ctxOperatorIDKey, operatorID)
			return next(c)
		}
	}
}

// operatorID returns the id OperatorAuth stored. Routes outside the admin
// group never call it.
func operatorID(c echo.Context) kernel.UUID {
	id, _ := c.Get(ctxOperatorIDKey).(kernel.UUID)
	return id
}
