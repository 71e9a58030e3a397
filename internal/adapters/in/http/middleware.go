package http

import (
	"strings"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/session"

	"github.com/labstack/echo/v4"
)

const sessionKey = "session"

// requireSession resolves the bearer session and stores it in the context.
func (s *Server) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return errUnauthorized
		}

		id, err := kernel.UUIDFromString(strings.TrimSpace(raw))
		if err != nil {
			return errUnauthorized
		}

		sess, err := s.sessions.Get(c.Request().Context(), id)
		if err != nil || sess.IsExpired(s.clock.Now()) {
			return errUnauthorized
		}

		c.Set(sessionKey, sess)
		return next(c)
	}
}

func currentSession(c echo.Context) session.Session {
	sess, _ := c.Get(sessionKey).(session.Session)
	return sess
}
