package http

import (
	"net/http"

	"postal/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
)

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

// Login handles POST /api/v1/sessions - authenticates against the security service.
func (s *Server) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewLoginCommand(req.Username, req.Password)
	if err != nil {
		return err
	}
	sess, err := s.h.Login.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, SessionResponse{
		SessionID: sess.ID().String(),
		Username:  sess.Username(),
		Role:      sess.Role(),
		ExpiresAt: sess.ExpiresAt(),
	})
}

func (s *Server) Logout(c echo.Context) error {
	cmd, err := commands.NewLogoutCommand(currentSession(c).ID())
	if err != nil {
		return err
	}
	if err := s.h.Logout.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) ListUsers(c echo.Context) error {
	users, err := s.h.ListUsers.Handle(c.Request().Context(), currentSession(c))
	if err != nil {
		return err
	}

	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, UserResponse{Username: u.Username, Role: u.Role})
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) RegisterUser(c echo.Context) error {
	var req RegisterUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRegisterUserCommand(currentSession(c), req.Username, req.Password, req.Role)
	if err != nil {
		return err
	}
	if err := s.h.Users.Register(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, UserResponse{Username: req.Username, Role: req.Role})
}

func (s *Server) ChangeUserRole(c echo.Context) error {
	var req ChangeRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewChangeUserRoleCommand(currentSession(c), c.Param("username"), req.Role)
	if err != nil {
		return err
	}
	if err := s.h.Users.ChangeRole(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) ChangePassword(c echo.Context) error {
	var req ChangePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewChangePasswordCommand(currentSession(c), req.OldPassword, req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.h.Users.ChangePassword(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
