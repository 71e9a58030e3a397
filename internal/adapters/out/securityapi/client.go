// Package securityapi is the client of the remote security service that owns
// user accounts. It implements ports.Authenticator; every call carries the
// caller's token explicitly and is bounded by the configured timeout.
package securityapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"postal/internal/core/domain/model/session"
	"postal/internal/core/ports"
	"postal/internal/pkg/errs"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	loginPath          = "/api/users/login"
	registerPath       = "/api/users/register"
	usersPath          = "/api/users"
	setRolePath        = "/api/users/role/set"
	changePasswordPath = "/api/users/password/change"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type setRoleRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// userEnvelope mirrors the service's list format, where every user is wrapped
// in a "result" object.
type userEnvelope struct {
	Result struct {
		UserName string `json:"userName"`
		Role     string `json:"role"`
	} `json:"result"`
}

// Client talks to the security service over HTTP.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200*time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http:   httpClient,
		logger: logger.With(zap.String("component", "securityapi")),
	}
}

var _ ports.Authenticator = (*Client)(nil)

func (c *Client) Login(ctx context.Context, username, password string) (string, string, error) {
	var result loginResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(loginRequest{Username: username, Password: password}).
		SetResult(&result).
		Post(loginPath)
	if err := c.check("login", resp, err); err != nil {
		return "", "", err
	}

	if result.Token == "" {
		return "", "", fmt.Errorf("security service login: response has no token")
	}

	c.logger.Info("user logged in", zap.String("username", username), zap.String("role", result.Role))
	return result.Token, result.Role, nil
}

func (c *Client) Register(ctx context.Context, admin session.Session, username, password, role string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(admin.Token()).
		SetBody(registerRequest{Username: username, Password: password, Role: role}).
		Post(registerPath)
	return c.check("register", resp, err)
}

func (c *Client) ListUsers(ctx context.Context, admin session.Session) ([]ports.User, error) {
	var envelopes []userEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(admin.Token()).
		SetResult(&envelopes).
		Get(usersPath)
	if err := c.check("list users", resp, err); err != nil {
		return nil, err
	}

	users := make([]ports.User, 0, len(envelopes))
	for _, e := range envelopes {
		users = append(users, ports.User{Username: e.Result.UserName, Role: e.Result.Role})
	}
	return users, nil
}

func (c *Client) ChangeRole(ctx context.Context, admin session.Session, username, role string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(admin.Token()).
		SetBody(setRoleRequest{Username: username, Role: role}).
		Put(setRolePath)
	return c.check("change role", resp, err)
}

func (c *Client) ChangePassword(ctx context.Context, user session.Session, oldPassword, newPassword string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(user.Token()).
		SetBody(changePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}).
		Put(changePasswordPath)
	return c.check("change password", resp, err)
}

// check turns transport failures and non-2xx answers into errs kinds: 401 and
// 403 are policy denials, 404 is not found, other 4xx are invalid input.
func (c *Client) check(op string, resp *resty.Response, err error) error {
	if err != nil {
		c.logger.Error("security service call failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("security service %s: %w", op, err)
	}

	if !resp.IsError() {
		return nil
	}

	body := strings.TrimSpace(resp.String())
	c.logger.Warn("security service rejected request",
		zap.String("op", op),
		zap.Int("status_code", resp.StatusCode()),
		zap.String("body", body),
	)

	switch status := resp.StatusCode(); {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return errs.NewPolicyDeniedError("authentication", op+" rejected: "+body)
	case status == http.StatusNotFound:
		return errs.NewObjectNotFoundErrorWithCause("username", op, fmt.Errorf("%s", body))
	case status < http.StatusInternalServerError:
		return errs.NewValueIsInvalidErrorWithCause(op, fmt.Errorf("%s", body))
	default:
		return fmt.Errorf("security service %s: status %d: %s", op, status, body)
	}
}
