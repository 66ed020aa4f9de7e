package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/remote"
	"github.com/spec-kit/admin-console/internal/session"
	apperrors "github.com/spec-kit/admin-console/pkg/util/errorutil"
)

// LoginFailedMessage is shown when the API gives no reason for a failed login.
const LoginFailedMessage = "Login failed. Please try again."

// AuthService drives the login form, the external login callback and logout
// of one console client.
type AuthService struct {
	api    *remote.Client
	logger *zap.Logger
}

// NewAuthService builds the service. api is the shared unauthenticated
// client used to build the Google login URL.
func NewAuthService(api *remote.Client, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{api: api, logger: logger}
}

// Login exchanges credentials for tokens, establishes the client's session
// and returns the home route of the logged user's role. Unknown roles land
// on "/".
func (s *AuthService) Login(ctx context.Context, client *session.Client, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", apperrors.NewValidationError("email and password required", nil)
	}

	res, err := client.API.Login(ctx, email, password)
	if err != nil {
		return "", loginFailure(err)
	}

	s.saveTokens(ctx, client, res.AccessToken, res.RefreshToken)
	if err := client.Manager.Login(ctx, res.AccessToken); err != nil {
		return "", loginFailure(err)
	}

	role := client.Manager.Session().Role()
	user, err := client.API.LoggedUser(ctx)
	if err != nil {
		s.logger.Warn("logged user lookup failed; routing by token role",
			zap.String("client_id", client.ID), zap.Error(err))
	} else {
		role = user.Role
	}

	return landing(role), nil
}

// CompleteExternalLogin finishes a login started at the remote identity
// provider, which calls back with the token pair and the user's role.
func (s *AuthService) CompleteExternalLogin(ctx context.Context, client *session.Client, token, refreshToken string, role domain.Role) (string, error) {
	if token == "" {
		return "", apperrors.NewValidationError("token required", nil)
	}

	s.saveTokens(ctx, client, token, refreshToken)
	if err := client.Manager.Login(ctx, token); err != nil {
		return "", loginFailure(err)
	}
	return landing(role), nil
}

// GoogleLoginURL is where the browser starts the Google sign-in flow.
func (s *AuthService) GoogleLoginURL() string {
	return s.api.GoogleLoginURL()
}

// Logout ends the client's session.
func (s *AuthService) Logout(ctx context.Context, client *session.Client) string {
	return string(client.Manager.Logout(ctx))
}

func (s *AuthService) saveTokens(ctx context.Context, client *session.Client, token, refreshToken string) {
	if err := client.Manager.Store().Save(ctx, token, refreshToken); err != nil {
		s.logger.Warn("token store save failed", zap.String("client_id", client.ID), zap.Error(err))
	}
}

func landing(role domain.Role) string {
	if home, ok := session.HomeRoute(role); ok {
		return home
	}
	return "/"
}

func loginFailure(err error) error {
	message := LoginFailedMessage
	var apiErr *remote.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		message = apiErr.Message
	}
	return &apperrors.DomainError{
		Code:       "LOGIN_FAILED",
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
		Err:        err,
	}
}
