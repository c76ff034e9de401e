package commands

import (
	"context"
	"strings"

	"charterdesk/internal/pkg/config"
	"charterdesk/internal/pkg/errs"
	"charterdesk/internal/pkg/jwt"
	"charterdesk/internal/pkg/password"
)

type LoginResult struct {
	Token string
	Email string
}

type AuthCommands interface {
	Login(ctx context.Context, email, rawPassword string) (*LoginResult, error)
}

type authCommandsImpl struct {
	admin config.AdminConfig
	jwt   *jwt.Service
}

func NewAuthCommands(admin config.AdminConfig, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{admin: admin, jwt: jwtService}
}

// Login checks the submitted credential against the configured admin
// account. The password comparison runs even for unknown emails so the
// response time does not leak which part failed.
func (a *authCommandsImpl) Login(_ context.Context, email, rawPassword string) (*LoginResult, error) {
	emailMatches := strings.EqualFold(strings.TrimSpace(email), a.admin.Email)
	passwordErr := password.ComparePassword(a.admin.PasswordHash, rawPassword)

	if !emailMatches || passwordErr != nil {
		return nil, errs.ErrInvalidCredentials
	}

	token, err := a.jwt.GenerateToken(a.admin.Email)
	if err != nil {
		return nil, errs.Wrap(err, "failed to sign admin token")
	}

	return &LoginResult{Token: token, Email: a.admin.Email}, nil
}
