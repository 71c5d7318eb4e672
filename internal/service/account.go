package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rs/xid"

	"github.com/sakif/studio-site/internal/apperror"
	"github.com/sakif/studio-site/internal/auth"
	"github.com/sakif/studio-site/internal/model"
	"github.com/sakif/studio-site/internal/repository"
)

// MinPasswordLength applies to provisioned client accounts. Admins never
// have passwords; they authenticate through GitHub.
const MinPasswordLength = 8

// AccountService handles identity: the GitHub OAuth callback for admins,
// password login for clients, and admin-side client provisioning.
type AccountService struct {
	users       repository.UserRepository
	tokens      *auth.TokenService
	passwords   *auth.PasswordService
	adminLogins map[string]bool // GitHub logins granted the admin role
	logger      *slog.Logger
}

func NewAccountService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	adminLogins []string,
	logger *slog.Logger,
) *AccountService {
	allow := make(map[string]bool, len(adminLogins))
	for _, login := range adminLogins {
		if login = strings.TrimSpace(login); login != "" {
			allow[strings.ToLower(login)] = true
		}
	}
	return &AccountService{
		users:       users,
		tokens:      tokens,
		passwords:   passwords,
		adminLogins: allow,
		logger:      logger,
	}
}

// AuthResult bundles the user record with the issued session token so the
// handler can set the cookie and respond in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// LoginWithGitHub completes the OAuth callback: upserts the user record from
// the GitHub profile and issues a session token. GitHub logins on the admin
// allowlist get the admin role; anyone else lands as a client with no
// project assignments.
func (s *AccountService) LoginWithGitHub(ctx context.Context, ghUser *auth.GitHubUser) (*AuthResult, error) {
	if ghUser == nil {
		return nil, fmt.Errorf("service/account: GitHub user must not be nil")
	}

	role := model.RoleClient
	if s.adminLogins[strings.ToLower(ghUser.Login)] {
		role = model.RoleAdmin
	}

	firstName, lastName := splitName(ghUser.Name)
	if firstName == "" {
		firstName = ghUser.Login
	}

	user := &model.User{
		ID:              fmt.Sprintf("github:%d", ghUser.ID),
		Email:           ghUser.Email,
		FirstName:       firstName,
		LastName:        lastName,
		ProfileImageURL: ghUser.AvatarURL,
		Role:            role,
	}
	if err := s.users.UpsertUser(ctx, user); err != nil {
		return nil, fmt.Errorf("service/account: upserting user %s: %w", user.ID, err)
	}

	s.logger.Info("user authenticated via GitHub",
		slog.String("userId", user.ID),
		slog.String("login", ghUser.Login),
		slog.String("role", user.Role))

	token, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("service/account: generating token for %s: %w", user.ID, err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

// LoginWithPassword authenticates a provisioned client account. Wrong email
// and wrong password produce the same error.
func (s *AccountService) LoginWithPassword(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperror.Unauthorized("invalid email or password")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("invalid email or password")
		}
		return nil, fmt.Errorf("service/account: looking up %s: %w", email, err)
	}
	if user.PasswordHash == "" {
		// OAuth-only account; it has no password to check.
		return nil, apperror.Unauthorized("invalid email or password")
	}
	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		s.logger.Info("failed login attempt", slog.String("email", email))
		return nil, apperror.Unauthorized("invalid email or password")
	}

	token, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("service/account: generating token for %s: %w", user.ID, err)
	}

	s.logger.Info("user authenticated via password", slog.String("userId", user.ID))
	return &AuthResult{User: user, Token: token}, nil
}

// ProvisionClientInput is the admin payload for creating a portal account.
type ProvisionClientInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ProvisionClient creates a client-portal account with password credentials.
// Admin-only; the handler enforces the role gate.
func (s *AccountService) ProvisionClient(ctx context.Context, input ProvisionClientInput) (*model.User, error) {
	email := strings.TrimSpace(input.Email)

	var fields []apperror.FieldError
	if email == "" {
		fields = append(fields, apperror.FieldError{Field: "email", Message: "email is required"})
	} else if !strings.Contains(email, "@") {
		fields = append(fields, apperror.FieldError{Field: "email", Message: "email must be a valid address"})
	}
	if len(input.Password) < MinPasswordLength {
		fields = append(fields, apperror.FieldError{Field: "password", Message: fmt.Sprintf("password must be at least %d characters", MinPasswordLength)})
	}
	if len(fields) > 0 {
		return nil, apperror.ValidationErrors(fields)
	}

	hash, err := s.passwords.Hash(input.Password)
	if err != nil {
		return nil, apperror.ValidationFailed("password", err.Error())
	}

	user := &model.User{
		ID:           xid.New().String(),
		Email:        email,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Role:         model.RoleClient,
		PasswordHash: hash,
	}
	if err := s.users.UpsertUser(ctx, user); err != nil {
		// A duplicate email surfaces as a conflict from the repository.
		return nil, err
	}

	s.logger.Info("client account provisioned",
		slog.String("userId", user.ID),
		slog.String("email", user.Email))
	return user, nil
}

// GetUser returns the record behind a validated session, for /api/auth/user.
func (s *AccountService) GetUser(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, fmt.Errorf("service/account: user id must not be empty")
	}
	return s.users.GetUserByID(ctx, id)
}

// splitName breaks a display name like "Ada Lovelace" into first/last.
func splitName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}
	parts := strings.SplitN(name, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
