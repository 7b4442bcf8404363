package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/football-dashboard/internal/domain/user"
	"github.com/riskibarqy/football-dashboard/internal/platform/id"
	"github.com/riskibarqy/football-dashboard/internal/platform/logging"
)

const (
	DemoUserID   = "1"
	DemoUserName = "Demo User"

	maxPasswordBytes = 72
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	// Matches reports whether password hashes to hash. A mismatch is not an error.
	Matches(hash, password string) (bool, error)
}

type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

type TokenIssuer interface {
	IssueAccessToken(ctx context.Context, principal user.Principal) (AccessToken, error)
}

type AuthServiceConfig struct {
	DemoUserEnabled bool
	DemoEmail       string
	DemoPassword    string
}

type SignupInput struct {
	Email    string
	Password string
	Name     string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token     string
	TokenType string
	ExpiresAt time.Time
	User      user.Principal
}

type AuthService struct {
	users    user.Repository
	hasher   PasswordHasher
	tokens   TokenIssuer
	ids      id.Generator
	clock    clockwork.Clock
	validate *validator.Validate
	logger   *logging.Logger
	cfg      AuthServiceConfig
}

func NewAuthService(
	users user.Repository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	ids id.Generator,
	clock clockwork.Clock,
	logger *logging.Logger,
	cfg AuthServiceConfig,
) *AuthService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}
	cfg.DemoEmail = user.NormalizeEmail(cfg.DemoEmail)

	return &AuthService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		ids:      ids,
		clock:    clock,
		validate: validator.New(),
		logger:   logger,
		cfg:      cfg,
	}
}

// Signup stores a new account. The insert is conditional on the email so two
// concurrent signups for one address create exactly one row.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Signup")
	defer span.End()

	email := user.NormalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	if email == "" || input.Password == "" || name == "" {
		return user.User{}, fmt.Errorf("%w: Email, password, and name are required", ErrInvalidInput)
	}
	if err := s.validate.VarCtx(ctx, email, "email"); err != nil {
		return user.User{}, fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	if len(input.Password) > maxPasswordBytes {
		return user.User{}, fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, maxPasswordBytes)
	}
	if s.cfg.DemoUserEnabled && email == s.cfg.DemoEmail {
		return user.User{}, fmt.Errorf("%w: User already exists", ErrAlreadyExists)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}
	userID, err := s.ids.NewID()
	if err != nil {
		return user.User{}, fmt.Errorf("generate user id: %w", err)
	}

	item := user.User{
		ID:           userID,
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return user.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.users.CreateIfAbsent(ctx, item)
	if err != nil {
		return user.User{}, fmt.Errorf("create user: %w", err)
	}
	if !created {
		return user.User{}, fmt.Errorf("%w: User already exists", ErrAlreadyExists)
	}

	s.logger.InfoContext(ctx, "user signed up", "user_id", item.ID)
	return item, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	email := user.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return LoginResult{}, fmt.Errorf("%w: Email and password are required", ErrInvalidInput)
	}

	principal, err := s.authenticate(ctx, email, input.Password)
	if err != nil {
		return LoginResult{}, err
	}

	token, err := s.tokens.IssueAccessToken(ctx, principal)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue access token: %w", err)
	}

	return LoginResult{
		Token:     token.Token,
		TokenType: "Bearer",
		ExpiresAt: token.ExpiresAt,
		User:      principal,
	}, nil
}

func (s *AuthService) authenticate(ctx context.Context, email, password string) (user.Principal, error) {
	if s.cfg.DemoUserEnabled && s.cfg.DemoEmail != "" && email == s.cfg.DemoEmail {
		if password == s.cfg.DemoPassword {
			return user.Principal{UserID: DemoUserID, Email: email, Name: DemoUserName}, nil
		}
		return user.Principal{}, invalidCredentials()
	}

	stored, exists, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return user.Principal{}, fmt.Errorf("get user by email: %w", err)
	}
	if !exists {
		return user.Principal{}, invalidCredentials()
	}

	ok, err := s.hasher.Matches(stored.PasswordHash, password)
	if err != nil {
		return user.Principal{}, fmt.Errorf("compare password: %w", err)
	}
	if !ok {
		return user.Principal{}, invalidCredentials()
	}
	return stored.Principal(), nil
}

// CurrentUser resolves the stored account of an authenticated principal.
func (s *AuthService) CurrentUser(ctx context.Context, principal user.Principal) (user.Principal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.CurrentUser")
	defer span.End()

	if principal.UserID == "" {
		return user.Principal{}, fmt.Errorf("%w: missing principal", ErrUnauthorized)
	}
	if s.cfg.DemoUserEnabled && principal.UserID == DemoUserID {
		return principal, nil
	}

	stored, exists, err := s.users.GetByID(ctx, principal.UserID)
	if err != nil {
		return user.Principal{}, fmt.Errorf("get user by id: %w", err)
	}
	if !exists {
		return user.Principal{}, fmt.Errorf("%w: account no longer exists", ErrUnauthorized)
	}
	return stored.Principal(), nil
}

func invalidCredentials() error {
	return fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
}
