package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"portfolio_backend/internal/access"
	"portfolio_backend/internal/auth/password"
	"portfolio_backend/internal/auth/repository"
	"portfolio_backend/internal/auth/token"
	"portfolio_backend/internal/auth/transport"
	"portfolio_backend/platform/apperr"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"

	"github.com/google/uuid"
)

const (
	// MaxLoginAttempts failed logins lock an account for LockDuration.
	MaxLoginAttempts = 5
	LockDuration     = 2 * time.Hour

	msgUserExists          = "User with this email or username already exists"
	msgInvalidCredentials  = "Invalid credentials"
	msgLocked              = "Account temporarily locked due to too many failed login attempts"
	msgDeactivated         = "Account is deactivated"
	msgNoRefreshToken      = "No refresh token provided"
	msgInvalidRefreshToken = "Invalid refresh token"
	msgUnknownRole         = "Unknown role"
	msgUserGone            = "The user belonging to this token does no longer exist"
	msgAccountDeactivated  = "Your account has been deactivated"
)

// Result is an authenticated account with its tokens.
type Result struct {
	User   repository.User
	Tokens token.Pair
}

type Service struct {
	repo   repository.AuthRepository
	tokens *token.Issuer
	val    *validator.Validator
	log    *logger.Logger
	now    func() time.Time
}

func New(repo repository.AuthRepository, tokens *token.Issuer, val *validator.Validator, log *logger.Logger) *Service {
	return &Service{repo: repo, tokens: tokens, val: val, log: log, now: time.Now}
}

// Register creates a Viewer account and signs it in.
func (s *Service) Register(ctx context.Context, req transport.RegisterRequest) (Result, error) {
	user, err := s.CreateUser(ctx, req, access.RoleViewer)
	if err != nil {
		return Result{}, err
	}
	s.log.AuthEvent("register", user.ID.String(), true, "")
	return s.issue(user)
}

// CreateUser stores an account with the given role without signing it in.
func (s *Service) CreateUser(ctx context.Context, req transport.RegisterRequest, role string) (repository.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.val.Check(req); err != nil {
		return repository.User{}, err
	}
	if !slices.Contains(access.AllRoles, role) {
		return repository.User{}, apperr.Validation(msgUnknownRole).WithDetails(access.AllRoles)
	}

	taken, err := s.repo.Taken(ctx, req.Email, req.Username)
	if err != nil {
		return repository.User{}, err
	}
	if taken {
		return repository.User{}, apperr.BadRequest(msgUserExists)
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return repository.User{}, apperr.Wrap(apperr.KindInternal, "hash password", err)
	}
	user, err := s.repo.CreateUser(ctx, repository.NewUser{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    optional(req.FirstName),
		LastName:     optional(req.LastName),
		Role:         role,
	})
	if apperr.GetKind(err) == apperr.KindConflict {
		return repository.User{}, apperr.BadRequest(msgUserExists)
	}
	return user, err
}

func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

// Login checks credentials. A locked account is refused before the password
// is compared; each wrong password counts toward the lock.
func (s *Service) Login(ctx context.Context, req transport.LoginRequest) (Result, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.val.Check(req); err != nil {
		return Result{}, err
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if apperr.GetKind(err) == apperr.KindNotFound {
		s.log.AuthEvent("login", "", false, "unknown email")
		return Result{}, apperr.Unauthorized(msgInvalidCredentials)
	}
	if err != nil {
		return Result{}, err
	}

	now := s.now()
	if user.Locked(now) {
		s.log.AuthEvent("login", user.ID.String(), false, "locked")
		return Result{}, apperr.Locked(msgLocked)
	}
	if err := password.Compare(user.PasswordHash, req.Password); err != nil {
		if ferr := s.repo.RecordFailedLogin(ctx, user.ID, now, MaxLoginAttempts, now.Add(LockDuration)); ferr != nil {
			s.log.DatabaseError("record failed login", ferr)
		}
		s.log.AuthEvent("login", user.ID.String(), false, "wrong password")
		return Result{}, apperr.Unauthorized(msgInvalidCredentials)
	}
	if !user.IsActive {
		s.log.AuthEvent("login", user.ID.String(), false, "deactivated")
		return Result{}, apperr.Unauthorized(msgDeactivated)
	}

	if err := s.repo.RecordLogin(ctx, user.ID, now); err != nil {
		return Result{}, err
	}
	user.LoginAttempts, user.LockUntil, user.LastLogin = 0, nil, &now
	s.log.AuthEvent("login", user.ID.String(), true, "")
	return s.issue(user)
}

// Refresh exchanges a refresh token for a new pair.
func (s *Service) Refresh(ctx context.Context, raw string) (Result, error) {
	if raw == "" {
		return Result{}, apperr.Unauthorized(msgNoRefreshToken)
	}
	id, err := s.tokens.ParseRefresh(raw)
	if err != nil {
		return Result{}, apperr.Unauthorized(msgInvalidRefreshToken)
	}
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil || !user.IsActive {
		return Result{}, apperr.Unauthorized(msgInvalidRefreshToken)
	}
	return s.issue(user)
}

// Me returns the account behind an access token.
func (s *Service) Me(ctx context.Context, id uuid.UUID) (repository.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if apperr.GetKind(err) == apperr.KindNotFound {
		return repository.User{}, apperr.Unauthorized(msgUserGone)
	}
	if err != nil {
		return repository.User{}, err
	}
	if !user.IsActive {
		return repository.User{}, apperr.Unauthorized(msgAccountDeactivated)
	}
	return user, nil
}

func (s *Service) issue(user repository.User) (Result, error) {
	pair, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return Result{}, apperr.Wrap(apperr.KindInternal, "sign tokens", err)
	}
	return Result{User: user, Tokens: pair}, nil
}
