// Package auth implements the authentication core: registration, login,
// logout, and session restore over the user record store and the session
// store. All failures are converted to the AuthResult shape at this
// boundary; no error value reaches the UI layer.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/cryptox"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
	"github.com/dmitrijs2005/finkeeper/internal/models"
	"github.com/dmitrijs2005/finkeeper/internal/sessionstore"
	"github.com/dmitrijs2005/finkeeper/internal/userstore"
)

// RegisterInput is the sign-up form payload. Phone is optional.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// Service orchestrates the auth flows and owns the observable session state.
//
// opMu serializes the mutating operations end to end: a login's
// read-verify-update cycle can never interleave with a registration against
// the same store, on top of the store's own per-call mutex.
type Service struct {
	users    userstore.Repository
	sessions sessionstore.Store
	secret   []byte
	tokenTTL time.Duration
	log      logging.Logger

	opMu sync.Mutex

	mu        sync.Mutex
	state     State
	subs      map[int]func(State)
	nextSubID int
}

// NewService constructs the auth core. secret signs session tokens and must
// be the per-device key; tokenTTL bounds session token validity.
func NewService(users userstore.Repository, sessions sessionstore.Store, secret []byte, tokenTTL time.Duration, log logging.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		secret:   secret,
		tokenTTL: tokenTTL,
		log:      log,
		state:    State{Status: StatusAnonymous},
		subs:     make(map[int]func(State)),
	}
}

// Register creates a new account and signs the user in.
func (s *Service) Register(ctx context.Context, in RegisterInput) models.AuthResult {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.setState(State{Status: StatusAuthenticating})

	session, err := s.register(ctx, in)
	if err != nil {
		s.log.Warn(ctx, "registration failed", "error", err.Error())
		s.setState(State{Status: StatusAnonymous})
		return models.Fail(err.Error())
	}

	s.log.Info(ctx, "user registered", "id", session.ID)
	s.setState(State{Status: StatusAuthenticated, Session: session})
	return models.Succeed(session)
}

func (s *Service) register(ctx context.Context, in RegisterInput) (*models.SessionRecord, error) {
	if err := validateRegistration(in.Name, in.Email, in.Password); err != nil {
		return nil, err
	}

	salt, err := cryptox.GenerateSalt()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &models.UserRecord{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(in.Name),
		Email:          models.NormalizeEmail(in.Email),
		Phone:          strings.TrimSpace(in.Phone),
		Salt:           salt,
		PasswordDigest: cryptox.HashPassword(in.Password, salt),
		Role:           models.RoleUser,
		CreatedAt:      now,
		UpdatedAt:      now,
		Preferences:    map[string]string{},
		Profile:        map[string]string{},
	}

	// Insert enforces case-insensitive email uniqueness under the store's
	// own lock, so registration cannot race a concurrent insert.
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	return s.startSession(ctx, user)
}

// Login verifies credentials and signs the user in.
func (s *Service) Login(ctx context.Context, email, password string) models.AuthResult {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.setState(State{Status: StatusAuthenticating})

	session, err := s.login(ctx, email, password)
	if err != nil {
		s.log.Warn(ctx, "login failed", "error", err.Error())
		s.setState(State{Status: StatusAnonymous})
		return models.Fail(err.Error())
	}

	s.log.Info(ctx, "user logged in", "id", session.ID)
	s.setState(State{Status: StatusAuthenticated, Session: session})
	return models.Succeed(session)
}

func (s *Service) login(ctx context.Context, email, password string) (*models.SessionRecord, error) {
	if err := validateLogin(email, password); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// generic failure: never reveal whether the email exists
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if !cryptox.VerifyPassword(password, user.Salt, user.PasswordDigest) {
		return nil, common.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	user.UpdatedAt = now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.startSession(ctx, user)
}

// startSession mints a token, persists the session, and returns it.
func (s *Service) startSession(ctx context.Context, user *models.UserRecord) (*models.SessionRecord, error) {
	token, err := GenerateToken(user.ID, user.Email, s.secret, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: minting token: %v", common.ErrCryptoUnavailable, err)
	}

	session := models.SessionFromUser(user, token)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Logout clears the persisted session. In-memory state goes anonymous even
// when the underlying storage fails, so the UI never stays signed in against
// the user's intent.
func (s *Service) Logout(ctx context.Context) models.AuthResult {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	err := s.sessions.Clear(ctx)
	s.setState(State{Status: StatusAnonymous})

	if err != nil {
		s.log.Error(ctx, "clearing session store failed", "error", err.Error())
		return models.Fail(err.Error())
	}
	return models.AuthResult{Success: true}
}

// RestoreSession loads the persisted session at process start. A missing,
// corrupt, or expired session leaves the service anonymous; only a live
// signed token transitions directly to authenticated.
func (s *Service) RestoreSession(ctx context.Context) models.AuthResult {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	session, err := s.sessions.Load(ctx)
	if err != nil || session == nil {
		s.setState(State{Status: StatusAnonymous})
		return models.Fail("no active session")
	}

	if _, err := ParseToken(session.Token, s.secret); err != nil {
		// stale or tampered token: drop it rather than trust it
		_ = s.sessions.Clear(ctx)
		s.setState(State{Status: StatusAnonymous})
		return models.Fail("no active session")
	}

	s.log.Info(ctx, "session restored", "id", session.ID)
	s.setState(State{Status: StatusAuthenticated, Session: session})
	return models.Succeed(session)
}
