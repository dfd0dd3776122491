package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/metrics"
)

// Session is what register and login hand back to the client.
type Session struct {
	User  core.User
	Token string
}

type AuthService struct {
	users  UserStore
	hasher PasswordHasher
	tokens TokenIssuer
	now    func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users UserStore, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
}

// Register creates an account. Emails are matched exactly, so addresses
// differing only in case are distinct users.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (Session, error) {
	session, err := s.register(ctx, email, password, name)
	metrics.RecordAuthAttempt(log.OpRegister, err)
	return session, err
}

func (s *AuthService) register(ctx context.Context, email, password, name string) (Session, error) {
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return Session{}, core.Errorf(core.ErrConflict, "Email already registered")
	} else if !errors.Is(err, core.ErrNotFound) {
		return Session{}, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return Session{}, err
	}

	user, err := s.users.CreateUser(ctx, core.User{
		ID:           core.NewID(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		return Session{}, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return Session{}, err
	}

	log.FromContext(ctx).WithComponent(log.ComponentAuth).InfoContext(ctx, "User registered",
		log.NewFields().WithOperation(log.OpRegister).WithRecord(user.ID, user.ID).ToSlice()...)

	return Session{User: user, Token: token}, nil
}

// Login returns core.ErrUnauthenticated for an unknown email and for a wrong
// password alike.
func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	session, err := s.login(ctx, email, password)
	metrics.RecordAuthAttempt(log.OpLogin, err)
	return session, err
}

func (s *AuthService) login(ctx context.Context, email, password string) (Session, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			return Session{}, fmt.Errorf("lookup user: %w", err)
		}
		// keep the response time of unknown emails close to that of bad passwords
		_ = s.hasher.Compare(s.dummy(), password)
		return Session{}, core.Errorf(core.ErrUnauthenticated, "Invalid credentials")
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return Session{}, core.Errorf(core.ErrUnauthenticated, "Invalid credentials")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return Session{}, err
	}
	return Session{User: user, Token: token}, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("fintrack-login-placeholder")
	})
	return s.dummyHash
}
