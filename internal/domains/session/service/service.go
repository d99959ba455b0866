package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
	"tonsor/config"
	"tonsor/infras/jwt"
	"tonsor/infras/otel"
	"tonsor/internal/domains/session/model"
	"tonsor/internal/domains/session/model/dto"
	"tonsor/internal/domains/session/repository"
	"tonsor/internal/domains/session/store"
	"tonsor/shared/constant"
	"tonsor/shared/failure"
	"tonsor/shared/validator"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Session interface {
	Restore(ctx context.Context) (model.Identity, bool, error)
	Login(ctx context.Context, req dto.LoginRequest) (model.Identity, error)
	Register(ctx context.Context, req dto.RegisterRequest) (model.Identity, error)
	Logout(ctx context.Context) error
	CurrentIdentity() (model.Identity, bool)
	Token() string
	IsPrivileged() bool
}

type serviceImpl struct {
	repo  repository.Auth
	store store.Store
	cfg   *config.Config
	otel  otel.Otel

	mu       sync.RWMutex
	identity *model.Identity
	token    string
}

func New(repo repository.Auth, st store.Store, cfg *config.Config, otel otel.Otel) Session {
	return &serviceImpl{
		repo:  repo,
		store: st,
		cfg:   cfg,
		otel:  otel,
	}
}

// Restore rebuilds the session from the local store on startup. A token that
// is missing, expired or rejected by the backend leaves the client
// unauthenticated, wiping whatever was persisted.
func (s *serviceImpl) Restore(ctx context.Context) (identity model.Identity, ok bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Restore")
	defer scope.End()
	defer scope.TraceIfError(err)

	token, err := s.store.Get(ctx, constant.StoreKeyToken)
	if errors.Is(err, store.ErrNotFound) {
		return identity, false, nil
	}

	if err != nil {
		return identity, false, fmt.Errorf("failed to read stored token: %w", err)
	}

	// Expiry is checked locally first so an obviously dead token does not
	// cost a round trip.
	if expiry, peekErr := jwt.PeekExpiry(token); peekErr == nil && time.Now().After(expiry) {
		log.Info().Msg("stored token expired, clearing session")

		return identity, false, s.forget(ctx)
	}

	identity, err = s.repo.FetchIdentity(ctx, token)
	if err != nil {
		log.Warn().Err(err).Msg("stored token rejected by server, clearing session")

		if clearErr := s.forget(ctx); clearErr != nil {
			return identity, false, clearErr
		}

		return model.Identity{}, false, nil
	}

	s.remember(token, identity)

	return identity, true, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (identity model.Identity, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validator.ValidateStruct(&req); err != nil {
		return identity, err
	}

	res, err := s.repo.Login(ctx, req)
	if err != nil {
		log.Error().Err(err).Msg("login failed")

		return identity, fmt.Errorf("login failed: %w", err)
	}

	if err = s.persist(ctx, res.AccessToken, res.User); err != nil {
		return identity, err
	}

	return res.User, nil
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (identity model.Identity, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validator.ValidateStruct(&req); err != nil {
		return identity, err
	}

	res, err := s.repo.Register(ctx, req)
	if err != nil {
		log.Error().Err(err).Msg("registration failed")

		return identity, fmt.Errorf("registration failed: %w", err)
	}

	if err = s.persist(ctx, res.AccessToken, res.User); err != nil {
		return identity, err
	}

	return res.User, nil
}

// Logout revokes the token server side on a best-effort basis. Local state
// is destroyed even when the revocation call fails.
func (s *serviceImpl) Logout(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == constant.Empty {
		return failure.Unauthorized("no active session")
	}

	if err = s.repo.Logout(ctx, token); err != nil {
		log.Warn().Err(err).Msg("server side logout failed, clearing local session anyway")
	}

	return s.forget(ctx)
}

func (s *serviceImpl) CurrentIdentity() (model.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return model.Identity{}, false
	}

	return *s.identity, true
}

func (s *serviceImpl) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

func (s *serviceImpl) IsPrivileged() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.identity != nil && s.identity.IsPrivileged()
}

func (s *serviceImpl) persist(ctx context.Context, token string, identity model.Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to encode identity: %w", err)
	}

	if err = s.store.Set(ctx, constant.StoreKeyToken, token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}

	if err = s.store.Set(ctx, constant.StoreKeyIdentity, string(raw)); err != nil {
		return fmt.Errorf("failed to persist identity: %w", err)
	}

	if err = s.store.Set(ctx, constant.StoreKeyEmail, identity.Email); err != nil {
		return fmt.Errorf("failed to persist email: %w", err)
	}

	if err = s.store.Set(ctx, constant.StoreKeyRole, identity.Role); err != nil {
		return fmt.Errorf("failed to persist role: %w", err)
	}

	s.remember(token, identity)

	return nil
}

func (s *serviceImpl) remember(token string, identity model.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.identity = &identity
}

func (s *serviceImpl) forget(ctx context.Context) error {
	s.mu.Lock()
	s.token = constant.Empty
	s.identity = nil
	s.mu.Unlock()

	err := s.store.Delete(ctx,
		constant.StoreKeyToken,
		constant.StoreKeyIdentity,
		constant.StoreKeyEmail,
		constant.StoreKeyRole,
		constant.StoreKeySelectedStaff,
	)
	if err != nil {
		return fmt.Errorf("failed to clear session store: %w", err)
	}

	return nil
}
