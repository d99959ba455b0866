package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"tonsor/infras/backend"
	"tonsor/infras/otel"
	"tonsor/internal/domains/session/model"
	"tonsor/internal/domains/session/model/dto"
	"tonsor/shared/constant"
)

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	FetchIdentity(ctx context.Context, token string) (model.Identity, error)
}

type repositoryImpl struct {
	client *backend.Client
	otel   otel.Otel
}

func New(client *backend.Client, otel otel.Otel) Auth {
	return &repositoryImpl{
		client: client,
		otel:   otel,
	}
}

func (r *repositoryImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.AuthResponse, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = r.client.Post(ctx, r.client.APIPath("/login"), req, &res); err != nil {
		return res, fmt.Errorf("login request: %w", err)
	}

	return res, nil
}

func (r *repositoryImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.AuthResponse, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = r.client.Post(ctx, r.client.APIPath("/register"), req, &res); err != nil {
		return res, fmt.Errorf("register request: %w", err)
	}

	return res, nil
}

func (r *repositoryImpl) Logout(ctx context.Context, token string) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Logout")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = r.client.Post(ctx, r.client.APIPath("/logout"), nil, nil, backend.WithToken(token)); err != nil {
		return fmt.Errorf("logout request: %w", err)
	}

	return nil
}

func (r *repositoryImpl) FetchIdentity(ctx context.Context, token string) (identity model.Identity, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".FetchIdentity")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = r.client.Get(ctx, r.client.APIPath("/user"), &identity, backend.WithToken(token)); err != nil {
		return identity, fmt.Errorf("identity request: %w", err)
	}

	return identity, nil
}
