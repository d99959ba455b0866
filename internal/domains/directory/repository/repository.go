package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"tonsor/infras/backend"
	"tonsor/infras/otel"
	"tonsor/internal/domains/directory/model/dto"
	"tonsor/shared/constant"
)

type Directory interface {
	FetchShopProfiles(ctx context.Context) ([]dto.ShopProfileRecord, error)
	FetchStaffUsers(ctx context.Context, token string) ([]dto.StaffUserRecord, error)
}

type repositoryImpl struct {
	client *backend.Client
	otel   otel.Otel
}

func New(client *backend.Client, otel otel.Otel) Directory {
	return &repositoryImpl{
		client: client,
		otel:   otel,
	}
}

func (r *repositoryImpl) FetchShopProfiles(ctx context.Context) (records []dto.ShopProfileRecord, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".FetchShopProfiles")
	defer scope.End()
	defer scope.TraceIfError(err)

	var list dto.ShopProfileList
	if err = r.client.Get(ctx, r.client.APIPath("/barbers-test"), &list); err != nil {
		return nil, fmt.Errorf("shop profiles request: %w", err)
	}

	return list, nil
}

func (r *repositoryImpl) FetchStaffUsers(ctx context.Context, token string) (records []dto.StaffUserRecord, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".FetchStaffUsers")
	defer scope.End()
	defer scope.TraceIfError(err)

	var list dto.StaffUserList
	if err = r.client.Get(ctx, r.client.APIPath("/users/role/barber"), &list, backend.WithToken(token)); err != nil {
		return nil, fmt.Errorf("staff users request: %w", err)
	}

	return list, nil
}
