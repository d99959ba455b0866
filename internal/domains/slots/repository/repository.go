package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
	"tonsor/infras/backend"
	"tonsor/infras/otel"
	"tonsor/internal/domains/slots/model/dto"
	"tonsor/shared/constant"
)

const routeAvailableSlots = "available-slots"

type Slots interface {
	FetchDay(ctx context.Context, staffID int64, date string) (dto.SlotsResponse, error)
}

type repositoryImpl struct {
	client *backend.Client
	otel   otel.Otel
}

func New(client *backend.Client, otel otel.Otel) Slots {
	return &repositoryImpl{
		client: client,
		otel:   otel,
	}
}

// FetchDay loads availability with caching defeated at every layer.
// Stale availability is worse than slow availability here, because a cached
// grid turns directly into double bookings.
func (r *repositoryImpl) FetchDay(ctx context.Context, staffID int64, date string) (res dto.SlotsResponse, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".FetchDay")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := url.Values{}
	query.Set(constant.RequestParamBarberID, strconv.FormatInt(staffID, 10))
	query.Set(constant.RequestParamDate, date)
	query.Set("_", strconv.FormatInt(time.Now().UnixMilli(), 10))

	err = r.client.Get(ctx, r.client.RoutePath(routeAvailableSlots), &res,
		backend.WithQuery(query),
		backend.WithNoCache(),
	)
	if err != nil {
		return res, fmt.Errorf("available slots request: %w", err)
	}

	return res, nil
}
