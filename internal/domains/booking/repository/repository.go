package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"tonsor/infras/backend"
	"tonsor/infras/otel"
	"tonsor/internal/domains/booking/model/dto"
	"tonsor/shared/constant"
)

const (
	routeBookAppointment = "book-appointment"

	// Legacy endpoints kept from the first backend iteration. They live
	// outside the API prefix and still end in .php on the real server.
	pathWalkInBooking      = "/manager-book-appointment.php"
	pathAppointmentDetails = "/get-appointment-details"
	pathDeleteAppointment  = "/delete-appointment.php"
)

type Booking interface {
	Book(ctx context.Context, req dto.BookRequest, token string) (dto.BookResponse, error)
	BookWalkIn(ctx context.Context, req dto.WalkInRequest, token string) (dto.BookResponse, error)
	Details(ctx context.Context, staffID int64, date, clock, token string) (dto.DetailsResponse, error)
	Cancel(ctx context.Context, appointmentID int64, token string) error
}

type repositoryImpl struct {
	client *backend.Client
	otel   otel.Otel
}

func New(client *backend.Client, otel otel.Otel) Booking {
	return &repositoryImpl{
		client: client,
		otel:   otel,
	}
}

// Book submits a booking. On a slot conflict the 409 body is still decoded
// into the response so the caller sees which appointment holds the slot.
func (r *repositoryImpl) Book(ctx context.Context, req dto.BookRequest, token string) (res dto.BookResponse, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Book")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = r.client.Post(ctx, r.client.RoutePath(routeBookAppointment), req, &res, backend.WithToken(token)); err != nil {
		return res, fmt.Errorf("book appointment request: %w", err)
	}

	return res, nil
}

func (r *repositoryImpl) BookWalkIn(ctx context.Context, req dto.WalkInRequest, token string) (res dto.BookResponse, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".BookWalkIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = r.client.Post(ctx, pathWalkInBooking, req, &res, backend.WithToken(token)); err != nil {
		return res, fmt.Errorf("walk-in booking request: %w", err)
	}

	return res, nil
}

func (r *repositoryImpl) Details(ctx context.Context, staffID int64, date, clock, token string) (res dto.DetailsResponse, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Details")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := url.Values{}
	query.Set(constant.RequestParamBarberID, strconv.FormatInt(staffID, 10))
	query.Set(constant.RequestParamDate, date)
	query.Set(constant.RequestParamTime, clock)

	err = r.client.Get(ctx, pathAppointmentDetails, &res,
		backend.WithToken(token),
		backend.WithQuery(query),
		backend.WithNoCache(),
	)
	if err != nil {
		return res, fmt.Errorf("appointment details request: %w", err)
	}

	return res, nil
}

func (r *repositoryImpl) Cancel(ctx context.Context, appointmentID int64, token string) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := url.Values{}
	query.Set(constant.RequestParamID, strconv.FormatInt(appointmentID, 10))

	if err = r.client.Delete(ctx, pathDeleteAppointment, nil, backend.WithToken(token), backend.WithQuery(query)); err != nil {
		return fmt.Errorf("delete appointment request: %w", err)
	}

	return nil
}
