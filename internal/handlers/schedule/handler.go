package schedule

import (
	"net/http"
	"strconv"
	"tonsor/infras/otel"
	bookingDto "tonsor/internal/domains/booking/model/dto"
	directoryDto "tonsor/internal/domains/directory/model/dto"
	slotsDto "tonsor/internal/domains/slots/model/dto"
	"tonsor/internal/stub"
	"tonsor/shared"
	"tonsor/shared/constant"
	"tonsor/shared/failure"
	"tonsor/shared/validator"
	"tonsor/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	routeAvailableSlots  = "available-slots"
	routeBookAppointment = "book-appointment"
)

type Handler struct {
	store *stub.Store
	otel  otel.Otel
}

func New(store *stub.Store, otel otel.Otel) Handler {
	return Handler{
		store: store,
		otel:  otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/api/barbers-test", handler.ShopProfiles)
	router.Get("/api/users/role/barber", handler.StaffUsers)
	router.Get("/api-route", handler.RouteGet)
	router.Post("/api-route", handler.RoutePost)
	router.Post("/manager-book-appointment.php", handler.WalkInBooking)
	router.Get("/get-appointment-details", handler.AppointmentDetails)
	router.Delete("/delete-appointment.php", handler.DeleteAppointment)
}

// ShopProfiles lists every shop as a bookable profile, wrapped in the
// barbers envelope the client accepts.
func (handler *Handler) ShopProfiles(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ShopProfiles")
	defer scope.End()

	shops := handler.store.ShopProfiles()

	records := make([]directoryDto.ShopProfileRecord, 0, len(shops))
	for _, shop := range shops {
		records = append(records, directoryDto.ShopProfileRecord{
			ID:          shop.ID,
			Name:        shop.Name,
			ShopName:    shop.ShopName,
			OpeningTime: shared.Ptr(shop.OpeningTime),
			ClosingTime: shared.Ptr(shop.ClosingTime),
		})
	}

	response.WithJSON(writer, http.StatusOK, map[string]any{"barbers": records})
}

func (handler *Handler) StaffUsers(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StaffUsers")
	defer scope.End()

	staff := handler.store.StaffUsers()

	records := make([]directoryDto.StaffUserRecord, 0, len(staff))
	for _, user := range staff {
		records = append(records, directoryDto.StaffUserRecord{
			ID:           user.ID,
			Name:         user.Name,
			Email:        user.Email,
			BarberShopID: user.BarberShopID,
		})
	}

	response.WithJSON(writer, http.StatusOK, map[string]any{"users": records})
}

// RouteGet dispatches GET requests multiplexed through the legacy
// /api-route endpoint.
func (handler *Handler) RouteGet(writer http.ResponseWriter, request *http.Request) {
	switch request.URL.Query().Get(constant.RequestParamPath) {
	case routeAvailableSlots:
		handler.AvailableSlots(writer, request)
	default:
		response.WithError(writer, failure.BadRequestFromString("unknown route path"))
	}
}

// RoutePost dispatches POST requests multiplexed through the legacy
// /api-route endpoint.
func (handler *Handler) RoutePost(writer http.ResponseWriter, request *http.Request) {
	switch request.URL.Query().Get(constant.RequestParamPath) {
	case routeBookAppointment:
		handler.BookAppointment(writer, request)
	default:
		response.WithError(writer, failure.BadRequestFromString("unknown route path"))
	}
}

func (handler *Handler) AvailableSlots(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AvailableSlots")
	defer scope.End()

	barberID, err := strconv.ParseInt(request.URL.Query().Get(constant.RequestParamBarberID), 10, 64)
	if err != nil {
		response.WithError(writer, failure.BadRequestFromString("barber_id must be a number"))

		return
	}

	date := request.URL.Query().Get(constant.RequestParamDate)
	if date == constant.Empty {
		response.WithError(writer, failure.BadRequestFromString("date is required"))

		return
	}

	slots := handler.store.DaySlots(barberID, date)

	records := make([]slotsDto.SlotRecord, 0, len(slots))
	for _, slot := range slots {
		records = append(records, slotsDto.SlotRecord{
			Time:          slot.Time,
			IsBooked:      slot.Booked,
			AppointmentID: slot.AppointmentID,
			ClientName:    slot.ClientName,
			ServiceType:   slot.ServiceType,
		})
	}

	// Availability must never be cached by intermediaries.
	writer.Header().Set(constant.RequestHeaderCacheControl, constant.CacheControlOff)
	writer.Header().Set(constant.RequestHeaderPragma, constant.PragmaNoCache)

	response.WithJSON(writer, http.StatusOK, slotsDto.SlotsResponse{Slots: records})
}

// conflictBody is the 409 payload, carrying the offending appointment id in
// the debug field exactly as the production API does.
type conflictBody struct {
	Error string                    `json:"error"`
	Debug *bookingDto.ConflictDebug `json:"debug"`
}

func (handler *Handler) BookAppointment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BookAppointment")
	defer scope.End()

	req := bookingDto.BookRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	input := stub.BookingInput{
		BarberID:    req.BarberID,
		Date:        req.Date,
		Time:        req.Time,
		ServiceType: req.ServiceType,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
		Notes:       req.Notes,
	}

	if rawID, ok := ctx.Value(constant.ContextKeyUserID).(string); ok {
		if userID, err := strconv.ParseInt(rawID, 10, 64); err == nil {
			input.BookedBy = &userID
		}
	}

	handler.book(writer, scope, input)
}

func (handler *Handler) WalkInBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".WalkInBooking")
	defer scope.End()

	req := bookingDto.WalkInRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	input := stub.BookingInput{
		BarberID:    req.BarberID,
		Date:        req.Date,
		Time:        req.Time,
		ServiceType: req.ServiceType,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
	}

	if rawID, ok := ctx.Value(constant.ContextKeyUserID).(string); ok {
		if userID, err := strconv.ParseInt(rawID, 10, 64); err == nil {
			input.BookedBy = &userID
		}
	}

	handler.book(writer, scope, input)
}

func (handler *Handler) book(writer http.ResponseWriter, scope otel.Scope, input stub.BookingInput) {
	appointment, err := handler.store.Book(input)
	if err != nil {
		scope.TraceError(err)

		var conflict *stub.ConflictError
		if errors.As(err, &conflict) {
			response.WithJSON(writer, http.StatusConflict, conflictBody{
				Error: "This time slot is already booked",
				Debug: &bookingDto.ConflictDebug{AppointmentID: conflict.AppointmentID},
			})

			return
		}

		log.Error().Err(err).Msg("failed to book appointment")
		response.WithError(writer, failure.InternalError(err))

		return
	}

	scope.SetAttribute("appointment.id", appointment.ID)

	response.WithJSON(writer, http.StatusCreated, bookingDto.BookResponse{
		Message:     "Appointment booked successfully",
		Appointment: &bookingDto.AppointmentRecord{ID: appointment.ID},
	})
}

func (handler *Handler) AppointmentDetails(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AppointmentDetails")
	defer scope.End()

	barberID, err := strconv.ParseInt(request.URL.Query().Get(constant.RequestParamBarberID), 10, 64)
	if err != nil {
		response.WithError(writer, failure.BadRequestFromString("barber_id must be a number"))

		return
	}

	date := request.URL.Query().Get(constant.RequestParamDate)
	clock := request.URL.Query().Get(constant.RequestParamTime)

	appointment, found := handler.store.AppointmentAt(barberID, date, clock)
	if !found {
		response.WithJSON(writer, http.StatusOK, bookingDto.DetailsResponse{Found: false})

		return
	}

	response.WithJSON(writer, http.StatusOK, bookingDto.DetailsResponse{
		Found: true,
		Appointment: &bookingDto.AppointmentDetails{
			ID:          appointment.ID,
			ClientName:  appointment.ClientName,
			ClientEmail: appointment.ClientEmail,
			ClientPhone: appointment.ClientPhone,
			ServiceType: appointment.ServiceType,
			Date:        appointment.Date,
			Time:        appointment.Time,
		},
	})
}

func (handler *Handler) DeleteAppointment(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAppointment")
	defer scope.End()

	id, err := strconv.ParseInt(request.URL.Query().Get(constant.RequestParamID), 10, 64)
	if err != nil {
		response.WithError(writer, failure.BadRequestFromString("id must be a number"))

		return
	}

	if err = handler.store.Cancel(id); err != nil {
		scope.TraceError(err)

		if errors.Is(err, stub.ErrNotFound) {
			response.WithError(writer, failure.NotFound("appointment"))

			return
		}

		response.WithError(writer, failure.InternalError(err))

		return
	}

	response.WithMessage(writer, http.StatusOK, "Appointment deleted")
}
