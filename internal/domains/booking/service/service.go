package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"sync"
	"tonsor/config"
	"tonsor/infras/otel"
	"tonsor/internal/domains/booking/model"
	"tonsor/internal/domains/booking/model/dto"
	"tonsor/internal/domains/booking/repository"
	directoryModel "tonsor/internal/domains/directory/model"
	sessionService "tonsor/internal/domains/session/service"
	slotsModel "tonsor/internal/domains/slots/model"
	slotsService "tonsor/internal/domains/slots/service"
	"tonsor/shared/constant"
	"tonsor/shared/failure"
	"tonsor/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	defaultServiceType = "Haircut"
	walkInServiceType  = "Taglio"

	// Contact placeholders used when the session identity has no value
	// for a field. The backend requires all three.
	placeholderName  = "Web Client"
	placeholderEmail = "client@example.com"
	placeholderPhone = "3334445566"
)

// Result is what a submit attempt resolved to. A conflict is a handled
// outcome, not an error: the grid has already been refreshed and the caller
// only needs to show the message and let the user pick again.
type Result struct {
	State         model.State
	Message       string
	AppointmentID int64
	Conflict      bool
	ConflictWith  int64
}

// Controller drives the booking workflow through its states. It is safe for
// concurrent use, and slot fetches triggered by superseded selections are
// discarded instead of overwriting newer data.
type Controller interface {
	State() model.State
	Grid() slotsModel.Grid
	SelectedStaff() (directoryModel.StaffMember, bool)
	SelectedSlot() (slotsModel.Slot, bool)

	SelectStaff(staff directoryModel.StaffMember)
	SelectDate(ctx context.Context, date string) (slotsModel.Grid, error)
	RefreshSlots(ctx context.Context) (slotsModel.Grid, error)
	SelectSlot(slotID string) error
	Submit(ctx context.Context, serviceType string) (Result, error)
	SubmitWalkIn(ctx context.Context, clientName, clientPhone, serviceType string) (Result, error)
	SlotDetails(ctx context.Context, slotID string) (dto.DetailsResponse, error)
	CancelAppointment(ctx context.Context, appointmentID int64) error
	Reset()
}

type controllerImpl struct {
	repo    repository.Booking
	slots   slotsService.Slots
	session sessionService.Session
	cfg     *config.Config
	otel    otel.Otel

	mu       sync.Mutex
	state    model.State
	staff    *directoryModel.StaffMember
	date     string
	grid     slotsModel.Grid
	slotID   string
	seq      uint64
	inFlight bool
}

func New(repo repository.Booking, slots slotsService.Slots, session sessionService.Session, cfg *config.Config, otel otel.Otel) Controller {
	return &controllerImpl{
		repo:    repo,
		slots:   slots,
		session: session,
		cfg:     cfg,
		otel:    otel,
		state:   model.StateIdle,
	}
}

func (c *controllerImpl) State() model.State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

func (c *controllerImpl) Grid() slotsModel.Grid {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.grid
}

func (c *controllerImpl) SelectedStaff() (directoryModel.StaffMember, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.staff == nil {
		return directoryModel.StaffMember{}, false
	}

	return *c.staff, true
}

func (c *controllerImpl) SelectedSlot() (slotsModel.Slot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.slotID == constant.Empty {
		return slotsModel.Slot{}, false
	}

	return c.grid.Find(c.slotID)
}

// SelectStaff starts the flow over for a new staff member. Everything
// downstream of the choice is cleared immediately, and any fetch still in
// the air for the previous staff member is invalidated.
func (c *controllerImpl) SelectStaff(staff directoryModel.StaffMember) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.staff = &staff
	c.date = constant.Empty
	c.slotID = constant.Empty
	c.grid = slotsModel.Grid{}
	c.seq++
	c.state = model.StateStaffSelected
}

// SelectDate clears the previous grid before fetching the new one, so the
// caller never sees slots from one date attributed to another.
func (c *controllerImpl) SelectDate(ctx context.Context, date string) (slotsModel.Grid, error) {
	c.mu.Lock()

	if c.staff == nil {
		c.mu.Unlock()

		return slotsModel.Grid{}, failure.BadRequestFromString("select a barber before choosing a date")
	}

	c.date = date
	c.slotID = constant.Empty
	c.grid = slotsModel.Grid{}
	c.state = model.StateDateSelected
	c.mu.Unlock()

	return c.fetchGrid(ctx)
}

// RefreshSlots re-fetches the grid for the current staff member and date.
func (c *controllerImpl) RefreshSlots(ctx context.Context) (slotsModel.Grid, error) {
	c.mu.Lock()

	if c.staff == nil || c.date == constant.Empty {
		c.mu.Unlock()

		return slotsModel.Grid{}, failure.BadRequestFromString("select a barber and date first")
	}

	c.mu.Unlock()

	return c.fetchGrid(ctx)
}

// fetchGrid loads availability tagged with a sequence number. If a newer
// selection happened while the fetch was in the air, the response is stale
// and is dropped on the floor.
func (c *controllerImpl) fetchGrid(ctx context.Context) (slotsModel.Grid, error) {
	c.mu.Lock()
	staff := *c.staff
	date := c.date
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	grid, err := c.slots.DayGrid(ctx, staff, date)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		log.Debug().
			Str("date", date).
			Int64("staffID", staff.ID).
			Msg("discarding stale slot response")

		return c.grid, nil
	}

	if err != nil {
		return slotsModel.Grid{}, err
	}

	c.grid = grid

	return grid, nil
}

// SelectSlot picks a free slot from the loaded grid. Booked slots are
// rejected locally, before any request leaves the client. Privileged users
// inspect booked slots through SlotDetails instead of selecting them.
func (c *controllerImpl) SelectSlot(slotID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.staff == nil || c.date == constant.Empty {
		return failure.BadRequestFromString("select a barber and date first")
	}

	slot, ok := c.grid.Find(slotID)
	if !ok {
		return failure.NotFound(slotsModel.EntityName)
	}

	if slot.Booked {
		return failure.Conflict("this time slot is already booked")
	}

	c.slotID = slotID
	c.state = model.StateSlotSelected

	return nil
}

// Submit books the selected slot for the logged-in user. It fires at most
// one request per call no matter how the attempt ends, and a second call
// while one is in the air is rejected instead of queued.
func (c *controllerImpl) Submit(ctx context.Context, serviceType string) (result Result, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Submit")
	defer scope.End()
	defer scope.TraceIfError(err)

	if serviceType == constant.Empty {
		serviceType = defaultServiceType
	}

	c.mu.Lock()

	if err = c.submitReadyLocked(); err != nil {
		c.mu.Unlock()

		return result, err
	}

	identity, _ := c.session.CurrentIdentity()

	req := dto.BookRequest{
		BarberID:    c.staff.ID,
		ShopID:      c.staff.ShopID,
		Date:        c.date,
		Time:        c.grid.MustTime(c.slotID),
		ServiceType: serviceType,
		ClientName:  orPlaceholder(identity.Name, placeholderName),
		ClientEmail: orPlaceholder(identity.Email, placeholderEmail),
		ClientPhone: placeholderPhone,
		Notes:       "Booking made through app",
	}

	if err = validator.ValidateStruct(&req); err != nil {
		c.mu.Unlock()

		return result, err
	}

	slotID := c.slotID
	c.state = model.StateSubmitting
	c.inFlight = true
	c.mu.Unlock()

	res, bookErr := c.repo.Book(ctx, req, c.session.Token())

	return c.settle(ctx, slotID, res, bookErr)
}

// SubmitWalkIn books the selected slot on behalf of a walk-in client. Only
// privileged roles may call it, and the client contact fields are validated
// before anything is sent.
func (c *controllerImpl) SubmitWalkIn(ctx context.Context, clientName, clientPhone, serviceType string) (result Result, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SubmitWalkIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !c.session.IsPrivileged() {
		return result, failure.Forbidden("only staff can book for walk-in clients")
	}

	if serviceType == constant.Empty {
		serviceType = walkInServiceType
	}

	c.mu.Lock()

	if err = c.submitReadyLocked(); err != nil {
		c.mu.Unlock()

		return result, err
	}

	req := dto.WalkInRequest{
		BarberID:    c.staff.ID,
		Date:        c.date,
		Time:        c.grid.MustTime(c.slotID),
		ServiceType: serviceType,
		ClientName:  clientName,
		ClientPhone: clientPhone,
	}

	if err = validator.ValidateStruct(&req); err != nil {
		c.mu.Unlock()

		return result, err
	}

	slotID := c.slotID
	c.state = model.StateSubmitting
	c.inFlight = true
	c.mu.Unlock()

	res, bookErr := c.repo.BookWalkIn(ctx, req, c.session.Token())

	return c.settle(ctx, slotID, res, bookErr)
}

// submitReadyLocked checks the workflow is in a state a submit may start
// from. A failed attempt keeps its slot selection, so retrying from
// StateFailed is allowed.
func (c *controllerImpl) submitReadyLocked() error {
	if c.inFlight {
		return failure.Conflict("a booking is already being submitted")
	}

	if c.state != model.StateSlotSelected && c.state != model.StateFailed {
		return failure.BadRequestFromString("select a barber, date and time slot before booking")
	}

	if c.staff == nil || c.date == constant.Empty || c.slotID == constant.Empty {
		return failure.BadRequestFromString("select a barber, date and time slot before booking")
	}

	return nil
}

// settle resolves a finished submit attempt into the next workflow state.
func (c *controllerImpl) settle(ctx context.Context, slotID string, res dto.BookResponse, bookErr error) (Result, error) {
	c.mu.Lock()
	c.inFlight = false

	switch {
	case bookErr == nil:
		var appointmentID *int64
		if res.Appointment != nil {
			appointmentID = &res.Appointment.ID
		}

		// Optimistic flip so the grid shows the slot taken right away.
		// The re-fetch below reconciles with what the server actually
		// recorded.
		c.grid.MarkBooked(slotID, appointmentID)
		c.slotID = constant.Empty
		c.state = model.StateConfirmed
		c.mu.Unlock()

		if _, err := c.fetchGrid(ctx); err != nil {
			log.Warn().Err(err).Msg("post-booking grid refresh failed")
		}

		result := Result{
			State:   model.StateConfirmed,
			Message: res.Message,
		}
		if result.Message == constant.Empty {
			result.Message = "Appointment booked successfully"
		}

		if res.Appointment != nil {
			result.AppointmentID = res.Appointment.ID
		}

		return result, nil

	case failure.IsConflict(bookErr):
		// Someone else took the slot between fetch and submit. Clear the
		// selection, reload the grid once, and hand back a message the
		// caller can show as-is.
		c.slotID = constant.Empty
		c.state = model.StateConflictRecovery
		c.mu.Unlock()

		if _, err := c.fetchGrid(ctx); err != nil {
			log.Warn().Err(err).Msg("conflict recovery grid refresh failed")
		}

		c.mu.Lock()
		c.state = model.StateDateSelected
		c.mu.Unlock()

		result := Result{
			State:    model.StateDateSelected,
			Conflict: true,
			Message:  "This time slot was just taken. Please choose another one.",
		}
		if res.Debug != nil {
			result.ConflictWith = res.Debug.AppointmentID
			result.Message = fmt.Sprintf(
				"This time slot was just taken by appointment #%d. Please choose another one.",
				res.Debug.AppointmentID,
			)
		}

		return result, nil

	default:
		// The slot selection survives so the user can simply retry.
		c.state = model.StateFailed
		c.mu.Unlock()

		log.Error().Err(bookErr).Msg("booking submit failed")

		return Result{State: model.StateFailed}, bookErr
	}
}

// SlotDetails looks up who holds a booked slot. Staff only.
func (c *controllerImpl) SlotDetails(ctx context.Context, slotID string) (res dto.DetailsResponse, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SlotDetails")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !c.session.IsPrivileged() {
		return res, failure.Forbidden("only staff can view appointment details")
	}

	c.mu.Lock()

	if c.staff == nil || c.date == constant.Empty {
		c.mu.Unlock()

		return res, failure.BadRequestFromString("select a barber and date first")
	}

	slot, ok := c.grid.Find(slotID)
	if !ok {
		c.mu.Unlock()

		return res, failure.NotFound(slotsModel.EntityName)
	}

	staffID := c.staff.ID
	date := c.date
	c.mu.Unlock()

	res, err = c.repo.Details(ctx, staffID, date, slot.Time, c.session.Token())
	if err != nil {
		return res, fmt.Errorf("failed to load appointment details: %w", err)
	}

	return res, nil
}

// CancelAppointment deletes an appointment and reloads the grid. Staff only.
func (c *controllerImpl) CancelAppointment(ctx context.Context, appointmentID int64) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CancelAppointment")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !c.session.IsPrivileged() {
		return failure.Forbidden("only staff can cancel appointments")
	}

	if err = c.repo.Cancel(ctx, appointmentID, c.session.Token()); err != nil {
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}

	c.mu.Lock()
	hasDay := c.staff != nil && c.date != constant.Empty
	c.mu.Unlock()

	if hasDay {
		if _, refreshErr := c.fetchGrid(ctx); refreshErr != nil {
			log.Warn().Err(refreshErr).Msg("grid refresh after cancellation failed")
		}
	}

	return nil
}

// Reset returns the workflow to its initial state.
func (c *controllerImpl) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.staff = nil
	c.date = constant.Empty
	c.slotID = constant.Empty
	c.grid = slotsModel.Grid{}
	c.seq++
	c.inFlight = false
	c.state = model.StateIdle
}

func orPlaceholder(value, placeholder string) string {
	if value == constant.Empty {
		return placeholder
	}

	return value
}
