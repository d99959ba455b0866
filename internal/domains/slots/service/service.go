package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Slots=MockSlotsService

import (
	"context"
	"sort"
	"time"
	"tonsor/config"
	"tonsor/infras/otel"
	directoryModel "tonsor/internal/domains/directory/model"
	"tonsor/internal/domains/slots/model"
	"tonsor/internal/domains/slots/repository"
	"tonsor/shared"
	"tonsor/shared/constant"
	"tonsor/shared/failure"
	"tonsor/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Slots interface {
	DayGrid(ctx context.Context, staff directoryModel.StaffMember, date string) (model.Grid, error)
	Generate(staff directoryModel.StaffMember, date string) (model.Grid, error)
}

type serviceImpl struct {
	repo repository.Slots
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Slots, cfg *config.Config, otel otel.Otel) Slots {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

// DayGrid loads real availability for one staff member and one date. When
// the backend cannot be reached the grid is generated locally from the
// staff member's working hours, with every slot free, and tagged so the
// caller can tell the difference.
func (s *serviceImpl) DayGrid(ctx context.Context, staff directoryModel.StaffMember, date string) (grid model.Grid, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DayGrid")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = time.ParseInLocation(constant.DateFormat, date, timezone.GetLocation()); err != nil {
		return grid, failure.BadRequestFromString("date must be in YYYY-MM-DD format")
	}

	res, err := s.repo.FetchDay(ctx, staff.ID, date)
	if err != nil {
		log.Warn().Err(err).
			Int64("staffID", staff.ID).
			Str("date", date).
			Msg("slot fetch failed, generating local grid")

		return s.Generate(staff, date)
	}

	slots := make([]model.Slot, 0, len(res.Slots))
	for _, record := range res.Slots {
		slots = append(slots, record.ToSlot(date))
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Time < slots[j].Time
	})

	return model.Grid{
		StaffID: staff.ID,
		Date:    date,
		Source:  model.SourceServer,
		Slots:   slots,
	}, nil
}

// Generate enumerates every quarter-hour interval inside the staff member's
// working window. A date outside their work days yields an empty grid, not
// an error.
func (s *serviceImpl) Generate(staff directoryModel.StaffMember, date string) (model.Grid, error) {
	day, err := time.ParseInLocation(constant.DateFormat, date, timezone.GetLocation())
	if err != nil {
		return model.Grid{}, failure.BadRequestFromString("date must be in YYYY-MM-DD format")
	}

	grid := model.Grid{
		StaffID: staff.ID,
		Date:    date,
		Source:  model.SourceGenerated,
		Slots:   []model.Slot{},
	}

	if !staff.WorksOn(shared.WeekdayNumber(day)) {
		return grid, nil
	}

	for hour := staff.StartHour; hour < staff.EndHour; hour++ {
		for step := 0; step < constant.SlotsPerHour; step++ {
			clock := shared.FormatClock(hour, step*constant.SlotMinutes)
			grid.Slots = append(grid.Slots, model.Slot{
				ID:   shared.SlotID(date, clock),
				Time: clock,
			})
		}
	}

	return grid, nil
}
