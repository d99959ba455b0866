package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tonsor/config"
	"tonsor/infras/otel/mocks"
	directoryModel "tonsor/internal/domains/directory/model"
	slotsMocks "tonsor/internal/domains/slots/mocks"
	"tonsor/internal/domains/slots/model"
	"tonsor/internal/domains/slots/model/dto"
	"tonsor/internal/domains/slots/service"
	"tonsor/shared"
	"tonsor/shared/failure"
)

// 2025-06-02 is a Monday.
const mondayDate = "2025-06-02"

var testStaff = directoryModel.StaffMember{
	ID:        1,
	Name:      "Mario Rossi",
	Kind:      directoryModel.KindStaffUser,
	ShopID:    1,
	WorkDays:  []int{1, 2, 3, 4, 5},
	StartHour: 9,
	EndHour:   11,
}

func newService(t *testing.T) (service.Slots, *slotsMocks.MockSlots) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := slotsMocks.NewMockSlots(ctrl)

	return service.New(mockRepo, &config.Config{}, mocks.NewOtel()), mockRepo
}

func TestSlotsService_GenerateEnumeratesWorkingWindow(t *testing.T) {
	svc, _ := newService(t)

	grid, err := svc.Generate(testStaff, mondayDate)
	require.NoError(t, err)

	assert.Equal(t, model.SourceGenerated, grid.Source)
	// Two working hours at quarter-hour granularity.
	require.Len(t, grid.Slots, 8)
	assert.Equal(t, "09:00", grid.Slots[0].Time)
	assert.Equal(t, "10:45", grid.Slots[7].Time)

	seen := map[string]bool{}
	for i, slot := range grid.Slots {
		assert.Equal(t, shared.SlotID(mondayDate, slot.Time), slot.ID)
		assert.False(t, slot.Booked)
		assert.False(t, seen[slot.ID], "duplicate slot id %s", slot.ID)
		seen[slot.ID] = true

		if i > 0 {
			assert.Greater(t, slot.Time, grid.Slots[i-1].Time)
		}
	}
}

func TestSlotsService_GenerateOffDayIsEmpty(t *testing.T) {
	svc, _ := newService(t)

	// 2025-06-01 is a Sunday, outside the Monday-Friday work days.
	grid, err := svc.Generate(testStaff, "2025-06-01")
	require.NoError(t, err)
	assert.Empty(t, grid.Slots)
}

func TestSlotsService_DayGridUsesServerData(t *testing.T) {
	svc, mockRepo := newService(t)

	mockRepo.EXPECT().
		FetchDay(gomock.Any(), testStaff.ID, mondayDate).
		Return(dto.SlotsResponse{Slots: []dto.SlotRecord{
			{Time: "09:15", IsBooked: true, AppointmentID: shared.Ptr(int64(42))},
			{Time: "09:00"},
		}}, nil)

	grid, err := svc.DayGrid(context.Background(), testStaff, mondayDate)
	require.NoError(t, err)

	assert.Equal(t, model.SourceServer, grid.Source)
	require.Len(t, grid.Slots, 2)
	assert.Equal(t, "09:00", grid.Slots[0].Time)
	assert.True(t, grid.Slots[1].Booked)
	require.NotNil(t, grid.Slots[1].AppointmentID)
	assert.Equal(t, int64(42), *grid.Slots[1].AppointmentID)
}

func TestSlotsService_DayGridFallsBackOnFetchError(t *testing.T) {
	svc, mockRepo := newService(t)

	mockRepo.EXPECT().
		FetchDay(gomock.Any(), testStaff.ID, mondayDate).
		Return(dto.SlotsResponse{}, failure.Timeout("the server is taking too long to respond"))

	grid, err := svc.DayGrid(context.Background(), testStaff, mondayDate)
	require.NoError(t, err)

	assert.Equal(t, model.SourceGenerated, grid.Source)
	assert.Len(t, grid.Slots, 8)
}

func TestSlotsService_EmptyServerGridIsNotAFallback(t *testing.T) {
	svc, mockRepo := newService(t)

	mockRepo.EXPECT().
		FetchDay(gomock.Any(), testStaff.ID, mondayDate).
		Return(dto.SlotsResponse{}, nil)

	// A successful but empty response means fully booked or closed, so the
	// generated grid must not paper over it.
	grid, err := svc.DayGrid(context.Background(), testStaff, mondayDate)
	require.NoError(t, err)

	assert.Equal(t, model.SourceServer, grid.Source)
	assert.Empty(t, grid.Slots)
}

func TestSlotsService_RejectsMalformedDate(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.DayGrid(context.Background(), testStaff, "06/02/2025")
	assert.Error(t, err)

	_, err = svc.Generate(testStaff, "not-a-date")
	assert.Error(t, err)
}
