package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tonsor/config"
	"tonsor/infras/otel/mocks"
	directoryMocks "tonsor/internal/domains/directory/mocks"
	"tonsor/internal/domains/directory/model"
	"tonsor/internal/domains/directory/model/dto"
	"tonsor/internal/domains/directory/service"
	sessionMocks "tonsor/internal/domains/session/mocks"
	"tonsor/shared"
	"tonsor/shared/failure"
)

func newService(t *testing.T) (service.Directory, *directoryMocks.MockDirectory, *sessionMocks.MockSession) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := directoryMocks.NewMockDirectory(ctrl)
	mockSession := sessionMocks.NewMockSession(ctrl)

	svc := service.New(mockRepo, mockSession, &config.Config{}, mocks.NewOtel())

	return svc, mockRepo, mockSession
}

func shopProfile(id int64, name string, opening, closing string) dto.ShopProfileRecord {
	record := dto.ShopProfileRecord{ID: id, Name: name, ShopName: name + " Shop"}
	if opening != "" {
		record.OpeningTime = shared.Ptr(opening)
	}

	if closing != "" {
		record.ClosingTime = shared.Ptr(closing)
	}

	return record
}

func staffUser(id int64, name string, shopID int64) dto.StaffUserRecord {
	return dto.StaffUserRecord{ID: id, Name: name, BarberShopID: shared.Ptr(shopID)}
}

func TestDirectoryService_ProfileWinsIDCollision(t *testing.T) {
	ctx := context.Background()
	svc, mockRepo, mockSession := newService(t)

	mockSession.EXPECT().Token().Return("token")
	mockRepo.EXPECT().FetchShopProfiles(gomock.Any()).
		Return([]dto.ShopProfileRecord{shopProfile(5, "Shop Five", "08:00", "16:00")}, nil)
	mockRepo.EXPECT().FetchStaffUsers(gomock.Any(), "token").
		Return([]dto.StaffUserRecord{staffUser(5, "User Five", 5), staffUser(6, "User Six", 5)}, nil)

	staff, mode, err := svc.LoadAssignableStaff(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, service.ModeLive, mode)
	require.Len(t, staff, 2)

	// The colliding id keeps the profile record and its real hours.
	assert.Equal(t, model.KindShopProfile, staff[0].Kind)
	assert.Equal(t, "Shop Five", staff[0].Name)
	assert.Equal(t, 8, staff[0].StartHour)
	assert.Equal(t, 16, staff[0].EndHour)

	assert.Equal(t, model.KindStaffUser, staff[1].Kind)
	assert.Equal(t, "User Six", staff[1].Name)
}

func TestDirectoryService_FewMatchesFallBackToFullRoster(t *testing.T) {
	ctx := context.Background()
	svc, mockRepo, mockSession := newService(t)

	mockSession.EXPECT().Token().Return("token")
	mockRepo.EXPECT().FetchShopProfiles(gomock.Any()).
		Return([]dto.ShopProfileRecord{shopProfile(1, "Shop One", "", "")}, nil)
	mockRepo.EXPECT().FetchStaffUsers(gomock.Any(), "token").
		Return([]dto.StaffUserRecord{staffUser(10, "Barber Ten", 99), staffUser(11, "Barber Eleven", 99)}, nil)

	// Shop 1 has a single match, so the entire merged roster is offered.
	staff, mode, err := svc.LoadAssignableStaff(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, service.ModeLive, mode)
	assert.Len(t, staff, 3)
}

func TestDirectoryService_RosterTruncatedToThree(t *testing.T) {
	ctx := context.Background()
	svc, mockRepo, mockSession := newService(t)

	mockSession.EXPECT().Token().Return("token")
	mockRepo.EXPECT().FetchShopProfiles(gomock.Any()).Return(nil, nil)
	mockRepo.EXPECT().FetchStaffUsers(gomock.Any(), "token").
		Return([]dto.StaffUserRecord{
			staffUser(1, "A", 7),
			staffUser(2, "B", 7),
			staffUser(3, "C", 7),
			staffUser(4, "D", 7),
			staffUser(5, "E", 7),
		}, nil)

	staff, _, err := svc.LoadAssignableStaff(ctx, 7)
	require.NoError(t, err)
	require.Len(t, staff, 3)

	// Staff user hours are staggered by position in the final list.
	for i, member := range staff {
		assert.Equal(t, 9+i, member.StartHour)
		assert.Equal(t, 17+i, member.EndHour)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, member.WorkDays)
	}
}

func TestDirectoryService_AnonymousSkipsStaffListing(t *testing.T) {
	ctx := context.Background()
	svc, mockRepo, mockSession := newService(t)

	mockSession.EXPECT().Token().Return("")
	mockRepo.EXPECT().FetchShopProfiles(gomock.Any()).
		Return([]dto.ShopProfileRecord{
			shopProfile(1, "Shop One", "", ""),
			shopProfile(2, "Shop Two", "", ""),
		}, nil)

	staff, mode, err := svc.LoadAssignableStaff(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, service.ModeLive, mode)
	assert.Len(t, staff, 2)

	// Profiles without explicit times get the default window.
	assert.Equal(t, 9, staff[0].StartHour)
	assert.Equal(t, 17, staff[0].EndHour)
}

func TestDirectoryService_OneSourceFailingIsTolerated(t *testing.T) {
	ctx := context.Background()
	svc, mockRepo, mockSession := newService(t)

	mockSession.EXPECT().Token().Return("token")
	mockRepo.EXPECT().FetchShopProfiles(gomock.Any()).
		Return(nil, failure.InternalError(assert.AnError))
	mockRepo.EXPECT().FetchStaffUsers(gomock.Any(), "token").
		Return([]dto.StaffUserRecord{staffUser(1, "A", 7), staffUser(2, "B", 7)}, nil)

	staff, mode, err := svc.LoadAssignableStaff(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, service.ModeLive, mode)
	assert.Len(t, staff, 2)
}

func TestDirectoryService_DegradedMode(t *testing.T) {
	ctx := context.Background()
	svc, mockRepo, mockSession := newService(t)

	mockSession.EXPECT().Token().Return("token")
	mockRepo.EXPECT().FetchShopProfiles(gomock.Any()).
		Return(nil, failure.InternalError(assert.AnError))
	mockRepo.EXPECT().FetchStaffUsers(gomock.Any(), "token").
		Return(nil, failure.InternalError(assert.AnError))

	staff, mode, err := svc.LoadAssignableStaff(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, service.ModeDegraded, mode)
	require.Len(t, staff, 2)

	assert.Equal(t, "Mario Rossi", staff[0].Name)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, staff[0].WorkDays)
	assert.Equal(t, "Luca Bianchi", staff[1].Name)
	assert.Equal(t, 10, staff[1].StartHour)
	assert.Equal(t, 19, staff[1].EndHour)

	// Placeholders are tagged with the shop that was asked for.
	assert.Equal(t, int64(7), staff[0].ShopID)
}
