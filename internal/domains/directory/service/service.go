package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"sort"
	"sync"
	"tonsor/config"
	"tonsor/infras/otel"
	"tonsor/internal/domains/directory/model"
	"tonsor/internal/domains/directory/model/dto"
	"tonsor/internal/domains/directory/repository"
	sessionService "tonsor/internal/domains/session/service"
	"tonsor/shared/constant"

	"github.com/rs/zerolog/log"
)

// Mode reports where a directory result came from. Callers surface degraded
// results differently so placeholder staff are never mistaken for live data.
type Mode string

const (
	ModeLive     Mode = "live"
	ModeDegraded Mode = "degraded"
)

// maxAssignableStaff caps how many barbers the booking flow offers.
const maxAssignableStaff = 3

type Directory interface {
	LoadAssignableStaff(ctx context.Context, shopID int64) ([]model.StaffMember, Mode, error)
}

type serviceImpl struct {
	repo    repository.Directory
	session sessionService.Session
	cfg     *config.Config
	otel    otel.Otel
}

func New(repo repository.Directory, session sessionService.Session, cfg *config.Config, otel otel.Otel) Directory {
	return &serviceImpl{
		repo:    repo,
		session: session,
		cfg:     cfg,
		otel:    otel,
	}
}

// mergedRecord keeps the raw upstream row until the final staff list is
// known, because staff user hours depend on their position in that list.
type mergedRecord struct {
	kind    model.RecordKind
	profile dto.ShopProfileRecord
	staff   dto.StaffUserRecord
}

func (m mergedRecord) id() int64 {
	if m.kind == model.KindShopProfile {
		return m.profile.ID
	}

	return m.staff.ID
}

func (m mergedRecord) matchesShop(shopID int64) bool {
	if m.kind == model.KindShopProfile {
		return m.profile.ID == shopID
	}

	return m.staff.BarberShopID != nil && *m.staff.BarberShopID == shopID
}

// LoadAssignableStaff builds the barber picker for one shop. Both upstream
// sources are fetched concurrently and either one may fail without sinking
// the other. Only when nothing usable comes back does the service fall back
// to placeholder staff, flagged as degraded.
func (s *serviceImpl) LoadAssignableStaff(ctx context.Context, shopID int64) (staff []model.StaffMember, mode Mode, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".LoadAssignableStaff")
	defer scope.End()

	var (
		wg       sync.WaitGroup
		profiles []dto.ShopProfileRecord
		users    []dto.StaffUserRecord
	)

	wg.Add(1)
	go func() {
		defer wg.Done()

		fetched, fetchErr := s.repo.FetchShopProfiles(ctx)
		if fetchErr != nil {
			log.Warn().Err(fetchErr).Msg("shop profile fetch failed")

			return
		}

		profiles = fetched
	}()

	if token := s.session.Token(); token != constant.Empty {
		wg.Add(1)
		go func() {
			defer wg.Done()

			fetched, fetchErr := s.repo.FetchStaffUsers(ctx, token)
			if fetchErr != nil {
				log.Warn().Err(fetchErr).Msg("staff user fetch failed")

				return
			}

			users = fetched
		}()
	}

	wg.Wait()

	merged := merge(profiles, users)
	if len(merged) == 0 {
		log.Warn().Int64("shopID", shopID).Msg("no staff data available, using placeholder roster")

		return placeholderStaff(shopID), ModeDegraded, nil
	}

	selected := filterByShop(merged, shopID)
	if len(selected) < 2 {
		// A shop with zero or one match gets the whole roster so the
		// picker is never near-empty.
		selected = merged
	}

	if len(selected) > maxAssignableStaff {
		selected = selected[:maxAssignableStaff]
	}

	staff = make([]model.StaffMember, 0, len(selected))
	for i, record := range selected {
		if record.kind == model.KindShopProfile {
			staff = append(staff, record.profile.ToStaffMember())

			continue
		}

		staff = append(staff, record.staff.ToStaffMember(i))
	}

	scope.SetAttribute("staff.count", len(staff))

	return staff, ModeLive, nil
}

// merge deduplicates the two sources by id. Shop profiles win collisions
// because they carry real opening hours. The result is ordered by id so the
// merge is independent of fetch completion order.
func merge(profiles []dto.ShopProfileRecord, users []dto.StaffUserRecord) []mergedRecord {
	byID := make(map[int64]mergedRecord, len(profiles)+len(users))

	for _, user := range users {
		byID[user.ID] = mergedRecord{kind: model.KindStaffUser, staff: user}
	}

	for _, profile := range profiles {
		byID[profile.ID] = mergedRecord{kind: model.KindShopProfile, profile: profile}
	}

	merged := make([]mergedRecord, 0, len(byID))
	for _, record := range byID {
		merged = append(merged, record)
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].id() < merged[j].id()
	})

	return merged
}

func filterByShop(records []mergedRecord, shopID int64) []mergedRecord {
	matched := make([]mergedRecord, 0, len(records))
	for _, record := range records {
		if record.matchesShop(shopID) {
			matched = append(matched, record)
		}
	}

	return matched
}

// placeholderStaff is the hardcoded roster shown when the directory cannot
// be loaded at all. The names are obviously fake on purpose.
func placeholderStaff(shopID int64) []model.StaffMember {
	return []model.StaffMember{
		{
			ID:        1,
			Name:      "Mario Rossi",
			Kind:      model.KindStaffUser,
			ShopID:    shopID,
			WorkDays:  []int{1, 2, 3, 4, 5},
			StartHour: 9,
			EndHour:   17,
		},
		{
			ID:        2,
			Name:      "Luca Bianchi",
			Kind:      model.KindStaffUser,
			ShopID:    shopID,
			WorkDays:  []int{1, 2, 3, 4, 5, 6},
			StartHour: 10,
			EndHour:   19,
		},
	}
}
