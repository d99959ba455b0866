package dto

import (
	"encoding/json"
	"tonsor/internal/domains/directory/model"
	"tonsor/shared"
)

const (
	defaultOpeningHour = 9
	defaultClosingHour = 17
)

// ShopProfileRecord is a row from the public shop directory endpoint. The
// record id doubles as the shop id.
type ShopProfileRecord struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	ShopName    string  `json:"shop_name"`
	OpeningTime *string `json:"opening_time"`
	ClosingTime *string `json:"closing_time"`
	ImageURL    *string `json:"image_url"`
}

// StaffUserRecord is a row from the authenticated staff listing. These users
// belong to a shop through barber_shop_id and carry no schedule of their own.
type StaffUserRecord struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	BarberShopID *int64 `json:"barber_shop_id"`
}

// ShopProfileList accepts both a bare JSON array and the {"barbers": [...]}
// envelope, since the upstream API has shipped both shapes.
type ShopProfileList []ShopProfileRecord

func (l *ShopProfileList) UnmarshalJSON(raw []byte) error {
	var records []ShopProfileRecord
	if err := json.Unmarshal(raw, &records); err == nil {
		*l = records

		return nil
	}

	var envelope struct {
		Barbers []ShopProfileRecord `json:"barbers"`
	}

	if err := json.Unmarshal(raw, &envelope); err != nil {
		return err
	}

	*l = envelope.Barbers

	return nil
}

// StaffUserList accepts both a bare JSON array and the {"users": [...]}
// envelope.
type StaffUserList []StaffUserRecord

func (l *StaffUserList) UnmarshalJSON(raw []byte) error {
	var records []StaffUserRecord
	if err := json.Unmarshal(raw, &records); err == nil {
		*l = records

		return nil
	}

	var envelope struct {
		Users []StaffUserRecord `json:"users"`
	}

	if err := json.Unmarshal(raw, &envelope); err != nil {
		return err
	}

	*l = envelope.Users

	return nil
}

func (r ShopProfileRecord) ToStaffMember() model.StaffMember {
	start := defaultOpeningHour
	end := defaultClosingHour

	if r.OpeningTime != nil {
		start = shared.ParseHour(*r.OpeningTime, defaultOpeningHour)
	}

	if r.ClosingTime != nil {
		end = shared.ParseHour(*r.ClosingTime, defaultClosingHour)
	}

	return model.StaffMember{
		ID:        r.ID,
		Name:      r.Name,
		Kind:      model.KindShopProfile,
		ShopID:    r.ID,
		ShopName:  r.ShopName,
		WorkDays:  []int{1, 2, 3, 4, 5, 6},
		StartHour: start,
		EndHour:   end,
	}
}

// ToStaffMember synthesizes working hours for a staff user. The upstream
// listing has no schedule, so hours are staggered by position to keep the
// demo grid from looking identical for every barber.
func (r StaffUserRecord) ToStaffMember(position int) model.StaffMember {
	var shopID int64
	if r.BarberShopID != nil {
		shopID = *r.BarberShopID
	}

	return model.StaffMember{
		ID:        r.ID,
		Name:      r.Name,
		Kind:      model.KindStaffUser,
		ShopID:    shopID,
		WorkDays:  []int{1, 2, 3, 4, 5, 6},
		StartHour: defaultOpeningHour + position,
		EndHour:   defaultClosingHour + position,
	}
}
