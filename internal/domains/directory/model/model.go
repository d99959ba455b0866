package model

const (
	EntityName = "staff"
)

// RecordKind tags which upstream source a staff member came from. The two
// sources carry different fields, so downstream code switches on the kind
// instead of probing for optional fields.
type RecordKind string

const (
	KindShopProfile RecordKind = "shopProfile"
	KindStaffUser   RecordKind = "staffUser"
)

// StaffMember is the merged, display-ready view of a bookable barber.
type StaffMember struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Kind      RecordKind `json:"kind"`
	ShopID    int64      `json:"shop_id"`
	ShopName  string     `json:"shop_name,omitempty"`
	WorkDays  []int      `json:"work_days"`
	StartHour int        `json:"start_hour"`
	EndHour   int        `json:"end_hour"`
}

// WorksOn reports whether the staff member works on the given ISO weekday,
// where Monday is 1 and Sunday is 7.
func (s StaffMember) WorksOn(weekday int) bool {
	for _, day := range s.WorkDays {
		if day == weekday {
			return true
		}
	}

	return false
}
