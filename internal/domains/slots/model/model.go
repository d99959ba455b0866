package model

const (
	EntityName = "slot"
)

// Source reports whether a grid reflects real backend state or was
// generated locally after a failed fetch.
type Source string

const (
	SourceServer    Source = "server"
	SourceGenerated Source = "generated"
)

// Slot is one bookable quarter-hour interval on a given day.
type Slot struct {
	ID            string  `json:"id"`
	Time          string  `json:"time"`
	Booked        bool    `json:"is_booked"`
	AppointmentID *int64  `json:"appointment_id,omitempty"`
	ClientName    *string `json:"client_name,omitempty"`
	ServiceType   *string `json:"service_type,omitempty"`
}

// Grid is the full slot listing for one staff member on one date.
type Grid struct {
	StaffID int64  `json:"staff_id"`
	Date    string `json:"date"`
	Source  Source `json:"source"`
	Slots   []Slot `json:"slots"`
}

// Find returns the slot with the given id.
func (g Grid) Find(slotID string) (Slot, bool) {
	for _, slot := range g.Slots {
		if slot.ID == slotID {
			return slot, true
		}
	}

	return Slot{}, false
}

// MustTime returns the clock time of a slot known to exist in the grid,
// or an empty string when it does not.
func (g Grid) MustTime(slotID string) string {
	slot, ok := g.Find(slotID)
	if !ok {
		return ""
	}

	return slot.Time
}

// MarkBooked flips one slot to booked in place. Used for the optimistic
// update right after a confirmed booking, before the grid is re-fetched.
func (g *Grid) MarkBooked(slotID string, appointmentID *int64) {
	for i := range g.Slots {
		if g.Slots[i].ID == slotID {
			g.Slots[i].Booked = true
			g.Slots[i].AppointmentID = appointmentID

			return
		}
	}
}
