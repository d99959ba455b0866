package dto

import (
	"tonsor/internal/domains/slots/model"
	"tonsor/shared"
)

// SlotRecord is one interval as the availability endpoint reports it.
type SlotRecord struct {
	Time          string  `json:"time"`
	IsBooked      bool    `json:"is_booked"`
	AppointmentID *int64  `json:"appointment_id,omitempty"`
	ClientName    *string `json:"client_name,omitempty"`
	ServiceType   *string `json:"service_type,omitempty"`
}

type SlotsResponse struct {
	Slots []SlotRecord `json:"slots"`
}

func (r SlotRecord) ToSlot(date string) model.Slot {
	return model.Slot{
		ID:            shared.SlotID(date, r.Time),
		Time:          r.Time,
		Booked:        r.IsBooked,
		AppointmentID: r.AppointmentID,
		ClientName:    r.ClientName,
		ServiceType:   r.ServiceType,
	}
}
