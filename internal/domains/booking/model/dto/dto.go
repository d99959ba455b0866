package dto

type BookRequest struct {
	BarberID    int64  `json:"barber_id" validate:"required"`
	ShopID      int64  `json:"shop_id,omitempty"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"time" validate:"required,datetime=15:04"`
	ServiceType string `json:"service_type" validate:"required"`
	ClientName  string `json:"client_name" validate:"required"`
	ClientEmail string `json:"client_email" validate:"omitempty,email"`
	ClientPhone string `json:"client_phone" validate:"omitempty,phone"`
	Notes       string `json:"notes,omitempty"`
}

// WalkInRequest is the privileged variant used when staff books on behalf
// of a client standing in the shop. The client's name and phone are the
// only contact details collected.
type WalkInRequest struct {
	BarberID    int64  `json:"barber_id" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"time" validate:"required,datetime=15:04"`
	ServiceType string `json:"service_type" validate:"required"`
	ClientName  string `json:"client_name" validate:"required"`
	ClientPhone string `json:"client_phone" validate:"required,phone"`
}

type AppointmentRecord struct {
	ID int64 `json:"id"`
}

// ConflictDebug is the extra payload the backend attaches to a 409 so the
// client can name the appointment already holding the slot.
type ConflictDebug struct {
	AppointmentID int64 `json:"appointment_id"`
}

type BookResponse struct {
	Message     string             `json:"message,omitempty"`
	Appointment *AppointmentRecord `json:"appointment,omitempty"`
	Debug       *ConflictDebug     `json:"debug,omitempty"`
}

type AppointmentDetails struct {
	ID          int64  `json:"id"`
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email,omitempty"`
	ClientPhone string `json:"client_phone,omitempty"`
	ServiceType string `json:"service_type"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

type DetailsResponse struct {
	Found       bool                `json:"found"`
	Appointment *AppointmentDetails `json:"appointment,omitempty"`
}
