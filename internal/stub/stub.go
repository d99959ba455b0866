// Package stub is an in-memory barbershop backend used for local
// development and integration tests. It speaks the same endpoints and
// payloads as the production API, including its 409 conflict shape.
package stub

import (
	"fmt"
	"sync"
	"time"
	"tonsor/shared"
	"tonsor/shared/constant"
	"tonsor/shared/password"
	"tonsor/shared/timezone"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("not found")
)

// ConflictError reports a booking collision along with the appointment
// already holding the slot, mirroring the debug payload of the real API.
type ConflictError struct {
	AppointmentID int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot already booked by appointment %d", e.AppointmentID)
}

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         string
	BarberShopID *int64
}

type Shop struct {
	ID          int64
	Name        string
	ShopName    string
	OpeningTime string
	ClosingTime string
}

type Appointment struct {
	ID          int64
	BarberID    int64
	Date        string
	Time        string
	ServiceType string
	ClientName  string
	ClientEmail string
	ClientPhone string
	Notes       string
	BookedBy    *int64
	CreatedAt   time.Time
}

type BookingInput struct {
	BarberID    int64
	Date        string
	Time        string
	ServiceType string
	ClientName  string
	ClientEmail string
	ClientPhone string
	Notes       string
	BookedBy    *int64
}

// SlotInfo is one interval in a day listing, with booking details attached
// when the slot is taken.
type SlotInfo struct {
	Time          string
	Booked        bool
	AppointmentID *int64
	ClientName    *string
	ServiceType   *string
}

// Store holds the whole backend state behind one mutex. Volume is tiny, so
// contention is a non-issue.
type Store struct {
	mu                sync.RWMutex
	users             map[int64]*User
	usersByEmail      map[string]int64
	shops             []Shop
	appointments      map[int64]*Appointment
	slotIndex         map[string]int64
	nextUserID        int64
	nextAppointmentID int64
}

func slotKey(barberID int64, date, clock string) string {
	return fmt.Sprintf("%d|%s|%s", barberID, date, clock)
}

// New returns a store seeded with a few shops and staff accounts. Every
// seeded account uses "password" as its password.
func New() *Store {
	s := &Store{
		users:             map[int64]*User{},
		usersByEmail:      map[string]int64{},
		appointments:      map[int64]*Appointment{},
		slotIndex:         map[string]int64{},
		nextUserID:        1,
		nextAppointmentID: 1,
	}

	s.seed()

	return s
}

func (s *Store) seed() {
	s.shops = []Shop{
		{ID: 1, Name: "Franco Rizzo", ShopName: "Barberia Rizzo", OpeningTime: "09:00", ClosingTime: "18:00"},
		{ID: 2, Name: "Giuseppe Colombo", ShopName: "Colombo e Figli", OpeningTime: "08:30", ClosingTime: "17:00"},
		{ID: 3, Name: "Antonio Greco", ShopName: "Stile Greco", OpeningTime: "10:00", ClosingTime: "19:00"},
	}

	hash, err := password.Hash("password")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash seed password")
	}

	seedUsers := []User{
		{Name: "Franco Rizzo", Email: "franco@barberia.test", Role: constant.RoleBarber, BarberShopID: shared.Ptr(int64(1))},
		{Name: "Matteo Ferri", Email: "matteo@barberia.test", Role: constant.RoleBarber, BarberShopID: shared.Ptr(int64(1))},
		{Name: "Giuseppe Colombo", Email: "giuseppe@barberia.test", Role: constant.RoleBarber, BarberShopID: shared.Ptr(int64(2))},
		{Name: "Sara Conti", Email: "sara@barberia.test", Role: constant.RoleManager},
		{Name: "Anna Villa", Email: "anna@example.test", Role: constant.RoleCustomer},
	}

	for i := range seedUsers {
		seedUsers[i].PasswordHash = hash
		s.insertUserLocked(&seedUsers[i])
	}
}

func (s *Store) insertUserLocked(user *User) {
	user.ID = s.nextUserID
	s.nextUserID++
	s.users[user.ID] = user
	s.usersByEmail[user.Email] = user.ID
}

// Register creates a customer account.
func (s *Store) Register(name, email, plainPassword string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usersByEmail[email]; taken {
		return User{}, ErrEmailTaken
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         constant.RoleCustomer,
	}
	s.insertUserLocked(user)

	return *user, nil
}

func (s *Store) Authenticate(email, plainPassword string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByEmail[email]
	if !ok {
		return User{}, ErrInvalidCredentials
	}

	user := s.users[id]
	if err := password.Verify(plainPassword, user.PasswordHash); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return *user, nil
}

func (s *Store) UserByID(id int64) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return User{}, ErrNotFound
	}

	return *user, nil
}

func (s *Store) ShopProfiles() []Shop {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shops := make([]Shop, len(s.shops))
	copy(shops, s.shops)

	return shops
}

func (s *Store) StaffUsers() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	staff := make([]User, 0)
	for id := int64(1); id < s.nextUserID; id++ {
		if user, ok := s.users[id]; ok && user.Role == constant.RoleBarber {
			staff = append(staff, *user)
		}
	}

	return staff
}

// workingWindow resolves the slot range for a barber id. Shop ids double as
// bookable entities, using the shop's own opening hours.
func (s *Store) workingWindow(barberID int64) (int, int) {
	for _, shop := range s.shops {
		if shop.ID == barberID {
			return shared.ParseHour(shop.OpeningTime, 9), shared.ParseHour(shop.ClosingTime, 17)
		}
	}

	return 9, 17
}

// DaySlots lists every quarter-hour interval of the barber's day with
// current booking state.
func (s *Store) DaySlots(barberID int64, date string) []SlotInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start, end := s.workingWindow(barberID)

	slots := make([]SlotInfo, 0, (end-start)*constant.SlotsPerHour)
	for hour := start; hour < end; hour++ {
		for step := 0; step < constant.SlotsPerHour; step++ {
			clock := shared.FormatClock(hour, step*constant.SlotMinutes)
			info := SlotInfo{Time: clock}

			if id, booked := s.slotIndex[slotKey(barberID, date, clock)]; booked {
				appointment := s.appointments[id]
				info.Booked = true
				info.AppointmentID = &appointment.ID
				info.ClientName = &appointment.ClientName
				info.ServiceType = &appointment.ServiceType
			}

			slots = append(slots, info)
		}
	}

	return slots
}

// Book records an appointment. A taken slot yields a ConflictError naming
// the appointment that got there first.
func (s *Store) Book(input BookingInput) (Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := slotKey(input.BarberID, input.Date, input.Time)
	if existingID, taken := s.slotIndex[key]; taken {
		return Appointment{}, &ConflictError{AppointmentID: existingID}
	}

	appointment := &Appointment{
		ID:          s.nextAppointmentID,
		BarberID:    input.BarberID,
		Date:        input.Date,
		Time:        input.Time,
		ServiceType: input.ServiceType,
		ClientName:  input.ClientName,
		ClientEmail: input.ClientEmail,
		ClientPhone: input.ClientPhone,
		Notes:       input.Notes,
		BookedBy:    input.BookedBy,
		CreatedAt:   timezone.Now(),
	}
	s.nextAppointmentID++

	s.appointments[appointment.ID] = appointment
	s.slotIndex[key] = appointment.ID

	return *appointment, nil
}

func (s *Store) AppointmentAt(barberID int64, date, clock string) (Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.slotIndex[slotKey(barberID, date, clock)]
	if !ok {
		return Appointment{}, false
	}

	return *s.appointments[id], true
}

func (s *Store) Cancel(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	appointment, ok := s.appointments[id]
	if !ok {
		return ErrNotFound
	}

	delete(s.slotIndex, slotKey(appointment.BarberID, appointment.Date, appointment.Time))
	delete(s.appointments, id)

	return nil
}
