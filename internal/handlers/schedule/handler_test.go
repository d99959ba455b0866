package schedule_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tonsor/config"
	"tonsor/infras/jwt"
	"tonsor/infras/otel/mocks"
	bookingDto "tonsor/internal/domains/booking/model/dto"
	slotsDto "tonsor/internal/domains/slots/model/dto"
	"tonsor/internal/handlers/auth"
	"tonsor/internal/handlers/schedule"
	"tonsor/internal/stub"
	"tonsor/permissions"
	transportHTTP "tonsor/transport/http"
	"tonsor/transport/http/middleware"
	"tonsor/transport/http/router"
)

func newServer(t *testing.T) http.HandlerFunc {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Env = "development"
	cfg.App.Name = "tonsor-test"
	cfg.JWT.AccessSecret = "test-access-secret"
	cfg.JWT.RefreshSecret = "test-refresh-secret"
	cfg.JWT.AccessExpireMin = 60
	cfg.JWT.RefreshExpireMin = 120

	ot := mocks.NewOtel()
	jwtService := jwt.New(cfg)
	store := stub.New()

	handlers := router.DomainHandlers{
		Auth:     auth.New(store, jwtService, ot),
		Schedule: schedule.New(store, ot),
	}

	server := transportHTTP.New(
		cfg,
		router.New(handlers),
		middleware.NewAppMiddleware(ot, cfg),
		middleware.NewAuthRoleMiddleware(jwtService, ot, permissions.Get(), cfg),
	)

	return server.Adaptor()
}

func doJSON(t *testing.T, handler http.HandlerFunc, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, target, reader)
	request.Header.Set("Content-Type", "application/json")

	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	return recorder
}

func login(t *testing.T, handler http.HandlerFunc, email string) string {
	t.Helper()

	recorder := doJSON(t, handler, http.MethodPost, "/api/login", "", map[string]string{
		"email":    email,
		"password": "password",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var res struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
	require.NotEmpty(t, res.AccessToken)

	return res.AccessToken
}

func TestShopProfilesArePublic(t *testing.T) {
	handler := newServer(t)

	recorder := doJSON(t, handler, http.MethodGet, "/api/barbers-test", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var res struct {
		Barbers []struct {
			ID       int64  `json:"id"`
			ShopName string `json:"shop_name"`
		} `json:"barbers"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
	assert.NotEmpty(t, res.Barbers)
}

func TestStaffListingRequiresAuth(t *testing.T) {
	handler := newServer(t)

	recorder := doJSON(t, handler, http.MethodGet, "/api/users/role/barber", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	token := login(t, handler, "anna@example.test")
	recorder = doJSON(t, handler, http.MethodGet, "/api/users/role/barber", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var res struct {
		Users []struct {
			ID           int64  `json:"id"`
			BarberShopID *int64 `json:"barber_shop_id"`
		} `json:"users"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
	assert.NotEmpty(t, res.Users)
}

func TestAvailableSlotsRoundTrip(t *testing.T) {
	handler := newServer(t)

	recorder := doJSON(t, handler, http.MethodGet,
		"/api-route?path=available-slots&barber_id=1&date=2025-06-02", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Cache-Control"), "no-store")

	var res slotsDto.SlotsResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
	require.NotEmpty(t, res.Slots)

	for _, slot := range res.Slots {
		assert.False(t, slot.IsBooked)
	}
}

func TestBookingAndConflict(t *testing.T) {
	handler := newServer(t)

	book := bookingDto.BookRequest{
		BarberID:    1,
		Date:        "2025-06-02",
		Time:        "09:30",
		ServiceType: "Haircut",
		ClientName:  "Anna Villa",
		ClientEmail: "anna@example.test",
		ClientPhone: "3334445566",
	}

	recorder := doJSON(t, handler, http.MethodPost, "/api-route?path=book-appointment", "", book)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created bookingDto.BookResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	require.NotNil(t, created.Appointment)

	// Same slot again: 409 with the existing appointment id in the debug
	// payload.
	recorder = doJSON(t, handler, http.MethodPost, "/api-route?path=book-appointment", "", book)
	require.Equal(t, http.StatusConflict, recorder.Code)

	var conflict struct {
		Debug *bookingDto.ConflictDebug `json:"debug"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &conflict))
	require.NotNil(t, conflict.Debug)
	assert.Equal(t, created.Appointment.ID, conflict.Debug.AppointmentID)

	// The slot listing now reports the booking.
	recorder = doJSON(t, handler, http.MethodGet,
		"/api-route?path=available-slots&barber_id=1&date=2025-06-02", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var slots slotsDto.SlotsResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &slots))

	var booked bool
	for _, slot := range slots.Slots {
		if slot.Time == "09:30" {
			booked = slot.IsBooked
		}
	}

	assert.True(t, booked)
}

func TestBookingRejectsInvalidPayload(t *testing.T) {
	handler := newServer(t)

	recorder := doJSON(t, handler, http.MethodPost, "/api-route?path=book-appointment", "",
		bookingDto.BookRequest{BarberID: 1, Date: "bad-date", Time: "09:30", ServiceType: "Haircut", ClientName: "X"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestWalkInBookingIsStaffOnly(t *testing.T) {
	handler := newServer(t)

	walkIn := bookingDto.WalkInRequest{
		BarberID:    1,
		Date:        "2025-06-02",
		Time:        "10:00",
		ServiceType: "Taglio",
		ClientName:  "Paolo Verdi",
		ClientPhone: "+39 333 123 4567",
	}

	customerToken := login(t, handler, "anna@example.test")
	recorder := doJSON(t, handler, http.MethodPost, "/manager-book-appointment.php", customerToken, walkIn)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	barberToken := login(t, handler, "franco@barberia.test")
	recorder = doJSON(t, handler, http.MethodPost, "/manager-book-appointment.php", barberToken, walkIn)
	assert.Equal(t, http.StatusCreated, recorder.Code)
}

func TestDetailsAndDeleteLifecycle(t *testing.T) {
	handler := newServer(t)
	barberToken := login(t, handler, "franco@barberia.test")

	recorder := doJSON(t, handler, http.MethodPost, "/manager-book-appointment.php", barberToken,
		bookingDto.WalkInRequest{
			BarberID:    2,
			Date:        "2025-06-03",
			Time:        "11:00",
			ServiceType: "Shave",
			ClientName:  "Paolo Verdi",
			ClientPhone: "+39 333 123 4567",
		})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created bookingDto.BookResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	require.NotNil(t, created.Appointment)

	detailsURL := "/get-appointment-details?barber_id=2&date=2025-06-03&time=11:00"

	// Customers cannot inspect appointment details.
	customerToken := login(t, handler, "anna@example.test")
	recorder = doJSON(t, handler, http.MethodGet, detailsURL, customerToken, nil)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = doJSON(t, handler, http.MethodGet, detailsURL, barberToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var details bookingDto.DetailsResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &details))
	require.True(t, details.Found)
	require.NotNil(t, details.Appointment)
	assert.Equal(t, "Paolo Verdi", details.Appointment.ClientName)

	deleteURL := fmt.Sprintf("/delete-appointment.php?id=%d", created.Appointment.ID)
	recorder = doJSON(t, handler, http.MethodDelete, deleteURL, barberToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doJSON(t, handler, http.MethodGet, detailsURL, barberToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &details))
	assert.False(t, details.Found)
}
