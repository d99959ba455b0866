package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tonsor/config"
	"tonsor/infras/jwt"
	"tonsor/infras/otel/mocks"
	sessionDto "tonsor/internal/domains/session/model/dto"
	"tonsor/internal/handlers/auth"
	"tonsor/internal/stub"
	"tonsor/shared/constant"
)

func newRouter(t *testing.T) (chi.Router, jwt.JWT) {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "test-access-secret"
	cfg.JWT.RefreshSecret = "test-refresh-secret"
	cfg.JWT.AccessExpireMin = 60
	cfg.JWT.RefreshExpireMin = 120

	jwtService := jwt.New(cfg)
	handler := auth.New(stub.New(), jwtService, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, jwtService
}

func post(t *testing.T, router chi.Router, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	request.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	return recorder
}

func TestLogin(t *testing.T) {
	router, jwtService := newRouter(t)

	t.Run("valid credentials return a token and the identity", func(t *testing.T) {
		recorder := post(t, router, "/api/login", sessionDto.LoginRequest{
			Email:    "anna@example.test",
			Password: "password",
		})
		require.Equal(t, http.StatusOK, recorder.Code)

		var res sessionDto.AuthResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
		assert.Equal(t, "Anna Villa", res.User.Name)
		assert.Equal(t, constant.RoleCustomer, res.User.Role)

		claims, err := jwtService.ValidateToken(res.AccessToken, jwt.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "anna@example.test", claims.Email)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		recorder := post(t, router, "/api/login", sessionDto.LoginRequest{
			Email:    "anna@example.test",
			Password: "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("missing email fails validation", func(t *testing.T) {
		recorder := post(t, router, "/api/login", sessionDto.LoginRequest{Password: "password"})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestRegister(t *testing.T) {
	router, _ := newRouter(t)

	payload := sessionDto.RegisterRequest{
		Name:     "Paolo Verdi",
		Email:    "paolo@example.test",
		Password: "supersecret",
	}

	recorder := post(t, router, "/api/register", payload)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var res sessionDto.AuthResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
	assert.Equal(t, constant.RoleCustomer, res.User.Role)
	assert.NotEmpty(t, res.AccessToken)

	t.Run("duplicate email is unprocessable", func(t *testing.T) {
		recorder := post(t, router, "/api/register", payload)
		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})

	t.Run("short password fails validation", func(t *testing.T) {
		recorder := post(t, router, "/api/register", sessionDto.RegisterRequest{
			Name:     "Short",
			Email:    "short@example.test",
			Password: "short",
		})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
