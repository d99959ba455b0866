package auth

import (
	"net/http"
	"strconv"
	"tonsor/infras/jwt"
	"tonsor/infras/otel"
	sessionModel "tonsor/internal/domains/session/model"
	sessionDto "tonsor/internal/domains/session/model/dto"
	"tonsor/internal/stub"
	"tonsor/shared/constant"
	"tonsor/shared/failure"
	"tonsor/shared/validator"
	"tonsor/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	store *stub.Store
	jwt   jwt.JWT
	otel  otel.Otel
}

func New(store *stub.Store, jwtService jwt.JWT, otel otel.Otel) Handler {
	return Handler{
		store: store,
		jwt:   jwtService,
		otel:  otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/api/login", handler.Login)
	router.Post("/api/register", handler.Register)
	router.Post("/api/logout", handler.Logout)
	router.Get("/api/user", handler.CurrentUser)
	router.Get("/api/test-connection", handler.TestConnection)
}

func toIdentity(user stub.User) sessionModel.Identity {
	return sessionModel.Identity{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		BarberShopID: user.BarberShopID,
	}
}

func (handler *Handler) issueToken(user stub.User) (string, error) {
	pair, err := handler.jwt.GenerateTokenPair(strconv.FormatInt(user.ID, 10), user.Email, user.Role)
	if err != nil {
		return constant.Empty, err
	}

	return pair.AccessToken, nil
}

// Login authenticates a user and hands back an access token plus the
// identity, matching the shape the mobile client was built against.
func (handler *Handler) Login(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := sessionDto.LoginRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	user, err := handler.store.Authenticate(req.Email, req.Password)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, failure.Unauthorized("invalid email or password"))

		return
	}

	token, err := handler.issueToken(user)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to issue token")

		response.WithError(writer, failure.InternalError(err))

		return
	}

	response.WithJSON(writer, http.StatusOK, sessionDto.AuthResponse{
		AccessToken: token,
		User:        toIdentity(user),
	})
}

func (handler *Handler) Register(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	req := sessionDto.RegisterRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	user, err := handler.store.Register(req.Name, req.Email, req.Password)
	if err != nil {
		scope.TraceError(err)

		if errors.Is(err, stub.ErrEmailTaken) {
			response.WithError(writer, failure.Unprocessable("email is already registered"))

			return
		}

		response.WithError(writer, failure.InternalError(err))

		return
	}

	token, err := handler.issueToken(user)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to issue token")

		response.WithError(writer, failure.InternalError(err))

		return
	}

	response.WithJSON(writer, http.StatusCreated, sessionDto.AuthResponse{
		AccessToken: token,
		User:        toIdentity(user),
	})
}

// Logout acknowledges the revocation. Tokens are stateless here, so there is
// nothing to revoke server side.
func (handler *Handler) Logout(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	response.WithMessage(writer, http.StatusOK, "Logged out")
}

// CurrentUser returns the identity behind the bearer token. The body is the
// bare identity object, not an envelope.
func (handler *Handler) CurrentUser(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CurrentUser")
	defer scope.End()

	rawID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	userID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, failure.Unauthorized("invalid token subject"))

		return
	}

	user, err := handler.store.UserByID(userID)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, failure.NotFound(sessionModel.EntityName))

		return
	}

	response.WithJSON(writer, http.StatusOK, toIdentity(user))
}

func (handler *Handler) TestConnection(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".TestConnection")
	defer scope.End()

	response.WithMessage(writer, http.StatusOK, "ok")
}
