// Copyright (c) 2026 Keepsake. All rights reserved.
// Author: dev@keepsake.app

package identity

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/keepsakehq/keepsake/internal/platform/constants"
	"github.com/keepsakehq/keepsake/internal/platform/middleware"
	requestutil "github.com/keepsakehq/keepsake/internal/platform/request"
	"github.com/keepsakehq/keepsake/internal/platform/respond"
	"github.com/keepsakehq/keepsake/internal/platform/validate"
)

// # Definitions & Constructors

// TokenProvider issues access tokens for authenticated accounts.
type TokenProvider interface {
	GenerateAccessToken(userID, name, role string, timeToLive time.Duration) (string, error)
}

// Handler implements identity-related HTTP endpoints.
//
// # Scope
//
// Every session entry point lives here: registration, credential login, demo
// login, logout, and session introspection. The handler is a thin transport
// layer over [Store]; all business rules live in the store itself.
type Handler struct {
	store  *Store
	tokens TokenProvider
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(store *Store, tokens TokenProvider) *Handler {
	return &Handler{store: store, tokens: tokens}
}

// Routes returns a [chi.Router] configured with identity-specific routes.
//
// # Endpoints
//   - POST /register   : Creates a new account and activates it.
//   - POST /login      : Authenticates with email and password.
//   - POST /demo-login : Activates a seeded demo account by role.
//   - POST /logout     : Clears the active session.
//   - GET  /session    : Returns the current session state.
//   - GET  /me         : Returns the authenticated account (auth required).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/demo-login", handler.demoLogin)
	router.Post("/logout", handler.logout)
	router.Get("/session", handler.session)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.me)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type demoLoginRequest struct {
	Role string `json:"role"`
}

/*
Register handles the creation of a new account.

POST /api/v1/identity/register

Description: Validates input, enforces email uniqueness across all known
accounts, persists the new account, and activates it as the current session.

Request:
  - Body: registerRequest (Name, Email, Password, Role)

Response:
  - 201: Account and access token
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrEmailAlreadyExists: Email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 100).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		Required(FieldRole, input.Role)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.store.Register(request.Context(), RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.respondSession(writer, request, account, http.StatusCreated)
}

/*
Login authenticates an account and activates its session.

POST /api/v1/identity/login

Description: Matches the email and password against every known account,
seeded demo accounts included. Unknown email and wrong password produce the
same response.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: Account and access token
  - 401: ErrInvalidCredentials: No matching account
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.store.Login(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.respondSession(writer, request, account, http.StatusOK)
}

/*
DemoLogin activates a seeded demo account.

POST /api/v1/identity/demo-login

Description: One-click login for evaluation. The role selects which of the two
permanent demo accounts becomes the session.

Request:
  - Body: demoLoginRequest (Role: "admin" or "user")

Response:
  - 200: Account and access token
  - 400: ErrInvalidRole: Role outside the valid set
*/
func (handler *Handler) demoLogin(writer http.ResponseWriter, request *http.Request) {
	var input demoLoginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if input.Role == "" {
		respond.Error(writer, request, validate.RequiredError(FieldRole, "is required"))
		return
	}

	account, err := handler.store.LoginDemo(request.Context(), input.Role)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.respondSession(writer, request, account, http.StatusOK)
}

/*
Logout clears the active session.

POST /api/v1/identity/logout

Description: Unconditional and idempotent. Logging out with no active session
still succeeds.

Response:
  - 204: No Content: Session cleared
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if err := handler.store.Logout(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
Session reports the current session state.

GET /api/v1/identity/session

Description: Returns the active account (or null when anonymous) along with
the store's loading flag, mirroring the state a client hydrates from.

Response:
  - 200: Session snapshot
*/
func (handler *Handler) session(writer http.ResponseWriter, request *http.Request) {
	var current *Account
	if account := handler.store.CurrentAccount(); account != nil {
		sanitized := account.Sanitized()
		current = &sanitized
	}

	respond.OK(writer, map[string]any{
		FieldUser:    current,
		"is_loading": handler.store.IsLoading(),
		"last_error": handler.store.LastError(),
	})
}

/*
Me returns the authenticated account's profile.

GET /api/v1/identity/me

Description: Resolves the account from the access token's subject, hydrating
from the registry so the response reflects the persisted state.

Response:
  - 200: Account profile
  - 401: ErrUnauthorized: Missing or invalid token
  - 404: ErrNotFound: Account no longer exists
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.store.FindByID(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account.Sanitized())
}

// respondSession issues an access token for the account and writes the
// standard session payload.
func (handler *Handler) respondSession(writer http.ResponseWriter, request *http.Request, account *Account, status int) {
	token, err := handler.tokens.GenerateAccessToken(account.ID, account.Name, string(account.Role), constants.AccessTokenTTL)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, status, respond.SuccessEnvelope{
		Data: map[string]any{
			FieldUser:        account.Sanitized(),
			FieldAccessToken: token,
			FieldTokenType:   "Bearer",
			FieldExpiresIn:   int64(constants.AccessTokenTTL / time.Second),
		},
	})
}
