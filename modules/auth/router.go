package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jobdeskhq/jobdesk/core"
)

// Router mounts the auth endpoints.
func Router(svc *Service, resolver *Resolver) chi.Router {
	h := &handlers{svc: svc, resolver: resolver}

	r := chi.NewRouter()
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Get("/session", h.exchangeSession)
	r.Get("/me", h.me)
	r.Post("/logout", h.logout)
	return r
}

type handlers struct {
	svc      *Service
	resolver *Resolver
}

type credentialsResponse struct {
	Token string   `json:"token"`
	User  Identity `json:"user"`
}

func (h *handlers) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Role     Role   `json:"role"`
	}
	if err := core.DecodeJSON(r, &req); err != nil {
		core.Error(w, err)
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		core.Error(w, core.ErrBadRequest.WithMessage("email, password and name are required"))
		return
	}

	account, token, err := h.svc.Register(r.Context(), req.Email, req.Password, req.Name, req.Role)
	if err != nil {
		core.Error(w, httpError(err))
		return
	}

	core.JSON(w, http.StatusOK, credentialsResponse{Token: token, User: account.Identity()})
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := core.DecodeJSON(r, &req); err != nil {
		core.Error(w, err)
		return
	}

	account, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		core.Error(w, httpError(err))
		return
	}

	core.JSON(w, http.StatusOK, credentialsResponse{Token: token, User: account.Identity()})
}

func (h *handlers) exchangeSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get("X-Session-ID")
	if sessionID == "" {
		core.Error(w, core.ErrBadRequest.WithMessage("missing session id"))
		return
	}

	account, sessionToken, err := h.svc.ExchangeSession(r.Context(), sessionID)
	if err != nil {
		core.Error(w, httpError(err))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionToken,
		Path:     "/",
		Expires:  time.Now().Add(h.svc.sessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	core.JSON(w, http.StatusOK, map[string]any{
		"session_token": sessionToken,
		"user":          account.Identity(),
	})
}

func (h *handlers) me(w http.ResponseWriter, r *http.Request) {
	identity, err := h.resolver.Resolve(r.Context(), CredentialFromRequest(r))
	if err != nil {
		core.Error(w, httpError(err))
		return
	}
	core.JSON(w, http.StatusOK, identity)
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context(), CredentialFromRequest(r)); err != nil {
		core.Error(w, httpError(err))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	core.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// httpError maps auth errors onto boundary status codes.
func httpError(err error) error {
	switch {
	case errors.Is(err, ErrNotAuthenticated),
		errors.Is(err, ErrTokenMalformed),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrInvalidSession),
		errors.Is(err, ErrUnknownAccount),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrExchangeFailed):
		return core.ErrUnauthorized.WithMessage(err.Error())
	case errors.Is(err, ErrForbidden):
		return core.ErrForbidden.WithMessage(err.Error())
	case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrInvalidRole):
		return core.ErrBadRequest.WithMessage(err.Error())
	default:
		return err
	}
}

// HTTPError exposes the auth error mapping to other modules guarding their
// endpoints with the resolver.
func HTTPError(err error) error {
	return httpError(err)
}
