package messaging

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jobdeskhq/jobdesk/core"
	"github.com/jobdeskhq/jobdesk/modules/auth"
)

// Router mounts the messaging endpoints. All of them require a signed-in
// account of any role.
func Router(svc *Service, resolver *auth.Resolver) chi.Router {
	h := &handlers{svc: svc, resolver: resolver}

	r := chi.NewRouter()
	r.Post("/", h.send)
	r.Get("/conversations", h.conversations)
	r.Get("/conversation/{otherID}", h.conversation)
	return r
}

type handlers struct {
	svc      *Service
	resolver *auth.Resolver
}

func (h *handlers) send(w http.ResponseWriter, r *http.Request) {
	identity, err := h.resolver.Resolve(r.Context(), auth.CredentialFromRequest(r))
	if err != nil {
		core.Error(w, auth.HTTPError(err))
		return
	}

	var req struct {
		ReceiverID    string `json:"receiver_id"`
		Content       string `json:"content"`
		ApplicationID string `json:"application_id"`
	}
	if err := core.DecodeJSON(r, &req); err != nil {
		core.Error(w, err)
		return
	}

	message, err := h.svc.Send(r.Context(), identity.AccountID, req.ReceiverID, req.Content, req.ApplicationID)
	if err != nil {
		core.Error(w, httpError(err))
		return
	}
	core.JSON(w, http.StatusOK, message)
}

func (h *handlers) conversation(w http.ResponseWriter, r *http.Request) {
	identity, err := h.resolver.Resolve(r.Context(), auth.CredentialFromRequest(r))
	if err != nil {
		core.Error(w, auth.HTTPError(err))
		return
	}

	messages, err := h.svc.Conversation(r.Context(), identity.AccountID, chi.URLParam(r, "otherID"))
	if err != nil {
		core.Error(w, httpError(err))
		return
	}
	if messages == nil {
		messages = []Message{}
	}
	core.JSON(w, http.StatusOK, messages)
}

func (h *handlers) conversations(w http.ResponseWriter, r *http.Request) {
	identity, err := h.resolver.Resolve(r.Context(), auth.CredentialFromRequest(r))
	if err != nil {
		core.Error(w, auth.HTTPError(err))
		return
	}

	conversations, err := h.svc.Conversations(r.Context(), identity.AccountID)
	if err != nil {
		core.Error(w, httpError(err))
		return
	}
	core.JSON(w, http.StatusOK, conversations)
}

func httpError(err error) error {
	switch {
	case errors.Is(err, ErrEmptyContent), errors.Is(err, ErrSelfMessage):
		return core.ErrBadRequest.WithMessage(err.Error())
	case errors.Is(err, ErrUnknownAccount):
		return core.ErrNotFound.WithMessage(err.Error())
	default:
		return err
	}
}
