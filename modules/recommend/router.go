package recommend

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jobdeskhq/jobdesk/core"
	"github.com/jobdeskhq/jobdesk/modules/auth"
	"github.com/jobdeskhq/jobdesk/modules/jobs"
)

// Router mounts the recommendation endpoint, seekers only.
func Router(svc *Service, resolver *auth.Resolver) chi.Router {
	h := &handlers{svc: svc, resolver: resolver}

	r := chi.NewRouter()
	r.Get("/job-recommendations", h.recommendations)
	return r
}

type handlers struct {
	svc      *Service
	resolver *auth.Resolver
}

func (h *handlers) recommendations(w http.ResponseWriter, r *http.Request) {
	identity, err := h.resolver.RequireRole(r.Context(), auth.CredentialFromRequest(r), auth.RoleSeeker)
	if err != nil {
		core.Error(w, auth.HTTPError(err))
		return
	}

	result, err := h.svc.Recommend(r.Context(), identity.AccountID)
	if err != nil {
		if errors.Is(err, ErrProfileRequired) {
			core.Error(w, core.ErrNotFound.WithMessage(err.Error()))
			return
		}
		core.Error(w, err)
		return
	}
	if result == nil {
		result = []jobs.Job{}
	}
	core.JSON(w, http.StatusOK, result)
}
