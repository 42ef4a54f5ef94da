package profiles

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jobdeskhq/jobdesk/core"
	"github.com/jobdeskhq/jobdesk/modules/auth"
)

// Router mounts the profile endpoints. Reads are public; writes require
// the matching role.
func Router(svc *Service, resolver *auth.Resolver) chi.Router {
	h := &handlers{svc: svc, resolver: resolver}

	r := chi.NewRouter()
	r.Get("/job-seeker/{accountID}", h.getSeeker)
	r.Put("/job-seeker", h.updateSeeker)
	r.Get("/recruiter/{accountID}", h.getRecruiter)
	r.Put("/recruiter", h.updateRecruiter)
	return r
}

type handlers struct {
	svc      *Service
	resolver *auth.Resolver
}

func (h *handlers) getSeeker(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.GetSeeker(r.Context(), chi.URLParam(r, "accountID"))
	if err != nil {
		core.Error(w, httpError(err))
		return
	}
	core.JSON(w, http.StatusOK, profile)
}

func (h *handlers) updateSeeker(w http.ResponseWriter, r *http.Request) {
	identity, err := h.resolver.RequireRole(r.Context(), auth.CredentialFromRequest(r), auth.RoleSeeker)
	if err != nil {
		core.Error(w, auth.HTTPError(err))
		return
	}

	var profile SeekerProfile
	if err := core.DecodeJSON(r, &profile); err != nil {
		core.Error(w, err)
		return
	}

	if err := h.svc.UpdateSeeker(r.Context(), identity.AccountID, profile); err != nil {
		core.Error(w, httpError(err))
		return
	}
	core.JSON(w, http.StatusOK, map[string]string{"message": "profile updated"})
}

func (h *handlers) getRecruiter(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.GetRecruiter(r.Context(), chi.URLParam(r, "accountID"))
	if err != nil {
		core.Error(w, httpError(err))
		return
	}
	core.JSON(w, http.StatusOK, profile)
}

func (h *handlers) updateRecruiter(w http.ResponseWriter, r *http.Request) {
	identity, err := h.resolver.RequireRole(r.Context(), auth.CredentialFromRequest(r), auth.RoleRecruiter)
	if err != nil {
		core.Error(w, auth.HTTPError(err))
		return
	}

	var profile RecruiterProfile
	if err := core.DecodeJSON(r, &profile); err != nil {
		core.Error(w, err)
		return
	}

	if err := h.svc.UpdateRecruiter(r.Context(), identity.AccountID, profile); err != nil {
		core.Error(w, httpError(err))
		return
	}
	core.JSON(w, http.StatusOK, map[string]string{"message": "profile updated"})
}

func httpError(err error) error {
	if errors.Is(err, ErrProfileNotFound) {
		return core.ErrNotFound.WithMessage(err.Error())
	}
	return err
}
