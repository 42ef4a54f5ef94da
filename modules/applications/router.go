package applications

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jobdeskhq/jobdesk/core"
	"github.com/jobdeskhq/jobdesk/modules/auth"
	"github.com/jobdeskhq/jobdesk/modules/jobs"
)

// Router mounts the application endpoints.
func Router(svc *Service, resolver *auth.Resolver) chi.Router {
	h := &handlers{svc: svc, resolver: resolver}

	r := chi.NewRouter()
	r.Post("/", h.apply)
	r.Get("/my-applications", h.listMine)
	r.Get("/job/{jobID}", h.listForJob)
	r.Put("/{applicationID}/status", h.setStatus)
	return r
}

type handlers struct {
	svc      *Service
	resolver *auth.Resolver
}

func (h *handlers) apply(w http.ResponseWriter, r *http.Request) {
	identity, err := h.resolver.RequireRole(r.Context(), auth.CredentialFromRequest(r), auth.RoleSeeker)
	if err != nil {
		core.Error(w, auth.HTTPError(err))
		return
	}

	var req struct {
		JobID       string `json:"job_id"`
		CoverLetter string `json:"cover_letter"`
	}
	if err := core.DecodeJSON(r, &req); err != nil {
		core.Error(w, err)
		return
	}
	if req.JobID == "" {
		core.Error(w, core.ErrBadRequest.WithMessage("job id is required"))
		return
	}

	application, err := h.svc.Apply(r.Context(), identity.AccountID, req.JobID, req.CoverLetter)
	if err != nil {
		core.Error(w, httpError(err))
		return
	}
	core.JSON(w, http.StatusOK, application)
}

func (h *handlers) listMine(w http.ResponseWriter, r *http.Request) {
	identity, err := h.resolver.RequireRole(r.Context(), auth.CredentialFromRequest(r), auth.RoleSeeker)
	if err != nil {
		core.Error(w, auth.HTTPError(err))
		return
	}

	views, err := h.svc.ListMine(r.Context(), identity.AccountID)
	if err != nil {
		core.Error(w, httpError(err))
		return
	}
	core.JSON(w, http.StatusOK, views)
}

func (h *handlers) listForJob(w http.ResponseWriter, r *http.Request) {
	identity, err := h.resolver.RequireRole(r.Context(), auth.CredentialFromRequest(r), auth.RoleRecruiter)
	if err != nil {
		core.Error(w, auth.HTTPError(err))
		return
	}

	views, err := h.svc.ListForJob(r.Context(), identity.AccountID, chi.URLParam(r, "jobID"))
	if err != nil {
		core.Error(w, httpError(err))
		return
	}
	core.JSON(w, http.StatusOK, views)
}

func (h *handlers) setStatus(w http.ResponseWriter, r *http.Request) {
	identity, err := h.resolver.RequireRole(r.Context(), auth.CredentialFromRequest(r), auth.RoleRecruiter)
	if err != nil {
		core.Error(w, auth.HTTPError(err))
		return
	}

	var req struct {
		Status Status `json:"status"`
	}
	if err := core.DecodeJSON(r, &req); err != nil {
		core.Error(w, err)
		return
	}

	if err := h.svc.SetStatus(r.Context(), identity.AccountID, chi.URLParam(r, "applicationID"), req.Status); err != nil {
		core.Error(w, httpError(err))
		return
	}
	core.JSON(w, http.StatusOK, map[string]string{"message": "application status updated"})
}

func httpError(err error) error {
	switch {
	case errors.Is(err, ErrApplicationNotFound), errors.Is(err, jobs.ErrJobNotFound):
		return core.ErrNotFound.WithMessage(err.Error())
	case errors.Is(err, ErrAlreadyApplied), errors.Is(err, ErrInvalidStatus):
		return core.ErrBadRequest.WithMessage(err.Error())
	case errors.Is(err, ErrNotRecruiter):
		return core.ErrForbidden.WithMessage(err.Error())
	default:
		return err
	}
}
