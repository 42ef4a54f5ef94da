package admin

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jobdeskhq/jobdesk/core"
	"github.com/jobdeskhq/jobdesk/modules/auth"
	"github.com/jobdeskhq/jobdesk/modules/jobs"
)

// Router mounts the admin endpoints. Every route requires the admin role.
func Router(svc *Service, resolver *auth.Resolver) chi.Router {
	h := &handlers{svc: svc, resolver: resolver}

	r := chi.NewRouter()
	r.Use(h.requireAdmin)
	r.Get("/users", h.listUsers)
	r.Delete("/users/{accountID}", h.deleteUser)
	r.Get("/jobs", h.listJobs)
	r.Put("/jobs/{jobID}/approve", h.approveJob)
	r.Put("/jobs/{jobID}/reject", h.rejectJob)
	r.Get("/analytics", h.analytics)
	return r
}

type handlers struct {
	svc      *Service
	resolver *auth.Resolver
}

func (h *handlers) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.resolver.RequireRole(r.Context(), auth.CredentialFromRequest(r), auth.RoleAdmin); err != nil {
			core.Error(w, auth.HTTPError(err))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		core.Error(w, err)
		return
	}
	core.JSON(w, http.StatusOK, users)
}

func (h *handlers) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteUser(r.Context(), chi.URLParam(r, "accountID")); err != nil {
		core.Error(w, httpError(err))
		return
	}
	core.JSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

func (h *handlers) listJobs(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListJobs(r.Context(), jobs.JobStatus(r.URL.Query().Get("status")))
	if err != nil {
		core.Error(w, err)
		return
	}
	if result == nil {
		result = []jobs.Job{}
	}
	core.JSON(w, http.StatusOK, result)
}

func (h *handlers) approveJob(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ApproveJob(r.Context(), chi.URLParam(r, "jobID")); err != nil {
		core.Error(w, httpError(err))
		return
	}
	core.JSON(w, http.StatusOK, map[string]string{"message": "job approved"})
}

func (h *handlers) rejectJob(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RejectJob(r.Context(), chi.URLParam(r, "jobID")); err != nil {
		core.Error(w, httpError(err))
		return
	}
	core.JSON(w, http.StatusOK, map[string]string{"message": "job rejected"})
}

func (h *handlers) analytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.svc.GetAnalytics(r.Context())
	if err != nil {
		core.Error(w, err)
		return
	}
	core.JSON(w, http.StatusOK, analytics)
}

func httpError(err error) error {
	switch {
	case errors.Is(err, jobs.ErrJobNotFound), errors.Is(err, auth.ErrAccountNotFound):
		return core.ErrNotFound.WithMessage(err.Error())
	default:
		return err
	}
}
