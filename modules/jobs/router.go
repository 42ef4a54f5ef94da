package jobs

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jobdeskhq/jobdesk/core"
	"github.com/jobdeskhq/jobdesk/modules/auth"
	"github.com/jobdeskhq/jobdesk/modules/billing"
)

// Router mounts the posting endpoints. Listing and fetching are public;
// everything else is recruiter-only.
func Router(svc *Service, resolver *auth.Resolver) chi.Router {
	h := &handlers{svc: svc, resolver: resolver}

	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/recruiter/my-jobs", h.listMine)
	r.Get("/{jobID}", h.get)
	r.Put("/{jobID}", h.update)
	r.Delete("/{jobID}", h.close)
	return r
}

type handlers struct {
	svc      *Service
	resolver *auth.Resolver
}

func (h *handlers) list(w http.ResponseWriter, r *http.Request) {
	filter := Filter{
		Status:   JobStatus(r.URL.Query().Get("status")),
		Location: r.URL.Query().Get("location"),
		Type:     JobType(r.URL.Query().Get("job_type")),
	}
	if skills := r.URL.Query().Get("skills"); skills != "" {
		for _, skill := range strings.Split(skills, ",") {
			if skill = strings.TrimSpace(skill); skill != "" {
				filter.Skills = append(filter.Skills, skill)
			}
		}
	}
	if raw := r.URL.Query().Get("salary_min"); raw != "" {
		salaryMin, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			core.Error(w, core.ErrBadRequest.WithMessage("salary_min must be a number"))
			return
		}
		filter.SalaryMin = salaryMin
	}

	result, err := h.svc.List(r.Context(), filter)
	if err != nil {
		core.Error(w, err)
		return
	}
	if result == nil {
		result = []Job{}
	}
	core.JSON(w, http.StatusOK, result)
}

func (h *handlers) get(w http.ResponseWriter, r *http.Request) {
	job, err := h.svc.Get(r.Context(), chi.URLParam(r, "jobID"))
	if err != nil {
		core.Error(w, httpError(err))
		return
	}
	core.JSON(w, http.StatusOK, job)
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	identity, err := h.resolver.RequireRole(r.Context(), auth.CredentialFromRequest(r), auth.RoleRecruiter)
	if err != nil {
		core.Error(w, auth.HTTPError(err))
		return
	}

	var draft Draft
	if err := core.DecodeJSON(r, &draft); err != nil {
		core.Error(w, err)
		return
	}

	job, err := h.svc.Create(r.Context(), identity.AccountID, draft)
	if err != nil {
		core.Error(w, httpError(err))
		return
	}
	core.JSON(w, http.StatusOK, job)
}

func (h *handlers) listMine(w http.ResponseWriter, r *http.Request) {
	identity, err := h.resolver.RequireRole(r.Context(), auth.CredentialFromRequest(r), auth.RoleRecruiter)
	if err != nil {
		core.Error(w, auth.HTTPError(err))
		return
	}

	result, err := h.svc.ListMine(r.Context(), identity.AccountID)
	if err != nil {
		core.Error(w, err)
		return
	}
	if result == nil {
		result = []Job{}
	}
	core.JSON(w, http.StatusOK, result)
}

func (h *handlers) update(w http.ResponseWriter, r *http.Request) {
	identity, err := h.resolver.RequireRole(r.Context(), auth.CredentialFromRequest(r), auth.RoleRecruiter)
	if err != nil {
		core.Error(w, auth.HTTPError(err))
		return
	}

	var draft Draft
	if err := core.DecodeJSON(r, &draft); err != nil {
		core.Error(w, err)
		return
	}

	if err := h.svc.Update(r.Context(), identity.AccountID, chi.URLParam(r, "jobID"), draft); err != nil {
		core.Error(w, httpError(err))
		return
	}
	core.JSON(w, http.StatusOK, map[string]string{"message": "job updated"})
}

func (h *handlers) close(w http.ResponseWriter, r *http.Request) {
	identity, err := h.resolver.RequireRole(r.Context(), auth.CredentialFromRequest(r), auth.RoleRecruiter)
	if err != nil {
		core.Error(w, auth.HTTPError(err))
		return
	}

	if err := h.svc.Close(r.Context(), identity.AccountID, chi.URLParam(r, "jobID")); err != nil {
		core.Error(w, httpError(err))
		return
	}
	core.JSON(w, http.StatusOK, map[string]string{"message": "job closed"})
}

// httpError maps posting errors onto boundary status codes. Quota gate
// failures keep their payment-required mapping.
func httpError(err error) error {
	switch {
	case errors.Is(err, ErrJobNotFound):
		return core.ErrNotFound.WithMessage(err.Error())
	case errors.Is(err, ErrNotOwner):
		return core.ErrForbidden.WithMessage(err.Error())
	case errors.Is(err, ErrInvalidJobType), errors.Is(err, ErrMissingFields):
		return core.ErrBadRequest.WithMessage(err.Error())
	default:
		return billing.HTTPError(err)
	}
}
