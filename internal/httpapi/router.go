// Package httpapi exposes the application services over HTTP for the
// dashboard frontend. Identity is a header, not a token: the login
// endpoint validates the shared password, then every call names its
// operator and the services re-check authorization per request.
package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/example/commesse/internal/app"
	"github.com/example/commesse/internal/models"
	"github.com/example/commesse/internal/ports/primary"
)

// Handler bundles the primary ports behind the HTTP surface.
type Handler struct {
	jobs      primary.JobService
	dir       primary.DirectoryService
	assistant primary.AssistantService
	sync      primary.SyncService
	log       *slog.Logger
}

// NewHandler creates a Handler over the given services.
func NewHandler(jobs primary.JobService, dir primary.DirectoryService, assistant primary.AssistantService, sync primary.SyncService, log *slog.Logger) *Handler {
	return &Handler{jobs: jobs, dir: dir, assistant: assistant, sync: sync, log: log}
}

// NewRouter builds the route tree.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(h.recoverMiddleware)
	r.Use(h.loggingMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/login", h.login)

	r.Route("/v1", func(r chi.Router) {
		r.Use(h.identityMiddleware)

		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", h.listJobs)
			r.Post("/", h.createJob)
			r.Get("/{jobID}", h.getJob)
			r.Patch("/{jobID}", h.updateJob)
			r.Delete("/{jobID}", h.deleteJob)
			r.Get("/{jobID}/logs", h.jobLogs)
			r.Post("/{jobID}/take-charge", h.takeCharge)
			r.Post("/{jobID}/assign", h.assign)
			r.Post("/{jobID}/reset", h.resetJob)
			r.Post("/{jobID}/material-arrived", h.materialArrived)
		})

		r.Get("/calendar", h.calendar)

		r.Route("/operators", func(r chi.Router) {
			r.Get("/", h.listOperators)
			r.Post("/", h.createOperator)
			r.Put("/{operatorID}", h.updateOperator)
			r.Delete("/{operatorID}", h.deleteOperator)
		})

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", h.listClients)
			r.Post("/", h.createClient)
			r.Put("/{clientID}", h.updateClient)
			r.Delete("/{clientID}", h.deleteClient)
		})

		r.Post("/assistant", h.assistantCommand)

		r.Route("/sync", func(r chi.Router) {
			r.Get("/status", h.syncStatus)
			r.Post("/refresh", h.syncRefresh)
			r.Post("/init-headers", h.syncInitHeaders)
		})
	})

	return r
}

func (h *Handler) findOperator(ctx context.Context, id int) (models.Operator, error) {
	ops, err := h.dir.Operators(ctx)
	if err != nil {
		return models.Operator{}, err
	}
	for _, op := range ops {
		if op.ID == id {
			return op, nil
		}
	}
	return models.Operator{}, fmt.Errorf("%w: id %d", app.ErrOperatorNotFound, id)
}
