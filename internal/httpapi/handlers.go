package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	corejob "github.com/example/commesse/internal/core/job"
	"github.com/example/commesse/internal/models"
	"github.com/example/commesse/internal/ports/primary"
)

type loginRequest struct {
	OperatorID int    `json:"operatorId"`
	Password   string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	op, err := h.dir.Authenticate(r.Context(), req.OperatorID, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, op)
}

func (h *Handler) listJobs(w http.ResponseWriter, r *http.Request) {
	actor, _ := operatorFromContext(r.Context())
	jobs, err := h.jobs.ListJobs(r.Context(), actor)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

type createJobRequest struct {
	Code              string            `json:"code"`
	Client            string            `json:"client"`
	Category          string            `json:"category"`
	Priority          int               `json:"priority"`
	RequestedDelivery string            `json:"requestedDelivery"`
	Department        models.Department `json:"department"`
	ExpectedFinish    string            `json:"expectedFinish"`
	TechnicalNotes    string            `json:"technicalNotes"`
	EstimatedHours    int               `json:"estimatedHours"`
}

func (h *Handler) createJob(w http.ResponseWriter, r *http.Request) {
	actor, _ := operatorFromContext(r.Context())
	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	job, err := h.jobs.CreateJob(r.Context(), actor, primary.CreateJobRequest{
		Code:              req.Code,
		Client:            req.Client,
		Category:          req.Category,
		Priority:          req.Priority,
		RequestedDelivery: req.RequestedDelivery,
		Department:        req.Department,
		ExpectedFinish:    req.ExpectedFinish,
		TechnicalNotes:    req.TechnicalNotes,
		EstimatedHours:    req.EstimatedHours,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

func (h *Handler) getJob(w http.ResponseWriter, r *http.Request) {
	actor, _ := operatorFromContext(r.Context())
	job, err := h.jobs.GetJob(r.Context(), actor, chi.URLParam(r, "jobID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// jobPatch is the partial-update body. Absent fields stay untouched;
// null is not distinguished from absent.
type jobPatch struct {
	Code              *string            `json:"code"`
	Client            *string            `json:"client"`
	Category          *string            `json:"category"`
	Priority          *int               `json:"priority"`
	RequestedDelivery *string            `json:"requestedDelivery"`
	AssignedOperator  *string            `json:"assignedOperator"`
	Department        *models.Department `json:"department"`
	Status            *models.Status     `json:"status"`
	TakenInCharge     *string            `json:"takenInCharge"`
	ExpectedFinish    *string            `json:"expectedFinish"`
	MissingMaterials  *string            `json:"missingMaterials"`
	TechnicalNotes    *string            `json:"technicalNotes"`
	EstimatedHours    *int               `json:"estimatedHours"`
	Completion        *models.Completion `json:"completion"`
	Locked            *bool              `json:"locked"`
}

func (p jobPatch) toUpdate() corejob.Update {
	return corejob.Update{
		Code:              p.Code,
		Client:            p.Client,
		Category:          p.Category,
		Priority:          p.Priority,
		RequestedDelivery: p.RequestedDelivery,
		AssignedOperator:  p.AssignedOperator,
		Department:        p.Department,
		Status:            p.Status,
		TakenInCharge:     p.TakenInCharge,
		ExpectedFinish:    p.ExpectedFinish,
		MissingMaterials:  p.MissingMaterials,
		TechnicalNotes:    p.TechnicalNotes,
		EstimatedHours:    p.EstimatedHours,
		Completion:        p.Completion,
		Locked:            p.Locked,
	}
}

func (h *Handler) updateJob(w http.ResponseWriter, r *http.Request) {
	actor, _ := operatorFromContext(r.Context())
	var patch jobPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	job, err := h.jobs.UpdateJob(r.Context(), actor, chi.URLParam(r, "jobID"), patch.toUpdate())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *Handler) deleteJob(w http.ResponseWriter, r *http.Request) {
	actor, _ := operatorFromContext(r.Context())
	if err := h.jobs.DeleteJob(r.Context(), actor, chi.URLParam(r, "jobID")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) jobLogs(w http.ResponseWriter, r *http.Request) {
	actor, _ := operatorFromContext(r.Context())
	logs, err := h.jobs.JobLogs(r.Context(), actor, chi.URLParam(r, "jobID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *Handler) takeCharge(w http.ResponseWriter, r *http.Request) {
	actor, _ := operatorFromContext(r.Context())
	job, err := h.jobs.TakeCharge(r.Context(), actor, chi.URLParam(r, "jobID"), primary.TakeChargeRequest{})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

type assignRequest struct {
	Operator string `json:"operator"` // empty clears the assignment
}

func (h *Handler) assign(w http.ResponseWriter, r *http.Request) {
	actor, _ := operatorFromContext(r.Context())
	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	job, err := h.jobs.Assign(r.Context(), actor, chi.URLParam(r, "jobID"), req.Operator)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *Handler) resetJob(w http.ResponseWriter, r *http.Request) {
	actor, _ := operatorFromContext(r.Context())
	job, err := h.jobs.ResetJob(r.Context(), actor, chi.URLParam(r, "jobID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *Handler) materialArrived(w http.ResponseWriter, r *http.Request) {
	actor, _ := operatorFromContext(r.Context())
	job, err := h.jobs.MaterialArrived(r.Context(), actor, chi.URLParam(r, "jobID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *Handler) calendar(w http.ResponseWriter, r *http.Request) {
	actor, _ := operatorFromContext(r.Context())
	date := time.Now()
	if q := r.URL.Query().Get("date"); q != "" {
		parsed, err := time.Parse(corejob.DateLayout, q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}
	jobs, err := h.jobs.JobsOn(r.Context(), actor, date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (h *Handler) listOperators(w http.ResponseWriter, r *http.Request) {
	ops, err := h.dir.Operators(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ops)
}

func (h *Handler) createOperator(w http.ResponseWriter, r *http.Request) {
	actor, _ := operatorFromContext(r.Context())
	var op models.Operator
	if err := json.NewDecoder(r.Body).Decode(&op); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	if err := h.dir.CreateOperator(r.Context(), actor, op); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, op)
}

func (h *Handler) updateOperator(w http.ResponseWriter, r *http.Request) {
	actor, _ := operatorFromContext(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "operatorID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "operator id must be numeric")
		return
	}
	var op models.Operator
	if err := json.NewDecoder(r.Body).Decode(&op); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	op.ID = id
	if err := h.dir.UpdateOperator(r.Context(), actor, op); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, op)
}

func (h *Handler) deleteOperator(w http.ResponseWriter, r *http.Request) {
	actor, _ := operatorFromContext(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "operatorID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "operator id must be numeric")
		return
	}
	if err := h.dir.DeleteOperator(r.Context(), actor, id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.dir.Clients(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

func (h *Handler) createClient(w http.ResponseWriter, r *http.Request) {
	actor, _ := operatorFromContext(r.Context())
	var c models.Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	created, err := h.dir.CreateClient(r.Context(), actor, c)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateClient(w http.ResponseWriter, r *http.Request) {
	actor, _ := operatorFromContext(r.Context())
	var c models.Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	c.ID = chi.URLParam(r, "clientID")
	if err := h.dir.UpdateClient(r.Context(), actor, c); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) deleteClient(w http.ResponseWriter, r *http.Request) {
	actor, _ := operatorFromContext(r.Context())
	if err := h.dir.DeleteClient(r.Context(), actor, chi.URLParam(r, "clientID")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type assistantRequest struct {
	Text string `json:"text"`
}

func (h *Handler) assistantCommand(w http.ResponseWriter, r *http.Request) {
	actor, _ := operatorFromContext(r.Context())
	var req assistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	outcome, err := h.assistant.HandleCommand(r.Context(), actor, req.Text)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (h *Handler) syncStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.sync.Status())
}

func (h *Handler) syncRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.sync.Refresh(r.Context(), false); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.sync.Status())
}

func (h *Handler) syncInitHeaders(w http.ResponseWriter, r *http.Request) {
	if err := h.sync.InitHeaders(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
