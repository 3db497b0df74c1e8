package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/pixevo/videogen-api/internal/job"
	"github.com/pixevo/videogen-api/internal/videogen"
)

// Catalog is the read-only model registry view the handlers need for
// the model listing endpoint and webhook callback addressing.
type Catalog interface {
	videogen.ModelCatalog
	ActiveModels() []videogen.ModelConfig
	ModelsByProvider(p videogen.Provider) []videogen.ModelConfig
}

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	service    *videogen.Service
	repo       job.Repository
	catalog    Catalog
	validator  *validator.Validate
	logger     *slog.Logger
	webhookURL func(provider string) string
}

// HandlerOption is a function that configures a Handlers instance.
type HandlerOption func(*Handlers)

// WithWebhookURL sets the function that produces the callback address
// handed to providers with push completion. Without it the service
// operates poll-only.
func WithWebhookURL(fn func(provider string) string) HandlerOption {
	return func(h *Handlers) {
		h.webhookURL = fn
	}
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *videogen.Service, repo job.Repository, catalog Catalog, logger *slog.Logger, opts ...HandlerOption) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handlers{
		service:    service,
		repo:       repo,
		catalog:    catalog,
		validator:  validator.New(),
		logger:     logger,
		webhookURL: func(string) string { return "" },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Health handles GET /health requests.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// ListModels handles GET /models requests. An optional provider query
// parameter narrows the listing to one provider's models.
func (h *Handlers) ListModels(w http.ResponseWriter, r *http.Request) {
	if p := r.URL.Query().Get("provider"); p != "" {
		provider := videogen.Provider(p)
		if !provider.IsValid() {
			writeError(w, http.StatusBadRequest, "unknown provider: "+p, "UNKNOWN_PROVIDER")
			return
		}
		models := make([]videogen.ModelConfig, 0)
		for _, m := range h.catalog.ModelsByProvider(provider) {
			if m.Active {
				models = append(models, m)
			}
		}
		writeJSON(w, http.StatusOK, ModelListResponse{Models: models})
		return
	}
	writeJSON(w, http.StatusOK, ModelListResponse{Models: h.catalog.ActiveModels()})
}

// CreateGeneration handles POST /generations requests. It returns 202
// once the remote job has been accepted, not once it is complete; a
// rejected request gets 422 and never allocates a record or spends
// credits.
func (h *Handlers) CreateGeneration(w http.ResponseWriter, r *http.Request) {
	var req CreateGenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode request body",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, "invalid JSON body", "INVALID_JSON")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		h.logger.Warn("request validation failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		return
	}

	genReq := videogen.GenerationRequest{
		Prompt:         req.Prompt,
		NegativePrompt: req.NegativePrompt,
		ModelID:        req.Model,
		Duration:       req.Duration,
		AspectRatio:    req.AspectRatio,
		Resolution:     req.Resolution,
		FPS:            req.FPS,
		Seed:           req.Seed,
		ImageURL:       req.ImageURL,
	}
	// The callback address depends on the provider, which the model
	// determines; an unknown model leaves it empty and is rejected by
	// the service anyway.
	if model, ok := h.catalog.Get(req.Model); ok {
		genReq.WebhookURL = h.webhookURL(string(model.Provider))
	}

	result := h.service.GenerateVideo(r.Context(), genReq)
	if !result.Success {
		writeError(w, http.StatusUnprocessableEntity, result.Error, "GENERATION_REJECTED")
		return
	}

	credits, _ := h.service.EstimateCost(req.Model, req.Duration)
	record := job.New(genReq, result, credits)
	if err := h.repo.Save(r.Context(), record); err != nil {
		h.logger.Error("failed to save generation record",
			slog.String("job_id", result.JobID),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to save generation", "RECORD_SAVE_FAILED")
		return
	}

	h.logger.Info("generation accepted",
		slog.String("record_id", record.ID),
		slog.String("job_id", record.ProviderJobID),
		slog.String("provider", string(record.Provider)),
		slog.String("model", record.ModelID),
		slog.Float64("credits", record.Credits),
	)

	writeJSON(w, http.StatusAccepted, newGenerationResponse(record))
}

// ListGenerations handles GET /generations requests.
func (h *Handlers) ListGenerations(w http.ResponseWriter, r *http.Request) {
	records, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list generation records",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to list generations", "RECORD_LIST_FAILED")
		return
	}

	resp := GenerationListResponse{Generations: make([]GenerationResponse, 0, len(records))}
	for _, record := range records {
		resp.Generations = append(resp.Generations, newGenerationResponse(record))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetGeneration handles GET /generations/{id} requests. Non-terminal
// records are refreshed from the provider before being returned;
// terminal records are served as stored since provider-side truth no
// longer changes.
func (h *Handlers) GetGeneration(w http.ResponseWriter, r *http.Request) {
	recordID := r.PathValue("id")
	if recordID == "" {
		writeError(w, http.StatusBadRequest, "generation ID is required", "MISSING_GENERATION_ID")
		return
	}

	record, err := h.repo.FindByID(r.Context(), recordID)
	if err != nil {
		if errors.Is(err, job.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "generation not found", "GENERATION_NOT_FOUND")
			return
		}
		h.logger.Error("failed to get generation record",
			slog.String("record_id", recordID),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to get generation", "RECORD_FETCH_FAILED")
		return
	}

	if !record.IsTerminal() {
		record = h.settle(w, r, record)
		if record == nil {
			return
		}
	}

	writeJSON(w, http.StatusOK, newGenerationResponse(record))
}

// CancelGeneration handles POST /generations/{id}/cancel requests.
// Cancellation is best-effort; false in the response means the
// provider refused or has no cancel endpoint, not that the job failed.
func (h *Handlers) CancelGeneration(w http.ResponseWriter, r *http.Request) {
	recordID := r.PathValue("id")
	if recordID == "" {
		writeError(w, http.StatusBadRequest, "generation ID is required", "MISSING_GENERATION_ID")
		return
	}

	record, err := h.repo.FindByID(r.Context(), recordID)
	if err != nil {
		if errors.Is(err, job.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "generation not found", "GENERATION_NOT_FOUND")
			return
		}
		h.logger.Error("failed to get generation record",
			slog.String("record_id", recordID),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to get generation", "RECORD_FETCH_FAILED")
		return
	}

	cancelled := h.service.CancelGeneration(r.Context(), record.ProviderJobID, record.Provider)
	writeJSON(w, http.StatusOK, CancelResponse{Cancelled: cancelled})
}

// Webhook handles POST /webhooks/{provider} requests. The pushed
// payload is only used to identify the job; settlement re-reads
// provider-side truth through the same status path polling uses, so
// push and poll cannot disagree.
func (h *Handlers) Webhook(w http.ResponseWriter, r *http.Request) {
	provider := videogen.Provider(r.PathValue("provider"))
	if !provider.IsValid() {
		writeError(w, http.StatusNotFound, "unknown provider", "UNKNOWN_PROVIDER")
		return
	}

	var payload webhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "INVALID_JSON")
		return
	}

	providerJobID := payload.jobID()
	if providerJobID == "" {
		writeError(w, http.StatusBadRequest, "callback carries no job ID", "MISSING_JOB_ID")
		return
	}

	record, err := h.repo.FindByProviderJobID(r.Context(), providerJobID)
	if err != nil {
		if errors.Is(err, job.ErrRecordNotFound) {
			// Unknown to us; acknowledge so the provider stops retrying.
			h.logger.Warn("callback for unknown job",
				slog.String("provider", string(provider)),
				slog.String("job_id", providerJobID),
			)
			writeJSON(w, http.StatusOK, WebhookResponse{Status: "ignored"})
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get generation", "RECORD_FETCH_FAILED")
		return
	}

	record = h.settle(w, r, record)
	if record == nil {
		return
	}

	h.logger.Info("webhook settled",
		slog.String("provider", string(provider)),
		slog.String("record_id", record.ID),
		slog.String("status", string(record.Status)),
	)

	writeJSON(w, http.StatusOK, WebhookResponse{Status: "settled"})
}

// settle refreshes a record from provider-side truth and persists the
// outcome. It writes an error response and returns nil when the update
// fails; callers must stop handling the request in that case.
func (h *Handlers) settle(w http.ResponseWriter, r *http.Request, record *job.Record) *job.Record {
	result := h.service.CheckGenerationStatus(r.Context(), record.ProviderJobID, record.Provider)

	updated, err := h.repo.Update(r.Context(), record.ID, func(rec *job.Record) {
		rec.Apply(result)
	})
	if err != nil {
		h.logger.Error("failed to update generation record",
			slog.String("record_id", record.ID),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to update generation", "RECORD_UPDATE_FAILED")
		return nil
	}
	return updated
}

// webhookPayload extracts the provider job ID from a callback body.
// Providers disagree on where the ID lives: Replicate puts it at the
// top level, PiAPI nests it under data.
type webhookPayload struct {
	ID     string `json:"id,omitempty"`
	TaskID string `json:"task_id,omitempty"`
	Data   struct {
		TaskID string `json:"task_id,omitempty"`
	} `json:"data,omitzero"`
}

// jobID returns the first job identifier present in the payload.
func (p webhookPayload) jobID() string {
	switch {
	case p.ID != "":
		return p.ID
	case p.TaskID != "":
		return p.TaskID
	default:
		return p.Data.TaskID
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeError writes an error response in the standard format.
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
