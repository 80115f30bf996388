package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pairforge/pairforge/internal/api/shared"
	"github.com/pairforge/pairforge/internal/domain"
	"github.com/pairforge/pairforge/internal/generation"
	"github.com/pairforge/pairforge/internal/service"
)

// GenerateHandler handles training data generation requests.
type GenerateHandler struct {
	service         *service.GenerationService
	defaultProvider string
	temperature     float32
	logger          *slog.Logger
}

// NewGenerateHandler creates a GenerateHandler.
func NewGenerateHandler(svc *service.GenerationService, defaultProvider string, temperature float32, logger *slog.Logger) *GenerateHandler {
	return &GenerateHandler{
		service:         svc,
		defaultProvider: defaultProvider,
		temperature:     temperature,
		logger:          logger,
	}
}

// Generate handles POST /api/generate requests: it runs the pipeline and
// returns the full result as JSON.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	result, ok := h.run(w, r)
	if !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resultToResponse(result))
}

// GenerateJSONL handles POST /api/generate/jsonl requests: it runs the
// pipeline and streams the pairs as a downloadable JSONL file, one
// two-field JSON object per line.
func (h *GenerateHandler) GenerateJSONL(w http.ResponseWriter, r *http.Request) {
	result, ok := h.run(w, r)
	if !ok {
		return
	}

	filename := fmt.Sprintf("training_data_%s_%s.jsonl",
		result.CreatedAt.Format("20060102_150405"), result.ID)

	w.Header().Set("Content-Type", "application/x-ndjson; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)

	if err := generation.WriteJSONL(w, result.Pairs); err != nil {
		// Headers are already sent; all we can do is log.
		h.logger.ErrorContext(r.Context(), "failed to stream JSONL response",
			"error", err,
			"result_id", result.ID)
	}
}

// ListProviders handles GET /api/providers requests.
func (h *GenerateHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, ProvidersResponse{
		Providers: h.service.Providers(),
		Default:   h.defaultProvider,
	})
}

// run decodes and validates the request, executes the pipeline, and
// writes the error response on failure. The boolean reports whether the
// caller should proceed with the result.
func (h *GenerateHandler) run(w http.ResponseWriter, r *http.Request) (*domain.GenerationResult, bool) {
	var req GenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request format", err)
		return nil, false
	}

	if err := shared.Validate(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "validation error: "+err.Error(), err)
		return nil, false
	}

	provider := req.Provider
	if provider == "" {
		provider = h.defaultProvider
	}

	temperature := h.temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	start := time.Now()
	res, err := h.service.Generate(r.Context(), service.GenerateParams{
		SourceText:  req.Text,
		Provider:    provider,
		Model:       req.Model,
		Temperature: temperature,
	})
	if err != nil {
		status, message := mapError(err)
		shared.RespondWithError(w, r, status, message, err)
		return nil, false
	}

	h.logger.InfoContext(r.Context(), "generation request served",
		"provider", res.Provider,
		"returned", res.Returned,
		"duration", time.Since(start))

	return res, true
}
