// Package handler exposes the validation service over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"precheck/internal/validation/service"
	"precheck/pkg/platform/httputil"
	"precheck/pkg/requestcontext"
)

// Service defines the interface for validation operations.
type Service interface {
	ValidateCase(ctx context.Context, sub service.CaseSubmission) (*service.CaseResult, error)
	ValidateDefendant(ctx context.Context, sub service.DefendantSubmission) (*service.DefendantResult, error)
	ValidateDocument(ctx context.Context, sub service.DocumentSubmission) (*service.DocumentResult, error)
}

// Handler wires validation endpoints to the validation service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a validation handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts validation endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/v1/validation", func(r chi.Router) {
		r.Post("/cases", h.HandleValidateCase)
		r.Post("/defendants", h.HandleValidateDefendant)
		r.Post("/documents", h.HandleValidateDocument)
	})
}

// HandleValidateCase handles POST /v1/validation/cases. Business failures
// come back as 200 with valid=false; only malformed requests and
// infrastructure failures are error statuses.
func (h *Handler) HandleValidateCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[CaseRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.ValidateCase(ctx, req.ToSubmission())
	if err != nil {
		h.logger.ErrorContext(ctx, "case validation failed",
			"request_id", requestID,
			"client_id", requestcontext.ClientID(ctx),
			"case_id", req.Case.CaseID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	resp := FromCaseResult(result)
	h.logger.InfoContext(ctx, "case validated",
		"request_id", requestID,
		"client_id", requestcontext.ClientID(ctx),
		"case_id", resp.CaseID,
		"valid", resp.Valid,
		"defendant_count", len(resp.Defendants),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleValidateDefendant handles POST /v1/validation/defendants.
func (h *Handler) HandleValidateDefendant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SingleDefendantRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.ValidateDefendant(ctx, req.ToSubmission())
	if err != nil {
		h.logger.ErrorContext(ctx, "defendant validation failed",
			"request_id", requestID,
			"client_id", requestcontext.ClientID(ctx),
			"case_id", req.Case.CaseID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromDefendantResult(result))
}

// HandleValidateDocument handles POST /v1/validation/documents.
func (h *Handler) HandleValidateDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[DocumentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.ValidateDocument(ctx, req.ToSubmission())
	if err != nil {
		h.logger.ErrorContext(ctx, "document validation failed",
			"request_id", requestID,
			"client_id", requestcontext.ClientID(ctx),
			"document_id", req.DocumentID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	resp := FromDocumentResult(result)
	h.logger.InfoContext(ctx, "document validated",
		"request_id", requestID,
		"client_id", requestcontext.ClientID(ctx),
		"document_id", resp.DocumentID,
		"valid", resp.Valid,
		"document_category", resp.DocumentCategory,
	)
	httputil.WriteJSON(w, http.StatusOK, resp)
}
