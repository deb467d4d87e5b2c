package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/vibecoding/vibe-backend/internal/entity"
	"github.com/vibecoding/vibe-backend/internal/pkg/formatter"
	"github.com/vibecoding/vibe-backend/internal/pkg/logger"
	"github.com/vibecoding/vibe-backend/internal/pkg/response"
	"github.com/vibecoding/vibe-backend/internal/pkg/validator"
	"go.uber.org/zap"
)

// maxBodyBytes bounds the JSON body well above any accepted prompt.
const maxBodyBytes = 1 << 20

type Handler struct {
	usecase   GenerationUsecase
	validator *validator.Validator
	formats   *formatter.Factory
}

func NewHandler(usecase GenerationUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
		formats:   formatter.NewFactory(),
	}
}

// Generate handles POST /generate - run all agents and return the merged result
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Generate")

	result, ok := h.generate(ctx, w, r)
	if !ok {
		return
	}

	response.Success(w, result)
}

// Export handles POST /generate/export?format= - run all agents and return the
// merged result as a document
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Export")

	format, err := h.validator.ValidateFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	fmtr, err := h.formats.Create(format)
	if err != nil {
		h.respondError(ctx, w, http.StatusNotImplemented, "format not implemented", err)
		return
	}

	result, ok := h.generate(ctx, w, r)
	if !ok {
		return
	}

	body, err := fmtr.Format(result)
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, "failed to format result", err)
		return
	}

	ctxzap.Info(ctx, "generation exported", zap.String("format", string(format)), zap.Int("bytes", len(body)))

	filename := fmt.Sprintf("website-%s%s", time.Now().UTC().Format("20060102-150405"), fmtr.FileExtension())
	response.Attachment(w, fmtr.ContentType(), filename, body)
}

// generate decodes and validates the body and runs the pipeline. It writes the
// error response itself and reports whether the caller should continue.
func (h *Handler) generate(ctx context.Context, w http.ResponseWriter, r *http.Request) (*entity.MergedResult, bool) {
	var req entity.GenerateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, entity.ErrInvalidBody.Error(), err)
		return nil, false
	}

	if err := h.validator.ValidateGenerate(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return nil, false
	}

	ctxzap.Info(ctx, "received generation request", zap.Int("prompt_length", len(req.Prompt)))

	result, err := h.usecase.Generate(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return nil, false
	}

	return result, true
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Int("status", status), zap.Error(err))
	response.Error(w, status, message)
}

// handleUsecaseError surfaces upstream status errors with their own status and
// message; everything else becomes a 500 carrying the error text.
func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	var upErr *entity.UpstreamStatusError
	switch {
	case errors.As(err, &upErr):
		h.respondError(ctx, w, upErr.Status, upErr.Message, err)
	case errors.Is(err, entity.ErrEmptyPrompt):
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "Generation failed: "+err.Error(), err)
	}
}
