package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"fs-inspect-server/internal/codec"
	"fs-inspect-server/internal/errors"
	"fs-inspect-server/internal/inspect"
	"fs-inspect-server/internal/models"
)

const (
	defaultReadTimeout  = 60 * time.Second
	defaultWriteTimeout = 60 * time.Second
	// Inspection requests are small records; 1 MiB is generous.
	maxRequestBytes = 1 << 20
)

// HTTPHandler serves the inspection operations over HTTP.
type HTTPHandler struct {
	service inspect.InspectorService
	logger  *slog.Logger
	server  *http.Server
}

// NewHTTPHandler creates a new HTTPHandler.
func NewHTTPHandler(svc inspect.InspectorService, logger *slog.Logger) *HTTPHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPHandler{
		service: svc,
		logger:  logger,
	}
}

// RegisterRoutes sets up the HTTP routes on mux.
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/fs_read", h.withRequestLog(h.handleFsRead))
	mux.HandleFunc("/fs_read_batch", h.withRequestLog(h.handleFsReadBatch))
	mux.HandleFunc("/health", h.handleHealth)
}

// StartServer listens on the given port and blocks until the server stops.
func (h *HTTPHandler) StartServer(port int) error {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	h.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
	}

	h.logger.Info("http transport started", "addr", h.server.Addr)
	return h.server.ListenAndServe()
}

// Shutdown gracefully stops a running server.
func (h *HTTPHandler) Shutdown(ctx context.Context) error {
	if h.server == nil {
		return nil
	}
	return h.server.Shutdown(ctx)
}

// withRequestLog assigns each request an ID and logs its outcome.
func (h *HTTPHandler) withRequestLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		start := time.Now()
		next(w, r)
		h.logger.Info("request handled",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start))
	}
}

func (h *HTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) handleFsRead(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	req, err := codec.DecodeRequest(body)
	if err != nil {
		h.writeError(w, errors.ToErrorDetail(errors.NewInvalidParams(err.Error())))
		return
	}

	result, inspectErr := h.service.FsRead(*req)
	if inspectErr != nil {
		h.writeError(w, errors.ToErrorDetail(inspectErr))
		return
	}

	encoded, encErr := codec.EncodeResult(result)
	if encErr != nil {
		h.writeError(w, errors.ToErrorDetail(errors.NewInternal(encErr.Error())))
		return
	}
	h.writeRaw(w, http.StatusOK, encoded)
}

func (h *HTTPHandler) handleFsReadBatch(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	var batch batchParams
	if err := codec.Unmarshal(body, &batch); err != nil {
		h.writeError(w, errors.ToErrorDetail(errors.NewInvalidParams(err.Error())))
		return
	}

	reqs := make([]models.ReadRequest, len(batch.Operations))
	for i, op := range batch.Operations {
		decoded, err := codec.DecodeRequest(op)
		if err != nil {
			h.writeError(w, errors.ToErrorDetail(
				errors.NewInvalidParams(fmt.Sprintf("operation %d: %v", i, err))))
			return
		}
		reqs[i] = *decoded
	}

	items := h.service.FsReadBatch(reqs)
	slots := make([]json.RawMessage, len(items))
	for i, item := range items {
		encoded, err := codec.EncodeBatchSlot(item.Result, item.Err)
		if err != nil {
			h.writeError(w, errors.ToErrorDetail(errors.NewInternal(err.Error())))
			return
		}
		slots[i] = encoded
	}
	h.writeJSON(w, http.StatusOK, slots)
}

// readBody enforces method, content type and size limits, returning the
// request body when all checks pass.
func (h *HTTPHandler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if r.Method != http.MethodPost {
		h.writeStatusError(w, http.StatusMethodNotAllowed,
			errors.NewInvalidRequestDetail(fmt.Sprintf("method %s not allowed, use POST", r.Method)))
		return nil, false
	}
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		h.writeStatusError(w, http.StatusUnsupportedMediaType,
			errors.NewInvalidRequestDetail("Content-Type must be application/json"))
		return nil, false
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeStatusError(w, http.StatusRequestEntityTooLarge,
			errors.NewInvalidRequestDetail("request body too large"))
		return nil, false
	}
	return body, true
}

func (h *HTTPHandler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	encoded, err := codec.Marshal(v)
	if err != nil {
		h.logger.Error("failed to encode response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.writeRaw(w, status, encoded)
}

func (h *HTTPHandler) writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, detail *models.ErrorDetail) {
	h.writeStatusError(w, errors.MapErrorToHTTPStatus(detail), detail)
}

func (h *HTTPHandler) writeStatusError(w http.ResponseWriter, status int, detail *models.ErrorDetail) {
	h.writeJSON(w, status, models.ErrorResponse{Error: *detail})
}
