package transport

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"fs-inspect-server/internal/codec"
	"fs-inspect-server/internal/errors"
	"fs-inspect-server/internal/inspect"
	"fs-inspect-server/internal/mcp"
	"fs-inspect-server/internal/models"
)

// maxLineBytes bounds a single newline-delimited request. Requests are
// small records; 1 MiB leaves plenty of headroom.
const maxLineBytes = 1 << 20

// StdioHandler handles JSON-RPC 2.0 communication over standard
// input/output, one request per line. Inspection methods are dispatched
// directly; MCP lifecycle methods go through the MCP processor.
type StdioHandler struct {
	service   inspect.InspectorService
	processor *mcp.Processor
	logger    *slog.Logger
}

// NewStdioHandler creates a new StdioHandler.
func NewStdioHandler(svc inspect.InspectorService, logger *slog.Logger) *StdioHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StdioHandler{
		service:   svc,
		processor: mcp.NewProcessor(svc),
		logger:    logger,
	}
}

// batchParams is the wire shape of fs_read_batch parameters.
type batchParams struct {
	Operations []json.RawMessage `json:"operations"`
}

// Start processes requests from input until EOF, writing one response per
// line to output.
func (h *StdioHandler) Start(input io.Reader, output io.Writer) error {
	h.logger.Info("stdio transport started")

	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var req models.JSONRPCRequest
		if err := codec.Unmarshal(line, &req); err != nil {
			h.writeResponse(output, models.JSONRPCResponse{
				JSONRPC: "2.0",
				ID:      nil,
				Error:   errors.ToJSONRPCError(errors.NewParseErrorDetail(err.Error())),
			})
			continue
		}

		resp := models.JSONRPCResponse{JSONRPC: "2.0", ID: req.ID}

		switch {
		case req.JSONRPC != "2.0":
			resp.Error = errors.ToJSONRPCError(errors.NewInvalidRequestDetail("jsonrpc version must be '2.0'"))
		case req.Method == "":
			resp.Error = errors.ToJSONRPCError(errors.NewInvalidRequestDetail("method not specified"))
		default:
			result, rpcErr := h.dispatch(req)
			if rpcErr != nil {
				rpcErr.Data = enrichErrorData(rpcErr.Data, req.Method)
				resp.Error = rpcErr
			} else {
				resp.Result = result
			}
		}

		h.writeResponse(output, resp)
	}

	if err := scanner.Err(); err != nil {
		h.logger.Error("stdio read error", "error", err)
		return err
	}

	h.logger.Info("stdio transport finished")
	return nil
}

// dispatch routes one request to the inspection service or the MCP
// processor.
func (h *StdioHandler) dispatch(req models.JSONRPCRequest) (interface{}, *models.JSONRPCError) {
	switch req.Method {
	case "fs_read":
		return h.handleFsRead(req.Params)
	case "fs_read_batch":
		return h.handleFsReadBatch(req.Params)
	case "initialize", "tools/list", "tools/call":
		return h.processor.ProcessRequest(req)
	default:
		return nil, errors.ToJSONRPCError(errors.NewMethodNotFoundDetail(req.Method))
	}
}

func (h *StdioHandler) handleFsRead(params json.RawMessage) (interface{}, *models.JSONRPCError) {
	readReq, err := codec.DecodeRequest(params)
	if err != nil {
		return nil, errors.ToJSONRPCError(errors.ToErrorDetail(errors.NewInvalidParams(err.Error())))
	}

	result, inspectErr := h.service.FsRead(*readReq)
	if inspectErr != nil {
		return nil, errors.ToJSONRPCError(errors.ToErrorDetail(inspectErr))
	}

	encoded, encErr := codec.EncodeResult(result)
	if encErr != nil {
		return nil, errors.ToJSONRPCError(errors.ToErrorDetail(errors.NewInternal(encErr.Error())))
	}
	return json.RawMessage(encoded), nil
}

// handleFsReadBatch decodes every operation up front: the first malformed
// operation fails the whole call. Operational failures do not; each fills
// its own result slot and the remaining operations still run.
func (h *StdioHandler) handleFsReadBatch(params json.RawMessage) (interface{}, *models.JSONRPCError) {
	var batch batchParams
	if err := codec.Unmarshal(params, &batch); err != nil {
		return nil, errors.ToJSONRPCError(errors.ToErrorDetail(errors.NewInvalidParams(err.Error())))
	}

	reqs := make([]models.ReadRequest, len(batch.Operations))
	for i, op := range batch.Operations {
		decoded, err := codec.DecodeRequest(op)
		if err != nil {
			return nil, errors.ToJSONRPCError(errors.ToErrorDetail(
				errors.NewInvalidParams(fmt.Sprintf("operation %d: %v", i, err))))
		}
		reqs[i] = *decoded
	}

	items := h.service.FsReadBatch(reqs)
	slots := make([]json.RawMessage, len(items))
	for i, item := range items {
		encoded, err := codec.EncodeBatchSlot(item.Result, item.Err)
		if err != nil {
			return nil, errors.ToJSONRPCError(errors.ToErrorDetail(errors.NewInternal(err.Error())))
		}
		slots[i] = encoded
	}
	return slots, nil
}

func (h *StdioHandler) writeResponse(output io.Writer, resp models.JSONRPCResponse) {
	encoded, err := codec.Marshal(resp)
	if err != nil {
		h.logger.Error("failed to marshal response", "id", resp.ID, "error", err)
		fallback := models.JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      resp.ID,
			Error:   errors.ToJSONRPCError(errors.ToErrorDetail(errors.NewInternal("failed to marshal response"))),
		}
		encoded, _ = codec.Marshal(fallback)
	}
	if _, err := fmt.Fprintln(output, string(encoded)); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func enrichErrorData(data *models.JSONRPCErrorData, method string) *models.JSONRPCErrorData {
	if data == nil {
		data = &models.JSONRPCErrorData{}
	}
	data.Operation = method
	return data
}
