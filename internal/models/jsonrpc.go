package models

import "encoding/json"

// JSONRPCRequest represents a JSON-RPC 2.0 request object.
type JSONRPCRequest struct {
	// JSONRPC specifies the protocol version, must be "2.0".
	JSONRPC string `json:"jsonrpc"`
	// ID is a unique identifier established by the client. It can be a
	// string or a number; the server replies with the same ID.
	ID interface{} `json:"id"`
	// Method is the name of the method to be invoked.
	Method string `json:"method"`
	// Params holds the parameter values for the invocation. Parsing is
	// deferred until the method is known.
	Params json.RawMessage `json:"params"`
}

// JSONRPCErrorData is the 'data' field within a JSON-RPC error object,
// carrying application-specific error context.
type JSONRPCErrorData struct {
	// Path is the filesystem path involved in the error, if applicable.
	Path string `json:"path,omitempty"`
	// Operation is the method being performed when the error occurred.
	Operation string `json:"operation,omitempty"`
	// Kind is the error classification (path_not_found, io_error, ...).
	Kind string `json:"kind,omitempty"`
	// Timestamp records when the error occurred, RFC 3339 UTC.
	Timestamp string `json:"timestamp,omitempty"`
	// Details provides any other specifics about the error.
	Details string `json:"details,omitempty"`
}

// JSONRPCError represents a JSON-RPC error object.
type JSONRPCError struct {
	// Code indicates the error type. Predefined JSON-RPC codes are used,
	// or application-specific ones in the -32000 range.
	Code int `json:"code"`
	// Message is a short description of the error.
	Message string `json:"message"`
	// Data carries additional information about the error. Optional.
	Data *JSONRPCErrorData `json:"data,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC 2.0 response object. Exactly one
// of Result or Error is set.
type JSONRPCResponse struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      interface{}   `json:"id"`
	Result  interface{}   `json:"result,omitempty"`
	Error   *JSONRPCError `json:"error,omitempty"`
}
