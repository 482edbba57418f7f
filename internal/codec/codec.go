// Package codec implements the wire encoding of requests and results: a
// flattened record with a mode discriminator on the way in, and a record
// with a type discriminator on the way out. Encoding a result and decoding
// it back yields an equal value for every field that is present.
package codec

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"fs-inspect-server/internal/errors"
	"fs-inspect-server/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Marshal encodes any value with the codec's JSON configuration.
func Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes any value with the codec's JSON configuration.
func Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// DecodeRequest decodes a wire request. Only the shape is validated here;
// mode-specific requirements are enforced at dispatch.
func DecodeRequest(data []byte) (*models.ReadRequest, error) {
	var req models.ReadRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("invalid request encoding: %w", err)
	}
	return &req, nil
}

// EncodeRequest encodes a request into its wire form.
func EncodeRequest(req *models.ReadRequest) ([]byte, error) {
	return json.Marshal(req)
}

// Result envelopes carry the type discriminator alongside the flattened
// result fields.
type lineEnvelope struct {
	Type string `json:"type"`
	models.LineResult
}

type directoryEnvelope struct {
	Type string `json:"type"`
	models.DirectoryResult
}

type searchEnvelope struct {
	Type string `json:"type"`
	models.SearchResult
}

// EncodeResult encodes a result with its type discriminator.
func EncodeResult(result models.ReadResult) ([]byte, error) {
	switch r := result.(type) {
	case *models.LineResult:
		return json.Marshal(lineEnvelope{Type: r.ResultType(), LineResult: *r})
	case *models.DirectoryResult:
		return json.Marshal(directoryEnvelope{Type: r.ResultType(), DirectoryResult: *r})
	case *models.SearchResult:
		return json.Marshal(searchEnvelope{Type: r.ResultType(), SearchResult: *r})
	default:
		return nil, fmt.Errorf("unknown result type %T", result)
	}
}

// DecodeResult decodes a wire result back into its concrete type.
func DecodeResult(data []byte) (models.ReadResult, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("invalid result encoding: %w", err)
	}

	switch probe.Type {
	case models.ResultTypeLine:
		var env lineEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, err
		}
		return &env.LineResult, nil
	case models.ResultTypeDirectory:
		var env directoryEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, err
		}
		return &env.DirectoryResult, nil
	case models.ResultTypeSearch:
		var env searchEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, err
		}
		return &env.SearchResult, nil
	default:
		return nil, fmt.Errorf("unknown result type %q", probe.Type)
	}
}

// EncodeBatchSlot encodes one slot of a batch result: the result envelope
// on success, an error record otherwise.
func EncodeBatchSlot(result models.ReadResult, errDetail *errors.Error) ([]byte, error) {
	if errDetail != nil {
		return json.Marshal(models.ErrorResponse{Error: *errors.ToErrorDetail(errDetail)})
	}
	return EncodeResult(result)
}
