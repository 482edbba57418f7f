package errors

import (
	stdErrors "errors"
	"fmt"
	"io/fs"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromOSError(t *testing.T) {
	t.Run("not exist", func(t *testing.T) {
		err := FromOSError("/nope", fs.ErrNotExist)
		assert.Equal(t, KindPathNotFound, err.Kind)
		assert.Equal(t, "/nope", err.Path)
	})

	t.Run("wrapped not exist", func(t *testing.T) {
		wrapped := fmt.Errorf("stat failed: %w", fs.ErrNotExist)
		err := FromOSError("/nope", wrapped)
		assert.Equal(t, KindPathNotFound, err.Kind)
	})

	t.Run("permission denied", func(t *testing.T) {
		err := FromOSError("/locked", fs.ErrPermission)
		assert.Equal(t, KindPermissionDenied, err.Kind)
	})

	t.Run("anything else is io", func(t *testing.T) {
		cause := stdErrors.New("device not ready")
		err := FromOSError("/dev/x", cause)
		assert.Equal(t, KindIO, err.Kind)
		assert.ErrorIs(t, err, cause)
	})
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "path not found: /a", NewPathNotFound("/a").Error())
	assert.Equal(t, "permission denied: /b", NewPermissionDenied("/b").Error())
	assert.Equal(t, "invalid line range: 10 to 2", NewInvalidLineRange(10, 2).Error())
	assert.Contains(t, NewInvalidPattern("missing closing )").Error(), "missing closing )")
	assert.Contains(t, NewFileTooLarge("/big", 20971520, 10).Error(), "/big")
}

func TestToErrorDetail(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.Nil(t, ToErrorDetail(nil))
	})

	t.Run("filesystem kinds share the code", func(t *testing.T) {
		for _, e := range []*Error{
			NewPathNotFound("/a"),
			NewPermissionDenied("/a"),
			NewInvalidPath("/a", "not a file"),
			NewIOError("/a", stdErrors.New("boom")),
		} {
			detail := ToErrorDetail(e)
			assert.Equal(t, CodeFileSystemError, detail.Code)
		}
	})

	t.Run("line range detail carries original values", func(t *testing.T) {
		detail := ToErrorDetail(NewInvalidLineRange(4, -5))
		assert.Equal(t, CodeInvalidLineRange, detail.Code)
		data, ok := detail.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, 4, data["start_line"])
		assert.Equal(t, -5, data["end_line"])
	})

	t.Run("kind and path are carried in data", func(t *testing.T) {
		detail := ToErrorDetail(NewPathNotFound("/missing"))
		data, ok := detail.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "path_not_found", data["kind"])
		assert.Equal(t, "/missing", data["path"])
	})

	t.Run("underlying cause surfaces as details", func(t *testing.T) {
		detail := ToErrorDetail(NewIOError("/a", stdErrors.New("short read")))
		data := detail.Data.(map[string]interface{})
		assert.Equal(t, "short read", data["details"])
	})

	t.Run("pattern and params codes", func(t *testing.T) {
		assert.Equal(t, CodeInvalidPattern, ToErrorDetail(NewInvalidPattern("bad")).Code)
		assert.Equal(t, CodeInvalidParams, ToErrorDetail(NewInvalidParams("path is required")).Code)
		assert.Equal(t, CodeFileTooLarge, ToErrorDetail(NewFileTooLarge("/big", 1, 0)).Code)
		assert.Equal(t, CodeInternalError, ToErrorDetail(NewInternal("oops")).Code)
	})
}

func TestToJSONRPCError(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.Nil(t, ToJSONRPCError(nil))
	})

	t.Run("lifts known data fields", func(t *testing.T) {
		rpcErr := ToJSONRPCError(ToErrorDetail(NewPermissionDenied("/locked")))
		require.NotNil(t, rpcErr)
		assert.Equal(t, CodeFileSystemError, rpcErr.Code)
		require.NotNil(t, rpcErr.Data)
		assert.Equal(t, "/locked", rpcErr.Data.Path)
		assert.Equal(t, "permission_denied", rpcErr.Data.Kind)
		assert.NotEmpty(t, rpcErr.Data.Timestamp)
	})
}

func TestMapErrorToHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  *Error
		want int
	}{
		{"not found", NewPathNotFound("/a"), http.StatusNotFound},
		{"permission denied", NewPermissionDenied("/a"), http.StatusForbidden},
		{"invalid path", NewInvalidPath("/a", "is a directory"), http.StatusBadRequest},
		{"io error", NewIOError("/a", stdErrors.New("boom")), http.StatusInternalServerError},
		{"invalid line range", NewInvalidLineRange(10, 2), http.StatusBadRequest},
		{"invalid pattern", NewInvalidPattern("bad"), http.StatusBadRequest},
		{"file too large", NewFileTooLarge("/a", 1, 0), http.StatusRequestEntityTooLarge},
		{"invalid params", NewInvalidParams("path is required"), http.StatusBadRequest},
		{"internal", NewInternal("oops"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToHTTPStatus(ToErrorDetail(tc.err)))
		})
	}

	t.Run("nil detail", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, MapErrorToHTTPStatus(nil))
	})

	t.Run("method not found", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, MapErrorToHTTPStatus(NewMethodNotFoundDetail("fs_write")))
	})

	t.Run("parse error", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, MapErrorToHTTPStatus(NewParseErrorDetail("unexpected EOF")))
	})
}
