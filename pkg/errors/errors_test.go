package errors_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/haierkeys/markdown-format-service/internal/middleware"
	"github.com/haierkeys/markdown-format-service/pkg/code"
	apperrors "github.com/haierkeys/markdown-format-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

func errorResponseFor(t *testing.T, err error) *apperrors.AppError {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Set(middleware.TraceIDKey, "trace-123")

	apperrors.ErrorResponse(c, err)

	var out apperrors.AppError
	if uErr := json.Unmarshal(w.Body.Bytes(), &out); uErr != nil {
		t.Fatalf("unmarshal response: %v", uErr)
	}
	return &out
}

func TestErrorResponseCodeError(t *testing.T) {
	out := errorResponseFor(t, code.ErrorHistoryNotFound.WithDetails("id=42"))

	if out.Code != code.ErrorHistoryNotFound.Code() {
		t.Fatalf("code = %d, want %d", out.Code, code.ErrorHistoryNotFound.Code())
	}
	if out.TraceID != "trace-123" {
		t.Fatalf("traceId = %q, want trace-123", out.TraceID)
	}
	if len(out.Details) != 1 || out.Details[0] != "id=42" {
		t.Fatalf("details = %v, want [id=42]", out.Details)
	}
}

func TestErrorResponseAppError(t *testing.T) {
	in := apperrors.NewAppError(code.ErrorExportWordFail, errors.New("boom"))
	out := errorResponseFor(t, in)

	if out.Code != code.ErrorExportWordFail.Code() {
		t.Fatalf("code = %d, want %d", out.Code, code.ErrorExportWordFail.Code())
	}
	if out.TraceID != "trace-123" {
		t.Fatalf("traceId = %q, want trace-123", out.TraceID)
	}
}

func TestErrorResponseDeadline(t *testing.T) {
	out := errorResponseFor(t, context.DeadlineExceeded)

	if out.Code != code.ErrorServerTimeout.Code() {
		t.Fatalf("code = %d, want %d", out.Code, code.ErrorServerTimeout.Code())
	}
}

func TestErrorResponseUnknown(t *testing.T) {
	out := errorResponseFor(t, errors.New("boom"))

	if out.Code != code.ErrorServerInternal.Code() {
		t.Fatalf("code = %d, want %d", out.Code, code.ErrorServerInternal.Code())
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	appErr := apperrors.NewAppError(code.ErrorExportWordFail, cause)

	if !errors.Is(appErr, cause) {
		t.Fatal("errors.Is should reach the cause through Unwrap")
	}
	if appErr.Error() != code.ErrorExportWordFail.Msg() {
		t.Fatalf("Error() = %q, want %q", appErr.Error(), code.ErrorExportWordFail.Msg())
	}
}
