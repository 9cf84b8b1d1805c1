package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Constructors(t *testing.T) {
	notFound := NotFound("Event not found")
	assert.Equal(t, http.StatusNotFound, notFound.Status)
	assert.Equal(t, CodeNotFound, notFound.Code)
	assert.Equal(t, "Event not found", notFound.Message)

	badReq := BadRequest("Invalid status update")
	assert.Equal(t, http.StatusBadRequest, badReq.Status)
	assert.Equal(t, CodeInvalidInput, badReq.Code)

	unauth := Unauthorized("Unauthorized")
	assert.Equal(t, http.StatusUnauthorized, unauth.Status)
	assert.Equal(t, CodeUnauthorized, unauth.Code)

	forbidden := Forbidden("Not authorized")
	assert.Equal(t, http.StatusForbidden, forbidden.Status)
	assert.Equal(t, CodeForbidden, forbidden.Code)

	conflict := Conflict("User already exists")
	assert.Equal(t, http.StatusConflict, conflict.Status)
	assert.Equal(t, CodeConflict, conflict.Code)

	tooMany := TooManyRequests("Please wait before requesting another code")
	assert.Equal(t, http.StatusTooManyRequests, tooMany.Status)
	assert.Equal(t, CodeRateLimited, tooMany.Code)

	internal := InternalError(stderrors.New("db down"))
	assert.Equal(t, http.StatusInternalServerError, internal.Status)
	assert.Equal(t, CodeInternalError, internal.Code)
}

func TestAppError_Unwrap(t *testing.T) {
	assert.ErrorIs(t, NotFound("missing"), ErrNotFound)
	assert.ErrorIs(t, Conflict("dup"), ErrAlreadyExists)
	assert.ErrorIs(t, TooManyRequests("slow down"), ErrRateLimited)
	assert.ErrorIs(t, Forbidden("no"), ErrForbidden)

	cause := stderrors.New("socket closed")
	assert.ErrorIs(t, InternalError(cause), cause)
}

func TestAppError_Error(t *testing.T) {
	err := NewAppError(http.StatusBadRequest, CodeInvalidInput, "bad", ErrInvalidInput)
	assert.Equal(t, ErrInvalidInput.Error(), err.Error())

	bare := &AppError{Status: http.StatusBadRequest, Code: CodeInvalidInput, Message: "bad"}
	assert.Equal(t, "bad", bare.Error())
}
