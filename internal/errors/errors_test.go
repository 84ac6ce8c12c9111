package errors

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := NotFoundf("meal plan draft %s not found", "mp-1")

	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrCorruptDraft))
	assert.Equal(t, "meal plan draft mp-1 not found", err.Error())
}

func TestError_WrappedStillMatches(t *testing.T) {
	err := fmt.Errorf("save draft: %w", StorageFailure(io.ErrShortWrite, "write blob"))

	assert.True(t, Is(err, ErrStorageFailure))
	assert.True(t, Is(err, io.ErrShortWrite))
	assert.Equal(t, CodeStorageFailure, CodeOf(err))
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(io.EOF))
}

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeValidation, http.StatusBadRequest},
		{CodeCorruptDraft, http.StatusUnprocessableEntity},
		{CodeStorageFailure, http.StatusServiceUnavailable},
		{CodeIDGenerationFailure, http.StatusInternalServerError},
		{CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestError_WithDetailsKeepsCause(t *testing.T) {
	base := CorruptDraftf(io.ErrUnexpectedEOF, "decode draft %s", "gl-1")
	detailed := base.WithDetails(map[string]string{"key": "draft:grocery_list:gl-1"})

	assert.True(t, Is(detailed, io.ErrUnexpectedEOF))
	assert.Equal(t, map[string]string{"key": "draft:grocery_list:gl-1"}, detailed.Details)
}
