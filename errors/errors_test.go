package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

var errTest = &ErrorResponse{Code: ErrorCode("T-001"), Details: "test failure"}

func TestErrorResponseJSON(t *testing.T) {
	require.Equal(t, `{"code":"T-001","details":"test failure"}`, errTest.Error())
}

func TestCreateErrorResponseFromError(t *testing.T) {
	require.Nil(t, CreateErrorResponseFromError(nil))
	require.Same(t, errTest, CreateErrorResponseFromError(errTest))

	wrapped := CreateErrorResponseFromError(fmt.Errorf("sign: %w", errTest))
	resp, ok := wrapped.(*ErrorResponse)
	require.True(t, ok)
	require.Equal(t, ErrorCode("T-001"), resp.Code)
	require.Contains(t, resp.Details, "sign: ")

	generic := CreateErrorResponseFromError(errors.New("boom")).(*ErrorResponse)
	require.Equal(t, GenericErrorCode, generic.Code)
	require.Equal(t, "boom", generic.Details)
}

func TestIsErrorResponse(t *testing.T) {
	require.True(t, IsErrorResponse(fmt.Errorf("x: %w", errTest), "T-001"))
	require.False(t, IsErrorResponse(errTest, "T-002"))
	require.False(t, IsErrorResponse(errors.New("plain"), "T-001"))
}
