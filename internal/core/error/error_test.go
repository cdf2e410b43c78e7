package errx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    Kind
		message string
		status  int
	}{
		{
			name:    "api error with message",
			err:     fmt.Errorf("generate: %w", genai.APIError{Code: 400, Message: "API key not valid.", Status: "INVALID_ARGUMENT"}),
			kind:    KindRemoteStatus,
			message: "API Error: 400 - API key not valid.",
			status:  http.StatusBadGateway,
		},
		{
			name:    "api error without message",
			err:     genai.APIError{Code: 503},
			kind:    KindRemoteStatus,
			message: "API Error: 503 - Something went wrong on the server.",
			status:  http.StatusBadGateway,
		},
		{
			name:    "transport failure",
			err:     fmt.Errorf("doRequest: error sending request: %w", &url.Error{Op: "Post", URL: "http://127.0.0.1:1", Err: errors.New("connection refused")}),
			kind:    KindNetwork,
			message: NetworkMessage,
			status:  http.StatusGatewayTimeout,
		},
		{
			name:    "deadline",
			err:     context.DeadlineExceeded,
			kind:    KindNetwork,
			message: NetworkMessage,
			status:  http.StatusGatewayTimeout,
		},
		{
			name:    "cancelled",
			err:     fmt.Errorf("generate content: %w", context.Canceled),
			kind:    KindNetwork,
			message: NetworkMessage,
			status:  http.StatusGatewayTimeout,
		},
		{
			name:    "anything else",
			err:     errors.New("invalid model name"),
			kind:    KindRequestSetup,
			message: "Request Setup Error: invalid model name",
			status:  http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.message, got.Message)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.err, got.Err)
		})
	}
}

func TestClassify_KeepsAppError(t *testing.T) {
	orig := EmptyResult()
	assert.Same(t, orig, Classify(fmt.Errorf("wrapped: %w", orig)))
	assert.Nil(t, Classify(nil))
}

func TestAppError_IsMatchesKind(t *testing.T) {
	err := fmt.Errorf("submit: %w", Validation())
	assert.ErrorIs(t, err, Validation())
	assert.NotErrorIs(t, err, EmptyResult())
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, KindSystem, KindOf(errors.New("plain")))
}

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, ValidationMessage, Validation().Error())
	assert.Equal(t, "Request Setup Error: boom: boom", RequestSetup(errors.New("boom")).Error())
	assert.Equal(t, "Request Setup Error: unknown error", RequestSetup(nil).Message)
}

func TestWrapRedis(t *testing.T) {
	assert.NoError(t, WrapRedis(nil))

	var appErr *AppError
	require.ErrorAs(t, WrapRedis(redis.Nil), &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.ErrorIs(t, appErr, redis.Nil)

	require.ErrorAs(t, WrapRedis(errors.New("conn reset")), &appErr)
	assert.Equal(t, http.StatusBadGateway, appErr.Status)
	assert.Equal(t, RedisErrorMessage, appErr.Message)
}
