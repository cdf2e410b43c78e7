package errx

import (
	"context"
	"errors"
	"net"
	"net/url"

	"google.golang.org/genai"
)

// Classify converts an error returned while talking to the generation API into an
// AppError. API status errors become RemoteStatus. Transport failures and
// cancelled or timed-out calls never produced a response, so they become Network.
// Everything else is a RequestSetup error.
func Classify(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return RemoteStatus(err, apiErr.Code, apiErr.Message)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return RemoteStatus(err, apiErrPtr.Code, apiErrPtr.Message)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return Network(err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return Network(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return Network(err)
	}

	return RequestSetup(err)
}
