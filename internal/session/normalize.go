package session

import (
	"errors"
	"strings"

	"github.com/Veraticus/the-bills-must-flow/internal/common"
)

// UnknownErrorMessage is shown when an error carries no usable message.
const UnknownErrorMessage = "Unknown error"

// NormalizeError converts an error of unknown shape into one human-readable
// string. Resolution order: the sub-error messages of a remote error body,
// joined with ", "; then the body's single message; then the error's own
// message; then UnknownErrorMessage. Never panics.
func NormalizeError(err error) string {
	if err == nil {
		return UnknownErrorMessage
	}

	var remote *common.RemoteError
	if errors.As(err, &remote) {
		switch body := remote.Body.(type) {
		case []common.ErrorDetail:
			parts := make([]string, 0, len(body))
			for _, detail := range body {
				if detail.Message != "" {
					parts = append(parts, detail.Message)
				}
			}
			if len(parts) > 0 {
				return strings.Join(parts, ", ")
			}
		case common.ErrorDetail:
			if body.Message != "" {
				return body.Message
			}
		}
		if remote.Message != "" {
			return remote.Message
		}
		return UnknownErrorMessage
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return UnknownErrorMessage
}
