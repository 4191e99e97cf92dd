package session

import (
	"errors"
	"testing"

	"github.com/Veraticus/the-bills-must-flow/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeError(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want string
	}{
		{
			name: "body with multiple sub-errors joins messages",
			err: &common.RemoteError{Body: []common.ErrorDetail{
				{Message: "a"},
				{Message: "b"},
			}},
			want: "a, b",
		},
		{
			name: "body sub-errors skip empty messages",
			err: &common.RemoteError{Body: []common.ErrorDetail{
				{Message: "a"},
				{Message: ""},
				{Message: "c"},
			}},
			want: "a, c",
		},
		{
			name: "body with single message",
			err:  &common.RemoteError{Body: common.ErrorDetail{Message: "x"}},
			want: "x",
		},
		{
			name: "top-level message without body",
			err:  &common.RemoteError{Message: "y"},
			want: "y",
		},
		{
			name: "empty remote error",
			err:  &common.RemoteError{},
			want: UnknownErrorMessage,
		},
		{
			name: "body sub-errors all empty falls back to top-level message",
			err: &common.RemoteError{
				Body:    []common.ErrorDetail{{Message: ""}},
				Message: "fallback",
			},
			want: "fallback",
		},
		{
			name: "plain error uses its message",
			err:  errors.New("boom"),
			want: "boom",
		},
		{
			name: "nil error",
			err:  nil,
			want: UnknownErrorMessage,
		},
		{
			name: "wrapped remote error is still recognized",
			err:  common.NewUserError("loading failed", &common.RemoteError{Body: common.ErrorDetail{Message: "deep"}}),
			want: "deep",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeError(tt.err))
		})
	}
}
