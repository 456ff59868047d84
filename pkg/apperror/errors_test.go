package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"validation", ErrMissingField, MsgMissingField},
		{"application with backend text", New(Application, CodeBackendFailure, "Adresse introuvable"), "Adresse introuvable"},
		{"application without text", New(Application, CodeBadStatus, ""), MsgRouteFailed},
		{"transport hides detail", Wrap(Transport, CodeNetwork, "dial tcp 127.0.0.1:5001: connection refused", errors.New("refused")), MsgConnectionError},
		{"rendering", New(Rendering, CodeEmptyRoute, "no drawable coordinates"), MsgRouteFailed},
		{"plain error", errors.New("boom"), MsgConnectionError},
		{"wrapped app error", fmt.Errorf("submit: %w", New(Application, CodeBackendFailure, "Service indisponible")), "Service indisponible"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, UserMessage(tc.err))
		})
	}
}

func TestAppError_IsMatchesKindAndCode(t *testing.T) {
	err := Wrap(Validation, CodeMissingField, "custom text", errors.New("validator"))

	assert.ErrorIs(t, err, ErrMissingField)
	assert.NotErrorIs(t, err, New(Validation, CodeInvalidMode, ""))
	assert.NotErrorIs(t, err, New(Application, CodeMissingField, ""))
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(Transport, CodeTimeout, MsgConnectionError, cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "TIMEOUT: Could not connect to the server: root cause", err.Error())
	assert.Equal(t, "EMPTY_ROUTE: nothing", New(Rendering, CodeEmptyRoute, "nothing").Error())
}

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(fmt.Errorf("wrapped: %w", New(Transport, CodeNetwork, "")))
	assert.True(t, ok)
	assert.Equal(t, Transport, kind)
	assert.Equal(t, "transport", kind.String())

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
	assert.Equal(t, "unknown", Kind(42).String())
}
