package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"missing field", NewMissingField("name"), http.StatusBadRequest},
		{"missing parameter", NewMissingParameter("skills"), http.StatusBadRequest},
		{"duplicate email", NewDuplicateEmail("a@b.c"), http.StatusConflict},
		{"not found", NewNotFound("profile", "1"), http.StatusNotFound},
		{"invalid id", NewInvalidIdentifier("x", nil), http.StatusBadRequest},
		{"noop", NewNoOpUpdate(), http.StatusBadRequest},
		{"store validation", NewStoreValidation([]string{"education[0].degree is required"}, nil), http.StatusBadRequest},
		{"unexpected", NewUnexpected("boom", errors.New("db down")), http.StatusInternalServerError},
		{"plain error", errors.New("raw"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("create: %w", NewDuplicateEmail("a@b.c")), http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ToHTTPStatus(tc.err))
		})
	}
}

func TestAsWrapsForeignErrors(t *testing.T) {
	raw := errors.New("socket closed")
	appErr := As(raw)

	assert.ErrorIs(t, appErr, ErrUnexpected)
	assert.Equal(t, raw, appErr.Err)

	known := NewNotFound("profile", "abc")
	assert.Same(t, known, As(fmt.Errorf("get: %w", known)))
}

func TestKind(t *testing.T) {
	assert.Equal(t, "success", Kind(nil))
	assert.Equal(t, "noop_update", Kind(NewNoOpUpdate()))
	assert.Equal(t, "unexpected", Kind(errors.New("x")))
}

func TestMissingFieldKeepsFieldList(t *testing.T) {
	err := NewMissingField("email", "links.github")
	assert.Equal(t, []string{"email", "links.github"}, err.Fields)
	assert.Contains(t, err.Error(), "missing: email, links.github")
}
