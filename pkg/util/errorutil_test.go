package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	t.Run("passes through domain errors", func(t *testing.T) {
		err := NewForbidden("nope")
		converted := ToDomainError(err)
		assert.Equal(t, "FORBIDDEN", converted.Code)
		assert.Equal(t, http.StatusForbidden, converted.HTTPStatus)
	})

	t.Run("unwraps wrapped domain errors", func(t *testing.T) {
		err := fmt.Errorf("loading ticket: %w", NewNotFound("ticket", nil))
		converted := ToDomainError(err)
		assert.Equal(t, "NOT_FOUND", converted.Code)
	})

	t.Run("maps missing rows to not found", func(t *testing.T) {
		converted := ToDomainError(pgx.ErrNoRows)
		assert.Equal(t, "NOT_FOUND", converted.Code)
	})

	t.Run("everything else is internal", func(t *testing.T) {
		converted := ToDomainError(errors.New("boom"))
		assert.Equal(t, "INTERNAL_ERROR", converted.Code)
		assert.Equal(t, http.StatusInternalServerError, converted.HTTPStatus)
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, ToDomainError(nil))
	})
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFound("ticket", nil)))
	assert.True(t, IsNotFound(pgx.ErrNoRows))
	assert.False(t, IsNotFound(NewForbidden("no")))
	assert.False(t, IsNotFound(errors.New("boom")))
}
