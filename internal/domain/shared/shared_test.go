package shared

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_Is(t *testing.T) {
	projectMissing := NewDomainError("NOT_FOUND", "Project not found")
	wrapped := fmt.Errorf("failed to load project: %w", projectMissing)

	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(wrapped, ErrInvalidInput))
	assert.False(t, errors.Is(wrapped, errors.New("NOT_FOUND")))
	assert.Equal(t, "Project not found", projectMissing.Error())
}

func TestValidationError(t *testing.T) {
	verr := NewValidationError()
	assert.NoError(t, verr.OrNil())
	assert.False(t, verr.HasViolations())

	verr.Add("name", "is required")
	verr.Add("employees[0].hours", "must not be negative")

	err := verr.OrNil()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "validation failed: name: is required; employees[0].hours: must not be negative", err.Error())

	var target *ValidationError
	require.True(t, errors.As(fmt.Errorf("create: %w", err), &target))
	assert.Len(t, target.Violations, 2)
}

func TestBaseEntity(t *testing.T) {
	created := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	e := NewBaseEntityAt(created)

	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, created, e.CreatedAt)
	assert.Equal(t, created, e.UpdatedAt)

	later := created.Add(time.Hour)
	e.Touch(later)
	assert.Equal(t, created, e.CreatedAt)
	assert.Equal(t, later, e.UpdatedAt)
}
