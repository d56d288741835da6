package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseError_MessageAndCause(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := operationError("failed to execute update", cause)

	assert.Equal(t, "failed to execute update: disk I/O error", err.Error())
	assert.Equal(t, ErrorKindOperation, err.Kind)
	assert.ErrorIs(t, err, cause)
}

func TestDatabaseError_WithoutCause(t *testing.T) {
	err := notFoundError("init script not found", nil)
	assert.Equal(t, "init script not found", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestDatabaseError_KindsAreDistinguishable(t *testing.T) {
	connect := connectError(errors.New("refused"))
	op := operationError("failed to insert task 1", errors.New("constraint"))

	var dbErr *DatabaseError
	assert.ErrorAs(t, error(connect), &dbErr)
	assert.NotEqual(t, connect.Kind, op.Kind)
	assert.Equal(t, "connect", connect.Kind.String())
	assert.Equal(t, "operation", op.Kind.String())
	assert.Equal(t, "not_found", ErrorKindNotFound.String())
}
