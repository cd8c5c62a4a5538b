package oaserrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputErrorIs(t *testing.T) {
	err := &InputError{Source: "base", Message: "decoded value is not a map"}
	assert.True(t, errors.Is(err, ErrInputInvalid))
	assert.False(t, errors.Is(err, ErrUnexpected))
	assert.Contains(t, err.Error(), "base")
	assert.Contains(t, err.Error(), "decoded value is not a map")
}

func TestInputErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := &InputError{Source: "head", Cause: cause}
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.Contains(t, err.Error(), "boom")
}

func TestYamlUnavailableError(t *testing.T) {
	err := &YamlUnavailableError{Source: "head"}
	assert.True(t, errors.Is(err, ErrYamlUnavailable))
	assert.Contains(t, err.Error(), "head")

	bare := &YamlUnavailableError{}
	assert.Equal(t, "yaml decoder unavailable", bare.Error())
}

func TestStoreErrorConflictVsUnavailable(t *testing.T) {
	conflict := &StoreError{Op: "put", Conflict: true, Message: "duplicate row"}
	assert.True(t, errors.Is(conflict, ErrStoreConflict))
	assert.False(t, errors.Is(conflict, ErrStoreUnavailable))

	unavailable := &StoreError{Op: "listPage", Message: "connection refused"}
	assert.True(t, errors.Is(unavailable, ErrStoreUnavailable))
	assert.False(t, errors.Is(unavailable, ErrStoreConflict))
	assert.Contains(t, unavailable.Error(), "listPage")
}

func TestUnexpectedError(t *testing.T) {
	cause := fmt.Errorf("nil schema node")
	err := &UnexpectedError{Message: "walked past a nil node", Cause: cause}
	assert.True(t, errors.Is(err, ErrUnexpected))
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.Contains(t, err.Error(), "walked past a nil node")
}
