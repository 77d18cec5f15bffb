package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cestas/internal/service"
)

var fixedNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func clock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func requireValidation(t *testing.T, err error) *service.ValidationError {
	t.Helper()
	var target *service.ValidationError
	require.True(t, errors.As(err, &target), "expected ValidationError, got %T: %v", err, err)
	return target
}

func requireNotFound(t *testing.T, err error) {
	t.Helper()
	var target *service.NotFoundError
	require.True(t, errors.As(err, &target), "expected NotFoundError, got %T: %v", err, err)
}

func requireInternal(t *testing.T, err error) {
	t.Helper()
	var target *service.InternalError
	require.True(t, errors.As(err, &target), "expected InternalError, got %T: %v", err, err)
}
