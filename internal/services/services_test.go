package services_test

import (
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/ncertflash/internal/errors"
	"github.com/vytor/ncertflash/internal/services"
)

var fixedNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func fixedClock() services.Clock {
	return func() time.Time { return fixedNow }
}

// requireAppError asserts err is an AppError with the given code.
func requireAppError(t require.TestingT, err error, code string) {
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok, "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
