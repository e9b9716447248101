package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/ncertflash/internal/tutor"
)

func TestWriteTimeout(t *testing.T) {
	retry := tutor.DefaultRetryConfig()

	got := writeTimeout(retry, 60*time.Second)
	assert.Equal(t, retry.Budget(60*time.Second)+30*time.Second, got)
	assert.Greater(t, got, 3*60*time.Second, "room for every attempt")

	retry.MaxAttempts = 1
	assert.Equal(t, 90*time.Second, writeTimeout(retry, 60*time.Second))

	assert.Zero(t, writeTimeout(retry, 0))
}
