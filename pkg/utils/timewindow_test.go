package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeEndTime(t *testing.T) {
	start := time.Date(2025, 7, 30, 20, 0, 0, 0, time.UTC)

	end := ComputeEndTime(&start, 100)
	assert.NotNil(t, end)
	assert.Equal(t, start.Add(100*time.Minute), *end)
}

func TestComputeEndTime_NoStart(t *testing.T) {
	assert.Nil(t, ComputeEndTime(nil, 100))
}

func TestWithinUpdateGrace(t *testing.T) {
	end := time.Date(2025, 7, 30, 21, 40, 0, 0, time.UTC)

	// Inside the window
	assert.True(t, WithinUpdateGrace(end.Add(10*time.Minute), end, 30))
	// Exactly at the boundary is still inside
	assert.True(t, WithinUpdateGrace(end.Add(30*time.Minute), end, 30))
	// One second past
	assert.False(t, WithinUpdateGrace(end.Add(30*time.Minute+time.Second), end, 30))
}
