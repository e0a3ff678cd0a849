package utils_test

import (
	"testing"
	"time"

	"freelanceflow-backend/utils"

	"github.com/stretchr/testify/assert"
)

func TestBeginningOfDay(t *testing.T) {
	in := time.Date(2026, 9, 1, 17, 42, 13, 999, time.UTC)
	out := utils.BeginningOfDay(in)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), out)
}

func TestBeginningOfMonth(t *testing.T) {
	in := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	out := utils.BeginningOfMonth(in)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), out)
}

func TestEndOfDay(t *testing.T) {
	in := time.Date(2026, 9, 1, 3, 0, 0, 0, time.UTC)
	out := utils.EndOfDay(in)
	assert.Equal(t, time.Date(2026, 9, 1, 23, 59, 59, 0, time.UTC), out)
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, 9, 1, 23, 0, 0, 0, time.UTC)
	b := time.Date(2026, 9, 3, 1, 0, 0, 0, time.UTC)

	// Calendar days, not 24-hour spans
	assert.Equal(t, 2, utils.DaysBetween(a, b))
	assert.Equal(t, 0, utils.DaysBetween(a, a))
	assert.Equal(t, -2, utils.DaysBetween(b, a))
}
