package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDollars(t *testing.T) {
	assert.Equal(t, "$50.00", FormatDollars(50))
	assert.Equal(t, "$1,234.50", FormatDollars(1234.5))
	assert.Equal(t, "$0.10", FormatDollars(0.1))
}

func TestFormatLongDate(t *testing.T) {
	d := time.Date(2026, 3, 7, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, "March 7, 2026", FormatLongDate(d))
}
