package checkin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	a, err := Encode("http://tickets.test/api/bookings/validate/booking-1")
	require.NoError(t, err)
	assert.NotEmpty(t, a)

	b, err := Encode("http://tickets.test/api/bookings/validate/booking-2")
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "distinct payloads must render distinct codes")
}
