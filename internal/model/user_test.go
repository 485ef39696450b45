package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRolesRoundTrip(t *testing.T) {
	assert.Equal(t, "user,admin", JoinRoles([]string{"user", "admin"}))
	assert.Equal(t, []string{"user", "admin"}, SplitRoles("user,admin"))
	assert.Equal(t, []string{"user"}, SplitRoles(" user , "))
	assert.Empty(t, SplitRoles(""))
}

func TestHasRole(t *testing.T) {
	u := User{Roles: []string{"user", "admin"}}
	assert.True(t, u.HasRole("admin"))
	assert.False(t, u.HasRole("owner"))
}

func TestEventRemaining(t *testing.T) {
	e := Event{SeatCapacity: 10, BookedSeats: 7}
	assert.Equal(t, 3, e.Remaining())
}
