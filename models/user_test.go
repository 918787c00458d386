package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserIdentifierIsNickname(t *testing.T) {
	u := &User{ID: 7, Nickname: "alice", Email: "alice@example.com"}
	assert.Equal(t, "alice", u.UserIdentifier())
}

func TestRolesAreFixed(t *testing.T) {
	assert.Equal(t, []string{RoleUser}, (&User{}).Roles())
}
