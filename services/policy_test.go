package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ghissghiso/goblog/models"
)

func TestOwnerPolicy(t *testing.T) {
	post := &models.Post{ID: 1, UserID: 7}
	policy := OwnerPolicy{}

	assert.True(t, policy.Can(7, ActionEdit, post))
	assert.False(t, policy.Can(8, ActionEdit, post))
	assert.False(t, policy.Can(7, "publish", post))
	assert.False(t, policy.Can(7, ActionEdit, nil))
}
