package services

import "github.com/ghissghiso/goblog/models"

// OwnerPolicy grants the edit capability to the post's author and nobody else.
type OwnerPolicy struct{}

func (OwnerPolicy) Can(actorID uint, action string, post *models.Post) bool {
	if action != ActionEdit || post == nil {
		return false
	}
	return post.UserID == actorID
}
