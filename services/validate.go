package services

import (
	"bytes"
	"context"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/ghissghiso/goblog/models"
	"github.com/ghissghiso/goblog/utils"
)

const (
	// MaxImageBytes caps uploaded images at 1 MiB.
	MaxImageBytes = 1 << 20
	// Images must be exactly 4:3.
	ratioWidth  = 4
	ratioHeight = 3
)

// ImageUpload carries raw uploaded bytes plus the client's original extension.
type ImageUpload struct {
	Data []byte
	Ext  string
}

// postFields is the mutable part of a post shared by create and update.
type postFields struct {
	title    string
	content  string
	category *models.Category
	tags     []models.Tag
}

// validateFields checks title, content, category, and tags, resolving
// reference data through the repository. Field errors accumulate in v.
func (s *PostService) validateFields(ctx context.Context, title, content string, categoryID uint, tagIDs []uint, v violations) (postFields, error) {
	var f postFields

	f.title = strings.TrimSpace(utils.Sanitize(title))
	if f.title == "" {
		v.add("title", "title cannot be empty")
	}

	f.content = utils.Sanitize(content)
	if strings.TrimSpace(f.content) == "" {
		v.add("content", "content cannot be empty")
	}

	category, err := s.repo.FindCategory(ctx, categoryID)
	if err != nil {
		return f, err
	}
	if category == nil {
		v.add("category", "category does not exist")
	}
	f.category = category

	ids := utils.UniqueUint(tagIDs)
	if len(ids) == 0 {
		v.add("tags", "at least one tag is required")
		return f, nil
	}
	tags, err := s.repo.FindTags(ctx, ids)
	if err != nil {
		return f, err
	}
	if len(tags) != len(ids) {
		v.add("tags", "one or more tags do not exist")
	}
	f.tags = tags
	return f, nil
}

// validateImage enforces the upload contract: bytes present, at most 1 MiB,
// decodable, and exactly 4:3. Cross-multiplication keeps the ratio check
// exact for integer dimensions.
func validateImage(img *ImageUpload, v violations) {
	if img == nil || len(img.Data) == 0 {
		v.add("image", "an image is required")
		return
	}
	if len(img.Data) > MaxImageBytes {
		v.add("image", "image exceeds the 1 MiB limit")
		return
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(img.Data))
	if err != nil {
		v.add("image", "image format not recognized")
		return
	}
	if cfg.Width*ratioHeight != cfg.Height*ratioWidth {
		v.add("image", "image aspect ratio must be 4:3")
	}
}
