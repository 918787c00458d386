package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ghissghiso/goblog/middleware"
	"github.com/ghissghiso/goblog/services"
	"github.com/ghissghiso/goblog/utils"
)

// PostController maps the post routes onto the post service.
type PostController struct {
	svc *services.PostService
}

// NewPostController creates a new PostController instance.
func NewPostController(svc *services.PostService) *PostController {
	return &PostController{svc: svc}
}

// ListPosts returns one page of posts with pagination metadata.
func (p *PostController) ListPosts(ctx *gin.Context) {
	page := 1
	if v := strings.TrimSpace(ctx.Query("page")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40020, "page must be an integer")
			return
		}
		page = n
	}

	cacheKey := fmt.Sprintf("cache:posts:list:page=%d", page)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	listing, err := p.svc.ListPosts(ctx.Request.Context(), page)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPage) {
			utils.Error(ctx, http.StatusBadRequest, 40021, err.Error())
			return
		}
		utils.Sugar.Errorf("list posts failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to list posts")
		return
	}

	payload := gin.H{
		"items": listing.Items,
		"pagination": gin.H{
			"page":        listing.Page,
			"total_pages": listing.TotalPages,
			"range":       listing.Range,
		},
	}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	utils.Success(ctx, payload)
}

// GetPost returns a single post. Public, no authorization check.
func (p *PostController) GetPost(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	cacheKey := "cache:post:detail:" + strconv.Itoa(int(id))
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	post, err := p.svc.ReadPost(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
			return
		}
		utils.Sugar.Errorf("read post failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to load post")
		return
	}

	payload := gin.H{"post": post}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	utils.Success(ctx, payload)
}

// CreatePost accepts a multipart form with title, content, category_id,
// tag_ids, and a required image upload.
func (p *PostController) CreatePost(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	in, ok := bindPostForm(ctx)
	if !ok {
		return
	}

	post, err := p.svc.CreatePost(ctx.Request.Context(), userID, in)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			utils.FieldErrors(ctx, 40022, verr.Fields)
		case errors.Is(err, services.ErrUnauthorized):
			utils.Error(ctx, http.StatusUnauthorized, 40111, "unauthorized")
		default:
			utils.Sugar.Errorf("create post failed: %v", err)
			utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to create post")
		}
		return
	}

	utils.InvalidateByPrefix("cache:posts:list:")
	utils.Success(ctx, gin.H{"post": post})
}

// UpdatePost allows the author to update their post. The image is optional;
// when omitted the stored filename is kept.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40112, "unauthorized")
		return
	}
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	in, ok := bindPostForm(ctx)
	if !ok {
		return
	}

	post, err := p.svc.UpdatePost(ctx.Request.Context(), userID, id, in)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			utils.FieldErrors(ctx, 40023, verr.Fields)
		case errors.Is(err, services.ErrNotFound):
			utils.Error(ctx, http.StatusNotFound, 40402, "post not found")
		case errors.Is(err, services.ErrUnauthorized):
			utils.Error(ctx, http.StatusForbidden, 40301, "you can only update your own posts")
		default:
			utils.Sugar.Errorf("update post failed: %v", err)
			utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to update post")
		}
		return
	}

	utils.InvalidateByPrefix("cache:posts:list:")
	utils.InvalidateByPrefix("cache:post:detail:" + strconv.Itoa(int(id)))
	utils.Success(ctx, gin.H{"post": post})
}

// DeletePost allows the author to delete their post.
func (p *PostController) DeletePost(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40113, "unauthorized")
		return
	}
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := p.svc.DeletePost(ctx.Request.Context(), userID, id); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			utils.Error(ctx, http.StatusNotFound, 40403, "post not found")
		case errors.Is(err, services.ErrUnauthorized):
			utils.Error(ctx, http.StatusForbidden, 40302, "you can only delete your own posts")
		default:
			utils.Sugar.Errorf("delete post failed: %v", err)
			utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to delete post")
		}
		return
	}

	utils.InvalidateByPrefix("cache:posts:list:")
	utils.InvalidateByPrefix("cache:post:detail:" + strconv.Itoa(int(id)))
	utils.Success(ctx, gin.H{"message": "post deleted"})
}

// bindPostForm reads the multipart fields shared by create and update.
// A missing image file yields a nil Image; the service decides whether
// that is acceptable.
func bindPostForm(ctx *gin.Context) (services.PostInput, bool) {
	var in services.PostInput
	in.Title = ctx.PostForm("title")
	in.Content = ctx.PostForm("content")

	if v := strings.TrimSpace(ctx.PostForm("category_id")); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40024, "category_id must be an integer")
			return in, false
		}
		in.CategoryID = uint(n)
	}

	for _, raw := range ctx.PostFormArray("tag_ids") {
		for _, v := range strings.Split(raw, ",") {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			n, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				utils.Error(ctx, http.StatusBadRequest, 40025, "tag_ids must be integers")
				return in, false
			}
			in.TagIDs = append(in.TagIDs, uint(n))
		}
	}

	file, header, err := ctx.Request.FormFile("image")
	if err != nil {
		return in, true
	}
	defer file.Close()

	// Read one byte past the limit so the service can reject oversizes
	// without the handler buffering arbitrarily large uploads.
	data, err := io.ReadAll(&io.LimitedReader{R: file, N: services.MaxImageBytes + 1})
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40026, "failed to read uploaded image")
		return in, false
	}
	in.Image = &services.ImageUpload{
		Data: data,
		Ext:  strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), "."),
	}
	return in, true
}

func parseID(ctx *gin.Context) (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(ctx.Param("id")), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40027, "invalid post id")
		return 0, false
	}
	return uint(n), true
}

func getUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}
	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}
