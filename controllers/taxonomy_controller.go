package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ghissghiso/goblog/models"
	"github.com/ghissghiso/goblog/utils"
)

// TaxonomyController exposes the reference data the post form needs.
// Categories and tags are managed outside this application.
type TaxonomyController struct {
	db *gorm.DB
}

// NewTaxonomyController creates a new TaxonomyController instance.
func NewTaxonomyController(db *gorm.DB) *TaxonomyController {
	return &TaxonomyController{db: db}
}

// ListCategories returns every category ordered by label.
func (t *TaxonomyController) ListCategories(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes("cache:taxonomy:categories"); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var categories []models.Category
	if err := t.db.Order("label ASC").Find(&categories).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to list categories")
		return
	}

	payload := gin.H{"items": categories}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON("cache:taxonomy:categories", wrapper, time.Hour)
	utils.Success(ctx, payload)
}

// ListTags returns every tag ordered by label.
func (t *TaxonomyController) ListTags(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes("cache:taxonomy:tags"); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var tags []models.Tag
	if err := t.db.Order("label ASC").Find(&tags).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to list tags")
		return
	}

	payload := gin.H{"items": tags}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON("cache:taxonomy:tags", wrapper, time.Hour)
	utils.Success(ctx, payload)
}
