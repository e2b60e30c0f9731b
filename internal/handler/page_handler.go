package handler

import (
	"net/http"

	"github.com/campusfront/internal/service"
	"github.com/gin-gonic/gin"
)

type pageRequest struct {
	Slug           string  `json:"slug"`
	Title          string  `json:"title"`
	SEOTitle       *string `json:"seoTitle"`
	SEODescription *string `json:"seoDescription"`
	IsHomePage     *bool   `json:"isHomePage"`
	IsPublished    *bool   `json:"isPublished"`
}

func (r pageRequest) toInput() service.PageInput {
	return service.PageInput{
		Slug:           r.Slug,
		Title:          r.Title,
		SEOTitle:       r.SEOTitle,
		SEODescription: r.SEODescription,
		IsHomePage:     r.IsHomePage,
		IsPublished:    r.IsPublished,
	}
}

// ListPages 返回编辑端的页面列表（本地工作集）
func (a *API) ListPages(c *gin.Context) {
	pages, err := a.pages.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": pages})
}

// GetPage 返回单个页面及其区块
func (a *API) GetPage(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}

	page, err := a.pages.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	sections, err := a.resolver.GetSectionsForPage(c.Request.Context(), page.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page, "sections": sections})
}

// CreatePage 新建页面
func (a *API) CreatePage(c *gin.Context) {
	var payload pageRequest
	if !bindJSON(c, &payload, "invalid page payload") {
		return
	}

	page, err := a.writer.CreatePage(c.Request.Context(), payload.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"page": page})
}

// UpdatePage 更新页面
func (a *API) UpdatePage(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}

	var payload pageRequest
	if !bindJSON(c, &payload, "invalid page payload") {
		return
	}

	page, err := a.writer.UpdatePage(c.Request.Context(), id, payload.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page})
}

// DeletePage 删除页面并级联删除其区块
func (a *API) DeletePage(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}

	if err := a.writer.DeletePage(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
