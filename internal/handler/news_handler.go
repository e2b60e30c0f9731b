package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/campusfront/internal/service"
	"github.com/gin-gonic/gin"
)

type newsRequest struct {
	Slug          string     `json:"slug"`
	Title         string     `json:"title"`
	Summary       *string    `json:"summary"`
	Body          *string    `json:"body"`
	Category      *string    `json:"category"`
	PublishedDate *time.Time `json:"publishedDate"`
	IsFeatured    *bool      `json:"isFeatured"`
}

func (r newsRequest) toInput() service.NewsInput {
	return service.NewsInput{
		Slug:          r.Slug,
		Title:         r.Title,
		Summary:       r.Summary,
		Body:          r.Body,
		Category:      r.Category,
		PublishedDate: r.PublishedDate,
		IsFeatured:    r.IsFeatured,
	}
}

// ListNews 公共新闻列表接口，走解析级联
func (a *API) ListNews(c *gin.Context) {
	limit, _, err := parsePositiveIntQuery(c, "limit")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	featuredOnly := strings.EqualFold(c.Query("featured"), "true")

	items, resolveErr := a.resolver.GetNews(c.Request.Context(), featuredOnly, limit)
	if resolveErr != nil {
		respondServiceError(c, resolveErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"news": items})
}

// GetNewsBySlug 公共单条新闻接口，走解析级联
func (a *API) GetNewsBySlug(c *gin.Context) {
	slug, ok := requireParam(c, "slug")
	if !ok {
		return
	}

	item, err := a.resolver.GetNewsBySlug(c.Request.Context(), slug)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"news": item})
}

// CreateNews 新建新闻
func (a *API) CreateNews(c *gin.Context) {
	var payload newsRequest
	if !bindJSON(c, &payload, "invalid news payload") {
		return
	}

	item, err := a.writer.CreateNews(c.Request.Context(), payload.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"news": item})
}

// UpdateNews 更新新闻
func (a *API) UpdateNews(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}

	var payload newsRequest
	if !bindJSON(c, &payload, "invalid news payload") {
		return
	}

	item, err := a.writer.UpdateNews(c.Request.Context(), id, payload.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"news": item})
}

// DeleteNews 删除新闻
func (a *API) DeleteNews(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}

	if err := a.writer.DeleteNews(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
