package handler

import (
	"net/http"

	"github.com/campusfront/internal/db"
	"github.com/campusfront/internal/service"
	"github.com/gin-gonic/gin"
)

type sectionRequest struct {
	PageID      string     `json:"pageId"`
	Type        string     `json:"type"`
	OrderIndex  *int       `json:"orderIndex"`
	Title       *string    `json:"title"`
	Subtitle    *string    `json:"subtitle"`
	Content     *string    `json:"content"`
	ContentJSON db.JSONMap `json:"contentJson"`
	IsVisible   *bool      `json:"isVisible"`
}

func (r sectionRequest) toInput() service.SectionInput {
	return service.SectionInput{
		PageID:      r.PageID,
		Type:        r.Type,
		OrderIndex:  r.OrderIndex,
		Title:       r.Title,
		Subtitle:    r.Subtitle,
		Content:     r.Content,
		ContentJSON: r.ContentJSON,
		IsVisible:   r.IsVisible,
	}
}

type sectionReorderRequest struct {
	OrderedIDs []string `json:"orderedIds"`
}

// ListSections 返回页面的全部区块（含隐藏），按 orderIndex 升序
func (a *API) ListSections(c *gin.Context) {
	pageID, ok := requireParam(c, "id")
	if !ok {
		return
	}

	sections, err := a.resolver.GetSectionsForPage(c.Request.Context(), pageID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

// CreateSection 在页面下新建区块
func (a *API) CreateSection(c *gin.Context) {
	pageID, ok := requireParam(c, "id")
	if !ok {
		return
	}

	var payload sectionRequest
	if !bindJSON(c, &payload, "invalid section payload") {
		return
	}
	payload.PageID = pageID

	section, err := a.writer.CreateSection(c.Request.Context(), payload.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"section": section})
}

// UpdateSection 更新区块
func (a *API) UpdateSection(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}

	var payload sectionRequest
	if !bindJSON(c, &payload, "invalid section payload") {
		return
	}

	section, err := a.writer.UpdateSection(c.Request.Context(), id, payload.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"section": section})
}

// DeleteSection 删除区块；兄弟区块的排序不做自动压缩
func (a *API) DeleteSection(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}

	if err := a.writer.DeleteSection(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ReorderSections 接收完整的有序区块 ID 列表并原子化重排
func (a *API) ReorderSections(c *gin.Context) {
	pageID, ok := requireParam(c, "id")
	if !ok {
		return
	}

	var payload sectionReorderRequest
	if !bindJSON(c, &payload, "invalid reorder payload") {
		return
	}

	if err := a.writer.ReorderSections(c.Request.Context(), pageID, payload.OrderedIDs); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
