package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/campusfront/internal/db"
)

var (
	// ErrRemoteNotFound 在远端内容服务查无此项时返回
	ErrRemoteNotFound = errors.New("remote content not found")
	// ErrRemoteUnavailable 在远端内容服务不可达或响应异常时返回
	ErrRemoteUnavailable = errors.New("remote content service unavailable")
	// ErrRemoteInvalidInput 在请求参数不完整时返回
	ErrRemoteInvalidInput = errors.New("invalid remote request input")
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// remoteEnvelope 是远端内容服务统一的响应包装 { data, error }
type remoteEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Error *string         `json:"error"`
}

type reorderPayload struct {
	OrderedIDs []string `json:"orderedIds"`
}

// RemoteClient 访问远端内容服务的 HTTP 适配器。
// 所有实体在线上使用 camelCase 字段名，与 db 实体的 JSON 标签一致，
// 因此这里不需要额外的字段映射层。
type RemoteClient struct {
	baseURL string
	http    httpDoer
}

// NewRemoteClient 构造 RemoteClient；baseURL 形如 https://cms.example.edu/api
func NewRemoteClient(baseURL string) *RemoteClient {
	return &RemoteClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetHTTPClient 注入自定义 HTTP 客户端，主要用于测试
func (c *RemoteClient) SetHTTPClient(client httpDoer) {
	if client == nil {
		c.http = &http.Client{Timeout: 15 * time.Second}
		return
	}
	c.http = client
}

// GetPageBySlug 按 slug 获取页面
func (c *RemoteClient) GetPageBySlug(ctx context.Context, slug string) (*db.Page, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: slug is required", ErrRemoteInvalidInput)
	}

	var page db.Page
	if err := c.do(ctx, http.MethodGet, "/pages/slug/"+url.PathEscape(trimmed), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetSectionsForPage 获取页面的全部区块，按 orderIndex 升序返回。
// 远端应当已排好序，这里再排一次以保证契约。
func (c *RemoteClient) GetSectionsForPage(ctx context.Context, pageID string) ([]db.Section, error) {
	trimmed := strings.TrimSpace(pageID)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: pageId is required", ErrRemoteInvalidInput)
	}

	var sections []db.Section
	if err := c.do(ctx, http.MethodGet, "/pages/"+url.PathEscape(trimmed)+"/sections", nil, &sections); err != nil {
		return nil, err
	}

	sort.SliceStable(sections, func(i, j int) bool {
		if sections[i].OrderIndex != sections[j].OrderIndex {
			return sections[i].OrderIndex < sections[j].OrderIndex
		}
		return sections[i].CreatedAt.Before(sections[j].CreatedAt)
	})
	return sections, nil
}

// GetNews 获取新闻列表；没有匹配时返回空列表
func (c *RemoteClient) GetNews(ctx context.Context, featuredOnly bool, limit int) ([]db.NewsItem, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must be positive", ErrRemoteInvalidInput)
	}

	query := url.Values{}
	if featuredOnly {
		query.Set("featured", "true")
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	path := "/news"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var items []db.NewsItem
	if err := c.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []db.NewsItem{}
	}
	return items, nil
}

// GetNewsBySlug 按 slug 获取单条新闻
func (c *RemoteClient) GetNewsBySlug(ctx context.Context, slug string) (*db.NewsItem, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: slug is required", ErrRemoteInvalidInput)
	}

	var item db.NewsItem
	if err := c.do(ctx, http.MethodGet, "/news/slug/"+url.PathEscape(trimmed), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// CreatePage 在远端新建页面
func (c *RemoteClient) CreatePage(ctx context.Context, input PageInput) (*db.Page, error) {
	var page db.Page
	if err := c.do(ctx, http.MethodPost, "/pages", pageWirePayload(input), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UpdatePage 更新远端页面
func (c *RemoteClient) UpdatePage(ctx context.Context, id string, input PageInput) (*db.Page, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: id is required", ErrRemoteInvalidInput)
	}

	var page db.Page
	if err := c.do(ctx, http.MethodPut, "/pages/"+url.PathEscape(trimmed), pageWirePayload(input), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// DeletePage 删除远端页面（远端负责级联删除区块）
func (c *RemoteClient) DeletePage(ctx context.Context, id string) error {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return fmt.Errorf("%w: id is required", ErrRemoteInvalidInput)
	}
	return c.do(ctx, http.MethodDelete, "/pages/"+url.PathEscape(trimmed), nil, nil)
}

// CreateSection 在远端新建区块
func (c *RemoteClient) CreateSection(ctx context.Context, input SectionInput) (*db.Section, error) {
	var section db.Section
	if err := c.do(ctx, http.MethodPost, "/sections", sectionWirePayload(input), &section); err != nil {
		return nil, err
	}
	return &section, nil
}

// UpdateSection 更新远端区块
func (c *RemoteClient) UpdateSection(ctx context.Context, id string, input SectionInput) (*db.Section, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: id is required", ErrRemoteInvalidInput)
	}

	var section db.Section
	if err := c.do(ctx, http.MethodPut, "/sections/"+url.PathEscape(trimmed), sectionWirePayload(input), &section); err != nil {
		return nil, err
	}
	return &section, nil
}

// DeleteSection 删除远端区块
func (c *RemoteClient) DeleteSection(ctx context.Context, id string) error {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return fmt.Errorf("%w: id is required", ErrRemoteInvalidInput)
	}
	return c.do(ctx, http.MethodDelete, "/sections/"+url.PathEscape(trimmed), nil, nil)
}

// ReorderSections 向远端提交完整的有序区块 ID 列表
func (c *RemoteClient) ReorderSections(ctx context.Context, pageID string, orderedIDs []string) error {
	trimmed := strings.TrimSpace(pageID)
	if trimmed == "" {
		return fmt.Errorf("%w: pageId is required", ErrRemoteInvalidInput)
	}

	path := "/pages/" + url.PathEscape(trimmed) + "/sections/reorder"
	return c.do(ctx, http.MethodPost, path, reorderPayload{OrderedIDs: orderedIDs}, nil)
}

// CreateNews 在远端新建新闻
func (c *RemoteClient) CreateNews(ctx context.Context, input NewsInput) (*db.NewsItem, error) {
	var item db.NewsItem
	if err := c.do(ctx, http.MethodPost, "/news", newsWirePayload(input), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateNews 更新远端新闻
func (c *RemoteClient) UpdateNews(ctx context.Context, id string, input NewsInput) (*db.NewsItem, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: id is required", ErrRemoteInvalidInput)
	}

	var item db.NewsItem
	if err := c.do(ctx, http.MethodPut, "/news/"+url.PathEscape(trimmed), newsWirePayload(input), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteNews 删除远端新闻
func (c *RemoteClient) DeleteNews(ctx context.Context, id string) error {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return fmt.Errorf("%w: id is required", ErrRemoteInvalidInput)
	}
	return c.do(ctx, http.MethodDelete, "/news/"+url.PathEscape(trimmed), nil, nil)
}

// do 发送一次请求并解开 { data, error } 包装。
// 非 2xx 状态或非空 error 字段都视为本层失败，由调用方决定是否降级。
func (c *RemoteClient) do(ctx context.Context, method, path string, payload any, out any) error {
	if c.baseURL == "" {
		return fmt.Errorf("%w: base url not configured", ErrRemoteUnavailable)
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "campusfront/1.0")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := c.http
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrRemoteUnavailable, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrRemoteNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrRemoteUnavailable, resp.StatusCode)
	}

	if out == nil && len(respBody) == 0 {
		return nil
	}

	var envelope remoteEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("%w: malformed response: %v", ErrRemoteUnavailable, err)
	}
	if envelope.Error != nil && strings.TrimSpace(*envelope.Error) != "" {
		return fmt.Errorf("%w: %s", ErrRemoteUnavailable, *envelope.Error)
	}

	if out == nil {
		return nil
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return ErrRemoteNotFound
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("%w: malformed payload: %v", ErrRemoteUnavailable, err)
	}
	return nil
}

// 写请求的线上载体：camelCase 字段，零值字段省略，
// 指针字段区分「未传入」与「显式清空」。

type pageWire struct {
	Slug           string  `json:"slug,omitempty"`
	Title          string  `json:"title,omitempty"`
	SEOTitle       *string `json:"seoTitle,omitempty"`
	SEODescription *string `json:"seoDescription,omitempty"`
	IsHomePage     *bool   `json:"isHomePage,omitempty"`
	IsPublished    *bool   `json:"isPublished,omitempty"`
}

func pageWirePayload(input PageInput) pageWire {
	return pageWire{
		Slug:           strings.TrimSpace(input.Slug),
		Title:          strings.TrimSpace(input.Title),
		SEOTitle:       input.SEOTitle,
		SEODescription: input.SEODescription,
		IsHomePage:     input.IsHomePage,
		IsPublished:    input.IsPublished,
	}
}

type sectionWire struct {
	PageID      string     `json:"pageId,omitempty"`
	Type        string     `json:"type,omitempty"`
	OrderIndex  *int       `json:"orderIndex,omitempty"`
	Title       *string    `json:"title,omitempty"`
	Subtitle    *string    `json:"subtitle,omitempty"`
	Content     *string    `json:"content,omitempty"`
	ContentJSON db.JSONMap `json:"contentJson,omitempty"`
	IsVisible   *bool      `json:"isVisible,omitempty"`
}

func sectionWirePayload(input SectionInput) sectionWire {
	return sectionWire{
		PageID:      strings.TrimSpace(input.PageID),
		Type:        strings.TrimSpace(input.Type),
		OrderIndex:  input.OrderIndex,
		Title:       input.Title,
		Subtitle:    input.Subtitle,
		Content:     input.Content,
		ContentJSON: input.ContentJSON,
		IsVisible:   input.IsVisible,
	}
}

type newsWire struct {
	Slug          string     `json:"slug,omitempty"`
	Title         string     `json:"title,omitempty"`
	Summary       *string    `json:"summary,omitempty"`
	Body          *string    `json:"body,omitempty"`
	Category      *string    `json:"category,omitempty"`
	PublishedDate *time.Time `json:"publishedDate,omitempty"`
	IsFeatured    *bool      `json:"isFeatured,omitempty"`
}

func newsWirePayload(input NewsInput) newsWire {
	return newsWire{
		Slug:          strings.TrimSpace(input.Slug),
		Title:         strings.TrimSpace(input.Title),
		Summary:       input.Summary,
		Body:          input.Body,
		Category:      input.Category,
		PublishedDate: input.PublishedDate,
		IsFeatured:    input.IsFeatured,
	}
}
