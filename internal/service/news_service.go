package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campusfront/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrNewsNotFound 在指定的新闻不存在时返回
	ErrNewsNotFound = errors.New("news item not found")
	// ErrNewsInvalidInput 在输入数据不完整时返回
	ErrNewsInvalidInput = errors.New("invalid news input")
	// ErrNewsSlugTaken 在 slug 与已有新闻冲突时返回
	ErrNewsSlugTaken = errors.New("news slug already in use")
)

// NewsService 负责本地内容库中的新闻读写
// 新闻与页面互相独立，NEWS_LIST 区块仅在渲染时按条件查询

type NewsService struct {
	db *gorm.DB
}

// NewNewsService 构造 NewsService
func NewNewsService(gdb *gorm.DB) *NewsService {
	return &NewsService{db: gdb}
}

// NewsInput 描述创建或更新新闻时可设置的字段

type NewsInput struct {
	Slug          string
	Title         string
	Summary       *string
	Body          *string
	Category      *string
	PublishedDate *time.Time
	IsFeatured    *bool
}

// List 返回新闻列表，按发布日期倒序。
// featuredOnly 过滤非推荐项；limit<=0 表示不限制。没有匹配时返回空列表而非错误。
func (s *NewsService) List(featuredOnly bool, limit int) ([]db.NewsItem, error) {
	query := s.db.Model(&db.NewsItem{}).Order("published_date DESC, id ASC")
	if featuredOnly {
		query = query.Where("is_featured = ?", true)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var items []db.NewsItem
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	return items, nil
}

// GetBySlug 根据 slug 获取单条新闻
func (s *NewsService) GetBySlug(slug string) (*db.NewsItem, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: slug is required", ErrNewsInvalidInput)
	}

	var item db.NewsItem
	if err := s.db.Where("slug = ?", trimmed).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, fmt.Errorf("get news by slug: %w", err)
	}
	return &item, nil
}

// Create 新建新闻
func (s *NewsService) Create(input NewsInput) (*db.NewsItem, error) {
	slug := strings.TrimSpace(input.Slug)
	title := strings.TrimSpace(input.Title)
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", ErrNewsInvalidInput)
	}
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrNewsInvalidInput)
	}

	var existing db.NewsItem
	if err := s.db.Where("slug = ?", slug).First(&existing).Error; err == nil {
		return nil, ErrNewsSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check news slug: %w", err)
	}

	item := db.NewsItem{
		Slug:          slug,
		Title:         title,
		PublishedDate: time.Now(),
	}
	if input.Summary != nil {
		item.Summary = strings.TrimSpace(*input.Summary)
	}
	if input.Body != nil {
		item.Body = *input.Body
	}
	if input.Category != nil {
		item.Category = strings.TrimSpace(*input.Category)
	}
	if input.PublishedDate != nil {
		item.PublishedDate = *input.PublishedDate
	}
	if input.IsFeatured != nil {
		item.IsFeatured = *input.IsFeatured
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create news: %w", err)
	}
	return &item, nil
}

// Update 更新新闻字段；未传入的指针字段保持原值
func (s *NewsService) Update(id string, input NewsInput) (*db.NewsItem, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: id is required", ErrNewsInvalidInput)
	}

	var item db.NewsItem
	if err := s.db.Where("id = ?", trimmed).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, fmt.Errorf("get news: %w", err)
	}

	if slug := strings.TrimSpace(input.Slug); slug != "" && slug != item.Slug {
		var existing db.NewsItem
		if err := s.db.Where("slug = ? AND id <> ?", slug, item.ID).First(&existing).Error; err == nil {
			return nil, ErrNewsSlugTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check news slug: %w", err)
		}
		item.Slug = slug
	}
	if title := strings.TrimSpace(input.Title); title != "" {
		item.Title = title
	}
	if input.Summary != nil {
		item.Summary = strings.TrimSpace(*input.Summary)
	}
	if input.Body != nil {
		item.Body = *input.Body
	}
	if input.Category != nil {
		item.Category = strings.TrimSpace(*input.Category)
	}
	if input.PublishedDate != nil {
		item.PublishedDate = *input.PublishedDate
	}
	if input.IsFeatured != nil {
		item.IsFeatured = *input.IsFeatured
	}

	if err := s.db.Save(&item).Error; err != nil {
		return nil, fmt.Errorf("update news: %w", err)
	}
	return &item, nil
}

// Delete 删除单条新闻
func (s *NewsService) Delete(id string) error {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return fmt.Errorf("%w: id is required", ErrNewsInvalidInput)
	}

	result := s.db.Where("id = ?", trimmed).Delete(&db.NewsItem{})
	if result.Error != nil {
		return fmt.Errorf("delete news: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNewsNotFound
	}
	return nil
}
