package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/campusfront/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrPageNotFound 在指定的页面不存在时返回
	ErrPageNotFound = errors.New("page not found")
	// ErrPageInvalidInput 在输入数据不完整时返回
	ErrPageInvalidInput = errors.New("invalid page input")
	// ErrPageSlugTaken 在 slug 与已有页面冲突时返回
	ErrPageSlugTaken = errors.New("page slug already in use")
)

// PageService 负责本地内容库中的页面读写
// 页面独占其区块：删除页面会级联删除所有区块

type PageService struct {
	db *gorm.DB
}

// NewPageService 构造 PageService
func NewPageService(gdb *gorm.DB) *PageService {
	return &PageService{db: gdb}
}

// PageInput 描述创建或更新页面时可设置的字段
// 指针字段用于区分「未传入」与「显式清空」

type PageInput struct {
	Slug           string
	Title          string
	SEOTitle       *string
	SEODescription *string
	IsHomePage     *bool
	IsPublished    *bool
}

// GetBySlug fetches a page for a given slug.
func (s *PageService) GetBySlug(slug string) (*db.Page, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: slug is required", ErrPageInvalidInput)
	}

	var page db.Page
	if err := s.db.Where("slug = ?", trimmed).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, fmt.Errorf("get page by slug: %w", err)
	}
	return &page, nil
}

// GetByID 根据主键获取页面
func (s *PageService) GetByID(id string) (*db.Page, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: id is required", ErrPageInvalidInput)
	}

	var page db.Page
	if err := s.db.Where("id = ?", trimmed).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, fmt.Errorf("get page: %w", err)
	}
	return &page, nil
}

// GetHomePage 返回标记为主页的那一篇；不存在时回退 slug=home
func (s *PageService) GetHomePage() (*db.Page, error) {
	var page db.Page
	err := s.db.Where("is_home_page = ?", true).
		Order("updated_at DESC").
		First(&page).Error
	if err == nil {
		return &page, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("get home page: %w", err)
	}
	return s.GetBySlug("home")
}

// List 返回全部页面，供后台管理列表使用
func (s *PageService) List() ([]db.Page, error) {
	var pages []db.Page
	if err := s.db.Order("created_at ASC, id ASC").Find(&pages).Error; err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	return pages, nil
}

// Create 新建页面
func (s *PageService) Create(input PageInput) (*db.Page, error) {
	slug := strings.TrimSpace(input.Slug)
	title := strings.TrimSpace(input.Title)
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", ErrPageInvalidInput)
	}
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrPageInvalidInput)
	}

	var existing db.Page
	if err := s.db.Where("slug = ?", slug).First(&existing).Error; err == nil {
		return nil, ErrPageSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check page slug: %w", err)
	}

	page := db.Page{
		Slug:  slug,
		Title: title,
	}
	if input.SEOTitle != nil {
		page.SEOTitle = strings.TrimSpace(*input.SEOTitle)
	}
	if input.SEODescription != nil {
		page.SEODescription = strings.TrimSpace(*input.SEODescription)
	}
	if input.IsHomePage != nil {
		page.IsHomePage = *input.IsHomePage
	}
	if input.IsPublished != nil {
		page.IsPublished = *input.IsPublished
	}

	if err := s.db.Create(&page).Error; err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	return &page, nil
}

// Update 更新页面字段；未传入的指针字段保持原值
func (s *PageService) Update(id string, input PageInput) (*db.Page, error) {
	page, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if slug := strings.TrimSpace(input.Slug); slug != "" && slug != page.Slug {
		var existing db.Page
		if err := s.db.Where("slug = ? AND id <> ?", slug, page.ID).First(&existing).Error; err == nil {
			return nil, ErrPageSlugTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check page slug: %w", err)
		}
		page.Slug = slug
	}
	if title := strings.TrimSpace(input.Title); title != "" {
		page.Title = title
	}
	if input.SEOTitle != nil {
		page.SEOTitle = strings.TrimSpace(*input.SEOTitle)
	}
	if input.SEODescription != nil {
		page.SEODescription = strings.TrimSpace(*input.SEODescription)
	}
	if input.IsHomePage != nil {
		page.IsHomePage = *input.IsHomePage
	}
	if input.IsPublished != nil {
		page.IsPublished = *input.IsPublished
	}

	if err := s.db.Save(page).Error; err != nil {
		return nil, fmt.Errorf("update page: %w", err)
	}
	return page, nil
}

// Delete 删除页面并级联删除其全部区块
func (s *PageService) Delete(id string) error {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return fmt.Errorf("%w: id is required", ErrPageInvalidInput)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("page_id = ?", trimmed).Delete(&db.Section{}).Error; err != nil {
			return fmt.Errorf("delete page sections: %w", err)
		}

		result := tx.Where("id = ?", trimmed).Delete(&db.Page{})
		if result.Error != nil {
			return fmt.Errorf("delete page: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrPageNotFound
		}
		return nil
	})
}
