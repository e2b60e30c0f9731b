package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/campusfront/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrSectionNotFound 在指定的区块不存在时返回
	ErrSectionNotFound = errors.New("section not found")
	// ErrSectionInvalidInput 在输入数据不完整时返回
	ErrSectionInvalidInput = errors.New("invalid section input")
	// ErrSectionOrder 在重排请求包含空 ID 或重复 ID 时返回
	ErrSectionOrder = errors.New("invalid section order")
	// ErrSectionPageMismatch 在重排请求跨越多个页面时返回
	ErrSectionPageMismatch = errors.New("sections belong to different pages")
)

// SectionService 负责本地内容库中的区块读写与重排

type SectionService struct {
	db *gorm.DB
}

// NewSectionService 构造 SectionService
func NewSectionService(gdb *gorm.DB) *SectionService {
	return &SectionService{db: gdb}
}

// SectionInput 描述创建或更新区块时可设置的字段
// OrderIndex 为 nil 时新区块追加到同页末尾

type SectionInput struct {
	PageID      string
	Type        string
	OrderIndex  *int
	Title       *string
	Subtitle    *string
	Content     *string
	ContentJSON db.JSONMap
	IsVisible   *bool
}

// ListForPage 返回页面的全部区块，按 orderIndex 升序。
// orderIndex 相同（并发编辑下可能出现）时按创建顺序兜底，保证读取确定。
func (s *SectionService) ListForPage(pageID string) ([]db.Section, error) {
	trimmed := strings.TrimSpace(pageID)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: pageId is required", ErrSectionInvalidInput)
	}

	var sections []db.Section
	if err := s.db.Where("page_id = ?", trimmed).
		Order("order_index ASC, created_at ASC, id ASC").
		Find(&sections).Error; err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return sections, nil
}

// GetByID 根据主键获取区块
func (s *SectionService) GetByID(id string) (*db.Section, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: id is required", ErrSectionInvalidInput)
	}

	var section db.Section
	if err := s.db.Where("id = ?", trimmed).First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, fmt.Errorf("get section: %w", err)
	}
	return &section, nil
}

// Create 在指定页面下新建区块，未指定排序时追加到同页末尾
func (s *SectionService) Create(input SectionInput) (*db.Section, error) {
	pageID := strings.TrimSpace(input.PageID)
	sectionType := strings.TrimSpace(input.Type)
	if pageID == "" {
		return nil, fmt.Errorf("%w: pageId is required", ErrSectionInvalidInput)
	}
	if sectionType == "" {
		return nil, fmt.Errorf("%w: type is required", ErrSectionInvalidInput)
	}

	var page db.Page
	if err := s.db.Where("id = ?", pageID).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, fmt.Errorf("check section page: %w", err)
	}

	orderIndex, err := s.resolveOrderIndex(pageID, input.OrderIndex)
	if err != nil {
		return nil, err
	}

	section := db.Section{
		PageID:      pageID,
		Type:        sectionType,
		OrderIndex:  orderIndex,
		ContentJSON: input.ContentJSON,
		IsVisible:   true,
	}
	if input.Title != nil {
		section.Title = strings.TrimSpace(*input.Title)
	}
	if input.Subtitle != nil {
		section.Subtitle = strings.TrimSpace(*input.Subtitle)
	}
	if input.Content != nil {
		section.Content = *input.Content
	}
	if input.IsVisible != nil {
		section.IsVisible = *input.IsVisible
	}

	if err := s.db.Create(&section).Error; err != nil {
		return nil, fmt.Errorf("create section: %w", err)
	}
	return &section, nil
}

// Update 更新区块字段；未传入的指针字段保持原值。
// 不允许把区块移动到另一个页面。
func (s *SectionService) Update(id string, input SectionInput) (*db.Section, error) {
	section, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if pageID := strings.TrimSpace(input.PageID); pageID != "" && pageID != section.PageID {
		return nil, fmt.Errorf("%w: pageId cannot change", ErrSectionInvalidInput)
	}
	if sectionType := strings.TrimSpace(input.Type); sectionType != "" {
		section.Type = sectionType
	}
	if input.OrderIndex != nil {
		section.OrderIndex = *input.OrderIndex
	}
	if input.Title != nil {
		section.Title = strings.TrimSpace(*input.Title)
	}
	if input.Subtitle != nil {
		section.Subtitle = strings.TrimSpace(*input.Subtitle)
	}
	if input.Content != nil {
		section.Content = *input.Content
	}
	if input.ContentJSON != nil {
		section.ContentJSON = input.ContentJSON
	}
	if input.IsVisible != nil {
		section.IsVisible = *input.IsVisible
	}

	if err := s.db.Save(section).Error; err != nil {
		return nil, fmt.Errorf("update section: %w", err)
	}
	return section, nil
}

// Delete 删除单个区块。
// 兄弟区块的 orderIndex 不会自动压缩，留下的空洞不影响排序读取；
// 编辑端可通过一次 Reorder 重新归一。
func (s *SectionService) Delete(id string) error {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return fmt.Errorf("%w: id is required", ErrSectionInvalidInput)
	}

	result := s.db.Where("id = ?", trimmed).Delete(&db.Section{})
	if result.Error != nil {
		return fmt.Errorf("delete section: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSectionNotFound
	}
	return nil
}

// Reorder 按给定顺序重排区块：orderedIds[i] 的区块获得 orderIndex=i。
// 整个操作在一个事务中执行：任何 ID 不存在、或 ID 跨越多个页面，
// 都会让整个重排失败回滚，不会出现部分重排的中间状态。
func (s *SectionService) Reorder(orderedIDs []string) error {
	if len(orderedIDs) == 0 {
		return nil
	}

	ids := make([]string, 0, len(orderedIDs))
	seen := make(map[string]struct{}, len(orderedIDs))
	for _, id := range orderedIDs {
		trimmed := strings.TrimSpace(id)
		if trimmed == "" {
			return ErrSectionOrder
		}
		if _, ok := seen[trimmed]; ok {
			return ErrSectionOrder
		}
		seen[trimmed] = struct{}{}
		ids = append(ids, trimmed)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var sections []db.Section
		if err := tx.Where("id IN ?", ids).Find(&sections).Error; err != nil {
			return fmt.Errorf("load sections for reorder: %w", err)
		}
		if len(sections) != len(ids) {
			return ErrSectionNotFound
		}

		pageID := sections[0].PageID
		for _, section := range sections {
			if section.PageID != pageID {
				return ErrSectionPageMismatch
			}
		}

		for index, id := range ids {
			result := tx.Model(&db.Section{}).Where("id = ?", id).Update("order_index", index)
			if result.Error != nil {
				return fmt.Errorf("reorder sections: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return ErrSectionNotFound
			}
		}
		return nil
	})
}

func (s *SectionService) resolveOrderIndex(pageID string, orderPtr *int) (int, error) {
	if orderPtr != nil {
		return *orderPtr, nil
	}

	var count int64
	if err := s.db.Model(&db.Section{}).Where("page_id = ?", pageID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("resolve section order: %w", err)
	}
	return int(count), nil
}
