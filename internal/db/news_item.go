package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewsItem 定义了新闻模型
// 新闻独立于页面存在，NEWS_LIST 区块仅按查询条件在渲染时关联，
// 不持有外键。
type NewsItem struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	Slug          string    `gorm:"uniqueIndex;not null" json:"slug"`
	Title         string    `gorm:"not null" json:"title"`
	Summary       string    `json:"summary,omitempty"`
	Body          string    `gorm:"type:text" json:"body,omitempty"`
	Category      string    `json:"category,omitempty"`
	PublishedDate time.Time `json:"publishedDate"`
	IsFeatured    bool      `json:"isFeatured"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BeforeCreate 为新新闻分配 UUID 主键
func (n *NewsItem) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
