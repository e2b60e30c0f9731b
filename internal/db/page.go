package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Page represents a URL-addressable document assembled from ordered Sections.
// Field casing in JSON is the one convention the rendering layer sees;
// column naming stays gorm's business.
type Page struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	Slug           string    `gorm:"uniqueIndex;not null" json:"slug"`
	Title          string    `gorm:"not null" json:"title"`
	SEOTitle       string    `json:"seoTitle,omitempty"`
	SEODescription string    `json:"seoDescription,omitempty"`
	IsHomePage     bool      `json:"isHomePage"`
	IsPublished    bool      `json:"isPublished"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BeforeCreate 为新页面分配 UUID 主键
func (p *Page) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
