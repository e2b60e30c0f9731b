package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Section type tags. The first group is authorable; INTRO_HEADER and
// CONTENT_LEAD are presentation variants produced by the render normalizer
// and never persisted.
const (
	SectionHero         = "HERO"
	SectionValueColumns = "VALUE_COLUMNS"
	SectionStats        = "STATS"
	SectionNewsList     = "NEWS_LIST"
	SectionTextBlock    = "TEXT_BLOCK"
	SectionCTABanner    = "CTA_BANNER"

	SectionIntroHeader = "INTRO_HEADER"
	SectionContentLead = "CONTENT_LEAD"
)

// Section is one typed, positioned content block within a Page.
// ContentJSON is an open payload whose internal shape is defined per Type;
// the store never validates it beyond being a JSON object.
type Section struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	PageID      string    `gorm:"index;not null" json:"pageId"`
	Type        string    `gorm:"not null" json:"type"`
	OrderIndex  int       `gorm:"not null;default:0" json:"orderIndex"`
	Title       string    `json:"title,omitempty"`
	Subtitle    string    `json:"subtitle,omitempty"`
	Content     string    `gorm:"type:text" json:"content,omitempty"`
	ContentJSON JSONMap   `gorm:"type:text" json:"contentJson,omitempty"`
	IsVisible   bool      `gorm:"not null;default:true" json:"isVisible"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BeforeCreate 为新区块分配 UUID 主键
func (s *Section) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
