// Package seed holds the bundled sample content snapshot. It initializes the
// local store exactly once on first run and doubles as the final fallback
// tier when both the remote service and the local store fail.
package seed

import (
	"fmt"
	"strings"
	"time"

	"github.com/campusfront/internal/db"
	"gorm.io/gorm"
)

// Fixed ids keep seed relations stable and let the local tier and the mock
// tier agree on identity across restarts.
const (
	HomePageID       = "5f1c2a74-9b0e-4f28-8c3d-1a6740d2b9e1"
	AboutPageID      = "a3b8f1d0-52c7-4e91-b4a6-9d07c3e815fa"
	AdmissionsPageID = "c9e4d7b2-1f83-4a06-95c1-3b2e8f60da47"
)

var sectionIDs = map[string]string{
	"home-hero":    "0d92c7f4-6a1b-48e3-9f50-b81c2d4e7a36",
	"home-values":  "7b45e9a1-3c08-4d62-a7f9-58e0c1b3d684",
	"home-stats":   "e2f80c6d-95b4-471a-8e23-047dab91c5f0",
	"home-news":    "49a1d3e8-7c26-4b90-bf14-62e5a80c97d3",
	"home-cta":     "b6c0f2a9-814d-4e57-93b8-d75e1409a62c",
	"about-text":   "1e7a94c5-20fb-46d8-8a31-c96405b7e2df",
	"about-stats":  "84d2b6f0-c395-41ea-97c6-50a8e31f4b29",
	"adm-hero":     "f50e83a7-b1c4-4296-8d0f-7a39c2e6154b",
	"adm-text":     "62c9e0b3-4f75-4a18-b5d2-08317fac96e4",
}

// mustTime parses a bundled timestamp; the snapshot is static so a parse
// failure is a programming error.
func mustTime(value string) time.Time {
	ts, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(fmt.Sprintf("seed: bad date %q: %v", value, err))
	}
	return ts
}

// Pages returns the bundled sample pages.
func Pages() []db.Page {
	return []db.Page{
		{
			ID:             HomePageID,
			Slug:           "home",
			Title:          "Welcome to Riverside Academy",
			SEOTitle:       "Riverside Academy — Learn. Grow. Belong.",
			SEODescription: "Riverside Academy is a K-12 school focused on curiosity, community and character.",
			IsHomePage:     true,
			IsPublished:    true,
		},
		{
			ID:          AboutPageID,
			Slug:        "about",
			Title:       "About Our School",
			IsPublished: true,
		},
		{
			ID:          AdmissionsPageID,
			Slug:        "admissions",
			Title:       "Admissions",
			IsPublished: true,
		},
	}
}

// Sections returns the bundled sample sections, already densely ordered
// within each page.
func Sections() []db.Section {
	return []db.Section{
		{
			ID:         sectionIDs["home-hero"],
			PageID:     HomePageID,
			Type:       db.SectionHero,
			OrderIndex: 0,
			Title:      "Learn. Grow. Belong.",
			Subtitle:   "A community where every student is known by name.",
			ContentJSON: db.JSONMap{
				"backgroundImage": "/static/img/campus-morning.jpg",
				"primaryCta":      map[string]any{"label": "Apply now", "href": "/p/admissions"},
				"secondaryCta":    map[string]any{"label": "Visit us", "href": "/p/about"},
			},
			IsVisible: true,
		},
		{
			ID:         sectionIDs["home-values"],
			PageID:     HomePageID,
			Type:       db.SectionValueColumns,
			OrderIndex: 1,
			Title:      "What we stand for",
			ContentJSON: db.JSONMap{
				"columns": []any{
					map[string]any{"title": "Curiosity", "text": "Questions come first. Answers follow."},
					map[string]any{"title": "Community", "text": "Small classes, strong bonds."},
					map[string]any{"title": "Character", "text": "Doing the right thing when nobody watches."},
				},
			},
			IsVisible: true,
		},
		{
			ID:         sectionIDs["home-stats"],
			PageID:     HomePageID,
			Type:       db.SectionStats,
			OrderIndex: 2,
			Title:      "Riverside in numbers",
			ContentJSON: db.JSONMap{
				"stats": []any{
					map[string]any{"value": "640", "label": "Students"},
					map[string]any{"value": "11:1", "label": "Student-teacher ratio"},
					map[string]any{"value": "1892", "label": "Founded"},
				},
			},
			IsVisible: true,
		},
		{
			ID:         sectionIDs["home-news"],
			PageID:     HomePageID,
			Type:       db.SectionNewsList,
			OrderIndex: 3,
			Title:      "Latest news",
			ContentJSON: db.JSONMap{
				"limit":        float64(3),
				"featuredOnly": false,
			},
			IsVisible: true,
		},
		{
			ID:         sectionIDs["home-cta"],
			PageID:     HomePageID,
			Type:       db.SectionCTABanner,
			OrderIndex: 4,
			Title:      "Ready to join us?",
			Subtitle:   "Applications for the next school year are open.",
			ContentJSON: db.JSONMap{
				"cta": map[string]any{"label": "Start your application", "href": "/p/admissions"},
			},
			IsVisible: true,
		},
		{
			ID:         sectionIDs["about-text"],
			PageID:     AboutPageID,
			Type:       db.SectionTextBlock,
			OrderIndex: 0,
			Title:      "A school with history",
			Content:    "Founded in **1892**, Riverside Academy has grown from a single riverside classroom into a full K-12 campus.\n\nWe believe school should feel like a second home.",
			IsVisible:  true,
		},
		{
			ID:         sectionIDs["about-stats"],
			PageID:     AboutPageID,
			Type:       db.SectionStats,
			OrderIndex: 1,
			Title:      "Our campus",
			ContentJSON: db.JSONMap{
				"stats": []any{
					map[string]any{"value": "14", "label": "Acres"},
					map[string]any{"value": "3", "label": "Libraries"},
				},
			},
			IsVisible: true,
		},
		{
			ID:         sectionIDs["adm-hero"],
			PageID:     AdmissionsPageID,
			Type:       db.SectionHero,
			OrderIndex: 0,
			Title:      "Admissions",
			Subtitle:   "Everything you need to apply, in one place.",
			ContentJSON: db.JSONMap{
				"backgroundImage": "/static/img/library.jpg",
				"primaryCta":      map[string]any{"label": "Book a tour", "href": "/p/about"},
			},
			IsVisible: true,
		},
		{
			ID:         sectionIDs["adm-text"],
			PageID:     AdmissionsPageID,
			Type:       db.SectionTextBlock,
			OrderIndex: 1,
			Title:      "How to apply",
			Content:    "1. Submit the online form\n2. Visit the campus\n3. Meet your future teachers",
			IsVisible:  true,
		},
	}
}

// News returns the bundled sample news items.
func News() []db.NewsItem {
	return []db.NewsItem{
		{
			ID:            "3a7e92d1-5b04-4c68-a1f3-8d26e0b974c5",
			Slug:          "science-fair-winners",
			Title:         "Science Fair Winners Announced",
			Summary:       "Three student projects move on to the regional round.",
			Body:          "The jury highlighted the creativity of this year's entries.",
			Category:      "Academics",
			PublishedDate: mustTime("2026-05-12"),
			IsFeatured:    true,
		},
		{
			ID:            "90b4f6c8-2e17-4d53-b8a9-47c1d05e362f",
			Slug:          "new-library-wing",
			Title:         "New Library Wing Opens",
			Summary:       "The east wing adds 120 study seats and a maker space.",
			Category:      "Campus",
			PublishedDate: mustTime("2026-04-02"),
			IsFeatured:    true,
		},
		{
			ID:            "d15c08ae-79f3-4b26-9e04-b3a862f51c7d",
			Slug:          "spring-concert",
			Title:         "Spring Concert: Save the Date",
			Summary:       "The school orchestra performs on June 14th.",
			Category:      "Events",
			PublishedDate: mustTime("2026-03-21"),
			IsFeatured:    false,
		},
	}
}

// Apply 首次运行时填充本地内容库。
// 仅当 pages 表为空时写入，整个快照在一个事务内提交。
func Apply(gdb *gorm.DB) error {
	var count int64
	if err := gdb.Model(&db.Page{}).Count(&count).Error; err != nil {
		return fmt.Errorf("seed check pages: %w", err)
	}
	if count > 0 {
		return nil
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		for _, page := range Pages() {
			page := page
			if err := tx.Create(&page).Error; err != nil {
				return fmt.Errorf("seed page %s: %w", page.Slug, err)
			}
		}
		for _, section := range Sections() {
			section := section
			if err := tx.Create(&section).Error; err != nil {
				return fmt.Errorf("seed section %s: %w", section.ID, err)
			}
		}
		for _, item := range News() {
			item := item
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("seed news %s: %w", item.Slug, err)
			}
		}
		return nil
	})
}

// PageBySlug serves the mock tier: a read-only lookup against the snapshot.
func PageBySlug(slug string) (*db.Page, bool) {
	for _, page := range Pages() {
		if strings.EqualFold(page.Slug, slug) {
			page := page
			return &page, true
		}
	}
	return nil, false
}

// SectionsForPage serves the mock tier, ordered by orderIndex ascending.
func SectionsForPage(pageID string) []db.Section {
	var out []db.Section
	for _, section := range Sections() {
		if section.PageID == pageID {
			out = append(out, section)
		}
	}
	// snapshot sections are authored in order, but keep the contract explicit
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].OrderIndex > out[j].OrderIndex; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// NewsList serves the mock tier with the same query semantics as the stores.
func NewsList(featuredOnly bool, limit int) []db.NewsItem {
	items := News()
	out := make([]db.NewsItem, 0, len(items))
	for _, item := range items {
		if featuredOnly && !item.IsFeatured {
			continue
		}
		out = append(out, item)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// NewsBySlug serves the mock tier.
func NewsBySlug(slug string) (*db.NewsItem, bool) {
	for _, item := range News() {
		if strings.EqualFold(item.Slug, slug) {
			item := item
			return &item, true
		}
	}
	return nil, false
}
