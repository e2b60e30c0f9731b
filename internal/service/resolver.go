package service

import (
	"context"
	"log"

	"github.com/campusfront/internal/db"
	"github.com/campusfront/internal/seed"
)

// RemoteReader 是解析级联的第一层：远端内容服务的只读操作集
type RemoteReader interface {
	GetPageBySlug(ctx context.Context, slug string) (*db.Page, error)
	GetSectionsForPage(ctx context.Context, pageID string) ([]db.Section, error)
	GetNews(ctx context.Context, featuredOnly bool, limit int) ([]db.NewsItem, error)
	GetNewsBySlug(ctx context.Context, slug string) (*db.NewsItem, error)
}

// Resolver 实现三层读取级联：远端 → 本地内容库 → 内置快照。
// 每层失败都会记录日志并尝试下一层；全部失败时返回第一层的错误，
// 因为那是最有诊断价值的一个。层与层之间严格串行，不并发竞速。
//
// Resolver 只服务读取路径；写入永远只落在一个目标上（见 ContentWriter）。
type Resolver struct {
	remote   RemoteReader
	pages    *PageService
	sections *SectionService
	news     *NewsService
}

// NewResolver 构造 Resolver；remote 为 nil 表示离线模式，级联从本地层开始
func NewResolver(remote RemoteReader, pages *PageService, sections *SectionService, news *NewsService) *Resolver {
	return &Resolver{
		remote:   remote,
		pages:    pages,
		sections: sections,
		news:     news,
	}
}

// GetPageBySlug 逐层解析页面
func (r *Resolver) GetPageBySlug(ctx context.Context, slug string) (*db.Page, error) {
	var firstErr error

	if r.remote != nil {
		page, err := r.remote.GetPageBySlug(ctx, slug)
		if err == nil {
			return page, nil
		}
		firstErr = err
		log.Printf("resolver: remote page %q failed, trying local: %v", slug, err)
	}

	page, err := r.pages.GetBySlug(slug)
	if err == nil {
		return page, nil
	}
	if firstErr == nil {
		firstErr = err
	} else {
		log.Printf("resolver: local page %q failed, trying snapshot: %v", slug, err)
	}

	if mock, ok := seed.PageBySlug(slug); ok {
		return mock, nil
	}
	return nil, firstErr
}

// GetHomePage 解析主页：本地层优先使用 isHomePage 标记，
// 远端与快照层按约定用 slug=home
func (r *Resolver) GetHomePage(ctx context.Context) (*db.Page, error) {
	var firstErr error

	if r.remote != nil {
		page, err := r.remote.GetPageBySlug(ctx, "home")
		if err == nil {
			return page, nil
		}
		firstErr = err
		log.Printf("resolver: remote home page failed, trying local: %v", err)
	}

	page, err := r.pages.GetHomePage()
	if err == nil {
		return page, nil
	}
	if firstErr == nil {
		firstErr = err
	} else {
		log.Printf("resolver: local home page failed, trying snapshot: %v", err)
	}

	if mock, ok := seed.PageBySlug("home"); ok {
		return mock, nil
	}
	return nil, firstErr
}

// GetSectionsForPage 逐层解析页面区块，始终按 orderIndex 升序返回。
// 空列表不是失败：只有层内报错才会降级。
func (r *Resolver) GetSectionsForPage(ctx context.Context, pageID string) ([]db.Section, error) {
	var firstErr error

	if r.remote != nil {
		sections, err := r.remote.GetSectionsForPage(ctx, pageID)
		if err == nil {
			return sections, nil
		}
		firstErr = err
		log.Printf("resolver: remote sections for %q failed, trying local: %v", pageID, err)
	}

	sections, err := r.sections.ListForPage(pageID)
	if err == nil {
		return sections, nil
	}
	if firstErr == nil {
		firstErr = err
	} else {
		log.Printf("resolver: local sections for %q failed, trying snapshot: %v", pageID, err)
	}

	if mock := seed.SectionsForPage(pageID); len(mock) > 0 {
		return mock, nil
	}
	return nil, firstErr
}

// GetNews 逐层解析新闻列表，列表读取从不报错。
// 与区块不同：本地查询结果为空时继续落到快照层——新闻列表是
// 页面装饰位，宁可展示内置内容也不渲染空列表。
func (r *Resolver) GetNews(ctx context.Context, featuredOnly bool, limit int) ([]db.NewsItem, error) {
	if r.remote != nil {
		items, err := r.remote.GetNews(ctx, featuredOnly, limit)
		if err == nil {
			return items, nil
		}
		log.Printf("resolver: remote news failed, trying local: %v", err)
	}

	items, err := r.news.List(featuredOnly, limit)
	if err == nil && len(items) > 0 {
		return items, nil
	}
	if err != nil {
		log.Printf("resolver: local news failed, trying snapshot: %v", err)
	}

	return seed.NewsList(featuredOnly, limit), nil
}

// GetNewsBySlug 逐层解析单条新闻
func (r *Resolver) GetNewsBySlug(ctx context.Context, slug string) (*db.NewsItem, error) {
	var firstErr error

	if r.remote != nil {
		item, err := r.remote.GetNewsBySlug(ctx, slug)
		if err == nil {
			return item, nil
		}
		firstErr = err
		log.Printf("resolver: remote news %q failed, trying local: %v", slug, err)
	}

	item, err := r.news.GetBySlug(slug)
	if err == nil {
		return item, nil
	}
	if firstErr == nil {
		firstErr = err
	} else {
		log.Printf("resolver: local news %q failed, trying snapshot: %v", slug, err)
	}

	if mock, ok := seed.NewsBySlug(slug); ok {
		return mock, nil
	}
	return nil, firstErr
}
