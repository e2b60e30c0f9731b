package service

import (
	"context"

	"github.com/campusfront/internal/db"
)

// ContentWriter 是编辑操作的唯一写入目标。
// 配置了远端内容服务时写远端，离线模式写本地内容库——
// 永远不会同时写两边，写入失败也从不静默吞掉。
type ContentWriter interface {
	CreatePage(ctx context.Context, input PageInput) (*db.Page, error)
	UpdatePage(ctx context.Context, id string, input PageInput) (*db.Page, error)
	DeletePage(ctx context.Context, id string) error

	CreateSection(ctx context.Context, input SectionInput) (*db.Section, error)
	UpdateSection(ctx context.Context, id string, input SectionInput) (*db.Section, error)
	DeleteSection(ctx context.Context, id string) error
	ReorderSections(ctx context.Context, pageID string, orderedIDs []string) error

	CreateNews(ctx context.Context, input NewsInput) (*db.NewsItem, error)
	UpdateNews(ctx context.Context, id string, input NewsInput) (*db.NewsItem, error)
	DeleteNews(ctx context.Context, id string) error
}

// LocalWriter 将写入落到本地内容库，供离线模式使用
type LocalWriter struct {
	pages    *PageService
	sections *SectionService
	news     *NewsService
}

// NewLocalWriter 构造 LocalWriter
func NewLocalWriter(pages *PageService, sections *SectionService, news *NewsService) *LocalWriter {
	return &LocalWriter{pages: pages, sections: sections, news: news}
}

// CreatePage implements ContentWriter.
func (w *LocalWriter) CreatePage(_ context.Context, input PageInput) (*db.Page, error) {
	return w.pages.Create(input)
}

// UpdatePage implements ContentWriter.
func (w *LocalWriter) UpdatePage(_ context.Context, id string, input PageInput) (*db.Page, error) {
	return w.pages.Update(id, input)
}

// DeletePage implements ContentWriter.
func (w *LocalWriter) DeletePage(_ context.Context, id string) error {
	return w.pages.Delete(id)
}

// CreateSection implements ContentWriter.
func (w *LocalWriter) CreateSection(_ context.Context, input SectionInput) (*db.Section, error) {
	return w.sections.Create(input)
}

// UpdateSection implements ContentWriter.
func (w *LocalWriter) UpdateSection(_ context.Context, id string, input SectionInput) (*db.Section, error) {
	return w.sections.Update(id, input)
}

// DeleteSection implements ContentWriter.
func (w *LocalWriter) DeleteSection(_ context.Context, id string) error {
	return w.sections.Delete(id)
}

// ReorderSections implements ContentWriter. 本地重排自行校验页面归属，
// pageID 参数只用于远端路由，这里忽略。
func (w *LocalWriter) ReorderSections(_ context.Context, _ string, orderedIDs []string) error {
	return w.sections.Reorder(orderedIDs)
}

// CreateNews implements ContentWriter.
func (w *LocalWriter) CreateNews(_ context.Context, input NewsInput) (*db.NewsItem, error) {
	return w.news.Create(input)
}

// UpdateNews implements ContentWriter.
func (w *LocalWriter) UpdateNews(_ context.Context, id string, input NewsInput) (*db.NewsItem, error) {
	return w.news.Update(id, input)
}

// DeleteNews implements ContentWriter.
func (w *LocalWriter) DeleteNews(_ context.Context, id string) error {
	return w.news.Delete(id)
}
