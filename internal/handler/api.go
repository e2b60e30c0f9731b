package handler

import (
	"github.com/campusfront/internal/config"
	"github.com/campusfront/internal/render"
	"github.com/campusfront/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
// Reads go through the resolution cascade; mutations go through the single
// configured ContentWriter (remote when configured, local otherwise).
type API struct {
	cfg      config.AppConfig
	resolver *service.Resolver
	writer   service.ContentWriter
	registry *render.Registry

	// local store services, used directly by authoring reads that have no
	// cascade semantics (e.g. the page list in the editor)
	pages    *service.PageService
	sections *service.SectionService
	news     *service.NewsService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(cfg config.AppConfig, gdb *gorm.DB) *API {
	pages := service.NewPageService(gdb)
	sections := service.NewSectionService(gdb)
	news := service.NewNewsService(gdb)

	var remote service.RemoteReader
	var writer service.ContentWriter = service.NewLocalWriter(pages, sections, news)
	if cfg.RemoteConfigured() {
		client := service.NewRemoteClient(cfg.RemoteContentURL)
		remote = client
		writer = client
	}

	resolver := service.NewResolver(remote, pages, sections, news)

	api := &API{
		cfg:      cfg,
		resolver: resolver,
		writer:   writer,
		pages:    pages,
		sections: sections,
		news:     news,
	}
	api.registry = render.DefaultRegistry(resolver.GetNews)
	return api
}

// Resolver exposes the read cascade, mainly for tests.
func (a *API) Resolver() *service.Resolver {
	return a.resolver
}
