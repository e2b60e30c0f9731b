package handler

import (
	"bytes"
	"html/template"
	"log"
	"net/http"

	"github.com/campusfront/internal/db"
	"github.com/campusfront/internal/render"
	"github.com/gin-gonic/gin"
)

var pageLayout = template.Must(template.New("layout").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>{{.SEOTitle}}</title>
{{if .SEODescription}}<meta name="description" content="{{.SEODescription}}"/>{{end}}
</head>
<body>
<header class="site-header"><a href="/">{{.SiteName}}</a></header>
<main class="page page-{{.Slug}}">
{{.Body}}
</main>
<footer class="site-footer">{{.SiteName}}</footer>
</body>
</html>`))

var unavailablePage = `<!DOCTYPE html>
<html lang="en"><head><meta charset="utf-8"/><title>Content unavailable</title></head>
<body><main><h1>Content unavailable</h1><p>The page you are looking for could not be loaded.</p></main></body></html>`

// ShowHomePage 渲染站点主页
func (a *API) ShowHomePage(c *gin.Context) {
	page, err := a.resolver.GetHomePage(c.Request.Context())
	if err != nil {
		log.Printf("public: home page unavailable: %v", err)
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(unavailablePage))
		return
	}
	a.renderPage(c, page)
}

// ShowPage 按 slug 渲染公共页面
func (a *API) ShowPage(c *gin.Context) {
	slug, ok := requireParam(c, "slug")
	if !ok {
		return
	}

	page, err := a.resolver.GetPageBySlug(c.Request.Context(), slug)
	if err != nil {
		log.Printf("public: page %q unavailable: %v", slug, err)
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(unavailablePage))
		return
	}
	a.renderPage(c, page)
}

// renderPage 组装整页：级联取区块 → 归一化 → 分发渲染 → 套版式。
// 区块读取失败不再继续降级（级联内部已经降过了），直接渲染空页身。
func (a *API) renderPage(c *gin.Context, page *db.Page) {
	if !page.IsPublished {
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(unavailablePage))
		return
	}

	ctx := c.Request.Context()
	sections, err := a.resolver.GetSectionsForPage(ctx, page.ID)
	if err != nil {
		log.Printf("public: sections for page %s unavailable: %v", page.ID, err)
		sections = nil
	}

	body := a.registry.RenderSections(ctx, render.Normalize(sections))

	seoTitle := page.SEOTitle
	if seoTitle == "" {
		seoTitle = page.Title + " · " + a.cfg.SiteName
	}

	data := struct {
		SiteName       string
		Slug           string
		SEOTitle       string
		SEODescription string
		Body           template.HTML
	}{
		SiteName:       a.cfg.SiteName,
		Slug:           page.Slug,
		SEOTitle:       seoTitle,
		SEODescription: page.SEODescription,
		Body:           body,
	}

	var buf bytes.Buffer
	if err := pageLayout.Execute(&buf, data); err != nil {
		log.Printf("public: layout for page %s failed: %v", page.ID, err)
		c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", []byte(unavailablePage))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
