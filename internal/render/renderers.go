package render

import (
	"bytes"
	"context"
	"html/template"

	"github.com/campusfront/internal/db"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// NewsLookup 供 NEWS_LIST 渲染器在渲染时按条件查询新闻。
// 新闻与区块之间没有外键，关联完全发生在渲染时。
type NewsLookup func(ctx context.Context, featuredOnly bool, limit int) ([]db.NewsItem, error)

// DefaultRegistry 注册全部内置渲染器
func DefaultRegistry(newsLookup NewsLookup) *Registry {
	registry := NewRegistry()
	registry.Register(db.SectionHero, renderHero)
	registry.Register(db.SectionIntroHeader, renderIntroHeader)
	registry.Register(db.SectionContentLead, renderContentLead)
	registry.Register(db.SectionValueColumns, renderValueColumns)
	registry.Register(db.SectionStats, renderStats)
	registry.Register(db.SectionTextBlock, renderTextBlock)
	registry.Register(db.SectionCTABanner, renderCTABanner)
	registry.Register(db.SectionNewsList, newsListRenderer(newsLookup))
	return registry
}

type ctaLink struct {
	Label string
	Href  string
}

var heroTemplate = template.Must(template.New("hero").Parse(`<section class="hero"{{if .Background}} style="background-image:url('{{.Background}}')"{{end}}>
<h1>{{.Title}}</h1>
{{if .Subtitle}}<p class="hero-subtitle">{{.Subtitle}}</p>{{end}}
{{if .Primary.Label}}<a class="cta cta-primary" href="{{.Primary.Href}}">{{.Primary.Label}}</a>{{end}}
{{if .Secondary.Label}}<a class="cta cta-secondary" href="{{.Secondary.Href}}">{{.Secondary.Label}}</a>{{end}}
</section>`))

func renderHero(_ context.Context, section db.Section) (template.HTML, error) {
	data := struct {
		Title      string
		Subtitle   string
		Background string
		Primary    ctaLink
		Secondary  ctaLink
	}{
		Title:      section.Title,
		Subtitle:   section.Subtitle,
		Background: stringField(section.ContentJSON, "backgroundImage"),
		Primary:    ctaField(section.ContentJSON, "primaryCta"),
		Secondary:  ctaField(section.ContentJSON, "secondaryCta"),
	}

	var buf bytes.Buffer
	if err := heroTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

var introHeaderTemplate = template.Must(template.New("introHeader").Parse(`<header class="intro-header">
<span class="eyebrow">{{.Eyebrow}}</span>
<h2>{{.Title}}</h2>
{{if .Subtitle}}<p>{{.Subtitle}}</p>{{end}}
</header>`))

func renderIntroHeader(_ context.Context, section db.Section) (template.HTML, error) {
	eyebrow := stringField(section.ContentJSON, "eyebrow")
	if eyebrow == "" {
		eyebrow = defaultEyebrow
	}

	data := struct {
		Eyebrow  string
		Title    string
		Subtitle string
	}{Eyebrow: eyebrow, Title: section.Title, Subtitle: section.Subtitle}

	var buf bytes.Buffer
	if err := introHeaderTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

var contentLeadTemplate = template.Must(template.New("contentLead").Parse(`<section class="content-lead">
{{if .Title}}<h2>{{.Title}}</h2>{{end}}
<div class="lead-body">{{.Body}}</div>
</section>`))

func renderContentLead(_ context.Context, section db.Section) (template.HTML, error) {
	body, err := renderMarkdown(section.Content)
	if err != nil {
		return "", err
	}

	data := struct {
		Title string
		Body  template.HTML
	}{Title: section.Title, Body: body}

	var buf bytes.Buffer
	if err := contentLeadTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

var valueColumnsTemplate = template.Must(template.New("valueColumns").Parse(`<section class="value-columns">
{{if .Title}}<h2>{{.Title}}</h2>{{end}}
<div class="columns">
{{range .Columns}}<div class="column"><h3>{{.Title}}</h3><p>{{.Text}}</p></div>
{{end}}</div>
</section>`))

func renderValueColumns(_ context.Context, section db.Section) (template.HTML, error) {
	type column struct {
		Title string
		Text  string
	}

	var columns []column
	for _, entry := range listField(section.ContentJSON, "columns") {
		columns = append(columns, column{
			Title: stringField(entry, "title"),
			Text:  stringField(entry, "text"),
		})
	}

	data := struct {
		Title   string
		Columns []column
	}{Title: section.Title, Columns: columns}

	var buf bytes.Buffer
	if err := valueColumnsTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

var statsTemplate = template.Must(template.New("stats").Parse(`<section class="stats">
{{if .Title}}<h2>{{.Title}}</h2>{{end}}
<dl>
{{range .Stats}}<div class="stat"><dt>{{.Label}}</dt><dd>{{.Value}}</dd></div>
{{end}}</dl>
</section>`))

func renderStats(_ context.Context, section db.Section) (template.HTML, error) {
	type stat struct {
		Value string
		Label string
	}

	var stats []stat
	for _, entry := range listField(section.ContentJSON, "stats") {
		stats = append(stats, stat{
			Value: stringField(entry, "value"),
			Label: stringField(entry, "label"),
		})
	}

	data := struct {
		Title string
		Stats []stat
	}{Title: section.Title, Stats: stats}

	var buf bytes.Buffer
	if err := statsTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

var textBlockTemplate = template.Must(template.New("textBlock").Parse(`<section class="text-block">
{{if .Title}}<h2>{{.Title}}</h2>{{end}}
{{if .Subtitle}}<p class="subtitle">{{.Subtitle}}</p>{{end}}
<div class="body">{{.Body}}</div>
</section>`))

func renderTextBlock(_ context.Context, section db.Section) (template.HTML, error) {
	body, err := renderMarkdown(section.Content)
	if err != nil {
		return "", err
	}

	data := struct {
		Title    string
		Subtitle string
		Body     template.HTML
	}{Title: section.Title, Subtitle: section.Subtitle, Body: body}

	var buf bytes.Buffer
	if err := textBlockTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

var ctaBannerTemplate = template.Must(template.New("ctaBanner").Parse(`<section class="cta-banner">
<h2>{{.Title}}</h2>
{{if .Subtitle}}<p>{{.Subtitle}}</p>{{end}}
{{if .CTA.Label}}<a class="cta cta-primary" href="{{.CTA.Href}}">{{.CTA.Label}}</a>{{end}}
</section>`))

func renderCTABanner(_ context.Context, section db.Section) (template.HTML, error) {
	data := struct {
		Title    string
		Subtitle string
		CTA      ctaLink
	}{Title: section.Title, Subtitle: section.Subtitle, CTA: ctaField(section.ContentJSON, "cta")}

	var buf bytes.Buffer
	if err := ctaBannerTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

var newsListTemplate = template.Must(template.New("newsList").Parse(`<section class="news-list">
{{if .Title}}<h2>{{.Title}}</h2>{{end}}
<ul>
{{range .Items}}<li><a href="/news/{{.Slug}}">{{.Title}}</a>{{if .Summary}}<p>{{.Summary}}</p>{{end}}</li>
{{end}}</ul>
</section>`))

// newsListRenderer 在渲染时按 payload 中的 limit/featuredOnly 查询新闻。
// payload 缺失或损坏时使用默认条件；查询失败时渲染空列表而不是中断页面。
func newsListRenderer(lookup NewsLookup) Renderer {
	return func(ctx context.Context, section db.Section) (template.HTML, error) {
		limit := intField(section.ContentJSON, "limit")
		if limit <= 0 {
			limit = 3
		}
		featuredOnly := boolField(section.ContentJSON, "featuredOnly")

		var items []db.NewsItem
		if lookup != nil {
			found, err := lookup(ctx, featuredOnly, limit)
			if err == nil {
				items = found
			}
		}

		data := struct {
			Title string
			Items []db.NewsItem
		}{Title: section.Title, Items: items}

		var buf bytes.Buffer
		if err := newsListTemplate.Execute(&buf, data); err != nil {
			return "", err
		}
		return template.HTML(buf.String()), nil
	}
}

func renderMarkdown(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	safe := sanitizer.SanitizeBytes(buf.Bytes())
	return template.HTML(safe), nil
}

// 以下辅助函数对未约束的 payload 做宽松取值：
// 类型不匹配一律视为缺失，绝不因形状问题中断渲染。

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	if value, ok := m[key].(string); ok {
		return value
	}
	return ""
}

func boolField(m map[string]any, key string) bool {
	if m == nil {
		return false
	}
	if value, ok := m[key].(bool); ok {
		return value
	}
	return false
}

func intField(m map[string]any, key string) int {
	if m == nil {
		return 0
	}
	switch value := m[key].(type) {
	case float64:
		return int(value)
	case int:
		return value
	default:
		return 0
	}
}

func mapField(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	if value, ok := m[key].(map[string]any); ok {
		return value
	}
	return nil
}

func listField(m map[string]any, key string) []map[string]any {
	if m == nil {
		return nil
	}
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}

	out := make([]map[string]any, 0, len(raw))
	for _, entry := range raw {
		if item, ok := entry.(map[string]any); ok {
			out = append(out, item)
		}
	}
	return out
}

func ctaField(m map[string]any, key string) ctaLink {
	entry := mapField(m, key)
	return ctaLink{
		Label: stringField(entry, "label"),
		Href:  stringField(entry, "href"),
	}
}
