package render

import (
	"context"
	"html/template"
	"log"
	"strings"

	"github.com/campusfront/internal/db"
)

// Renderer 将单个区块渲染为 HTML 片段。
// 区块的 contentJson 形状由各渲染器自行解释；payload 不合法时
// 渲染器应退化为空状态而不是报错。
type Renderer func(ctx context.Context, section db.Section) (template.HTML, error)

// Registry 按区块类型分发渲染器。
// 未注册的类型渲染为空并记录诊断日志——单个无法渲染的区块
// 永远不能中断整页的渲染。
type Registry struct {
	renderers map[string]Renderer
}

// NewRegistry 构造空的 Registry
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Register 为类型标签注册渲染器，后注册的覆盖先注册的
func (r *Registry) Register(sectionType string, fn Renderer) {
	trimmed := strings.TrimSpace(sectionType)
	if trimmed == "" || fn == nil {
		return
	}
	r.renderers[trimmed] = fn
}

// Render 渲染单个区块。
// 不可见区块、未知类型和渲染器错误都返回 ok=false 且不产出内容。
func (r *Registry) Render(ctx context.Context, section db.Section) (template.HTML, bool) {
	if !section.IsVisible {
		return "", false
	}

	fn, ok := r.renderers[section.Type]
	if !ok {
		log.Printf("render: no renderer registered for section type %q (id=%s)", section.Type, section.ID)
		return "", false
	}

	html, err := fn(ctx, section)
	if err != nil {
		log.Printf("render: section %s (%s) failed: %v", section.ID, section.Type, err)
		return "", false
	}
	return html, true
}

// RenderSections 渲染整个有序区块列表，并用交替的装饰条纹包裹，
// 形成页面的视觉节奏。条纹纯属装饰。
func (r *Registry) RenderSections(ctx context.Context, sections []db.Section) template.HTML {
	var builder strings.Builder
	band := 0
	for _, section := range sections {
		fragment, ok := r.Render(ctx, section)
		if !ok {
			continue
		}

		pattern := "band-plain"
		if band%2 == 1 {
			pattern = "band-tinted"
		}
		band++

		builder.WriteString(`<div class="band `)
		builder.WriteString(pattern)
		builder.WriteString(`">`)
		builder.WriteString(string(fragment))
		builder.WriteString(`</div>`)
	}
	return template.HTML(builder.String())
}
