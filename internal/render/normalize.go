// Package render turns an ordered section list into HTML: a pre-render
// normalization pass followed by a per-type rendering dispatch.
package render

import "github.com/campusfront/internal/db"

// defaultEyebrow 是降级 HERO 缺少 eyebrow 标签时的默认文案
const defaultEyebrow = "Highlights"

// Normalize 在渲染前整理区块列表，输入不会被修改：
//   - 第一个 HERO 原样通过；其后的 HERO 降级为 INTRO_HEADER，
//     标题与副标题原样保留，eyebrow 缺省为 "Highlights"
//   - 首位区块若不是 HERO，改写为 CONTENT_LEAD，
//     正文依次取 content、subtitle、title
//
// 作者装配区块时不需要关心页面的视觉约束（至多一个真 HERO、
// 顶部要有强引导位），这一步替他们兜底。结果仅用于渲染，从不持久化。
func Normalize(sections []db.Section) []db.Section {
	out := make([]db.Section, len(sections))
	copy(out, sections)

	heroSeen := false
	for i := range out {
		if out[i].Type != db.SectionHero {
			continue
		}
		if !heroSeen {
			heroSeen = true
			continue
		}

		out[i].Type = db.SectionIntroHeader
		payload := cloneJSONMap(out[i].ContentJSON)
		if stringField(payload, "eyebrow") == "" {
			if payload == nil {
				payload = db.JSONMap{}
			}
			payload["eyebrow"] = defaultEyebrow
		}
		out[i].ContentJSON = payload
	}

	if len(out) > 0 && out[0].Type != db.SectionHero {
		lead := &out[0]
		lead.Type = db.SectionContentLead
		if lead.Content == "" {
			if lead.Subtitle != "" {
				lead.Content = lead.Subtitle
			} else {
				lead.Content = lead.Title
			}
		}
	}

	return out
}

func cloneJSONMap(m db.JSONMap) db.JSONMap {
	if m == nil {
		return nil
	}
	out := make(db.JSONMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
