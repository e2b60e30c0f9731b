package render

import (
	"testing"

	"github.com/campusfront/internal/db"
)

func TestNormalizeDowngradesSecondHero(t *testing.T) {
	input := []db.Section{
		{ID: "a", Type: db.SectionHero, Title: "Welcome", Subtitle: "First hero", IsVisible: true},
		{ID: "b", Type: db.SectionTextBlock, Title: "Body", IsVisible: true},
		{ID: "c", Type: db.SectionHero, Title: "Second", Subtitle: "Should downgrade", IsVisible: true},
	}

	out := Normalize(input)

	if out[0].Type != db.SectionHero {
		t.Fatalf("first hero must pass through, got %s", out[0].Type)
	}
	if out[1].Type != db.SectionTextBlock {
		t.Fatalf("middle section must be untouched, got %s", out[1].Type)
	}
	if out[2].Type != db.SectionIntroHeader {
		t.Fatalf("second hero must become intro header, got %s", out[2].Type)
	}
	if out[2].Title != "Second" || out[2].Subtitle != "Should downgrade" {
		t.Fatalf("title/subtitle must be preserved verbatim: %+v", out[2])
	}
	if out[2].ContentJSON["eyebrow"] != "Highlights" {
		t.Fatalf("expected default eyebrow, got %v", out[2].ContentJSON["eyebrow"])
	}
}

func TestNormalizeKeepsExplicitEyebrow(t *testing.T) {
	input := []db.Section{
		{ID: "a", Type: db.SectionHero, IsVisible: true},
		{ID: "b", Type: db.SectionHero, ContentJSON: db.JSONMap{"eyebrow": "Spotlight"}, IsVisible: true},
	}

	out := Normalize(input)
	if out[1].ContentJSON["eyebrow"] != "Spotlight" {
		t.Fatalf("explicit eyebrow must survive, got %v", out[1].ContentJSON["eyebrow"])
	}
}

func TestNormalizePromotesLeadingNonHero(t *testing.T) {
	input := []db.Section{
		{ID: "a", Type: db.SectionTextBlock, Title: "Our Story", Subtitle: "Since 1892", IsVisible: true},
		{ID: "b", Type: db.SectionStats, IsVisible: true},
	}

	out := Normalize(input)

	if out[0].Type != db.SectionContentLead {
		t.Fatalf("leading non-hero must become content lead, got %s", out[0].Type)
	}
	if out[0].Content != "Since 1892" {
		t.Fatalf("lead body must fall back to subtitle, got %q", out[0].Content)
	}
	if out[1].Type != db.SectionStats {
		t.Fatalf("second section must be untouched, got %s", out[1].Type)
	}
}

func TestNormalizeLeadBodyPriority(t *testing.T) {
	withContent := Normalize([]db.Section{{Type: db.SectionTextBlock, Content: "body", Subtitle: "sub", Title: "title"}})
	if withContent[0].Content != "body" {
		t.Fatalf("content must win, got %q", withContent[0].Content)
	}

	titleOnly := Normalize([]db.Section{{Type: db.SectionTextBlock, Title: "title"}})
	if titleOnly[0].Content != "title" {
		t.Fatalf("title is the last fallback, got %q", titleOnly[0].Content)
	}
}

func TestNormalizeLeavesLeadingHeroAlone(t *testing.T) {
	input := []db.Section{
		{ID: "a", Type: db.SectionHero, Title: "Welcome", IsVisible: true},
		{ID: "b", Type: db.SectionStats, IsVisible: true},
	}

	out := Normalize(input)
	if out[0].Type != db.SectionHero || out[1].Type != db.SectionStats {
		t.Fatalf("nothing should change: %s, %s", out[0].Type, out[1].Type)
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	input := []db.Section{
		{ID: "a", Type: db.SectionHero, IsVisible: true},
		{ID: "b", Type: db.SectionHero, ContentJSON: db.JSONMap{"backgroundImage": "x.jpg"}, IsVisible: true},
	}

	_ = Normalize(input)

	if input[1].Type != db.SectionHero {
		t.Fatalf("input slice was mutated: %s", input[1].Type)
	}
	if _, ok := input[1].ContentJSON["eyebrow"]; ok {
		t.Fatal("input payload was mutated")
	}
}

func TestNormalizeEmptyList(t *testing.T) {
	if out := Normalize(nil); len(out) != 0 {
		t.Fatalf("expected empty output, got %d", len(out))
	}
}
