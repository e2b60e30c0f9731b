package service

import (
	"errors"
	"testing"

	"github.com/campusfront/internal/db"
)

func TestPageGetBySlugNotFound(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewPageService(gdb)
	if _, err := svc.GetBySlug("missing"); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}

func TestPageGetBySlugRequiresSlug(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewPageService(gdb)
	if _, err := svc.GetBySlug("  "); !errors.Is(err, ErrPageInvalidInput) {
		t.Fatalf("expected ErrPageInvalidInput, got %v", err)
	}
}

func TestPageCreateRejectsDuplicateSlug(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewPageService(gdb)
	if _, err := svc.Create(PageInput{Slug: "about", Title: "About"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Create(PageInput{Slug: "about", Title: "About Again"}); !errors.Is(err, ErrPageSlugTaken) {
		t.Fatalf("expected ErrPageSlugTaken, got %v", err)
	}
}

func TestPageDeleteCascadesSections(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	page, _ := seedPageWithSections(t, gdb, "about", 3)

	svc := NewPageService(gdb)
	if err := svc.Delete(page.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	var count int64
	if err := gdb.Model(&db.Section{}).Where("page_id = ?", page.ID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count sections: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected cascade delete of sections, %d left", count)
	}

	if _, err := svc.GetByID(page.ID); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected page to be gone, got %v", err)
	}
}

func TestPageGetHomePagePrefersFlag(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewPageService(gdb)
	home := true
	if _, err := svc.Create(PageInput{Slug: "home", Title: "Slug Home"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	flagged, err := svc.Create(PageInput{Slug: "welcome", Title: "Flagged Home", IsHomePage: &home})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := svc.GetHomePage()
	if err != nil {
		t.Fatalf("GetHomePage returned error: %v", err)
	}
	if got.ID != flagged.ID {
		t.Fatalf("expected flagged page %s, got %s", flagged.ID, got.ID)
	}
}

func TestPageUpdatePartialFields(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewPageService(gdb)
	page, err := svc.Create(PageInput{Slug: "about", Title: "About"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	seo := "About Riverside"
	updated, err := svc.Update(page.ID, PageInput{SEOTitle: &seo})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.SEOTitle != seo {
		t.Fatalf("expected seo title to update, got %q", updated.SEOTitle)
	}
	if updated.Title != "About" || updated.Slug != "about" {
		t.Fatalf("expected untouched fields to remain, got %+v", updated)
	}
}
