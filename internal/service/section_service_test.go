package service

import (
	"errors"
	"testing"
	"time"

	"github.com/campusfront/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.Page{}, &db.Section{}, &db.NewsItem{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func seedPageWithSections(t *testing.T, gdb *gorm.DB, slug string, count int) (db.Page, []db.Section) {
	t.Helper()

	page := db.Page{Slug: slug, Title: "Test Page", IsPublished: true}
	if err := gdb.Create(&page).Error; err != nil {
		t.Fatalf("failed to seed page: %v", err)
	}

	sections := make([]db.Section, 0, count)
	for i := 0; i < count; i++ {
		section := db.Section{
			PageID:     page.ID,
			Type:       db.SectionTextBlock,
			OrderIndex: i,
			Title:      "Section",
			IsVisible:  true,
		}
		if err := gdb.Create(&section).Error; err != nil {
			t.Fatalf("failed to seed section: %v", err)
		}
		sections = append(sections, section)
	}
	return page, sections
}

func TestReorderRewritesOrderIndexes(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	_, sections := seedPageWithSections(t, gdb, "about", 3)
	s1, s2, s3 := sections[0], sections[1], sections[2]

	svc := NewSectionService(gdb)
	if err := svc.Reorder([]string{s3.ID, s1.ID, s2.ID}); err != nil {
		t.Fatalf("Reorder returned error: %v", err)
	}

	ordered, err := svc.ListForPage(s1.PageID)
	if err != nil {
		t.Fatalf("ListForPage returned error: %v", err)
	}
	if len(ordered) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(ordered))
	}

	wantIDs := []string{s3.ID, s1.ID, s2.ID}
	for i, section := range ordered {
		if section.ID != wantIDs[i] {
			t.Fatalf("position %d: expected %s, got %s", i, wantIDs[i], section.ID)
		}
		if section.OrderIndex != i {
			t.Fatalf("section %s: expected orderIndex=%d, got %d", section.ID, i, section.OrderIndex)
		}
	}
}

func TestReorderUnknownIDRollsBack(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	_, sections := seedPageWithSections(t, gdb, "about", 3)

	svc := NewSectionService(gdb)
	err := svc.Reorder([]string{sections[2].ID, "does-not-exist", sections[0].ID})
	if !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}

	// 所有区块的 orderIndex 必须保持原样
	for i, original := range sections {
		var reloaded db.Section
		if err := gdb.Where("id = ?", original.ID).First(&reloaded).Error; err != nil {
			t.Fatalf("failed to reload section: %v", err)
		}
		if reloaded.OrderIndex != i {
			t.Fatalf("section %s: expected orderIndex=%d after rollback, got %d", original.ID, i, reloaded.OrderIndex)
		}
	}
}

func TestReorderRejectsCrossPageIDs(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	_, first := seedPageWithSections(t, gdb, "about", 2)
	_, second := seedPageWithSections(t, gdb, "contact", 1)

	svc := NewSectionService(gdb)
	err := svc.Reorder([]string{first[0].ID, second[0].ID, first[1].ID})
	if !errors.Is(err, ErrSectionPageMismatch) {
		t.Fatalf("expected ErrSectionPageMismatch, got %v", err)
	}

	var reloaded db.Section
	if err := gdb.Where("id = ?", first[1].ID).First(&reloaded).Error; err != nil {
		t.Fatalf("failed to reload section: %v", err)
	}
	if reloaded.OrderIndex != 1 {
		t.Fatalf("expected orderIndex unchanged, got %d", reloaded.OrderIndex)
	}
}

func TestReorderAcceptsPaddedIDs(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	_, sections := seedPageWithSections(t, gdb, "about", 2)

	svc := NewSectionService(gdb)
	if err := svc.Reorder([]string{" " + sections[1].ID + " ", sections[0].ID}); err != nil {
		t.Fatalf("Reorder returned error: %v", err)
	}

	ordered, err := svc.ListForPage(sections[0].PageID)
	if err != nil {
		t.Fatalf("ListForPage returned error: %v", err)
	}
	if ordered[0].ID != sections[1].ID || ordered[1].ID != sections[0].ID {
		t.Fatal("expected padded ids to be trimmed before reordering")
	}
}

func TestReorderRejectsDuplicateIDs(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	_, sections := seedPageWithSections(t, gdb, "about", 2)

	svc := NewSectionService(gdb)
	if err := svc.Reorder([]string{sections[0].ID, sections[0].ID}); !errors.Is(err, ErrSectionOrder) {
		t.Fatalf("expected ErrSectionOrder, got %v", err)
	}
}

func TestCreateSectionAppendsAtSiblingCount(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	page, _ := seedPageWithSections(t, gdb, "about", 2)

	svc := NewSectionService(gdb)
	section, err := svc.Create(SectionInput{PageID: page.ID, Type: db.SectionStats})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if section.OrderIndex != 2 {
		t.Fatalf("expected appended orderIndex=2, got %d", section.OrderIndex)
	}
	if !section.IsVisible {
		t.Fatal("expected new section to default to visible")
	}
}

func TestListForPageBreaksEqualIndexTiesByCreation(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	page := db.Page{Slug: "about", Title: "Test Page", IsPublished: true}
	if err := gdb.Create(&page).Error; err != nil {
		t.Fatalf("failed to seed page: %v", err)
	}

	// 并发编辑可能留下相同的 orderIndex：读取顺序必须仍然确定
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	first := db.Section{PageID: page.ID, Type: db.SectionTextBlock, OrderIndex: 1, Title: "First", IsVisible: true, CreatedAt: base}
	if err := gdb.Create(&first).Error; err != nil {
		t.Fatalf("failed to seed section: %v", err)
	}
	second := db.Section{PageID: page.ID, Type: db.SectionTextBlock, OrderIndex: 1, Title: "Second", IsVisible: true, CreatedAt: base.Add(time.Second)}
	if err := gdb.Create(&second).Error; err != nil {
		t.Fatalf("failed to seed section: %v", err)
	}

	svc := NewSectionService(gdb)
	ordered, err := svc.ListForPage(page.ID)
	if err != nil {
		t.Fatalf("ListForPage returned error: %v", err)
	}
	if len(ordered) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(ordered))
	}
	if ordered[0].ID != first.ID || ordered[1].ID != second.ID {
		t.Fatalf("expected creation order for equal indexes, got %s then %s", ordered[0].Title, ordered[1].Title)
	}
}

func TestDeleteSectionLeavesSiblingOrderAlone(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	_, sections := seedPageWithSections(t, gdb, "about", 3)

	svc := NewSectionService(gdb)
	if err := svc.Delete(sections[1].ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	remaining, err := svc.ListForPage(sections[0].PageID)
	if err != nil {
		t.Fatalf("ListForPage returned error: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(remaining))
	}
	// 删除不压缩排序：留下 0 和 2
	if remaining[0].OrderIndex != 0 || remaining[1].OrderIndex != 2 {
		t.Fatalf("expected order indexes 0 and 2, got %d and %d", remaining[0].OrderIndex, remaining[1].OrderIndex)
	}
}

func TestUpdateSectionCannotChangePage(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	_, sections := seedPageWithSections(t, gdb, "about", 1)

	svc := NewSectionService(gdb)
	if _, err := svc.Update(sections[0].ID, SectionInput{PageID: "another-page"}); !errors.Is(err, ErrSectionInvalidInput) {
		t.Fatalf("expected ErrSectionInvalidInput, got %v", err)
	}
}

func TestCreateSectionRequiresExistingPage(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewSectionService(gdb)
	if _, err := svc.Create(SectionInput{PageID: "missing", Type: db.SectionHero}); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}
