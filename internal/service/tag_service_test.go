package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tranqh/finbot/internal/domain"
	"github.com/tranqh/finbot/internal/testutil"
)

func TestResolveAll_PreservesOrderAndDeduplicates(t *testing.T) {
	tagRepo := testutil.NewMockTagRepository()
	tagService := NewTagService(tagRepo)

	tags, err := tagService.ResolveAll(context.Background(), []string{"a", "a", "b"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(tags) != 2 {
		t.Fatalf("Expected 2 distinct tags, got %d", len(tags))
	}
	if tags[0].Name != "a" || tags[1].Name != "b" {
		t.Errorf("Expected order [a b], got [%s %s]", tags[0].Name, tags[1].Name)
	}
	if tags[0].ID == tags[1].ID {
		t.Error("Expected distinct tag ids")
	}
}

func TestResolveAll_EmptyInputSkipsStore(t *testing.T) {
	tagRepo := testutil.NewMockTagRepository()
	tagService := NewTagService(tagRepo)

	tags, err := tagService.ResolveAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("Expected no tags, got %d", len(tags))
	}
	if tagRepo.Calls != 0 {
		t.Errorf("Expected no store round-trips, got %d", tagRepo.Calls)
	}
}

func TestResolveAll_ReusesExisting(t *testing.T) {
	tagRepo := testutil.NewMockTagRepository()
	tagService := NewTagService(tagRepo)

	existing, _ := tagRepo.Create(context.Background(), "food")

	tags, err := tagService.ResolveAll(context.Background(), []string{"food", "travel"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if tags[0].ID != existing.ID {
		t.Errorf("Expected existing tag to be reused, got id %d", tags[0].ID)
	}
	if len(tagRepo.Tags) != 2 {
		t.Errorf("Expected 2 tag rows, got %d", len(tagRepo.Tags))
	}
}

func TestResolveAll_IsCaseSensitive(t *testing.T) {
	tagRepo := testutil.NewMockTagRepository()
	tagService := NewTagService(tagRepo)

	tags, err := tagService.ResolveAll(context.Background(), []string{"Food", "food"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(tags) != 2 {
		t.Errorf("Expected case-sensitive matching to yield 2 tags, got %d", len(tags))
	}
}

func TestCreate_Duplicate(t *testing.T) {
	tagRepo := testutil.NewMockTagRepository()
	tagService := NewTagService(tagRepo)

	if _, err := tagService.Create(context.Background(), "food"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := tagService.Create(context.Background(), "food"); !errors.Is(err, domain.ErrDuplicateTag) {
		t.Errorf("Expected ErrDuplicateTag, got %v", err)
	}
}

func TestCreate_Validation(t *testing.T) {
	tagService := NewTagService(testutil.NewMockTagRepository())

	if _, err := tagService.Create(context.Background(), ""); !errors.Is(err, domain.ErrTagNameRequired) {
		t.Errorf("Expected ErrTagNameRequired, got %v", err)
	}

	long := strings.Repeat("x", domain.MaxTagNameLength+1)
	if _, err := tagService.Create(context.Background(), long); !errors.Is(err, domain.ErrTagNameTooLong) {
		t.Errorf("Expected ErrTagNameTooLong, got %v", err)
	}
}

func TestList_OrderedByName(t *testing.T) {
	tagRepo := testutil.NewMockTagRepository()
	tagService := NewTagService(tagRepo)

	for _, name := range []string{"travel", "food", "rent"} {
		if _, err := tagRepo.Create(context.Background(), name); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	tags, err := tagService.List(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := []string{"food", "rent", "travel"}
	for i, tag := range tags {
		if tag.Name != want[i] {
			t.Errorf("Expected tag %d to be %s, got %s", i, want[i], tag.Name)
		}
	}
}
