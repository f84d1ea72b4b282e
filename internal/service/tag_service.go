package service

import (
	"context"

	"github.com/tranqh/finbot/internal/domain"
)

// TagService handles tag resolution and creation
type TagService struct {
	tagRepo domain.TagRepository
}

// NewTagService creates a new TagService
func NewTagService(tagRepo domain.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// ResolveAll maps tag names to tag rows, creating missing ones. Input order
// is preserved and repeated names within the call are deduplicated. Matching
// is exact-string; normalization is the caller's concern. Empty input returns
// without a store round-trip.
func (s *TagService) ResolveAll(ctx context.Context, names []string) ([]*domain.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(names))
	tags := make([]*domain.Tag, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		tag, err := s.tagRepo.CreateOrGet(ctx, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// Create explicitly creates a tag. Unlike implicit resolution, an existing
// name fails with ErrDuplicateTag.
func (s *TagService) Create(ctx context.Context, name string) (*domain.Tag, error) {
	if name == "" {
		return nil, domain.ErrTagNameRequired
	}
	if len(name) > domain.MaxTagNameLength {
		return nil, domain.ErrTagNameTooLong
	}
	return s.tagRepo.Create(ctx, name)
}

// List returns all tags ordered by name
func (s *TagService) List(ctx context.Context) ([]*domain.Tag, error) {
	return s.tagRepo.ListAll(ctx)
}
