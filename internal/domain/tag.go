package domain

import (
	"context"
	"time"
)

// Tag names are globally unique and case-sensitive. Tags are never deleted
// or renamed.
type Tag struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type TagRepository interface {
	GetByName(ctx context.Context, name string) (*Tag, error)
	// Create fails with ErrDuplicateTag if the name is already taken.
	Create(ctx context.Context, name string) (*Tag, error)
	// CreateOrGet treats a uniqueness conflict as the reuse path.
	CreateOrGet(ctx context.Context, name string) (*Tag, error)
	ListAll(ctx context.Context) ([]*Tag, error)
}
