package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tranqh/finbot/internal/domain"
)

const tagColumns = `id, name, created_at`

// TagRepository implements domain.TagRepository using PostgreSQL
type TagRepository struct {
	pool *pgxpool.Pool
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(pool *pgxpool.Pool) *TagRepository {
	return &TagRepository{pool: pool}
}

// GetByName retrieves a tag by its exact name
func (r *TagRepository) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE name = $1`, name)
	tag, err := scanTag(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrTagNotFound
	}
	return tag, err
}

// Create inserts a new tag, failing with ErrDuplicateTag when the name is
// already taken
func (r *TagRepository) Create(ctx context.Context, name string) (*domain.Tag, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO tags (name) VALUES ($1) RETURNING `+tagColumns, name)
	tag, err := scanTag(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateTag
		}
		return nil, err
	}
	return tag, nil
}

// CreateOrGet inserts the tag or, on a uniqueness conflict, returns the row
// that won the race
func (r *TagRepository) CreateOrGet(ctx context.Context, name string) (*domain.Tag, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO tags (name) VALUES ($1)
		 ON CONFLICT (name) DO NOTHING
		 RETURNING `+tagColumns, name)
	tag, err := scanTag(row)
	if err == pgx.ErrNoRows {
		return r.GetByName(ctx, name)
	}
	return tag, err
}

// ListAll returns every tag ordered by name
func (r *TagRepository) ListAll(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+tagColumns+` FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func scanTag(row pgx.Row) (*domain.Tag, error) {
	var (
		id        int32
		name      string
		createdAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &name, &createdAt); err != nil {
		return nil, err
	}
	return &domain.Tag{ID: id, Name: name, CreatedAt: createdAt.Time}, nil
}
