package tag

import (
	"context"
	"database/sql"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	TagsFor(ctx context.Context, contentType ContentType, objectID uint) ([]TaggedItem, error)
	GetOrCreate(ctx context.Context, label string) (*Tag, error)
	Attach(ctx context.Context, tag Tag, contentType ContentType, objectID uint) (*TaggedItem, error)
	Detach(ctx context.Context, tagID uint, contentType ContentType, objectID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// TagsFor loads the tagged items of one object together with their tags in a
// single join.
func (r *repository) TagsFor(ctx context.Context, contentType ContentType, objectID uint) ([]TaggedItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ti.id, ti.content_type, ti.object_id, t.id, t.label
		FROM tagged_items ti
		JOIN tags t ON t.id = ti.tag_id
		WHERE ti.content_type = $1 AND ti.object_id = $2
		ORDER BY t.label
	`, contentType, objectID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load tags",
			zap.String("layer", "repository"),
			zap.String("content_type", string(contentType)),
			zap.Uint("object_id", objectID),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	items := []TaggedItem{}
	for rows.Next() {
		var it TaggedItem
		if err := rows.Scan(&it.ID, &it.ContentType, &it.ObjectID, &it.Tag.ID, &it.Tag.Label); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) GetOrCreate(ctx context.Context, label string) (*Tag, error) {
	var t Tag
	// the no-op update makes RETURNING yield the existing row on conflict
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO tags (label) VALUES ($1)
		ON CONFLICT (label) DO UPDATE SET label = EXCLUDED.label
		RETURNING id, label
	`, label).Scan(&t.ID, &t.Label)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) Attach(ctx context.Context, tag Tag, contentType ContentType, objectID uint) (*TaggedItem, error) {
	it := TaggedItem{Tag: tag, ContentType: contentType, ObjectID: objectID}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO tagged_items (tag_id, content_type, object_id)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT tagged_items_unique DO UPDATE SET tag_id = EXCLUDED.tag_id
		RETURNING id
	`, tag.ID, contentType, objectID).Scan(&it.ID)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *repository) Detach(ctx context.Context, tagID uint, contentType ContentType, objectID uint) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM tagged_items
		WHERE tag_id = $1 AND content_type = $2 AND object_id = $3
	`, tagID, contentType, objectID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaggedItemNotFound
	}
	return nil
}
