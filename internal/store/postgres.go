package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortlinks/internal/links"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint hit.
const uniqueViolation = "23505"

// PostgresStore is a PostgreSQL implementation of links.Repository. The
// unique index on short_code is the final arbiter of code uniqueness, and
// every owner-scoped mutation runs as a single statement conditioned on
// both id and owner_id, so there is no check-then-mutate window.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed link store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const linkColumns = "id, owner_id, original_url, short_code, created_at, updated_at"

func (p *PostgresStore) FindByShortCode(ctx context.Context, code string) (*links.Link, error) {
	query := `
		SELECT ` + linkColumns + `
		FROM links
		WHERE short_code = $1
	`

	return p.scanOne(p.pool.QueryRow(ctx, query, code))
}

func (p *PostgresStore) FindByID(ctx context.Context, id int64) (*links.Link, error) {
	query := `
		SELECT ` + linkColumns + `
		FROM links
		WHERE id = $1
	`

	return p.scanOne(p.pool.QueryRow(ctx, query, id))
}

func (p *PostgresStore) FindAllByOwner(ctx context.Context, ownerID string) ([]links.Link, error) {
	query := `
		SELECT ` + linkColumns + `
		FROM links
		WHERE owner_id = $1
		ORDER BY updated_at DESC, id DESC
	`

	rows, err := p.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var owned []links.Link

	for rows.Next() {
		var link links.Link

		err = rows.Scan(
			&link.ID,
			&link.OwnerID,
			&link.OriginalURL,
			&link.ShortCode,
			&link.CreatedAt,
			&link.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		owned = append(owned, link)
	}

	return owned, rows.Err()
}

func (p *PostgresStore) Insert(ctx context.Context, newLink links.NewLink) (*links.Link, error) {
	query := `
		INSERT INTO links (owner_id, original_url, short_code)
		VALUES ($1, $2, $3)
		RETURNING ` + linkColumns + `
	`

	link, err := p.scanOne(p.pool.QueryRow(ctx, query,
		newLink.OwnerID,
		newLink.OriginalURL,
		newLink.ShortCode,
	))
	if err != nil {
		return nil, mapUniqueViolation(err)
	}

	return link, nil
}

func (p *PostgresStore) UpdateByID(ctx context.Context, id int64, ownerID, originalURL, shortCode string) (*links.Link, error) {
	// An empty shortCode keeps the current code; the CASE keeps the whole
	// mutation a single conditional statement.
	query := `
		UPDATE links
		SET original_url = $1,
		    short_code = CASE WHEN $2 = '' THEN short_code ELSE $2 END,
		    updated_at = now()
		WHERE id = $3 AND owner_id = $4
		RETURNING ` + linkColumns + `
	`

	link, err := p.scanOne(p.pool.QueryRow(ctx, query, originalURL, shortCode, id, ownerID))
	if err != nil {
		return nil, mapUniqueViolation(err)
	}

	return link, nil
}

func (p *PostgresStore) DeleteByID(ctx context.Context, id int64, ownerID string) (bool, error) {
	tag, err := p.pool.Exec(ctx,
		"DELETE FROM links WHERE id = $1 AND owner_id = $2", id, ownerID)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (p *PostgresStore) scanOne(row pgx.Row) (*links.Link, error) {
	var link links.Link

	err := row.Scan(
		&link.ID,
		&link.OwnerID,
		&link.OriginalURL,
		&link.ShortCode,
		&link.CreatedAt,
		&link.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, links.ErrNotFound
		}

		return nil, err
	}

	return &link, nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return links.ErrSlugTaken
	}

	return err
}
