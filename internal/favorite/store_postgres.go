// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package favorite

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinelogapp/cinelog/internal/platform/database/schema"
	"github.com/cinelogapp/cinelog/internal/platform/dberr"
)

// # PostgreSQL Repository

// favoriteRepository implements the [Repository] interface using pgx.
type favoriteRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed favorite store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &favoriteRepository{pool: pool}
}

/*
Create persists a new favorite mark.

Description: The UNIQUE(user, media) constraint rejects duplicate marks; the
violation is surfaced as apperr.Conflict via the dberr bridge.

Parameters:
  - context: context.Context
  - favorite: *Favorite

Returns:
  - error: apperr.Conflict on duplicates, execution failures
*/
func (repository *favoriteRepository) Create(context context.Context, favorite *Favorite) error {
	s := schema.MediaFavorite
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)`,
		s.Table, s.UserID, s.MediaType, s.MediaID, s.UpdateTime,
	)

	_, err := repository.pool.Exec(context, query,
		favorite.UserID,
		favorite.MediaType,
		favorite.MediaID,
		favorite.UpdateTime,
	)
	if err != nil {
		return dberr.Wrap(err, "favorite_create")
	}

	return nil
}

/*
Delete removes a favorite mark, reporting whether a row was hit.

Parameters:
  - context: context.Context
  - userID: string
  - mediaType, mediaID: int

Returns:
  - bool: true if a row was removed
  - error: Execution failures
*/
func (repository *favoriteRepository) Delete(context context.Context, userID string, mediaType, mediaID int) (bool, error) {
	s := schema.MediaFavorite
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s = $1 AND %s = $2 AND %s = $3`,
		s.Table, s.UserID, s.MediaType, s.MediaID,
	)

	tag, err := repository.pool.Exec(context, query, userID, mediaType, mediaID)
	if err != nil {
		return false, fmt.Errorf("postgres_favorite_repo_delete_failed: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

/*
ListByUser returns the user's favorites, most recently marked first.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []*Favorite: Ordered slice
  - error: Execution failures
*/
func (repository *favoriteRepository) ListByUser(context context.Context, userID string) ([]*Favorite, error) {
	s := schema.MediaFavorite
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC`,
		s.MediaType, s.MediaID, s.UpdateTime,
		s.Table, s.UserID, s.UpdateTime,
	)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_favorite_repo_list_failed: %w", err)
	}
	defer rows.Close()

	favorites := make([]*Favorite, 0)
	for rows.Next() {
		favorite := &Favorite{UserID: userID}
		if err := rows.Scan(&favorite.MediaType, &favorite.MediaID, &favorite.UpdateTime); err != nil {
			return nil, fmt.Errorf("postgres_favorite_repo_list_failed: %w", err)
		}
		favorites = append(favorites, favorite)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_favorite_repo_list_failed: %w", err)
	}

	return favorites, nil
}
