// Package storage persists user favorites in PostgreSQL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jonesrussell/domain-scout/internal/domain"
)

var (
	// ErrNotFound is returned when a favorite does not exist.
	ErrNotFound = errors.New("favorite not found")

	// ErrAlreadyExists is returned when the domain is already saved.
	ErrAlreadyExists = errors.New("favorite already exists")
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaches.
const uniqueViolation = "23505"

// FavoriteRepository provides favorite persistence on PostgreSQL.
type FavoriteRepository struct {
	db *sqlx.DB
}

// NewFavoriteRepository creates a repository over the given connection.
func NewFavoriteRepository(db *sqlx.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Save stores a favorite. Saving the same domain twice returns
// ErrAlreadyExists.
func (r *FavoriteRepository) Save(ctx context.Context, domainName, projectIdea string) (*domain.Favorite, error) {
	fav := &domain.Favorite{
		ID:          uuid.New(),
		Domain:      domainName,
		ProjectIdea: projectIdea,
		CreatedAt:   time.Now(),
	}

	query := `
		INSERT INTO favorites (id, domain, project_idea, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, domain, project_idea, created_at
	`

	err := r.db.QueryRowxContext(
		ctx, query,
		fav.ID, fav.Domain, fav.ProjectIdea, fav.CreatedAt,
	).StructScan(fav)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("insert favorite: %w", err)
	}

	return fav, nil
}

// List returns all favorites, newest first.
func (r *FavoriteRepository) List(ctx context.Context) ([]domain.Favorite, error) {
	favorites := []domain.Favorite{}
	query := `
		SELECT id, domain, project_idea, created_at
		FROM favorites
		ORDER BY created_at DESC
	`

	if err := r.db.SelectContext(ctx, &favorites, query); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	return favorites, nil
}

// Delete removes a favorite by ID.
func (r *FavoriteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// Ping checks database connectivity for health reporting.
func (r *FavoriteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Connect opens and verifies a PostgreSQL connection.
func Connect(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
