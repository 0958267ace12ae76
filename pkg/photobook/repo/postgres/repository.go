package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/photobook/photobook/pkg/photobook"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements photobook.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) photobook.Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) photobook.Repository {
	return &Repository{db: pool}
}

// handlePostgresError maps low-level pgx errors onto the package sentinels
func handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return photobook.ErrPhotoExists
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("photos table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return photobook.ErrPhotoNotFound
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

func (r *Repository) Insert(ctx context.Context, photo *photobook.Photo) error {
	query := `
		INSERT INTO photos (id, original_file_name, storage_key, description, uploaded_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query,
		photo.ID, photo.OriginalFileName, photo.StorageKey,
		photo.Description, photo.UploadedAt)

	if err != nil {
		return handlePostgresError("insert photo", err)
	}

	return nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*photobook.Photo, error) {
	query := `
		SELECT id, original_file_name, storage_key, description, uploaded_at
		FROM photos WHERE id = $1`

	var photo photobook.Photo
	err := r.db.QueryRow(ctx, query, id).Scan(
		&photo.ID, &photo.OriginalFileName, &photo.StorageKey,
		&photo.Description, &photo.UploadedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, photobook.ErrPhotoNotFound
		}
		return nil, handlePostgresError("find photo", err)
	}

	return &photo, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return handlePostgresError("delete photo", err)
	}
	if tag.RowsAffected() == 0 {
		return photobook.ErrPhotoNotFound
	}
	return nil
}

func (r *Repository) ListAll(ctx context.Context) ([]*photobook.Photo, error) {
	query := `
		SELECT id, original_file_name, storage_key, description, uploaded_at
		FROM photos ORDER BY original_file_name ASC, id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, handlePostgresError("list photos", err)
	}
	defer rows.Close()

	var photos []*photobook.Photo
	for rows.Next() {
		var photo photobook.Photo
		if err := rows.Scan(
			&photo.ID, &photo.OriginalFileName, &photo.StorageKey,
			&photo.Description, &photo.UploadedAt); err != nil {
			return nil, handlePostgresError("scan photo", err)
		}
		photos = append(photos, &photo)
	}
	if err := rows.Err(); err != nil {
		return nil, handlePostgresError("list photos", err)
	}

	return photos, nil
}
