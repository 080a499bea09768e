package doctemplates

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("record not found")

type Repository interface {
	Create(ctx context.Context, tpl Template) (int64, error)
	Get(ctx context.Context, id int64) (*Template, error)
	List(ctx context.Context, kind *TemplateKind) ([]Template, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Create(ctx context.Context, t Template) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO document_templates (kind, name, body, is_default)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, t.Kind, t.Name, t.Body, t.IsDefault).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert template: %w", err)
	}
	return id, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Template, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, kind, name, body, is_default, created_at, updated_at
		FROM document_templates WHERE id = $1
	`, id)
	t, err := scanTemplate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *repository) List(ctx context.Context, kind *TemplateKind) ([]Template, error) {
	query := `
		SELECT id, kind, name, body, is_default, created_at, updated_at
		FROM document_templates`
	var args []interface{}
	if kind != nil {
		query += " WHERE kind = $1"
		args = append(args, *kind)
	}
	query += " ORDER BY kind, name"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

var templateUpdateColumns = []string{"name", "body", "is_default"}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	query := "UPDATE document_templates SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, col := range templateUpdateColumns {
		if v, ok := updates[col]; ok {
			query += fmt.Sprintf(", %s = $%d", col, argPos)
			args = append(args, v)
			argPos++
		}
	}

	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM document_templates WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTemplate(row pgx.Row) (*Template, error) {
	var t Template
	var createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(&t.ID, &t.Kind, &t.Name, &t.Body, &t.IsDefault, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time
	return &t, nil
}
