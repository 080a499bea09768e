package projects

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
	Create(ctx context.Context, project Project) (int64, error)
	Get(ctx context.Context, id int64) (*Project, error)
	List(ctx context.Context, req ListProjectsRequest) ([]Project, int, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Create(ctx context.Context, p Project) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO projects (customer_id, name, description, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, p.CustomerID, p.Name, p.Description, p.Status).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert project: %w", err)
	}
	return id, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Project, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, customer_id, name, description, status, created_at, updated_at
		FROM projects WHERE id = $1
	`, id)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *repository) List(ctx context.Context, req ListProjectsRequest) ([]Project, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if req.CustomerID != nil {
		conditions = append(conditions, fmt.Sprintf("customer_id = $%d", argPos))
		args = append(args, *req.CustomerID)
		argPos++
	}
	if req.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *req.Status)
		argPos++
	}

	whereClause := ""
	for i, cond := range conditions {
		if i == 0 {
			whereClause = "WHERE " + cond
		} else {
			whereClause += " AND " + cond
		}
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM projects %s", whereClause), args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, customer_id, name, description, status, created_at, updated_at
		FROM projects %s
		ORDER BY name, id
		LIMIT $%d OFFSET $%d
	`, whereClause, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, *p)
	}
	return projects, total, rows.Err()
}

var projectUpdateColumns = []string{"customer_id", "name", "description", "status"}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	query := "UPDATE projects SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, col := range projectUpdateColumns {
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
	tag, err := r.pool.Exec(ctx, "DELETE FROM projects WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProject(row pgx.Row) (*Project, error) {
	var p Project
	var customerID pgtype.Int8
	var description pgtype.Text
	var createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(&p.ID, &customerID, &p.Name, &description, &p.Status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if customerID.Valid {
		p.CustomerID = &customerID.Int64
	}
	if description.Valid {
		p.Description = &description.String
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return &p, nil
}
