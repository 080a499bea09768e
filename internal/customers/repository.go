package customers

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
	Create(ctx context.Context, customer Customer) (int64, error)
	Get(ctx context.Context, id int64) (*Customer, error)
	List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const customerColumns = `id, name, email, phone, tax_id, address_line1, address_line2,
	city, postal_code, country, is_active, notes, created_at, updated_at`

func (r *repository) Create(ctx context.Context, c Customer) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO customers (name, email, phone, tax_id, address_line1, address_line2,
			city, postal_code, country, is_active, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`, c.Name, c.Email, c.Phone, c.TaxID, c.AddressLine1, c.AddressLine2,
		c.City, c.PostalCode, c.Country, c.IsActive, c.Notes).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert customer: %w", err)
	}
	return id, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Customer, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM customers WHERE id = $1", customerColumns), id)
	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *repository) List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if req.Search != nil && *req.Search != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argPos))
		args = append(args, "%"+*req.Search+"%")
		argPos++
	}
	if req.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *req.IsActive)
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
		fmt.Sprintf("SELECT COUNT(*) FROM customers %s", whereClause), args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM customers %s
		ORDER BY name, id
		LIMIT $%d OFFSET $%d
	`, customerColumns, whereClause, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, err
		}
		customers = append(customers, *c)
	}
	return customers, total, rows.Err()
}

var customerUpdateColumns = []string{
	"name", "email", "phone", "tax_id", "address_line1", "address_line2",
	"city", "postal_code", "country", "is_active", "notes",
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	query := "UPDATE customers SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, col := range customerUpdateColumns {
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
	tag, err := r.pool.Exec(ctx, "DELETE FROM customers WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCustomer(row pgx.Row) (*Customer, error) {
	var c Customer
	var email, phone, taxID, addr1, addr2, city, postal, notes pgtype.Text
	var createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(&c.ID, &c.Name, &email, &phone, &taxID, &addr1, &addr2,
		&city, &postal, &c.Country, &c.IsActive, &notes, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if email.Valid {
		c.Email = &email.String
	}
	if phone.Valid {
		c.Phone = &phone.String
	}
	if taxID.Valid {
		c.TaxID = &taxID.String
	}
	if addr1.Valid {
		c.AddressLine1 = &addr1.String
	}
	if addr2.Valid {
		c.AddressLine2 = &addr2.String
	}
	if city.Valid {
		c.City = &city.String
	}
	if postal.Valid {
		c.PostalCode = &postal.String
	}
	if notes.Valid {
		c.Notes = &notes.String
	}
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time
	return &c, nil
}
