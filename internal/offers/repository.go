package offers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/offerkit/offerkit/internal/platform/db"
)

var ErrNotFound = errors.New("record not found")

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error

	CreateOffer(ctx context.Context, offer Offer) (int64, error)
	GetOffer(ctx context.Context, id int64) (*Offer, error)
	GetOfferTree(ctx context.Context, id int64) (*Offer, error)
	ListOffers(ctx context.Context, req ListOffersRequest) ([]Offer, int, error)
	UpdateOffer(ctx context.Context, id int64, updates map[string]interface{}) error
	UpdateOfferStatus(ctx context.Context, id int64, status OfferStatus) error
	UpdateOfferTotals(ctx context.Context, id int64, net, tax, gross float64) error
	DeleteOffer(ctx context.Context, id int64) error

	CreateGroup(ctx context.Context, group OfferGroup) (int64, error)
	GetGroup(ctx context.Context, id int64) (*OfferGroup, error)
	MaxGroupIndex(ctx context.Context, offerID int64) (int, error)
	SumGroupNet(ctx context.Context, offerID int64) (float64, error)
	UpdateGroup(ctx context.Context, id int64, updates map[string]interface{}) error
	UpdateGroupTotals(ctx context.Context, id int64, totals GroupTotals) error
	DeleteGroup(ctx context.Context, id int64) error

	CreateItem(ctx context.Context, item OfferItem) (int64, error)
	GetItem(ctx context.Context, id int64) (*OfferItem, error)
	ListGroupItems(ctx context.Context, groupID int64) ([]OfferItem, error)
	ItemPositions(ctx context.Context, groupID int64) ([]string, error)
	UpdateItem(ctx context.Context, id int64, updates map[string]interface{}) error
	DeleteItem(ctx context.Context, id int64) error
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

const offerColumns = `id, public_id, customer_id, project_id, title, offer_date, offer_number,
	status, intro, outro, payment_due_days, discount_percent, discount_days, tax_rate,
	show_vat_for_labor, total_net, total_tax, total_gross, created_at, updated_at`

func (r *repository) CreateOffer(ctx context.Context, o Offer) (int64, error) {
	if o.PublicID == uuid.Nil {
		o.PublicID = uuid.New()
	}
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO offers (public_id, customer_id, project_id, title, offer_date, offer_number,
			status, intro, outro, payment_due_days, discount_percent, discount_days, tax_rate,
			show_vat_for_labor, total_net, total_tax, total_gross)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, 0, 0, 0)
		RETURNING id
	`, o.PublicID, o.CustomerID, o.ProjectID, o.Title, o.OfferDate, o.OfferNumber,
		o.Status, o.Intro, o.Outro, o.PaymentDueDays, o.DiscountPercent, o.DiscountDays,
		o.TaxRate, o.ShowVATForLabor).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert offer: %w", err)
	}
	return id, nil
}

func (r *repository) GetOffer(ctx context.Context, id int64) (*Offer, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM offers WHERE id = $1", offerColumns), id)
	o, err := scanOffer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *repository) GetOfferTree(ctx context.Context, id int64) (*Offer, error) {
	o, err := r.GetOffer(ctx, id)
	if err != nil {
		return nil, err
	}

	groupRows, err := r.db.Query(ctx, `
		SELECT id, offer_id, group_index, title, material_cost, labor_cost, other_cost,
		       material_margin, labor_margin, other_margin, total_net, created_at, updated_at
		FROM offer_groups
		WHERE offer_id = $1
		ORDER BY group_index
	`, id)
	if err != nil {
		return nil, err
	}
	defer groupRows.Close()

	byID := make(map[int64]int)
	for groupRows.Next() {
		var g OfferGroup
		var createdAt, updatedAt pgtype.Timestamptz
		if err := groupRows.Scan(&g.ID, &g.OfferID, &g.Index, &g.Title,
			&g.MaterialCost, &g.LaborCost, &g.OtherCost,
			&g.MaterialMargin, &g.LaborMargin, &g.OtherMargin,
			&g.TotalNet, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		g.CreatedAt = createdAt.Time
		g.UpdatedAt = updatedAt.Time
		byID[g.ID] = len(o.Groups)
		o.Groups = append(o.Groups, g)
	}
	if err := groupRows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := r.db.Query(ctx, `
		SELECT i.id, i.group_id, i.item_type, i.name, i.description, i.qty, i.unit,
		       i.purchase_price, i.markup_percent, i.margin_amount, i.unit_price,
		       i.line_total, i.position_index, i.created_at, i.updated_at
		FROM offer_items i
		JOIN offer_groups g ON i.group_id = g.id
		WHERE g.offer_id = $1
		ORDER BY g.group_index, i.id
	`, id)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		item, err := scanItem(itemRows)
		if err != nil {
			return nil, err
		}
		if idx, ok := byID[item.GroupID]; ok {
			o.Groups[idx].Items = append(o.Groups[idx].Items, item)
		}
	}
	return o, itemRows.Err()
}

func (r *repository) ListOffers(ctx context.Context, req ListOffersRequest) ([]Offer, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if req.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *req.Status)
		argPos++
	}
	if req.CustomerID != nil {
		conditions = append(conditions, fmt.Sprintf("customer_id = $%d", argPos))
		args = append(args, *req.CustomerID)
		argPos++
	}
	if req.ProjectID != nil {
		conditions = append(conditions, fmt.Sprintf("project_id = $%d", argPos))
		args = append(args, *req.ProjectID)
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
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM offers %s", whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM offers %s
		ORDER BY offer_date DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, offerColumns, whereClause, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var offers []Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, 0, err
		}
		offers = append(offers, *o)
	}
	return offers, total, rows.Err()
}

// offerUpdateColumns whitelists the columns the dynamic UPDATE may touch.
var offerUpdateColumns = []string{
	"customer_id", "project_id", "title", "offer_date", "offer_number",
	"intro", "outro", "payment_due_days", "discount_percent", "discount_days",
	"tax_rate", "show_vat_for_labor",
}

func (r *repository) UpdateOffer(ctx context.Context, id int64, updates map[string]interface{}) error {
	query := "UPDATE offers SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, col := range offerUpdateColumns {
		if v, ok := updates[col]; ok {
			query += fmt.Sprintf(", %s = $%d", col, argPos)
			args = append(args, v)
			argPos++
		}
	}

	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) UpdateOfferStatus(ctx context.Context, id int64, status OfferStatus) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE offers SET status = $1, updated_at = NOW() WHERE id = $2", status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) UpdateOfferTotals(ctx context.Context, id int64, net, tax, gross float64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE offers SET total_net = $1, total_tax = $2, total_gross = $3, updated_at = NOW()
		WHERE id = $4
	`, net, tax, gross, id)
	return err
}

func (r *repository) DeleteOffer(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM offers WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) CreateGroup(ctx context.Context, g OfferGroup) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO offer_groups (offer_id, group_index, title,
			material_cost, labor_cost, other_cost,
			material_margin, labor_margin, other_margin, total_net)
		VALUES ($1, $2, $3, 0, 0, 0, 0, 0, 0, 0)
		RETURNING id
	`, g.OfferID, g.Index, g.Title).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert offer group: %w", err)
	}
	return id, nil
}

func (r *repository) GetGroup(ctx context.Context, id int64) (*OfferGroup, error) {
	var g OfferGroup
	var createdAt, updatedAt pgtype.Timestamptz
	err := r.db.QueryRow(ctx, `
		SELECT id, offer_id, group_index, title, material_cost, labor_cost, other_cost,
		       material_margin, labor_margin, other_margin, total_net, created_at, updated_at
		FROM offer_groups WHERE id = $1
	`, id).Scan(&g.ID, &g.OfferID, &g.Index, &g.Title,
		&g.MaterialCost, &g.LaborCost, &g.OtherCost,
		&g.MaterialMargin, &g.LaborMargin, &g.OtherMargin,
		&g.TotalNet, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	g.CreatedAt = createdAt.Time
	g.UpdatedAt = updatedAt.Time
	return &g, nil
}

func (r *repository) MaxGroupIndex(ctx context.Context, offerID int64) (int, error) {
	var max int
	err := r.db.QueryRow(ctx,
		"SELECT COALESCE(MAX(group_index), 0) FROM offer_groups WHERE offer_id = $1", offerID).Scan(&max)
	return max, err
}

func (r *repository) SumGroupNet(ctx context.Context, offerID int64) (float64, error) {
	var sum float64
	err := r.db.QueryRow(ctx,
		"SELECT COALESCE(SUM(total_net), 0) FROM offer_groups WHERE offer_id = $1", offerID).Scan(&sum)
	return sum, err
}

func (r *repository) UpdateGroup(ctx context.Context, id int64, updates map[string]interface{}) error {
	query := "UPDATE offer_groups SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	if v, ok := updates["title"]; ok {
		query += fmt.Sprintf(", title = $%d", argPos)
		args = append(args, v)
		argPos++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) UpdateGroupTotals(ctx context.Context, id int64, t GroupTotals) error {
	_, err := r.db.Exec(ctx, `
		UPDATE offer_groups SET
			material_cost = $1, labor_cost = $2, other_cost = $3,
			material_margin = $4, labor_margin = $5, other_margin = $6,
			total_net = $7, updated_at = NOW()
		WHERE id = $8
	`, t.MaterialCost, t.LaborCost, t.OtherCost,
		t.MaterialMargin, t.LaborMargin, t.OtherMargin, t.TotalNet, id)
	return err
}

func (r *repository) DeleteGroup(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM offer_groups WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) CreateItem(ctx context.Context, item OfferItem) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO offer_items (group_id, item_type, name, description, qty, unit,
			purchase_price, markup_percent, margin_amount, unit_price, line_total, position_index)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`, item.GroupID, item.Type, item.Name, item.Description, item.Qty, item.Unit,
		item.PurchasePrice, item.MarkupPercent, item.MarginAmount,
		item.UnitPrice, item.LineTotal, item.PositionIndex).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert offer item: %w", err)
	}
	return id, nil
}

func (r *repository) GetItem(ctx context.Context, id int64) (*OfferItem, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, group_id, item_type, name, description, qty, unit,
		       purchase_price, markup_percent, margin_amount, unit_price,
		       line_total, position_index, created_at, updated_at
		FROM offer_items WHERE id = $1
	`, id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *repository) ListGroupItems(ctx context.Context, groupID int64) ([]OfferItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, group_id, item_type, name, description, qty, unit,
		       purchase_price, markup_percent, margin_amount, unit_price,
		       line_total, position_index, created_at, updated_at
		FROM offer_items WHERE group_id = $1
		ORDER BY id
	`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OfferItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *repository) ItemPositions(ctx context.Context, groupID int64) ([]string, error) {
	rows, err := r.db.Query(ctx,
		"SELECT position_index FROM offer_items WHERE group_id = $1", groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []string
	for rows.Next() {
		var pos string
		if err := rows.Scan(&pos); err != nil {
			return nil, err
		}
		positions = append(positions, pos)
	}
	return positions, rows.Err()
}

// itemUpdateColumns whitelists the columns the dynamic UPDATE may touch.
var itemUpdateColumns = []string{
	"item_type", "name", "description", "qty", "unit",
	"purchase_price", "markup_percent", "margin_amount", "unit_price", "line_total",
}

func (r *repository) UpdateItem(ctx context.Context, id int64, updates map[string]interface{}) error {
	query := "UPDATE offer_items SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, col := range itemUpdateColumns {
		if v, ok := updates[col]; ok {
			query += fmt.Sprintf(", %s = $%d", col, argPos)
			args = append(args, v)
			argPos++
		}
	}

	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) DeleteItem(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM offer_items WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanOffer(row pgx.Row) (*Offer, error) {
	var o Offer
	var customerID, projectID pgtype.Int8
	var offerNumber pgtype.Text
	var offerDate pgtype.Date
	var discountPercent pgtype.Float8
	var discountDays pgtype.Int4
	var createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(&o.ID, &o.PublicID, &customerID, &projectID, &o.Title, &offerDate,
		&offerNumber, &o.Status, &o.Intro, &o.Outro, &o.PaymentDueDays,
		&discountPercent, &discountDays, &o.TaxRate, &o.ShowVATForLabor,
		&o.TotalNet, &o.TotalTax, &o.TotalGross, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if customerID.Valid {
		o.CustomerID = &customerID.Int64
	}
	if projectID.Valid {
		o.ProjectID = &projectID.Int64
	}
	if offerNumber.Valid {
		o.OfferNumber = &offerNumber.String
	}
	if offerDate.Valid {
		o.OfferDate = offerDate.Time
	}
	if discountPercent.Valid {
		o.DiscountPercent = &discountPercent.Float64
	}
	if discountDays.Valid {
		days := int(discountDays.Int32)
		o.DiscountDays = &days
	}
	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time
	return &o, nil
}

func scanItem(row pgx.Row) (OfferItem, error) {
	var item OfferItem
	var description pgtype.Text
	var createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(&item.ID, &item.GroupID, &item.Type, &item.Name, &description,
		&item.Qty, &item.Unit, &item.PurchasePrice, &item.MarkupPercent,
		&item.MarginAmount, &item.UnitPrice, &item.LineTotal, &item.PositionIndex,
		&createdAt, &updatedAt)
	if err != nil {
		return OfferItem{}, err
	}

	if description.Valid {
		item.Description = &description.String
	}
	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time
	return item, nil
}
