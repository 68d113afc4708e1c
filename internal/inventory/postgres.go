package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"dealer-assistant/internal/assistant/query"
	"dealer-assistant/internal/models"
)

const vehicleColumns = `id, make, model, year, price, mileage, fuel_type, transmission, body_type`

// PostgresInventory reads the vehicles table.
type PostgresInventory struct {
	db *sql.DB
}

func NewPostgresInventory(db *sql.DB) *PostgresInventory {
	return &PostgresInventory{db: db}
}

func (p *PostgresInventory) Find(ctx context.Context, q query.Query) ([]models.VehicleSummary, error) {
	where, args := whereClause(q)
	stmt := fmt.Sprintf("SELECT %s FROM vehicles WHERE %s ORDER BY price ASC", vehicleColumns, where)
	if q.Limit > 0 {
		args = append(args, q.Limit)
		stmt += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := p.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, lookupFailed("postgres", err)
	}
	defer rows.Close()

	var vehicles []models.VehicleSummary
	for rows.Next() {
		var (
			v        models.VehicleSummary
			mileage  sql.NullInt64
			bodyType sql.NullString
		)
		if err := rows.Scan(&v.ID, &v.Make, &v.Model, &v.Year, &v.Price, &mileage,
			&v.FuelType, &v.Transmission, &bodyType); err != nil {
			return nil, lookupFailed("postgres", err)
		}
		if mileage.Valid {
			km := int(mileage.Int64)
			v.Mileage = &km
		}
		v.BodyType = bodyType.String
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, lookupFailed("postgres", err)
	}
	return vehicles, nil
}

func (p *PostgresInventory) Count(ctx context.Context, q query.Query) (int, error) {
	where, args := whereClause(q)

	var count int
	err := p.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM vehicles WHERE "+where, args...).Scan(&count)
	if err != nil {
		return 0, lookupFailed("postgres", err)
	}
	return count, nil
}

func whereClause(q query.Query) (string, []interface{}) {
	conds := []string{"status = $1"}
	args := []interface{}{q.Status}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if q.Make != "" {
		add("make = $%d", q.Make)
	}
	if q.BodyType != "" {
		add("body_type = $%d", q.BodyType)
	}
	if q.PriceMax != nil {
		add("price <= $%d", *q.PriceMax)
	}
	return strings.Join(conds, " AND "), args
}
