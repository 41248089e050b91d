package properties

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/riohost/riohost/internal/shared"
)

// Repository persists properties.
type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Property, int, error)
	Get(ctx context.Context, id string) (Property, error)
	Create(ctx context.Context, p Property) (Property, error)
	Update(ctx context.Context, id string, p Property) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository wires a pgx-backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const propertyColumns = `id, name, nickname, address, property_type, status, airbnb_link, booking_link,
	commission_rate, cleaning_fee, base_nightly_price, max_guests,
	default_checkin_time, default_checkout_time, notes, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Property, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Status != "" {
		argCount++
		where += ` AND status = $` + strconv.Itoa(argCount)
		args = append(args, filters.Status)
	}
	if filters.Search != "" {
		argCount++
		where += ` AND (name ILIKE $` + strconv.Itoa(argCount) + ` OR nickname ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filters.Search+"%")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM properties`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + propertyColumns + ` FROM properties` + where + ` ORDER BY name ASC`
	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)

		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		offset := (filters.Page - 1) * filters.Limit
		if offset < 0 {
			offset = 0
		}
		args = append(args, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (Property, error) {
	row := r.db.QueryRow(ctx, `SELECT `+propertyColumns+` FROM properties WHERE id = $1`, id)
	p, err := scanProperty(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Property{}, shared.ErrNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, p Property) (Property, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := r.db.Exec(ctx, `INSERT INTO properties (id, name, nickname, address, property_type, status,
		airbnb_link, booking_link, commission_rate, cleaning_fee, base_nightly_price, max_guests,
		default_checkin_time, default_checkout_time, notes, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
		p.ID, p.Name, p.Nickname, p.Address, p.PropertyType, p.Status,
		p.AirbnbLink, p.BookingLink, p.CommissionRate, p.CleaningFee, p.BaseNightlyPrice, p.MaxGuests,
		p.DefaultCheckinTime, p.DefaultCheckoutTime, p.Notes, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return Property{}, err
	}
	return p, nil
}

func (r *repository) Update(ctx context.Context, id string, p Property) error {
	tag, err := r.db.Exec(ctx, `UPDATE properties SET name = $1, nickname = $2, address = $3,
		property_type = $4, status = $5, airbnb_link = $6, booking_link = $7, commission_rate = $8,
		cleaning_fee = $9, base_nightly_price = $10, max_guests = $11, default_checkin_time = $12,
		default_checkout_time = $13, notes = $14, updated_at = $15 WHERE id = $16`,
		p.Name, p.Nickname, p.Address, p.PropertyType, p.Status, p.AirbnbLink, p.BookingLink,
		p.CommissionRate, p.CleaningFee, p.BaseNightlyPrice, p.MaxGuests,
		p.DefaultCheckinTime, p.DefaultCheckoutTime, p.Notes, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanProperty(row pgx.Row) (Property, error) {
	var p Property
	err := row.Scan(&p.ID, &p.Name, &p.Nickname, &p.Address, &p.PropertyType, &p.Status,
		&p.AirbnbLink, &p.BookingLink, &p.CommissionRate, &p.CleaningFee, &p.BaseNightlyPrice,
		&p.MaxGuests, &p.DefaultCheckinTime, &p.DefaultCheckoutTime, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
