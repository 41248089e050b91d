package cleaning

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/riohost/riohost/internal/shared"
)

// Repository reads and mutates the cleaning side of reservations.
type Repository interface {
	ListAssigned(ctx context.Context, q ListQuery) ([]Cleaning, error)
	ListAvailable(ctx context.Context, q ListQuery) ([]Cleaning, error)
	ListForCleaner(ctx context.Context, cleanerID string, q ListQuery) ([]Cleaning, error)
	ListCleaners(ctx context.Context, propertyIDs []string) ([]Cleaner, error)
	Assign(ctx context.Context, reservationID, cleanerID string) error
	Unassign(ctx context.Context, reservationID string) error
	ToggleStatus(ctx context.Context, reservationID string) (string, error)
	SetFeedback(ctx context.Context, reservationID string, rating *int, notes string) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository wires a pgx-backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

// cleaningColumns joins the reservation's cleaning fields with its property
// and the assigned cleaner profile. next_check is the same property's first
// arrival on or after this checkout, used to size the turnover window.
const cleaningColumns = `r.id, r.property_id, COALESCE(r.platform, ''), COALESCE(r.reservation_code, ''),
	COALESCE(to_char(r.check_in_date, 'YYYY-MM-DD'), ''), COALESCE(to_char(r.check_out_date, 'YYYY-MM-DD'), ''),
	COALESCE(r.checkout_time, ''), COALESCE(r.guest_name, ''), r.number_of_guests,
	COALESCE(r.cleaner_user_id::text, ''), COALESCE(r.cleaning_status, ''), COALESCE(r.cleaning_payment_status, ''),
	r.cleaning_fee, r.cleaning_rating, COALESCE(r.cleaning_notes, ''),
	COALESCE(to_char(next_check.check_in_date, 'YYYY-MM-DD'), ''), COALESCE(next_check.checkin_time, ''),
	p.name, COALESCE(p.address, ''), COALESCE(p.default_checkin_time, ''),
	COALESCE(c.full_name, ''), COALESCE(c.email, ''), COALESCE(c.phone, '')`

const cleaningFrom = ` FROM reservations r
	JOIN properties p ON p.id = r.property_id
	LEFT JOIN cleaner_profiles c ON c.user_id = r.cleaner_user_id
	LEFT JOIN LATERAL (
		SELECT n.check_in_date, n.checkin_time FROM reservations n
		WHERE n.property_id = r.property_id
		  AND n.check_in_date >= r.check_out_date
		  AND n.id <> r.id
		  AND COALESCE(n.reservation_status, '') <> 'Cancelada'
		ORDER BY n.check_in_date ASC LIMIT 1
	) next_check ON true`

func (r *repository) ListAssigned(ctx context.Context, q ListQuery) ([]Cleaning, error) {
	return r.list(ctx, q, `r.cleaner_user_id IS NOT NULL`)
}

func (r *repository) ListAvailable(ctx context.Context, q ListQuery) ([]Cleaning, error) {
	return r.list(ctx, q, `r.cleaner_user_id IS NULL`)
}

func (r *repository) list(ctx context.Context, q ListQuery, assignment string) ([]Cleaning, error) {
	query := `SELECT ` + cleaningColumns + cleaningFrom +
		` WHERE COALESCE(r.reservation_status, '') <> 'Cancelada' AND ` + assignment
	var args []interface{}

	if q.Start != "" {
		args = append(args, q.Start)
		query += ` AND r.check_out_date >= $` + strconv.Itoa(len(args))
	}
	if q.End != "" {
		args = append(args, q.End)
		query += ` AND r.check_out_date <= $` + strconv.Itoa(len(args))
	}
	if len(q.PropertyIDs) > 0 {
		args = append(args, q.PropertyIDs)
		query += ` AND r.property_id = ANY($` + strconv.Itoa(len(args)) + `)`
	}
	query += ` ORDER BY r.check_out_date ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("cleaning: list: %w", err)
	}
	defer rows.Close()
	return collectCleanings(rows)
}

func (r *repository) ListForCleaner(ctx context.Context, cleanerID string, q ListQuery) ([]Cleaning, error) {
	query := `SELECT ` + cleaningColumns + cleaningFrom +
		` WHERE r.cleaner_user_id = $1 AND COALESCE(r.reservation_status, '') <> 'Cancelada'`
	args := []interface{}{cleanerID}

	if q.Start != "" {
		args = append(args, q.Start)
		query += ` AND r.check_out_date >= $` + strconv.Itoa(len(args))
	}
	if q.End != "" {
		args = append(args, q.End)
		query += ` AND r.check_out_date <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY r.check_out_date ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("cleaning: list for cleaner: %w", err)
	}
	defer rows.Close()
	return collectCleanings(rows)
}

func (r *repository) ListCleaners(ctx context.Context, propertyIDs []string) ([]Cleaner, error) {
	query := `SELECT DISTINCT c.id, c.user_id, c.full_name, COALESCE(c.email, ''), COALESCE(c.phone, ''),
		COALESCE(c.is_active, true) FROM cleaner_profiles c`
	var args []interface{}
	if len(propertyIDs) > 0 {
		query += ` JOIN property_cleaners pc ON pc.cleaner_id = c.id AND pc.property_id = ANY($1)`
		args = append(args, propertyIDs)
	}
	query += ` WHERE COALESCE(c.is_active, true) ORDER BY c.full_name ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("cleaning: list cleaners: %w", err)
	}
	defer rows.Close()

	var out []Cleaner
	for rows.Next() {
		var c Cleaner
		if err := rows.Scan(&c.ID, &c.UserID, &c.FullName, &c.Email, &c.Phone, &c.IsActive); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Assign sets the cleaner and resets the cleaning to pending. Reassignment
// is the same write with a different cleaner.
func (r *repository) Assign(ctx context.Context, reservationID, cleanerID string) error {
	tag, err := r.db.Exec(ctx, `UPDATE reservations
		SET cleaner_user_id = $1, cleaning_status = COALESCE(cleaning_status, 'Pendente')
		WHERE id = $2`, cleanerID, reservationID)
	if err != nil {
		return fmt.Errorf("cleaning: assign: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Unassign(ctx context.Context, reservationID string) error {
	tag, err := r.db.Exec(ctx, `UPDATE reservations
		SET cleaner_user_id = NULL, cleaning_status = NULL
		WHERE id = $1`, reservationID)
	if err != nil {
		return fmt.Errorf("cleaning: unassign: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ToggleStatus flips Pendente and Realizada in a single statement and
// returns the resulting status.
func (r *repository) ToggleStatus(ctx context.Context, reservationID string) (string, error) {
	var status string
	err := r.db.QueryRow(ctx, `UPDATE reservations
		SET cleaning_status = CASE WHEN lower(COALESCE(cleaning_status, '')) = lower($1) THEN $2 ELSE $1 END
		WHERE id = $3
		RETURNING cleaning_status`,
		shared.CleaningDone, shared.CleaningPending, reservationID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", shared.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("cleaning: toggle status: %w", err)
	}
	return status, nil
}

func (r *repository) SetFeedback(ctx context.Context, reservationID string, rating *int, notes string) error {
	tag, err := r.db.Exec(ctx, `UPDATE reservations
		SET cleaning_rating = $1, cleaning_notes = NULLIF($2, '')
		WHERE id = $3`, rating, notes, reservationID)
	if err != nil {
		return fmt.Errorf("cleaning: set feedback: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func collectCleanings(rows pgx.Rows) ([]Cleaning, error) {
	var out []Cleaning
	for rows.Next() {
		var c Cleaning
		err := rows.Scan(&c.ReservationID, &c.PropertyID, &c.Platform, &c.ReservationCode,
			&c.CheckInDate, &c.CheckOutDate, &c.CheckoutTime, &c.GuestName, &c.NumberOfGuests,
			&c.CleanerUserID, &c.Status, &c.PaymentStatus,
			&c.Fee, &c.Rating, &c.Notes,
			&c.NextCheckInDate, &c.NextCheckinTime,
			&c.PropertyName, &c.PropertyAddress, &c.DefaultCheckinTime,
			&c.CleanerName, &c.CleanerEmail, &c.CleanerPhone)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
