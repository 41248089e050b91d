package reservations

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/riohost/riohost/internal/shared"
)

// Repository persists reservations.
type Repository interface {
	ListOverlapping(ctx context.Context, q ListQuery) ([]Reservation, error)
	Get(ctx context.Context, id string) (Reservation, error)
	Create(ctx context.Context, res Reservation) (Reservation, error)
	Update(ctx context.Context, id string, res Reservation) error
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id, status string) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository wires a pgx-backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

// Dates are stored as DATE columns and read back as zero-padded ISO strings
// so string comparison against range bounds stays well defined.
const reservationColumns = `id, property_id, COALESCE(platform, ''), reservation_code,
	COALESCE(to_char(check_in_date, 'YYYY-MM-DD'), ''), COALESCE(to_char(check_out_date, 'YYYY-MM-DD'), ''),
	COALESCE(guest_name, ''), COALESCE(guest_phone, ''), COALESCE(guest_email, ''), number_of_guests,
	total_revenue, base_revenue, commission_amount, net_revenue, cleaning_fee,
	COALESCE(reservation_status, ''), COALESCE(payment_status, ''), COALESCE(to_char(payment_date, 'YYYY-MM-DD'), ''),
	COALESCE(checkin_time, ''), COALESCE(checkout_time, ''),
	COALESCE(cleaner_user_id::text, ''), COALESCE(cleaning_status, ''), COALESCE(cleaning_payment_status, ''),
	cleaning_rating, COALESCE(cleaning_notes, ''), COALESCE(cleaning_allocation, ''),
	COALESCE(is_communicated, false), COALESCE(receipt_sent, false), created_at, COALESCE(created_by_source, '')`

// ListOverlapping pushes the stay-overlap predicate down to the store:
// check_out_date >= start AND check_in_date <= end.
func (r *repository) ListOverlapping(ctx context.Context, q ListQuery) ([]Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE check_out_date >= $1 AND check_in_date <= $2`
	args := []interface{}{q.Start, q.End}
	argCount := 2

	if q.Platform != "" {
		argCount++
		query += ` AND platform = $` + strconv.Itoa(argCount)
		args = append(args, q.Platform)
	}
	if len(q.PropertyIDs) > 0 {
		argCount++
		query += ` AND property_id = ANY($` + strconv.Itoa(argCount) + `)`
		args = append(args, q.PropertyIDs)
	}
	query += ` ORDER BY check_in_date ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reservations: list overlapping: %w", err)
	}
	defer rows.Close()

	var out []Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (Reservation, error) {
	row := r.db.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)
	res, err := scanReservation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Reservation{}, shared.ErrNotFound
	}
	return res, err
}

func (r *repository) Create(ctx context.Context, res Reservation) (Reservation, error) {
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	res.CreatedAt = time.Now()
	_, err := r.db.Exec(ctx, `INSERT INTO reservations (id, property_id, platform, reservation_code,
		check_in_date, check_out_date, guest_name, guest_phone, guest_email, number_of_guests,
		total_revenue, base_revenue, commission_amount, net_revenue, cleaning_fee,
		reservation_status, payment_status, checkin_time, checkout_time,
		cleaner_user_id, cleaning_status, cleaning_allocation, created_at, created_by_source)
		VALUES ($1,$2,NULLIF($3,''),$4,$5,$6,NULLIF($7,''),NULLIF($8,''),NULLIF($9,''),$10,
		$11,$12,$13,$14,$15,NULLIF($16,''),NULLIF($17,''),NULLIF($18,''),NULLIF($19,''),
		NULLIF($20,'')::uuid,NULLIF($21,''),NULLIF($22,''),$23,$24)`,
		res.ID, res.PropertyID, res.Platform, res.ReservationCode,
		res.CheckInDate, res.CheckOutDate, res.GuestName, res.GuestPhone, res.GuestEmail, res.NumberOfGuests,
		res.TotalRevenue, res.BaseRevenue, res.CommissionAmount, res.NetRevenue, res.CleaningFee,
		res.ReservationStatus, res.PaymentStatus, res.CheckinTime, res.CheckoutTime,
		res.CleanerUserID, res.CleaningStatus, res.CleaningAllocation, res.CreatedAt, res.CreatedBySource)
	if err != nil {
		return Reservation{}, mapPgError(err)
	}
	return res, nil
}

func (r *repository) Update(ctx context.Context, id string, res Reservation) error {
	tag, err := r.db.Exec(ctx, `UPDATE reservations SET property_id = $1, platform = NULLIF($2,''),
		reservation_code = $3, check_in_date = $4, check_out_date = $5,
		guest_name = NULLIF($6,''), guest_phone = NULLIF($7,''), guest_email = NULLIF($8,''),
		number_of_guests = $9, total_revenue = $10, base_revenue = $11, commission_amount = $12,
		net_revenue = $13, cleaning_fee = $14, reservation_status = NULLIF($15,''),
		payment_status = NULLIF($16,''), checkin_time = NULLIF($17,''), checkout_time = NULLIF($18,''),
		cleaner_user_id = NULLIF($19,'')::uuid, cleaning_allocation = NULLIF($20,'') WHERE id = $21`,
		res.PropertyID, res.Platform, res.ReservationCode, res.CheckInDate, res.CheckOutDate,
		res.GuestName, res.GuestPhone, res.GuestEmail, res.NumberOfGuests,
		res.TotalRevenue, res.BaseRevenue, res.CommissionAmount, res.NetRevenue, res.CleaningFee,
		res.ReservationStatus, res.PaymentStatus, res.CheckinTime, res.CheckoutTime,
		res.CleanerUserID, res.CleaningAllocation, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.db.Exec(ctx, `UPDATE reservations SET reservation_status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: reservation code already exists", shared.ErrDuplicate)
	}
	return err
}

func scanReservation(row pgx.Row) (Reservation, error) {
	var res Reservation
	err := row.Scan(&res.ID, &res.PropertyID, &res.Platform, &res.ReservationCode,
		&res.CheckInDate, &res.CheckOutDate,
		&res.GuestName, &res.GuestPhone, &res.GuestEmail, &res.NumberOfGuests,
		&res.TotalRevenue, &res.BaseRevenue, &res.CommissionAmount, &res.NetRevenue, &res.CleaningFee,
		&res.ReservationStatus, &res.PaymentStatus, &res.PaymentDate,
		&res.CheckinTime, &res.CheckoutTime,
		&res.CleanerUserID, &res.CleaningStatus, &res.CleaningPaymentStatus,
		&res.CleaningRating, &res.CleaningNotes, &res.CleaningAllocation,
		&res.IsCommunicated, &res.ReceiptSent, &res.CreatedAt, &res.CreatedBySource)
	return res, err
}
