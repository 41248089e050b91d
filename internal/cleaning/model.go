package cleaning

// Cleaning is a reservation viewed through the housekeeping lens: one
// cleaning happens per checkout, so the reservation id doubles as the
// cleaning id. Property and cleaner details come joined from the store.
type Cleaning struct {
	ReservationID   string `json:"reservation_id"`
	PropertyID      string `json:"property_id"`
	Platform        string `json:"platform,omitempty"`
	ReservationCode string `json:"reservation_code,omitempty"`
	CheckInDate     string `json:"check_in_date,omitempty"`
	CheckOutDate    string `json:"check_out_date"`
	CheckoutTime    string `json:"checkout_time,omitempty"`
	GuestName       string `json:"guest_name,omitempty"`
	NumberOfGuests  *int   `json:"number_of_guests,omitempty"`

	CleanerUserID string   `json:"cleaner_user_id,omitempty"`
	Status        string   `json:"cleaning_status,omitempty"`
	PaymentStatus string   `json:"cleaning_payment_status,omitempty"`
	Fee           *float64 `json:"cleaning_fee,omitempty"`
	Rating        *int     `json:"cleaning_rating,omitempty"`
	Notes         string   `json:"cleaning_notes,omitempty"`

	// Next arrival on the same property, used to plan the turnover window.
	NextCheckInDate string `json:"next_check_in_date,omitempty"`
	NextCheckinTime string `json:"next_checkin_time,omitempty"`

	PropertyName       string `json:"property_name"`
	PropertyAddress    string `json:"property_address,omitempty"`
	DefaultCheckinTime string `json:"default_checkin_time,omitempty"`

	CleanerName  string `json:"cleaner_name,omitempty"`
	CleanerEmail string `json:"cleaner_email,omitempty"`
	CleanerPhone string `json:"cleaner_phone,omitempty"`
}

// Cleaner is a housekeeping profile eligible for assignments.
type Cleaner struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	IsActive bool   `json:"is_active"`
}

// ListQuery narrows cleaning listings by checkout date and property set.
// Empty Start/End leave the date axis unrestricted.
type ListQuery struct {
	Start       string
	End         string
	PropertyIDs []string
}
