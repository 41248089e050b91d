package reservations

import "time"

// Reservation represents one booking. Dates travel as zero-padded ISO
// strings (yyyy-MM-dd) exactly as the clients and the store exchange them;
// dirty rows with blank or malformed dates are expected and tolerated by
// consumers.
type Reservation struct {
	ID              string `json:"id"`
	PropertyID      string `json:"property_id"`
	Platform        string `json:"platform,omitempty"`
	ReservationCode string `json:"reservation_code"`
	CheckInDate     string `json:"check_in_date"`
	CheckOutDate    string `json:"check_out_date"`

	GuestName      string `json:"guest_name,omitempty"`
	GuestPhone     string `json:"guest_phone,omitempty"`
	GuestEmail     string `json:"guest_email,omitempty"`
	NumberOfGuests *int   `json:"number_of_guests,omitempty"`

	TotalRevenue     *float64 `json:"total_revenue,omitempty"`
	BaseRevenue      *float64 `json:"base_revenue,omitempty"`
	CommissionAmount *float64 `json:"commission_amount,omitempty"`
	NetRevenue       *float64 `json:"net_revenue,omitempty"`
	CleaningFee      *float64 `json:"cleaning_fee,omitempty"`

	ReservationStatus string `json:"reservation_status,omitempty"`
	PaymentStatus     string `json:"payment_status,omitempty"`
	PaymentDate       string `json:"payment_date,omitempty"`

	CheckinTime  string `json:"checkin_time,omitempty"`
	CheckoutTime string `json:"checkout_time,omitempty"`

	CleanerUserID         string `json:"cleaner_user_id,omitempty"`
	CleaningStatus        string `json:"cleaning_status,omitempty"`
	CleaningPaymentStatus string `json:"cleaning_payment_status,omitempty"`
	CleaningRating        *int   `json:"cleaning_rating,omitempty"`
	CleaningNotes         string `json:"cleaning_notes,omitempty"`
	CleaningAllocation    string `json:"cleaning_allocation,omitempty"`

	IsCommunicated bool `json:"is_communicated"`
	ReceiptSent    bool `json:"receipt_sent"`

	CreatedAt       time.Time `json:"created_at"`
	CreatedBySource string    `json:"created_by_source,omitempty"`
}

// ListQuery narrows reservation listings. Start/End use the overlap rule:
// a reservation matches when its stay intersects [Start, End]. Nil
// PropertyIDs and empty Platform leave the corresponding axis unrestricted.
type ListQuery struct {
	Start       string
	End         string
	PropertyIDs []string
	Platform    string
}
