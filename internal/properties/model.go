package properties

import "time"

// Property represents a rental unit under management.
type Property struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Nickname            string    `json:"nickname,omitempty"`
	Address             string    `json:"address,omitempty"`
	PropertyType        string    `json:"property_type,omitempty"`
	Status              string    `json:"status"`
	AirbnbLink          string    `json:"airbnb_link,omitempty"`
	BookingLink         string    `json:"booking_link,omitempty"`
	CommissionRate      float64   `json:"commission_rate"`
	CleaningFee         *float64  `json:"cleaning_fee,omitempty"`
	BaseNightlyPrice    *float64  `json:"base_nightly_price,omitempty"`
	MaxGuests           *int      `json:"max_guests,omitempty"`
	DefaultCheckinTime  string    `json:"default_checkin_time,omitempty"`
	DefaultCheckoutTime string    `json:"default_checkout_time,omitempty"`
	Notes               string    `json:"notes,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// ListFilters narrows property listings.
type ListFilters struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// Property types offered in forms.
var PropertyTypes = []string{"Apartamento", "Casa", "Studio", "Flat", "Quarto"}
