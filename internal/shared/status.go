package shared

import (
	"errors"
	"strings"
)

// Reservation statuses as stored upstream (Portuguese display values).
const (
	ReservationConfirmed  = "Confirmada"
	ReservationInProgress = "Em Andamento"
	ReservationFinished   = "Finalizada"
	ReservationCancelled  = "Cancelada"
)

// Payment statuses.
const (
	PaymentPaid    = "Pago"
	PaymentPending = "Pendente"
	PaymentOverdue = "Atrasado"
)

// Property statuses. The store holds either the Portuguese or the English
// spelling for active rows, so matching must honour both.
const (
	PropertyActive      = "Ativo"
	PropertyInactive    = "Inativo"
	PropertyMaintenance = "Manutenção"
)

// Cleaning statuses.
const (
	CleaningPending = "Pendente"
	CleaningDone    = "Realizada"
)

// PlatformDirect is the bucket used when a reservation carries no platform.
const PlatformDirect = "Direto"

// KnownPlatforms lists the booking platforms offered in filter dropdowns.
var KnownPlatforms = []string{"Airbnb", "Booking.com", PlatformDirect, "VRBO", "Hospedagem.com"}

// ErrInvalidStatusTransition indicates a reservation status change not allowed.
var ErrInvalidStatusTransition = errors.New("reservation status transition invalid")

// ValidateReservationTransition checks reservation status changes according to
// policy: confirmed bookings start or cancel, in-progress stays finish or
// cancel, finished and cancelled are terminal.
func ValidateReservationTransition(current, target string) error {
	if EqualStatus(current, target) {
		return nil
	}
	switch {
	case EqualStatus(current, ReservationConfirmed):
		if EqualStatus(target, ReservationInProgress) || EqualStatus(target, ReservationCancelled) {
			return nil
		}
	case EqualStatus(current, ReservationInProgress):
		if EqualStatus(target, ReservationFinished) || EqualStatus(target, ReservationCancelled) {
			return nil
		}
	}
	return ErrInvalidStatusTransition
}

// EqualStatus compares two status strings case-insensitively.
func EqualStatus(a, b string) bool {
	return strings.EqualFold(a, b)
}

// IsActiveProperty reports whether a property status counts as active.
// Upstream rows use either the localized or the English term.
func IsActiveProperty(status string) bool {
	return EqualStatus(status, PropertyActive) || EqualStatus(status, "active")
}
