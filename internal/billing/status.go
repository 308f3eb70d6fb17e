package billing

const (
	StatusPending       = "PENDING"
	StatusPartiallyPaid = "PARTIALLY_PAID"
	StatusPaid          = "PAID"
)

// Status derives a charge status from what is owed and what has been allocated.
// A zero effective amount counts as settled.
func Status(amountDue, discount, paid int64) string {
	effective := amountDue - discount
	switch {
	case paid >= effective:
		return StatusPaid
	case paid > 0:
		return StatusPartiallyPaid
	default:
		return StatusPending
	}
}

// Outstanding is the part of the effective amount not yet covered by allocations
func Outstanding(amountDue, discount, paid int64) int64 {
	return amountDue - discount - paid
}

// Debt is the outstanding amount floored at zero
func Debt(amountDue, discount, paid int64) int64 {
	if o := Outstanding(amountDue, discount, paid); o > 0 {
		return o
	}
	return 0
}
