package billing

import "time"

// PaymentTerm is the code identifying an invoice's payment deadline
type PaymentTerm string

const (
	PaymentTermOnReceipt  PaymentTerm = "ON_RECEIPT"
	PaymentTermNet15      PaymentTerm = "NET_15"
	PaymentTermNet30      PaymentTerm = "NET_30"
	PaymentTermNet45      PaymentTerm = "NET_45"
	PaymentTermNet60      PaymentTerm = "NET_60"
	PaymentTermNet90      PaymentTerm = "NET_90"
	PaymentTermEndOfMonth PaymentTerm = "END_OF_MONTH"
)

// paymentTermDays maps a payment-term code to its deadline in days
var paymentTermDays = map[PaymentTerm]int{
	PaymentTermOnReceipt:  0,
	PaymentTermNet15:      15,
	PaymentTermNet30:      30,
	PaymentTermNet45:      45,
	PaymentTermNet60:      60,
	PaymentTermNet90:      90,
	PaymentTermEndOfMonth: 30,
}

// Days returns the number of days granted by the payment term.
// Unknown or empty codes resolve to 0 (due immediately) so that invoices
// carrying legacy term strings still age instead of being dropped.
func (t PaymentTerm) Days() int {
	return paymentTermDays[t]
}

// DueDate returns the payment deadline for a document issued at the given time
func (t PaymentTerm) DueDate(issuedAt time.Time) time.Time {
	return issuedAt.AddDate(0, 0, t.Days())
}
