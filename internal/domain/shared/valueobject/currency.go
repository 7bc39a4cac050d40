package valueobject

// Currency is an ISO 4217 currency code
type Currency string

const (
	XAF Currency = "XAF" // Central African CFA franc
	XOF Currency = "XOF" // West African CFA franc
	USD Currency = "USD" // US Dollar
	EUR Currency = "EUR" // Euro
)

// DefaultCurrency is what a company starts with unless it chooses otherwise
const DefaultCurrency = XAF
