package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the host application's sales order, read through the order
// linkage boundary. Charges reference orders weakly by Name (the order's
// human-readable number), never by a foreign key.
type Order struct {
	Name        string
	State       string
	AmountTotal decimal.Decimal
	OrderDate   time.Time

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	Billing  ContactDetails
	Shipping ContactDetails
}
