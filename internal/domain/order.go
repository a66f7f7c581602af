package domain

import "time"

// OrderStatus tracks fulfillment progress. Transitions are forward-only;
// a cancelled order stays cancelled.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

var statusRank = map[OrderStatus]int{
	StatusPending:   0,
	StatusShipped:   1,
	StatusDelivered: 2,
}

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s OrderStatus) bool {
	if s == StatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// CanTransition reports whether an order may move from one status to the next.
// Cancellation is allowed from any non-terminal status; delivered and cancelled
// are terminal.
func CanTransition(from, to OrderStatus) bool {
	if !ValidStatus(from) || !ValidStatus(to) || from == to {
		return false
	}
	if from == StatusDelivered || from == StatusCancelled {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return statusRank[to] > statusRank[from]
}

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentCard   PaymentMethod = "card"
	PaymentPaypal PaymentMethod = "paypal"
	PaymentStripe PaymentMethod = "stripe"
)

// ValidPaymentMethod reports whether m is a supported payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCOD, PaymentCard, PaymentPaypal, PaymentStripe:
		return true
	}
	return false
}

// CardDetails is retained only when the payment method is card.
type CardDetails struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	Expiry string `json:"date"`
	CVC    string `json:"cvc"`
}

type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Complete reports whether every shipping field is filled in.
func (a ShippingAddress) Complete() bool {
	return a.FullName != "" && a.Address != "" && a.City != "" && a.PostalCode != "" && a.Country != ""
}

// OrderLine records the price charged at order time. Later catalog price
// changes never touch it.
type OrderLine struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"orderId"`
	ProductID      string    `json:"productId"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	Quantity       int       `json:"quantity"`
	Color          string    `json:"color,omitempty"`
	Size           string    `json:"size,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Order is an immutable record of a completed checkout. Only Status changes
// after creation.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	UserName        string          `json:"userName"`
	Lines           []OrderLine     `json:"products"`
	TotalCents      int64           `json:"totalCents"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	CardDetails     *CardDetails    `json:"cardDetails,omitempty"`
	Status          OrderStatus     `json:"status"`
	IdempotencyKey  string          `json:"-"`
	CreatedAt       time.Time       `json:"createdAt"`
}
