package checkout

import (
	"strings"
	"time"

	"framex/internal/cart"
)

// OrderRequest is the guest-create payload the order backend expects.
// Cart items serialize through their own wire form, so the moulding
// field arrives as a product code string.
type OrderRequest struct {
	Customer        Customer    `json:"customer"`
	Advance         float64     `json:"advance"`
	SendSMS         bool        `json:"sendSMS"`
	PaymentType     string      `json:"paymentType"`
	Items           []cart.Item `json:"items"`
	Total           float64     `json:"total"`
	CreatedAt       string      `json:"createdAt"`
	DeliveryCharges float64     `json:"deliveryCharges"`
	OrderType       string      `json:"orderType"`
	Notes           string      `json:"notes"`
}

type Customer struct {
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	PaymentType  string  `json:"paymentType"`
	Deadline     *string `json:"deadline"`
	SocialHandle *string `json:"socialHandle"`
}

// NewOrderRequest assembles the submission payload from a validated form
// and the cart snapshot. Payment is cash on delivery; total already
// includes the delivery fee.
func NewOrderRequest(form Form, items []cart.Item, total, deliveryCharges float64) OrderRequest {
	return OrderRequest{
		Customer: Customer{
			Name:        trimmed(form.Name),
			Phone:       trimmed(form.Phone),
			Address:     trimmed(form.Address),
			City:        form.City,
			PaymentType: "COD",
		},
		Advance:         0,
		SendSMS:         true,
		PaymentType:     "COD",
		Items:           items,
		Total:           total,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
		DeliveryCharges: deliveryCharges,
		OrderType:       "normal",
		Notes:           trimmed(form.Notes),
	}
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
