// Package checkout validates the shopper's order form, applies the
// delivery-fee rule and submits the finished cart as a guest order.
package checkout

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Pakistani mobile format: 11 digits starting with 03.
var phonePattern = regexp.MustCompile(`^03\d{9}$`)

// Delivery fee schedule. Orders of 3 or more frames ship free; otherwise
// a flat regional fee applies.
const (
	freeDeliveryMinQty = 3
	lahoreDeliveryFee  = 300
	defaultDeliveryFee = 400
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrNameRequired    = errors.New("name is required")
	ErrPhoneRequired   = errors.New("phone number required")
	ErrPhoneInvalid    = errors.New("enter valid phone (11 digits, starts with 03)")
	ErrAddressRequired = errors.New("address is required")
	ErrCityRequired    = errors.New("city is required")
)

// Form is the customer-entered checkout form.
type Form struct {
	Name    string
	Phone   string
	Address string
	City    string
	Notes   string
}

// IsValidPhone reports whether v is a valid PK mobile number.
func IsValidPhone(v string) bool {
	return phonePattern.MatchString(strings.TrimSpace(v))
}

// Validate checks the form against a cart of itemCount lines. It runs
// before any network call and returns the first failure in display
// order.
func (f Form) Validate(itemCount int) error {
	if itemCount == 0 {
		return ErrEmptyCart
	}
	if strings.TrimSpace(f.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(f.Phone) == "" {
		return ErrPhoneRequired
	}
	if !IsValidPhone(f.Phone) {
		return ErrPhoneInvalid
	}
	if strings.TrimSpace(f.Address) == "" {
		return ErrAddressRequired
	}
	if strings.TrimSpace(f.City) == "" {
		return ErrCityRequired
	}
	return nil
}

// DeliveryCharges returns the fee for a city and total frame quantity.
// Until a city is chosen the fee is unknown, reported by ok == false,
// which is distinct from a legitimate zero fee.
func DeliveryCharges(city string, totalQty int) (fee float64, ok bool) {
	if strings.TrimSpace(city) == "" {
		return 0, false
	}
	if totalQty >= freeDeliveryMinQty {
		return 0, true
	}
	if strings.ToLower(strings.TrimSpace(city)) == "lahore" {
		return lahoreDeliveryFee, true
	}
	return defaultDeliveryFee, true
}

// FormatMoney renders an amount as customer-facing rupees, rounded to
// the whole rupee with South Asian digit grouping: Rs. 12,34,567.
func FormatMoney(n float64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	v := int64(n + 0.5)

	digits := []byte(strconv.FormatInt(v, 10))
	var b strings.Builder
	b.WriteString("Rs. ")
	if neg {
		b.WriteByte('-')
	}
	b.Write(groupSouthAsian(digits))
	return b.String()
}

// groupSouthAsian groups the last three digits, then pairs:
// 1234567 -> 12,34,567.
func groupSouthAsian(digits []byte) []byte {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var out []byte
	head := digits[:n-3]
	for len(head) > 2 {
		cut := len(head) % 2
		if cut == 0 {
			cut = 2
		}
		out = append(out, head[:cut]...)
		out = append(out, ',')
		head = head[cut:]
	}
	out = append(out, head...)
	out = append(out, ',')
	out = append(out, digits[n-3:]...)
	return out
}
