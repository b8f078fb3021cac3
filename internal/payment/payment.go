// Package payment validates the card fields sent with a checkout. No charge is made.
package payment

import (
	"strings"
	"time"

	"github.com/Domenick1991/travelbooking/internal/domain"
)

// Proxy stands in for a payment instrument.
type Proxy struct {
	CardNumber  string `json:"cardNumber"`
	ExpiryMonth int    `json:"expiryMonth"`
	ExpiryYear  int    `json:"expiryYear"`
}

// Validate checks the card number checksum and that the card has not expired at now.
func (p Proxy) Validate(now time.Time) error {
	number := strings.ReplaceAll(strings.TrimSpace(p.CardNumber), " ", "")
	if number == "" || p.ExpiryMonth == 0 || p.ExpiryYear == 0 {
		return domain.NewError(domain.KindInvalidRequest, "missing required payment fields")
	}
	if !ValidCardNumber(number) {
		return domain.NewError(domain.KindInvalidRequest, "invalid credit card number")
	}
	if p.ExpiryMonth < 1 || p.ExpiryMonth > 12 {
		return domain.NewError(domain.KindInvalidRequest, "expiry month must be between 1 and 12")
	}
	if !ValidExpiry(p.ExpiryMonth, p.ExpiryYear, now) {
		return domain.NewError(domain.KindInvalidRequest, "expired card")
	}
	return nil
}

// ValidCardNumber applies the Luhn checksum. Non-digit input is rejected.
func ValidCardNumber(number string) bool {
	if number == "" {
		return false
	}
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// ValidExpiry reports whether (month, year) is strictly after the month containing now.
func ValidExpiry(month, year int, now time.Time) bool {
	if month < 1 || month > 12 {
		return false
	}
	y, m, _ := now.Date()
	if year != y {
		return year > y
	}
	return month > int(m)
}
