package payment

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/iliamunaev/doorstep/internal/apperr"
)

// Method is a payment method offered at checkout.
type Method string

const (
	UPI  Method = "upi"
	Card Method = "card"
	Cash Method = "cash" // cash on delivery
)

// Methods returns the methods in display order.
func Methods() []Method { return []Method{UPI, Card, Cash} }

// ParseMethod accepts a method id, case-insensitively. "cod" and
// "cashondelivery" are aliases of Cash.
func ParseMethod(s string) (Method, error) {
	switch m := strings.ToLower(strings.TrimSpace(s)); m {
	case "upi", "card", "cash":
		return Method(m), nil
	case "cod", "cashondelivery", "cash_on_delivery":
		return Cash, nil
	default:
		return "", fmt.Errorf("payment: %q: %w", s, apperr.ErrUnknownMethod)
	}
}

// Valid reports whether m is a known method.
func (m Method) Valid() bool {
	switch m {
	case UPI, Card, Cash:
		return true
	}
	return false
}

// Name is the human readable method name.
func (m Method) Name() string {
	switch m {
	case UPI:
		return "UPI"
	case Card:
		return "Credit/Debit Card"
	case Cash:
		return "Cash on Delivery"
	default:
		return string(m)
	}
}

// Label is the short upper-case label used in confirmations, e.g. "CARD".
func (m Method) Label() string {
	return cases.Upper(language.English).String(string(m))
}

// UPIOption is how a UPI payment is made.
type UPIOption string

const (
	UPIByID UPIOption = "id"
	UPIByQR UPIOption = "qr"
)

// MaxCardNumberLen is the longest card number accepted; longer input is truncated.
const MaxCardNumberLen = 16

// Details is the transient payment-method state of a checkout.
type Details struct {
	Method     Method
	UPIOption  UPIOption
	UPIID      string
	CardNumber string
	CardHolder string
}

// SelectMethod switches the method and clears the UPI sub-state.
func (d *Details) SelectMethod(m Method) {
	d.Method = m
	d.UPIOption = ""
	d.UPIID = ""
}

// SetCardNumber stores the card number, truncated to MaxCardNumberLen characters.
func (d *Details) SetCardNumber(n string) {
	if utf8.RuneCountInString(n) > MaxCardNumberLen {
		n = string([]rune(n)[:MaxCardNumberLen])
	}
	d.CardNumber = n
}

// Validate checks the fields the chosen method needs. Failures are
// field errors matching apperr.ErrMissingPaymentField.
func (d Details) Validate() error {
	switch d.Method {
	case UPI:
		switch d.UPIOption {
		case UPIByQR:
			return nil
		case UPIByID:
			if strings.TrimSpace(d.UPIID) == "" {
				return apperr.MissingField("upi_id", "Please enter your UPI ID")
			}
			return nil
		default:
			return apperr.MissingField("upi_option", "Please select UPI option")
		}
	case Card:
		if strings.TrimSpace(d.CardNumber) == "" {
			return apperr.MissingField("card_number", "Please enter all card details")
		}
		if strings.TrimSpace(d.CardHolder) == "" {
			return apperr.MissingField("card_holder", "Please enter all card details")
		}
		return nil
	case Cash:
		return nil
	default:
		return fmt.Errorf("payment: %q: %w", d.Method, apperr.ErrUnknownMethod)
	}
}
