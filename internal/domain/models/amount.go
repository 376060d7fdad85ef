package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// NativeCurrency is the currency code used for amounts expressed in XRP drops.
const NativeCurrency = "XRP"

// ErrInvalidAmount is returned when a ledger amount is neither a drops string
// nor an issued-currency object.
var ErrInvalidAmount = errors.New("invalid amount")

// Amount represents an XRPL amount as found in offer entries.
//
// Native XRP amounts arrive as a JSON string of drops ("1000000") and are kept
// in drops. Issued-currency amounts arrive as {"currency","issuer","value"}.
//
// Fields:
//   - Value: numeric amount (drops for XRP, units for issued currencies).
//   - Currency: "XRP" for native amounts, otherwise the currency code.
//   - Issuer: issuing account for issued currencies, empty for XRP.
type Amount struct {
	Value    decimal.Decimal `json:"value"`
	Currency string          `json:"currency"`
	Issuer   string          `json:"issuer,omitempty"`
}

// NewDropsAmount builds a native XRP amount from a drops count.
func NewDropsAmount(drops int64) Amount {
	return Amount{Value: decimal.NewFromInt(drops), Currency: NativeCurrency}
}

// IsNative reports whether the amount is denominated in XRP drops.
func (a Amount) IsNative() bool {
	return a.Currency == NativeCurrency && a.Issuer == ""
}

// Equal compares value, currency and issuer.
func (a Amount) Equal(b Amount) bool {
	return a.Currency == b.Currency && a.Issuer == b.Issuer && a.Value.Equal(b.Value)
}

func (a Amount) String() string {
	if a.Issuer != "" {
		return fmt.Sprintf("%s %s.%s", a.Value.String(), a.Currency, a.Issuer)
	}
	return fmt.Sprintf("%s %s", a.Value.String(), a.Currency)
}

// ParseAmount decodes the raw JSON of a ledger amount field.
func ParseAmount(raw json.RawMessage) (Amount, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Amount{}, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	switch raw[0] {
	case '"':
		var drops string
		if err := json.Unmarshal(raw, &drops); err != nil {
			return Amount{}, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
		v, err := decimal.NewFromString(strings.TrimSpace(drops))
		if err != nil {
			return Amount{}, fmt.Errorf("%w: drops %q: %v", ErrInvalidAmount, drops, err)
		}
		if !v.IsInteger() || v.IsNegative() {
			return Amount{}, fmt.Errorf("%w: drops must be a non-negative integer, got %q", ErrInvalidAmount, drops)
		}
		return Amount{Value: v, Currency: NativeCurrency}, nil

	case '{':
		var issued struct {
			Currency string `json:"currency"`
			Issuer   string `json:"issuer"`
			Value    string `json:"value"`
		}
		if err := json.Unmarshal(raw, &issued); err != nil {
			return Amount{}, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
		if issued.Currency == "" || issued.Value == "" {
			return Amount{}, fmt.Errorf("%w: issued amount needs currency and value", ErrInvalidAmount)
		}
		v, err := decimal.NewFromString(issued.Value)
		if err != nil {
			return Amount{}, fmt.Errorf("%w: value %q: %v", ErrInvalidAmount, issued.Value, err)
		}
		return Amount{Value: v, Currency: issued.Currency, Issuer: issued.Issuer}, nil
	}

	return Amount{}, fmt.Errorf("%w: unexpected JSON %s", ErrInvalidAmount, truncate(raw, 32))
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
