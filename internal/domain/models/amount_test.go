package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseAmount_TableDriven(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		wantErr  bool
		currency string
		issuer   string
		value    string
	}{
		{name: "drops", raw: `"1000000"`, currency: "XRP", value: "1000000"},
		{name: "zero drops", raw: `"0"`, currency: "XRP", value: "0"},
		{name: "issued", raw: `{"currency":"USD","issuer":"rIssuer","value":"12.5"}`, currency: "USD", issuer: "rIssuer", value: "12.5"},
		{name: "fractional drops", raw: `"1.5"`, wantErr: true},
		{name: "negative drops", raw: `"-10"`, wantErr: true},
		{name: "not numeric", raw: `"abc"`, wantErr: true},
		{name: "json number", raw: `100`, wantErr: true},
		{name: "null", raw: `null`, wantErr: true},
		{name: "issued without value", raw: `{"currency":"USD"}`, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := ParseAmount(json.RawMessage(tc.raw))
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidAmount) {
					t.Fatalf("want ErrInvalidAmount, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if a.Currency != tc.currency || a.Issuer != tc.issuer || !a.Value.Equal(decimal.RequireFromString(tc.value)) {
				t.Fatalf("unexpected amount: %+v", a)
			}
		})
	}
}

func TestAmount_Helpers(t *testing.T) {
	a := NewDropsAmount(25)
	if !a.IsNative() {
		t.Fatalf("unexpected helpers for %+v", a)
	}
	if a.String() != "25 XRP" {
		t.Fatalf("String()=%q", a.String())
	}
	issued := Amount{Value: decimal.NewFromInt(3), Currency: "USD", Issuer: "rX"}
	if issued.IsNative() || issued.String() != "3 USD.rX" {
		t.Fatalf("unexpected issued amount %q", issued.String())
	}
	if !a.Equal(NewDropsAmount(25)) || a.Equal(issued) {
		t.Fatalf("Equal mismatch")
	}
}

func TestOfferRecord_Sides(t *testing.T) {
	cases := []struct {
		flags     uint32
		sell, buy bool
	}{
		{flags: 0, sell: false, buy: true},
		{flags: 1, sell: true, buy: false},
		{flags: 2, sell: false, buy: false},
		{flags: 3, sell: true, buy: false},
	}
	for _, c := range cases {
		o := OfferRecord{Flags: c.flags}
		if o.IsSell() != c.sell || o.IsBuy() != c.buy {
			t.Fatalf("flags=%d: sell=%v buy=%v", c.flags, o.IsSell(), o.IsBuy())
		}
	}
}

func TestRippleTime(t *testing.T) {
	if got := RippleTime(0); !got.Equal(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("RippleTime(0)=%v", got)
	}
	e := AcceptanceEvent{Date: 86400}
	if got := e.Time(); !got.Equal(time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("Time()=%v", got)
	}
}
