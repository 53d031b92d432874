package currency

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// Code is a currency code such as "USD". Codes are matched case-sensitively.
type Code string

// Base is the currency all published rates are expressed against.
const Base Code = "RUB"

// DefaultAmount is converted when no amount is given.
const DefaultAmount = 1.0

// Codes lists the non-base currencies published in the daily snapshot.
var Codes = []Code{
	"AUD", "AZN", "GBP", "AMD", "BYN", "BGN", "BRL", "HUF", "VND", "HKD",
	"GEL", "DKK", "AED", "USD", "EUR", "EGP", "INR", "IDR", "KZT", "CAD",
	"QAR", "KGS", "CNY", "MDL", "NZD", "NOK", "PLN", "RON", "XDR", "SGD",
	"TJS", "THB", "TRY", "TMT", "UZS", "UAH", "CZK", "SEK", "CHF", "RSD",
	"ZAR", "KRW", "JPY",
}

var ErrUnsupportedCurrency = errors.New("unsupported currency")

// Rates maps a currency code to its rate against Base.
type Rates map[Code]float64

// RateSource provides the rate table for a single conversion.
type RateSource interface {
	Rates(ctx context.Context) (Rates, error)
}

// Request is one conversion read from the command line.
type Request struct {
	Amount float64
	From   Code
	To     Code
}

// Supported reports whether code is Base or one of Codes.
func Supported(code Code) bool {
	if code == Base {
		return true
	}
	for _, c := range Codes {
		if c == code {
			return true
		}
	}
	return false
}

// RateOf returns the rate of code. Base always has rate 1.
func (r Rates) RateOf(code Code) (float64, error) {
	if code == Base {
		return 1, nil
	}
	rate, ok := r[code]
	if !ok || !Supported(code) {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, code)
	}
	return rate, nil
}

// Convert converts amount from one currency to another as
// amount / rate(from) * rate(to).
func Convert(amount float64, from, to Code, rates Rates) (float64, error) {
	fromRate, err := rates.RateOf(from)
	if err != nil {
		return 0, fmt.Errorf("from: %w", err)
	}
	toRate, err := rates.RateOf(to)
	if err != nil {
		return 0, fmt.Errorf("to: %w", err)
	}
	return amount / fromRate * toRate, nil
}

func (r Request) Convert(rates Rates) (float64, error) {
	return Convert(r.Amount, r.From, r.To, rates)
}

// Run fetches the rate table once and converts the request with it.
func Run(ctx context.Context, source RateSource, req Request) (float64, error) {
	rates, err := source.Rates(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get rates: %w", err)
	}
	return req.Convert(rates)
}

// FormatAmount renders v with the fewest digits that round-trip, without an exponent.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
