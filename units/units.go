package units

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownUnit   = errors.New("unknown unit")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrFractionalWei = errors.New("amount is not a whole number of wei")
)

const (
	Wei   = "wei"
	Gwei  = "gwei"
	Ether = "ether"
)

// exponents of ten relative to wei
var units = map[string]int32{
	"wei":        0,
	"kwei":       3,
	"babbage":    3,
	"femtoether": 3,
	"mwei":       6,
	"lovelace":   6,
	"picoether":  6,
	"gwei":       9,
	"shannon":    9,
	"nanoether":  9,
	"nano":       9,
	"szabo":      12,
	"microether": 12,
	"micro":      12,
	"finney":     15,
	"milliether": 15,
	"milli":      15,
	"ether":      18,
	"kether":     21,
	"grand":      21,
	"mether":     24,
	"gether":     27,
	"tether":     30,
}

func exponent(unit string) (int32, error) {
	exp, ok := units[strings.ToLower(unit)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	return exp, nil
}

// Convert converts a decimal amount between two denominations.
// Converting to wei fails with ErrFractionalWei if the result has a fractional part.
func Convert(value, from, to string) (string, error) {
	d, err := convert(value, from, to)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

func convert(value, from, to string) (decimal.Decimal, error) {
	fromExp, err := exponent(from)
	if err != nil {
		return decimal.Zero, err
	}
	toExp, err := exponent(to)
	if err != nil {
		return decimal.Zero, err
	}

	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}

	result := d.Shift(fromExp - toExp)
	if toExp == 0 && !result.IsInteger() {
		return decimal.Zero, fmt.Errorf("%w: %s %s", ErrFractionalWei, value, from)
	}
	return result, nil
}

// ToEther converts an amount in unit to ether.
func ToEther(value, unit string) (string, error) {
	return Convert(value, unit, Ether)
}

// ToWei converts an amount in unit to wei.
func ToWei(value, unit string) (string, error) {
	return Convert(value, unit, Wei)
}

func GweiToWei(value string) (string, error) {
	return Convert(value, Gwei, Wei)
}

func EtherToWei(value string) (string, error) {
	return Convert(value, Ether, Wei)
}

func WeiToEther(value string) (string, error) {
	return Convert(value, Wei, Ether)
}

// ParseWei converts an amount in unit into a wei integer.
func ParseWei(value, unit string) (*big.Int, error) {
	d, err := convert(value, unit, Wei)
	if err != nil {
		return nil, err
	}
	return d.BigInt(), nil
}

// FormatWei renders a wei amount in the given unit.
func FormatWei(wei *big.Int, unit string) (string, error) {
	exp, err := exponent(unit)
	if err != nil {
		return "", err
	}
	return decimal.NewFromBigInt(wei, -exp).String(), nil
}
