package resolvers

import (
	"errors"
	"math"
	"math/big"
	"strings"
)

var errNotNumber = errors.New("not a number")

// parseNumber accepts decimal, 0x hex and 0b binary input. With suffixes
// set, a trailing k multiplies by a thousand and m by a million.
func parseNumber(s string, suffixes bool) (*big.Float, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errNotNumber
	}

	mult := int64(1)
	if suffixes && len(s) > 1 {
		switch s[len(s)-1] {
		case 'k', 'K':
			mult = 1000
			s = s[:len(s)-1]
		case 'm', 'M':
			mult = 1000 * 1000
			s = s[:len(s)-1]
		}
	}

	neg := false
	body := s
	if body[0] == '-' || body[0] == '+' {
		neg = body[0] == '-'
		body = body[1:]
	}

	var n *big.Float
	switch {
	case len(body) > 2 && (body[:2] == "0x" || body[:2] == "0X"):
		i, ok := new(big.Int).SetString(body[2:], 16)
		if !ok {
			return nil, errNotNumber
		}
		n = new(big.Float).SetInt(i)
	case len(body) > 2 && (body[:2] == "0b" || body[:2] == "0B"):
		i, ok := new(big.Int).SetString(body[2:], 2)
		if !ok {
			return nil, errNotNumber
		}
		n = new(big.Float).SetInt(i)
	default:
		f, ok := new(big.Float).SetPrec(128).SetString(body)
		if !ok || f.IsInf() {
			return nil, errNotNumber
		}
		n = f
	}

	if neg {
		n.Neg(n)
	}
	if mult != 1 {
		n.Mul(n, new(big.Float).SetInt64(mult))
	}
	return n, nil
}

// parseInteger parses s and requires a whole number that fits in bits.
func parseInteger(s string, suffixes bool, bits int) (int64, *Failure) {
	n, err := parseNumber(s, suffixes)
	if err != nil {
		return 0, Failf(InvalidFormat, "'%s' must be a number", s)
	}
	if !n.IsInt() {
		return 0, Failf(InvalidFormat, "'%s' must be a whole number", s)
	}
	i, acc := n.Int64()
	if acc != big.Exact {
		return 0, Failf(InvalidFormat, "'%s' is out of range", s)
	}
	if bits == 32 && (i > math.MaxInt32 || i < math.MinInt32) {
		return 0, Failf(InvalidFormat, "'%s' is out of range", s)
	}
	return i, nil
}

// parseDecimal parses s as a float64.
func parseDecimal(s string, suffixes bool) (float64, *Failure) {
	n, err := parseNumber(s, suffixes)
	if err != nil {
		return 0, Failf(InvalidFormat, "'%s' must be a number", s)
	}
	f, _ := n.Float64()
	if math.IsInf(f, 0) {
		return 0, Failf(InvalidFormat, "'%s' is out of range", s)
	}
	return f, nil
}
