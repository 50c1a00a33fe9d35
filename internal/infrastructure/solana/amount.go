package solana

import (
	"math/big"
	"strconv"
	"strings"
)

// ParseRawAmount parses an unscaled token amount. Only non-empty strings
// of ASCII digits are accepted.
func ParseRawAmount(s string) (*big.Int, bool) {
	if s == "" {
		return nil, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return nil, false
		}
	}

	v, ok := new(big.Int).SetString(s, 10)
	return v, ok
}

// FormatRawAmount renders raw / 10^decimals exactly. Trailing fraction
// zeros are stripped and the point is omitted for whole numbers.
func FormatRawAmount(raw *big.Int, decimals int) string {
	if raw == nil {
		raw = new(big.Int)
	}
	if decimals <= 0 {
		return raw.String()
	}

	digits := raw.String()
	if len(digits) < decimals+1 {
		digits = strings.Repeat("0", decimals+1-len(digits)) + digits
	}

	split := len(digits) - decimals
	whole, frac := digits[:split], strings.TrimRight(digits[split:], "0")
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}

// DisplayFloat parses a display string for magnitude formatting only
func DisplayFloat(display string) float64 {
	v, err := strconv.ParseFloat(display, 64)
	if err != nil {
		return 0
	}
	return v
}
