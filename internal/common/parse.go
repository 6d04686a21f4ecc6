package common

import (
	"strconv"
	"strings"
)

// ParsePositiveUint64 parses a strictly positive decimal integer.
// Zero, negatives and anything non-numeric report ok=false.
func ParsePositiveUint64(s string) (uint64, bool) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return v, true
}

// NormalizeHash upper-cases a hex hash and makes sure it carries the 0x prefix.
func NormalizeHash(hash string) string {
	h := strings.TrimSpace(hash)
	if len(h) >= 2 && (h[:2] == "0x" || h[:2] == "0X") {
		h = h[2:]
	}
	return "0x" + strings.ToUpper(h)
}

func ToLowerWithTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
