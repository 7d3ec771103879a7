package core

import (
	"strconv"
	"strings"
	"time"
)

// Manifests can be read while the client is rewriting them, so integer fields
// never fail a parse: text that is not a number becomes zero.

// ParseUint32OrZero parses a decimal uint32. Negative values that fit in an
// int32 are reinterpreted as their unsigned bit pattern, which is how the
// client writes some identifiers.
func ParseUint32OrZero(s string) uint32 {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseUint(s, 10, 32); err == nil {
		return uint32(v)
	}
	if v, err := strconv.ParseInt(s, 10, 32); err == nil {
		return uint32(int32(v))
	}
	return 0
}

func ParseUint64OrZero(s string) uint64 {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseUnixOrZero parses a unix timestamp in seconds. Zero and unparsable
// text both give the zero time.
func ParseUnixOrZero(s string) time.Time {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v <= 0 {
		return time.Time{}
	}
	return time.Unix(v, 0).UTC()
}

// ParseBoolOrFalse treats any non-zero integer as true.
func ParseBoolOrFalse(s string) bool {
	return ParseUint64OrZero(s) != 0
}
