package domain

import (
	"regexp"
	"strings"
)

// JoinCodeLength is the number of characters in a trip join code.
const JoinCodeLength = 8

// JoinCodeAlphabet is the set of characters a join code is drawn from.
const JoinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var joinCodePattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

// ValidJoinCode reports whether code matches ^[A-Z0-9]{8}$.
func ValidJoinCode(code string) bool {
	return joinCodePattern.MatchString(code)
}

// NormalizeJoinCode trims and uppercases user input before lookup.
func NormalizeJoinCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
