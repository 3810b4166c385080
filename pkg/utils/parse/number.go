// ABOUTME: Utility functions for parsing numbers from partner-supplied strings
// ABOUTME: Tolerates thousands separators, currency symbols and units

package parse

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// IntOrZero safely parses an integer from a string, returning 0 if parsing fails
func IntOrZero(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}

// Float extracts the leading number from values like "1,200 kg" or "$0.45".
// It returns nil when no finite number can be read.
func Float(s string) *float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '-' && r != '.'
	})

	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || c == '.' || c == ',' || (c == '-' && end == 0) {
			end++
			continue
		}
		break
	}

	number := strings.ReplaceAll(s[:end], ",", "")
	if number == "" || number == "-" {
		return nil
	}
	v, err := strconv.ParseFloat(number, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
