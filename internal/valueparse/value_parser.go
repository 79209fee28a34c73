// Package valueparse parses the compact numeric value strings used by the
// scenario configuration files.
package valueparse

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRange parses a value string into an inclusive range.
// Supports:
//   - Fixed value: "40" → min=40, max=40
//   - Single bracketed value: "[40]" → min=40, max=40
//   - Range: "[30 50]" → min=30, max=50
//
// A range whose bounds are given in descending order is rejected.
func ParseRange(s string) (min, max float64, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, fmt.Errorf("empty value")
	}

	if !strings.HasPrefix(s, "[") {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid value %q: %w", s, err)
		}
		return v, v, nil
	}

	if !strings.HasSuffix(s, "]") {
		return 0, 0, fmt.Errorf("unterminated range %q", s)
	}
	parts := strings.Fields(strings.TrimSuffix(strings.TrimPrefix(s, "["), "]"))
	switch len(parts) {
	case 1:
		v, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid value %q: %w", s, err)
		}
		return v, v, nil
	case 2:
		min, err = strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid range min %q: %w", parts[0], err)
		}
		max, err = strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid range max %q: %w", parts[1], err)
		}
		if min > max {
			return 0, 0, fmt.Errorf("range %q: min(%g) > max(%g)", s, min, max)
		}
		return min, max, nil
	default:
		return 0, 0, fmt.Errorf("range %q: expected 1 or 2 values, got %d", s, len(parts))
	}
}

// FormatRange is the inverse of ParseRange.
func FormatRange(min, max float64) string {
	if min == max {
		return strconv.FormatFloat(min, 'g', -1, 64)
	}
	return "[" + strconv.FormatFloat(min, 'g', -1, 64) + " " + strconv.FormatFloat(max, 'g', -1, 64) + "]"
}
