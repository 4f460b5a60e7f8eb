package refid

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// Prefix starts every candidate reference ID
	Prefix = "E"
	// First is issued when no valid ID exists yet
	First = "E00001"
)

// Parse extracts the numeric part of an ID of the form E<digits>.
// Anything else reports ok=false.
func Parse(id string) (n int, ok bool) {
	id = strings.TrimSpace(id)
	if !strings.HasPrefix(id, Prefix) {
		return 0, false
	}
	digits := id[len(Prefix):]
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Format renders n as a reference ID, zero-padded to five digits
func Format(n int) string {
	return fmt.Sprintf("%s%05d", Prefix, n)
}

// Next returns the ID following the largest valid ID in existing.
// Malformed entries are skipped; order does not matter.
func Next(existing []string) string {
	max, found := 0, false
	for _, id := range existing {
		n, ok := Parse(id)
		if !ok {
			continue
		}
		if !found || n > max {
			max, found = n, true
		}
	}
	if !found {
		return First
	}
	return Format(max + 1)
}
