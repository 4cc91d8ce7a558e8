package validate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a resource identifier (crop/interest ids are uuids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if _, err := uuid.Parse(s); err != nil {
		return "", false
	}
	return s, true
}

// Sort validates the catalog sort enum; anything else means natural order.
func Sort(s string) (string, bool) {
	switch s {
	case "price_asc", "price_desc", "latest":
		return s, true
	}
	return "", false
}

// Status validates a decision value for an interest.
func Status(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s == "accepted" || s == "rejected"
}

// Page parses a page number, defaulting to 1.
func Page(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Limit parses a page size, defaulting to 8 and clamped to avoid abuse.
func Limit(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 8
	}
	if n > 100 {
		return 100
	}
	return n
}

// Price parses an optional price bound; empty means unbounded.
func Price(s string) (*float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return nil, false
	}
	return &f, true
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 100 {
		return "", false
	}
	return s, true
}

// Quantity checks a requested amount is at least one unit.
func Quantity(n int) bool { return n >= 1 }
