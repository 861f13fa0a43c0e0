// Package profile assembles complete fictional profiles from the name
// catalog, the geo catalog, and the username and password generators.
// All randomness comes from crypto/rand.
package profile

import (
	"fmt"
	"strconv"
	"strings"
)

// Profile holds one generated persona. Optional fields are nil when absent;
// a Profile is returned by value and should be treated as read-only.
type Profile struct {
	Name      string     `json:"name"`
	Username  string     `json:"username"`
	Password  *string    `json:"password,omitempty"`
	Country   string     `json:"country"`
	City      string     `json:"city"`
	Birthdate *Birthdate `json:"birthdate,omitempty"`
	Age       int        `json:"age,omitempty"`
}

// HasPassword reports whether a password was generated.
func (p Profile) HasPassword() bool {
	return p.Password != nil
}

// Birthdate is a calendar date without time zone, written D/M/YYYY.
type Birthdate struct {
	Day   int
	Month int
	Year  int
}

func (b Birthdate) String() string {
	return fmt.Sprintf("%d/%d/%d", b.Day, b.Month, b.Year)
}

// MarshalText implements encoding.TextMarshaler.
func (b Birthdate) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Birthdate) UnmarshalText(text []byte) error {
	parts := strings.Split(string(text), "/")
	if len(parts) != 3 {
		return fmt.Errorf("birthdate %q: want D/M/YYYY", text)
	}

	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("birthdate %q: %w", text, err)
		}
		v[i] = n
	}

	if v[1] < 1 || v[1] > 12 || v[0] < 1 || v[0] > 31 {
		return fmt.Errorf("birthdate %q: out of range", text)
	}

	*b = Birthdate{Day: v[0], Month: v[1], Year: v[2]}
	return nil
}
