// Package username turns a display name into an account-safe username.
//
// The derived scheme folds the name to lowercase ASCII words, joins them with
// a separator and appends random digits:
//
//	"Aria Sol"       -> aria_sol4821
//	"Élodie d'Arcy"  -> elodie_d_arcy0937
//
// The random scheme ignores the name and emits a letter followed by letters
// and digits. Output only ever contains [A-Za-z0-9._-].
package username

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/zarlcorp/zalias/internal/secrand"
)

// ErrInvalidScheme is returned for out-of-range scheme parameters.
var ErrInvalidScheme = errors.New("invalid username scheme")

const (
	letters      = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	alnum        = letters + "0123456789"
	digits       = "0123456789"
	maxBase      = 20
	fallbackBase = "user"

	maxSuffix = 12
	maxLength = 64
)

// Style selects how a username is built.
type Style int

const (
	// Derived builds the username from the profile name.
	Derived Style = iota
	// Random ignores the name entirely.
	Random
)

func (s Style) String() string {
	switch s {
	case Derived:
		return "derived"
	case Random:
		return "random"
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// ParseStyle parses "derived" or "random".
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "derived":
		return Derived, nil
	case "random":
		return Random, nil
	}
	return 0, fmt.Errorf("%w: unknown style %q", ErrInvalidScheme, s)
}

// Scheme parameterizes username generation.
type Scheme struct {
	Style Style
	// Separator joins name words in the derived style: "", ".", "_" or "-".
	Separator string
	// Suffix is the number of random digits appended in the derived style.
	Suffix int
	// Length is the total length in the random style.
	Length int
}

// DefaultScheme returns the derived style with "_" and four digits.
func DefaultScheme() Scheme {
	return Scheme{
		Style:     Derived,
		Separator: "_",
		Suffix:    4,
		Length:    10,
	}
}

// Validate checks the parameters used by the selected style.
func (s Scheme) Validate() error {
	switch s.Style {
	case Derived:
		switch s.Separator {
		case "", ".", "_", "-":
		default:
			return fmt.Errorf("%w: separator %q, want one of \"\", \".\", \"_\", \"-\"", ErrInvalidScheme, s.Separator)
		}
		if s.Suffix < 1 || s.Suffix > maxSuffix {
			return fmt.Errorf("%w: suffix length %d, want 1-%d", ErrInvalidScheme, s.Suffix, maxSuffix)
		}
	case Random:
		if s.Length < 1 || s.Length > maxLength {
			return fmt.Errorf("%w: length %d, want 1-%d", ErrInvalidScheme, s.Length, maxLength)
		}
	default:
		return fmt.Errorf("%w: %v", ErrInvalidScheme, s.Style)
	}
	return nil
}

// Generate returns a username for name under scheme s.
func Generate(name string, s Scheme) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}

	if s.Style == Random {
		return string(secrand.Byte(letters)) + secrand.String(alnum, s.Length-1), nil
	}

	return Base(name, s.Separator) + secrand.String(digits, s.Suffix), nil
}

// Base returns the deterministic part of a derived username: the folded name
// words joined by sep, capped at 20 bytes.
func Base(name, sep string) string {
	words := strings.FieldsFunc(fold(name), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})

	base := strings.Join(words, sep)
	if len(base) > maxBase {
		base = base[:maxBase]
		if sep != "" {
			base = strings.TrimRight(base, sep)
		}
	}

	if base == "" {
		return fallbackBase
	}
	return base
}

// fold strips diacritics and lowercases.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
