// Package password generates random passwords from a character-class policy.
// Every character is an independent uniform draw from crypto/rand over the
// union of the enabled alphabets.
package password

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zarlcorp/core/pkg/zcrypto"

	"github.com/zarlcorp/zalias/internal/secrand"
)

// ErrInvalidPolicy is returned for a policy that cannot produce a password.
var ErrInvalidPolicy = errors.New("invalid password policy")

// character class alphabets
const (
	lowerChars      = "abcdefghijklmnopqrstuvwxyz"
	upperChars      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars      = "0123456789"
	symbolChars     = "!@#$%^&*()-_=+[]{};:,.<>?/|"
	safeSymbolChars = "-_+*@&%"

	defaultLength = 64
)

// Class is a set of character classes.
type Class uint8

const (
	Lower Class = 1 << iota
	Upper
	Digits
	Symbols

	AllClasses = Lower | Upper | Digits | Symbols
)

var classNames = []struct {
	class Class
	name  string
}{
	{Lower, "lower"},
	{Upper, "upper"},
	{Digits, "digits"},
	{Symbols, "symbols"},
}

// String lists the enabled classes, comma separated.
func (c Class) String() string {
	var parts []string
	for _, cn := range classNames {
		if c&cn.class != 0 {
			parts = append(parts, cn.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

// ParseClasses builds a class set from names such as "lower" or "digits".
func ParseClasses(names []string) (Class, error) {
	var c Class
	for _, n := range names {
		found := false
		for _, cn := range classNames {
			if strings.EqualFold(strings.TrimSpace(n), cn.name) {
				c |= cn.class
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: unknown character class %q", ErrInvalidPolicy, n)
		}
	}
	return c, nil
}

// Policy controls password generation.
type Policy struct {
	Length int
	// UseSymbols selects the full symbol alphabet. When false the Symbols
	// class is limited to characters most sign-up forms accept.
	UseSymbols bool
	Classes    Class
}

// DefaultPolicy returns a 64-character policy over all classes.
func DefaultPolicy() Policy {
	return Policy{
		Length:     defaultLength,
		UseSymbols: true,
		Classes:    AllClasses,
	}
}

// Validate reports whether the policy can produce a password.
func (p Policy) Validate() error {
	if p.Length < 1 {
		return fmt.Errorf("%w: length %d, must be at least 1", ErrInvalidPolicy, p.Length)
	}
	if p.Classes == 0 {
		return fmt.Errorf("%w: no character class enabled", ErrInvalidPolicy)
	}
	if p.Classes&^AllClasses != 0 {
		return fmt.Errorf("%w: unknown character class bits %#x", ErrInvalidPolicy, uint8(p.Classes&^AllClasses))
	}
	return nil
}

// Alphabet returns the union of the enabled class alphabets.
func (p Policy) Alphabet() string {
	var b strings.Builder
	if p.Classes&Lower != 0 {
		b.WriteString(lowerChars)
	}
	if p.Classes&Upper != 0 {
		b.WriteString(upperChars)
	}
	if p.Classes&Digits != 0 {
		b.WriteString(digitChars)
	}
	if p.Classes&Symbols != 0 {
		if p.UseSymbols {
			b.WriteString(symbolChars)
		} else {
			b.WriteString(safeSymbolChars)
		}
	}
	return b.String()
}

// Generate returns a password of exactly p.Length characters.
func Generate(p Policy) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	alphabet := p.Alphabet()
	buf := make([]byte, p.Length)
	defer zcrypto.Erase(buf)

	for i := range buf {
		buf[i] = secrand.Byte(alphabet)
	}

	return string(buf), nil
}
