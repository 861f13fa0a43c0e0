package username

import (
	"errors"
	"regexp"
	"strings"
	"testing"
)

var safe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

func TestBase(t *testing.T) {
	tests := []struct {
		name string
		in   string
		sep  string
		want string
	}{
		{"two words", "Aria Sol", "_", "aria_sol"},
		{"dot separator", "Aria Sol", ".", "aria.sol"},
		{"no separator", "Aria Sol", "", "ariasol"},
		{"diacritics", "Élodie Müller", "_", "elodie_muller"},
		{"punctuation splits", "Xi'an O'Neil-Smith", "-", "xi-an-o-neil-smith"},
		{"extra whitespace", "  Aria \t  Sol  ", "_", "aria_sol"},
		{"digits kept", "Unit 734", "_", "unit_734"},
		{"non latin falls back", "東京", "_", "user"},
		{"empty falls back", "", "_", "user"},
		{"capped", "Aurelio Cogsworth Brasswell", "_", "aurelio_cogsworth_br"},
		{"cap trims separator", "Abcdefghijklmnopqrs Tuv", "_", "abcdefghijklmnopqrs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Base(tt.in, tt.sep); got != tt.want {
				t.Errorf("Base(%q, %q) = %q, want %q", tt.in, tt.sep, got, tt.want)
			}
		})
	}
}

func TestGenerateDerived(t *testing.T) {
	s := DefaultScheme()
	re := regexp.MustCompile(`^aria_sol\d{4}$`)

	for range 50 {
		u, err := Generate("Aria Sol", s)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if !re.MatchString(u) {
			t.Fatalf("username %q does not match %s", u, re)
		}
		if strings.ContainsAny(u, " \t\n") {
			t.Fatalf("username %q contains whitespace", u)
		}
	}
}

func TestGenerateDerivedVaries(t *testing.T) {
	s := DefaultScheme()
	s.Suffix = 6

	seen := make(map[string]bool)
	for range 20 {
		u, err := Generate("Aria Sol", s)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		seen[u] = true
	}
	// 10^6 suffixes; 20 draws colliding down to a handful is implausible
	if len(seen) < 15 {
		t.Errorf("expected varied suffixes, got %d distinct of 20", len(seen))
	}
}

func TestGenerateRandom(t *testing.T) {
	s := Scheme{Style: Random, Length: 10}
	re := regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]{9}$`)

	for range 50 {
		u, err := Generate("ignored name", s)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if !re.MatchString(u) {
			t.Fatalf("username %q does not match %s", u, re)
		}
	}
}

func TestGenerateAlwaysSafe(t *testing.T) {
	names := []string{"Aria Sol", "Élodie d'Arcy", "東京 Tower", "  ", "a/b\\c:d*e", "Ωmega Δelta"}
	schemes := []Scheme{
		DefaultScheme(),
		{Style: Derived, Separator: ".", Suffix: 1},
		{Style: Derived, Separator: "", Suffix: 12},
		{Style: Random, Length: 1},
		{Style: Random, Length: 64},
	}

	for _, n := range names {
		for _, s := range schemes {
			u, err := Generate(n, s)
			if err != nil {
				t.Fatalf("Generate(%q, %+v): %v", n, s, err)
			}
			if !safe.MatchString(u) {
				t.Errorf("Generate(%q, %+v) = %q, contains unsafe characters", n, s, u)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		scheme Scheme
	}{
		{"bad separator", Scheme{Style: Derived, Separator: " ", Suffix: 4}},
		{"multi-char separator", Scheme{Style: Derived, Separator: "__", Suffix: 4}},
		{"zero suffix", Scheme{Style: Derived, Separator: "_", Suffix: 0}},
		{"long suffix", Scheme{Style: Derived, Separator: "_", Suffix: 13}},
		{"zero length", Scheme{Style: Random, Length: 0}},
		{"long length", Scheme{Style: Random, Length: 65}},
		{"unknown style", Scheme{Style: Style(9), Suffix: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Generate("Aria Sol", tt.scheme); !errors.Is(err, ErrInvalidScheme) {
				t.Errorf("Generate() error = %v, want ErrInvalidScheme", err)
			}
		})
	}
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    Style
		wantErr bool
	}{
		{"derived", Derived, false},
		{"", Derived, false},
		{"RANDOM", Random, false},
		{"fancy", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStyle(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidScheme) {
					t.Fatalf("ParseStyle(%q) error = %v", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseStyle(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}
}
