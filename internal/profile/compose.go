package profile

import (
	"time"

	"github.com/zarlcorp/zalias/internal/geo"
	"github.com/zarlcorp/zalias/internal/names"
	"github.com/zarlcorp/zalias/internal/password"
	"github.com/zarlcorp/zalias/internal/secrand"
	"github.com/zarlcorp/zalias/internal/username"
)

const (
	minBirthYear = 1962
	maxBirthYear = 2010
)

// NameSource supplies names. *names.Source implements it.
type NameSource interface {
	Pick() names.Entry
}

// GeoSource supplies places. *geo.Catalog implements it.
type GeoSource interface {
	Pick() geo.Place
	PickIn(country string) (geo.Place, error)
}

type options struct {
	country   string
	pinned    bool
	policy    *password.Policy
	scheme    username.Scheme
	birthdate bool
	now       time.Time
}

// Option configures Compose.
type Option func(*options)

// WithCountry restricts the place to cities of country.
func WithCountry(country string) Option {
	return func(o *options) {
		o.country = country
		o.pinned = true
	}
}

// WithPassword generates a password under policy p.
func WithPassword(p password.Policy) Option {
	return func(o *options) {
		o.policy = &p
	}
}

// WithUsername overrides the default username scheme.
func WithUsername(s username.Scheme) Option {
	return func(o *options) {
		o.scheme = s
	}
}

// WithBirthdate adds a random birthdate; age is computed against now.
func WithBirthdate(now time.Time) Option {
	return func(o *options) {
		o.birthdate = true
		o.now = now
	}
}

// Compose builds one profile. It either succeeds completely or returns the
// first component error unchanged with a zero Profile.
func Compose(ns NameSource, gs GeoSource, opts ...Option) (Profile, error) {
	o := options{scheme: username.DefaultScheme()}
	for _, opt := range opts {
		opt(&o)
	}

	entry := ns.Pick()

	user, err := username.Generate(entry.Name, o.scheme)
	if err != nil {
		return Profile{}, err
	}

	var place geo.Place
	if o.pinned {
		place, err = gs.PickIn(o.country)
		if err != nil {
			return Profile{}, err
		}
	} else {
		place = gs.Pick()
	}

	p := Profile{
		Name:     entry.Name,
		Username: user,
		Country:  place.Country,
		City:     place.City,
	}

	if o.policy != nil {
		pw, err := password.Generate(*o.policy)
		if err != nil {
			return Profile{}, err
		}
		p.Password = &pw
	}

	if o.birthdate {
		b := randomBirthdate()
		p.Birthdate = &b
		p.Age = o.now.Year() - b.Year
	}

	return p, nil
}

// randomBirthdate draws a date with day capped at 28 so every month is valid.
func randomBirthdate() Birthdate {
	return Birthdate{
		Day:   secrand.Range(1, 28),
		Month: secrand.Range(1, 12),
		Year:  secrand.Range(minBirthYear, maxBirthYear),
	}
}
