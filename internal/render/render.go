// Package render serializes profiles as labelled text or flat JSON.
// Output for a given profile and format is byte-for-byte deterministic.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zarlcorp/zalias/internal/profile"
)

// ErrUnknownFormat is returned for an unrecognized format name.
var ErrUnknownFormat = errors.New("unknown output format")

const hidden = "[hidden]"

// Format selects the serialization.
type Format int

const (
	Text Format = iota
	JSON
)

func (f Format) String() string {
	switch f {
	case Text:
		return "text"
	case JSON:
		return "json"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat parses "text" or "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt":
		return Text, nil
	case "json":
		return JSON, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, true
	case ".txt":
		return Text, true
	}
	return 0, false
}

type options struct {
	mask bool
}

// Option configures Render.
type Option func(*options)

// MaskPassword replaces the password value with "[hidden]".
func MaskPassword() Option {
	return func(o *options) { o.mask = true }
}

// Render serializes p in format f.
func Render(p profile.Profile, f Format, opts ...Option) (string, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if o.mask && p.Password != nil {
		masked := hidden
		p.Password = &masked
	}

	switch f {
	case Text:
		return renderText(p), nil
	case JSON:
		return renderJSON(p)
	}
	return "", fmt.Errorf("%w: %v", ErrUnknownFormat, f)
}

// Field is one labelled value of a profile.
type Field struct {
	Label string
	Value string
}

// Fields lists the present fields of p in display order. Absent optional
// fields are left out entirely.
func Fields(p profile.Profile) []Field {
	fields := []Field{
		{"name", p.Name},
		{"username", p.Username},
	}
	if p.Birthdate != nil {
		fields = append(fields,
			Field{"birthdate", p.Birthdate.String()},
			Field{"age", strconv.Itoa(p.Age)},
		)
	}
	fields = append(fields,
		Field{"country", p.Country},
		Field{"city", p.City},
	)
	if p.Password != nil {
		fields = append(fields, Field{"password", *p.Password})
	}
	return fields
}

func renderText(p profile.Profile) string {
	var b strings.Builder
	for _, f := range Fields(p) {
		fmt.Fprintf(&b, "%-10s %s\n", f.Label+":", f.Value)
	}
	return b.String()
}

func renderJSON(p profile.Profile) (string, error) {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	return b.String(), nil
}

// ParseJSON decodes a profile previously rendered as JSON.
func ParseJSON(data []byte) (profile.Profile, error) {
	var p profile.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return profile.Profile{}, fmt.Errorf("decode json: %w", err)
	}
	return p, nil
}
