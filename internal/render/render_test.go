package render

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/zarlcorp/zalias/internal/profile"
)

func sample(pw string) profile.Profile {
	p := profile.Profile{
		Name:     "Aria Sol",
		Username: "aria_sol0420",
		Country:  "Japan",
		City:     "Kyoto",
	}
	if pw != "" {
		p.Password = &pw
	}
	return p
}

func TestRenderTextWithoutPassword(t *testing.T) {
	got, err := Render(sample(""), Text)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := "name:      Aria Sol\n" +
		"username:  aria_sol0420\n" +
		"country:   Japan\n" +
		"city:      Kyoto\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
	if strings.Contains(got, "password") {
		t.Error("text output should not mention password")
	}
}

func TestRenderTextWithPassword(t *testing.T) {
	got, err := Render(sample("s3cr3t&<>"), Text)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasSuffix(got, "password:  s3cr3t&<>\n") {
		t.Errorf("password line missing or escaped:\n%s", got)
	}
}

func TestRenderTextBirthdate(t *testing.T) {
	p := sample("")
	p.Birthdate = &profile.Birthdate{Day: 7, Month: 3, Year: 1990}
	p.Age = 36

	got, err := Render(p, Text)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, line := range []string{"birthdate: 7/3/1990\n", "age:       36\n"} {
		if !strings.Contains(got, line) {
			t.Errorf("output missing %q:\n%s", line, got)
		}
	}
	if strings.Index(got, "username:") > strings.Index(got, "birthdate:") {
		t.Error("birthdate should follow username")
	}
}

func TestRenderJSONOmitsPassword(t *testing.T) {
	got, err := Render(sample(""), JSON)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(got, `"password"`) {
		t.Errorf("json should not carry a password key:\n%s", got)
	}
	if !strings.HasSuffix(got, "}\n") {
		t.Error("json output should end with a newline")
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(got), &m); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}
	if len(m) != 4 {
		t.Errorf("json has %d keys, want 4: %v", len(m), m)
	}
}

func TestRenderJSONDoesNotEscapeHTML(t *testing.T) {
	got, err := Render(sample("a<b>&c"), JSON)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(got, `"password": "a<b>&c"`) {
		t.Errorf("password should be written verbatim:\n%s", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	withBirth := sample("Zq9!xx")
	withBirth.Birthdate = &profile.Birthdate{Day: 28, Month: 12, Year: 2010}
	withBirth.Age = 16

	tests := []struct {
		name string
		in   profile.Profile
	}{
		{"no password", sample("")},
		{"password", sample(`quote"back\slash`)},
		{"birthdate", withBirth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(tt.in, JSON)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			got, err := ParseJSON([]byte(out))
			if err != nil {
				t.Fatalf("ParseJSON: %v", err)
			}

			if got.Name != tt.in.Name || got.Username != tt.in.Username ||
				got.Country != tt.in.Country || got.City != tt.in.City || got.Age != tt.in.Age {
				t.Errorf("got %+v, want %+v", got, tt.in)
			}
			if got.HasPassword() != tt.in.HasPassword() {
				t.Fatalf("password presence = %v, want %v", got.HasPassword(), tt.in.HasPassword())
			}
			if tt.in.HasPassword() && *got.Password != *tt.in.Password {
				t.Errorf("password = %q, want %q", *got.Password, *tt.in.Password)
			}
			if (got.Birthdate == nil) != (tt.in.Birthdate == nil) {
				t.Fatal("birthdate presence changed")
			}
			if tt.in.Birthdate != nil && *got.Birthdate != *tt.in.Birthdate {
				t.Errorf("birthdate = %v, want %v", got.Birthdate, tt.in.Birthdate)
			}
		})
	}
}

func TestParseJSONInvalid(t *testing.T) {
	if _, err := ParseJSON([]byte("{not json")); err == nil {
		t.Error("expected error for malformed json")
	}
}

func TestMaskPassword(t *testing.T) {
	p := sample("topsecret")

	for _, f := range []Format{Text, JSON} {
		got, err := Render(p, f, MaskPassword())
		if err != nil {
			t.Fatalf("Render(%v): %v", f, err)
		}
		if strings.Contains(got, "topsecret") {
			t.Errorf("%v output leaks password:\n%s", f, got)
		}
		if !strings.Contains(got, "[hidden]") {
			t.Errorf("%v output missing mask:\n%s", f, got)
		}
	}

	if *p.Password != "topsecret" {
		t.Error("masking must not modify the caller's profile")
	}
}

func TestMaskWithoutPassword(t *testing.T) {
	got, err := Render(sample(""), Text, MaskPassword())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(got, "password") {
		t.Error("mask should not invent a password line")
	}
}

func TestRenderDeterministic(t *testing.T) {
	p := sample("abc")
	for _, f := range []Format{Text, JSON} {
		a, _ := Render(p, f)
		b, _ := Render(p, f)
		if a != b {
			t.Errorf("%v output differs between calls", f)
		}
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	if _, err := Render(sample(""), Format(7)); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("error = %v, want ErrUnknownFormat", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"text", Text, false},
		{"TXT", Text, false},
		{" json ", JSON, false},
		{"yaml", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownFormat) {
					t.Fatalf("ParseFormat(%q) error = %v", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path   string
		want   Format
		wantOK bool
	}{
		{"out.json", JSON, true},
		{"dir/OUT.JSON", JSON, true},
		{"notes.txt", Text, true},
		{"profile", 0, false},
		{"profile.yaml", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := FormatFromPath(tt.path)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("FormatFromPath(%q) = %v, %v; want %v, %v", tt.path, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFields(t *testing.T) {
	got := Fields(sample("pw"))
	labels := make([]string, len(got))
	for i, f := range got {
		labels[i] = f.Label
	}
	if strings.Join(labels, ",") != "name,username,country,city,password" {
		t.Errorf("labels = %v", labels)
	}
}
